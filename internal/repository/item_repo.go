package repository

import (
	"context"

	"github.com/dinhln03/fsds-bwai-recs/internal/db"
	"github.com/dinhln03/fsds-bwai-recs/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ItemRepository struct {
	col *mongo.Collection
}

func NewItemRepository() *ItemRepository {
	return &ItemRepository{col: db.DB().Collection("items")}
}

// GetWithTags trae ítems que tengan al menos un tag: la fuente de las
// transacciones de respaldo cuando hay pocas canastas reales.
func (r *ItemRepository) GetWithTags(ctx context.Context, limit int64) ([]models.ItemDoc, error) {
	cur, err := r.col.Find(ctx,
		bson.M{"tags.0": bson.M{"$exists": true}},
		options.Find().SetLimit(limit),
	)
	if err != nil {
		return nil, wrapStoreErr("items.GetWithTags", err)
	}
	defer cur.Close(ctx)

	var out []models.ItemDoc
	for cur.Next(ctx) {
		var it models.ItemDoc
		if err := cur.Decode(&it); err != nil {
			return nil, wrapStoreErr("items.GetWithTags", err)
		}
		out = append(out, it)
	}
	return out, wrapStoreErr("items.GetWithTags", cur.Err())
}
