package repository

import (
	"context"

	"github.com/dinhln03/fsds-bwai-recs/internal/db"
	"github.com/dinhln03/fsds-bwai-recs/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const fpModelID = "fpgrowth"

type ModelRepository struct {
	col *mongo.Collection
}

func NewModelRepository() *ModelRepository {
	return &ModelRepository{col: db.DB().Collection("models")}
}

// Save reemplaza el documento completo del modelo (upsert con _id fijo): el
// último entrenamiento siempre gana.
func (r *ModelRepository) Save(ctx context.Context, doc *models.ModelDoc) error {
	doc.ID = fpModelID
	_, err := r.col.ReplaceOne(ctx,
		bson.M{"_id": fpModelID},
		doc,
		options.Replace().SetUpsert(true),
	)
	return wrapStoreErr("models.Save", err)
}

// Load trae el modelo persistido completo; (nil, nil) si nunca se entrenó.
func (r *ModelRepository) Load(ctx context.Context) (*models.ModelDoc, error) {
	var doc models.ModelDoc
	err := r.col.FindOne(ctx, bson.M{"_id": fpModelID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, wrapStoreErr("models.Load", err)
	}
	return &doc, nil
}

// LoadMetadata trae solo la metadata: el refresher la consulta seguido y las
// reglas pueden pesar varios MB.
func (r *ModelRepository) LoadMetadata(ctx context.Context) (*models.ModelMetadata, error) {
	var doc models.ModelDoc
	err := r.col.FindOne(ctx,
		bson.M{"_id": fpModelID},
		options.FindOne().SetProjection(bson.M{"metadata": 1}),
	).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, wrapStoreErr("models.LoadMetadata", err)
	}
	return &doc.Metadata, nil
}
