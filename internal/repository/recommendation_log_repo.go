package repository

import (
	"context"
	"time"

	"github.com/dinhln03/fsds-bwai-recs/internal/db"
	"github.com/dinhln03/fsds-bwai-recs/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type RecommendationLogRepository struct {
	col *mongo.Collection
}

func NewRecommendationLogRepository() *RecommendationLogRepository {
	return &RecommendationLogRepository{col: db.DB().Collection("recommendations")}
}

func (r *RecommendationLogRepository) Insert(ctx context.Context, rec *models.RecommendationLog) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	_, err := r.col.InsertOne(ctx, rec)
	return wrapStoreErr("recommendations.Insert", err)
}

// historial por usuario, más reciente primero (para exponer más adelante)
func (r *RecommendationLogRepository) FindByUser(ctx context.Context, userID string, limit int64) ([]models.RecommendationLog, error) {
	cur, err := r.col.Find(ctx,
		bson.M{"userId": userID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(limit),
	)
	if err != nil {
		return nil, wrapStoreErr("recommendations.FindByUser", err)
	}
	defer cur.Close(ctx)

	var out []models.RecommendationLog
	for cur.Next(ctx) {
		var rec models.RecommendationLog
		if err := cur.Decode(&rec); err != nil {
			return nil, wrapStoreErr("recommendations.FindByUser", err)
		}
		out = append(out, rec)
	}
	return out, wrapStoreErr("recommendations.FindByUser", cur.Err())
}
