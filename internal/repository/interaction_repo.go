package repository

import (
	"context"
	"strconv"

	"github.com/dinhln03/fsds-bwai-recs/internal/db"
	"github.com/dinhln03/fsds-bwai-recs/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type InteractionRepository struct {
	col *mongo.Collection
}

func NewInteractionRepository() *InteractionRepository {
	return &InteractionRepository{col: db.DB().Collection("interactions")}
}

// helpers de casteo seguro: en la colección conviven registros viejos con ids
// numéricos y timestamps en varios formatos; se rescata lo que se pueda.
func asString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatInt(int64(x), 10)
	default:
		return ""
	}
}

func asInt64(v any) int64 {
	switch x := v.(type) {
	case int32:
		return int64(x)
	case int64:
		return x
	case float64:
		return int64(x)
	case primitive.DateTime:
		return x.Time().Unix()
	default:
		return 0
	}
}

// FetchAll trae todas las interacciones para entrenar. Devuelve además
// cuántos registros se saltaron por no tener usuario o ítem: se reportan en
// la metadata del modelo, nunca cortan el entrenamiento.
func (r *InteractionRepository) FetchAll(ctx context.Context) ([]models.InteractionDoc, int, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, 0, wrapStoreErr("interactions.FetchAll", err)
	}
	defer cur.Close(ctx)

	var out []models.InteractionDoc
	skipped := 0
	for cur.Next(ctx) {
		var raw bson.M
		if err := cur.Decode(&raw); err != nil {
			skipped++
			continue
		}
		doc := models.InteractionDoc{
			UserID:    asString(raw["userId"]),
			ItemID:    asString(raw["itemId"]),
			Timestamp: asInt64(raw["timestamp"]),
		}
		if doc.UserID == "" || doc.ItemID == "" {
			skipped++
			continue
		}
		out = append(out, doc)
	}
	if err := cur.Err(); err != nil {
		return nil, 0, wrapStoreErr("interactions.FetchAll", err)
	}
	return out, skipped, nil
}

// GetAllByUser trae el historial de un usuario, más reciente primero.
func (r *InteractionRepository) GetAllByUser(ctx context.Context, userID string) ([]models.InteractionDoc, error) {
	cur, err := r.col.Find(ctx,
		bson.M{"userId": userID},
		options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}}).SetLimit(10000),
	)
	if err != nil {
		return nil, wrapStoreErr("interactions.GetAllByUser", err)
	}
	defer cur.Close(ctx)

	var out []models.InteractionDoc
	for cur.Next(ctx) {
		var raw bson.M
		if err := cur.Decode(&raw); err != nil {
			continue
		}
		doc := models.InteractionDoc{
			UserID:    asString(raw["userId"]),
			ItemID:    asString(raw["itemId"]),
			Timestamp: asInt64(raw["timestamp"]),
		}
		if doc.ItemID == "" {
			continue
		}
		out = append(out, doc)
	}
	if err := cur.Err(); err != nil {
		return nil, wrapStoreErr("interactions.GetAllByUser", err)
	}
	return out, nil
}

// AggregatePopularity agrupa por ítem y devuelve los n más vistos, ya
// ordenados (conteo desc, empates por id asc).
func (r *InteractionRepository) AggregatePopularity(ctx context.Context, n int) ([]models.ItemCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"itemId": bson.M{"$nin": bson.A{nil, ""}}}}},
		{{Key: "$group", Value: bson.M{"_id": "$itemId", "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
		{{Key: "$limit", Value: n}},
	}
	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, wrapStoreErr("interactions.AggregatePopularity", err)
	}
	defer cur.Close(ctx)

	var out []models.ItemCount
	for cur.Next(ctx) {
		var raw bson.M
		if err := cur.Decode(&raw); err != nil {
			continue
		}
		id := asString(raw["_id"])
		if id == "" {
			continue
		}
		out = append(out, models.ItemCount{ItemID: id, Count: asInt64(raw["count"])})
	}
	if err := cur.Err(); err != nil {
		return nil, wrapStoreErr("interactions.AggregatePopularity", err)
	}
	return out, nil
}
