package main

import (
	"context"
	"log"
	"net/http"

	_ "github.com/dinhln03/fsds-bwai-recs/docs" // swagger docs

	"github.com/dinhln03/fsds-bwai-recs/internal/cache"
	"github.com/dinhln03/fsds-bwai-recs/internal/config"
	"github.com/dinhln03/fsds-bwai-recs/internal/db"
	"github.com/dinhln03/fsds-bwai-recs/internal/handler"
	"github.com/dinhln03/fsds-bwai-recs/internal/recommender"
	"github.com/dinhln03/fsds-bwai-recs/internal/repository"
	"github.com/dinhln03/fsds-bwai-recs/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title Item Recommender API
// @version 1.0
// @description API de recomendaciones (popularidad + FP-Growth sobre Mongo, Redis opcional)
// @host localhost:8080
// @BasePath /
func main() {
	cfg := config.Load()

	// Mongo y Redis
	db.InitMongo(cfg)
	cache.InitRedis(cfg)

	// repos
	interactionRepo := repository.NewInteractionRepository()
	itemRepo := repository.NewItemRepository()
	modelRepo := repository.NewModelRepository()
	recLogRepo := repository.NewRecommendationLogRepository()

	// snapshot inmutable que comparten serving y entrenamiento
	snap := recommender.NewSnapshotRef()

	// services
	recSvc := service.NewRecommendService(interactionRepo, recLogRepo, snap, cfg)
	trainSvc := service.NewTrainService(interactionRepo, itemRepo, modelRepo, snap, cfg)

	// Si hay un modelo persistido de una corrida anterior, se sirve desde ya.
	if ok, err := trainSvc.LoadPersisted(context.Background()); err != nil {
		log.Printf("[main] no se pudo cargar el modelo persistido: %v", err)
	} else if ok {
		log.Println("[main] modelo FP-Growth cargado desde Mongo")
	} else {
		log.Println("[main] no hay modelo entrenado todavía, se sirve popularidad")
	}

	// Revisa Mongo cada tanto por si un trainer dejó un modelo más nuevo.
	trainSvc.StartRefresher(context.Background())

	if len(cfg.TrainerAddrs) > 0 {
		log.Printf("[main] entrenamiento delegado a trainers: %v", cfg.TrainerAddrs)
	} else {
		log.Println("[main] sin trainers configurados, /compute entrena en este proceso")
	}

	// handlers
	recH := handler.NewRecommendHandler(recSvc)
	trainH := handler.NewTrainHandler(trainSvc, recSvc)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(handler.Metrics)

	r.Get("/health", handler.Health)

	// serving
	handler.MountRecommendRoutes(r, recH)

	// entrenamiento / modelo
	handler.MountTrainRoutes(r, trainH)

	// Prometheus
	r.Handle("/metrics", promhttp.Handler())

	// Swagger UI
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	log.Printf("HTTP escuchando en :%s", cfg.HTTPPort)
	log.Fatal(http.ListenAndServe(":"+cfg.HTTPPort, r))
}
