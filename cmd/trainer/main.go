package main

import (
	"bufio"
	"context"
	"encoding/json"
	"log"
	"net"
	"time"

	"github.com/dinhln03/fsds-bwai-recs/internal/cluster"
	"github.com/dinhln03/fsds-bwai-recs/internal/config"
	"github.com/dinhln03/fsds-bwai-recs/internal/db"
	"github.com/dinhln03/fsds-bwai-recs/internal/recommender"
	"github.com/dinhln03/fsds-bwai-recs/internal/repository"
	"github.com/dinhln03/fsds-bwai-recs/internal/service"
)

// Daemon de entrenamiento: escucha tareas TCP de la API y además puede
// reentrenar solo (TRAIN_ON_START, TRAIN_INTERVAL_SECONDS).
func main() {
	cfg := config.Load()
	db.InitMongo(cfg)

	interactionRepo := repository.NewInteractionRepository()
	itemRepo := repository.NewItemRepository()
	modelRepo := repository.NewModelRepository()

	snap := recommender.NewSnapshotRef()
	trainSvc := service.NewTrainService(interactionRepo, itemRepo, modelRepo, snap, cfg)

	if cfg.TrainOnStart {
		go func() {
			if _, err := trainSvc.TrainFPGrowth(context.Background(), service.TrainOptions{Trigger: "startup"}, nil); err != nil {
				log.Printf("[trainer %s] entrenamiento inicial falló: %v", cfg.NodeID, err)
			}
		}()
	}

	trainSvc.StartTicker(context.Background(), cfg.TrainInterval)

	ln, err := net.Listen("tcp", cfg.TrainerAddr)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("[trainer %s] escuchando en %s", cfg.NodeID, cfg.TrainerAddr)

	for {
		conn, err := ln.Accept()
		if err != nil {
			log.Println("accept error:", err)
			continue
		}
		go handleConn(cfg.NodeID, conn, trainSvc)
	}
}

func handleConn(nodeID string, conn net.Conn, trainSvc *service.TrainService) {
	defer conn.Close()

	dec := json.NewDecoder(bufio.NewReader(conn))
	var task cluster.TrainTask
	if err := dec.Decode(&task); err != nil {
		log.Printf("[trainer %s] decode task error: %v", nodeID, err)
		return
	}

	log.Printf("[trainer %s] tarea recibida: force=%v requestedBy=%s",
		nodeID, task.Force, task.RequestedBy)

	start := time.Now()

	out, err := trainSvc.TrainFPGrowth(context.Background(), service.TrainOptions{
		MinSupport:    task.MinSupport,
		MinConfidence: task.MinConfidence,
		Force:         task.Force,
		Trigger:       "remote",
	}, nil)

	var resp cluster.TrainResult
	switch {
	case err != nil:
		log.Printf("[trainer %s] entrenamiento falló: %v", nodeID, err)
		resp = cluster.TrainResult{Status: "error", Error: err.Error()}
	case out.Skipped:
		resp = cluster.TrainResult{Status: "skipped", Metadata: out.Meta}
	default:
		log.Printf("[trainer %s] completado: transacciones=%d reglas=%d tiempo=%s",
			nodeID, out.Meta.NumTransactions, out.Meta.NumRules, time.Since(start))
		resp = cluster.TrainResult{Status: "success", Metadata: out.Meta}
	}

	if err := json.NewEncoder(conn).Encode(&resp); err != nil {
		log.Printf("[trainer %s] encode resp error: %v", nodeID, err)
	}
}
