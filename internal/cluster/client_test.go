package cluster

import (
	"bufio"
	"context"
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/dinhln03/fsds-bwai-recs/internal/models"
)

func TestSendTrainTaskRoundTrip(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("net.Listen() error = %v", err)
	}
	defer ln.Close()

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		var task TrainTask
		if err := json.NewDecoder(bufio.NewReader(conn)).Decode(&task); err != nil {
			return
		}
		res := TrainResult{
			Status:   "success",
			Metadata: &models.ModelMetadata{NumTransactions: 42, MinSupport: task.MinSupport},
		}
		_ = json.NewEncoder(conn).Encode(&res)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	got, err := SendTrainTask(ctx, ln.Addr().String(), &TrainTask{MinSupport: 0.05, Force: true})
	if err != nil {
		t.Fatalf("SendTrainTask() error = %v", err)
	}
	if got.Status != "success" {
		t.Errorf("status = %s, want success", got.Status)
	}
	if got.Metadata == nil || got.Metadata.NumTransactions != 42 {
		t.Errorf("metadata = %+v, want NumTransactions 42", got.Metadata)
	}
	if !almostEqualFloat(got.Metadata.MinSupport, 0.05) {
		t.Errorf("minSupport = %v, want 0.05", got.Metadata.MinSupport)
	}
}

func TestSendTrainTaskTimeout(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("net.Listen() error = %v", err)
	}
	defer ln.Close()

	// El servidor acepta pero nunca responde.
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		buf := make([]byte, 1024)
		for {
			if _, err := conn.Read(buf); err != nil {
				return
			}
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()

	if _, err := SendTrainTask(ctx, ln.Addr().String(), &TrainTask{}); err == nil {
		t.Fatal("SendTrainTask() sin error, se esperaba timeout")
	}
}

func almostEqualFloat(a, b float64) bool {
	d := a - b
	return d > -1e-9 && d < 1e-9
}
