package recommender

import (
	"sync"
	"testing"
	"time"

	"github.com/dinhln03/fsds-bwai-recs/internal/models"
)

func TestSnapshotRefStartsEmpty(t *testing.T) {
	ref := NewSnapshotRef()
	cur := ref.Current()
	if cur == nil {
		t.Fatal("Current() = nil, want snapshot vacío")
	}
	if cur.Ready() {
		t.Error("Ready() = true sin reglas cargadas")
	}
}

func TestSnapshotSwapPreservesParts(t *testing.T) {
	ref := NewSnapshotRef()
	rules := BuildRuleIndex([]Rule{{Antecedent: []string{"a"}, Consequent: "b", Support: 2, Confidence: 0.5}})
	meta := &models.ModelMetadata{TrainedAt: time.Now(), NumRules: 1}
	ref.Swap(&Snapshot{Rules: rules, Meta: meta})

	if !ref.Current().Ready() {
		t.Fatal("Ready() = false después del swap")
	}

	pop := BuildPopularityIndex([]models.InteractionDoc{{UserID: "u", ItemID: "b", Timestamp: 1}})
	ref.SwapPopular(pop)
	cur := ref.Current()
	if cur.Rules != rules {
		t.Error("SwapPopular no conservó las reglas")
	}
	if cur.Meta != meta {
		t.Error("SwapPopular no conservó la metadata")
	}
	if cur.Popular.Len() != 1 {
		t.Errorf("Popular.Len() = %d, want 1", cur.Popular.Len())
	}
}

func TestSnapshotSwapNil(t *testing.T) {
	ref := NewSnapshotRef()
	ref.Swap(nil)
	if ref.Current() == nil {
		t.Fatal("Current() = nil después de Swap(nil)")
	}
}

func TestSnapshotConcurrentReaders(t *testing.T) {
	ref := NewSnapshotRef()
	var wg sync.WaitGroup
	stop := make(chan struct{})

	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				cur := ref.Current()
				if cur == nil {
					t.Error("Current() = nil durante swaps concurrentes")
					return
				}
				_ = cur.Ready()
			}
		}()
	}

	for i := 0; i < 100; i++ {
		ref.Swap(&Snapshot{Rules: BuildRuleIndex([]Rule{{Antecedent: []string{"a"}, Consequent: "b", Support: i + 1, Confidence: 0.9}})})
	}
	close(stop)
	wg.Wait()
}

func TestSnapshotConcurrentWriters(t *testing.T) {
	// un rebuild de popularidad corriendo a la par del swap del entrenamiento
	// no debe perderle las reglas ni la metadata
	rules := BuildRuleIndex([]Rule{{Antecedent: []string{"a"}, Consequent: "b", Support: 2, Confidence: 0.5}})
	meta := &models.ModelMetadata{TrainedAt: time.Now(), NumRules: 1}
	pop := PopularityFromCounts([]models.ItemCount{{ItemID: "b", Count: 3}})

	for round := 0; round < 50; round++ {
		ref := NewSnapshotRef()
		done := make(chan struct{})
		go func() {
			defer close(done)
			for i := 0; i < 200; i++ {
				ref.SwapPopular(pop)
			}
		}()
		ref.Swap(&Snapshot{Rules: rules, Popular: pop, Meta: meta})
		<-done

		cur := ref.Current()
		if cur.Rules.Len() != 1 {
			t.Fatalf("ronda %d: las reglas publicadas se perdieron (Len = %d)", round, cur.Rules.Len())
		}
		if cur.Meta == nil || cur.Meta.NumRules != 1 {
			t.Fatalf("ronda %d: la metadata publicada se perdió", round)
		}
	}
}
