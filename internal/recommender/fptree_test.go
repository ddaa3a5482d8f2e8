package recommender

import (
	"errors"
	"reflect"
	"testing"
)

func TestMineFrequentItemsets(t *testing.T) {
	txs := []Transaction{
		{"A", "B"},
		{"A", "B", "C"},
		{"A"},
		{"B", "C"},
	}
	got, err := MineFrequentItemsets(txs, 2)
	if err != nil {
		t.Fatalf("MineFrequentItemsets() error = %v", err)
	}
	want := FrequentItemsets{
		itemsetKey([]string{"A"}):      3,
		itemsetKey([]string{"B"}):      3,
		itemsetKey([]string{"C"}):      2,
		itemsetKey([]string{"A", "B"}): 2,
		itemsetKey([]string{"B", "C"}): 2,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("itemsets = %v, want %v", got, want)
	}
	if got.Support("A", "C") != 0 {
		t.Errorf("Support(A,C) = %d, want 0", got.Support("A", "C"))
	}
}

func TestMineAntiMonotone(t *testing.T) {
	txs := []Transaction{
		{"pan", "leche", "huevos"},
		{"pan", "leche"},
		{"leche", "huevos", "cafe"},
		{"pan", "huevos"},
		{"pan", "leche", "huevos", "cafe"},
		{"cafe"},
	}
	got, err := MineFrequentItemsets(txs, 2)
	if err != nil {
		t.Fatalf("MineFrequentItemsets() error = %v", err)
	}
	// Todo subconjunto de un itemset frecuente debe tener soporte >= al del conjunto.
	for key, sup := range got {
		items := itemsFromKey(key)
		if len(items) < 2 {
			continue
		}
		for i := range items {
			sub := make([]string, 0, len(items)-1)
			sub = append(sub, items[:i]...)
			sub = append(sub, items[i+1:]...)
			if subSup := got[itemsetKey(sub)]; subSup < sup {
				t.Errorf("soporte de %v = %d, menor que el de %v = %d", sub, subSup, items, sup)
			}
		}
	}
}

func TestMineDeduplicatesWithinTransaction(t *testing.T) {
	txs := []Transaction{
		{"A", "A", "B"},
		{"A", "B", ""},
	}
	got, err := MineFrequentItemsets(txs, 2)
	if err != nil {
		t.Fatalf("MineFrequentItemsets() error = %v", err)
	}
	if got.Support("A") != 2 {
		t.Errorf("Support(A) = %d, want 2", got.Support("A"))
	}
	if got.Support("A", "B") != 2 {
		t.Errorf("Support(A,B) = %d, want 2", got.Support("A", "B"))
	}
}

func TestMineRejectsBadMinSupport(t *testing.T) {
	for _, ms := range []int{0, -3} {
		if _, err := MineFrequentItemsets([]Transaction{{"A"}}, ms); !errors.Is(err, ErrInvalidMinSupport) {
			t.Errorf("minSupport=%d: err = %v, want ErrInvalidMinSupport", ms, err)
		}
	}
}

func TestMineEmptyInput(t *testing.T) {
	got, err := MineFrequentItemsets(nil, 1)
	if err != nil {
		t.Fatalf("MineFrequentItemsets() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("itemsets = %v, want vacío", got)
	}
}

func TestMineDeterministic(t *testing.T) {
	txs := []Transaction{
		{"x", "y", "z"},
		{"x", "y"},
		{"y", "z", "w"},
		{"x", "z"},
		{"w", "x", "y"},
	}
	first, err := MineFrequentItemsets(txs, 2)
	if err != nil {
		t.Fatalf("MineFrequentItemsets() error = %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := MineFrequentItemsets(txs, 2)
		if err != nil {
			t.Fatalf("MineFrequentItemsets() error = %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("corrida %d: itemsets = %v, want %v", i, again, first)
		}
	}
}
