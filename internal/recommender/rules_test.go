package recommender

import (
	"math"
	"reflect"
	"testing"
)

func specimenRules(t *testing.T, minConfidence float64) []Rule {
	t.Helper()
	txs := []Transaction{
		{"A", "B"},
		{"A", "B", "C"},
		{"A"},
		{"B", "C"},
	}
	itemsets, err := MineFrequentItemsets(txs, 2)
	if err != nil {
		t.Fatalf("MineFrequentItemsets() error = %v", err)
	}
	return DeriveRules(itemsets, minConfidence)
}

func findRule(rules []Rule, ant []string, cons string) (Rule, bool) {
	for _, r := range rules {
		if cons == r.Consequent && reflect.DeepEqual(r.Antecedent, ant) {
			return r, true
		}
	}
	return Rule{}, false
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestDeriveRules(t *testing.T) {
	rules := specimenRules(t, 0.2)
	if len(rules) != 4 {
		t.Fatalf("len(rules) = %d, want 4", len(rules))
	}
	cases := []struct {
		ant  []string
		cons string
		conf float64
	}{
		{[]string{"A"}, "B", 2.0 / 3.0},
		{[]string{"B"}, "A", 2.0 / 3.0},
		{[]string{"B"}, "C", 2.0 / 3.0},
		{[]string{"C"}, "B", 1.0},
	}
	for _, c := range cases {
		r, ok := findRule(rules, c.ant, c.cons)
		if !ok {
			t.Errorf("falta la regla %v -> %s", c.ant, c.cons)
			continue
		}
		if !almostEqual(r.Confidence, c.conf) {
			t.Errorf("confianza de %v -> %s = %v, want %v", c.ant, c.cons, r.Confidence, c.conf)
		}
		if r.Support != 2 {
			t.Errorf("soporte de %v -> %s = %d, want 2", c.ant, c.cons, r.Support)
		}
	}
	// Orden: confianza desc, luego soporte, luego consecuente.
	if rules[0].Consequent != "B" || !almostEqual(rules[0].Confidence, 1.0) {
		t.Errorf("rules[0] = %+v, want C -> B con confianza 1.0", rules[0])
	}
}

func TestDeriveRulesConfidenceFilter(t *testing.T) {
	rules := specimenRules(t, 0.7)
	if len(rules) != 1 {
		t.Fatalf("len(rules) = %d, want 1", len(rules))
	}
	if rules[0].Consequent != "B" || !reflect.DeepEqual(rules[0].Antecedent, []string{"C"}) {
		t.Errorf("rules[0] = %+v, want C -> B", rules[0])
	}
}

func TestRuleIndexRecommend(t *testing.T) {
	ix := BuildRuleIndex(specimenRules(t, 0.2))

	tests := []struct {
		name    string
		basket  []string
		exclude map[string]bool
		k       int
		want    []string
		scores  []float64
	}{
		{name: "solo A", basket: []string{"A"}, k: 5, want: []string{"B"}, scores: []float64{2.0 / 3.0}},
		{name: "solo C", basket: []string{"C"}, k: 5, want: []string{"B"}, scores: []float64{1.0}},
		{name: "A y C suman sobre B", basket: []string{"A", "C"}, k: 5, want: []string{"B"}, scores: []float64{1.0 + 2.0/3.0}},
		{name: "consecuente en canasta no se repite", basket: []string{"A", "B"}, k: 5, want: []string{"C"}, scores: []float64{2.0 / 3.0}},
		{name: "exclude filtra", basket: []string{"A"}, exclude: map[string]bool{"B": true}, k: 5, want: []string{}},
		{name: "k cero", basket: []string{"A"}, k: 0, want: []string{}},
		{name: "canasta vacía", basket: nil, k: 5, want: []string{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ix.Recommend(tc.basket, tc.exclude, tc.k)
			if len(got) != len(tc.want) {
				t.Fatalf("len = %d, want %d (%v)", len(got), len(tc.want), got)
			}
			for i := range got {
				if got[i].ItemID != tc.want[i] {
					t.Errorf("item[%d] = %s, want %s", i, got[i].ItemID, tc.want[i])
				}
				if tc.scores != nil && !almostEqual(got[i].Score, tc.scores[i]) {
					t.Errorf("score[%d] = %v, want %v", i, got[i].Score, tc.scores[i])
				}
			}
		})
	}
}

func TestRecommendDeterministic(t *testing.T) {
	// Varias reglas con el mismo consecuente para forzar sumas de floats.
	txs := []Transaction{
		{"a", "b", "x"},
		{"a", "b", "x"},
		{"a", "c", "x"},
		{"b", "c", "x"},
		{"a", "b", "c"},
		{"a", "x"},
		{"b", "x"},
	}
	itemsets, err := MineFrequentItemsets(txs, 2)
	if err != nil {
		t.Fatalf("MineFrequentItemsets() error = %v", err)
	}
	ix := BuildRuleIndex(DeriveRules(itemsets, 0.1))
	basket := []string{"a", "b", "c"}
	first := ix.Recommend(basket, nil, 10)
	if len(first) == 0 {
		t.Fatal("sin recomendaciones para la canasta de prueba")
	}
	for i := 0; i < 10; i++ {
		again := ix.Recommend(basket, nil, 10)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("corrida %d: %v, want %v", i, again, first)
		}
	}
}

func TestRulesRoundTripDocs(t *testing.T) {
	rules := specimenRules(t, 0.2)
	back := RulesFromDocs(RulesToDocs(rules))
	if !reflect.DeepEqual(rules, back) {
		t.Errorf("round-trip = %+v, want %+v", back, rules)
	}
}
