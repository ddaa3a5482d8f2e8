package recommender

import (
	"sort"

	"github.com/dinhln03/fsds-bwai-recs/internal/models"
)

// Regla de asociación: si la canasta contiene todo el antecedente, el
// consecuente es candidato. Support es el soporte del itemset completo
// (antecedente + consecuente).
type Rule struct {
	Antecedent []string
	Consequent string
	Support    int
	Confidence float64
}

// DeriveRules genera reglas a partir de los itemsets frecuentes: por cada
// itemset de tamaño >= 2 se prueba cada ítem como consecuente y se filtra por
// confianza mínima (soporte del itemset / soporte del antecedente). La salida
// es determinista: confianza desc, soporte desc, consecuente asc.
func DeriveRules(itemsets FrequentItemsets, minConfidence float64) []Rule {
	keys := make([]string, 0, len(itemsets))
	for k := range itemsets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var rules []Rule
	for _, key := range keys {
		items := itemsFromKey(key)
		if len(items) < 2 {
			continue
		}
		sup := itemsets[key]
		for i, consequent := range items {
			ant := make([]string, 0, len(items)-1)
			ant = append(ant, items[:i]...)
			ant = append(ant, items[i+1:]...)
			antSup := itemsets[itemsetKey(ant)]
			if antSup == 0 {
				// No debería pasar: todo subconjunto de un frecuente es frecuente.
				continue
			}
			conf := float64(sup) / float64(antSup)
			if conf >= minConfidence {
				rules = append(rules, Rule{Antecedent: ant, Consequent: consequent, Support: sup, Confidence: conf})
			}
		}
	}
	sort.Slice(rules, func(i, j int) bool {
		if rules[i].Confidence != rules[j].Confidence {
			return rules[i].Confidence > rules[j].Confidence
		}
		if rules[i].Support != rules[j].Support {
			return rules[i].Support > rules[j].Support
		}
		return rules[i].Consequent < rules[j].Consequent
	})
	return rules
}

// RuleIndex indexa las reglas por ítem del antecedente para evaluar una
// canasta sin recorrer todas las reglas. Inmutable una vez construido.
type RuleIndex struct {
	rules  []Rule
	byItem map[string][]int
}

func BuildRuleIndex(rules []Rule) *RuleIndex {
	ix := &RuleIndex{rules: rules, byItem: make(map[string][]int)}
	for i, r := range rules {
		for _, it := range r.Antecedent {
			ix.byItem[it] = append(ix.byItem[it], i)
		}
	}
	return ix
}

func (ix *RuleIndex) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.rules)
}

func (ix *RuleIndex) Rules() []Rule {
	if ix == nil {
		return nil
	}
	return ix.rules
}

// Recommend evalúa la canasta: una regla aplica si su antecedente está
// contenido en la canasta y su consecuente no aparece ni en la canasta ni en
// exclude. El puntaje de un candidato es la suma de confianzas de las reglas
// que lo proponen; empates por suma de soportes desc y luego id asc.
func (ix *RuleIndex) Recommend(basket []string, exclude map[string]bool, k int) []models.RecItem {
	if ix.Len() == 0 || len(basket) == 0 || k <= 0 {
		return nil
	}
	inBasket := make(map[string]bool, len(basket))
	for _, it := range basket {
		inBasket[it] = true
	}

	// Se juntan los índices de reglas candidatas y se recorren en orden fijo
	// para que la suma de floats sea idéntica entre corridas.
	seen := make(map[int]bool)
	var candidates []int
	for _, it := range basket {
		for _, ri := range ix.byItem[it] {
			if !seen[ri] {
				seen[ri] = true
				candidates = append(candidates, ri)
			}
		}
	}
	sort.Ints(candidates)

	scores := map[string]float64{}
	supports := map[string]int{}
	for _, ri := range candidates {
		r := ix.rules[ri]
		applies := true
		for _, a := range r.Antecedent {
			if !inBasket[a] {
				applies = false
				break
			}
		}
		if !applies || inBasket[r.Consequent] || exclude[r.Consequent] {
			continue
		}
		scores[r.Consequent] += r.Confidence
		supports[r.Consequent] += r.Support
	}

	out := make([]models.RecItem, 0, len(scores))
	for it, sc := range scores {
		out = append(out, models.RecItem{ItemID: it, Score: sc})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		if supports[out[i].ItemID] != supports[out[j].ItemID] {
			return supports[out[i].ItemID] > supports[out[j].ItemID]
		}
		return out[i].ItemID < out[j].ItemID
	})
	if len(out) > k {
		out = out[:k]
	}
	return out
}

// ====== Conversión a/desde la forma persistida ======

func RulesToDocs(rules []Rule) []models.RuleDoc {
	docs := make([]models.RuleDoc, 0, len(rules))
	for _, r := range rules {
		docs = append(docs, models.RuleDoc{
			Antecedent: r.Antecedent,
			Consequent: r.Consequent,
			Support:    r.Support,
			Confidence: r.Confidence,
		})
	}
	return docs
}

func RulesFromDocs(docs []models.RuleDoc) []Rule {
	rules := make([]Rule, 0, len(docs))
	for _, d := range docs {
		rules = append(rules, Rule{
			Antecedent: d.Antecedent,
			Consequent: d.Consequent,
			Support:    d.Support,
			Confidence: d.Confidence,
		})
	}
	return rules
}
