package recommender

import (
	"sort"

	"github.com/dinhln03/fsds-bwai-recs/internal/models"
)

// PopularityIndex mantiene el ranking global por conteo de interacciones.
// Los scores que expone van normalizados contra el máximo (el más popular
// vale 1.0). Inmutable una vez construido.
type PopularityIndex struct {
	counts map[string]int64
	ranked []string
	max    int64
}

// BuildPopularityIndex cuenta interacciones por ítem; registros sin itemId
// se ignoran.
func BuildPopularityIndex(interactions []models.InteractionDoc) *PopularityIndex {
	counts := make(map[string]int64, 64)
	for _, in := range interactions {
		if in.ItemID == "" {
			continue
		}
		counts[in.ItemID]++
	}
	return popularityFromCounts(counts)
}

// PopularityFromCounts arma el índice desde conteos ya agregados (el
// pipeline $group de Mongo).
func PopularityFromCounts(counts []models.ItemCount) *PopularityIndex {
	m := make(map[string]int64, len(counts))
	for _, c := range counts {
		if c.ItemID == "" || c.Count <= 0 {
			continue
		}
		m[c.ItemID] = c.Count
	}
	return popularityFromCounts(m)
}

func popularityFromCounts(counts map[string]int64) *PopularityIndex {
	ranked := make([]string, 0, len(counts))
	var max int64
	for it, c := range counts {
		ranked = append(ranked, it)
		if c > max {
			max = c
		}
	}
	sort.Slice(ranked, func(i, j int) bool {
		if counts[ranked[i]] != counts[ranked[j]] {
			return counts[ranked[i]] > counts[ranked[j]]
		}
		return ranked[i] < ranked[j]
	})
	return &PopularityIndex{counts: counts, ranked: ranked, max: max}
}

func (p *PopularityIndex) score(item string) float64 {
	return float64(p.counts[item]) / float64(p.max)
}

// TopK devuelve los k más populares (conteo desc, empates por id asc).
func (p *PopularityIndex) TopK(k int) []models.RecItem {
	if p == nil || k <= 0 {
		return nil
	}
	n := k
	if n > len(p.ranked) {
		n = len(p.ranked)
	}
	out := make([]models.RecItem, 0, n)
	for _, it := range p.ranked[:n] {
		out = append(out, models.RecItem{ItemID: it, Score: p.score(it)})
	}
	return out
}

// Fill completa base con populares hasta llegar a k, saltando los que ya
// están y los excluidos.
func (p *PopularityIndex) Fill(base []models.RecItem, exclude map[string]bool, k int) []models.RecItem {
	if p == nil || len(base) >= k {
		return base
	}
	have := make(map[string]bool, len(base))
	for _, r := range base {
		have[r.ItemID] = true
	}
	for _, it := range p.ranked {
		if len(base) >= k {
			break
		}
		if have[it] || exclude[it] {
			continue
		}
		base = append(base, models.RecItem{ItemID: it, Score: p.score(it)})
	}
	return base
}

func (p *PopularityIndex) Count(item string) int64 {
	if p == nil {
		return 0
	}
	return p.counts[item]
}

func (p *PopularityIndex) Len() int {
	if p == nil {
		return 0
	}
	return len(p.ranked)
}
