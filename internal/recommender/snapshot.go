package recommender

import (
	"sync/atomic"

	"github.com/dinhln03/fsds-bwai-recs/internal/models"
)

// Snapshot inmutable de lo servible: reglas minadas, ranking de popularidad
// y metadata del entrenamiento que las produjo. Entrenar arma un snapshot
// nuevo; el que está en vivo no se muta nunca.
type Snapshot struct {
	Rules   *RuleIndex
	Popular *PopularityIndex
	Meta    *models.ModelMetadata
}

// Ready indica si hay reglas para servir fp-growth.
func (s *Snapshot) Ready() bool {
	return s != nil && s.Rules.Len() > 0
}

// SnapshotRef es el handle compartido entre serving y entrenamiento: cada
// request toma el puntero una sola vez y trabaja sobre ese snapshot completo;
// el entrenamiento publica el suyo con un swap atómico.
type SnapshotRef struct {
	ptr atomic.Pointer[Snapshot]
}

func NewSnapshotRef() *SnapshotRef {
	r := &SnapshotRef{}
	r.ptr.Store(&Snapshot{})
	return r
}

// Current nunca devuelve nil.
func (r *SnapshotRef) Current() *Snapshot {
	return r.ptr.Load()
}

func (r *SnapshotRef) Swap(s *Snapshot) {
	if s == nil {
		s = &Snapshot{}
	}
	r.ptr.Store(s)
}

// Update publica el resultado de fn aplicado al snapshot vigente. Si otro
// swap entra en el medio, fn se reevalúa sobre ese snapshot nuevo y se
// reintenta el compare-and-swap.
func (r *SnapshotRef) Update(fn func(cur *Snapshot) *Snapshot) {
	for {
		cur := r.ptr.Load()
		next := fn(cur)
		if next == nil {
			next = &Snapshot{}
		}
		if r.ptr.CompareAndSwap(cur, next) {
			return
		}
	}
}

// SwapPopular publica un índice de popularidad nuevo conservando las reglas
// y la metadata vigentes.
func (r *SnapshotRef) SwapPopular(p *PopularityIndex) {
	r.Update(func(cur *Snapshot) *Snapshot {
		return &Snapshot{Rules: cur.Rules, Popular: p, Meta: cur.Meta}
	})
}
