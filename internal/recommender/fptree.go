package recommender

import (
	"errors"
	"sort"
	"strings"
)

// Una transacción es el conjunto de ítems con los que interactuó un usuario
// (o una canasta derivada de tags cuando hay pocos datos reales).
type Transaction []string

// Soportes de los itemsets frecuentes, indexados por clave canónica.
type FrequentItemsets map[string]int

var ErrInvalidMinSupport = errors.New("min_support debe ser al menos 1")

const keySep = "\x1f"

// Clave canónica de un itemset: ítems ordenados, unidos por un separador que
// no aparece en ids reales.
func itemsetKey(items []string) string {
	s := append([]string(nil), items...)
	sort.Strings(s)
	return strings.Join(s, keySep)
}

func itemsFromKey(key string) []string {
	return strings.Split(key, keySep)
}

// Support devuelve el soporte absoluto del itemset (0 si no es frecuente).
func (f FrequentItemsets) Support(items ...string) int {
	return f[itemsetKey(items)]
}

// ====== FP-tree ======

type fpNode struct {
	item     string
	count    int
	parent   *fpNode
	children map[string]*fpNode
}

// Transacción pesada: en los árboles condicionales un camino puede
// representar varias transacciones originales.
type weightedTx struct {
	items []string
	count int
}

// buildTree arma un FP-tree: descarta los ítems por debajo de minSupport y
// ordena cada transacción por soporte descendente (empates por id ascendente)
// para que los prefijos comunes compartan rama. Devuelve la tabla de headers
// (ítem -> nodos) y los soportes de los ítems que quedaron.
func buildTree(txs []weightedTx, minSupport int) (map[string][]*fpNode, map[string]int) {
	supports := map[string]int{}
	for _, tx := range txs {
		for _, it := range tx.items {
			supports[it] += tx.count
		}
	}
	for it, sup := range supports {
		if sup < minSupport {
			delete(supports, it)
		}
	}

	root := &fpNode{children: map[string]*fpNode{}}
	header := map[string][]*fpNode{}
	for _, tx := range txs {
		items := make([]string, 0, len(tx.items))
		for _, it := range tx.items {
			if _, ok := supports[it]; ok {
				items = append(items, it)
			}
		}
		sort.Slice(items, func(i, j int) bool {
			if supports[items[i]] != supports[items[j]] {
				return supports[items[i]] > supports[items[j]]
			}
			return items[i] < items[j]
		})
		node := root
		for _, it := range items {
			child, ok := node.children[it]
			if !ok {
				child = &fpNode{item: it, parent: node, children: map[string]*fpNode{}}
				node.children[it] = child
				header[it] = append(header[it], child)
			}
			child.count += tx.count
			node = child
		}
	}
	return header, supports
}

// mineTree recorre el header de menor a mayor soporte y mina recursivamente
// el árbol condicional de cada ítem.
func mineTree(header map[string][]*fpNode, supports map[string]int, minSupport int, prefix []string, out FrequentItemsets) {
	items := make([]string, 0, len(header))
	for it := range header {
		items = append(items, it)
	}
	sort.Slice(items, func(i, j int) bool {
		if supports[items[i]] != supports[items[j]] {
			return supports[items[i]] < supports[items[j]]
		}
		return items[i] < items[j]
	})

	for _, item := range items {
		itemset := make([]string, 0, len(prefix)+1)
		itemset = append(itemset, prefix...)
		itemset = append(itemset, item)
		out[itemsetKey(itemset)] = supports[item]

		// Base de patrones condicional: el camino hasta la raíz desde cada
		// nodo del ítem, pesado por el conteo del nodo.
		var cond []weightedTx
		for _, node := range header[item] {
			var path []string
			for p := node.parent; p != nil && p.item != ""; p = p.parent {
				path = append(path, p.item)
			}
			if len(path) > 0 {
				cond = append(cond, weightedTx{items: path, count: node.count})
			}
		}
		if len(cond) == 0 {
			continue
		}
		condHeader, condSupports := buildTree(cond, minSupport)
		if len(condHeader) == 0 {
			continue
		}
		mineTree(condHeader, condSupports, minSupport, itemset, out)
	}
}

// MineFrequentItemsets corre FP-Growth sobre las transacciones. minSupport es
// el soporte absoluto (número mínimo de transacciones). Cada transacción se
// trata como conjunto: ids vacíos y repetidos se descartan antes de contar.
func MineFrequentItemsets(txs []Transaction, minSupport int) (FrequentItemsets, error) {
	if minSupport <= 0 {
		return nil, ErrInvalidMinSupport
	}
	weighted := make([]weightedTx, 0, len(txs))
	for _, tx := range txs {
		items := dedupe(tx)
		if len(items) == 0 {
			continue
		}
		weighted = append(weighted, weightedTx{items: items, count: 1})
	}
	out := make(FrequentItemsets)
	header, supports := buildTree(weighted, minSupport)
	mineTree(header, supports, minSupport, nil, out)
	return out, nil
}

// dedupe filtra vacíos y repetidos conservando el orden de aparición.
func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it == "" || seen[it] {
			continue
		}
		seen[it] = true
		out = append(out, it)
	}
	return out
}
