// Package stats tallies semantic type occurrences per pathway and
// accumulates them across a batch run.
package stats

import (
	"sort"

	"github.com/openpathway/pathway-analyzer/pkg/model"
)

// Statistic categories. The totals category nests the other four as keys,
// pairing raw source counts with what survived into the canonical graph.
const (
	CategorySourceNodes = "RDF nodes"
	CategorySourceEdges = "RDF interactions"
	CategoryGraphNodes  = "imported nodes"
	CategoryGraphEdges  = "imported edges"
	CategoryTotals      = "graph_vs_source"
)

const (
	TypeInteraction         = "Interaction"
	TypeDirectedInteraction = "DirectedInteraction"

	untypedPrefix = "Untyped"

	// UntypedDirectedInteraction counts directed interactions that carry no
	// further sub-type annotation.
	UntypedDirectedInteraction = untypedPrefix + TypeDirectedInteraction
)

// TypeCounts maps a semantic type name to its occurrence count.
type TypeCounts map[string]int

// Add merges other into tc by per-type summation.
func (tc TypeCounts) Add(other TypeCounts) {
	for typ, count := range other {
		tc[typ] += count
	}
}

// Clone returns an independent copy.
func (tc TypeCounts) Clone() TypeCounts {
	out := make(TypeCounts, len(tc))
	for typ, count := range tc {
		out[typ] = count
	}
	return out
}

// Types returns the counted type names in sorted order.
func (tc TypeCounts) Types() []string {
	types := make([]string, 0, len(tc))
	for typ := range tc {
		types = append(types, typ)
	}
	sort.Strings(types)
	return types
}

// Total sums all counts.
func (tc TypeCounts) Total() int {
	total := 0
	for _, count := range tc {
		total += count
	}
	return total
}

// CountTypes tallies a list of type occurrences. A single type increments
// its own counter. Co-occurring types increment every member except
// primaryType, which is the category label itself and would only restate
// the category.
//
// When primaryType is set, two untyped cases are tracked on top: an
// occurrence of exactly {primaryType} increments Untyped<primaryType>, and
// an occurrence of exactly {DirectedInteraction, Interaction} increments
// UntypedDirectedInteraction. The second value is the number of
// occurrences seen.
func CountTypes(occurrences []model.TypeOccurrence, primaryType string) (TypeCounts, int) {
	counts := make(TypeCounts)

	for _, occ := range occurrences {
		if occ.IsSet() {
			for _, typ := range occ.Types() {
				if typ == primaryType {
					continue
				}
				counts[typ]++
			}
			if primaryType != "" {
				if occ.Is(primaryType) {
					counts[untypedPrefix+primaryType]++
				}
				if occ.Is(TypeDirectedInteraction, TypeInteraction) {
					counts[UntypedDirectedInteraction]++
				}
			}
		} else {
			for _, typ := range occ.Types() {
				counts[typ]++
			}
		}
	}

	return counts, len(occurrences)
}
