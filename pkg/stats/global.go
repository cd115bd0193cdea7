package stats

import "sort"

// Global accumulates statistics across a batch run. Category totals only
// ever grow; per-pathway detail is kept aside for the tabular export. Not
// safe for concurrent mutation, the runner finishes one pathway before
// starting the next.
type Global struct {
	Categories  PathwayStatistics            `json:"categories"`
	AllPathways map[string]PathwayStatistics `json:"all_pathways"`
}

// NewGlobal creates an empty accumulator.
func NewGlobal() *Global {
	return &Global{
		Categories:  make(PathwayStatistics),
		AllPathways: make(map[string]PathwayStatistics),
	}
}

// Add merges one pathway's statistics into the running totals and records
// the detail under the pathway's name. Empty categories contribute nothing.
func (g *Global) Add(pathwayName string, ps PathwayStatistics) {
	for category, counts := range ps {
		if len(counts) == 0 {
			continue
		}
		existing, ok := g.Categories[category]
		if !ok {
			existing = make(TypeCounts)
			g.Categories[category] = existing
		}
		existing.Add(counts)
	}
	g.AllPathways[pathwayName] = ps
}

// Merge folds another accumulator into this one by per-type summation.
// Pathways present in both keep other's detail.
func (g *Global) Merge(other *Global) {
	for category, counts := range other.Categories {
		if len(counts) == 0 {
			continue
		}
		existing, ok := g.Categories[category]
		if !ok {
			existing = make(TypeCounts)
			g.Categories[category] = existing
		}
		existing.Add(counts)
	}
	for name, ps := range other.AllPathways {
		g.AllPathways[name] = ps
	}
}

// PathwayNames returns the recorded pathway names in sorted order.
func (g *Global) PathwayNames() []string {
	names := make([]string, 0, len(g.AllPathways))
	for name := range g.AllPathways {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PathwayCount returns how many pathways have been recorded.
func (g *Global) PathwayCount() int {
	return len(g.AllPathways)
}
