package stats

import (
	"sort"

	"github.com/openpathway/pathway-analyzer/pkg/model"
)

// PathwayStatistics holds one pathway's type counts keyed by category.
type PathwayStatistics map[string]TypeCounts

// Clone returns an independent copy.
func (ps PathwayStatistics) Clone() PathwayStatistics {
	out := make(PathwayStatistics, len(ps))
	for category, counts := range ps {
		out[category] = counts.Clone()
	}
	return out
}

// Categories returns the category names in sorted order.
func (ps PathwayStatistics) Categories() []string {
	categories := make([]string, 0, len(ps))
	for category := range ps {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	return categories
}

// GraphCounts derives type distributions from the canonical graph: each
// node counted once under its namespace, each edge once under its
// representative interaction type. Nodes and edges without the attribute
// fall under the unknown type.
func GraphCounts(g *model.PathwayGraph) (TypeCounts, TypeCounts) {
	nodeCounts := make(TypeCounts)
	for _, id := range g.NodeIDs() {
		rec, _ := g.Node(id)
		namespace := rec.Get(model.KeyNamespace)
		if namespace == "" {
			namespace = model.Unknown
		}
		nodeCounts[namespace]++
	}

	edgeCounts := make(TypeCounts)
	for _, edge := range g.Edges() {
		typ := edge.Attributes.Get(model.KeyInteractionTypes)
		if typ == "" {
			typ = model.Unknown
		}
		edgeCounts[typ]++
	}

	return nodeCounts, edgeCounts
}

// NewPathwayStatistics rolls one pathway up into its per-category counts:
// source node and interaction types as parsed, graph node and edge types
// after harmonization, and a totals category pairing the raw source counts
// with the canonical graph's size.
func NewPathwayStatistics(nodeOccs, edgeOccs []model.TypeOccurrence, primaryNodeType, primaryEdgeType string, g *model.PathwayGraph) PathwayStatistics {
	nodeCounts, totalNodes := CountTypes(nodeOccs, primaryNodeType)
	edgeCounts, totalEdges := CountTypes(edgeOccs, primaryEdgeType)
	graphNodes, graphEdges := GraphCounts(g)

	return PathwayStatistics{
		CategorySourceNodes: nodeCounts,
		CategorySourceEdges: edgeCounts,
		CategoryGraphNodes:  graphNodes,
		CategoryGraphEdges:  graphEdges,
		CategoryTotals: TypeCounts{
			CategorySourceNodes: totalNodes,
			CategorySourceEdges: totalEdges,
			CategoryGraphNodes:  g.NodeCount(),
			CategoryGraphEdges:  g.EdgeCount(),
		},
	}
}
