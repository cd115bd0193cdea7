package graph

import (
	"sort"

	"github.com/openpathway/pathway-analyzer/pkg/model"
)

// Build assembles a pathway multigraph from harmonized node records and the
// interactions between them. Nodes are inserted in sorted key order so that
// repeated builds of the same pathway produce identical graphs.
func Build(info model.PathwayInfo, nodes map[string]model.Record, interactions []model.Interaction) *model.PathwayGraph {
	g := model.NewPathwayGraph(info)

	keys := make([]string, 0, len(nodes))
	for key := range nodes {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		g.AddNode(key, nodes[key])
	}

	for _, interaction := range interactions {
		g.AddEdge(interaction.Subject, interaction.Object, interaction.Attributes)
	}

	return g
}
