package stats

import (
	"reflect"
	"testing"

	"github.com/openpathway/pathway-analyzer/pkg/model"
)

func TestCountTypes(t *testing.T) {
	tests := []struct {
		name        string
		occurrences []model.TypeOccurrence
		primaryType string
		wantCounts  TypeCounts
		wantTotal   int
	}{
		{
			name: "single types count unconditionally",
			occurrences: []model.TypeOccurrence{
				model.Single("Protein"),
				model.Single("Metabolite"),
				model.Single("Protein"),
			},
			primaryType: "",
			wantCounts:  TypeCounts{"Protein": 2, "Metabolite": 1},
			wantTotal:   3,
		},
		{
			name: "co-occurring set counts each member except primary",
			occurrences: []model.TypeOccurrence{
				model.Single("Protein"),
				model.CoOccurring("Protein", "DataNode"),
				model.Single("Protein"),
			},
			primaryType: "DataNode",
			wantCounts:  TypeCounts{"Protein": 3},
			wantTotal:   3,
		},
		{
			name: "bare primary set becomes untyped",
			occurrences: []model.TypeOccurrence{
				model.CoOccurring("DataNode"),
				model.CoOccurring("GeneProduct", "DataNode"),
			},
			primaryType: "DataNode",
			wantCounts:  TypeCounts{"UntypedDataNode": 1, "GeneProduct": 1},
			wantTotal:   2,
		},
		{
			name: "bare directed interaction tracked separately",
			occurrences: []model.TypeOccurrence{
				model.CoOccurring("DirectedInteraction", "Interaction"),
				model.CoOccurring("Stimulation", "DirectedInteraction", "Interaction"),
			},
			primaryType: "Interaction",
			wantCounts: TypeCounts{
				"DirectedInteraction":        2,
				"Stimulation":                1,
				"UntypedDirectedInteraction": 1,
			},
			wantTotal: 2,
		},
		{
			name: "no primary disables untyped tracking",
			occurrences: []model.TypeOccurrence{
				model.CoOccurring("DirectedInteraction", "Interaction"),
			},
			primaryType: "",
			wantCounts:  TypeCounts{"DirectedInteraction": 1, "Interaction": 1},
			wantTotal:   1,
		},
		{
			name:        "empty input",
			occurrences: nil,
			primaryType: "DataNode",
			wantCounts:  TypeCounts{},
			wantTotal:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counts, total := CountTypes(tt.occurrences, tt.primaryType)
			if !reflect.DeepEqual(counts, tt.wantCounts) {
				t.Errorf("counts = %v, want %v", counts, tt.wantCounts)
			}
			if total != tt.wantTotal {
				t.Errorf("total = %d, want %d", total, tt.wantTotal)
			}
		})
	}
}

func statGraph(t *testing.T) *model.PathwayGraph {
	t.Helper()
	g := model.NewPathwayGraph(model.PathwayInfo{Identifier: "WP1591", Title: "Heart Development"})

	addNode := func(id, namespace string) {
		rec := make(model.Record)
		rec.Add(model.KeyNamespace, namespace)
		g.AddNode(id, rec)
	}
	addNode("hgnc:11766", "hgnc")
	addNode("hgnc:6770", "hgnc")
	addNode("chebi:17234", "chebi")

	edge := func(typ string) model.Record {
		rec := make(model.Record)
		rec.Add(model.KeyInteractionTypes, typ)
		return rec
	}
	g.AddEdge("hgnc:11766", "hgnc:6770", edge("stimulation"))
	g.AddEdge("hgnc:11766", "hgnc:6770", edge("phosphorylation"))
	g.AddEdge("hgnc:6770", "chebi:17234", edge("stimulation"))

	return g
}

func TestGraphCounts(t *testing.T) {
	nodeCounts, edgeCounts := GraphCounts(statGraph(t))

	wantNodes := TypeCounts{"hgnc": 2, "chebi": 1}
	if !reflect.DeepEqual(nodeCounts, wantNodes) {
		t.Errorf("node counts = %v, want %v", nodeCounts, wantNodes)
	}
	wantEdges := TypeCounts{"stimulation": 2, "phosphorylation": 1}
	if !reflect.DeepEqual(edgeCounts, wantEdges) {
		t.Errorf("edge counts = %v, want %v", edgeCounts, wantEdges)
	}
}

func TestGraphCountsUnknownFallback(t *testing.T) {
	g := model.NewPathwayGraph(model.PathwayInfo{})
	g.AddNode("bare", nil)
	g.AddEdge("bare", "bare", nil)

	nodeCounts, edgeCounts := GraphCounts(g)

	if nodeCounts[model.Unknown] != 1 {
		t.Errorf("untyped node not counted as unknown: %v", nodeCounts)
	}
	if edgeCounts[model.Unknown] != 1 {
		t.Errorf("untyped edge not counted as unknown: %v", edgeCounts)
	}
}

func TestNewPathwayStatistics(t *testing.T) {
	nodeOccs := []model.TypeOccurrence{
		model.CoOccurring("GeneProduct", "DataNode"),
		model.CoOccurring("GeneProduct", "DataNode"),
		model.CoOccurring("Metabolite", "DataNode"),
	}
	edgeOccs := []model.TypeOccurrence{
		model.CoOccurring("Stimulation", "DirectedInteraction", "Interaction"),
		model.CoOccurring("DirectedInteraction", "Interaction"),
		model.Single("Conversion"),
	}

	ps := NewPathwayStatistics(nodeOccs, edgeOccs, "DataNode", "Interaction", statGraph(t))

	wantSourceNodes := TypeCounts{"GeneProduct": 2, "Metabolite": 1}
	if !reflect.DeepEqual(ps[CategorySourceNodes], wantSourceNodes) {
		t.Errorf("%s = %v, want %v", CategorySourceNodes, ps[CategorySourceNodes], wantSourceNodes)
	}

	wantSourceEdges := TypeCounts{
		"Stimulation":                1,
		"DirectedInteraction":        2,
		"Conversion":                 1,
		"UntypedDirectedInteraction": 1,
	}
	if !reflect.DeepEqual(ps[CategorySourceEdges], wantSourceEdges) {
		t.Errorf("%s = %v, want %v", CategorySourceEdges, ps[CategorySourceEdges], wantSourceEdges)
	}

	wantTotals := TypeCounts{
		CategorySourceNodes: 3,
		CategorySourceEdges: 3,
		CategoryGraphNodes:  3,
		CategoryGraphEdges:  3,
	}
	if !reflect.DeepEqual(ps[CategoryTotals], wantTotals) {
		t.Errorf("%s = %v, want %v", CategoryTotals, ps[CategoryTotals], wantTotals)
	}
}

func TestGlobalAdd(t *testing.T) {
	g := NewGlobal()

	g.Add("Pathway One", PathwayStatistics{
		CategorySourceNodes: TypeCounts{"Protein": 2, "Metabolite": 1},
	})
	g.Add("Pathway Two", PathwayStatistics{
		CategorySourceNodes: TypeCounts{"Protein": 3},
		CategorySourceEdges: TypeCounts{"Stimulation": 1},
	})

	want := PathwayStatistics{
		CategorySourceNodes: TypeCounts{"Protein": 5, "Metabolite": 1},
		CategorySourceEdges: TypeCounts{"Stimulation": 1},
	}
	if !reflect.DeepEqual(g.Categories, want) {
		t.Errorf("Categories = %v, want %v", g.Categories, want)
	}

	if got := g.PathwayNames(); !reflect.DeepEqual(got, []string{"Pathway One", "Pathway Two"}) {
		t.Errorf("PathwayNames() = %v", got)
	}
	if g.PathwayCount() != 2 {
		t.Errorf("PathwayCount() = %d, want 2", g.PathwayCount())
	}
}

func TestGlobalAddSkipsEmptyCategories(t *testing.T) {
	g := NewGlobal()

	g.Add("Sparse", PathwayStatistics{
		CategorySourceNodes: TypeCounts{},
		CategorySourceEdges: TypeCounts{"Stimulation": 1},
	})

	if _, ok := g.Categories[CategorySourceNodes]; ok {
		t.Error("empty category must not be materialized in the totals")
	}
	if g.Categories[CategorySourceEdges]["Stimulation"] != 1 {
		t.Errorf("Categories = %v", g.Categories)
	}
}
