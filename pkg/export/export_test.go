package export

import (
	"bytes"
	"encoding/csv"
	"reflect"
	"testing"

	"github.com/openpathway/pathway-analyzer/pkg/stats"
)

func TestColumnHeader(t *testing.T) {
	col := Column{Type: "Protein", Category: stats.CategorySourceNodes}
	if got, want := col.Header(), `"Protein" RDF nodes`; got != want {
		t.Errorf("Header() = %q, want %q", got, want)
	}
}

func TestBuildTableSparseCells(t *testing.T) {
	all := map[string]stats.PathwayStatistics{
		"Pathway One": {stats.CategorySourceNodes: stats.TypeCounts{"Protein": 2}},
		"Pathway Two": {stats.CategorySourceNodes: stats.TypeCounts{"Gene": 1}},
	}

	table := BuildTable(all)

	wantColumns := []Column{
		{Type: "Gene", Category: stats.CategorySourceNodes},
		{Type: "Protein", Category: stats.CategorySourceNodes},
	}
	if !reflect.DeepEqual(table.Columns, wantColumns) {
		t.Fatalf("Columns = %v, want %v", table.Columns, wantColumns)
	}

	wantRows := []Row{
		{Pathway: "Pathway One", Cells: []string{"", "2"}},
		{Pathway: "Pathway Two", Cells: []string{"1", ""}},
	}
	if !reflect.DeepEqual(table.Rows, wantRows) {
		t.Errorf("Rows = %v, want %v", table.Rows, wantRows)
	}
}

func TestBuildTableOmitsUnseenPairs(t *testing.T) {
	all := map[string]stats.PathwayStatistics{
		"Pathway One": {
			stats.CategorySourceNodes: stats.TypeCounts{"Protein": 2},
			stats.CategorySourceEdges: stats.TypeCounts{"Stimulation": 4},
		},
	}

	table := BuildTable(all)

	for _, col := range table.Columns {
		if col.Type == "Protein" && col.Category == stats.CategorySourceEdges {
			t.Error("Protein was never observed under the interaction category")
		}
		if col.Type == "Stimulation" && col.Category == stats.CategorySourceNodes {
			t.Error("Stimulation was never observed under the node category")
		}
	}
	if len(table.Columns) != 2 {
		t.Errorf("len(Columns) = %d, want 2", len(table.Columns))
	}
}

func TestBuildTableStableAcrossCalls(t *testing.T) {
	all := map[string]stats.PathwayStatistics{
		"B": {stats.CategorySourceNodes: stats.TypeCounts{"Protein": 1, "Rna": 2}},
		"A": {stats.CategoryGraphEdges: stats.TypeCounts{"stimulation": 3}},
		"C": {stats.CategorySourceEdges: stats.TypeCounts{"Conversion": 1}},
	}

	first := BuildTable(all)
	second := BuildTable(all)

	if !reflect.DeepEqual(first, second) {
		t.Error("repeated builds of the same input disagree")
	}
	if got := []string{first.Rows[0].Pathway, first.Rows[1].Pathway, first.Rows[2].Pathway}; !reflect.DeepEqual(got, []string{"A", "B", "C"}) {
		t.Errorf("row order = %v", got)
	}
}

func TestBuildTableEmpty(t *testing.T) {
	table := BuildTable(nil)
	if len(table.Columns) != 0 || len(table.Rows) != 0 {
		t.Errorf("empty input produced columns=%v rows=%v", table.Columns, table.Rows)
	}
}

func TestWriteCSVRoundTrip(t *testing.T) {
	all := map[string]stats.PathwayStatistics{
		"Heart Development": {
			stats.CategorySourceNodes: stats.TypeCounts{"GeneProduct": 5, "Metabolite": 2},
		},
		"Wnt Signaling": {
			stats.CategorySourceNodes: stats.TypeCounts{"GeneProduct": 7},
		},
	}
	table := BuildTable(all)

	var buf bytes.Buffer
	if err := WriteCSV(&buf, table, '\t'); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	r := csv.NewReader(&buf)
	r.Comma = '\t'
	records, err := r.ReadAll()
	if err != nil {
		t.Fatalf("reading back: %v", err)
	}

	want := [][]string{
		{"pathway", `"GeneProduct" RDF nodes`, `"Metabolite" RDF nodes`},
		{"Heart Development", "5", "2"},
		{"Wnt Signaling", "7", ""},
	}
	if !reflect.DeepEqual(records, want) {
		t.Errorf("records = %v, want %v", records, want)
	}
}
