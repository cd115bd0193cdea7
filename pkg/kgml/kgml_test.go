package kgml

import (
	"reflect"
	"testing"

	"github.com/openpathway/pathway-analyzer/pkg/model"
)

const sampleKGML = `<?xml version="1.0"?>
<pathway name="path:hsa04350" org="hsa" number="04350" title="TGF-beta signaling pathway"
         link="https://www.kegg.jp/kegg-bin/show_pathway?hsa04350">
  <entry id="1" name="hsa:7040 hsa:7042" type="gene">
    <graphics name="TGFB1, CED, DPD1, TGFB..." type="rectangle"/>
  </entry>
  <entry id="2" name="hsa:7046" type="gene">
    <graphics name="TGFBR1, AAT5, ACVRLK4" type="rectangle"/>
  </entry>
  <entry id="3" name="cpd:C00533" type="compound">
    <graphics name="C00533" type="circle"/>
  </entry>
  <entry id="4" name="path:hsa04010" type="map">
    <graphics name="MAPK signaling pathway" type="roundrectangle"/>
  </entry>
  <entry id="5" name="undefined" type="group">
    <component id="1"/>
    <component id="2"/>
  </entry>
  <relation entry1="1" entry2="2" type="PPrel">
    <subtype name="activation" value="--&gt;"/>
    <subtype name="phosphorylation" value="+p"/>
  </relation>
  <relation entry1="2" entry2="4" type="maplink">
    <subtype name="compound" value="3"/>
  </relation>
  <reaction id="6" name="rn:R00239" type="reversible">
    <substrate id="3" name="cpd:C00533"/>
    <product id="7" name="cpd:C00697"/>
  </reaction>
</pathway>`

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{
			name:  "valid document",
			input: sampleKGML,
		},
		{
			name:    "empty input",
			input:   ``,
			wantErr: true,
		},
		{
			name:    "malformed xml",
			input:   `<pathway><entry id="1"`,
			wantErr: true,
		},
		{
			name:    "wrong root element",
			input:   `<query><rule name="x"/></query>`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse([]byte(tt.input))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if doc == nil {
				t.Fatal("Parse() returned nil document")
			}
		})
	}
}

func TestParseFields(t *testing.T) {
	doc, err := Parse([]byte(sampleKGML))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(doc.Entries) != 5 {
		t.Errorf("len(Entries) = %d, want 5", len(doc.Entries))
	}
	if len(doc.Relations) != 2 {
		t.Errorf("len(Relations) = %d, want 2", len(doc.Relations))
	}
	if len(doc.Reactions) != 1 {
		t.Errorf("len(Reactions) = %d, want 1", len(doc.Reactions))
	}

	entry := doc.Entries[0]
	if entry.ID != "1" || entry.Type != "gene" || entry.Name != "hsa:7040 hsa:7042" {
		t.Errorf("first entry = %+v", entry)
	}
	if entry.Graphics.Name != "TGFB1, CED, DPD1, TGFB..." {
		t.Errorf("graphics name = %q", entry.Graphics.Name)
	}

	rel := doc.Relations[0]
	if rel.Entry1 != "1" || rel.Entry2 != "2" || rel.Type != "PPrel" {
		t.Errorf("first relation = %+v", rel)
	}
	if len(rel.Subtypes) != 2 || rel.Subtypes[1].Name != "phosphorylation" {
		t.Errorf("subtypes = %+v", rel.Subtypes)
	}

	rx := doc.Reactions[0]
	if rx.Type != "reversible" || len(rx.Substrates) != 1 || len(rx.Products) != 1 {
		t.Errorf("reaction = %+v", rx)
	}
}

func TestDocumentInfo(t *testing.T) {
	doc, err := Parse([]byte(sampleKGML))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	info := doc.Info()
	want := model.PathwayInfo{
		Identifier: "hsa04350",
		Title:      "TGF-beta signaling pathway",
		Source:     "kegg",
		Organism:   "hsa",
	}
	if info != want {
		t.Errorf("Info() = %+v, want %+v", info, want)
	}
}

func TestExtract(t *testing.T) {
	doc, err := Parse([]byte(sampleKGML))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	ex := Extract(doc)

	t.Run("nodes", func(t *testing.T) {
		wantIDs := []string{"cpd:C00533", "cpd:C00697", "hsa:7040", "hsa:7042", "hsa:7046"}
		gotIDs := make([]string, 0, len(ex.Nodes))
		for id := range ex.Nodes {
			gotIDs = append(gotIDs, id)
		}
		if len(gotIDs) != len(wantIDs) {
			t.Fatalf("node ids = %v, want %v", gotIDs, wantIDs)
		}
		for _, id := range wantIDs {
			if _, ok := ex.Nodes[id]; !ok {
				t.Errorf("missing node %s", id)
			}
		}
	})

	t.Run("first gene member gets the symbol", func(t *testing.T) {
		rec := ex.Nodes["hsa:7040"]
		if got := rec.Get(model.HintHGNCSymbol); got != "TGFB1" {
			t.Errorf("symbol hint = %q, want TGFB1", got)
		}
		if got := rec.Get(model.KeyDisplayName); got != "TGFB1" {
			t.Errorf("display name = %q, want TGFB1", got)
		}
		if got := rec[model.KeyNodeTypes].Values(); !reflect.DeepEqual(got, []string{"gene", "group"}) {
			t.Errorf("node types = %v", got)
		}
	})

	t.Run("remaining members carry only the kegg id", func(t *testing.T) {
		rec := ex.Nodes["hsa:7042"]
		if rec.Has(model.HintHGNCSymbol) {
			t.Error("second member must not inherit the first member's symbol")
		}
		if got := rec.Get(model.KeyName); got != "hsa:7042" {
			t.Errorf("name = %q", got)
		}
		if got := rec.Get(model.KeyDB); got != "kegg" {
			t.Errorf("db = %q", got)
		}
	})

	t.Run("relation expands members and subtypes", func(t *testing.T) {
		var activation, phosphorylation int
		for _, in := range ex.Interactions {
			types := in.Attributes[model.KeyInteractionTypes]
			if !types.Contains("PPrel") {
				continue
			}
			if in.Object != "hsa:7046" {
				t.Errorf("PPrel object = %q, want hsa:7046", in.Object)
			}
			switch {
			case types.Contains("activation"):
				activation++
			case types.Contains("phosphorylation"):
				phosphorylation++
			}
		}
		if activation != 2 || phosphorylation != 2 {
			t.Errorf("activation = %d, phosphorylation = %d, want 2 and 2", activation, phosphorylation)
		}
	})

	t.Run("reversible reaction runs both ways", func(t *testing.T) {
		var forward, backward bool
		for _, in := range ex.Interactions {
			if !in.Attributes[model.KeyInteractionTypes].Contains("reaction") {
				continue
			}
			if in.Subject == "cpd:C00533" && in.Object == "cpd:C00697" {
				forward = true
			}
			if in.Subject == "cpd:C00697" && in.Object == "cpd:C00533" {
				backward = true
			}
		}
		if !forward || !backward {
			t.Errorf("forward = %v, backward = %v, want both", forward, backward)
		}
	})

	t.Run("map link contributes occurrences only", func(t *testing.T) {
		for _, in := range ex.Interactions {
			if in.Attributes[model.KeyInteractionTypes].Contains("maplink") {
				t.Errorf("maplink produced an edge: %+v", in)
			}
		}
		var found bool
		for _, occ := range ex.InteractionTypes {
			if occ.Is("maplink", "compound") {
				found = true
			}
		}
		if !found {
			t.Error("maplink occurrence missing from the tally")
		}
	})

	t.Run("occurrence totals", func(t *testing.T) {
		if got := len(ex.EntryTypes); got != 5 {
			t.Errorf("len(EntryTypes) = %d, want 5", got)
		}
		// Two PPrel subtypes, one maplink subtype, one reaction.
		if got := len(ex.InteractionTypes); got != 4 {
			t.Errorf("len(InteractionTypes) = %d, want 4", got)
		}
		if got := len(ex.Interactions); got != 6 {
			t.Errorf("len(Interactions) = %d, want 6", got)
		}
	})
}

func TestEntryLabel(t *testing.T) {
	tests := []struct {
		name  string
		entry Entry
		want  string
	}{
		{
			name:  "first alias wins",
			entry: Entry{Graphics: Graphics{Name: "TGFB1, CED, DPD1"}},
			want:  "TGFB1",
		},
		{
			name:  "single token",
			entry: Entry{Graphics: Graphics{Name: "C00533"}},
			want:  "C00533",
		},
		{
			name:  "truncation marker stripped",
			entry: Entry{Graphics: Graphics{Name: "TGFB1..."}},
			want:  "TGFB1",
		},
		{
			name:  "undefined label",
			entry: Entry{Graphics: Graphics{Name: "undefined"}},
			want:  "",
		},
		{
			name:  "no graphics",
			entry: Entry{},
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := entryLabel(&tt.entry); got != tt.want {
				t.Errorf("entryLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}
