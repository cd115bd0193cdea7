package rdfpath

import (
	"reflect"
	"strings"
	"testing"

	"gonum.org/v1/gonum/graph/formats/rdf"

	"github.com/openpathway/pathway-analyzer/pkg/model"
)

const wikiPathwaysSample = `<http://identifiers.org/wikipathways/WP1591_r84254> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://vocabularies.wikipathways.org/wp#Pathway> .
<http://identifiers.org/wikipathways/WP1591_r84254> <http://purl.org/dc/elements/1.1/title> "Heart Development"@en .
<http://identifiers.org/wikipathways/WP1591_r84254> <http://vocabularies.wikipathways.org/wp#organismName> "Homo sapiens" .
<http://identifiers.org/wikipathways/WP1591_r84254> <http://purl.org/dc/terms/identifier> "WP1591" .
<http://rdf.wikipathways.org/Pathway/WP1591_r84254/DataNode/dfe2e> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://vocabularies.wikipathways.org/wp#DataNode> .
<http://rdf.wikipathways.org/Pathway/WP1591_r84254/DataNode/dfe2e> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://vocabularies.wikipathways.org/wp#GeneProduct> .
<http://rdf.wikipathways.org/Pathway/WP1591_r84254/DataNode/dfe2e> <http://www.w3.org/2000/01/rdf-schema#label> "TGFB1"@en .
<http://rdf.wikipathways.org/Pathway/WP1591_r84254/DataNode/dfe2e> <http://purl.org/dc/terms/identifier> "7040" .
<http://rdf.wikipathways.org/Pathway/WP1591_r84254/DataNode/dfe2e> <http://purl.org/dc/elements/1.1/source> "Entrez Gene" .
<http://rdf.wikipathways.org/Pathway/WP1591_r84254/DataNode/dfe2e> <http://vocabularies.wikipathways.org/wp#bdbHgncSymbol> <http://identifiers.org/hgnc.symbol/TGFB1> .
<http://rdf.wikipathways.org/Pathway/WP1591_r84254/DataNode/dfe2e> <http://vocabularies.wikipathways.org/wp#bdbEntrezGene> <http://identifiers.org/ncbigene/7040> .
<http://rdf.wikipathways.org/Pathway/WP1591_r84254/DataNode/a42fb> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://vocabularies.wikipathways.org/wp#DataNode> .
<http://rdf.wikipathways.org/Pathway/WP1591_r84254/DataNode/a42fb> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://vocabularies.wikipathways.org/wp#Metabolite> .
<http://rdf.wikipathways.org/Pathway/WP1591_r84254/DataNode/a42fb> <http://www.w3.org/2000/01/rdf-schema#label> "Glucose" .
<http://rdf.wikipathways.org/Pathway/WP1591_r84254/DataNode/a42fb> <http://vocabularies.wikipathways.org/wp#bdbChEBI> <http://identifiers.org/chebi/CHEBI:17234> .
<http://rdf.wikipathways.org/Pathway/WP1591_r84254/WP/Interaction/id1> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://vocabularies.wikipathways.org/wp#Interaction> .
<http://rdf.wikipathways.org/Pathway/WP1591_r84254/WP/Interaction/id1> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://vocabularies.wikipathways.org/wp#DirectedInteraction> .
<http://rdf.wikipathways.org/Pathway/WP1591_r84254/WP/Interaction/id1> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://vocabularies.wikipathways.org/wp#Stimulation> .
<http://rdf.wikipathways.org/Pathway/WP1591_r84254/WP/Interaction/id1> <http://vocabularies.wikipathways.org/wp#source> <http://rdf.wikipathways.org/Pathway/WP1591_r84254/DataNode/dfe2e> .
<http://rdf.wikipathways.org/Pathway/WP1591_r84254/WP/Interaction/id1> <http://vocabularies.wikipathways.org/wp#target> <http://rdf.wikipathways.org/Pathway/WP1591_r84254/DataNode/a42fb> .
<http://rdf.wikipathways.org/Pathway/WP1591_r84254/WP/Interaction/id2> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://vocabularies.wikipathways.org/wp#Interaction> .
`

func TestStatements(t *testing.T) {
	stmts, err := Statements(strings.NewReader(wikiPathwaysSample))
	if err != nil {
		t.Fatalf("Statements() error = %v", err)
	}
	if len(stmts) != 21 {
		t.Errorf("len(stmts) = %d, want 21", len(stmts))
	}
}

func TestStatementsMalformed(t *testing.T) {
	_, err := Statements(strings.NewReader("this is not rdf\n"))
	if err == nil {
		t.Fatal("expected an error for malformed input")
	}
}

func TestExtractWikiPathways(t *testing.T) {
	stmts, err := Statements(strings.NewReader(wikiPathwaysSample))
	if err != nil {
		t.Fatalf("Statements() error = %v", err)
	}

	ex := ExtractWikiPathways(stmts)

	t.Run("pathway header", func(t *testing.T) {
		want := model.PathwayInfo{
			Identifier: "WP1591",
			Title:      "Heart Development",
			Source:     "wikipathways",
			Organism:   "Homo sapiens",
			Version:    "r84254",
		}
		if ex.Info != want {
			t.Errorf("Info = %+v, want %+v", ex.Info, want)
		}
	})

	t.Run("gene record", func(t *testing.T) {
		rec, ok := ex.Nodes["http://rdf.wikipathways.org/Pathway/WP1591_r84254/DataNode/dfe2e"]
		if !ok {
			t.Fatal("gene data node missing")
		}
		checks := map[string]string{
			model.KeyName:        "TGFB1",
			model.KeyIdentifier:  "7040",
			model.KeyDB:          "Entrez Gene",
			model.HintHGNCSymbol: "TGFB1",
			model.HintEntrez:     "7040",
		}
		for key, want := range checks {
			if got := rec.Get(key); got != want {
				t.Errorf("rec.Get(%s) = %q, want %q", key, got, want)
			}
		}
		if got := rec[model.KeyNodeTypes].Values(); !reflect.DeepEqual(got, []string{"DataNode", "GeneProduct"}) {
			t.Errorf("node types = %v", got)
		}
	})

	t.Run("metabolite record", func(t *testing.T) {
		rec, ok := ex.Nodes["http://rdf.wikipathways.org/Pathway/WP1591_r84254/DataNode/a42fb"]
		if !ok {
			t.Fatal("metabolite data node missing")
		}
		if got := rec.Get(model.HintChEBI); got != "CHEBI:17234" {
			t.Errorf("chebi hint = %q", got)
		}
	})

	t.Run("directed interaction edge", func(t *testing.T) {
		if len(ex.Interactions) != 1 {
			t.Fatalf("len(Interactions) = %d, want 1", len(ex.Interactions))
		}
		in := ex.Interactions[0]
		if !strings.HasSuffix(in.Subject, "/dfe2e") || !strings.HasSuffix(in.Object, "/a42fb") {
			t.Errorf("edge endpoints = %s -> %s", in.Subject, in.Object)
		}
		if !in.Attributes[model.KeyInteractionTypes].Contains("Stimulation") {
			t.Errorf("edge types = %v", in.Attributes[model.KeyInteractionTypes])
		}
	})

	t.Run("occurrences", func(t *testing.T) {
		if len(ex.NodeTypes) != 2 {
			t.Errorf("len(NodeTypes) = %d, want 2", len(ex.NodeTypes))
		}
		if len(ex.InteractionTypes) != 2 {
			t.Fatalf("len(InteractionTypes) = %d, want 2", len(ex.InteractionTypes))
		}
		// The endpoint-less interaction still counts, as a bare Interaction.
		var bare bool
		for _, occ := range ex.InteractionTypes {
			if occ.Is("Interaction") {
				bare = true
			}
		}
		if !bare {
			t.Error("bare interaction occurrence missing")
		}
	})
}

const reactomeSample = `<http://www.reactome.org/biopax/63/48887#Pathway1> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.biopax.org/release/biopax-level3.owl#Pathway> .
<http://www.reactome.org/biopax/63/48887#Pathway1> <http://www.biopax.org/release/biopax-level3.owl#displayName> "Signaling by TGFB family members" .
<http://www.reactome.org/biopax/63/48887#Protein1> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.biopax.org/release/biopax-level3.owl#Protein> .
<http://www.reactome.org/biopax/63/48887#Protein1> <http://www.biopax.org/release/biopax-level3.owl#displayName> "TGFB1" .
<http://www.reactome.org/biopax/63/48887#Protein1> <http://www.biopax.org/release/biopax-level3.owl#entityReference> <http://identifiers.org/uniprot/P01137> .
<http://www.reactome.org/biopax/63/48887#Protein2> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.biopax.org/release/biopax-level3.owl#Protein> .
<http://www.reactome.org/biopax/63/48887#Protein2> <http://www.biopax.org/release/biopax-level3.owl#displayName> "TGFBR1" .
<http://www.reactome.org/biopax/63/48887#SmallMolecule1> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.biopax.org/release/biopax-level3.owl#SmallMolecule> .
<http://www.reactome.org/biopax/63/48887#SmallMolecule1> <http://www.biopax.org/release/biopax-level3.owl#displayName> "ATP" .
<http://www.reactome.org/biopax/63/48887#BiochemicalReaction1> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.biopax.org/release/biopax-level3.owl#BiochemicalReaction> .
<http://www.reactome.org/biopax/63/48887#BiochemicalReaction1> <http://www.biopax.org/release/biopax-level3.owl#left> <http://www.reactome.org/biopax/63/48887#Protein1> .
<http://www.reactome.org/biopax/63/48887#BiochemicalReaction1> <http://www.biopax.org/release/biopax-level3.owl#right> <http://www.reactome.org/biopax/63/48887#SmallMolecule1> .
<http://www.reactome.org/biopax/63/48887#Catalysis1> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.biopax.org/release/biopax-level3.owl#Catalysis> .
<http://www.reactome.org/biopax/63/48887#Catalysis1> <http://www.biopax.org/release/biopax-level3.owl#controller> <http://www.reactome.org/biopax/63/48887#Protein2> .
<http://www.reactome.org/biopax/63/48887#Catalysis1> <http://www.biopax.org/release/biopax-level3.owl#controlled> <http://www.reactome.org/biopax/63/48887#BiochemicalReaction1> .
`

func TestExtractReactome(t *testing.T) {
	stmts, err := Statements(strings.NewReader(reactomeSample))
	if err != nil {
		t.Fatalf("Statements() error = %v", err)
	}

	ex := ExtractReactome(stmts)

	t.Run("pathway header", func(t *testing.T) {
		want := model.PathwayInfo{
			Identifier: "Pathway1",
			Title:      "Signaling by TGFB family members",
			Source:     "reactome",
		}
		if ex.Info != want {
			t.Errorf("Info = %+v, want %+v", ex.Info, want)
		}
	})

	t.Run("protein with entity reference", func(t *testing.T) {
		rec, ok := ex.Nodes["http://www.reactome.org/biopax/63/48887#Protein1"]
		if !ok {
			t.Fatal("Protein1 record missing")
		}
		if got := rec.Get(model.KeyURI); got != "http://identifiers.org/uniprot/P01137" {
			t.Errorf("uri = %q", got)
		}
		if got := rec.Get(model.KeyDisplayName); got != "TGFB1" {
			t.Errorf("display name = %q", got)
		}
		if got := rec.Get(model.KeyReactomeURI); got == "" {
			t.Error("reactome uri missing")
		}
	})

	t.Run("protein without reference keeps only reactome uri", func(t *testing.T) {
		rec, ok := ex.Nodes["http://www.reactome.org/biopax/63/48887#Protein2"]
		if !ok {
			t.Fatal("Protein2 record missing")
		}
		if rec.Has(model.KeyURI) {
			t.Error("Protein2 has no identifiers.org reference")
		}
	})

	t.Run("reaction and catalysis edges", func(t *testing.T) {
		if len(ex.Interactions) != 2 {
			t.Fatalf("len(Interactions) = %d, want 2", len(ex.Interactions))
		}

		var reaction, catalysis *model.Interaction
		for i := range ex.Interactions {
			in := &ex.Interactions[i]
			types := in.Attributes[model.KeyInteractionTypes]
			switch {
			case types.Contains("BiochemicalReaction"):
				reaction = in
			case types.Contains("Catalysis"):
				catalysis = in
			}
		}

		if reaction == nil || !strings.HasSuffix(reaction.Subject, "#Protein1") || !strings.HasSuffix(reaction.Object, "#SmallMolecule1") {
			t.Errorf("reaction edge = %+v", reaction)
		}
		// The catalyst acts on the conversion's product.
		if catalysis == nil || !strings.HasSuffix(catalysis.Subject, "#Protein2") || !strings.HasSuffix(catalysis.Object, "#SmallMolecule1") {
			t.Errorf("catalysis edge = %+v", catalysis)
		}
	})

	t.Run("occurrences", func(t *testing.T) {
		if len(ex.NodeTypes) != 3 {
			t.Errorf("len(NodeTypes) = %d, want 3", len(ex.NodeTypes))
		}
		if len(ex.InteractionTypes) != 2 {
			t.Errorf("len(InteractionTypes) = %d, want 2", len(ex.InteractionTypes))
		}
	})
}

func TestTermHelpers(t *testing.T) {
	tests := []struct {
		name string
		term rdf.Term
		want string
	}{
		{"plain literal", rdf.Term{Value: `"Glucose"`}, "Glucose"},
		{"language tagged", rdf.Term{Value: `"TGFB1"@en`}, "TGFB1"},
		{"typed literal", rdf.Term{Value: `"7040"^^<http://www.w3.org/2001/XMLSchema#string>`}, "7040"},
		{"escaped quote", rdf.Term{Value: `"a \"quoted\" name"`}, `a "quoted" name`},
		{"iri trailing segment", rdf.Term{Value: "<http://identifiers.org/ncbigene/7040>"}, "7040"},
		{"iri fragment", rdf.Term{Value: "<http://vocabularies.wikipathways.org/wp#DataNode>"}, "DataNode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := objectText(tt.term); got != tt.want {
				t.Errorf("objectText(%q) = %q, want %q", tt.term.Value, got, tt.want)
			}
		})
	}
}

func TestLastSegment(t *testing.T) {
	tests := []struct {
		iri  string
		want string
	}{
		{"http://identifiers.org/hgnc.symbol/TGFB1", "TGFB1"},
		{"http://www.reactome.org/biopax/63/48887#Protein1", "Protein1"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		if got := lastSegment(tt.iri); got != tt.want {
			t.Errorf("lastSegment(%q) = %q, want %q", tt.iri, got, tt.want)
		}
	}
}
