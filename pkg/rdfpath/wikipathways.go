package rdfpath

import (
	"strings"

	"gonum.org/v1/gonum/graph/formats/rdf"

	"github.com/openpathway/pathway-analyzer/pkg/model"
)

const (
	predType       = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"
	predLabel      = "http://www.w3.org/2000/01/rdf-schema#label"
	predTitle      = "http://purl.org/dc/elements/1.1/title"
	predSource     = "http://purl.org/dc/elements/1.1/source"
	predIdentifier = "http://purl.org/dc/terms/identifier"

	wpNS         = "http://vocabularies.wikipathways.org/wp#"
	wpOrganism   = wpNS + "organismName"
	wpEdgeSource = wpNS + "source"
	wpEdgeTarget = wpNS + "target"
)

// bridgeDBKeys maps the WikiPathways cross-reference predicates onto the
// record keys the resolver dispatches on.
var bridgeDBKeys = map[string]string{
	wpNS + "bdbHgncSymbol": model.HintHGNCSymbol,
	wpNS + "bdbEntrezGene": model.HintEntrez,
	wpNS + "bdbUniprot":    model.HintUniProt,
	wpNS + "bdbEnsembl":    model.HintEnsembl,
	wpNS + "bdbChEBI":      model.HintChEBI,
	wpNS + "bdbWikidata":   model.HintWikidata,
}

// ExtractWikiPathways walks a WikiPathways RDF dump. DataNode subjects
// become records, Interaction subjects expand into source×target edges,
// and interactions without both endpoints still count toward the type
// statistics. The first plain wp:Pathway subject supplies the header; a
// DataNode typed Pathway is a node referencing another pathway, not the
// header.
func ExtractWikiPathways(stmts []*rdf.Statement) *Extraction {
	ex := &Extraction{Nodes: make(map[string]model.Record)}

	for _, subj := range indexSubjects(stmts).subjects() {
		types := subj.typeFragments()
		switch {
		case hasType(types, "DataNode"):
			ex.Nodes[subj.key] = dataNodeRecord(subj, types)
			ex.NodeTypes = append(ex.NodeTypes, model.CoOccurring(types...))

		case hasType(types, "Interaction"):
			ex.InteractionTypes = append(ex.InteractionTypes, model.CoOccurring(types...))
			for _, source := range subj.iriObjects(wpEdgeSource) {
				for _, target := range subj.iriObjects(wpEdgeTarget) {
					ex.addInteraction(source, target, types)
				}
			}

		case hasType(types, "Pathway"):
			if ex.Info == (model.PathwayInfo{}) {
				ex.Info = wikiPathwaysInfo(subj)
			}
		}
	}

	return ex
}

func dataNodeRecord(subj *subject, types []string) model.Record {
	rec := make(model.Record)
	rec.Add(model.KeyURI, subj.key)
	for _, typ := range types {
		rec.Add(model.KeyNodeTypes, typ)
	}

	for _, st := range subj.stmts {
		pred, ok := iriValue(st.Predicate)
		if !ok {
			continue
		}
		switch pred {
		case predLabel:
			if text, ok := literalValue(st.Object); ok {
				rec.Add(model.KeyName, text)
			}
		case predIdentifier:
			rec.Add(model.KeyIdentifier, objectText(st.Object))
		case predSource:
			if text, ok := literalValue(st.Object); ok {
				rec.Add(model.KeyDB, text)
			}
		default:
			if key, ok := bridgeDBKeys[pred]; ok {
				rec.Add(key, objectText(st.Object))
			}
		}
	}
	return rec
}

func wikiPathwaysInfo(subj *subject) model.PathwayInfo {
	info := model.PathwayInfo{
		Identifier: lastSegment(subj.key),
		Title:      subj.literal(predTitle),
		Source:     "wikipathways",
		Organism:   subj.literal(wpOrganism),
	}

	// Pathway URIs carry the revision: .../WP1591_r84254.
	if base, revision, ok := strings.Cut(info.Identifier, "_"); ok {
		info.Identifier = base
		info.Version = revision
	}
	if id := subj.literal(predIdentifier); id != "" {
		info.Identifier = id
	}
	return info
}
