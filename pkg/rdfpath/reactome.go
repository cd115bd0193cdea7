package rdfpath

import (
	"strings"

	"gonum.org/v1/gonum/graph/formats/rdf"

	"github.com/openpathway/pathway-analyzer/pkg/model"
)

const (
	bpNS          = "http://www.biopax.org/release/biopax-level3.owl#"
	bpDisplayName = bpNS + "displayName"
	bpLeft        = bpNS + "left"
	bpRight       = bpNS + "right"
	bpController  = bpNS + "controller"
	bpControlled  = bpNS + "controlled"
	bpEntityRef   = bpNS + "entityReference"
)

// Physical entities that become graph nodes.
var reactomeEntityTypes = map[string]bool{
	"Protein":        true,
	"Complex":        true,
	"SmallMolecule":  true,
	"Dna":            true,
	"DnaRegion":      true,
	"Rna":            true,
	"RnaRegion":      true,
	"PhysicalEntity": true,
}

// Conversions carry left and right participant lists.
var reactomeConversionTypes = map[string]bool{
	"BiochemicalReaction":              true,
	"Transport":                        true,
	"TransportWithBiochemicalReaction": true,
	"ComplexAssembly":                  true,
	"Degradation":                      true,
}

// Controls point a controller entity at a controlled conversion.
var reactomeControlTypes = map[string]bool{
	"Control":                    true,
	"Catalysis":                  true,
	"Modulation":                 true,
	"TemplateReactionRegulation": true,
}

type reactomeConversion struct {
	lefts  []string
	rights []string
}

// ExtractReactome walks a Reactome BioPAX level 3 dump. Physical entity
// subjects become records; conversions expand into left×right edges;
// controls draw an edge from the controller onto the controlled
// conversion's products, or straight onto the controlled entity. The
// first bp:Pathway subject supplies the header.
func ExtractReactome(stmts []*rdf.Statement) *Extraction {
	ex := &Extraction{Nodes: make(map[string]model.Record)}
	subjects := indexSubjects(stmts).subjects()

	conversions := make(map[string]*reactomeConversion)
	for _, subj := range subjects {
		if hasAnyType(subj.typeFragments(), reactomeConversionTypes) {
			conversions[subj.key] = &reactomeConversion{
				lefts:  subj.iriObjects(bpLeft),
				rights: subj.iriObjects(bpRight),
			}
		}
	}

	for _, subj := range subjects {
		types := subj.typeFragments()
		switch {
		case hasAnyType(types, reactomeEntityTypes):
			ex.Nodes[subj.key] = reactomeRecord(subj, types)
			ex.NodeTypes = append(ex.NodeTypes, model.CoOccurring(types...))

		case hasAnyType(types, reactomeConversionTypes):
			ex.InteractionTypes = append(ex.InteractionTypes, model.CoOccurring(types...))
			conv := conversions[subj.key]
			for _, left := range conv.lefts {
				for _, right := range conv.rights {
					ex.addInteraction(left, right, types)
				}
			}

		case hasAnyType(types, reactomeControlTypes):
			ex.InteractionTypes = append(ex.InteractionTypes, model.CoOccurring(types...))
			for _, controller := range subj.iriObjects(bpController) {
				for _, controlled := range subj.iriObjects(bpControlled) {
					if conv, ok := conversions[controlled]; ok {
						for _, product := range conv.rights {
							ex.addInteraction(controller, product, types)
						}
						continue
					}
					ex.addInteraction(controller, controlled, types)
				}
			}

		case hasType(types, "Pathway"):
			if ex.Info == (model.PathwayInfo{}) {
				ex.Info = model.PathwayInfo{
					Identifier: lastSegment(subj.key),
					Title:      subj.literal(bpDisplayName),
					Source:     "reactome",
				}
			}
		}
	}

	return ex
}

func reactomeRecord(subj *subject, types []string) model.Record {
	rec := make(model.Record)
	rec.Add(model.KeyReactomeURI, subj.key)
	for _, typ := range types {
		rec.Add(model.KeyNodeTypes, typ)
	}
	if name := subj.literal(bpDisplayName); name != "" {
		rec.Add(model.KeyDisplayName, name)
	}
	// Entity references resolve proteins and small molecules to their
	// authoritative namespaces when the dump links identifiers.org.
	for _, ref := range subj.iriObjects(bpEntityRef) {
		if strings.Contains(ref, "identifiers.org") {
			rec.Add(model.KeyURI, ref)
		}
	}
	return rec
}
