package kgml

import (
	"strings"

	"github.com/openpathway/pathway-analyzer/pkg/model"
)

// Entry types that materialize as graph nodes. Map, brite and other
// entries still count toward the type statistics but name no resolvable
// entity.
var nodeEntryTypes = map[string]bool{
	"gene":     true,
	"compound": true,
	"ortholog": true,
	"enzyme":   true,
}

// Extraction is the graph-ready view of one KGML document: one record per
// KEGG identifier, the expanded interactions, and the entry and relation
// type occurrences for the statistics counter.
type Extraction struct {
	Info             model.PathwayInfo
	Nodes            map[string]model.Record
	Interactions     []model.Interaction
	EntryTypes       []model.TypeOccurrence
	InteractionTypes []model.TypeOccurrence
}

// Info derives the pathway header from the document attributes.
func (doc *Document) Info() model.PathwayInfo {
	return model.PathwayInfo{
		Identifier: strings.TrimPrefix(doc.Name, "path:"),
		Title:      doc.Title,
		Source:     "kegg",
		Organism:   doc.Org,
	}
}

// Extract flattens a parsed document. Multi-gene entries expand into one
// node per KEGG identifier. Relations expand pairwise across the members
// of their endpoints, one edge per subtype; relations whose endpoints have
// no members (map links and such) contribute type occurrences only.
// Reactions become substrate to product edges, doubled back when
// reversible.
func Extract(doc *Document) *Extraction {
	ex := &Extraction{
		Info:  doc.Info(),
		Nodes: make(map[string]model.Record),
	}

	byID := make(map[string]*Entry, len(doc.Entries))
	for i := range doc.Entries {
		byID[doc.Entries[i].ID] = &doc.Entries[i]
	}

	members := make(map[string][]string, len(doc.Entries))
	for i := range doc.Entries {
		entry := &doc.Entries[i]
		ex.EntryTypes = append(ex.EntryTypes, model.Single(entry.Type))

		ms := entryMembers(entry, byID)
		members[entry.ID] = ms

		label := entryLabel(entry)
		for j, keggID := range ms {
			rec := ex.ensureNode(keggID)
			rec.Add(model.KeyNodeTypes, entry.Type)
			// The rendered label names the first member; the remaining
			// members of a multi-gene entry only carry their KEGG id.
			if j == 0 && label != "" {
				rec.Add(model.KeyDisplayName, label)
				if entry.Type == "gene" {
					rec.Add(model.HintHGNCSymbol, label)
				}
			}
		}
	}

	for i := range doc.Relations {
		rel := &doc.Relations[i]
		ex.InteractionTypes = append(ex.InteractionTypes, relationOccurrences(rel)...)

		from := members[rel.Entry1]
		to := members[rel.Entry2]
		if len(from) == 0 || len(to) == 0 {
			continue
		}
		for _, subject := range from {
			for _, object := range to {
				if len(rel.Subtypes) == 0 {
					ex.addInteraction(subject, object, rel.Type)
					continue
				}
				for _, st := range rel.Subtypes {
					ex.addInteraction(subject, object, rel.Type, st.Name)
				}
			}
		}
	}

	for i := range doc.Reactions {
		rx := &doc.Reactions[i]
		ex.InteractionTypes = append(ex.InteractionTypes, model.CoOccurring("reaction", rx.Type))

		for _, substrate := range rx.Substrates {
			for _, product := range rx.Products {
				ex.ensureNode(substrate.Name)
				ex.ensureNode(product.Name)
				ex.addInteraction(substrate.Name, product.Name, "reaction", rx.Type)
				if rx.Type == "reversible" {
					ex.addInteraction(product.Name, substrate.Name, "reaction", rx.Type)
				}
			}
		}
	}

	return ex
}

// ensureNode returns the record for a KEGG identifier, creating the
// baseline record on first sight.
func (ex *Extraction) ensureNode(keggID string) model.Record {
	rec, ok := ex.Nodes[keggID]
	if !ok {
		rec = make(model.Record)
		rec.Add(model.KeyDB, "kegg")
		rec.Add(model.KeyIdentifier, keggID)
		rec.Add(model.KeyName, keggID)
		ex.Nodes[keggID] = rec
	}
	return rec
}

func (ex *Extraction) addInteraction(subject, object string, types ...string) {
	attrs := make(model.Record)
	for _, typ := range types {
		attrs.Add(model.KeyInteractionTypes, typ)
	}
	ex.Interactions = append(ex.Interactions, model.Interaction{
		Subject:    subject,
		Object:     object,
		Attributes: attrs,
	})
}

// relationOccurrences yields one type occurrence per subtype, pairing the
// relation type with the refinement. A relation without subtypes counts
// once under its bare type.
func relationOccurrences(rel *Relation) []model.TypeOccurrence {
	if len(rel.Subtypes) == 0 {
		return []model.TypeOccurrence{model.Single(rel.Type)}
	}
	occs := make([]model.TypeOccurrence, 0, len(rel.Subtypes))
	for _, st := range rel.Subtypes {
		occs = append(occs, model.CoOccurring(rel.Type, st.Name))
	}
	return occs
}

// entryMembers lists the KEGG identifiers an entry stands for. Groups
// collect the members of their components.
func entryMembers(entry *Entry, byID map[string]*Entry) []string {
	if entry.Type == "group" {
		var ms []string
		for _, c := range entry.Children {
			member, ok := byID[c.ID]
			if !ok || member.Type == "group" {
				continue
			}
			ms = append(ms, entryMembers(member, byID)...)
		}
		return ms
	}

	if !nodeEntryTypes[entry.Type] {
		return nil
	}

	var ms []string
	for _, keggID := range strings.Fields(entry.Name) {
		if keggID == "undefined" {
			continue
		}
		ms = append(ms, keggID)
	}
	return ms
}

// entryLabel returns the first token of the rendered label, which for gene
// entries is the primary symbol.
func entryLabel(entry *Entry) string {
	name := entry.Graphics.Name
	if name == "" || name == "undefined" {
		return ""
	}
	label, _, _ := strings.Cut(name, ",")
	return strings.TrimSuffix(strings.TrimSpace(label), "...")
}
