package model

import (
	"sort"
	"strings"
)

// Well-known record keys shared by the format parsers and the resolver.
// RDF sources attach bridge-database hints under bdb_* keys; XML sources
// carry a generic database/identifier pair instead.
const (
	KeyURI              = "uri_id"          // resource URI of the entity
	KeyReactomeURI      = "uri_reactome_id" // Reactome-specific resource URI
	KeyReactomeID       = "reactome_id"     // explicit Reactome stable identifier
	KeyDisplayName      = "display_name"
	KeyName             = "name"
	KeyNodeTypes        = "node_types"
	KeyInteractionTypes = "interaction_types"
	KeyNamespace        = "namespace"  // resolved namespace, set after resolution
	KeyIdentifier       = "identifier" // generic identifier, canonical after resolution
	KeyCandidates       = "candidates" // ambiguous match candidates
	KeyDB               = "db"         // generic external database name
)

// Bridge-database hint keys emitted by the RDF extractors.
const (
	HintHGNCSymbol = "bdb_hgncsymbol"
	HintEntrez     = "bdb_ncbigene"
	HintUniProt    = "bdb_uniprot"
	HintEnsembl    = "bdb_ensembl"
	HintChEBI      = "bdb_chebi"
	HintWikidata   = "bdb_wikidata"
)

// Field collects the values observed for one record key. RDF predicates may
// repeat for the same subject, so a field behaves as a small ordered set:
// Add keeps the first occurrence of each value.
type Field []string

// Add returns the field with value included, ignoring duplicates.
func (f Field) Add(value string) Field {
	for _, v := range f {
		if v == value {
			return f
		}
	}
	return append(f, value)
}

// Contains reports whether value is a member of the field.
func (f Field) Contains(value string) bool {
	for _, v := range f {
		if v == value {
			return true
		}
	}
	return false
}

// Value picks a single representative member. Multi-valued fields yield
// their smallest member so repeated calls stay deterministic regardless of
// insertion order.
func (f Field) Value() string {
	if len(f) == 0 {
		return ""
	}
	rep := f[0]
	for _, v := range f[1:] {
		if v < rep {
			rep = v
		}
	}
	return rep
}

// Values returns the members in sorted order.
func (f Field) Values() []string {
	out := make([]string, len(f))
	copy(out, f)
	sort.Strings(out)
	return out
}

// Join flattens the field into one delimited string, members sorted.
func (f Field) Join(sep string) string {
	return strings.Join(f.Values(), sep)
}

// Record is one raw entity record as emitted by a format parser: a mapping
// of attribute keys to value sets. Records handed to the resolver are
// treated as immutable snapshots; annotation happens on a Clone.
type Record map[string]Field

// Add appends a value to the field stored under key.
func (r Record) Add(key, value string) {
	r[key] = r[key].Add(value)
}

// Get returns the representative value under key, or "" when absent.
func (r Record) Get(key string) string {
	return r[key].Value()
}

// Has reports whether the record carries a non-empty field under key.
func (r Record) Has(key string) bool {
	return len(r[key]) > 0
}

// Keys returns the record's keys in sorted order.
func (r Record) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a copy whose fields can be extended without touching the
// original record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, f := range r {
		cp := make(Field, len(f))
		copy(cp, f)
		out[k] = cp
	}
	return out
}
