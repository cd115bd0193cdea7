// Package analyze orchestrates batch pathway analysis: detecting the format
// of each input file, parsing it, resolving its entities, building the
// pathway graph, and rolling per-pathway statistics into a global summary.
package analyze

import "github.com/openpathway/pathway-analyzer/pkg/model"

// Document is one parsed pathway file, before identifier resolution.
type Document struct {
	Info         model.PathwayInfo
	Nodes        map[string]model.Record
	Interactions []model.Interaction

	// Type occurrences drive the statistics rollup.
	NodeTypes        []model.TypeOccurrence
	InteractionTypes []model.TypeOccurrence

	// Primary types are format supertypes every entity carries alongside
	// its specific type (wp:DataNode, wp:Interaction). They are stripped
	// from co-occurrence counts; formats without supertypes leave them
	// empty.
	PrimaryNodeType string
	PrimaryEdgeType string
}

// Source parses one family of pathway files into documents.
type Source interface {
	// Name identifies the source in logs and reports.
	Name() string

	// Detect reports whether path looks like a file of this source.
	Detect(path string) bool

	// Parse reads one pathway file.
	Parse(path string) (*Document, error)
}

// DefaultSources returns the built-in sources in detection order. The
// WikiPathways source must come before Reactome: both read N-Triples, and
// WikiPathways claims the WP-prefixed files first.
func DefaultSources() []Source {
	return []Source{KEGGSource{}, WikiPathwaysSource{}, ReactomeSource{}}
}

// DetectSource returns the first source claiming the path.
func DetectSource(path string, sources []Source) (Source, bool) {
	for _, source := range sources {
		if source.Detect(path) {
			return source, true
		}
	}
	return nil, false
}
