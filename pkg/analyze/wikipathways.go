package analyze

import (
	"path/filepath"
	"strings"

	"github.com/openpathway/pathway-analyzer/pkg/rdfpath"
)

// WikiPathwaysSource parses WikiPathways RDF dumps. Every entity in these
// dumps carries the wp:DataNode supertype and every relation the
// wp:Interaction supertype, which the statistics rollup strips from
// co-occurrence counts.
type WikiPathwaysSource struct{}

func (WikiPathwaysSource) Name() string { return "wikipathways" }

// Detect claims WP-prefixed N-Triples files, the naming convention of the
// WikiPathways RDF distribution (WP1591.nt, optionally gzipped).
func (WikiPathwaysSource) Detect(path string) bool {
	base := filepath.Base(path)
	if !strings.HasPrefix(base, "WP") {
		return false
	}
	return strings.HasSuffix(base, ".nt") || strings.HasSuffix(base, ".nt.gz")
}

func (WikiPathwaysSource) Parse(path string) (*Document, error) {
	stmts, err := rdfpath.StatementsFromFile(path)
	if err != nil {
		return nil, err
	}

	ex := rdfpath.ExtractWikiPathways(stmts)
	return &Document{
		Info:             ex.Info,
		Nodes:            ex.Nodes,
		Interactions:     ex.Interactions,
		NodeTypes:        ex.NodeTypes,
		InteractionTypes: ex.InteractionTypes,
		PrimaryNodeType:  "DataNode",
		PrimaryEdgeType:  "Interaction",
	}, nil
}
