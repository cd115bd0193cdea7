package analyze

import (
	"strings"

	"github.com/openpathway/pathway-analyzer/pkg/rdfpath"
)

// ReactomeSource parses Reactome BioPAX level 3 dumps serialized as
// N-Triples. BioPAX types are specific (Protein, BiochemicalReaction and
// so on) with no shared supertype, so the primary types stay empty.
type ReactomeSource struct{}

func (ReactomeSource) Name() string { return "reactome" }

// Detect claims the remaining N-Triples files. Keep this source behind
// WikiPathways in the detection order.
func (ReactomeSource) Detect(path string) bool {
	return strings.HasSuffix(path, ".nt") || strings.HasSuffix(path, ".nt.gz")
}

func (ReactomeSource) Parse(path string) (*Document, error) {
	stmts, err := rdfpath.StatementsFromFile(path)
	if err != nil {
		return nil, err
	}

	ex := rdfpath.ExtractReactome(stmts)
	return &Document{
		Info:             ex.Info,
		Nodes:            ex.Nodes,
		Interactions:     ex.Interactions,
		NodeTypes:        ex.NodeTypes,
		InteractionTypes: ex.InteractionTypes,
	}, nil
}
