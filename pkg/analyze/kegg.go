package analyze

import (
	"path/filepath"
	"strings"

	"github.com/openpathway/pathway-analyzer/pkg/kgml"
)

// KEGGSource parses KGML pathway files.
type KEGGSource struct{}

func (KEGGSource) Name() string { return "kegg" }

// Detect claims .xml and .kgml files.
func (KEGGSource) Detect(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xml", ".kgml":
		return true
	}
	return false
}

// Parse reads one KGML file. KGML has no supertype shared by every entry,
// so the primary types stay empty.
func (KEGGSource) Parse(path string) (*Document, error) {
	doc, err := kgml.ParseFile(path)
	if err != nil {
		return nil, err
	}

	ex := kgml.Extract(doc)
	return &Document{
		Info:             ex.Info,
		Nodes:            ex.Nodes,
		Interactions:     ex.Interactions,
		NodeTypes:        ex.EntryTypes,
		InteractionTypes: ex.InteractionTypes,
	}, nil
}
