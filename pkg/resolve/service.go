package resolve

import "github.com/openpathway/pathway-analyzer/pkg/model"

// GeneLookup answers identifier queries against a gene authority. A miss is
// a nil (or empty) result, never an error.
type GeneLookup interface {
	ByHGNCSymbol(symbol string) *model.Gene
	ByHGNCAlias(alias string) *model.Gene
	ByEntrezID(id string) *model.Gene
	// ByUniProtID may match several genes for one accession; the full match
	// list is returned.
	ByUniProtID(id string) []model.Gene
	ByEnsemblID(id string) *model.Gene
}

// ChemicalLookup answers chemical name and identifier queries.
type ChemicalLookup interface {
	ByName(name string) *model.Chemical
	ByID(id string) *model.Chemical
}
