// Package lookup provides in-memory gene and chemical authorities backed by
// flat-file dumps. The indices are built once at load time and answer the
// resolver's queries without touching the filesystem again.
package lookup

import (
	"strings"

	"github.com/openpathway/pathway-analyzer/pkg/model"
	"github.com/openpathway/pathway-analyzer/pkg/resolve"
)

var (
	_ resolve.GeneLookup     = (*Static)(nil)
	_ resolve.ChemicalLookup = (*StaticChemicals)(nil)
)

// GeneRow is one authority record: a canonical HGNC entry together with the
// cross-references other vocabularies use to reach it.
type GeneRow struct {
	HGNCID     string // e.g. "hgnc:11766"
	Symbol     string // e.g. "TGFB1"
	Aliases    []string
	EntrezID   string
	UniProtIDs []string
	EnsemblID  string
}

// Static serves gene queries from indices built over a fixed row set.
// Aliases are not unique across genes; the first row to claim an alias
// keeps it. UniProt accessions may map to several genes and the full match
// list is preserved in row order.
type Static struct {
	bySymbol  map[string]model.Gene
	byAlias   map[string]model.Gene
	byEntrez  map[string]model.Gene
	byUniProt map[string][]model.Gene
	byEnsembl map[string]model.Gene
}

// NewStatic indexes the given rows.
func NewStatic(rows []GeneRow) *Static {
	s := &Static{
		bySymbol:  make(map[string]model.Gene, len(rows)),
		byAlias:   make(map[string]model.Gene),
		byEntrez:  make(map[string]model.Gene, len(rows)),
		byUniProt: make(map[string][]model.Gene),
		byEnsembl: make(map[string]model.Gene, len(rows)),
	}

	for _, row := range rows {
		gene := model.Gene{Identifier: row.HGNCID, Symbol: row.Symbol}

		if row.Symbol != "" {
			s.bySymbol[row.Symbol] = gene
		}
		for _, alias := range row.Aliases {
			if _, taken := s.byAlias[alias]; !taken {
				s.byAlias[alias] = gene
			}
		}
		if row.EntrezID != "" {
			s.byEntrez[row.EntrezID] = gene
		}
		for _, id := range row.UniProtIDs {
			s.byUniProt[id] = append(s.byUniProt[id], gene)
		}
		if row.EnsemblID != "" {
			s.byEnsembl[row.EnsemblID] = gene
		}
	}
	return s
}

// Len returns the number of distinct gene symbols indexed.
func (s *Static) Len() int { return len(s.bySymbol) }

func (s *Static) ByHGNCSymbol(symbol string) *model.Gene { return oneGene(s.bySymbol, symbol) }

func (s *Static) ByHGNCAlias(alias string) *model.Gene { return oneGene(s.byAlias, alias) }

func (s *Static) ByEntrezID(id string) *model.Gene { return oneGene(s.byEntrez, id) }

func (s *Static) ByEnsemblID(id string) *model.Gene { return oneGene(s.byEnsembl, id) }

func (s *Static) ByUniProtID(id string) []model.Gene {
	matches := s.byUniProt[id]
	if len(matches) == 0 {
		return nil
	}
	out := make([]model.Gene, len(matches))
	copy(out, matches)
	return out
}

func oneGene(m map[string]model.Gene, key string) *model.Gene {
	gene, ok := m[key]
	if !ok {
		return nil
	}
	return &gene
}

// ChemicalRow is one chemical authority record. A "CHEBI:" prefix on the
// identifier is tolerated and stripped, the indices hold bare identifiers.
type ChemicalRow struct {
	ChEBIID  string
	Name     string
	Synonyms []string
}

// StaticChemicals serves chemical queries from indices built over a fixed
// row set. Synonyms feed the name index, with the first claimant keeping a
// contested name.
type StaticChemicals struct {
	byName map[string]model.Chemical
	byID   map[string]model.Chemical
}

// NewStaticChemicals indexes the given rows.
func NewStaticChemicals(rows []ChemicalRow) *StaticChemicals {
	s := &StaticChemicals{
		byName: make(map[string]model.Chemical, len(rows)),
		byID:   make(map[string]model.Chemical, len(rows)),
	}

	for _, row := range rows {
		id := strings.TrimPrefix(row.ChEBIID, "CHEBI:")
		chem := model.Chemical{Identifier: id, Name: row.Name}

		if id != "" {
			s.byID[id] = chem
		}
		if row.Name != "" {
			s.byName[row.Name] = chem
		}
		for _, syn := range row.Synonyms {
			if _, taken := s.byName[syn]; !taken {
				s.byName[syn] = chem
			}
		}
	}
	return s
}

// Len returns the number of distinct chemical identifiers indexed.
func (s *StaticChemicals) Len() int { return len(s.byID) }

func (s *StaticChemicals) ByName(name string) *model.Chemical {
	chem, ok := s.byName[name]
	if !ok {
		return nil
	}
	return &chem
}

func (s *StaticChemicals) ByID(id string) *model.Chemical {
	chem, ok := s.byID[id]
	if !ok {
		return nil
	}
	return &chem
}
