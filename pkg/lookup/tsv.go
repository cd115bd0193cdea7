package lookup

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// LoadGenesTSV reads gene rows from a tab-separated file laid out like the
// HGNC complete-set dump: a header line naming the columns, one gene per
// row. Recognized columns are hgnc_id, symbol, alias_symbol, prev_symbol,
// entrez_id, ensembl_gene_id and uniprot_ids; multi-valued cells are
// pipe-separated. Unknown columns are ignored.
func LoadGenesTSV(path string) (*Static, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open gene table: %w", err)
	}
	defer file.Close()

	rows, err := readGeneRows(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read gene table %s: %w", path, err)
	}
	return NewStatic(rows), nil
}

func readGeneRows(r io.Reader) ([]GeneRow, error) {
	cols, next, err := openTable(r, "hgnc_id", "symbol")
	if err != nil {
		return nil, err
	}

	var rows []GeneRow
	for {
		record, err := next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		row := GeneRow{
			HGNCID:     cols.cell(record, "hgnc_id"),
			Symbol:     cols.cell(record, "symbol"),
			EntrezID:   cols.cell(record, "entrez_id"),
			EnsemblID:  cols.cell(record, "ensembl_gene_id"),
			UniProtIDs: splitMulti(cols.cell(record, "uniprot_ids")),
		}
		row.Aliases = append(splitMulti(cols.cell(record, "alias_symbol")), splitMulti(cols.cell(record, "prev_symbol"))...)
		if row.HGNCID == "" && row.Symbol == "" {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// LoadChemicalsTSV reads chemical rows from a tab-separated file with a
// header line. Recognized columns are chebi_id, name and synonyms, the
// latter pipe-separated.
func LoadChemicalsTSV(path string) (*StaticChemicals, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open chemical table: %w", err)
	}
	defer file.Close()

	rows, err := readChemicalRows(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read chemical table %s: %w", path, err)
	}
	return NewStaticChemicals(rows), nil
}

func readChemicalRows(r io.Reader) ([]ChemicalRow, error) {
	cols, next, err := openTable(r, "chebi_id", "name")
	if err != nil {
		return nil, err
	}

	var rows []ChemicalRow
	for {
		record, err := next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		row := ChemicalRow{
			ChEBIID:  cols.cell(record, "chebi_id"),
			Name:     cols.cell(record, "name"),
			Synonyms: splitMulti(cols.cell(record, "synonyms")),
		}
		if row.ChEBIID == "" {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// columns maps header names to their position in a record.
type columns map[string]int

func (c columns) cell(record []string, name string) string {
	i, ok := c[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// openTable reads the header line of a tab-separated table, checks the
// required columns are present, and returns the column index together with
// a row iterator.
func openTable(r io.Reader, required ...string) (columns, func() ([]string, error), error) {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read header: %w", err)
	}

	cols := make(columns, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, nil, fmt.Errorf("missing required column %q", name)
		}
	}
	return cols, reader.Read, nil
}

// splitMulti splits a pipe-separated cell, dropping empty entries.
func splitMulti(cell string) []string {
	if cell == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(cell, "|") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
