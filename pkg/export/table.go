// Package export renders accumulated pathway statistics as a wide table,
// one row per pathway and one column per observed (type, category) pair.
package export

import (
	"sort"
	"strconv"

	"github.com/openpathway/pathway-analyzer/pkg/stats"
)

// Column identifies one exported statistic: a type observed under a
// statistic category.
type Column struct {
	Type     string
	Category string
}

// Header renders the column label, the type name in literal quotes
// followed by the category.
func (c Column) Header() string {
	return `"` + c.Type + `" ` + c.Category
}

// Row holds one pathway's cells, parallel to the table's columns.
type Row struct {
	Pathway string
	Cells   []string
}

// Table is the wide per-pathway view of a batch run.
type Table struct {
	Columns []Column
	Rows    []Row
}

// BuildTable discovers the union of (type, category) pairs across every
// pathway and lays the counts out as strings. A pathway missing a type that
// other pathways observed gets an empty cell; a type never observed under a
// category gets no column at all. Columns sort by category then type, rows
// by pathway name, so one export is internally stable.
func BuildTable(allPathways map[string]stats.PathwayStatistics) *Table {
	seen := make(map[Column]bool)
	for _, ps := range allPathways {
		for category, counts := range ps {
			for typ := range counts {
				seen[Column{Type: typ, Category: category}] = true
			}
		}
	}

	columns := make([]Column, 0, len(seen))
	for col := range seen {
		columns = append(columns, col)
	}
	sort.Slice(columns, func(i, j int) bool {
		if columns[i].Category != columns[j].Category {
			return columns[i].Category < columns[j].Category
		}
		return columns[i].Type < columns[j].Type
	})

	pathways := make([]string, 0, len(allPathways))
	for name := range allPathways {
		pathways = append(pathways, name)
	}
	sort.Strings(pathways)

	rows := make([]Row, 0, len(pathways))
	for _, name := range pathways {
		ps := allPathways[name]
		cells := make([]string, len(columns))
		for i, col := range columns {
			counts, ok := ps[col.Category]
			if !ok {
				continue
			}
			if count, ok := counts[col.Type]; ok {
				cells[i] = strconv.Itoa(count)
			}
		}
		rows = append(rows, Row{Pathway: name, Cells: cells})
	}

	return &Table{Columns: columns, Rows: rows}
}
