// Package kgml parses KEGG pathway markup (KGML) files and extracts the
// entries, relations and reactions they describe.
package kgml

import (
	"encoding/xml"
	"fmt"
	"os"
)

// Document is the root <pathway> element of a KGML file.
type Document struct {
	XMLName xml.Name `xml:"pathway"`
	Name    string   `xml:"name,attr"`
	Org     string   `xml:"org,attr"`
	Number  string   `xml:"number,attr"`
	Title   string   `xml:"title,attr"`
	Image   string   `xml:"image,attr"`
	Link    string   `xml:"link,attr"`

	Entries   []Entry    `xml:"entry"`
	Relations []Relation `xml:"relation"`
	Reactions []Reaction `xml:"reaction"`
}

// Entry is one boxed element on the KEGG map. Its name attribute holds one
// or more KEGG identifiers separated by spaces; groups reference their
// members through components instead.
type Entry struct {
	ID       string      `xml:"id,attr"`
	Name     string      `xml:"name,attr"`
	Type     string      `xml:"type,attr"`
	Link     string      `xml:"link,attr"`
	Graphics Graphics    `xml:"graphics"`
	Children []Component `xml:"component"`
}

// Graphics carries the rendered label of an entry. For gene entries the
// label lists the primary symbol first, then aliases.
type Graphics struct {
	Name string `xml:"name,attr"`
	Type string `xml:"type,attr"`
}

// Component points at a member entry of a group.
type Component struct {
	ID string `xml:"id,attr"`
}

// Relation connects two entries. Subtypes refine the relation; a relation
// may carry several.
type Relation struct {
	Entry1   string    `xml:"entry1,attr"`
	Entry2   string    `xml:"entry2,attr"`
	Type     string    `xml:"type,attr"`
	Subtypes []Subtype `xml:"subtype"`
}

// Subtype is one refinement of a relation, e.g. activation or
// phosphorylation.
type Subtype struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

// Reaction is a chemical conversion between compound entries.
type Reaction struct {
	ID         string         `xml:"id,attr"`
	Name       string         `xml:"name,attr"`
	Type       string         `xml:"type,attr"`
	Substrates []ReactionPart `xml:"substrate"`
	Products   []ReactionPart `xml:"product"`
}

// ReactionPart is a substrate or product of a reaction.
type ReactionPart struct {
	ID   string `xml:"id,attr"`
	Name string `xml:"name,attr"`
}

// Parse unmarshals a KGML document.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse KGML: %w", err)
	}
	return &doc, nil
}

// ParseFile reads and parses a KGML file.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Parse(data)
}
