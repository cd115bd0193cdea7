// Package rdfpath extracts pathway graphs from RDF dumps in N-Triples
// form. WikiPathways publishes its own wp vocabulary, Reactome ships
// BioPAX level 3; both reduce to the same record and interaction shape.
package rdfpath

import (
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gonum.org/v1/gonum/graph/formats/rdf"

	"github.com/openpathway/pathway-analyzer/pkg/model"
)

// Extraction is the graph-ready view of one RDF dump: one record per
// entity subject, the expanded interactions, and the type occurrence
// lists for the statistics counter.
type Extraction struct {
	Info             model.PathwayInfo
	Nodes            map[string]model.Record
	Interactions     []model.Interaction
	NodeTypes        []model.TypeOccurrence
	InteractionTypes []model.TypeOccurrence
}

func (ex *Extraction) addInteraction(subject, object string, types []string) {
	attrs := make(model.Record)
	for _, typ := range types {
		attrs.Add(model.KeyInteractionTypes, typ)
	}
	ex.Interactions = append(ex.Interactions, model.Interaction{
		Subject:    subject,
		Object:     object,
		Attributes: attrs,
	})
}

// Statements decodes every RDF statement from r.
func Statements(r io.Reader) ([]*rdf.Statement, error) {
	var dec rdf.Decoder
	dec.Reset(r)

	var stmts []*rdf.Statement
	for {
		s, err := dec.Unmarshal()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to decode RDF: %w", err)
		}
		stmts = append(stmts, s)
	}
	return stmts, nil
}

// StatementsFromFile reads a .nt file, transparently ungzipping .gz.
func StatementsFromFile(path string) ([]*rdf.Statement, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	if strings.HasSuffix(path, ".gz") {
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("failed to open gzip stream %s: %w", path, err)
		}
		defer zr.Close()
		return Statements(zr)
	}
	return Statements(f)
}

// subject bundles all statements sharing one subject term.
type subject struct {
	key   string
	stmts []*rdf.Statement
}

type subjectIndex struct {
	order []string
	byKey map[string]*subject
}

// indexSubjects groups statements by subject, keeping first-seen order so
// repeated runs over the same dump walk subjects identically.
func indexSubjects(stmts []*rdf.Statement) *subjectIndex {
	idx := &subjectIndex{byKey: make(map[string]*subject)}
	for _, s := range stmts {
		key := termKey(s.Subject)
		subj, ok := idx.byKey[key]
		if !ok {
			subj = &subject{key: key}
			idx.byKey[key] = subj
			idx.order = append(idx.order, key)
		}
		subj.stmts = append(subj.stmts, s)
	}
	return idx
}

func (idx *subjectIndex) subjects() []*subject {
	out := make([]*subject, 0, len(idx.order))
	for _, key := range idx.order {
		out = append(out, idx.byKey[key])
	}
	return out
}

// objects returns the object terms of every statement with the given
// predicate IRI.
func (s *subject) objects(predicate string) []rdf.Term {
	var out []rdf.Term
	for _, st := range s.stmts {
		if iri, ok := iriValue(st.Predicate); ok && iri == predicate {
			out = append(out, st.Object)
		}
	}
	return out
}

// iriObjects returns the object IRIs of the given predicate, skipping
// literals.
func (s *subject) iriObjects(predicate string) []string {
	var out []string
	for _, obj := range s.objects(predicate) {
		if iri, ok := iriValue(obj); ok {
			out = append(out, iri)
		}
	}
	return out
}

// literal returns the first literal object of the given predicate, or "".
func (s *subject) literal(predicate string) string {
	for _, obj := range s.objects(predicate) {
		if text, ok := literalValue(obj); ok {
			return text
		}
	}
	return ""
}

// typeFragments returns the trailing fragment of every rdf:type object.
func (s *subject) typeFragments() []string {
	var out []string
	for _, iri := range s.iriObjects(predType) {
		out = append(out, lastSegment(iri))
	}
	return out
}

func hasType(types []string, want string) bool {
	for _, t := range types {
		if t == want {
			return true
		}
	}
	return false
}

func hasAnyType(types []string, want map[string]bool) bool {
	for _, t := range types {
		if want[t] {
			return true
		}
	}
	return false
}

// termKey returns the grouping key of a term: the bare IRI, or the raw
// value for blank nodes.
func termKey(t rdf.Term) string {
	if iri, ok := iriValue(t); ok {
		return iri
	}
	return t.Value
}

// iriValue unwraps an IRI term's angle brackets.
func iriValue(t rdf.Term) (string, bool) {
	v := t.Value
	if len(v) > 2 && strings.HasPrefix(v, "<") && strings.HasSuffix(v, ">") {
		return v[1 : len(v)-1], true
	}
	return "", false
}

// literalValue returns the lexical text of a literal term, dropping any
// language tag or datatype qualifier.
func literalValue(t rdf.Term) (string, bool) {
	v := t.Value
	if !strings.HasPrefix(v, `"`) {
		return "", false
	}
	end := strings.LastIndex(v, `"`)
	if end <= 0 {
		return "", false
	}
	return unescape(v[1:end]), true
}

// objectText returns a plain value for an object term: the text of a
// literal, or the trailing segment of an IRI.
func objectText(t rdf.Term) string {
	if text, ok := literalValue(t); ok {
		return text
	}
	if iri, ok := iriValue(t); ok {
		return lastSegment(iri)
	}
	return t.Value
}

// lastSegment returns the part of an IRI after the final hash or slash.
func lastSegment(iri string) string {
	if i := strings.LastIndex(iri, "#"); i >= 0 {
		return iri[i+1:]
	}
	if i := strings.LastIndex(iri, "/"); i >= 0 {
		return iri[i+1:]
	}
	return iri
}

// unescape interprets the common N-Triples string escapes.
func unescape(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 == len(s) {
			b.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case 't':
			b.WriteByte('\t')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case '"':
			b.WriteByte('"')
		case '\\':
			b.WriteByte('\\')
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
