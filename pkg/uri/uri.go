// Package uri decomposes the slash-delimited resource URIs that pathway RDF
// sources use to address entities and vocabulary terms. Splitting is pure
// string work; nothing here touches the network.
package uri

import (
	"fmt"
	"strings"
)

// Parts are the components of a resource URI whose last segment is an
// identifier, e.g.
// http://rdf.wikipathways.org/Pathway/WP1871_r79859/DataNode/a2c1e.
type Parts struct {
	Prefix     string // scheme and host, the first three raw segments joined
	InterPath  string // segments between the host and the namespace, often empty
	Namespace  string // second-to-last segment
	Identifier string // last segment
}

// VocabParts are the components of a namespace URI that carries no trailing
// identifier, e.g. http://vocabularies.wikipathways.org/wp#DataNode.
type VocabParts struct {
	Prefix    string // everything before the last segment
	Namespace string // the full last segment, fragment included
	Term      string // vocabulary term after '#', or the whole segment without one
}

// MalformedURIError reports a URI with too few segments to decompose.
type MalformedURIError struct {
	URI string
}

func (e *MalformedURIError) Error() string {
	return fmt.Sprintf("malformed resource uri %q", e.URI)
}

// Parse splits a resource URI into its prefix, intermediate namespace path,
// namespace, and identifier.
func Parse(raw string) (Parts, error) {
	segments := strings.Split(raw, "/")
	n := len(segments)
	if n < 2 {
		return Parts{}, &MalformedURIError{URI: raw}
	}

	prefixEnd := 3
	if prefixEnd > n {
		prefixEnd = n
	}

	var interPath string
	if n-2 > 3 {
		interPath = strings.Join(segments[3:n-2], "/")
	}

	return Parts{
		Prefix:     strings.Join(segments[:prefixEnd], "/"),
		InterPath:  interPath,
		Namespace:  segments[n-2],
		Identifier: segments[n-1],
	}, nil
}

// ParseVocabulary splits a namespace URI that ends in a vocabulary segment
// instead of an identifier.
func ParseVocabulary(raw string) (VocabParts, error) {
	segments := strings.Split(raw, "/")
	n := len(segments)
	if n < 2 {
		return VocabParts{}, &MalformedURIError{URI: raw}
	}

	namespace := segments[n-1]
	term := namespace
	if i := strings.LastIndex(namespace, "#"); i >= 0 {
		term = namespace[i+1:]
	}

	return VocabParts{
		Prefix:    strings.Join(segments[:n-1], "/"),
		Namespace: namespace,
		Term:      term,
	}, nil
}

// Fragment returns the part of an identifier segment after '#', or the
// segment itself when it has no fragment. Reactome BioPAX URIs address
// entities this way.
func Fragment(identifier string) string {
	if i := strings.LastIndex(identifier, "#"); i >= 0 {
		return identifier[i+1:]
	}
	return identifier
}
