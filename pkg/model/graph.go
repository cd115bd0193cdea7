package model

import (
	"encoding/json"
	"sort"
)

// PathwayGraph is the directed multigraph a pathway normalizes into. Nodes
// are keyed by entity id and carry their full attribute record. Edges
// between the same ordered pair stay distinct: a pathway may connect the
// same two entities through several independent relation types at once.
type PathwayGraph struct {
	info   PathwayInfo
	nodes  map[string]Record
	edges  []*PathwayEdge
	byPair map[edgeKey][]*PathwayEdge
}

// PathwayEdge is one directed relation between two entities.
type PathwayEdge struct {
	Subject    string `json:"subject"`
	Object     string `json:"object"`
	Attributes Record `json:"attributes,omitempty"`
}

type edgeKey struct {
	subject string
	object  string
}

// NewPathwayGraph creates an empty graph carrying the pathway metadata.
// The metadata is fixed for the life of the graph.
func NewPathwayGraph(info PathwayInfo) *PathwayGraph {
	return &PathwayGraph{
		info:   info,
		nodes:  make(map[string]Record),
		edges:  make([]*PathwayEdge, 0),
		byPair: make(map[edgeKey][]*PathwayEdge),
	}
}

// Info returns the pathway metadata attached at construction.
func (g *PathwayGraph) Info() PathwayInfo { return g.info }

// AddNode inserts or replaces the node keyed by id.
func (g *PathwayGraph) AddNode(id string, attrs Record) {
	if attrs == nil {
		attrs = make(Record)
	}
	g.nodes[id] = attrs
}

// AddEdge appends a directed edge from subject to object. Missing endpoints
// are created with empty attributes; parallel edges are never merged.
func (g *PathwayGraph) AddEdge(subject, object string, attrs Record) {
	g.ensureNode(subject)
	g.ensureNode(object)

	edge := &PathwayEdge{Subject: subject, Object: object, Attributes: attrs}
	g.edges = append(g.edges, edge)

	key := edgeKey{subject: subject, object: object}
	g.byPair[key] = append(g.byPair[key], edge)
}

func (g *PathwayGraph) ensureNode(id string) {
	if _, ok := g.nodes[id]; !ok {
		g.nodes[id] = make(Record)
	}
}

// Node returns the attribute record stored for id.
func (g *PathwayGraph) Node(id string) (Record, bool) {
	attrs, ok := g.nodes[id]
	return attrs, ok
}

// NodeIDs returns all node ids in sorted order.
func (g *PathwayGraph) NodeIDs() []string {
	ids := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Nodes returns a copy of the node table. Edits to the copy do not affect
// the graph; the attribute records themselves are shared.
func (g *PathwayGraph) Nodes() map[string]Record {
	out := make(map[string]Record, len(g.nodes))
	for id, attrs := range g.nodes {
		out[id] = attrs
	}
	return out
}

// Edges returns the edge list in insertion order.
func (g *PathwayGraph) Edges() []*PathwayEdge {
	out := make([]*PathwayEdge, len(g.edges))
	copy(out, g.edges)
	return out
}

// EdgesBetween returns every parallel edge from subject to object in
// insertion order.
func (g *PathwayGraph) EdgesBetween(subject, object string) []*PathwayEdge {
	parallel := g.byPair[edgeKey{subject: subject, object: object}]
	out := make([]*PathwayEdge, len(parallel))
	copy(out, parallel)
	return out
}

// NodeCount returns the number of nodes.
func (g *PathwayGraph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges, parallel edges included.
func (g *PathwayGraph) EdgeCount() int { return len(g.edges) }

// MarshalJSON renders the full graph for the web layer.
func (g *PathwayGraph) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Info  PathwayInfo       `json:"info"`
		Nodes map[string]Record `json:"nodes"`
		Edges []*PathwayEdge    `json:"edges"`
	}{g.info, g.nodes, g.edges})
}
