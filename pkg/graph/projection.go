package graph

import (
	"sort"

	"gonum.org/v1/gonum/graph/simple"

	"github.com/openpathway/pathway-analyzer/pkg/model"
)

// Projection is a plain directed view of a pathway multigraph. Parallel
// edges collapse into one, and self edges are kept aside because gonum's
// simple graph rejects them. This is the shape cycle detection needs.
type Projection struct {
	graph     *simple.DirectedGraph
	ids       map[string]int64
	keys      map[int64]string
	selfLoops map[string]bool
	nextID    int64
}

// NewProjection creates an empty projection.
func NewProjection() *Projection {
	return &Projection{
		graph:     simple.NewDirectedGraph(),
		ids:       make(map[string]int64),
		keys:      make(map[int64]string),
		selfLoops: make(map[string]bool),
	}
}

// Project flattens a pathway multigraph into a Projection. Node keys are
// assigned gonum IDs in sorted order.
func Project(g *model.PathwayGraph) *Projection {
	p := NewProjection()
	for _, key := range g.NodeIDs() {
		p.AddNode(key)
	}
	for _, edge := range g.Edges() {
		p.AddEdge(edge.Subject, edge.Object)
	}
	return p
}

// AddNode registers a node key. Adding an existing key is a no-op.
func (p *Projection) AddNode(key string) {
	if _, exists := p.ids[key]; exists {
		return
	}
	id := p.nextID
	p.ids[key] = id
	p.keys[id] = key
	p.graph.AddNode(simple.Node(id))
	p.nextID++
}

// AddEdge records a directed edge between two node keys, creating the
// endpoints if needed.
func (p *Projection) AddEdge(from, to string) {
	p.AddNode(from)
	p.AddNode(to)

	if from == to {
		p.selfLoops[from] = true
		return
	}

	fromID := p.ids[from]
	toID := p.ids[to]
	if !p.graph.HasEdgeFromTo(fromID, toID) {
		p.graph.SetEdge(p.graph.NewEdge(p.graph.Node(fromID), p.graph.Node(toID)))
	}
}

// HasEdge reports whether a directed edge exists from one key to another.
// Self edges are answered from the separate loop set.
func (p *Projection) HasEdge(from, to string) bool {
	if from == to {
		return p.selfLoops[from]
	}
	fromID, okFrom := p.ids[from]
	toID, okTo := p.ids[to]
	if !okFrom || !okTo {
		return false
	}
	return p.graph.HasEdgeFromTo(fromID, toID)
}

// Graph returns the underlying gonum graph.
func (p *Projection) Graph() *simple.DirectedGraph {
	return p.graph
}

// ID returns the gonum node ID for a key.
func (p *Projection) ID(key string) (int64, bool) {
	id, ok := p.ids[key]
	return id, ok
}

// Key translates a gonum node ID back to its pathway node key.
func (p *Projection) Key(id int64) (string, bool) {
	key, ok := p.keys[id]
	return key, ok
}

// Keys returns all node keys in sorted order.
func (p *Projection) Keys() []string {
	keys := make([]string, 0, len(p.ids))
	for key := range p.ids {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// SelfLoopKeys returns the keys of nodes with an edge to themselves, sorted.
func (p *Projection) SelfLoopKeys() []string {
	keys := make([]string, 0, len(p.selfLoops))
	for key := range p.selfLoops {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
