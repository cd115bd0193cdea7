package cycles

import (
	"gonum.org/v1/gonum/graph"
)

// sccFinder computes strongly connected components with Tarjan's algorithm.
// Every component is reported, including singletons; callers decide which
// ones count as cycles.
type sccFinder struct {
	g       graph.Directed
	counter int
	stack   []int64
	onStack map[int64]bool
	index   map[int64]int
	lowLink map[int64]int
	groups  [][]int64
}

func findSCCs(g graph.Directed) [][]int64 {
	f := &sccFinder{
		g:       g,
		onStack: make(map[int64]bool),
		index:   make(map[int64]int),
		lowLink: make(map[int64]int),
	}

	nodes := g.Nodes()
	for nodes.Next() {
		id := nodes.Node().ID()
		if _, seen := f.index[id]; !seen {
			f.visit(id)
		}
	}
	return f.groups
}

func (f *sccFinder) visit(id int64) {
	f.index[id] = f.counter
	f.lowLink[id] = f.counter
	f.counter++

	f.stack = append(f.stack, id)
	f.onStack[id] = true

	successors := f.g.From(id)
	for successors.Next() {
		next := successors.Node().ID()
		if _, seen := f.index[next]; !seen {
			f.visit(next)
			f.lowLink[id] = min(f.lowLink[id], f.lowLink[next])
		} else if f.onStack[next] {
			f.lowLink[id] = min(f.lowLink[id], f.index[next])
		}
	}

	// Root of a component: pop everything above it off the stack.
	if f.lowLink[id] == f.index[id] {
		var group []int64
		for {
			top := f.stack[len(f.stack)-1]
			f.stack = f.stack[:len(f.stack)-1]
			f.onStack[top] = false
			group = append(group, top)
			if top == id {
				break
			}
		}
		f.groups = append(f.groups, group)
	}
}
