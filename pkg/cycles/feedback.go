package cycles

import (
	"sort"

	"github.com/openpathway/pathway-analyzer/pkg/graph"
)

// FeedbackLoop is a set of pathway entities that regulate each other in a
// closed cycle. A single member means the entity regulates itself.
type FeedbackLoop struct {
	Members []string `json:"members"`
}

// FindFeedbackLoops detects regulatory cycles in a pathway projection.
// Multi-node loops come from strongly connected components, single-node
// loops from self edges. Members and loops are sorted so repeated runs
// report cycles in the same order.
func FindFeedbackLoops(p *graph.Projection) []FeedbackLoop {
	loops := make([]FeedbackLoop, 0)

	for _, group := range findSCCs(p.Graph()) {
		if len(group) < 2 {
			continue
		}
		members := make([]string, 0, len(group))
		for _, id := range group {
			if key, ok := p.Key(id); ok {
				members = append(members, key)
			}
		}
		sort.Strings(members)
		loops = append(loops, FeedbackLoop{Members: members})
	}

	for _, key := range p.SelfLoopKeys() {
		loops = append(loops, FeedbackLoop{Members: []string{key}})
	}

	sort.Slice(loops, func(i, j int) bool {
		a, b := loops[i].Members, loops[j].Members
		for k := 0; k < len(a) && k < len(b); k++ {
			if a[k] != b[k] {
				return a[k] < b[k]
			}
		}
		return len(a) < len(b)
	})

	return loops
}
