package model

import "sort"

// TypeOccurrence is one type annotation observed on a source element. An
// annotation either carries a single standalone type or a set of types that
// co-occur on the same element; the statistics counter treats the two forms
// differently, so the distinction survives even for one-member sets.
type TypeOccurrence struct {
	types []string
	set   bool
}

// Single wraps one standalone type annotation.
func Single(typ string) TypeOccurrence {
	return TypeOccurrence{types: []string{typ}}
}

// CoOccurring wraps a set of types observed together on one element.
// Duplicates collapse and members are kept sorted.
func CoOccurring(types ...string) TypeOccurrence {
	members := make([]string, 0, len(types))
	for _, t := range types {
		present := false
		for _, m := range members {
			if m == t {
				present = true
				break
			}
		}
		if !present {
			members = append(members, t)
		}
	}
	sort.Strings(members)
	return TypeOccurrence{types: members, set: true}
}

// IsSet reports whether this is a co-occurring set annotation.
func (o TypeOccurrence) IsSet() bool { return o.set }

// Types returns the annotation members, sorted for set annotations.
func (o TypeOccurrence) Types() []string {
	out := make([]string, len(o.types))
	copy(out, o.types)
	return out
}

// Is reports whether this is a set annotation holding exactly the given
// types. Single annotations never match.
func (o TypeOccurrence) Is(types ...string) bool {
	if !o.set {
		return false
	}
	want := CoOccurring(types...)
	if len(o.types) != len(want.types) {
		return false
	}
	for i := range want.types {
		if o.types[i] != want.types[i] {
			return false
		}
	}
	return true
}
