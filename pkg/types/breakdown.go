package types

import (
	"sort"
	"strings"
)

// Label is a named priority bucket with exact turn and character counts.
type Label struct {
	Name  string
	Turns int
	Chars int
}

// Breakdown maps label name to Label. Invariant: the sum of Turns across
// labels equals the total user-turn count of the input it was derived from.
type Breakdown map[string]*Label

// Add accumulates turns and chars under the given label name.
func (b Breakdown) Add(name string, turns, chars int) {
	if l, ok := b[name]; ok {
		l.Turns += turns
		l.Chars += chars
		return
	}
	b[name] = &Label{Name: name, Turns: turns, Chars: chars}
}

// Merge adds every label of other into b.
func (b Breakdown) Merge(other Breakdown) {
	for name, l := range other {
		b.Add(name, l.Turns, l.Chars)
	}
}

// TotalTurns returns the sum of turns across all labels.
func (b Breakdown) TotalTurns() int {
	n := 0
	for _, l := range b {
		n += l.Turns
	}
	return n
}

// TotalChars returns the sum of chars across all labels.
func (b Breakdown) TotalChars() int {
	n := 0
	for _, l := range b {
		n += l.Chars
	}
	return n
}

// Names returns label names sorted ascending.
func (b Breakdown) Names() []string {
	names := make([]string, 0, len(b))
	for name := range b {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns a deep copy of the breakdown.
func (b Breakdown) Clone() Breakdown {
	out := make(Breakdown, len(b))
	for name, l := range b {
		c := *l
		out[name] = &c
	}
	return out
}

// LevelOf extracts the coarse priority level from a label name.
// "P0: Migrate billing" yields "P0"; a bare name is its own level.
func LevelOf(name string) string {
	if i := strings.Index(name, ":"); i > 0 {
		return strings.TrimSpace(name[:i])
	}
	return strings.TrimSpace(name)
}
