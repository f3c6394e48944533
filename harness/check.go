package harness

import (
	"fmt"
	"math"
	"slices"
	"sort"
)

// positionTolerance absorbs the rounding applied to snapshot positions
const positionTolerance = 1e-5

// check compares a snapshot against expectations and lists every mismatch
func check(exp Expect, snap *Snapshot) []string {
	var failures []string
	fail := func(format string, args ...any) {
		failures = append(failures, fmt.Sprintf(format, args...))
	}

	if exp.Nodes != nil && *exp.Nodes != len(snap.Nodes) {
		fail("nodes: want %d, got %d", *exp.Nodes, len(snap.Nodes))
	}
	if exp.Edges != nil && *exp.Edges != len(snap.Edges) {
		fail("edges: want %d, got %d", *exp.Edges, len(snap.Edges))
	}

	if exp.Selected != nil {
		var got []string
		for _, n := range snap.Nodes {
			if n.Selected {
				got = append(got, n.ID)
			}
		}
		if !sameSet(*exp.Selected, got) {
			fail("selected: want %v, got %v", *exp.Selected, got)
		}
	}

	if exp.Highlighted != nil {
		var got []string
		for _, e := range snap.Edges {
			if e.Highlighted {
				got = append(got, e.ID)
			}
		}
		if !sameSet(*exp.Highlighted, got) {
			fail("highlighted: want %v, got %v", *exp.Highlighted, got)
		}
	}

	for _, id := range sortedKeys(exp.Positions) {
		want, err := vec(exp.Positions[id])
		if err != nil {
			fail("position %s: %v", id, err)
			continue
		}
		n, ok := snap.Node(id)
		if !ok {
			fail("position %s: node not found", id)
			continue
		}
		if math.Abs(n.Position.X-want.X) > positionTolerance ||
			math.Abs(n.Position.Y-want.Y) > positionTolerance ||
			math.Abs(n.Position.Z-want.Z) > positionTolerance {
			fail("position %s: want %v, got %v", id, want, n.Position)
		}
	}

	for _, id := range sortedKeys(exp.Labels) {
		n, ok := snap.Node(id)
		if !ok {
			fail("label %s: node not found", id)
			continue
		}
		if n.Label != exp.Labels[id] {
			fail("label %s: want %q, got %q", id, exp.Labels[id], n.Label)
		}
	}

	for _, id := range sortedKeys(exp.Weights) {
		e, ok := snap.Edge(id)
		if !ok {
			fail("weight %s: edge not found", id)
			continue
		}
		if e.Weight != exp.Weights[id] {
			fail("weight %s: want %v, got %v", id, exp.Weights[id], e.Weight)
		}
	}

	if exp.Sounds != nil && !slices.Equal(*exp.Sounds, snap.Sounds) {
		fail("sounds: want %v, got %v", *exp.Sounds, snap.Sounds)
	}
	if exp.Rejected != nil && *exp.Rejected != len(snap.Rejected) {
		fail("rejected: want %d, got %d %v", *exp.Rejected, len(snap.Rejected), snap.Rejected)
	}

	return failures
}

func sameSet(want, got []string) bool {
	a := slices.Clone(want)
	b := slices.Clone(got)
	sort.Strings(a)
	sort.Strings(b)
	return slices.Equal(a, b)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
