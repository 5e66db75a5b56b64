package resolve

import (
	"sort"

	"github.com/blackmindsinstem/stemset/pkg/records"
)

// unionFind groups records connected by pairwise exact-duplicate edges
// into components. Duplicate relationships are pairwise but resolution
// must act on whole groups: if A≡B and B≡C then {A,B,C} resolves to one
// survivor. Roots are always the lowest-ordinal member, which keeps
// component identity deterministic across runs.
type unionFind struct {
	parent   map[records.ID]records.ID
	ordinals map[records.ID]int
}

func newUnionFind() *unionFind {
	return &unionFind{
		parent:   make(map[records.ID]records.ID),
		ordinals: make(map[records.ID]int),
	}
}

func (u *unionFind) add(r *records.Record) {
	if _, ok := u.parent[r.ID]; !ok {
		u.parent[r.ID] = r.ID
		u.ordinals[r.ID] = r.Ordinal
	}
}

func (u *unionFind) find(id records.ID) records.ID {
	root := id
	for u.parent[root] != root {
		root = u.parent[root]
	}
	// Path compression.
	for u.parent[id] != root {
		u.parent[id], id = root, u.parent[id]
	}
	return root
}

func (u *unionFind) union(a, b *records.Record) {
	u.add(a)
	u.add(b)
	ra := u.find(a.ID)
	rb := u.find(b.ID)
	if ra == rb {
		return
	}
	// The lower-ordinal root wins so component roots are stable.
	if u.ordinals[rb] < u.ordinals[ra] {
		ra, rb = rb, ra
	}
	u.parent[rb] = ra
}

// components returns every duplicate group with at least two members,
// ordered by root ordinal, members ordered by ordinal within each group.
func (u *unionFind) components() [][]records.ID {
	byRoot := make(map[records.ID][]records.ID)
	for id := range u.parent {
		root := u.find(id)
		byRoot[root] = append(byRoot[root], id)
	}

	var groups [][]records.ID
	for _, members := range byRoot {
		if len(members) < 2 {
			continue
		}
		sort.Slice(members, func(i, j int) bool {
			return u.ordinals[members[i]] < u.ordinals[members[j]]
		})
		groups = append(groups, members)
	}
	sort.Slice(groups, func(i, j int) bool {
		return u.ordinals[groups[i][0]] < u.ordinals[groups[j][0]]
	})
	return groups
}
