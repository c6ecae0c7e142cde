// Package ordering holds the pure sibling-ordering rules behind the menu
// service: append positions, in-memory repositioning, density checks and
// the post-order deletion plan.
package ordering

import (
	"errors"
	"fmt"
	"sort"
)

// ErrNotInScope is returned when a repositioned id is absent from its list.
var ErrNotInScope = errors.New("item not in scope")

// AppendPosition is the position that extends a scope whose highest
// sort order is maxOrder. An empty scope (ok == false) starts at 0.
func AppendPosition(maxOrder int, ok bool) int {
	if !ok {
		return 0
	}
	return maxOrder + 1
}

// Clamp bounds i to [0, n].
func Clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}

// Reposition returns a copy of ids with id moved to index to. An index past
// the end appends.
func Reposition(ids []string, id string, to int) ([]string, error) {
	from := -1
	for i, v := range ids {
		if v == id {
			from = i
			break
		}
	}
	if from < 0 {
		return nil, fmt.Errorf("%s: %w", id, ErrNotInScope)
	}

	out := make([]string, 0, len(ids))
	out = append(out, ids[:from]...)
	out = append(out, ids[from+1:]...)

	to = Clamp(to, len(out))
	out = append(out, "")
	copy(out[to+1:], out[to:])
	out[to] = id
	return out, nil
}

// Violation describes how a scope's sort orders depart from 0..n-1.
type Violation struct {
	Missing    []int
	Duplicates []int
}

func (v Violation) Error() string {
	return fmt.Sprintf("sort order not dense: missing %v, duplicated %v", v.Missing, v.Duplicates)
}

// CheckDense verifies that orders is a permutation of 0..len(orders)-1.
// It returns nil or a Violation.
func CheckDense(orders []int) error {
	n := len(orders)
	seen := make(map[int]int, n)
	for _, o := range orders {
		seen[o]++
	}

	var v Violation
	for i := 0; i < n; i++ {
		if seen[i] == 0 {
			v.Missing = append(v.Missing, i)
		}
	}
	for o, c := range seen {
		if c > 1 {
			v.Duplicates = append(v.Duplicates, o)
		}
	}
	if len(v.Missing) == 0 && len(v.Duplicates) == 0 {
		return nil
	}
	sort.Ints(v.Duplicates)
	return v
}

// DeletionPlan returns rootID and all of its descendants in post-order:
// every node appears after all of its descendants. children must return
// the direct children of an id in sibling order. Traversal uses an explicit
// stack, so depth is bounded only by memory.
func DeletionPlan(rootID string, children func(id string) ([]string, error)) ([]string, error) {
	type frame struct {
		id       string
		expanded bool
	}

	var plan []string
	visited := map[string]bool{rootID: true}
	stack := []frame{{id: rootID}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.expanded {
			plan = append(plan, top.id)
			stack = stack[:len(stack)-1]
			continue
		}
		top.expanded = true
		id := top.id

		kids, err := children(id)
		if err != nil {
			return nil, fmt.Errorf("listing children of %s: %w", id, err)
		}
		// Push in reverse so the first child is visited first.
		for i := len(kids) - 1; i >= 0; i-- {
			if visited[kids[i]] {
				continue
			}
			visited[kids[i]] = true
			stack = append(stack, frame{id: kids[i]})
		}
	}
	return plan, nil
}
