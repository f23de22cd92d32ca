// Package tree assembles ordered forests from flat, parent-referencing
// records and walks them back into flat lists.
package tree

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// NotFound is the depth reported for an id that does not occur in a forest.
const NotFound = -1

var (
	// ErrDuplicateID is returned by Build when two records share an id.
	ErrDuplicateID = errors.New("duplicate id")
	// ErrCycle is returned by Build when a record is its own ancestor.
	ErrCycle = errors.New("parent cycle")
)

// Record is the envelope every tree-shaped record exposes. A nil parent
// marks a root.
type Record interface {
	TreeID() string
	TreeParentID() *string
	TreeOrder() int
}

// Node is one record placed in a built forest. Children are sorted by
// TreeOrder, ties in input order.
type Node[T Record] struct {
	Item     T
	Children []*Node[T]
}

// ID returns the wrapped record's id.
func (n *Node[T]) ID() string {
	return n.Item.TreeID()
}

// Entry is a flattened record together with its depth in the forest.
type Entry[T Record] struct {
	Item  T
	Depth int
}

// Build links items into a forest of roots.
//
// Each item is wrapped in a fresh Node, so the caller's slice is never
// written. Items whose parent id does not occur in items are dropped along
// with their subtrees; use Unreachable to list them. Duplicate ids and
// parent cycles are reported as ErrDuplicateID and ErrCycle.
func Build[T Record](items []T) ([]*Node[T], error) {
	lookup := make(map[string]*Node[T], len(items))
	for _, item := range items {
		id := item.TreeID()
		if _, dup := lookup[id]; dup {
			return nil, fmt.Errorf("building tree: %w: %q", ErrDuplicateID, id)
		}
		lookup[id] = &Node[T]{Item: item, Children: []*Node[T]{}}
	}

	if err := checkCycles(items, lookup); err != nil {
		return nil, fmt.Errorf("building tree: %w", err)
	}

	roots := make([]*Node[T], 0)
	for _, item := range items {
		node := lookup[item.TreeID()]
		parentID := item.TreeParentID()
		if parentID == nil {
			roots = append(roots, node)
			continue
		}
		parent, ok := lookup[*parentID]
		if !ok {
			continue
		}
		parent.Children = append(parent.Children, node)
	}

	sortSiblings(roots)
	return roots, nil
}

// checkCycles follows every parent chain once. Chains that leave the
// collection through a dangling reference end there.
func checkCycles[T Record](items []T, lookup map[string]*Node[T]) error {
	const (
		visiting = 1
		settled  = 2
	)
	state := make(map[string]int, len(items))

	for _, item := range items {
		var chain []string
		id := item.TreeID()
		for state[id] != settled {
			if state[id] == visiting {
				return cycleError(chain, id)
			}
			state[id] = visiting
			chain = append(chain, id)

			parentID := lookup[id].Item.TreeParentID()
			if parentID == nil {
				break
			}
			if _, ok := lookup[*parentID]; !ok {
				break
			}
			id = *parentID
		}
		for _, visited := range chain {
			state[visited] = settled
		}
	}
	return nil
}

func cycleError(chain []string, repeated string) error {
	start := 0
	for i, id := range chain {
		if id == repeated {
			start = i
			break
		}
	}
	loop := append(append([]string{}, chain[start:]...), repeated)
	return fmt.Errorf("%w: %s", ErrCycle, strings.Join(loop, " -> "))
}

func sortSiblings[T Record](nodes []*Node[T]) {
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].Item.TreeOrder() < nodes[j].Item.TreeOrder()
	})
	for _, n := range nodes {
		sortSiblings(n.Children)
	}
}

// Walk visits the forest depth-first, each node before its children.
// Returning false from visit stops the walk.
func Walk[T Record](forest []*Node[T], visit func(n *Node[T], depth int) bool) {
	walk(forest, 0, visit)
}

func walk[T Record](nodes []*Node[T], depth int, visit func(*Node[T], int) bool) bool {
	for _, n := range nodes {
		if !visit(n, depth) {
			return false
		}
		if !walk(n.Children, depth+1, visit) {
			return false
		}
	}
	return true
}

// Flatten returns the records of forest in pre-order. It keeps the sibling
// order already present in the forest.
func Flatten[T Record](forest []*Node[T]) []T {
	out := make([]T, 0)
	Walk(forest, func(n *Node[T], _ int) bool {
		out = append(out, n.Item)
		return true
	})
	return out
}

// FlattenWithDepth is Flatten with each record's depth attached.
func FlattenWithDepth[T Record](forest []*Node[T]) []Entry[T] {
	out := make([]Entry[T], 0)
	Walk(forest, func(n *Node[T], depth int) bool {
		out = append(out, Entry[T]{Item: n.Item, Depth: depth})
		return true
	})
	return out
}

// DepthOf returns the depth of id in forest, 0 for roots. When id is
// absent it returns NotFound and false.
func DepthOf[T Record](id string, forest []*Node[T]) (int, bool) {
	found := NotFound
	Walk(forest, func(n *Node[T], depth int) bool {
		if n.ID() == id {
			found = depth
			return false
		}
		return true
	})
	return found, found != NotFound
}

// Find returns the node for id, or nil.
func Find[T Record](id string, forest []*Node[T]) *Node[T] {
	var found *Node[T]
	Walk(forest, func(n *Node[T], _ int) bool {
		if n.ID() == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// Path returns the records from the root down to id, inclusive. It returns
// nil when id is absent.
func Path[T Record](id string, forest []*Node[T]) []T {
	var stack []T
	if pathTo(id, forest, &stack) {
		return stack
	}
	return nil
}

func pathTo[T Record](id string, nodes []*Node[T], stack *[]T) bool {
	for _, n := range nodes {
		*stack = append(*stack, n.Item)
		if n.ID() == id || pathTo(id, n.Children, stack) {
			return true
		}
		*stack = (*stack)[:len(*stack)-1]
	}
	return false
}

// Descendants returns every record below id in pre-order, excluding id
// itself. It returns nil when id is absent.
func Descendants[T Record](id string, forest []*Node[T]) []T {
	n := Find(id, forest)
	if n == nil {
		return nil
	}
	return Flatten(n.Children)
}

// Unreachable returns the items of a Build input that did not make it into
// forest, in input order: dangling references and everything beneath them.
func Unreachable[T Record](items []T, forest []*Node[T]) []T {
	placed := make(map[string]bool, len(items))
	Walk(forest, func(n *Node[T], _ int) bool {
		placed[n.ID()] = true
		return true
	})
	var out []T
	for _, item := range items {
		if !placed[item.TreeID()] {
			out = append(out, item)
		}
	}
	return out
}
