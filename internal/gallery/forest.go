package gallery

import (
	"github.com/backmassage/gallerytree/internal/catalog"
)

// Node is one category in the forest. Children are ordered by resolution.
type Node struct {
	Category *catalog.Category
	Children []*Node
}

// Forest is the category hierarchy: independent trees, one per root
// category.
type Forest struct {
	roots []*Node
	nodes map[int]*Node
}

// BuildForest attaches every category of cs beneath its parent.
//
// Input order carries no guarantee, so resolution runs in passes: each pass
// attaches every pending category whose parent is already in the forest.
// At most len(cs) passes are needed. A pass that attaches nothing while
// categories remain means their parents are missing or form a cycle, which
// is reported as *UnresolvedError rather than dropped.
func BuildForest(cs catalog.Categories) (*Forest, error) {
	f := &Forest{nodes: make(map[int]*Node, len(cs))}

	var pending []*catalog.Category
	for _, id := range cs.IDs() {
		c := cs[id]
		if c.IsRoot() {
			n := &Node{Category: c}
			f.roots = append(f.roots, n)
			f.nodes[id] = n
			continue
		}
		pending = append(pending, c)
	}

	for len(pending) > 0 {
		var remaining []*catalog.Category
		for _, c := range pending {
			parent, ok := f.nodes[c.ParentID]
			if !ok {
				remaining = append(remaining, c)
				continue
			}
			n := &Node{Category: c}
			parent.Children = append(parent.Children, n)
			f.nodes[c.ID] = n
		}
		if len(remaining) == len(pending) {
			return nil, unresolved(cs, remaining)
		}
		pending = remaining
	}
	return f, nil
}

func unresolved(cs catalog.Categories, stuck []*catalog.Category) *UnresolvedError {
	e := &UnresolvedError{Categories: make([]Unresolved, 0, len(stuck))}
	for _, c := range stuck {
		_, known := cs[c.ParentID]
		e.Categories = append(e.Categories, Unresolved{
			ID:       c.ID,
			Name:     c.Name,
			ParentID: c.ParentID,
			Dangling: !known,
		})
	}
	return e
}

// Roots returns the root nodes in ascending id order.
func (f *Forest) Roots() []*Node { return f.roots }

// Len returns the number of categories in the forest.
func (f *Forest) Len() int { return len(f.nodes) }

// Node returns the node for a category id.
func (f *Forest) Node(id int) (*Node, bool) {
	n, ok := f.nodes[id]
	return n, ok
}

// Parent returns the parent category of id. It reports false for roots and
// unknown ids.
func (f *Forest) Parent(id int) (*catalog.Category, bool) {
	n, ok := f.nodes[id]
	if !ok || n.Category.IsRoot() {
		return nil, false
	}
	p, ok := f.nodes[n.Category.ParentID]
	if !ok {
		return nil, false
	}
	return p.Category, true
}

// Walk visits every node depth-first, parents before children, starting
// at each root in turn. depth is 0 for roots. A non-nil error from fn stops
// the walk and is returned.
func (f *Forest) Walk(fn func(n *Node, depth int) error) error {
	for _, r := range f.roots {
		if err := walk(r, 0, fn); err != nil {
			return err
		}
	}
	return nil
}

func walk(n *Node, depth int, fn func(*Node, int) error) error {
	if err := fn(n, depth); err != nil {
		return err
	}
	for _, c := range n.Children {
		if err := walk(c, depth+1, fn); err != nil {
			return err
		}
	}
	return nil
}
