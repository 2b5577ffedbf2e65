package gallery

import (
	"errors"
	"fmt"
	"sort"
	"testing"

	"github.com/backmassage/gallerytree/internal/catalog"
)

func TestBuildForest_Basic(t *testing.T) {
	cs := registry(
		cat(1, "Trips", 0),
		cat(2, "2023", 1),
		cat(3, "Family", 0),
		cat(4, "Summer", 2),
	)
	f, err := BuildForest(cs)
	if err != nil {
		t.Fatalf("BuildForest: %v", err)
	}
	if f.Len() != 4 {
		t.Errorf("Len = %d, want 4", f.Len())
	}
	roots := f.Roots()
	if len(roots) != 2 || roots[0].Category.ID != 1 || roots[1].Category.ID != 3 {
		t.Fatalf("roots = %v", nodeIDs(roots))
	}
	if got := nodeIDs(roots[0].Children); fmt.Sprint(got) != "[2]" {
		t.Errorf("children of 1 = %v", got)
	}
	n, ok := f.Node(2)
	if !ok || fmt.Sprint(nodeIDs(n.Children)) != "[4]" {
		t.Errorf("children of 2 = %v", nodeIDs(n.Children))
	}
	if p, ok := f.Parent(4); !ok || p.ID != 2 {
		t.Errorf("Parent(4) = %v, %v", p, ok)
	}
	if _, ok := f.Parent(1); ok {
		t.Error("root reported a parent")
	}
}

// Children listed before their parents, deep chains and parents with
// higher ids than their children all need several passes.
func TestBuildForest_ForwardReferences(t *testing.T) {
	cs := registry(
		cat(1, "leaf", 2),
		cat(2, "mid", 3),
		cat(3, "upper", 4),
		cat(4, "root", 0),
	)
	f, err := BuildForest(cs)
	if err != nil {
		t.Fatalf("BuildForest: %v", err)
	}
	if f.Len() != 4 || len(f.Roots()) != 1 {
		t.Fatalf("Len = %d, roots = %v", f.Len(), nodeIDs(f.Roots()))
	}
	depths := map[int]int{}
	f.Walk(func(n *Node, depth int) error {
		depths[n.Category.ID] = depth
		return nil
	})
	want := map[int]int{4: 0, 3: 1, 2: 2, 1: 3}
	if fmt.Sprint(depths) != fmt.Sprint(want) {
		t.Errorf("depths = %v, want %v", depths, want)
	}
}

func TestBuildForest_OrderIndependent(t *testing.T) {
	parentFirst := registry(cat(1, "Trips", 0), cat(2, "2023", 1))
	childFirst := registry(cat(2, "2023", 1), cat(1, "Trips", 0))
	// Same relationships when the child's id sorts before its parent.
	swapped := registry(cat(1, "2023", 2), cat(2, "Trips", 0))

	for name, cs := range map[string]catalog.Categories{"parent first": parentFirst, "child first": childFirst} {
		f, err := BuildForest(cs)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if p, ok := f.Parent(2); !ok || p.ID != 1 {
			t.Errorf("%s: Parent(2) = %v", name, p)
		}
	}
	f, err := BuildForest(swapped)
	if err != nil {
		t.Fatal(err)
	}
	if p, ok := f.Parent(1); !ok || p.Name != "Trips" {
		t.Errorf("swapped: Parent(1) = %v", p)
	}
}

func TestBuildForest_EveryCategoryOnce(t *testing.T) {
	// A wide, deep registry with parents scattered across ids.
	cs := catalog.Categories{}
	for id := 1; id <= 200; id++ {
		// Leaves hang off the next multiple of ten; the multiples of ten
		// form one chain 10, 20 ... 200, each parent with a higher id.
		parent := (id/10 + 1) * 10
		if id%10 == 0 {
			parent = id + 10
		}
		if parent > 200 {
			parent = 0
		}
		cs[id] = &catalog.Category{ID: id, Name: fmt.Sprintf("c%d", id), ParentID: parent}
	}

	f, err := BuildForest(cs)
	if err != nil {
		t.Fatalf("BuildForest: %v", err)
	}
	seen := map[int]int{}
	f.Walk(func(n *Node, _ int) error {
		seen[n.Category.ID]++
		return nil
	})
	if len(seen) != len(cs) {
		t.Fatalf("visited %d categories, want %d", len(seen), len(cs))
	}
	for id, n := range seen {
		if n != 1 {
			t.Errorf("category %d visited %d times", id, n)
		}
	}
}

func TestBuildForest_DanglingParent(t *testing.T) {
	cs := registry(cat(1, "Trips", 0), cat(2, "Lost", 99), cat(3, "Below lost", 2))
	_, err := BuildForest(cs)
	if err == nil {
		t.Fatal("expected error for missing parent")
	}
	if !errors.Is(err, ErrUnresolved) {
		t.Errorf("err = %v, want ErrUnresolved", err)
	}
	var ue *UnresolvedError
	if !errors.As(err, &ue) {
		t.Fatalf("err = %T, want *UnresolvedError", err)
	}
	byID := map[int]Unresolved{}
	for _, u := range ue.Categories {
		byID[u.ID] = u
	}
	if u, ok := byID[2]; !ok || u.ParentID != 99 || !u.Dangling {
		t.Errorf("category 2 = %+v, want dangling parent 99", u)
	}
	if u, ok := byID[3]; !ok || u.Dangling {
		t.Errorf("category 3 = %+v, want stuck behind 2", u)
	}
	if _, ok := byID[1]; ok {
		t.Error("root reported as unresolved")
	}
}

func TestBuildForest_Cycle(t *testing.T) {
	cs := registry(cat(1, "a", 2), cat(2, "b", 1), cat(3, "self", 3), cat(4, "ok", 0))
	_, err := BuildForest(cs)
	var ue *UnresolvedError
	if !errors.As(err, &ue) {
		t.Fatalf("err = %v, want *UnresolvedError", err)
	}
	var ids []int
	for _, u := range ue.Categories {
		ids = append(ids, u.ID)
		if u.Dangling {
			t.Errorf("category %d marked dangling in a cycle", u.ID)
		}
	}
	sort.Ints(ids)
	if fmt.Sprint(ids) != "[1 2 3]" {
		t.Errorf("unresolved ids = %v", ids)
	}
}

func TestBuildForest_Empty(t *testing.T) {
	f, err := BuildForest(catalog.Categories{})
	if err != nil {
		t.Fatal(err)
	}
	if f.Len() != 0 || len(f.Roots()) != 0 {
		t.Errorf("empty forest has %d nodes", f.Len())
	}
}

func TestForest_WalkStops(t *testing.T) {
	f, err := BuildForest(registry(cat(1, "a", 0), cat(2, "b", 1), cat(3, "c", 0)))
	if err != nil {
		t.Fatal(err)
	}
	stop := errors.New("stop")
	visited := 0
	err = f.Walk(func(n *Node, _ int) error {
		visited++
		if n.Category.ID == 2 {
			return stop
		}
		return nil
	})
	if !errors.Is(err, stop) || visited != 2 {
		t.Errorf("Walk = %v after %d visits", err, visited)
	}
}

func nodeIDs(ns []*Node) []int {
	ids := make([]int, len(ns))
	for i, n := range ns {
		ids[i] = n.Category.ID
	}
	return ids
}
