package scene

import (
	"errors"
	"testing"

	"github.com/san-kum/circles/internal/geom"
)

func TestSpawnSingleNode(t *testing.T) {
	g := New()
	e := g.Spawn(geom.V(1, 2))

	var seen []NodeID
	g.Visit(e, func(id NodeID, n *Node) { seen = append(seen, id) })

	if len(seen) != 1 || seen[0] != e.Root {
		t.Fatalf("visited %v, want only root %d", seen, e.Root)
	}
	if g.Parent(e.Root) != None {
		t.Errorf("root has parent %d", g.Parent(e.Root))
	}
}

func TestVisitOneLevel(t *testing.T) {
	g := New()
	e := g.Spawn(geom.V(0, 0))
	a := g.Add(geom.V(1, 0))
	b := g.Add(geom.V(2, 0))
	deep := g.Add(geom.V(3, 0))

	for _, c := range [][2]NodeID{{e.Root, a}, {e.Root, b}, {a, deep}} {
		if err := g.Connect(c[0], c[1]); err != nil {
			t.Fatalf("Connect(%d, %d): %v", c[0], c[1], err)
		}
	}

	var seen []NodeID
	g.Visit(e, func(id NodeID, n *Node) { seen = append(seen, id) })

	want := []NodeID{e.Root, a, b}
	if len(seen) != len(want) {
		t.Fatalf("visited %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("visited %v, want %v", seen, want)
		}
	}
}

func TestConnectErrors(t *testing.T) {
	g := New()
	r := g.Add(geom.Vec2{})
	a := g.Add(geom.Vec2{})
	b := g.Add(geom.Vec2{})
	if err := g.Connect(r, a); err != nil {
		t.Fatal(err)
	}
	if err := g.Connect(a, b); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name          string
		parent, child NodeID
		want          error
	}{
		{"missing parent", 9, a, ErrNoNode},
		{"missing child", r, -3, ErrNoNode},
		{"shared child", r, b, ErrOwned},
		{"self", b, b, ErrCycle},
		{"back edge", b, r, ErrCycle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := g.Connect(tt.parent, tt.child); !errors.Is(err, tt.want) {
				t.Errorf("Connect(%d, %d) = %v, want %v", tt.parent, tt.child, err, tt.want)
			}
		})
	}

	if n := len(g.Node(r).Children); n != 1 {
		t.Errorf("failed connects mutated root children: %d", n)
	}
}

func TestMove(t *testing.T) {
	g := New()
	e := g.Spawn(geom.V(0, 0))
	g.Move(e.Root, geom.V(5, 6))
	g.Move(42, geom.V(7, 7))

	if got := g.Node(e.Root).Position; got != geom.V(5, 6) {
		t.Errorf("position = %v", got)
	}
	if g.Node(42) != nil {
		t.Error("out of range node should be nil")
	}
	if g.Len() != 1 {
		t.Errorf("Len = %d", g.Len())
	}
}
