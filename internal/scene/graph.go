// Package scene stores drawable nodes in an arena. Nodes refer to their
// children by index and every node has at most one parent, so the graph is
// always a forest.
package scene

import (
	"errors"
	"fmt"

	"github.com/san-kum/circles/internal/geom"
)

var (
	ErrNoNode = errors.New("scene: no such node")
	ErrOwned  = errors.New("scene: node already has a parent")
	ErrCycle  = errors.New("scene: connection would create a cycle")
)

// NodeID indexes a node inside its Graph.
type NodeID int

// None is the parent of a root node.
const None NodeID = -1

type Node struct {
	Position geom.Vec2
	Children []NodeID
}

// Entity wraps the root of one tree in the graph.
type Entity struct {
	Root NodeID
}

type Graph struct {
	nodes  []Node
	parent []NodeID
}

func New() *Graph { return &Graph{} }

// Add appends a parentless node and returns its id.
func (g *Graph) Add(pos geom.Vec2) NodeID {
	g.nodes = append(g.nodes, Node{Position: pos})
	g.parent = append(g.parent, None)
	return NodeID(len(g.nodes) - 1)
}

// Spawn creates a single-node entity at pos.
func (g *Graph) Spawn(pos geom.Vec2) Entity {
	return Entity{Root: g.Add(pos)}
}

func (g *Graph) Len() int { return len(g.nodes) }

func (g *Graph) valid(id NodeID) bool { return id >= 0 && int(id) < len(g.nodes) }

// Node returns the node for id, or nil if id is out of range. The pointer is
// invalidated by the next Add.
func (g *Graph) Node(id NodeID) *Node {
	if !g.valid(id) {
		return nil
	}
	return &g.nodes[id]
}

func (g *Graph) Parent(id NodeID) NodeID {
	if !g.valid(id) {
		return None
	}
	return g.parent[id]
}

// Connect makes child an owned child of parent.
func (g *Graph) Connect(parent, child NodeID) error {
	if !g.valid(parent) || !g.valid(child) {
		return fmt.Errorf("%w: connect %d -> %d", ErrNoNode, parent, child)
	}
	for n := parent; n != None; n = g.parent[n] {
		if n == child {
			return fmt.Errorf("%w: %d is an ancestor of %d", ErrCycle, child, parent)
		}
	}
	if g.parent[child] != None {
		return fmt.Errorf("%w: %d owned by %d", ErrOwned, child, g.parent[child])
	}
	g.parent[child] = parent
	g.nodes[parent].Children = append(g.nodes[parent].Children, child)
	return nil
}

// Move sets the position of a node. Out of range ids are ignored.
func (g *Graph) Move(id NodeID, pos geom.Vec2) {
	if g.valid(id) {
		g.nodes[id].Position = pos
	}
}

// Visit calls fn for the entity root and then for each of its direct
// children in order. Deeper descendants are not visited.
func (g *Graph) Visit(e Entity, fn func(NodeID, *Node)) {
	root := g.Node(e.Root)
	if root == nil {
		return
	}
	fn(e.Root, root)
	for _, id := range root.Children {
		fn(id, &g.nodes[id])
	}
}
