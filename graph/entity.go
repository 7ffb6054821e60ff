// Package graph provides the graph entity types returned by statement
// execution and the capability interfaces the driver core relies on.
package graph

import (
	"fmt"
	"strconv"
	"strings"
)

// Identified is implemented by any value that carries a server-side graph
// identity. Parameter values implementing it are collapsed to their identity
// before being sent as bound parameters.
type Identified interface {
	GraphID() int64
}

// NodeSource is implemented by any value that can yield concrete nodes.
// Relate endpoint resolution accepts any NodeSource as a start or end
// reference.
type NodeSource interface {
	Nodes() []*Node
}

// Node represents a single graph node.
type Node struct {
	ID         int64
	URI        string
	Labels     []string
	Properties map[string]any
}

// GraphID returns the server-side identity of the node.
func (n *Node) GraphID() int64 {
	return n.ID
}

// Nodes returns the node itself, making a Node usable anywhere a NodeSource
// is expected.
func (n *Node) Nodes() []*Node {
	return []*Node{n}
}

func (n *Node) String() string {
	if len(n.Labels) > 0 {
		return fmt.Sprintf("(%d:%s)", n.ID, strings.Join(n.Labels, ":"))
	}
	return fmt.Sprintf("(%d)", n.ID)
}

// Relationship represents a single typed relationship between two nodes.
type Relationship struct {
	ID         int64
	URI        string
	Type       string
	StartID    int64
	EndID      int64
	Properties map[string]any
}

// GraphID returns the server-side identity of the relationship.
func (r *Relationship) GraphID() int64 {
	return r.ID
}

func (r *Relationship) String() string {
	return fmt.Sprintf("(%d)-[%d:%s]->(%d)", r.StartID, r.ID, r.Type, r.EndID)
}

// Path represents an alternating sequence of nodes and relationships.
type Path struct {
	nodes         []*Node
	relationships []*Relationship
}

// NewPath builds a path from its nodes and relationships.
func NewPath(nodes []*Node, relationships []*Relationship) *Path {
	return &Path{nodes: nodes, relationships: relationships}
}

// Nodes returns the nodes of the path in traversal order.
func (p *Path) Nodes() []*Node {
	return p.nodes
}

// Relationships returns the relationships of the path in traversal order.
func (p *Path) Relationships() []*Relationship {
	return p.relationships
}

// Len returns the number of relationships in the path.
func (p *Path) Len() int {
	return len(p.relationships)
}

// parseIdentity extracts the numeric identity from the tail of an entity's
// self URI.
func parseIdentity(uri string) (int64, bool) {
	idx := strings.LastIndexByte(uri, '/')
	if idx < 0 || idx == len(uri)-1 {
		return 0, false
	}
	id, err := strconv.ParseInt(uri[idx+1:], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
