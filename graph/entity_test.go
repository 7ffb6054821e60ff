package graph

import "testing"

func TestParseIdentity(t *testing.T) {
	tests := []struct {
		uri  string
		want int64
		ok   bool
	}{
		{"http://localhost:7474/db/data/node/42", 42, true},
		{"http://localhost:7474/db/data/relationship/0", 0, true},
		{"http://localhost:7474/db/data/node/", 0, false},
		{"http://localhost:7474/db/data/node/abc", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := parseIdentity(tt.uri)
		if got != tt.want || ok != tt.ok {
			t.Errorf("parseIdentity(%q) = (%d, %v), want (%d, %v)", tt.uri, got, ok, tt.want, tt.ok)
		}
	}
}

func TestNodeImplementsCapabilities(t *testing.T) {
	node := &Node{ID: 7, Labels: []string{"Person"}}

	var identified Identified = node
	if identified.GraphID() != 7 {
		t.Errorf("GraphID() = %d, want 7", identified.GraphID())
	}

	var source NodeSource = node
	nodes := source.Nodes()
	if len(nodes) != 1 || nodes[0] != node {
		t.Errorf("Nodes() should yield the node itself, got %v", nodes)
	}
}

func TestNodeString(t *testing.T) {
	labelled := &Node{ID: 3, Labels: []string{"Person", "Employee"}}
	if got := labelled.String(); got != "(3:Person:Employee)" {
		t.Errorf("String() = %q", got)
	}
	bare := &Node{ID: 4}
	if got := bare.String(); got != "(4)" {
		t.Errorf("String() = %q", got)
	}
}

func TestRelationshipString(t *testing.T) {
	rel := &Relationship{ID: 9, Type: "KNOWS", StartID: 1, EndID: 2}
	if got := rel.String(); got != "(1)-[9:KNOWS]->(2)" {
		t.Errorf("String() = %q", got)
	}
}

func TestPathAccessors(t *testing.T) {
	a := &Node{ID: 1}
	b := &Node{ID: 2}
	r := &Relationship{ID: 5, StartID: 1, EndID: 2}
	path := NewPath([]*Node{a, b}, []*Relationship{r})

	if path.Len() != 1 {
		t.Errorf("Len() = %d, want 1", path.Len())
	}
	if nodes := path.Nodes(); len(nodes) != 2 || nodes[0] != a {
		t.Errorf("unexpected nodes %v", nodes)
	}
	if rels := path.Relationships(); len(rels) != 1 || rels[0] != r {
		t.Errorf("unexpected relationships %v", rels)
	}
}
