package graph

// Hydrator converts a raw server-returned value into a typed domain value.
// The driver core invokes it once per column value when hydration is
// requested.
type Hydrator func(raw any) any

// Hydrate converts a REST-shaped payload into its typed equivalent. Objects
// carrying a "self" URI become nodes or relationships, objects carrying node
// and relationship lists become paths, and collections hydrate elementwise.
// Values with no recognizable graph shape pass through unchanged.
func Hydrate(raw any) any {
	switch v := raw.(type) {
	case map[string]any:
		if _, ok := v["self"]; ok {
			if _, ok := v["type"]; ok {
				return hydrateRelationship(v)
			}
			return hydrateNode(v)
		}
		if hasKey(v, "nodes") && hasKey(v, "relationships") {
			return hydratePath(v)
		}
		return v
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = Hydrate(item)
		}
		return out
	default:
		return raw
	}
}

func hasKey(m map[string]any, key string) bool {
	_, ok := m[key]
	return ok
}

func selfURI(m map[string]any) string {
	uri, _ := m["self"].(string)
	return uri
}

func hydrateNode(m map[string]any) *Node {
	node := &Node{
		URI:        selfURI(m),
		Properties: properties(m),
	}
	node.ID, _ = parseIdentity(node.URI)
	if meta, ok := m["metadata"].(map[string]any); ok {
		if labels, ok := meta["labels"].([]any); ok {
			for _, label := range labels {
				if s, ok := label.(string); ok {
					node.Labels = append(node.Labels, s)
				}
			}
		}
	}
	return node
}

func hydrateRelationship(m map[string]any) *Relationship {
	rel := &Relationship{
		URI:        selfURI(m),
		Properties: properties(m),
	}
	rel.ID, _ = parseIdentity(rel.URI)
	rel.Type, _ = m["type"].(string)
	if start, ok := m["start"].(string); ok {
		rel.StartID, _ = parseIdentity(start)
	}
	if end, ok := m["end"].(string); ok {
		rel.EndID, _ = parseIdentity(end)
	}
	return rel
}

// hydratePath accepts both the compact form, where nodes and relationships
// are lists of URIs, and the expanded form, where they are full objects.
func hydratePath(m map[string]any) *Path {
	rawNodes, _ := m["nodes"].([]any)
	rawRels, _ := m["relationships"].([]any)

	nodes := make([]*Node, 0, len(rawNodes))
	for _, raw := range rawNodes {
		switch n := raw.(type) {
		case string:
			node := &Node{URI: n}
			node.ID, _ = parseIdentity(n)
			nodes = append(nodes, node)
		case map[string]any:
			nodes = append(nodes, hydrateNode(n))
		}
	}

	rels := make([]*Relationship, 0, len(rawRels))
	for _, raw := range rawRels {
		switch r := raw.(type) {
		case string:
			rel := &Relationship{URI: r}
			rel.ID, _ = parseIdentity(r)
			rels = append(rels, rel)
		case map[string]any:
			rels = append(rels, hydrateRelationship(r))
		}
	}

	return NewPath(nodes, rels)
}

func properties(m map[string]any) map[string]any {
	if data, ok := m["data"].(map[string]any); ok {
		return data
	}
	return map[string]any{}
}
