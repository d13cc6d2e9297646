// Package tree provides helpers for working with the generic node structure
// produced by decoding Yahoo's XML responses. The decoder does not
// distinguish a single-element collection from a scalar: a repeated field
// arrives as a list when more than one item exists, as a single mapping when
// exactly one exists, and is absent when there are none. Every repeatable
// field in the upstream schema must pass through Repeated before iteration.
package tree

// Node is a decoded response value: a mapping (map[string]any), an ordered
// sequence ([]any), a scalar, or nil.
type Node = any

// Repeated collapses the upstream single-vs-list ambiguity into a canonical
// sequence. Absent input yields an empty sequence, a sequence is returned
// unchanged, and anything else (a mapping or a scalar) becomes a one-element
// sequence. It never fails.
func Repeated(node Node) []Node {
	switch v := node.(type) {
	case nil:
		return []Node{}
	case []any:
		return v
	default:
		return []Node{v}
	}
}

// Map returns node as a mapping, or nil if it is anything else.
func Map(node Node) map[string]any {
	m, _ := node.(map[string]any)
	return m
}

// Str returns node as a string, or "" if it is not a string scalar.
func Str(node Node) string {
	s, _ := node.(string)
	return s
}

// At walks nested mappings along path and returns the node found there.
// A missing key or a non-mapping intermediate yields nil.
func At(node Node, path ...string) Node {
	cur := node
	for _, key := range path {
		m := Map(cur)
		if m == nil {
			return nil
		}
		cur = m[key]
	}
	return cur
}
