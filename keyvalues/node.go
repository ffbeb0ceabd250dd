package keyvalues

import "strings"

// Node is one value of a KeyValues document. A leaf holds a string, a
// container holds an ordered set of uniquely named children.
type Node struct {
	leaf    bool
	value   string
	entries []Entry
	index   map[string]int
}

// Entry is a named child of a container node.
type Entry struct {
	Key  string
	Node *Node
}

func NewLeaf(value string) *Node {
	return &Node{leaf: true, value: value}
}

func NewContainer() *Node {
	return &Node{index: make(map[string]int)}
}

func (n *Node) IsLeaf() bool {
	return n.leaf
}

// Value returns the string of a leaf, or "" for a container.
func (n *Node) Value() string {
	return n.value
}

// Len returns the number of children of a container.
func (n *Node) Len() int {
	return len(n.entries)
}

// Entries returns the children in document order. The slice must not be
// modified.
func (n *Node) Entries() []Entry {
	return n.entries
}

func (n *Node) Keys() []string {
	keys := make([]string, len(n.entries))
	for i, e := range n.entries {
		keys[i] = e.Key
	}
	return keys
}

// Get returns the child stored under exactly key.
func (n *Node) Get(key string) (*Node, bool) {
	if n.leaf {
		return nil, false
	}
	i, ok := n.index[key]
	if !ok {
		return nil, false
	}
	return n.entries[i].Node, true
}

// Lookup is Get with ASCII case folding. Steam is not consistent about the
// capitalisation of its keys ("AppState", "appstate", "LibraryFolders").
func (n *Node) Lookup(key string) (*Node, bool) {
	if child, ok := n.Get(key); ok {
		return child, true
	}
	for _, e := range n.entries {
		if strings.EqualFold(e.Key, key) {
			return e.Node, true
		}
	}
	return nil, false
}

// String returns the leaf value found under key (case-insensitive).
func (n *Node) String(key string) (string, bool) {
	child, ok := n.Lookup(key)
	if !ok || !child.leaf {
		return "", false
	}
	return child.value, true
}

// Set stores child under key. An existing key keeps its position.
func (n *Node) Set(key string, child *Node) {
	if n.leaf {
		panic("keyvalues: Set on a leaf node")
	}
	if i, ok := n.index[key]; ok {
		n.entries[i].Node = child
		return
	}
	n.index[key] = len(n.entries)
	n.entries = append(n.entries, Entry{Key: key, Node: child})
}

// ToMap converts the tree to nested map[string]interface{} values holding
// either strings or further maps.
func (n *Node) ToMap() map[string]interface{} {
	out := make(map[string]interface{}, len(n.entries))
	for _, e := range n.entries {
		if e.Node.leaf {
			out[e.Key] = e.Node.value
		} else {
			out[e.Key] = e.Node.ToMap()
		}
	}
	return out
}
