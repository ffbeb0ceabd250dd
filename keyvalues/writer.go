package keyvalues

import (
	"io"
	"strings"
)

var escaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\t", `\t`)

func quote(s string) string {
	return `"` + escaper.Replace(s) + `"`
}

// Marshal renders the children of n in the tab-indented layout the Steam
// client writes. Parsing the result yields an equivalent tree.
func Marshal(n *Node) string {
	var b strings.Builder
	writeTree(&b, n)
	return b.String()
}

// Encode writes Marshal(n) to w.
func Encode(w io.Writer, n *Node) error {
	_, err := io.WriteString(w, Marshal(n))
	return err
}

func writeTree(b *strings.Builder, root *Node) {
	type cursor struct {
		node *Node
		next int
	}
	stack := []cursor{{node: root}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		depth := len(stack) - 1
		if top.next == len(top.node.entries) {
			stack = stack[:len(stack)-1]
			if depth > 0 {
				b.WriteString(strings.Repeat("\t", depth-1))
				b.WriteString("}\n")
			}
			continue
		}

		e := top.node.entries[top.next]
		top.next++
		indent := strings.Repeat("\t", depth)
		if e.Node.leaf {
			b.WriteString(indent + quote(e.Key) + "\t\t" + quote(e.Node.value) + "\n")
			continue
		}
		b.WriteString(indent + quote(e.Key) + "\n")
		b.WriteString(indent + "{\n")
		stack = append(stack, cursor{node: e.Node})
	}
}
