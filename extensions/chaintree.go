package extensions

import (
	"fmt"

	"github.com/m1gwings/treedrawer/tree"

	argfn "github.com/argfn/argfn"
)

// DrawChain renders a decorated chain as a tree, outermost node at the
// root, terminating in the wrapped target. Useful when debugging the
// ordering of stacked decorators.
func DrawChain(a *argfn.Args) string {
	nodes := a.Chain()
	if len(nodes) == 0 {
		return ""
	}

	root := tree.NewTree(tree.NodeString(describe(nodes[0])))
	cur := root
	for _, n := range nodes[1:] {
		cur = cur.AddChild(tree.NodeString(describe(n)))
	}

	return fmt.Sprint(root)
}

func describe(n argfn.NodeInfo) string {
	if n.Detail == "" {
		return string(n.Kind)
	}
	return fmt.Sprintf("%s(%s)", n.Kind, n.Detail)
}
