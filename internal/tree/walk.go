package tree

// Action tells the walker how to proceed after visiting a node.
type Action int

const (
	// Continue descends into the node's children (or the replacement's
	// children) and then moves on to the next sibling.
	Continue Action = iota
	// SkipChildren moves on to the next sibling without descending.
	SkipChildren
	// Stop ends the traversal. Nodes not yet visited are kept as they are.
	Stop
)

// String returns the action name.
func (a Action) String() string {
	switch a {
	case Continue:
		return "continue"
	case SkipChildren:
		return "skip_children"
	case Stop:
		return "stop"
	default:
		return "unknown"
	}
}

// Visit describes where a visited node sits in the input tree.
type Visit struct {
	// Parent is the original parent of the node, nil for the root.
	Parent *Node
	// Index is the node position in Parent.Children, -1 for the root.
	Index int
	// Ancestors lists the original ancestors from the root down to Parent.
	Ancestors []*Node
}

// Result is returned by a Visitor. Build it with Keep or Replace.
type Result struct {
	Action   Action
	replaced bool
	nodes    []*Node
}

// Keep leaves the visited node in place.
func Keep(action Action) Result {
	return Result{Action: action}
}

// Replace puts nodes where the visited node was. Passing no nodes removes it.
func Replace(action Action, nodes ...*Node) Result {
	return Result{Action: action, replaced: true, nodes: nodes}
}

// Replaced reports whether the result swaps the visited node out.
func (r Result) Replaced() bool {
	return r.replaced
}

// Visitor is called once per node in depth-first pre-order.
type Visitor func(n *Node, v Visit) Result

// Transform walks root and returns the rewritten tree. The input is never
// modified: unchanged subtrees are shared with the result and every ancestor
// of a replaced node is shallow-copied with a fresh child slice. The root
// itself is visited but cannot be replaced.
func Transform(root *Node, visit Visitor) *Node {
	if root == nil || visit == nil {
		return root
	}
	res := visit(root, Visit{Index: -1})
	if res.Action != Continue {
		return root
	}
	w := &walker{visit: visit}
	return w.descend(root, nil)
}

type walker struct {
	visit   Visitor
	stopped bool
}

func (w *walker) descend(parent *Node, ancestors []*Node) *Node {
	if len(parent.Children) == 0 {
		return parent
	}
	path := append(ancestors[:len(ancestors):len(ancestors)], parent)

	var out []*Node
	changed := false

	for i, child := range parent.Children {
		if w.stopped {
			if changed {
				out = append(out, parent.Children[i:]...)
			}
			break
		}

		res := w.visit(child, Visit{Parent: parent, Index: i, Ancestors: path})
		if res.Action == Stop {
			w.stopped = true
		}

		produced := []*Node{child}
		nodeChanged := false
		if res.replaced {
			produced = compact(res.nodes)
			nodeChanged = true
		}

		if res.Action == Continue {
			for j, n := range produced {
				if w.stopped {
					break
				}
				if next := w.descend(n, path); next != n {
					produced[j] = next
					nodeChanged = true
				}
			}
		}

		if nodeChanged && !changed {
			changed = true
			out = make([]*Node, 0, len(parent.Children)+len(produced))
			out = append(out, parent.Children[:i]...)
		}
		if changed {
			out = append(out, produced...)
		}
	}

	if !changed {
		return parent
	}
	clone := parent.Clone()
	clone.Children = out
	return clone
}

func compact(nodes []*Node) []*Node {
	out := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

// Inspect walks root depth-first without rewriting anything. Returning
// SkipChildren prunes the subtree and Stop ends the walk.
func Inspect(root *Node, fn func(n *Node, depth int) Action) {
	if root == nil || fn == nil {
		return
	}
	inspect(root, 0, fn)
}

func inspect(n *Node, depth int, fn func(*Node, int) Action) bool {
	switch fn(n, depth) {
	case Stop:
		return false
	case SkipChildren:
		return true
	}
	for _, child := range n.Children {
		if !inspect(child, depth+1, fn) {
			return false
		}
	}
	return true
}

// FindAll returns every node for which match reports true, in document order.
func FindAll(root *Node, match func(*Node) bool) []*Node {
	var out []*Node
	Inspect(root, func(n *Node, _ int) Action {
		if match(n) {
			out = append(out, n)
		}
		return Continue
	})
	return out
}
