package tree

import (
	"reflect"
	"testing"
)

func sampleTree() *Node {
	return Root(
		Parent(TypeParagraph, Text("one")),
		Parent(TypeBlockquote,
			Parent(TypeParagraph, Text("two")),
		),
		Parent(TypeParagraph, Text("three")),
	)
}

func TestTransformLeavesInputUntouched(t *testing.T) {
	root := sampleTree()
	before := sampleTree()

	out := Transform(root, func(n *Node, v Visit) Result {
		if n.Type == TypeText {
			return Replace(SkipChildren, Text(n.Value+"!"))
		}
		return Keep(Continue)
	})

	if !reflect.DeepEqual(root, before) {
		t.Fatalf("expected input tree to be unchanged")
	}
	got := []string{}
	for _, n := range FindAll(out, func(n *Node) bool { return n.Type == TypeText }) {
		got = append(got, n.Value)
	}
	want := []string{"one!", "two!", "three!"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestTransformSharesUnchangedSubtrees(t *testing.T) {
	root := sampleTree()

	out := Transform(root, func(n *Node, v Visit) Result {
		if n.Type == TypeBlockquote {
			return Replace(SkipChildren, Element("aside", nil, n.Children...))
		}
		return Keep(Continue)
	})

	if out == root {
		t.Fatalf("expected a new root when a child is replaced")
	}
	if out.Children[0] != root.Children[0] || out.Children[2] != root.Children[2] {
		t.Fatalf("expected untouched siblings to be shared")
	}
	if !out.Children[1].IsElement("aside") {
		t.Fatalf("expected aside replacement, got %#v", out.Children[1])
	}
}

func TestTransformReturnsSameRootWhenNothingChanges(t *testing.T) {
	root := sampleTree()
	out := Transform(root, func(*Node, Visit) Result { return Keep(Continue) })
	if out != root {
		t.Fatalf("expected identical root pointer for a no-op transform")
	}
}

func TestTransformSplicesMultipleNodes(t *testing.T) {
	root := sampleTree()

	out := Transform(root, func(n *Node, v Visit) Result {
		if n.Type == TypeBlockquote {
			return Replace(SkipChildren, HTML("<a>"), HTML("<b>"), HTML("<c>"))
		}
		return Keep(Continue)
	})

	if len(out.Children) != 5 {
		t.Fatalf("expected 5 children after splice, got %d", len(out.Children))
	}
	if out.Children[0].TextContent() != "one" || out.Children[4].TextContent() != "three" {
		t.Fatalf("expected sibling order to be preserved")
	}
	for i, want := range []string{"<a>", "<b>", "<c>"} {
		if out.Children[i+1].Value != want {
			t.Fatalf("expected %s at %d, got %q", want, i+1, out.Children[i+1].Value)
		}
	}
}

func TestTransformRemovesNode(t *testing.T) {
	root := sampleTree()
	out := Transform(root, func(n *Node, v Visit) Result {
		if n.Type == TypeBlockquote {
			return Replace(SkipChildren)
		}
		return Keep(Continue)
	})
	if len(out.Children) != 2 {
		t.Fatalf("expected blockquote removed, got %d children", len(out.Children))
	}
}

func TestTransformSkipChildren(t *testing.T) {
	visited := 0
	Transform(sampleTree(), func(n *Node, v Visit) Result {
		if n.Type == TypeText {
			visited++
		}
		if n.Type == TypeBlockquote {
			return Keep(SkipChildren)
		}
		return Keep(Continue)
	})
	if visited != 2 {
		t.Fatalf("expected 2 text visits with the blockquote skipped, got %d", visited)
	}
}

func TestTransformStop(t *testing.T) {
	var seen []string
	out := Transform(sampleTree(), func(n *Node, v Visit) Result {
		if n.Type != TypeText {
			return Keep(Continue)
		}
		seen = append(seen, n.Value)
		if n.Value == "two" {
			return Replace(Stop, Text("TWO"))
		}
		return Keep(Continue)
	})
	if !reflect.DeepEqual(seen, []string{"one", "two"}) {
		t.Fatalf("expected traversal to stop after two, saw %v", seen)
	}
	if got := out.TextContent(); got != "oneTWOthree" {
		t.Fatalf("expected trailing nodes kept after stop, got %q", got)
	}
}

func TestTransformVisitContext(t *testing.T) {
	root := sampleTree()
	Transform(root, func(n *Node, v Visit) Result {
		if n.Type == TypeText && n.Value == "two" {
			if v.Index != 0 {
				t.Fatalf("expected index 0, got %d", v.Index)
			}
			if v.Parent != root.Children[1].Children[0] {
				t.Fatalf("expected parent to be the nested paragraph")
			}
			if len(v.Ancestors) != 3 || v.Ancestors[0] != root {
				t.Fatalf("expected root-first ancestors, got %d", len(v.Ancestors))
			}
		}
		return Keep(Continue)
	})
}

func TestTransformDescendsIntoReplacementOnContinue(t *testing.T) {
	root := Root(Parent(TypeBlockquote, Text("x")))
	out := Transform(root, func(n *Node, v Visit) Result {
		switch n.Type {
		case TypeBlockquote:
			return Replace(Continue, Element("div", nil, n.Children...))
		case TypeText:
			return Replace(SkipChildren, Text("y"))
		}
		return Keep(Continue)
	})
	if got := out.TextContent(); got != "y" {
		t.Fatalf("expected replacement children to be visited, got %q", got)
	}
}

func TestInspectDepth(t *testing.T) {
	depths := map[string]int{}
	Inspect(sampleTree(), func(n *Node, depth int) Action {
		if n.Type == TypeText {
			depths[n.Value] = depth
		}
		return Continue
	})
	if depths["one"] != 2 || depths["two"] != 3 {
		t.Fatalf("unexpected depths %v", depths)
	}
}

func TestCloneCopiesMaps(t *testing.T) {
	n := Element("p", map[string]string{"class": "a"}, Text("x"))
	c := n.Clone()
	c.Properties["class"] = "b"
	c.Children[0] = Text("y")
	if n.Property("class") != "a" || n.Children[0].Value != "x" {
		t.Fatalf("expected clone edits not to leak into the original")
	}
}
