package pipeline

import "github.com/goliatone/go-blogkit/internal/tree"

// Stage is one rewrite pass of the pipeline. Transform must not mutate its
// input and must be safe for concurrent use.
type Stage interface {
	Name() string
	Transform(root *tree.Node) *tree.Node
}

type stageFunc struct {
	name string
	fn   func(*tree.Node) *tree.Node
}

// NewStage adapts a transform function to a Stage.
func NewStage(name string, fn func(*tree.Node) *tree.Node) Stage {
	return stageFunc{name: name, fn: fn}
}

func (s stageFunc) Name() string { return s.name }

func (s stageFunc) Transform(root *tree.Node) *tree.Node { return s.fn(root) }

func runStages(root *tree.Node, stages []Stage) *tree.Node {
	for _, stage := range stages {
		root = stage.Transform(root)
	}
	return root
}
