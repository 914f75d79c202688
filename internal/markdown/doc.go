// Package markdown parses post sources into Markdown trees. It reads front
// matter, discovers post files on a filesystem and converts the goldmark AST,
// including `:::name` container directives, into tree nodes.
package markdown
