package toolutil

import (
	"slices"

	"github.com/NeekChaw/mcp-server-okppt/spec"
)

// CloneTool returns a deep copy of t so callers cannot mutate registered
// tool descriptors through shared slices.
func CloneTool(t spec.Tool) spec.Tool {
	out := t
	out.ArgSchema = slices.Clone(t.ArgSchema)
	out.Tags = slices.Clone(t.Tags)
	return out
}
