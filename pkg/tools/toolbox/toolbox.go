package toolbox

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
)

// ToolBox holds a named collection of tools. Frontends that expose the
// calculator to programs (the MCP server, the remote client) register and
// call tools through it.
type ToolBox struct {
	tools map[string]Tool
}

// New creates an empty ToolBox.
func New() *ToolBox {
	return &ToolBox{
		tools: make(map[string]Tool),
	}
}

// Register adds one or more tools to the ToolBox. If a tool with the same name
// already exists, it is replaced.
func (tb *ToolBox) Register(tools ...Tool) {
	for _, t := range tools {
		tb.tools[t.Name] = t
	}
}

// Get returns a tool by name and a boolean indicating whether it was found.
func (tb *ToolBox) Get(name string) (Tool, bool) {
	t, ok := tb.tools[name]
	return t, ok
}

// Merge registers all tools from another ToolBox into this one. Tools with
// the same name are replaced.
func (tb *ToolBox) Merge(other *ToolBox) {
	for _, t := range other.tools {
		tb.tools[t.Name] = t
	}
}

// Tools returns all registered tools sorted by name.
func (tb *ToolBox) Tools() []Tool {
	result := make([]Tool, 0, len(tb.tools))
	for _, t := range tb.tools {
		result = append(result, t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })

	return result
}

// Call runs the named tool with the given JSON arguments. Empty arguments are
// passed to the handler as an empty object.
func (tb *ToolBox) Call(ctx context.Context, name string, args json.RawMessage) (string, error) {
	t, ok := tb.tools[name]
	if !ok {
		return "", fmt.Errorf("toolbox: tool not found: %s", name)
	}

	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	return t.Handler(ctx, args)
}
