// Package catalog provides the immutable tool registry mapping tool names
// to their schema definitions and handler functions.
package catalog

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// HandlerFunc executes one tool call. The result may be a
// *mcp.CallToolResult, content items, a string, or any JSON-marshalable
// value; the dispatcher coerces it into the protocol representation.
type HandlerFunc func(ctx context.Context, args map[string]any) (any, error)

// Entry pairs a tool definition with its handler.
type Entry struct {
	Tool    mcp.Tool
	Handler HandlerFunc
}

// Catalog is the static name -> entry registry. Built once at startup and
// read-only afterwards, so lookups need no synchronization.
type Catalog struct {
	entries map[string]Entry
	order   []string
}

// New builds a catalog from the given entries. A duplicate or empty tool
// name is a construction error rather than last-write-wins.
func New(entries ...Entry) (*Catalog, error) {
	c := &Catalog{
		entries: make(map[string]Entry, len(entries)),
		order:   make([]string, 0, len(entries)),
	}
	for _, e := range entries {
		name := e.Tool.Name
		if name == "" {
			return nil, fmt.Errorf("catalog entry has empty tool name")
		}
		if e.Handler == nil {
			return nil, fmt.Errorf("tool %q has no handler", name)
		}
		if _, exists := c.entries[name]; exists {
			return nil, fmt.Errorf("duplicate tool registration: %q", name)
		}
		c.entries[name] = e
		c.order = append(c.order, name)
	}
	return c, nil
}

// Definitions returns all tool definitions in registration order. Every
// listed name resolves via Resolve and vice versa; both views are built
// from the same map so they cannot diverge.
func (c *Catalog) Definitions() []mcp.Tool {
	tools := make([]mcp.Tool, 0, len(c.order))
	for _, name := range c.order {
		tools = append(tools, c.entries[name].Tool)
	}
	return tools
}

// Resolve returns the handler registered under name.
func (c *Catalog) Resolve(name string) (HandlerFunc, bool) {
	e, ok := c.entries[name]
	if !ok {
		return nil, false
	}
	return e.Handler, true
}

// Names returns all registered tool names in registration order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.order))
	copy(names, c.order)
	return names
}

// Len returns the number of registered tools.
func (c *Catalog) Len() int {
	return len(c.order)
}
