// Package dispatcher routes list/call protocol operations to the tool
// catalog and enforces the error boundary: no handler failure escapes as
// an unhandled fault.
package dispatcher

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hetu-project/openresearch-mcp-server/internal/backend"
	"github.com/hetu-project/openresearch-mcp-server/internal/catalog"
	"github.com/hetu-project/openresearch-mcp-server/internal/common"
)

// Dispatcher owns the catalog and translates external list/call requests
// into handler invocations.
type Dispatcher struct {
	catalog *catalog.Catalog
	logger  *common.Logger
}

// New creates a dispatcher over the given catalog.
func New(cat *catalog.Catalog, logger *common.Logger) *Dispatcher {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Dispatcher{catalog: cat, logger: logger}
}

// List returns all tool definitions for capability discovery.
func (d *Dispatcher) List() []mcp.Tool {
	return d.catalog.Definitions()
}

// Call resolves name in the catalog, invokes the handler with the raw
// argument map, and converts any failure into a structured error result.
// Schema enforcement is the handler's responsibility. The returned result
// is always well-formed; the error return is always nil so the transport
// never sees a protocol-level fault from a tool failure.
func (d *Dispatcher) Call(ctx context.Context, name string, args map[string]any) *mcp.CallToolResult {
	if args == nil {
		args = map[string]any{}
	}

	log := d.logger.WithCorrelationId(uuid.New().String())
	log.Info().Str("tool", name).Int("argument_count", len(args)).Msg("executing tool")

	handler, ok := d.catalog.Resolve(name)
	if !ok {
		err := backend.NewError(backend.KindToolNotFound, name,
			fmt.Sprintf("unknown tool: %s. Available tools: %s", name, strings.Join(d.catalog.Names(), ", ")), nil)
		log.Error().Str("tool", name).Msg("tool not found")
		return errorResult(err)
	}

	result, err := d.invoke(ctx, handler, args)
	if err != nil {
		log.Error().Str("tool", name).Str("kind", string(backend.ErrorKind(err))).Str("error", err.Error()).Msg("tool execution failed")
		return errorResult(err)
	}

	log.Info().Str("tool", name).Msg("tool executed successfully")
	return coerceResult(result)
}

// invoke runs the handler with a panic guard so a defective handler cannot
// take down the process.
func (d *Dispatcher) invoke(ctx context.Context, handler catalog.HandlerFunc, args map[string]any) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = backend.NewError(backend.KindToolExecution, "",
				fmt.Sprintf("tool panicked: %v", r), nil)
		}
	}()
	return handler(ctx, args)
}

// errorResult wraps a failure as an error content item, tagged with its
// kind so callers can distinguish failure classes.
func errorResult(err error) *mcp.CallToolResult {
	kind := backend.ErrorKind(err)
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(fmt.Sprintf("[%s] %s", kind, err.Error())),
		},
		IsError: true,
	}
}

// coerceResult normalizes a handler's return value into the protocol's
// uniform content representation. Non-conforming shapes are converted
// item-by-item rather than rejected.
func coerceResult(result any) *mcp.CallToolResult {
	switch v := result.(type) {
	case *mcp.CallToolResult:
		return v
	case []mcp.Content:
		return &mcp.CallToolResult{Content: v}
	case mcp.Content:
		return &mcp.CallToolResult{Content: []mcp.Content{v}}
	case string:
		return &mcp.CallToolResult{Content: []mcp.Content{mcp.NewTextContent(v)}}
	case []string:
		content := make([]mcp.Content, 0, len(v))
		for _, item := range v {
			content = append(content, mcp.NewTextContent(item))
		}
		return &mcp.CallToolResult{Content: content}
	case []any:
		content := make([]mcp.Content, 0, len(v))
		for _, item := range v {
			if c, ok := item.(mcp.Content); ok {
				content = append(content, c)
				continue
			}
			content = append(content, mcp.NewTextContent(stringify(item)))
		}
		return &mcp.CallToolResult{Content: content}
	case nil:
		return &mcp.CallToolResult{Content: []mcp.Content{}}
	default:
		return &mcp.CallToolResult{Content: []mcp.Content{mcp.NewTextContent(stringify(v))}}
	}
}

// stringify renders an arbitrary value as text, preferring JSON.
func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}
