// Command openresearch-mcp runs the OpenResearch MCP server: it exposes
// academic research tools over the Model Context Protocol and forwards
// each call to the research data backend over HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/hetu-project/openresearch-mcp-server/internal/backend"
	"github.com/hetu-project/openresearch-mcp-server/internal/common"
	"github.com/hetu-project/openresearch-mcp-server/internal/config"
	"github.com/hetu-project/openresearch-mcp-server/internal/dispatcher"
	"github.com/hetu-project/openresearch-mcp-server/internal/tools"
)

// startupTimeout bounds the initial backend connect and health probe.
const startupTimeout = 10 * time.Second

func main() {
	stdio := flag.Bool("stdio", false, "Use stdio transport (for Claude Desktop)")
	configFile := flag.String("config", "openresearch-mcp.toml", "Path to config file")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger := common.NewLoggerFromConfig(cfg.Logging)

	// The session manager and client are built here and passed down; there
	// is no package-level default instance.
	sessions := backend.NewSessionManager(cfg.Backend.URL, cfg.Backend.GetTimeout(), cfg.UserAgent(), logger)
	client := backend.NewClient(sessions, logger)

	// Startup connect: a construction failure here is fatal to process
	// initialization, unlike failures inside dispatched tool calls.
	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	if err := client.Connect(ctx); err != nil {
		cancel()
		logger.Error().Str("backend_url", cfg.Backend.URL).Str("error", err.Error()).Msg("failed to connect to backend")
		fmt.Fprintf(os.Stderr, "failed to connect to backend: %v\n", err)
		os.Exit(1)
	}
	if err := client.HealthCheck(ctx); err != nil {
		// Backend reachable but unhealthy is logged, not fatal: the backend
		// may come up after the server does.
		logger.Warn().Str("backend_url", cfg.Backend.URL).Str("error", err.Error()).Msg("backend health check failed at startup")
	}
	cancel()

	cat, err := tools.NewCatalog(client, sessions)
	if err != nil {
		logger.Error().Str("error", err.Error()).Msg("failed to build tool catalog")
		fmt.Fprintf(os.Stderr, "failed to build tool catalog: %v\n", err)
		os.Exit(1)
	}

	disp := dispatcher.New(cat, logger)

	mcpServer := server.NewMCPServer(
		cfg.Server.Name,
		config.GetVersion(),
		server.WithToolCapabilities(true),
	)
	registered := registerTools(mcpServer, disp)

	logger.Info().
		Int("tools", registered).
		Str("backend_url", cfg.Backend.URL).
		Msg("OpenResearch MCP server initialized")

	// Best-effort session close on shutdown; steady-state correctness does
	// not depend on it.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info().Msg("shutting down")
		client.Disconnect()
		os.Exit(0)
	}()
	defer client.Disconnect()

	if *stdio {
		// Stdio transport, reads stdin and writes stdout.
		if err := server.ServeStdio(mcpServer); err != nil {
			fmt.Fprintf(os.Stderr, "stdio server error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	httpServer := server.NewStreamableHTTPServer(mcpServer,
		server.WithStateLess(true),
	)

	fmt.Fprintf(os.Stderr, "Starting MCP Streamable HTTP on :%s\n", cfg.Server.Port)
	if err := httpServer.Start(":" + cfg.Server.Port); err != nil {
		fmt.Fprintf(os.Stderr, "http server error: %v\n", err)
		os.Exit(1)
	}
}

// registerTools registers every catalog tool on the MCP server, routing
// each call through the dispatcher so its error boundary owns every
// invocation.
func registerTools(s *server.MCPServer, disp *dispatcher.Dispatcher) int {
	defs := disp.List()
	for _, def := range defs {
		name := def.Name
		s.AddTool(def, func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return disp.Call(ctx, name, r.GetArguments()), nil
		})
	}
	return len(defs)
}
