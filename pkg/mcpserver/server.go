package mcpserver

import (
	"context"
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/OpenModelica/modelica-language-server/pkg/project"
	"github.com/OpenModelica/modelica-language-server/pkg/resolver"
)

const serverVersion = "0.1.0-dev"

// Server exposes findDeclaration and getDeclarationsForUri as MCP
// tools over one project and its resolver.
type Server struct {
	mcpServer *server.MCPServer
	project   *project.Project
	resolver  *resolver.Resolver
	logger    *slog.Logger
	callLog   *callLogger // may be nil if call logging is disabled
}

// NewServer constructs a Server bound to proj and its resolver. If
// callLogPath is empty, tool calls are not logged to disk.
func NewServer(proj *project.Project, res *resolver.Resolver, logger *slog.Logger, callLogPath string) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}
	cl, err := newCallLogger(callLogPath)
	if err != nil {
		return nil, err
	}

	s := &Server{project: proj, resolver: res, logger: logger, callLog: cl}

	opts := []server.ServerOption{
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	}
	if cl != nil {
		opts = append(opts, server.WithToolHandlerMiddleware(s.loggingMiddleware()))
	}

	s.mcpServer = server.NewMCPServer("modelica-language-server", serverVersion, opts...)
	s.mcpServer.AddTools(
		server.ServerTool{Tool: findDeclarationTool(), Handler: s.handleFindDeclaration},
		server.ServerTool{Tool: getDeclarationsForURITool(), Handler: s.handleGetDeclarationsForURI},
	)

	return s, nil
}

// ServeStdio starts the MCP server on stdin/stdout, blocking until the
// client disconnects or an error occurs.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// Close shuts down the call logger, if one is active. Should be
// deferred after NewServer.
func (s *Server) Close() error {
	return s.callLog.close()
}

func (s *Server) loggingMiddleware() server.ToolHandlerMiddleware {
	return func(next server.ToolHandlerFunc) server.ToolHandlerFunc {
		return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			start := time.Now()
			result, err := next(ctx, req)
			elapsed := time.Since(start).Milliseconds()

			var errStr *string
			if err != nil {
				msg := err.Error()
				errStr = &msg
			}

			resolvedKind, declCount := resultSummary(req.Params.Name, result)

			s.callLog.write(callLogEntry{
				Ts:               start.UTC().Format(time.RFC3339),
				Tool:             req.Params.Name,
				Params:           sanitizeParams(req.GetArguments()),
				DurationMs:       elapsed,
				ResponseBytes:    responseBytes(result),
				Error:            errStr,
				ResolvedKind:     resolvedKind,
				DeclarationCount: declCount,
			})

			return result, err
		}
	}
}
