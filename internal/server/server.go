package server

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"hermes/internal/adapters/config"
	"hermes/internal/tools"
	"hermes/internal/tools/shared"
)

const guideURI = "doc://bitcoin-market-data/analysis-guide"

// New builds the MCP server with every tool registered and the analysis
// guide exposed both as server instructions and as a readable resource.
func New(cfg *config.Config, deps shared.Deps) *mcpserver.MCPServer {
	s := mcpserver.NewMCPServer(
		cfg.App.Name,
		cfg.App.Version,
		mcpserver.WithToolCapabilities(false),
		mcpserver.WithResourceCapabilities(false, false),
		mcpserver.WithRecovery(),
		mcpserver.WithInstructions(analysisGuide),
	)

	tools.RegisterAll(s, deps)

	s.AddResource(mcp.NewResource(
		guideURI,
		"Bitcoin market analysis guide",
		mcp.WithResourceDescription("How to read and present the market data these tools return"),
		mcp.WithMIMEType("text/markdown"),
	), readGuide)

	return s
}

// ServeStdio runs the server over stdin/stdout until the host closes the
// channel.
func ServeStdio(s *mcpserver.MCPServer) error {
	return mcpserver.ServeStdio(s)
}

func readGuide(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      guideURI,
			MIMEType: "text/markdown",
			Text:     analysisGuide,
		},
	}, nil
}
