package tools

import (
	"github.com/mark3labs/mcp-go/server"

	"hermes/internal/tools/market"
	"hermes/internal/tools/shared"
)

// RegisterAll registers every tool on the MCP server. All five operations
// are read-only market data lookups; none holds state across invocations.
func RegisterAll(s *server.MCPServer, deps shared.Deps) {
	log := deps.Log.With("component", "tool_registration")

	s.AddTool(market.NewTickerTool(deps))
	s.AddTool(market.NewOrderBookTool(deps))
	s.AddTool(market.NewRecentTradesTool(deps))
	s.AddTool(market.NewPriceHistoryTool(deps))
	s.AddTool(market.NewRealtimePriceTool(deps))

	log.Debug("Registered market data tools")
}
