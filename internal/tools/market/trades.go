package market

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"hermes/internal/format"
	"hermes/internal/tools/shared"
)

const defaultTradeLimit = 10

// NewRecentTradesTool returns the get_bitcoin_recent_trades tool.
func NewRecentTradesTool(deps shared.Deps) (mcp.Tool, server.ToolHandlerFunc) {
	t := mcp.NewTool("get_bitcoin_recent_trades",
		mcp.WithDescription("Get the most recent executed trades for a Bitcoin trading pair"),
		mcp.WithString("symbol",
			mcp.Description("Trading pair symbol (default BTCUSDT)"),
			mcp.DefaultString(defaultSymbol),
		),
		mcp.WithNumber("limit",
			mcp.Description("Number of trades to return (default 10)"),
			mcp.DefaultNumber(defaultTradeLimit),
		),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		log := shared.InvocationLogger(deps.Log, "get_bitcoin_recent_trades")
		symbol := req.GetString("symbol", defaultSymbol)
		limit := req.GetInt("limit", defaultTradeLimit)

		log.Debugw("Fetching recent trades", "symbol", symbol, "limit", limit)

		trades, err := deps.Market.GetRecentTrades(ctx, symbol, limit)
		if err != nil {
			log.Errorf("Recent trades fetch failed for %s: %v", symbol, err)
			return shared.ErrorResult("get_bitcoin_recent_trades", err, nil), nil
		}

		return shared.JSONResult(format.Trades(symbol, trades)), nil
	}

	return t, handler
}
