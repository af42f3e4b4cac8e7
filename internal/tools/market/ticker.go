package market

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"hermes/internal/format"
	"hermes/internal/tools/shared"
)

const defaultSymbol = "BTCUSDT"

// NewTickerTool returns the get_bitcoin_ticker tool: a 24-hour rolling
// snapshot for one trading pair.
func NewTickerTool(deps shared.Deps) (mcp.Tool, server.ToolHandlerFunc) {
	t := mcp.NewTool("get_bitcoin_ticker",
		mcp.WithDescription("Get the current Bitcoin price with 24-hour statistics: last price, change, high/low, and volumes"),
		mcp.WithString("symbol",
			mcp.Description("Trading pair symbol (default BTCUSDT)"),
			mcp.DefaultString(defaultSymbol),
		),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		log := shared.InvocationLogger(deps.Log, "get_bitcoin_ticker")
		symbol := req.GetString("symbol", defaultSymbol)

		log.Debugw("Fetching ticker", "symbol", symbol)

		ticker, err := deps.Market.GetTicker24h(ctx, symbol)
		if err != nil {
			log.Errorf("Ticker fetch failed for %s: %v", symbol, err)
			return shared.ErrorResult("get_bitcoin_ticker", err, nil), nil
		}

		return shared.JSONResult(format.Ticker(ticker)), nil
	}

	return t, handler
}
