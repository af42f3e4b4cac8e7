package market

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"hermes/internal/format"
	"hermes/internal/tools/shared"
)

const (
	defaultInterval     = "1h"
	defaultHistoryLimit = 24
)

// NewPriceHistoryTool returns the get_bitcoin_price_history tool:
// historical candles for one interval, oldest first.
func NewPriceHistoryTool(deps shared.Deps) (mcp.Tool, server.ToolHandlerFunc) {
	t := mcp.NewTool("get_bitcoin_price_history",
		mcp.WithDescription("Get historical OHLCV candles for a Bitcoin trading pair"),
		mcp.WithString("symbol",
			mcp.Description("Trading pair symbol (default BTCUSDT)"),
			mcp.DefaultString(defaultSymbol),
		),
		mcp.WithString("interval",
			mcp.Description("Candle interval, e.g. 1m, 15m, 1h, 1d (default 1h)"),
			mcp.DefaultString(defaultInterval),
		),
		mcp.WithNumber("limit",
			mcp.Description("Number of candles to return (default 24)"),
			mcp.DefaultNumber(defaultHistoryLimit),
		),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		log := shared.InvocationLogger(deps.Log, "get_bitcoin_price_history")
		symbol := req.GetString("symbol", defaultSymbol)
		interval := req.GetString("interval", defaultInterval)
		limit := req.GetInt("limit", defaultHistoryLimit)

		log.Debugw("Fetching klines", "symbol", symbol, "interval", interval, "limit", limit)

		klines, err := deps.Market.GetKlines(ctx, symbol, interval, limit)
		if err != nil {
			log.Errorf("Kline fetch failed for %s %s: %v", symbol, interval, err)
			return shared.ErrorResult("get_bitcoin_price_history", err, nil), nil
		}

		return shared.JSONResult(format.Candles(klines)), nil
	}

	return t, handler
}
