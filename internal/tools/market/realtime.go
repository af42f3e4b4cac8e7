package market

import (
	"context"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"hermes/internal/format"
	"hermes/internal/tools/shared"
)

const (
	defaultStreamSymbol  = "btcusdt"
	defaultStreamSeconds = 5
)

// NewRealtimePriceTool returns the get_realtime_bitcoin_price tool: it
// collects live trade prints for a bounded window and reports the
// window's statistics. The requested duration is clamped to 30 seconds.
func NewRealtimePriceTool(deps shared.Deps) (mcp.Tool, server.ToolHandlerFunc) {
	t := mcp.NewTool("get_realtime_bitcoin_price",
		mcp.WithDescription("Collect live Bitcoin trades for a few seconds and summarize them: VWAP, price range, volume, and buy/sell pressure"),
		mcp.WithString("symbol",
			mcp.Description("Trading pair symbol, lowercase (default btcusdt)"),
			mcp.DefaultString(defaultStreamSymbol),
		),
		mcp.WithNumber("duration",
			mcp.Description("Collection window in seconds (default 5, max 30)"),
			mcp.DefaultNumber(defaultStreamSeconds),
		),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		log := shared.InvocationLogger(deps.Log, "get_realtime_bitcoin_price")
		symbol := strings.ToLower(req.GetString("symbol", defaultStreamSymbol))
		seconds := req.GetFloat("duration", defaultStreamSeconds)

		window := time.Duration(seconds * float64(time.Second))
		log.Infow("Starting trade collection", "symbol", symbol, "requested", window.String())

		summary, err := deps.Collector.Collect(ctx, symbol, window)
		view := format.TradeSummary(summary)
		if err != nil {
			// Partial data still goes back to the caller; only the
			// payload signals the failure.
			log.Errorf("Trade collection for %s ended with error: %v", symbol, err)
			return shared.ErrorResult("get_realtime_bitcoin_price", err, view), nil
		}

		return shared.JSONResult(view), nil
	}

	return t, handler
}
