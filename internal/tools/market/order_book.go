package market

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"hermes/internal/format"
	"hermes/internal/tools/shared"
)

// NewOrderBookTool returns the get_bitcoin_order_book tool: the best
// resting bid and ask with derived spread.
func NewOrderBookTool(deps shared.Deps) (mcp.Tool, server.ToolHandlerFunc) {
	t := mcp.NewTool("get_bitcoin_order_book",
		mcp.WithDescription("Get the order book top for a Bitcoin trading pair: best bid, best ask, and the spread between them"),
		mcp.WithString("symbol",
			mcp.Description("Trading pair symbol (default BTCUSDT)"),
			mcp.DefaultString(defaultSymbol),
		),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		log := shared.InvocationLogger(deps.Log, "get_bitcoin_order_book")
		symbol := req.GetString("symbol", defaultSymbol)

		log.Debugw("Fetching book ticker", "symbol", symbol)

		book, err := deps.Market.GetBookTicker(ctx, symbol)
		if err != nil {
			log.Errorf("Book ticker fetch failed for %s: %v", symbol, err)
			return shared.ErrorResult("get_bitcoin_order_book", err, nil), nil
		}

		return shared.JSONResult(format.OrderBook(book)), nil
	}

	return t, handler
}
