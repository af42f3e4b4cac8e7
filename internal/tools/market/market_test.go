package market

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hermes/internal/adapters/binance"
	"hermes/internal/stream"
	"hermes/internal/tools/shared"
	"hermes/pkg/errors"
	"hermes/pkg/logger"
)

// fakeMarket records the arguments of the last call and replays canned
// responses.
type fakeMarket struct {
	lastSymbol   string
	lastLimit    int
	lastInterval string

	ticker *binance.Ticker24h
	book   *binance.BookTicker
	trades []binance.RecentTrade
	klines []binance.Kline
	err    error
}

func (f *fakeMarket) GetTicker24h(ctx context.Context, symbol string) (*binance.Ticker24h, error) {
	f.lastSymbol = symbol
	return f.ticker, f.err
}

func (f *fakeMarket) GetBookTicker(ctx context.Context, symbol string) (*binance.BookTicker, error) {
	f.lastSymbol = symbol
	return f.book, f.err
}

func (f *fakeMarket) GetRecentTrades(ctx context.Context, symbol string, limit int) ([]binance.RecentTrade, error) {
	f.lastSymbol = symbol
	f.lastLimit = limit
	return f.trades, f.err
}

func (f *fakeMarket) GetKlines(ctx context.Context, symbol, interval string, limit int) ([]binance.Kline, error) {
	f.lastSymbol = symbol
	f.lastInterval = interval
	f.lastLimit = limit
	return f.klines, f.err
}

type fakeCollector struct {
	lastSymbol string
	lastWindow time.Duration

	summary *stream.Summary
	err     error
}

func (f *fakeCollector) Collect(ctx context.Context, symbol string, window time.Duration) (*stream.Summary, error) {
	f.lastSymbol = symbol
	f.lastWindow = window
	return f.summary, f.err
}

func testDeps(m *fakeMarket, c *fakeCollector) shared.Deps {
	return shared.Deps{Market: m, Collector: c, Log: logger.Get()}
}

func callRequest(name string, args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "tool payloads are text")
	return text.Text
}

func resultJSON(t *testing.T, res *mcp.CallToolResult) map[string]interface{} {
	t.Helper()
	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &payload))
	return payload
}

func TestTickerTool_DefaultSymbol(t *testing.T) {
	m := &fakeMarket{ticker: &binance.Ticker24h{
		Symbol:             "BTCUSDT",
		LastPrice:          "50000.00",
		PriceChange:        "1000.00",
		PriceChangePercent: "2.0",
	}}
	_, handler := NewTickerTool(testDeps(m, nil))

	res, err := handler(context.Background(), callRequest("get_bitcoin_ticker", nil))

	require.NoError(t, err)
	assert.Equal(t, "BTCUSDT", m.lastSymbol)

	payload := resultJSON(t, res)
	assert.Equal(t, "$50,000", payload["currentPrice"])
	assert.Equal(t, "$1,000 (2.0%)", payload["priceChange24h"])
}

func TestTickerTool_FetchErrorBecomesPayload(t *testing.T) {
	m := &fakeMarket{err: errors.Wrap(errors.ErrFetch, "binance http 500")}
	_, handler := NewTickerTool(testDeps(m, nil))

	res, err := handler(context.Background(), callRequest("get_bitcoin_ticker", nil))

	// The transport-level call never fails; the payload carries the error.
	require.NoError(t, err)
	payload := resultJSON(t, res)
	assert.Equal(t, "get_bitcoin_ticker", payload["operation"])
	assert.Contains(t, payload["error"], "binance http 500")
}

func TestOrderBookTool(t *testing.T) {
	m := &fakeMarket{book: &binance.BookTicker{
		Symbol:   "BTCUSDT",
		BidPrice: "50000",
		BidQty:   "1",
		AskPrice: "50010",
		AskQty:   "1",
	}}
	_, handler := NewOrderBookTool(testDeps(m, nil))

	res, err := handler(context.Background(), callRequest("get_bitcoin_order_book", map[string]interface{}{
		"symbol": "BTCUSDT",
	}))

	require.NoError(t, err)
	payload := resultJSON(t, res)
	assert.Equal(t, "$10", payload["spread"])
	assert.Equal(t, "0.0200%", payload["spreadPercentage"])
}

func TestRecentTradesTool_LimitArgument(t *testing.T) {
	m := &fakeMarket{trades: []binance.RecentTrade{
		{ID: 1, Price: "50000", Qty: "0.1", Time: 1700000000000},
	}}
	_, handler := NewRecentTradesTool(testDeps(m, nil))

	_, err := handler(context.Background(), callRequest("get_bitcoin_recent_trades", map[string]interface{}{
		"symbol": "ETHUSDT",
		"limit":  25,
	}))

	require.NoError(t, err)
	assert.Equal(t, "ETHUSDT", m.lastSymbol)
	assert.Equal(t, 25, m.lastLimit)
}

func TestPriceHistoryTool_Defaults(t *testing.T) {
	m := &fakeMarket{klines: []binance.Kline{{Open: "49000", Close: "50500"}}}
	_, handler := NewPriceHistoryTool(testDeps(m, nil))

	_, err := handler(context.Background(), callRequest("get_bitcoin_price_history", nil))

	require.NoError(t, err)
	assert.Equal(t, "BTCUSDT", m.lastSymbol)
	assert.Equal(t, "1h", m.lastInterval)
	assert.Equal(t, 24, m.lastLimit)
}

func TestRealtimeTool_Defaults(t *testing.T) {
	c := &fakeCollector{summary: stream.Reduce("btcusdt", 5*time.Second, nil)}
	_, handler := NewRealtimePriceTool(testDeps(nil, c))

	res, err := handler(context.Background(), callRequest("get_realtime_bitcoin_price", nil))

	require.NoError(t, err)
	assert.Equal(t, "btcusdt", c.lastSymbol)
	assert.Equal(t, 5*time.Second, c.lastWindow)

	payload := resultJSON(t, res)
	assert.Equal(t, float64(0), payload["tradeCount"])
	assert.Contains(t, payload["message"], "no trades")
}

func TestRealtimeTool_StreamErrorCarriesPartial(t *testing.T) {
	partial := stream.Reduce("btcusdt", 5*time.Second, []binance.StreamTrade{
		{Price: "50000", Quantity: "1"},
	})
	c := &fakeCollector{
		summary: partial,
		err:     errors.Wrap(errors.ErrStream, "feed closed"),
	}
	_, handler := NewRealtimePriceTool(testDeps(nil, c))

	res, err := handler(context.Background(), callRequest("get_realtime_bitcoin_price", map[string]interface{}{
		"duration": 10,
	}))

	require.NoError(t, err, "streaming tool resolves exactly once, never rejects")
	assert.Equal(t, 10*time.Second, c.lastWindow)

	payload := resultJSON(t, res)
	assert.Contains(t, payload["error"], "feed closed")

	partialView, ok := payload["partial"].(map[string]interface{})
	require.True(t, ok, "partial summary must ride along with the error")
	assert.Equal(t, float64(1), partialView["tradeCount"])
}
