package shared

import (
	"context"
	"time"

	"hermes/internal/adapters/binance"
	"hermes/internal/stream"
	"hermes/pkg/logger"
)

// MarketData is the REST fetcher surface the tools consume.
// Implemented by binance.Client; faked in tests.
type MarketData interface {
	GetTicker24h(ctx context.Context, symbol string) (*binance.Ticker24h, error)
	GetBookTicker(ctx context.Context, symbol string) (*binance.BookTicker, error)
	GetRecentTrades(ctx context.Context, symbol string, limit int) ([]binance.RecentTrade, error)
	GetKlines(ctx context.Context, symbol, interval string, limit int) ([]binance.Kline, error)
}

// TradeCollector is the streaming collection surface.
// Implemented by stream.Collector.
type TradeCollector interface {
	Collect(ctx context.Context, symbol string, window time.Duration) (*stream.Summary, error)
}

// Deps bundles dependencies required by concrete tool implementations
type Deps struct {
	Market    MarketData
	Collector TradeCollector
	Log       *logger.Logger
}

// HasMarketData reports whether the REST fetcher is wired
func (d Deps) HasMarketData() bool {
	return d.Market != nil
}

// HasCollector reports whether the trade collector is wired
func (d Deps) HasCollector() bool {
	return d.Collector != nil
}
