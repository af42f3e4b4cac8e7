package format

import (
	"fmt"

	"hermes/internal/adapters/binance"
	"hermes/internal/stream"
)

// Display-ready shapes for each operation. Every numeric field arrives as
// a decimal string, is parsed to float64, and is rendered back to a
// human-readable string here; no view is reused across operations.

// TickerView is the formatted 24-hour snapshot.
type TickerView struct {
	Symbol         string `json:"symbol"`
	CurrentPrice   string `json:"currentPrice"`
	PriceChange24h string `json:"priceChange24h"`
	High24h        string `json:"high24h"`
	Low24h         string `json:"low24h"`
	Volume24h      string `json:"volume24h"`
	QuoteVolume24h string `json:"quoteVolume24h"`
	OpenPrice      string `json:"openPrice"`
	CloseTime      string `json:"closeTime"`
}

// Ticker formats a raw 24-hour ticker record.
func Ticker(t *binance.Ticker24h) TickerView {
	return TickerView{
		Symbol:         t.Symbol,
		CurrentPrice:   Price(Float(t.LastPrice)),
		PriceChange24h: Price(Float(t.PriceChange)) + " (" + RawPercent(t.PriceChangePercent) + ")",
		High24h:        Price(Float(t.HighPrice)),
		Low24h:         Price(Float(t.LowPrice)),
		Volume24h:      Volume(Float(t.Volume)),
		QuoteVolume24h: Price(Float(t.QuoteVolume)),
		OpenPrice:      Price(Float(t.OpenPrice)),
		CloseTime:      Millis(t.CloseTime),
	}
}

// PriceLevelView is one side of the book top.
type PriceLevelView struct {
	Price    string `json:"price"`
	Quantity string `json:"quantity"`
}

// BookView is the formatted order book top with derived spread fields.
type BookView struct {
	Symbol           string         `json:"symbol"`
	BestBid          PriceLevelView `json:"bestBid"`
	BestAsk          PriceLevelView `json:"bestAsk"`
	Spread           string         `json:"spread"`
	SpreadPercentage string         `json:"spreadPercentage"`
}

// OrderBook formats a raw book ticker. Spread and spread percentage are
// computed in double precision from the parsed bid and ask.
func OrderBook(b *binance.BookTicker) BookView {
	bid := Float(b.BidPrice)
	ask := Float(b.AskPrice)
	spread := ask - bid

	return BookView{
		Symbol:           b.Symbol,
		BestBid:          PriceLevelView{Price: Price(bid), Quantity: Volume(Float(b.BidQty))},
		BestAsk:          PriceLevelView{Price: Price(ask), Quantity: Volume(Float(b.AskQty))},
		Spread:           Price(spread),
		SpreadPercentage: Percent(spread / bid * 100),
	}
}

// TradeView is one formatted historical trade.
type TradeView struct {
	ID       int64  `json:"id"`
	Price    string `json:"price"`
	Quantity string `json:"quantity"`
	Time     string `json:"time"`
	Side     string `json:"side"`
}

// Trades formats a recent-trades list, preserving upstream order.
func Trades(symbol string, trades []binance.RecentTrade) []TradeView {
	views := make([]TradeView, 0, len(trades))
	for _, t := range trades {
		side := "buy"
		if t.IsBuyerMaker {
			side = "sell"
		}
		views = append(views, TradeView{
			ID:       t.ID,
			Price:    Price(Float(t.Price)),
			Quantity: Volume(Float(t.Qty)),
			Time:     Millis(t.Time),
			Side:     side,
		})
	}
	return views
}

// CandleView is one formatted interval bucket.
type CandleView struct {
	OpenTime   string `json:"openTime"`
	Open       string `json:"open"`
	High       string `json:"high"`
	Low        string `json:"low"`
	Close      string `json:"close"`
	Volume     string `json:"volume"`
	CloseTime  string `json:"closeTime"`
	TradeCount int64  `json:"tradeCount"`
}

// Candles formats a kline series, oldest first.
func Candles(klines []binance.Kline) []CandleView {
	views := make([]CandleView, 0, len(klines))
	for _, k := range klines {
		views = append(views, CandleView{
			OpenTime:   Millis(k.OpenTime),
			Open:       Price(Float(k.Open)),
			High:       Price(Float(k.High)),
			Low:        Price(Float(k.Low)),
			Close:      Price(Float(k.Close)),
			Volume:     Volume(Float(k.Volume)),
			CloseTime:  Millis(k.CloseTime),
			TradeCount: k.TradeCount,
		})
	}
	return views
}

// StreamTradeView is one of the most recent live trades in a summary.
type StreamTradeView struct {
	Price    string `json:"price"`
	Quantity string `json:"quantity"`
	Time     string `json:"time"`
	Side     string `json:"side"`
}

// SummaryView is the formatted trade-window aggregate.
type SummaryView struct {
	Symbol          string            `json:"symbol"`
	DurationSeconds float64           `json:"durationSeconds"`
	TradeCount      int               `json:"tradeCount"`
	AveragePrice    string            `json:"averagePrice"`
	MinPrice        string            `json:"minPrice"`
	MaxPrice        string            `json:"maxPrice"`
	TotalVolume     string            `json:"totalVolume"`
	BuyCount        int               `json:"buyCount"`
	SellCount       int               `json:"sellCount"`
	BuySellRatio    string            `json:"buySellRatio"`
	RecentTrades    []StreamTradeView `json:"recentTrades"`
}

// NoTradesView is the placeholder returned when the window saw nothing.
type NoTradesView struct {
	Symbol          string  `json:"symbol"`
	DurationSeconds float64 `json:"durationSeconds"`
	TradeCount      int     `json:"tradeCount"`
	Message         string  `json:"message"`
}

// TradeSummary formats a collection summary. An empty window produces the
// no-trades placeholder instead of zeroed statistics.
func TradeSummary(s *stream.Summary) interface{} {
	if s == nil {
		s = &stream.Summary{}
	}
	if s.TradeCount == 0 {
		return NoTradesView{
			Symbol:          s.Symbol,
			DurationSeconds: s.Window.Seconds(),
			TradeCount:      0,
			Message:         "no trades observed during collection window",
		}
	}

	recent := make([]StreamTradeView, 0, len(s.RecentTrades))
	for _, t := range s.RecentTrades {
		side := "buy"
		if t.IsBuyerMaker {
			side = "sell"
		}
		recent = append(recent, StreamTradeView{
			Price:    Price(Float(t.Price)),
			Quantity: Volume(Float(t.Quantity)),
			Time:     Millis(t.TradeTime),
			Side:     side,
		})
	}

	return SummaryView{
		Symbol:          s.Symbol,
		DurationSeconds: s.Window.Seconds(),
		TradeCount:      s.TradeCount,
		AveragePrice:    Price(s.VWAP),
		MinPrice:        Price(s.MinPrice),
		MaxPrice:        Price(s.MaxPrice),
		TotalVolume:     Volume(s.TotalVolume),
		BuyCount:        s.BuyCount,
		SellCount:       s.SellCount,
		BuySellRatio:    fmt.Sprintf("%.2f", s.BuySellRatio),
		RecentTrades:    recent,
	}
}
