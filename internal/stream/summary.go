package stream

import (
	"math"
	"strconv"
	"time"

	"hermes/internal/adapters/binance"
)

// recentTradeCount is how many buffer-tail trades the summary carries.
const recentTradeCount = 5

// Summary is the aggregate computed over one collection window. It is
// built once, when the window closes, and never mutated afterwards.
type Summary struct {
	Symbol     string
	Window     time.Duration
	TradeCount int

	// Price/volume statistics; zero-valued when TradeCount is 0.
	VWAP        float64
	MinPrice    float64
	MaxPrice    float64
	TotalVolume float64

	BuyCount     int
	SellCount    int
	BuySellRatio float64

	// RecentTrades holds the last min(5, TradeCount) trades in arrival
	// order, verbatim from the feed.
	RecentTrades []binance.StreamTrade
}

// Reduce collapses a collection buffer into a Summary. An empty buffer
// yields a zero-count summary with no statistics; nothing here divides by
// a quantity that can be zero.
func Reduce(symbol string, window time.Duration, trades []binance.StreamTrade) *Summary {
	s := &Summary{
		Symbol:     symbol,
		Window:     window,
		TradeCount: len(trades),
	}

	if len(trades) == 0 {
		return s
	}

	var notional float64
	for i, t := range trades {
		price := parseFloat(t.Price)
		qty := parseFloat(t.Quantity)

		notional += price * qty
		s.TotalVolume += qty

		if i == 0 {
			s.MinPrice = price
			s.MaxPrice = price
		} else {
			if price < s.MinPrice {
				s.MinPrice = price
			}
			if price > s.MaxPrice {
				s.MaxPrice = price
			}
		}

		// The maker flag marks the resting side: when the buyer was not
		// the maker, the buyer initiated the trade.
		if t.IsBuyerMaker {
			s.SellCount++
		} else {
			s.BuyCount++
		}
	}

	if s.TotalVolume > 0 {
		s.VWAP = notional / s.TotalVolume
	}

	// Guarded denominator: a window with zero sells reports a finite
	// ratio equal to the buy count rather than dividing by zero.
	s.BuySellRatio = float64(s.BuyCount) / float64(max(s.SellCount, 1))

	tail := len(trades) - recentTradeCount
	if tail < 0 {
		tail = 0
	}
	s.RecentTrades = append([]binance.StreamTrade(nil), trades[tail:]...)

	return s
}

// parseFloat mirrors the formatter's degenerate behavior: a non-numeric
// field becomes NaN and flows through the statistics uncorrected.
func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}
