package stream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hermes/internal/adapters/binance"
	"hermes/pkg/errors"
)

// feedServer runs a local trade feed; handler drives one accepted
// connection.
func feedServer(t *testing.T, handler func(conn *websocket.Conn)) *httptest.Server {
	t.Helper()

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		handler(conn)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func newTestCollector(feedURL string) *Collector {
	return NewCollector(Config{
		FeedURL:       feedURL,
		DefaultWindow: 5 * time.Second,
		MaxWindow:     30 * time.Second,
	})
}

func sendTrade(t *testing.T, conn *websocket.Conn, trade binance.StreamTrade) {
	t.Helper()
	data, err := json.Marshal(trade)
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, data))
}

// waitForPeerClose parks the handler until the collector tears the
// connection down.
func waitForPeerClose(conn *websocket.Conn) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func TestCollect_BuffersTradesInArrivalOrder(t *testing.T) {
	srv := feedServer(t, func(conn *websocket.Conn) {
		for i, price := range []string{"50000", "50010", "49990"} {
			sendTrade(t, conn, binance.StreamTrade{
				EventType:    "trade",
				Symbol:       "BTCUSDT",
				TradeID:      int64(i + 1),
				Price:        price,
				Quantity:     "0.5",
				TradeTime:    1700000000000 + int64(i),
				IsBuyerMaker: i == 2,
			})
		}
		waitForPeerClose(conn)
	})

	c := newTestCollector(wsURL(srv))
	summary, err := c.Collect(context.Background(), "btcusdt", 500*time.Millisecond)

	require.NoError(t, err)
	assert.Equal(t, 3, summary.TradeCount)
	assert.Equal(t, 2, summary.BuyCount)
	assert.Equal(t, 1, summary.SellCount)
	require.Len(t, summary.RecentTrades, 3)
	assert.Equal(t, "50000", summary.RecentTrades[0].Price)
	assert.Equal(t, "49990", summary.RecentTrades[2].Price)
}

func TestCollect_EmptyWindowIsNotAnError(t *testing.T) {
	srv := feedServer(t, func(conn *websocket.Conn) {
		waitForPeerClose(conn)
	})

	c := newTestCollector(wsURL(srv))
	summary, err := c.Collect(context.Background(), "btcusdt", 200*time.Millisecond)

	require.NoError(t, err)
	assert.Equal(t, 0, summary.TradeCount)
}

func TestCollect_FeedErrorReturnsPartialSummary(t *testing.T) {
	srv := feedServer(t, func(conn *websocket.Conn) {
		sendTrade(t, conn, binance.StreamTrade{
			EventType: "trade",
			Price:     "50000",
			Quantity:  "1",
		})
		// Drop the connection mid-window without a close handshake.
		_ = conn.UnderlyingConn().Close()
	})

	c := newTestCollector(wsURL(srv))
	summary, err := c.Collect(context.Background(), "btcusdt", 5*time.Second)

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrStream))
	require.NotNil(t, summary, "partial summary must accompany the error")
	assert.Equal(t, 1, summary.TradeCount)
}

func TestCollect_ConnectErrorBeforeData(t *testing.T) {
	srv := feedServer(t, func(conn *websocket.Conn) {})
	url := wsURL(srv)
	srv.Close()

	c := newTestCollector(url)
	summary, err := c.Collect(context.Background(), "btcusdt", time.Second)

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrStream))
	require.NotNil(t, summary)
	assert.Equal(t, 0, summary.TradeCount, "buffer is always empty at connect failure")
}

func TestCollect_MalformedMessagesAreSkipped(t *testing.T) {
	srv := feedServer(t, func(conn *websocket.Conn) {
		_ = conn.WriteMessage(websocket.TextMessage, []byte("{not json"))
		sendTrade(t, conn, binance.StreamTrade{EventType: "trade", Price: "50000", Quantity: "1"})
		waitForPeerClose(conn)
	})

	c := newTestCollector(wsURL(srv))
	summary, err := c.Collect(context.Background(), "btcusdt", 300*time.Millisecond)

	require.NoError(t, err)
	assert.Equal(t, 1, summary.TradeCount)
}

func TestCollect_WindowIsBounded(t *testing.T) {
	srv := feedServer(t, func(conn *websocket.Conn) {
		waitForPeerClose(conn)
	})

	c := NewCollector(Config{
		FeedURL:   wsURL(srv),
		MaxWindow: 300 * time.Millisecond,
	})

	start := time.Now()
	summary, err := c.Collect(context.Background(), "btcusdt", 100*time.Second)
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.Equal(t, 300*time.Millisecond, summary.Window, "requested duration must be clamped")
	assert.Less(t, elapsed, 5*time.Second)
}

func TestClampWindow(t *testing.T) {
	c := NewCollector(Config{})

	tests := []struct {
		name string
		in   time.Duration
		want time.Duration
	}{
		{"zero falls back to default", 0, 5 * time.Second},
		{"negative falls back to default", -time.Second, 5 * time.Second},
		{"within bounds untouched", 10 * time.Second, 10 * time.Second},
		{"above max clamped", 100 * time.Second, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.clampWindow(tt.in))
		})
	}
}
