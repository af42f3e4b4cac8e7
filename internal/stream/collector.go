package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"hermes/internal/adapters/binance"
	"hermes/pkg/errors"
	"hermes/pkg/logger"
)

const (
	defaultWindow    = 5 * time.Second
	maxWindow        = 30 * time.Second
	handshakeTimeout = 10 * time.Second
	closeGracePeriod = 1 * time.Second
)

// phase is the collector's position in its lifecycle. Transitions only
// move forward: connecting -> collecting -> closing -> done.
type phase int

const (
	phaseConnecting phase = iota
	phaseCollecting
	phaseClosing
	phaseDone
)

// Config configures the trade collector.
type Config struct {
	// FeedURL is the WebSocket base, e.g. wss://stream.binance.com:9443/ws.
	FeedURL string

	// DefaultWindow applies when the caller requests no duration.
	DefaultWindow time.Duration

	// MaxWindow caps the collection window regardless of the request.
	MaxWindow time.Duration

	HandshakeTimeout time.Duration
}

// Collector gathers trade prints from the push feed for one bounded
// wall-clock window per call. Calls are independent; the collector holds
// no state between them.
type Collector struct {
	cfg    Config
	dialer *websocket.Dialer
	log    *logger.Logger
}

// NewCollector creates a trade collector for the configured feed.
func NewCollector(cfg Config) *Collector {
	if cfg.DefaultWindow <= 0 {
		cfg.DefaultWindow = defaultWindow
	}
	if cfg.MaxWindow <= 0 {
		cfg.MaxWindow = maxWindow
	}
	if cfg.HandshakeTimeout <= 0 {
		cfg.HandshakeTimeout = handshakeTimeout
	}

	return &Collector{
		cfg: cfg,
		dialer: &websocket.Dialer{
			HandshakeTimeout: cfg.HandshakeTimeout,
		},
		log: logger.Get().With("component", "trade_collector"),
	}
}

// Collect subscribes to the symbol's trade channel, buffers every print
// that arrives within the clamped window, then reduces the buffer to a
// Summary. Exactly one summary is returned on every path; when the feed
// fails mid-window the partial summary is returned alongside the error.
func (c *Collector) Collect(ctx context.Context, symbol string, window time.Duration) (*Summary, error) {
	window = c.clampWindow(window)
	symbol = strings.ToLower(symbol)

	streamURL := fmt.Sprintf("%s/%s@trade", strings.TrimRight(c.cfg.FeedURL, "/"), symbol)
	log := c.log.With("symbol", symbol, "window", window.String())

	// Connecting.
	log.Debugf("Dialing trade feed: %s", streamURL)
	conn, _, err := c.dialer.DialContext(ctx, streamURL, nil)
	if err != nil {
		return Reduce(symbol, window, nil), errors.Wrapf(errors.ErrStream, "dial %s: %v", streamURL, err)
	}
	// Release the connection on every exit path; Close is idempotent so
	// the explicit close in the closing phase is safe.
	defer conn.Close()

	// Collecting. The reader goroutine feeds two channels; done tears it
	// down if it is mid-send when the window closes.
	trades := make(chan binance.StreamTrade, 64)
	readErrs := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)

	go c.readLoop(conn, trades, readErrs, done)

	timer := time.NewTimer(window)
	defer timer.Stop()

	var (
		buffer    []binance.StreamTrade
		streamErr error
	)

	for state := phaseCollecting; state == phaseCollecting; {
		select {
		case t := <-trades:
			buffer = append(buffer, t)
		case err := <-readErrs:
			streamErr = errors.Wrapf(errors.ErrStream, "feed closed after %d trades: %v", len(buffer), err)
			state = phaseClosing
		case <-timer.C:
			state = phaseClosing
		}
	}

	// Closing: send a close frame but do not wait for the peer's ack.
	_ = conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(closeGracePeriod),
	)
	_ = conn.Close()

	// Done: the single return below is what enforces the one-result
	// contract; there is no other way out of this function past dialing.
	summary := Reduce(symbol, window, buffer)
	log.Infof("Collection window closed: %d trades buffered", summary.TradeCount)
	return summary, streamErr
}

// readLoop parses inbound feed messages and hands them to the control
// loop. A malformed message is dropped with a warning; only transport
// errors end the loop.
func (c *Collector) readLoop(conn *websocket.Conn, trades chan<- binance.StreamTrade, readErrs chan<- error, done <-chan struct{}) {
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			select {
			case readErrs <- err:
			case <-done:
			}
			return
		}

		var t binance.StreamTrade
		if err := json.Unmarshal(raw, &t); err != nil {
			c.log.Warnf("Dropping feed message: %v", errors.Wrapf(errors.ErrParse, "%v", err))
			continue
		}

		select {
		case trades <- t:
		case <-done:
			return
		}
	}
}

// clampWindow bounds the requested duration to (0, MaxWindow].
func (c *Collector) clampWindow(window time.Duration) time.Duration {
	if window <= 0 {
		window = c.cfg.DefaultWindow
	}
	if window > c.cfg.MaxWindow {
		window = c.cfg.MaxWindow
	}
	return window
}
