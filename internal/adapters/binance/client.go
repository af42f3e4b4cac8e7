package binance

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"hermes/pkg/errors"
)

const (
	defaultBaseURL     = "https://api.binance.com/api/v3"
	defaultUserAgent   = "bitcoin-market-data-server/1.0"
	defaultHTTPTimeout = 10 * time.Second
)

// Config configures the Binance REST client.
type Config struct {
	BaseURL   string
	UserAgent string

	HTTPClient *http.Client
}

// Client fetches market data from the Binance public REST API. One request
// per call, no retries, no caching; any failure wraps errors.ErrFetch.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient creates a new Binance market-data client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}

	return &Client{
		cfg:        cfg,
		httpClient: httpClient,
	}
}

// GetTicker24h fetches the 24-hour rolling ticker for one symbol.
func (c *Client) GetTicker24h(ctx context.Context, symbol string) (*Ticker24h, error) {
	params := url.Values{"symbol": []string{normalizeSymbol(symbol)}}

	data, err := c.get(ctx, "/ticker/24hr", params)
	if err != nil {
		return nil, err
	}

	var res Ticker24h
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, errors.Wrapf(errors.ErrFetch, "decode ticker response: %v", err)
	}

	return &res, nil
}

// GetBookTicker fetches the current best bid and ask for one symbol.
func (c *Client) GetBookTicker(ctx context.Context, symbol string) (*BookTicker, error) {
	params := url.Values{"symbol": []string{normalizeSymbol(symbol)}}

	data, err := c.get(ctx, "/ticker/bookTicker", params)
	if err != nil {
		return nil, err
	}

	var res BookTicker
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, errors.Wrapf(errors.ErrFetch, "decode book ticker response: %v", err)
	}

	return &res, nil
}

// GetRecentTrades fetches the most recent trades for one symbol.
func (c *Client) GetRecentTrades(ctx context.Context, symbol string, limit int) ([]RecentTrade, error) {
	if limit <= 0 {
		limit = 10
	}

	params := url.Values{
		"symbol": []string{normalizeSymbol(symbol)},
		"limit":  []string{strconv.Itoa(limit)},
	}

	data, err := c.get(ctx, "/trades", params)
	if err != nil {
		return nil, err
	}

	var res []RecentTrade
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, errors.Wrapf(errors.ErrFetch, "decode trades response: %v", err)
	}

	return res, nil
}

// GetKlines fetches historical candles, oldest first.
func (c *Client) GetKlines(ctx context.Context, symbol, interval string, limit int) ([]Kline, error) {
	if interval == "" {
		interval = "1h"
	}
	if limit <= 0 {
		limit = 24
	}

	params := url.Values{
		"symbol":   []string{normalizeSymbol(symbol)},
		"interval": []string{interval},
		"limit":    []string{strconv.Itoa(limit)},
	}

	data, err := c.get(ctx, "/klines", params)
	if err != nil {
		return nil, err
	}

	var raw [][]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrapf(errors.ErrFetch, "decode klines response: %v", err)
	}

	candles := make([]Kline, 0, len(raw))
	for _, row := range raw {
		if len(row) < 9 {
			continue
		}
		candles = append(candles, Kline{
			OpenTime:    toInt64(row[0]),
			Open:        fmt.Sprint(row[1]),
			High:        fmt.Sprint(row[2]),
			Low:         fmt.Sprint(row[3]),
			Close:       fmt.Sprint(row[4]),
			Volume:      fmt.Sprint(row[5]),
			CloseTime:   toInt64(row[6]),
			QuoteVolume: fmt.Sprint(row[7]),
			TradeCount:  toInt64(row[8]),
		})
	}

	return candles, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	reqURL := c.cfg.BaseURL + path
	if query := params.Encode(); query != "" {
		reqURL = reqURL + "?" + query
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrFetch, "build request: %v", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrFetch, "GET %s: %v", path, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrFetch, "read response body: %v", err)
	}

	if resp.StatusCode >= 400 {
		return nil, parseAPIError(resp.StatusCode, payload)
	}

	return payload, nil
}

func parseAPIError(status int, payload []byte) error {
	var apiErr struct {
		Code int    `json:"code"`
		Msg  string `json:"msg"`
	}
	if err := json.Unmarshal(payload, &apiErr); err == nil && apiErr.Code != 0 {
		return errors.Wrapf(errors.ErrFetch, "binance error %d: %s", apiErr.Code, apiErr.Msg)
	}
	return errors.Wrapf(errors.ErrFetch, "binance http %d: %s", status, string(payload))
}

func toInt64(v interface{}) int64 {
	switch val := v.(type) {
	case float64:
		return int64(val)
	case int64:
		return val
	case json.Number:
		n, _ := val.Int64()
		return n
	case string:
		n, _ := strconv.ParseInt(val, 10, 64)
		return n
	default:
		return 0
	}
}

func normalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.ReplaceAll(symbol, "/", ""))
}
