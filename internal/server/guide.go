package server

// analysisGuide is a static document shipped with the tool registration.
// It shapes how the calling model presents the data; it carries no
// executable semantics.
const analysisGuide = `# Bitcoin Market Analysis Guide

These tools return read-only snapshots of Binance spot market data as
pretty-printed JSON. Every call is independent; nothing is cached between
invocations.

## Reading the data

- **Ticker**: currentPrice is the last traded price. priceChange24h shows
  the absolute move and the percentage over the trailing 24 hours. Compare
  volume24h against typical daily volume before calling a move significant.
- **Order book top**: the spread between best bid and best ask is a rough
  liquidity gauge. A spreadPercentage above a few hundredths of a percent
  on BTCUSDT is unusual and worth mentioning.
- **Recent trades**: side "buy" means the taker bought (aggressive buying);
  side "sell" means the taker sold. A run of same-side trades suggests
  short-term pressure, not a trend.
- **Price history**: candles arrive oldest first. Summarize the range and
  direction before citing individual candles.
- **Real-time summary**: averagePrice is volume-weighted over the window.
  buySellRatio above 1 means more taker buys than sells; the window is a
  few seconds, so treat it as a pulse check, not a signal.

## Presenting results

- Quote prices as returned (already dollar-formatted).
- State the timestamp or window of each figure; market data ages fast.
- If a payload contains an "error" field, report that the lookup failed
  and say why - do not improvise numbers. A "partial" field holds
  whatever data was collected before the failure.
- Never present any of this as trading advice.
`
