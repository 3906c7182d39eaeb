package model

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices and P&L serialize as bare JSON numbers, matching the wire
	// format the front end consumes. Decimal values round-trip exactly at
	// the precision the input accepted.
	decimal.MarshalJSONWithoutQuotes = true
}

// Trade sources.
const (
	SourceManual = "MANUAL"
	SourceBroker = "BROKER"
)

// Trade represents a single logged buy/sell cycle owned by one user.
type Trade struct {
	ID         string
	UserID     string
	Symbol     string // normalized: trimmed and upper-cased
	EntryPrice decimal.Decimal
	ExitPrice  decimal.Decimal
	Quantity   int64
	PnL        decimal.Decimal
	TradeDate  time.Time
	GoodNotes  *string
	BadNotes   *string
	Source     string
	Broker     *string
	ExternalID *string
	CreatedAt  time.Time
}

// TradeInput is the raw trade-creation payload. Numeric fields are typed
// loosely because clients send them as either JSON numbers or strings.
type TradeInput struct {
	Symbol     string `json:"symbol"`
	EntryPrice any    `json:"entryPrice"`
	ExitPrice  any    `json:"exitPrice"`
	Quantity   any    `json:"quantity"`
	PnL        any    `json:"pnl"`
	TradeDate  string `json:"tradeDate"`
	GoodNotes  string `json:"goodNotes"`
	BadNotes   string `json:"badNotes"`
	Source     string `json:"source"`
	Broker     string `json:"broker"`
	ExternalID string `json:"externalId"`
}

// ParsedTrade is the validated, normalized form of a TradeInput before it is
// bound to an owner and persisted.
type ParsedTrade struct {
	Symbol     string
	EntryPrice decimal.Decimal
	ExitPrice  decimal.Decimal
	Quantity   int64
	PnL        decimal.Decimal
	TradeDate  time.Time
	GoodNotes  *string
	BadNotes   *string
	Source     string
	Broker     *string
	ExternalID *string
}

// TradeResponse represents a trade as the API serializes it.
type TradeResponse struct {
	ID         string          `json:"id"`
	Symbol     string          `json:"symbol"`
	EntryPrice decimal.Decimal `json:"entryPrice"`
	ExitPrice  decimal.Decimal `json:"exitPrice"`
	Quantity   int64           `json:"quantity"`
	PnL        decimal.Decimal `json:"pnl"`
	TradeDate  time.Time       `json:"tradeDate"`
	GoodNotes  *string         `json:"goodNotes"`
	BadNotes   *string         `json:"badNotes"`
	Source     string          `json:"source"`
	Broker     *string         `json:"broker"`
	ExternalID *string         `json:"externalId"`
}

// TradeEnvelope wraps a single created trade.
type TradeEnvelope struct {
	Trade TradeResponse `json:"trade"`
}

// TradeListEnvelope wraps a trade listing.
type TradeListEnvelope struct {
	Trades []TradeResponse `json:"trades"`
}

// PublicTrade returns the API-safe representation of a trade.
func (t *Trade) PublicTrade() TradeResponse {
	return TradeResponse{
		ID:         t.ID,
		Symbol:     t.Symbol,
		EntryPrice: t.EntryPrice,
		ExitPrice:  t.ExitPrice,
		Quantity:   t.Quantity,
		PnL:        t.PnL,
		TradeDate:  t.TradeDate,
		GoodNotes:  t.GoodNotes,
		BadNotes:   t.BadNotes,
		Source:     t.Source,
		Broker:     t.Broker,
		ExternalID: t.ExternalID,
	}
}
