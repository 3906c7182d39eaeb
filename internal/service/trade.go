package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/NiteshMarwaha/vibetrader/internal/model"
)

// ValidationError is a field-specific trade payload error. Handlers map it
// to a 400 response carrying the message.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func validationErrorf(msg string) *ValidationError {
	return &ValidationError{msg: msg}
}

// tradeDateLayouts are accepted tradeDate formats, most specific first.
var tradeDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// TradeService validates trade payloads and orchestrates persistence.
type TradeService struct {
	trades TradeStore
}

// NewTradeService creates a new TradeService.
func NewTradeService(trades TradeStore) *TradeService {
	return &TradeService{trades: trades}
}

// ParseTradeInput validates and normalizes a raw trade payload. It is a pure
// function: no store access, no clock reads.
//
// Rules: symbol is trimmed and upper-cased and must be non-empty; numeric
// fields accept JSON numbers or numeric strings; quantity is truncated toward
// zero; notes, broker, and externalId are trimmed with empty stored as
// absent; any source other than BROKER becomes MANUAL.
func ParseTradeInput(in model.TradeInput) (model.ParsedTrade, error) {
	symbol := strings.ToUpper(strings.TrimSpace(in.Symbol))
	if symbol == "" {
		return model.ParsedTrade{}, validationErrorf("symbol is required")
	}

	entryPrice, err := parseDecimalField(in.EntryPrice, "entry price")
	if err != nil {
		return model.ParsedTrade{}, err
	}
	exitPrice, err := parseDecimalField(in.ExitPrice, "exit price")
	if err != nil {
		return model.ParsedTrade{}, err
	}
	quantity, err := parseDecimalField(in.Quantity, "quantity")
	if err != nil {
		return model.ParsedTrade{}, err
	}
	pnl, err := parseDecimalField(in.PnL, "pnl")
	if err != nil {
		return model.ParsedTrade{}, err
	}

	tradeDate, err := parseTradeDate(in.TradeDate)
	if err != nil {
		return model.ParsedTrade{}, err
	}

	source := model.SourceManual
	if in.Source == model.SourceBroker {
		source = model.SourceBroker
	}

	return model.ParsedTrade{
		Symbol:     symbol,
		EntryPrice: entryPrice,
		ExitPrice:  exitPrice,
		Quantity:   quantity.Truncate(0).IntPart(),
		PnL:        pnl,
		TradeDate:  tradeDate,
		GoodNotes:  optionalText(in.GoodNotes),
		BadNotes:   optionalText(in.BadNotes),
		Source:     source,
		Broker:     optionalText(in.Broker),
		ExternalID: optionalText(in.ExternalID),
	}, nil
}

// CreateTrade validates the payload and persists a trade owned by userID.
func (s *TradeService) CreateTrade(ctx context.Context, userID string, in model.TradeInput) (model.TradeResponse, error) {
	parsed, err := ParseTradeInput(in)
	if err != nil {
		return model.TradeResponse{}, err
	}

	trade := &model.Trade{
		ID:         uuid.NewString(),
		UserID:     userID,
		Symbol:     parsed.Symbol,
		EntryPrice: parsed.EntryPrice,
		ExitPrice:  parsed.ExitPrice,
		Quantity:   parsed.Quantity,
		PnL:        parsed.PnL,
		TradeDate:  parsed.TradeDate,
		GoodNotes:  parsed.GoodNotes,
		BadNotes:   parsed.BadNotes,
		Source:     parsed.Source,
		Broker:     parsed.Broker,
		ExternalID: parsed.ExternalID,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.trades.Create(ctx, trade); err != nil {
		return model.TradeResponse{}, err
	}

	return trade.PublicTrade(), nil
}

// ListTrades returns all trades owned by userID, newest trade date first.
func (s *TradeService) ListTrades(ctx context.Context, userID string) ([]model.TradeResponse, error) {
	trades, err := s.trades.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]model.TradeResponse, len(trades))
	for i := range trades {
		result[i] = trades[i].PublicTrade()
	}
	return result, nil
}

// parseDecimalField coerces a JSON number or numeric string to a decimal.
func parseDecimalField(v any, field string) (decimal.Decimal, error) {
	switch n := v.(type) {
	case float64:
		// encoding/json only produces finite float64 values.
		return decimal.NewFromFloat(n), nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(n))
		if err != nil {
			return decimal.Decimal{}, validationErrorf(field + " must be a valid number")
		}
		return d, nil
	default:
		return decimal.Decimal{}, validationErrorf(field + " must be a valid number")
	}
}

func parseTradeDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range tradeDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, validationErrorf("trade date is invalid")
}

func optionalText(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
