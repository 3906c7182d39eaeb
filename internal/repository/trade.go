package repository

import (
	"context"
	"database/sql"

	"github.com/NiteshMarwaha/vibetrader/internal/model"
)

// TradeRepository handles trade persistence.
type TradeRepository struct {
	db *sql.DB
}

// NewTradeRepository creates a new TradeRepository.
func NewTradeRepository(db *sql.DB) *TradeRepository {
	return &TradeRepository{db: db}
}

// Create inserts a new trade row.
func (r *TradeRepository) Create(ctx context.Context, trade *model.Trade) error {
	query := `INSERT INTO trades
		(id, user_id, symbol, entry_price, exit_price, quantity, pnl, trade_date,
		 good_notes, bad_notes, source, broker, external_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		trade.ID,
		trade.UserID,
		trade.Symbol,
		trade.EntryPrice,
		trade.ExitPrice,
		trade.Quantity,
		trade.PnL,
		trade.TradeDate,
		trade.GoodNotes,
		trade.BadNotes,
		trade.Source,
		trade.Broker,
		trade.ExternalID,
		trade.CreatedAt,
	)
	return err
}

// ListByUser retrieves all trades owned by a user, most recent trade date
// first. Ties fall back to insertion order, then ID, so listings are stable.
func (r *TradeRepository) ListByUser(ctx context.Context, userID string) ([]model.Trade, error) {
	query := `SELECT id, user_id, symbol, entry_price, exit_price, quantity, pnl, trade_date,
		good_notes, bad_notes, source, broker, external_id, created_at
		FROM trades WHERE user_id = ?
		ORDER BY trade_date DESC, created_at DESC, id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trades []model.Trade
	for rows.Next() {
		var t model.Trade
		var goodNotes, badNotes, broker, externalID sql.NullString
		if err := rows.Scan(
			&t.ID, &t.UserID, &t.Symbol, &t.EntryPrice, &t.ExitPrice, &t.Quantity,
			&t.PnL, &t.TradeDate, &goodNotes, &badNotes, &t.Source, &broker,
			&externalID, &t.CreatedAt,
		); err != nil {
			return nil, err
		}

		if goodNotes.Valid {
			t.GoodNotes = &goodNotes.String
		}
		if badNotes.Valid {
			t.BadNotes = &badNotes.String
		}
		if broker.Valid {
			t.Broker = &broker.String
		}
		if externalID.Valid {
			t.ExternalID = &externalID.String
		}

		trades = append(trades, t)
	}

	return trades, rows.Err()
}
