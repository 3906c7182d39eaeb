package service

import (
	"context"

	"github.com/NiteshMarwaha/vibetrader/internal/model"
)

// UserStore is the persistence contract the auth service depends on.
// *repository.UserRepository satisfies it; tests use in-memory fakes.
type UserStore interface {
	CreateWithCredential(ctx context.Context, user *model.User, cred *model.Credential) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetCredential(ctx context.Context, kind, identifier string) (*model.Credential, error)
}

// TradeStore is the persistence contract the trade service depends on.
type TradeStore interface {
	Create(ctx context.Context, trade *model.Trade) error
	ListByUser(ctx context.Context, userID string) ([]model.Trade, error)
}
