package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/NiteshMarwaha/vibetrader/internal/model"
)

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrCredentialNotFound  = errors.New("credential not found")
	ErrDuplicateCredential = errors.New("credential already exists")
)

// UserRepository handles user and credential persistence.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateWithCredential inserts a user and its linked credential in a single
// transaction: either both rows persist or neither does.
func (r *UserRepository) CreateWithCredential(ctx context.Context, user *model.User, cred *model.Credential) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin signup transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO users (id, email, name) VALUES (?, ?, ?)`,
		user.ID, user.Email, user.Name,
	)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrDuplicateCredential
		}
		return fmt.Errorf("insert user: %w", err)
	}

	result, err := tx.ExecContext(ctx,
		`INSERT INTO credentials (user_id, kind, identifier, password_hash) VALUES (?, ?, ?, ?)`,
		cred.UserID, cred.Kind, cred.Identifier, cred.PasswordHash,
	)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrDuplicateCredential
		}
		return fmt.Errorf("insert credential: %w", err)
	}

	if id, err := result.LastInsertId(); err == nil {
		cred.ID = id
	}

	return tx.Commit()
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT id, email, name, created_at, updated_at FROM users WHERE id = ?`

	user := &model.User{}
	var name sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.Email, &name, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if name.Valid {
		user.Name = &name.String
	}
	return user, nil
}

// GetCredential retrieves a credential by its unique (kind, identifier) pair.
func (r *UserRepository) GetCredential(ctx context.Context, kind, identifier string) (*model.Credential, error) {
	query := `SELECT id, user_id, kind, identifier, password_hash, created_at
		FROM credentials WHERE kind = ? AND identifier = ?`

	cred := &model.Credential{}
	var hash sql.NullString
	err := r.db.QueryRowContext(ctx, query, kind, identifier).Scan(
		&cred.ID, &cred.UserID, &cred.Kind, &cred.Identifier, &hash, &cred.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCredentialNotFound
		}
		return nil, err
	}

	if hash.Valid {
		cred.PasswordHash = &hash.String
	}
	return cred, nil
}

// isDuplicateEntryError checks if a MySQL error is a duplicate entry error (code 1062).
func isDuplicateEntryError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "Duplicate entry")
}
