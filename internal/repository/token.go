package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/inkshelf/inkshelf-go/internal/model"
)

var ErrTokenNotFound = errors.New("session token not found")

// TokenRepository persists session tokens, one row per user.
type TokenRepository struct {
	db *sql.DB
}

// NewTokenRepository creates a new TokenRepository.
func NewTokenRepository(db *sql.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

// Save stores the user's session token, replacing any previous one. The
// user_id unique key makes this the insert-or-update point that keeps the
// token one-to-one with its user under concurrent sign-ins.
func (r *TokenRepository) Save(ctx context.Context, userID int64, token string) error {
	query := `INSERT INTO auth_tokens (user_id, token) VALUES (?, ?)
		ON DUPLICATE KEY UPDATE token = VALUES(token)`

	_, err := r.db.ExecContext(ctx, query, userID, token)
	return err
}

// GetByUserID retrieves the stored session token for a user.
func (r *TokenRepository) GetByUserID(ctx context.Context, userID int64) (string, error) {
	var token string
	err := r.db.QueryRowContext(ctx, `SELECT token FROM auth_tokens WHERE user_id = ?`, userID).Scan(&token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrTokenNotFound
		}
		return "", err
	}
	return token, nil
}

// GetUserByToken resolves a presented token to its owning user.
func (r *TokenRepository) GetUserByToken(ctx context.Context, token string) (*model.User, error) {
	query := `SELECT u.id, u.username, u.email, u.password_hash, u.active, u.last_login, u.created_at, u.updated_at
		FROM users u JOIN auth_tokens t ON t.user_id = u.id
		WHERE t.token = ?`

	user := &model.User{}
	err := r.db.QueryRowContext(ctx, query, token).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.Active, &user.LastLogin, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}
	return user, nil
}
