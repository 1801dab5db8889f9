package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/tab1k/PandaShopBot/internal/logger"
)

// Users registers bot users and looks them up by chat id.
type Users struct {
	db *sqlx.DB
}

// NewUsers returns a user registry backed by the given pool.
func NewUsers(db *sqlx.DB) *Users {
	return &Users{db: db}
}

// Register inserts the user unless the chat id is already known.
func (u *Users) Register(ctx context.Context, user User) error {
	const q = `
		INSERT INTO users (chat_id, username, first_name, last_name)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (chat_id) DO NOTHING`
	res, err := u.db.ExecContext(ctx, q, user.ChatID, user.Username, user.FirstName, user.LastName)
	if err != nil {
		return fmt.Errorf("register user: %w", err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		logger.SVCUsers.Info("user registered",
			slog.String("event", "users.register"),
			slog.Int64("chat_id", user.ChatID),
			slog.String("username", logger.SanitizeLimit(user.Username, 64)),
		)
	}
	return nil
}

// IsRegistered reports whether the chat id has been seen before.
func (u *Users) IsRegistered(ctx context.Context, chatID int64) (bool, error) {
	var exists bool
	err := u.db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM users WHERE chat_id = $1)`, chatID)
	if err != nil {
		return false, fmt.Errorf("check user: %w", err)
	}
	return exists, nil
}

// ByChatID fetches the user record for a chat.
func (u *Users) ByChatID(ctx context.Context, chatID int64) (User, error) {
	var user User
	err := u.db.GetContext(ctx, &user, `SELECT * FROM users WHERE chat_id = $1`, chatID)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}
