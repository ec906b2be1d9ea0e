package pg

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jinford/shoplist-api/internal/module/account/domain"
)

// DBTX は接続プールとトランザクションの両方が満たすクエリ実行インタフェースです
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// UserRepository はユーザーコレクションの永続化アダプターです
type UserRepository struct {
	db DBTX
}

// NewUserRepository は新しいユーザーリポジトリを作成します
func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

var _ domain.Repository = (*UserRepository)(nil)

const userColumns = `id, username, email, created_at, updated_at`

// Create は新しいユーザーを登録します
func (r *UserRepository) Create(ctx context.Context, username, email string) (*domain.User, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO users (username, email) VALUES ($1, $2) RETURNING `+userColumns,
		username, email,
	)

	user, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// GetByID はIDでユーザーを取得します。見つからなければ (nil, nil)。
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// Exists はユーザーが存在するか確認します
func (r *UserRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return exists, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}
