package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// User はアプリケーションの利用者です。
// パスワードやWebAuthn資格情報の管理は認証基盤側の責務で、
// このモジュールはカタログ操作が参照する最小限の属性だけを持ちます。
type User struct {
	ID       uuid.UUID
	Username string
	Email    string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Repository はユーザーコレクションへの永続化操作です
type Repository interface {
	Create(ctx context.Context, username, email string) (*User, error)

	// GetByID はIDでユーザーを取得します。見つからなければ (nil, nil)。
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)

	// Exists はユーザーが存在するか確認します
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}
