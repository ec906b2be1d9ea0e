package application

import (
	"context"

	"github.com/google/uuid"

	"github.com/jinford/shoplist-api/internal/module/account/domain"
	catalogdomain "github.com/jinford/shoplist-api/internal/module/catalog/domain"
)

// Verifier は認証済みクレームの参照先ユーザーが今も存在することを確認します。
// トークンは有効でもユーザーが削除済みというケースを弾くための検査で、
// カタログ側の書き込みより前に必ず通ります。
type Verifier struct {
	users domain.Repository
}

// NewVerifier は新しいVerifierを作成します
func NewVerifier(users domain.Repository) *Verifier {
	return &Verifier{users: users}
}

var _ catalogdomain.UserVerifier = (*Verifier)(nil)

// VerifyUser はユーザーの存在を確認します
func (v *Verifier) VerifyUser(ctx context.Context, userID uuid.UUID) error {
	exists, err := v.users.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return catalogdomain.ErrUserNotFound
	}
	return nil
}
