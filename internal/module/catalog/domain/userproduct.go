package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	UserProductQuantityMax = 1000000
)

// UserProduct はユーザーごとの商品参照です。共有カタログ行を書き換えずに
// 別名などの個人化を持たせるための関連レコードで、(userID, product)の
// 組につき1件だけ存在することが期待されます。
type UserProduct struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	ProductID uuid.UUID

	// ProductAlias はユーザー指定の表示名（任意、3〜250文字）
	ProductAlias *string

	Quantity    int
	Notes       *string
	IsCompleted bool

	CreatedAt time.Time
	UpdatedAt time.Time

	// Product は読み出し時に展開される商品データ
	Product *Product
}
