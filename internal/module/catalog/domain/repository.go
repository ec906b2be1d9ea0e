package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrDuplicateBarcode は同じバーコードの商品作成が競合に敗れたことを示します。
// 呼び出し側は勝者の行を読み直して使います（エラーとして伝播させない）。
var ErrDuplicateBarcode = errors.New("barcode already registered")

// ErrUserNotFound は認証済みクレームの参照先ユーザーが存在しないことを示します
var ErrUserNotFound = errors.New("user not found")

// ErrNotAuthenticated は認証済みの識別子なしで呼び出されたことを示します
var ErrNotAuthenticated = errors.New("authentication required")

// SourceRepository はソースコレクションへの永続化操作です
type SourceRepository interface {
	// FindOrCreate は名前でソースを検索し、無ければ作成します。
	// 同名ソースの同時作成が競合しても行は1つしかできません。
	FindOrCreate(ctx context.Context, name SourceName, url string) (*Source, error)

	GetByName(ctx context.Context, name SourceName) (*Source, error)
}

// ProductRepository は商品コレクションへの永続化操作です
type ProductRepository interface {
	// FindByBarcode はバーコードで商品を検索します。見つからなければ (nil, nil)。
	FindByBarcode(ctx context.Context, barcode string) (*Product, error)

	// Create は商品を作成します。バーコードが既に他の商品に登録されている
	// 場合はErrDuplicateBarcodeを返します。
	Create(ctx context.Context, p NewProduct) (*Product, error)
}

// UserProductRepository はユーザー商品関連への永続化操作です
type UserProductRepository interface {
	// FindByUserAndBarcode はユーザーと（商品に紐づく）バーコードで
	// 関連レコードを検索します。見つからなければ (nil, nil)。
	FindByUserAndBarcode(ctx context.Context, userID uuid.UUID, barcode string) (*UserProduct, error)

	Create(ctx context.Context, userID, productID uuid.UUID) (*UserProduct, error)

	// GetWithProduct は商品データを展開した状態で関連レコードを取得します
	GetWithProduct(ctx context.Context, id uuid.UUID) (*UserProduct, error)
}

// UserVerifier は認証済みクレームの参照先ユーザーが今も存在することを
// 確認する能力です。失敗はリクエスト全体の失敗として扱われます。
type UserVerifier interface {
	VerifyUser(ctx context.Context, userID uuid.UUID) error
}

// Repositories は1トランザクション内で使うリポジトリ束です
type Repositories struct {
	Sources      SourceRepository
	Products     ProductRepository
	UserProducts UserProductRepository
}

// Transactor はリポジトリ束を1つのトランザクションで実行する能力です
type Transactor interface {
	InTransaction(ctx context.Context, fn func(r Repositories) error) error
}
