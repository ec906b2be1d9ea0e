package pg

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jinford/shoplist-api/internal/module/catalog/domain"
)

// UserProductRepository はユーザー商品関連の永続化アダプターです
type UserProductRepository struct {
	db DBTX
}

// NewUserProductRepository は新しいユーザー商品リポジトリを作成します
func NewUserProductRepository(db DBTX) *UserProductRepository {
	return &UserProductRepository{db: db}
}

var _ domain.UserProductRepository = (*UserProductRepository)(nil)

const userProductColumns = `up.id, up.user_id, up.product_id, up.product_alias, up.quantity, up.notes, up.is_completed, up.created_at, up.updated_at`

// FindByUserAndBarcode はユーザーIDと、関連商品に紐づくバーコードで
// 関連レコードを検索します。見つからなければ (nil, nil)。
func (r *UserProductRepository) FindByUserAndBarcode(ctx context.Context, userID uuid.UUID, barcode string) (*domain.UserProduct, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+userProductColumns+`
		 FROM user_products up
		 JOIN product_barcodes b ON b.product_id = up.product_id
		 WHERE up.user_id = $1 AND b.barcode = $2
		 LIMIT 1`,
		userID, barcode,
	)

	up, err := scanUserProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user product: %w", err)
	}

	return up, nil
}

// Create はユーザーと商品の関連レコードを作成します
func (r *UserProductRepository) Create(ctx context.Context, userID, productID uuid.UUID) (*domain.UserProduct, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO user_products (user_id, product_id)
		 VALUES ($1, $2)
		 RETURNING `+userProductColumns,
		userID, productID,
	)

	up, err := scanUserProduct(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create user product: %w", err)
	}

	return up, nil
}

// GetWithProduct は商品データを展開した状態で関連レコードを取得します
func (r *UserProductRepository) GetWithProduct(ctx context.Context, id uuid.UUID) (*domain.UserProduct, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+userProductColumns+` FROM user_products up WHERE up.id = $1`,
		id,
	)

	up, err := scanUserProduct(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get user product: %w", err)
	}

	products := &ProductRepository{db: r.db}
	product, err := products.productByID(ctx, up.ProductID)
	if err != nil {
		return nil, err
	}
	up.Product = product

	return up, nil
}

func scanUserProduct(row pgx.Row) (*domain.UserProduct, error) {
	var up domain.UserProduct
	if err := row.Scan(
		&up.ID,
		&up.UserID,
		&up.ProductID,
		&up.ProductAlias,
		&up.Quantity,
		&up.Notes,
		&up.IsCompleted,
		&up.CreatedAt,
		&up.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &up, nil
}
