package pg

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jinford/shoplist-api/internal/module/catalog/domain"
)

// ProductRepository は商品コレクションの永続化アダプターです
type ProductRepository struct {
	db DBTX
}

// NewProductRepository は新しい商品リポジトリを作成します
func NewProductRepository(db DBTX) *ProductRepository {
	return &ProductRepository{db: db}
}

var _ domain.ProductRepository = (*ProductRepository)(nil)

const productColumns = `p.id, p.name, p.source_id, p.created_at, p.updated_at`

// FindByBarcode はバーコードで商品を検索します。見つからなければ (nil, nil)。
func (r *ProductRepository) FindByBarcode(ctx context.Context, barcode string) (*domain.Product, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+productColumns+`
		 FROM products p
		 JOIN product_barcodes b ON b.product_id = p.id
		 WHERE b.barcode = $1`,
		barcode,
	)

	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find product by barcode: %w", err)
	}

	if err := r.loadBarcodes(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// Create は商品とそのバーコードを登録します。
// バーコードの一意制約はproduct_barcodesテーブルが担っており、挿入は
// ON CONFLICT DO NOTHINGで行います。1件も挿入できなかったバーコードが
// あれば作成競合に敗れたとみなし、作りかけの商品行を片付けたうえで
// ErrDuplicateBarcodeを返します。呼び出し側は勝者の行を読み直します。
func (r *ProductRepository) Create(ctx context.Context, p domain.NewProduct) (*domain.Product, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	row := r.db.QueryRow(ctx,
		`INSERT INTO products (name, source_id)
		 VALUES ($1, $2)
		 RETURNING `+productColumns,
		p.Name, p.SourceID,
	)

	product, err := scanProduct(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	for _, barcode := range p.Barcodes {
		tag, err := r.db.Exec(ctx,
			`INSERT INTO product_barcodes (barcode, product_id)
			 VALUES ($1, $2)
			 ON CONFLICT (barcode) DO NOTHING`,
			barcode, product.ID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to register barcode: %w", err)
		}
		if tag.RowsAffected() == 0 {
			// 同じバーコードの商品が先に作られた。商品行ごと片付ける
			// （product_barcodesはON DELETE CASCADE）。
			if _, delErr := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, product.ID); delErr != nil {
				return nil, fmt.Errorf("failed to clean up product after barcode conflict: %w", delErr)
			}
			return nil, domain.ErrDuplicateBarcode
		}
	}

	product.Barcodes = append([]string(nil), p.Barcodes...)
	return product, nil
}

func (r *ProductRepository) loadBarcodes(ctx context.Context, product *domain.Product) error {
	rows, err := r.db.Query(ctx,
		`SELECT barcode FROM product_barcodes WHERE product_id = $1 ORDER BY barcode`,
		product.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to load product barcodes: %w", err)
	}
	defer rows.Close()

	var barcodes []string
	for rows.Next() {
		var barcode string
		if err := rows.Scan(&barcode); err != nil {
			return fmt.Errorf("failed to scan barcode: %w", err)
		}
		barcodes = append(barcodes, barcode)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate barcodes: %w", err)
	}

	product.Barcodes = barcodes
	return nil
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	if err := row.Scan(&p.ID, &p.Name, &p.SourceID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// productByID は展開読み込み用の内部ヘルパーです
func (r *ProductRepository) productByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products p WHERE p.id = $1`,
		id,
	)
	product, err := scanProduct(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if err := r.loadBarcodes(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}
