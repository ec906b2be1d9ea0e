package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	barcodedomain "github.com/jinford/shoplist-api/internal/module/barcode/domain"
	"github.com/jinford/shoplist-api/internal/module/catalog/domain"
	"github.com/jinford/shoplist-api/internal/platform/logger"
)

// BarcodeSearcher は外部サイトでのバーコード検索能力です。
// 見つからなかった場合は (nil, nil) を返します。
type BarcodeSearcher interface {
	Search(ctx context.Context, barcode string) (*barcodedomain.LookupResult, error)
}

// ResolutionService はバーコードからユーザー商品への解決を担うサービスです。
// カタログの既存商品を再利用し、無ければ外部検索で補完して作成します。
// 同じ新規バーコードへの並行リクエストがあっても、商品・ソースの
// カタログ行は重複しません。
type ResolutionService struct {
	verifier     domain.UserVerifier
	userProducts domain.UserProductRepository
	search       BarcodeSearcher
	tx           domain.Transactor
	logger       *slog.Logger
}

// NewResolutionService は新しいResolutionServiceを作成します
func NewResolutionService(
	verifier domain.UserVerifier,
	userProducts domain.UserProductRepository,
	search BarcodeSearcher,
	tx domain.Transactor,
	log *slog.Logger,
) *ResolutionService {
	return &ResolutionService{
		verifier:     verifier,
		userProducts: userProducts,
		search:       search,
		tx:           tx,
		logger:       logger.Component(log, "product_resolution"),
	}
}

// ResolveUserProduct はバーコードをユーザー商品に解決します。
//
// 処理は次の順で進みます。
//  1. 認証済みユーザーの存在確認（失敗は書き込み前に即時エラー）
//  2. 既存のユーザー商品があればそのまま返す（冪等）
//  3. カタログに既存商品があれば再利用
//  4. 無ければ外部検索。見つからなくてもエラーにせず
//     「Product not found」/「User Added」のプレースホルダーで商品を作る。
//     認識されないバーコードでもリストへの追加は常に成功させるため。
//  5. ユーザー商品を作成し、商品データを展開して返す
func (s *ResolutionService) ResolveUserProduct(ctx context.Context, userID uuid.UUID, barcode string) (*domain.UserProduct, error) {
	if userID == uuid.Nil {
		return nil, domain.ErrNotAuthenticated
	}
	if err := s.verifier.VerifyUser(ctx, userID); err != nil {
		return nil, err
	}

	existing, err := s.userProducts.FindByUserAndBarcode(ctx, userID, barcode)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	var resolved *domain.UserProduct
	err = s.tx.InTransaction(ctx, func(r domain.Repositories) error {
		product, err := r.Products.FindByBarcode(ctx, barcode)
		if err != nil {
			return err
		}

		if product == nil {
			product, err = s.createProduct(ctx, r, barcode)
			if err != nil {
				return err
			}
		}

		userProduct, err := r.UserProducts.Create(ctx, userID, product.ID)
		if err != nil {
			return fmt.Errorf("error creating a user product: %w", err)
		}

		resolved, err = r.UserProducts.GetWithProduct(ctx, userProduct.ID)
		if err != nil {
			return fmt.Errorf("error creating a user product: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return resolved, nil
}

// createProduct は外部検索の結果（またはプレースホルダー）から
// ソースと商品を作成します。作成競合に敗れた場合は勝者の行を使います。
func (s *ResolutionService) createProduct(ctx context.Context, r domain.Repositories, barcode string) (*domain.Product, error) {
	lookup, err := s.search.Search(ctx, barcode)
	if err != nil {
		// 外部検索の失敗で操作全体を失敗させない。コンテキストの
		// キャンセルだけは中断として伝播させる。
		if ctx.Err() != nil {
			return nil, err
		}
		s.logger.WarnContext(ctx, "barcode search failed, falling back to placeholder",
			"barcode", barcode, "error", err)
		lookup = nil
	}

	sourceName := domain.SourceUserAdded
	sourceURL := ""
	productName := domain.PlaceholderProductName

	// 問い合わせに使ったバーコードは必ず商品に登録する。サイトが別の
	// 表記（例: 12桁UPCに対する13桁EAN）を返しても、同じ入力バーコードでの
	// 次回の呼び出しが既存の商品・関連レコードに到達できるようにするため。
	barcodes := []string{barcode}

	if lookup != nil {
		sourceName = domain.SourceName(lookup.Source.Name)
		sourceURL = lookup.Source.URL
		productName = lookup.ItemName
		if lookup.ItemBarcode != "" && lookup.ItemBarcode != barcode {
			barcodes = append(barcodes, lookup.ItemBarcode)
		}
	}

	source, err := r.Sources.FindOrCreate(ctx, sourceName, sourceURL)
	if err != nil {
		return nil, fmt.Errorf("error creating a source for a user product: %w", err)
	}

	product, err := r.Products.Create(ctx, domain.NewProduct{
		Name:     productName,
		Barcodes: barcodes,
		SourceID: source.ID,
	})
	if errors.Is(err, domain.ErrDuplicateBarcode) {
		// 同じバーコードの作成競合に敗れた。勝者の商品を再利用する。
		s.logger.DebugContext(ctx, "lost product creation race, reusing winner", "barcode", barcode)
		product, err = s.winnerProduct(ctx, r, barcodes)
	}
	if err != nil {
		return nil, fmt.Errorf("error creating a product for a user product: %w", err)
	}

	return product, nil
}

// winnerProduct は作成競合に敗れたあと、いずれかのバーコードを持つ
// 勝者の商品を読み直します
func (s *ResolutionService) winnerProduct(ctx context.Context, r domain.Repositories, barcodes []string) (*domain.Product, error) {
	for _, barcode := range barcodes {
		product, err := r.Products.FindByBarcode(ctx, barcode)
		if err != nil {
			return nil, err
		}
		if product != nil {
			return product, nil
		}
	}
	return nil, fmt.Errorf("product for barcodes %v vanished after conflict", barcodes)
}
