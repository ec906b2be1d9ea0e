package application

import (
	"context"
	"log/slog"

	"github.com/jinford/shoplist-api/internal/module/barcode/adapter/sites"
	"github.com/jinford/shoplist-api/internal/module/barcode/domain"
	"github.com/jinford/shoplist-api/internal/platform/logger"
)

// eanLength はEAN-13バーコードの桁数
const eanLength = 13

// SearchService は登録済みのサイトアダプターを固定の優先順で試す
// バーコード検索のオーケストレーターです
type SearchService struct {
	adapters []domain.Adapter
	logger   *slog.Logger
}

// NewSearchService は新しいSearchServiceを作成します。
// アダプターはスライスの並び順どおりに試行されます。
func NewSearchService(adapters []domain.Adapter, log *slog.Logger) *SearchService {
	return &SearchService{
		adapters: adapters,
		logger:   logger.Component(log, "barcode_search"),
	}
}

// DefaultAdapters は本番で使う固定優先順のアダプター一覧を返します
func DefaultAdapters(scraper domain.Scraper, logger *slog.Logger) []domain.Adapter {
	opts := []sites.Option{}
	if logger != nil {
		opts = append(opts, sites.WithLogger(logger))
	}
	return []domain.Adapter{
		sites.NewBarcodeIndex(scraper, opts...),
		sites.NewUPCItemDB(scraper, opts...),
		sites.NewBarcodeSpider(scraper, opts...),
	}
}

// Search はアダプターを順に試し、最初のヒットを返します。
// 全アダプターが見つけられなかった場合は (nil, nil) です。
// 各試行は外部サイトへの往復になるため、並列化せず逐次で実行し、
// ヒットした時点で残りを呼びません。
func (s *SearchService) Search(ctx context.Context, barcode string) (*domain.LookupResult, error) {
	if barcode == "" {
		return nil, nil
	}

	if len(barcode) == eanLength {
		// EAN-13の先頭桁を落としてUPC互換にする意図だったが、現行の
		// 挙動は1桁も削っていない。検索結果への影響が未確認のため、
		// 稼働中の挙動をそのまま維持する。
		// TODO: 先頭桁を実際に削る(barcode[1:])べきかプロダクト側に確認する
		barcode = barcode[0:]
	}

	for _, adapter := range s.adapters {
		result, err := adapter.Lookup(ctx, barcode)
		if err != nil {
			return nil, err
		}
		if result != nil {
			s.logger.DebugContext(ctx, "barcode found",
				"barcode", barcode,
				"source", result.Source.Name,
			)
			return result, nil
		}
		s.logger.DebugContext(ctx, "source returned no result",
			"barcode", barcode,
			"source", adapter.Name(),
		)
	}

	return nil, nil
}
