package sites

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jinford/shoplist-api/internal/module/barcode/domain"
	"github.com/jinford/shoplist-api/internal/platform/logger"
)

const barcodeIndexBaseURL = "https://barcodeindex.com"

// BarcodeIndex はbarcodeindex.comに対する検索アダプターです
type BarcodeIndex struct {
	scraper domain.Scraper
	baseURL string
	logger  *slog.Logger
}

// NewBarcodeIndex は新しいBarcodeIndexアダプターを作成します
func NewBarcodeIndex(scraper domain.Scraper, opts ...Option) *BarcodeIndex {
	s := newSettings(barcodeIndexBaseURL, opts)
	return &BarcodeIndex{
		scraper: scraper,
		baseURL: s.baseURL,
		logger:  logger.Component(s.logger, "barcode_index"),
	}
}

var _ domain.Adapter = (*BarcodeIndex)(nil)

// Name はソース識別子を返します
func (a *BarcodeIndex) Name() string {
	return "barcodeIndex"
}

// Lookup はbarcodeindex.comの商品ページをスクレイプします
func (a *BarcodeIndex) Lookup(ctx context.Context, barcode string) (*domain.LookupResult, error) {
	url := fmt.Sprintf("%s/upc/%s", a.baseURL, barcode)

	xpaths := []domain.XPath{
		{Key: keyItemBarcode, Expression: "/html/body/main/div/div/div[1]/section[1]/div/div/div/div[2]/h1"},
		{Key: keyItemName, Expression: "/html/body/main/div/div/div[1]/section[1]/div/div/div/div[2]/h2"},
	}

	results, err := a.scraper.Scrape(ctx, xpaths, url)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		a.logger.DebugContext(ctx, "scrape failed", "url", url, "error", err)
		return nil, nil
	}

	itemBarcode := strings.TrimSpace(strings.Replace(resultText(results, keyItemBarcode), "UPC", "", 1))
	itemName := strings.TrimSpace(strings.Replace(resultText(results, keyItemName), "Barcode for", "", 1))

	if domain.CantReturn(itemBarcode, itemName) {
		return nil, nil
	}

	return &domain.LookupResult{
		ItemBarcode: itemBarcode,
		ItemName:    itemName,
		Source: domain.SourceRef{
			URL:  url,
			Name: a.Name(),
		},
	}, nil
}
