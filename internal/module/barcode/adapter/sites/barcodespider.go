package sites

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/jinford/shoplist-api/internal/module/barcode/domain"
	"github.com/jinford/shoplist-api/internal/platform/logger"
)

const barcodeSpiderBaseURL = "https://www.barcodespider.com"

// ページ見出しの "UPC 012345678905 Lookup" から余計な語を落とすため
var lookupTokenRe = regexp.MustCompile(`[lL]ookup`)

// BarcodeSpider はbarcodespider.comに対する検索アダプターです
type BarcodeSpider struct {
	scraper domain.Scraper
	baseURL string
	logger  *slog.Logger
}

// NewBarcodeSpider は新しいBarcodeSpiderアダプターを作成します
func NewBarcodeSpider(scraper domain.Scraper, opts ...Option) *BarcodeSpider {
	s := newSettings(barcodeSpiderBaseURL, opts)
	return &BarcodeSpider{
		scraper: scraper,
		baseURL: s.baseURL,
		logger:  logger.Component(s.logger, "barcode_spider"),
	}
}

var _ domain.Adapter = (*BarcodeSpider)(nil)

// Name はソース識別子を返します
func (a *BarcodeSpider) Name() string {
	return "BarcodeSpider"
}

// Lookup はbarcodespider.comの商品ページをスクレイプします
func (a *BarcodeSpider) Lookup(ctx context.Context, barcode string) (*domain.LookupResult, error) {
	url := fmt.Sprintf("%s/%s", a.baseURL, barcode)

	xpaths := []domain.XPath{
		{Key: keyItemBarcode, Expression: "/html/body/div/section[2]/div/div/div/div[2]/div/h1"},
		{Key: keyItemName, Expression: "/html/body/div/section[2]/div/div/div/div[2]/div/div[1]/h2"},
	}

	results, err := a.scraper.Scrape(ctx, xpaths, url)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		a.logger.DebugContext(ctx, "scrape failed", "url", url, "error", err)
		return nil, nil
	}

	itemBarcode := strings.Replace(resultText(results, keyItemBarcode), "UPC", "", 1)
	if loc := lookupTokenRe.FindStringIndex(itemBarcode); loc != nil {
		itemBarcode = itemBarcode[:loc[0]] + itemBarcode[loc[1]:]
	}
	itemBarcode = strings.TrimSpace(itemBarcode)

	itemName := strings.TrimSpace(resultText(results, keyItemName))

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
