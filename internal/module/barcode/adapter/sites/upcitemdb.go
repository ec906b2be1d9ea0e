package sites

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jinford/shoplist-api/internal/module/barcode/domain"
	"github.com/jinford/shoplist-api/internal/platform/logger"
)

const upcItemDBBaseURL = "https://www.upcitemdb.com"

// UPCItemDB はupcitemdb.comに対する検索アダプターです
type UPCItemDB struct {
	scraper domain.Scraper
	baseURL string
	logger  *slog.Logger
}

// NewUPCItemDB は新しいUPCItemDBアダプターを作成します
func NewUPCItemDB(scraper domain.Scraper, opts ...Option) *UPCItemDB {
	s := newSettings(upcItemDBBaseURL, opts)
	return &UPCItemDB{
		scraper: scraper,
		baseURL: s.baseURL,
		logger:  logger.Component(s.logger, "upc_item_db"),
	}
}

var _ domain.Adapter = (*UPCItemDB)(nil)

// Name はソース識別子を返します
func (a *UPCItemDB) Name() string {
	return "upcItemDb"
}

// Lookup はupcitemdb.comの商品ページをスクレイプします
func (a *UPCItemDB) Lookup(ctx context.Context, barcode string) (*domain.LookupResult, error) {
	url := fmt.Sprintf("%s/upc/%s", a.baseURL, barcode)

	xpaths := []domain.XPath{
		{Key: keyItemBarcode, Expression: "/html/body/div[1]/div/h2"},
		{Key: keyItemName, Expression: "/html/body/div[1]/div/p"},
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
	itemName := strings.TrimSpace(resultText(results, keyItemName))

	// このサイトの商品名は「... with 商品名」の形式で返るため、
	// "with" 以降だけを残す
	if strings.Contains(itemName, "with") {
		itemName = strings.TrimSpace(strings.SplitN(itemName, "with", 2)[1])
	}

	// "invalid" を含む名前は未登録バーコードの案内ページ
	if domain.CantReturn(itemBarcode, itemName) || strings.Contains(itemName, "invalid") {
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
