package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/antchfx/htmlquery"

	"github.com/jinford/shoplist-api/internal/module/barcode/domain"
	"github.com/jinford/shoplist-api/internal/platform/logger"
)

// DefaultFetchTimeout は外部サイト取得のデフォルト上限時間
const DefaultFetchTimeout = 15 * time.Second

// XPathScraper はURLを1回GETし、HTMLとしてパースしてXPath式を評価します。
// リトライもキャッシュも行いません。
type XPathScraper struct {
	client *http.Client
	logger *slog.Logger
}

// New は新しいXPathScraperを作成します。clientがnilの場合は
// デフォルトタイムアウト付きのクライアントを使います。
func New(client *http.Client, log *slog.Logger) *XPathScraper {
	if client == nil {
		client = &http.Client{Timeout: DefaultFetchTimeout}
	}
	return &XPathScraper{
		client: client,
		logger: logger.Component(log, "xpath_scraper"),
	}
}

var _ domain.Scraper = (*XPathScraper)(nil)

// Scrape はurlを取得し、各XPath式が最初に返す文字列値を入力順に収集します。
// ネットワークエラー・パースエラー・式の評価エラーはすべてエラーとして返し、
// 呼び出し側（アダプター）が「このソースでは見つからなかった」に読み替えます。
// この層ではトリミングを行いません。整形はサイトごとのアダプターの責務です。
func (s *XPathScraper) Scrape(ctx context.Context, xpaths []domain.XPath, url string) ([]domain.XPathResult, error) {
	if len(xpaths) == 0 {
		return nil, fmt.Errorf("no xpath expressions given")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", url, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	// not foundページも200以外で返すサイトがあるため、ステータスに関わらず
	// ボディをパースする。ヒット判定はアダプター側のフィルタで行う。
	doc, err := htmlquery.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing response from %s: %w", url, err)
	}

	results := make([]domain.XPathResult, 0, len(xpaths))
	for _, xp := range xpaths {
		node, err := htmlquery.Query(doc, xp.Expression)
		if err != nil {
			return nil, fmt.Errorf("evaluating xpath %q: %w", xp.Expression, err)
		}

		text := ""
		if node != nil {
			text = htmlquery.InnerText(node)
		}
		results = append(results, domain.XPathResult{Key: xp.Key, Text: text})
	}

	s.logger.DebugContext(ctx, "scraped url", "url", url, "xpaths", len(xpaths))

	return results, nil
}
