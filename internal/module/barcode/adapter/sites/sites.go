package sites

import (
	"log/slog"

	"github.com/jinford/shoplist-api/internal/module/barcode/domain"
)

// 各アダプターが使うXPathキー
const (
	keyItemBarcode = "itemBarcode"
	keyItemName    = "itemName"
)

type settings struct {
	baseURL string
	logger  *slog.Logger
}

// Option は各サイトアダプターの構築オプション
type Option func(*settings)

// WithBaseURL はサイトのベースURLを差し替えます（テスト用）
func WithBaseURL(baseURL string) Option {
	return func(s *settings) {
		s.baseURL = baseURL
	}
}

// WithLogger はロガーを差し替えます
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

func newSettings(defaultBaseURL string, opts []Option) settings {
	s := settings{
		baseURL: defaultBaseURL,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// resultText は抽出結果からキーに対応するテキストを取り出します
func resultText(results []domain.XPathResult, key string) string {
	for _, r := range results {
		if r.Key == key {
			return r.Text
		}
	}
	return ""
}
