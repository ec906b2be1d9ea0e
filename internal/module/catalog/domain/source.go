package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SourceName は商品情報の出所を表す閉じた列挙です
type SourceName string

const (
	SourceBarcodeIndex  SourceName = "barcodeIndex"
	SourceUPCItemDB     SourceName = "upcItemDb"
	SourceBarcodeSpider SourceName = "BarcodeSpider"

	// SourceUserAdded は外部検索がヒットしなかった、またはユーザーが
	// 手動で登録した商品に付くソース
	SourceUserAdded SourceName = "User Added"
)

// AvailableSourceNames は許可されるソース名の一覧
var AvailableSourceNames = []SourceName{
	SourceBarcodeIndex,
	SourceUPCItemDB,
	SourceBarcodeSpider,
	SourceUserAdded,
}

// Valid はソース名が列挙に含まれるか判定します
func (n SourceName) Valid() bool {
	for _, name := range AvailableSourceNames {
		if n == name {
			return true
		}
	}
	return false
}

// Source は商品情報の出所レコードです。
// 一度作成されたら通常フローでは更新も削除もされません。
type Source struct {
	ID   uuid.UUID
	Name SourceName

	// URLToSearchResult は検索結果ページのURL（任意）。
	// 保存時にhttpsへ正規化され、ソース間で一意です。
	URLToSearchResult *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

var searchURLRe = regexp.MustCompile(`^(https?://)?[a-zA-Z0-9]+(\.[a-zA-Z0-9]+)+.*$`)

// ValidateSearchURL はURLらしい文字列であることを確認します
func ValidateSearchURL(url string) error {
	if !searchURLRe.MatchString(url) {
		return fmt.Errorf("invalid search result url: %q", url)
	}
	return nil
}

// NormalizeSearchURL はURLをhttpsスキームへ正規化します。
// http:// はhttps://へ昇格し、スキームなしはhttps://が前置されます。
func NormalizeSearchURL(url string) string {
	if url == "" {
		return url
	}
	if strings.HasPrefix(url, "http://") {
		url = strings.Replace(url, "http://", "https://", 1)
	}
	if !strings.HasPrefix(url, "https://") {
		url = "https://" + url
	}
	return url
}
