package domain

import (
	"context"
	"strings"
)

// XPath は名前付きのXPath式です
type XPath struct {
	Key        string
	Expression string
}

// XPathResult はXPath式ごとの抽出結果です。
// マッチしなかった場合、Textは空文字列になります。
type XPathResult struct {
	Key  string
	Text string
}

// SourceRef は検索結果の出所（どのサイトで見つかったか）を表します
type SourceRef struct {
	URL  string
	Name string
}

// LookupResult はバーコード検索の結果です
type LookupResult struct {
	ItemBarcode string
	ItemName    string
	Source      SourceRef
}

// Scraper はURLを取得してXPath式を評価する能力です
type Scraper interface {
	Scrape(ctx context.Context, xpaths []XPath, url string) ([]XPathResult, error)
}

// Adapter はサイト固有のバーコード検索戦略です。
// 見つからなかった場合は (nil, nil) を返します。エラーはコンテキストの
// キャンセルなど呼び出し自体を中断すべき場合に限ります。
type Adapter interface {
	Name() string
	Lookup(ctx context.Context, barcode string) (*LookupResult, error)
}

// notFoundPhrase は「データベースに記録なし」ページに共通して現れる文言
const notFoundPhrase = "has no record in our database"

// CantReturn は整形後の結果が「ヒットなし」として扱うべきか判定します。
// スクレイプ自体は成功しても、not foundページは正常にパースできてしまうため、
// このフィルタで本物のヒットと区別します。
func CantReturn(itemBarcode, itemName string) bool {
	return itemBarcode == "" ||
		itemName == "" ||
		strings.Contains(itemName, notFoundPhrase)
}
