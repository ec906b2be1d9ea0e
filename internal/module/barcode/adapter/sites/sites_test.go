package sites

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jinford/shoplist-api/internal/module/barcode/adapter/scraper"
)

// 実在するFebrezeのUPC
const knownBarcode = "037000962571"

// 存在しないバーコード
const unknownBarcode = "074780343184"

// 各サイトの実ページと同じ要素構造に合わせたフィクスチャ

const barcodeIndexHitPage = `<html><body><main><div><div><div>
<section><div><div><div>
  <div>breadcrumbs</div>
  <div>
    <h1>UPC 037000962571</h1>
    <h2>Barcode for Febreze Air Freshener</h2>
  </div>
</div></div></div></section>
</div></div></div></main></body></html>`

const barcodeIndexMissPage = `<html><body><main><div><div><div>
<section><div><div><div>
  <div>breadcrumbs</div>
  <div>
    <h1>UPC 074780343184</h1>
    <h2>This barcode has no record in our database yet.</h2>
  </div>
</div></div></div></section>
</div></div></div></main></body></html>`

const upcItemDBHitPage = `<html><body><div><div>
<h2>UPC 037000962571</h2>
<p>Value listing with Febreze Air Freshener</p>
</div></div></body></html>`

const upcItemDBMissPage = `<html><body><div><div>
<h2>UPC 074780343184</h2>
<p>The UPC you searched for is invalid or unknown.</p>
</div></div></body></html>`

const barcodeSpiderHitPage = `<html><body><div>
<section>nav</section>
<section><div><div><div>
  <div>sidebar</div>
  <div>
    <div>
      <h1>UPC 037000962571 Lookup</h1>
      <div><h2>Febreze Air Freshener</h2></div>
    </div>
  </div>
</div></div></div></section>
</div></body></html>`

const barcodeSpiderMissPage = `<html><body><div>
<section>nav</section>
<section><div><div><div>
  <div>sidebar</div>
  <div>
    <div>
      <h1>UPC 074780343184 Lookup</h1>
      <div><h2>074780343184 has no record in our database</h2></div>
    </div>
  </div>
</div></div></div></section>
</div></body></html>`

// newSiteServer はknownBarcodeにヒットページ、それ以外にミスページを返す
// テストサーバを起動します
func newSiteServer(t *testing.T, hitPage, missPage string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, knownBarcode) {
			_, _ = w.Write([]byte(hitPage))
			return
		}
		_, _ = w.Write([]byte(missPage))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestBarcodeIndex_Lookup(t *testing.T) {
	srv := newSiteServer(t, barcodeIndexHitPage, barcodeIndexMissPage)
	adapter := NewBarcodeIndex(scraper.New(srv.Client(), nil), WithBaseURL(srv.URL))

	result, err := adapter.Lookup(context.Background(), knownBarcode)
	require.NoError(t, err)
	require.NotNil(t, result)

	// "UPC" と "Barcode for" の定型句は取り除かれる
	assert.Equal(t, knownBarcode, result.ItemBarcode)
	assert.Contains(t, result.ItemName, "Febreze")
	assert.Equal(t, "barcodeIndex", result.Source.Name)
	assert.Equal(t, srv.URL+"/upc/"+knownBarcode, result.Source.URL)
}

func TestBarcodeIndex_Lookup_NotFound(t *testing.T) {
	srv := newSiteServer(t, barcodeIndexHitPage, barcodeIndexMissPage)
	adapter := NewBarcodeIndex(scraper.New(srv.Client(), nil), WithBaseURL(srv.URL))

	// not foundページはパースに成功しても結果なしとして扱う
	result, err := adapter.Lookup(context.Background(), unknownBarcode)
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestBarcodeIndex_Lookup_SiteUnreachable(t *testing.T) {
	srv := newSiteServer(t, barcodeIndexHitPage, barcodeIndexMissPage)
	client := srv.Client()
	url := srv.URL
	srv.Close()

	adapter := NewBarcodeIndex(scraper.New(client, nil), WithBaseURL(url))

	// ネットワークエラーはソフト失敗（結果なし）であってエラーではない
	result, err := adapter.Lookup(context.Background(), knownBarcode)
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestUPCItemDB_Lookup(t *testing.T) {
	srv := newSiteServer(t, upcItemDBHitPage, upcItemDBMissPage)
	adapter := NewUPCItemDB(scraper.New(srv.Client(), nil), WithBaseURL(srv.URL))

	result, err := adapter.Lookup(context.Background(), knownBarcode)
	require.NoError(t, err)
	require.NotNil(t, result)

	// 商品名は "with" 以降だけが残る
	assert.Equal(t, knownBarcode, result.ItemBarcode)
	assert.Equal(t, "Febreze Air Freshener", result.ItemName)
	assert.Equal(t, "upcItemDb", result.Source.Name)
}

func TestUPCItemDB_Lookup_InvalidBarcodePage(t *testing.T) {
	srv := newSiteServer(t, upcItemDBHitPage, upcItemDBMissPage)
	adapter := NewUPCItemDB(scraper.New(srv.Client(), nil), WithBaseURL(srv.URL))

	// "invalid" を含む名前は未登録扱い
	result, err := adapter.Lookup(context.Background(), unknownBarcode)
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestBarcodeSpider_Lookup(t *testing.T) {
	srv := newSiteServer(t, barcodeSpiderHitPage, barcodeSpiderMissPage)
	adapter := NewBarcodeSpider(scraper.New(srv.Client(), nil), WithBaseURL(srv.URL))

	result, err := adapter.Lookup(context.Background(), knownBarcode)
	require.NoError(t, err)
	require.NotNil(t, result)

	// "UPC" と "Lookup" の定型句は取り除かれる
	assert.Equal(t, knownBarcode, result.ItemBarcode)
	assert.Equal(t, "Febreze Air Freshener", result.ItemName)
	assert.Equal(t, "BarcodeSpider", result.Source.Name)
	assert.Equal(t, srv.URL+"/"+knownBarcode, result.Source.URL)
}

func TestBarcodeSpider_Lookup_NotFound(t *testing.T) {
	srv := newSiteServer(t, barcodeSpiderHitPage, barcodeSpiderMissPage)
	adapter := NewBarcodeSpider(scraper.New(srv.Client(), nil), WithBaseURL(srv.URL))

	result, err := adapter.Lookup(context.Background(), unknownBarcode)
	require.NoError(t, err)
	assert.Nil(t, result)
}
