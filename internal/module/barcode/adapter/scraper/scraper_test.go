package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jinford/shoplist-api/internal/module/barcode/domain"
)

const testPage = `<html><body>
<div id="wrap">
  <h1> Spaced Title </h1>
  <p>Some description</p>
</div>
</body></html>`

func newTestServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestScrape(t *testing.T) {
	srv := newTestServer(t, testPage)
	s := New(srv.Client(), nil)

	results, err := s.Scrape(context.Background(), []domain.XPath{
		{Key: "title", Expression: "/html/body/div/h1"},
		{Key: "description", Expression: "/html/body/div/p"},
	}, srv.URL)
	require.NoError(t, err)
	require.Len(t, results, 2)

	// 入力順が維持され、この層ではトリミングされない
	assert.Equal(t, "title", results[0].Key)
	assert.Equal(t, " Spaced Title ", results[0].Text)
	assert.Equal(t, "description", results[1].Key)
	assert.Equal(t, "Some description", results[1].Text)
}

func TestScrape_NoMatchYieldsEmptyString(t *testing.T) {
	srv := newTestServer(t, testPage)
	s := New(srv.Client(), nil)

	results, err := s.Scrape(context.Background(), []domain.XPath{
		{Key: "missing", Expression: "/html/body/div/h9"},
	}, srv.URL)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "", results[0].Text)
}

func TestScrape_EmptyXPathList(t *testing.T) {
	srv := newTestServer(t, testPage)
	s := New(srv.Client(), nil)

	_, err := s.Scrape(context.Background(), nil, srv.URL)
	assert.Error(t, err)
}

func TestScrape_NetworkError(t *testing.T) {
	srv := newTestServer(t, testPage)
	client := srv.Client()
	srv.Close()

	s := New(client, nil)
	_, err := s.Scrape(context.Background(), []domain.XPath{
		{Key: "title", Expression: "/html/body/div/h1"},
	}, srv.URL)
	assert.Error(t, err)
}

func TestScrape_InvalidExpression(t *testing.T) {
	srv := newTestServer(t, testPage)
	s := New(srv.Client(), nil)

	_, err := s.Scrape(context.Background(), []domain.XPath{
		{Key: "bad", Expression: "///["},
	}, srv.URL)
	assert.Error(t, err)
}
