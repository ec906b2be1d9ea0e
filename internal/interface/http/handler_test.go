package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	catalogdomain "github.com/jinford/shoplist-api/internal/module/catalog/domain"
	listdomain "github.com/jinford/shoplist-api/internal/module/list/domain"
)

func newTestRequest(ctx context.Context) *http.Request {
	return httptest.NewRequest(http.MethodGet, "/v1/lists", nil).WithContext(ctx)
}

func TestRespondServiceError_StatusMapping(t *testing.T) {
	h := NewHandler(nil, nil)

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"未認証", catalogdomain.ErrNotAuthenticated, http.StatusUnauthorized},
		{"ユーザー不在", catalogdomain.ErrUserNotFound, http.StatusUnauthorized},
		{"リスト不在", listdomain.ErrListNotFound, http.StatusNotFound},
		{"アイテム不在", listdomain.ErrListItemNotFound, http.StatusNotFound},
		{"リスト名不正", listdomain.ErrInvalidListName, http.StatusBadRequest},
		{"その他", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.respondServiceError(rec, newTestRequest(context.Background()), tt.err)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestRespondServiceError_CancelledRequestStillGetsStatus(t *testing.T) {
	// キャンセル済みのリクエストでも無応答では終わらない
	h := NewHandler(nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rec := httptest.NewRecorder()
	h.respondServiceError(rec, newTestRequest(ctx), ctx.Err())
	assert.Equal(t, statusClientClosedRequest, rec.Code)
}

func TestRespondServiceError_TimedOutRequest(t *testing.T) {
	h := NewHandler(nil, nil)

	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	rec := httptest.NewRecorder()
	h.respondServiceError(rec, newTestRequest(ctx), ctx.Err())
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
