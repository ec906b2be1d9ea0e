package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	catalogdomain "github.com/jinford/shoplist-api/internal/module/catalog/domain"
	listdomain "github.com/jinford/shoplist-api/internal/module/list/domain"
	"github.com/jinford/shoplist-api/internal/platform/container"
	"github.com/jinford/shoplist-api/internal/platform/logger"
)

// userIDHeader は認証基盤（リバースプロキシ）が検証済みのユーザーIDを
// 載せてくるヘッダです。このAPI自体はトークン検証を行いません。
const userIDHeader = "X-User-Id"

// statusClientClosedRequest はnginx由来の慣用コード。キャンセル済みの
// リクエストにも無応答で接続を閉じず、必ず何らかのステータスを書く。
const statusClientClosedRequest = 499

// Handler はAPIのHTTPハンドラ群です
type Handler struct {
	services *container.ServiceContainer
	logger   *slog.Logger
}

// NewHandler は新しいHandlerを作成します
func NewHandler(services *container.ServiceContainer, log *slog.Logger) *Handler {
	return &Handler{
		services: services,
		logger:   logger.Component(log, "http"),
	}
}

// Routes はルーティングを登録したServeMuxを返します
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", h.healthz)

	mux.HandleFunc("POST /v1/users", h.createUser)

	mux.HandleFunc("GET /v1/barcode/{code}", h.lookupBarcode)
	mux.HandleFunc("POST /v1/user-products", h.resolveUserProduct)

	mux.HandleFunc("POST /v1/lists", h.createList)
	mux.HandleFunc("GET /v1/lists", h.myLists)
	mux.HandleFunc("GET /v1/lists/{id}", h.getList)
	mux.HandleFunc("PATCH /v1/lists/{id}", h.updateList)
	mux.HandleFunc("DELETE /v1/lists/{id}", h.deleteList)

	mux.HandleFunc("POST /v1/lists/{id}/items", h.addListItem)
	mux.HandleFunc("PATCH /v1/list-items/{id}", h.updateListItem)
	mux.HandleFunc("DELETE /v1/list-items/{id}", h.removeListItem)

	return mux
}

func (h *Handler) healthz(w http.ResponseWriter, _ *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// userID はリクエストから認証済みユーザーIDを取り出します。
// ヘッダが無い・不正な場合はuuid.Nilを返し、サービス層の認証チェックに委ねます。
func userID(r *http.Request) uuid.UUID {
	raw := r.Header.Get(userIDHeader)
	if raw == "" {
		return uuid.Nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil
	}
	return id
}

func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(r.PathValue(name))
}

func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.respondError(w, r, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		if err := json.NewEncoder(w).Encode(body); err != nil {
			h.logger.Error("failed to encode response", "error", err)
		}
	}
}

func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	if status >= http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "request failed",
			"method", r.Method, "path", r.URL.Path, "status", status, "error", message)
	}
	h.respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError はドメインエラーをHTTPステータスに写します
func (h *Handler) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, catalogdomain.ErrNotAuthenticated),
		errors.Is(err, catalogdomain.ErrUserNotFound):
		h.respondError(w, r, http.StatusUnauthorized, err.Error())
	case errors.Is(err, listdomain.ErrListNotFound),
		errors.Is(err, listdomain.ErrListItemNotFound):
		h.respondError(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, listdomain.ErrInvalidListName):
		h.respondError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(r.Context().Err(), context.DeadlineExceeded):
		// サーバ側タイムアウト。クライアントには届く可能性がある。
		h.respondError(w, r, http.StatusServiceUnavailable, "request timed out")
	case r.Context().Err() != nil:
		// クライアント切断。レスポンスは届かない見込みだが、無応答のまま
		// 接続を閉じない。
		h.logger.DebugContext(r.Context(), "request cancelled", "path", r.URL.Path)
		h.respondError(w, r, statusClientClosedRequest, "request cancelled")
	default:
		h.respondError(w, r, http.StatusInternalServerError, err.Error())
	}
}
