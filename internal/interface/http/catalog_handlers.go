package http

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	catalogdomain "github.com/jinford/shoplist-api/internal/module/catalog/domain"
)

type createUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type userResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if req.Username == "" || req.Email == "" {
		h.respondError(w, r, http.StatusBadRequest, "username and email are required")
		return
	}

	user, err := h.services.Users.Create(r.Context(), req.Username, req.Email)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, userResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	})
}

type lookupResponse struct {
	ItemBarcode string `json:"item_barcode"`
	ItemName    string `json:"item_name"`
	SourceName  string `json:"source_name"`
	SourceURL   string `json:"source_url"`
}

// lookupBarcode は外部サイトでの検索結果をそのまま返します。
// カタログへの書き込みは行わない診断用のエンドポイントです。
func (h *Handler) lookupBarcode(w http.ResponseWriter, r *http.Request) {
	barcode := r.PathValue("code")

	result, err := h.services.BarcodeSearch.Search(r.Context(), barcode)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	if result == nil {
		h.respondError(w, r, http.StatusNotFound, catalogdomain.PlaceholderProductName)
		return
	}

	h.respondJSON(w, http.StatusOK, lookupResponse{
		ItemBarcode: result.ItemBarcode,
		ItemName:    result.ItemName,
		SourceName:  result.Source.Name,
		SourceURL:   result.Source.URL,
	})
}

type resolveRequest struct {
	Barcode string `json:"barcode"`
}

type productResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Barcodes []string  `json:"barcodes"`
}

type userProductResponse struct {
	ID           uuid.UUID        `json:"id"`
	ProductAlias *string          `json:"product_alias,omitempty"`
	Quantity     int              `json:"quantity"`
	Notes        *string          `json:"notes,omitempty"`
	IsCompleted  bool             `json:"is_completed"`
	CreatedAt    time.Time        `json:"created_at"`
	Product      *productResponse `json:"product,omitempty"`
}

func (h *Handler) resolveUserProduct(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if req.Barcode == "" {
		h.respondError(w, r, http.StatusBadRequest, "barcode is required")
		return
	}

	up, err := h.services.Resolution.ResolveUserProduct(r.Context(), userID(r), req.Barcode)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, newUserProductResponse(up))
}

func newUserProductResponse(up *catalogdomain.UserProduct) userProductResponse {
	resp := userProductResponse{
		ID:           up.ID,
		ProductAlias: up.ProductAlias,
		Quantity:     up.Quantity,
		Notes:        up.Notes,
		IsCompleted:  up.IsCompleted,
		CreatedAt:    up.CreatedAt,
	}
	if up.Product != nil {
		resp.Product = &productResponse{
			ID:       up.Product.ID,
			Name:     up.Product.Name,
			Barcodes: up.Product.Barcodes,
		}
	}
	return resp
}
