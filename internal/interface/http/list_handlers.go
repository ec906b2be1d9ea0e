package http

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	listdomain "github.com/jinford/shoplist-api/internal/module/list/domain"
)

type listRequest struct {
	Name      string `json:"name"`
	IsDefault bool   `json:"is_default"`
}

type listItemResponse struct {
	ID            uuid.UUID `json:"id"`
	UserProductID uuid.UUID `json:"user_product_id"`
	Quantity      int       `json:"quantity"`
	Notes         *string   `json:"notes,omitempty"`
	IsCompleted   bool      `json:"is_completed"`
	CreatedAt     time.Time `json:"created_at"`
}

type listResponse struct {
	ID        uuid.UUID          `json:"id"`
	Name      string             `json:"name"`
	IsDefault bool               `json:"is_default"`
	CreatedAt time.Time          `json:"created_at"`
	Items     []listItemResponse `json:"items,omitempty"`
}

func newListResponse(list *listdomain.List) listResponse {
	resp := listResponse{
		ID:        list.ID,
		Name:      list.Name,
		IsDefault: list.IsDefault,
		CreatedAt: list.CreatedAt,
	}
	for _, item := range list.Items {
		resp.Items = append(resp.Items, newListItemResponse(item))
	}
	return resp
}

func newListItemResponse(item *listdomain.ListItem) listItemResponse {
	return listItemResponse{
		ID:            item.ID,
		UserProductID: item.UserProductID,
		Quantity:      item.Quantity,
		Notes:         item.Notes,
		IsCompleted:   item.IsCompleted,
		CreatedAt:     item.CreatedAt,
	}
}

func (h *Handler) createList(w http.ResponseWriter, r *http.Request) {
	var req listRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	list, err := h.services.Lists.CreateList(r.Context(), userID(r), req.Name, req.IsDefault)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, newListResponse(list))
}

func (h *Handler) myLists(w http.ResponseWriter, r *http.Request) {
	lists, err := h.services.Lists.MyLists(r.Context(), userID(r))
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	resp := make([]listResponse, 0, len(lists))
	for _, list := range lists {
		resp = append(resp, newListResponse(list))
	}
	h.respondJSON(w, http.StatusOK, resp)
}

func (h *Handler) getList(w http.ResponseWriter, r *http.Request) {
	listID, err := pathUUID(r, "id")
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, "invalid list id")
		return
	}

	list, err := h.services.Lists.GetList(r.Context(), userID(r), listID)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, newListResponse(list))
}

func (h *Handler) updateList(w http.ResponseWriter, r *http.Request) {
	listID, err := pathUUID(r, "id")
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, "invalid list id")
		return
	}

	var req listRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	list, err := h.services.Lists.UpdateList(r.Context(), userID(r), listID, req.Name, req.IsDefault)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, newListResponse(list))
}

func (h *Handler) deleteList(w http.ResponseWriter, r *http.Request) {
	listID, err := pathUUID(r, "id")
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, "invalid list id")
		return
	}

	if err := h.services.Lists.DeleteList(r.Context(), userID(r), listID); err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type addItemRequest struct {
	Barcode  string  `json:"barcode"`
	Quantity int     `json:"quantity"`
	Notes    *string `json:"notes"`
}

func (h *Handler) addListItem(w http.ResponseWriter, r *http.Request) {
	listID, err := pathUUID(r, "id")
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, "invalid list id")
		return
	}

	var req addItemRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if req.Barcode == "" {
		h.respondError(w, r, http.StatusBadRequest, "barcode is required")
		return
	}

	item, err := h.services.Lists.AddItem(r.Context(), userID(r), listID, req.Barcode, req.Quantity, req.Notes)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, newListItemResponse(item))
}

type updateItemRequest struct {
	Quantity    *int    `json:"quantity"`
	Notes       *string `json:"notes"`
	IsCompleted *bool   `json:"is_completed"`
}

func (h *Handler) updateListItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := pathUUID(r, "id")
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, "invalid item id")
		return
	}

	var req updateItemRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	item, err := h.services.Lists.UpdateItem(r.Context(), userID(r), itemID, listdomain.ListItemUpdate{
		Quantity:    req.Quantity,
		Notes:       req.Notes,
		IsCompleted: req.IsCompleted,
	})
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, newListItemResponse(item))
}

func (h *Handler) removeListItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := pathUUID(r, "id")
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, "invalid item id")
		return
	}

	if err := h.services.Lists.RemoveItem(r.Context(), userID(r), itemID); err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
