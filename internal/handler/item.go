package handler

import (
	"log/slog"
	"net/http"

	"docit/internal/domain/services"
	"docit/internal/httputil"
)

type createItemRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Count       *int64  `json:"count"`
}

type updateItemRequest struct {
	updateRequest
	Count *int64 `json:"count"`
}

// countResponse is returned by the +/- buttons
type countResponse struct {
	ItemID string `json:"item_id"`
	Count  int64  `json:"count"`
}

// ItemHandler handles item HTTP requests
type ItemHandler struct {
	itemService services.ItemService
	logger      *slog.Logger
}

// NewItemHandler creates a new item handler
func NewItemHandler(itemService services.ItemService, logger *slog.Logger) *ItemHandler {
	return &ItemHandler{
		itemService: itemService,
		logger:      logger,
	}
}

// ListItems returns the items of a list
// GET /api/folders/{folderID}/lists/{listID}/items
func (h *ItemHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	list, ok := listPath(w, r)
	if !ok {
		return
	}

	listing, err := h.itemService.ListItems(r.Context(), list)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, listing)
}

// CreateItem creates an item in a list
// POST /api/folders/{folderID}/lists/{listID}/items
func (h *ItemHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	list, ok := listPath(w, r)
	if !ok {
		return
	}

	var req createItemRequest
	if !decodeBody(w, r, &req) {
		return
	}

	item, err := h.itemService.CreateItem(r.Context(), &services.CreateItemRequest{
		List:        list,
		Name:        req.Name,
		Description: req.Description,
		Count:       req.Count,
	})
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, item)
}

// GetItem retrieves an item
// GET /api/folders/{folderID}/lists/{listID}/items/{itemID}
func (h *ItemHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	path, ok := itemPath(w, r)
	if !ok {
		return
	}

	item, err := h.itemService.GetItem(r.Context(), path)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, item)
}

// UpdateItem applies the edit dialog
// PATCH /api/folders/{folderID}/lists/{listID}/items/{itemID}
func (h *ItemHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	path, ok := itemPath(w, r)
	if !ok {
		return
	}

	var req updateItemRequest
	if !decodeBody(w, r, &req) {
		return
	}

	update, err := h.itemService.UpdateItem(r.Context(), path, &services.UpdateItemRequest{
		Name:        req.Name,
		Description: req.description(),
		Count:       req.Count,
	})
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, update)
}

// DeleteItem removes an item
// DELETE /api/folders/{folderID}/lists/{listID}/items/{itemID}
func (h *ItemHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	path, ok := itemPath(w, r)
	if !ok {
		return
	}

	if err := h.itemService.DeleteItem(r.Context(), path); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// IncrementCount adds one to the item's count
// POST /api/folders/{folderID}/lists/{listID}/items/{itemID}/increment
func (h *ItemHandler) IncrementCount(w http.ResponseWriter, r *http.Request) {
	path, ok := itemPath(w, r)
	if !ok {
		return
	}

	count, err := h.itemService.IncrementCount(r.Context(), path)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, countResponse{ItemID: path.ItemID, Count: count})
}

// DecrementCount subtracts one from the item's count
// POST /api/folders/{folderID}/lists/{listID}/items/{itemID}/decrement
func (h *ItemHandler) DecrementCount(w http.ResponseWriter, r *http.Request) {
	path, ok := itemPath(w, r)
	if !ok {
		return
	}

	count, err := h.itemService.DecrementCount(r.Context(), path)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, countResponse{ItemID: path.ItemID, Count: count})
}
