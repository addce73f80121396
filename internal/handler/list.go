package handler

import (
	"log/slog"
	"net/http"

	"docit/internal/domain/services"
	"docit/internal/httputil"
)

// ListHandler handles list HTTP requests
type ListHandler struct {
	listService services.ListService
	logger      *slog.Logger
}

// NewListHandler creates a new list handler
func NewListHandler(listService services.ListService, logger *slog.Logger) *ListHandler {
	return &ListHandler{
		listService: listService,
		logger:      logger,
	}
}

// ListLists returns the lists of a folder
// GET /api/folders/{folderID}/lists
func (h *ListHandler) ListLists(w http.ResponseWriter, r *http.Request) {
	folder, ok := folderPath(w, r)
	if !ok {
		return
	}

	listing, err := h.listService.ListLists(r.Context(), folder)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, listing)
}

// CreateList creates a list in a folder
// POST /api/folders/{folderID}/lists
func (h *ListHandler) CreateList(w http.ResponseWriter, r *http.Request) {
	folder, ok := folderPath(w, r)
	if !ok {
		return
	}

	var req createRequest
	if !decodeBody(w, r, &req) {
		return
	}

	list, err := h.listService.CreateList(r.Context(), &services.CreateListRequest{
		Folder:      folder,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, list)
}

// GetList retrieves a list
// GET /api/folders/{folderID}/lists/{listID}
func (h *ListHandler) GetList(w http.ResponseWriter, r *http.Request) {
	path, ok := listPath(w, r)
	if !ok {
		return
	}

	list, err := h.listService.GetList(r.Context(), path)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, list)
}

// UpdateList applies the edit dialog
// PATCH /api/folders/{folderID}/lists/{listID}
func (h *ListHandler) UpdateList(w http.ResponseWriter, r *http.Request) {
	path, ok := listPath(w, r)
	if !ok {
		return
	}

	var req updateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	update, err := h.listService.UpdateList(r.Context(), path, &services.UpdateListRequest{
		Name:        req.Name,
		Description: req.description(),
	})
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, update)
}

// DeleteList removes a list with its items
// DELETE /api/folders/{folderID}/lists/{listID}
func (h *ListHandler) DeleteList(w http.ResponseWriter, r *http.Request) {
	path, ok := listPath(w, r)
	if !ok {
		return
	}

	if err := h.listService.DeleteList(r.Context(), path); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
