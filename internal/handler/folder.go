package handler

import (
	"log/slog"
	"net/http"

	"docit/internal/domain/services"
	"docit/internal/httputil"
)

// createRequest is the add dialog body shared by folders and lists
type createRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// updateRequest is the edit dialog body. A null description clears it.
type updateRequest struct {
	Name        *string                 `json:"name"`
	Description httputil.OptionalString `json:"description"`
}

func (u updateRequest) description() services.OptionalDescription {
	return services.OptionalDescription{Present: u.Description.Present, Value: u.Description.Value}
}

// FolderHandler handles folder HTTP requests
type FolderHandler struct {
	folderService services.FolderService
	logger        *slog.Logger
}

// NewFolderHandler creates a new folder handler
func NewFolderHandler(folderService services.FolderService, logger *slog.Logger) *FolderHandler {
	return &FolderHandler{
		folderService: folderService,
		logger:        logger,
	}
}

// ListFolders returns the caller's folders and the default selection
// GET /api/folders
func (h *FolderHandler) ListFolders(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	listing, err := h.folderService.ListFolders(r.Context(), session.UserID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, listing)
}

// CreateFolder creates a new folder
// POST /api/folders
func (h *FolderHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	var req createRequest
	if !decodeBody(w, r, &req) {
		return
	}

	folder, err := h.folderService.CreateFolder(r.Context(), &services.CreateFolderRequest{
		UserID:      session.UserID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, folder)
}

// GetFolder retrieves a folder
// GET /api/folders/{folderID}
func (h *FolderHandler) GetFolder(w http.ResponseWriter, r *http.Request) {
	path, ok := folderPath(w, r)
	if !ok {
		return
	}

	folder, err := h.folderService.GetFolder(r.Context(), path)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, folder)
}

// UpdateFolder applies the edit dialog
// PATCH /api/folders/{folderID}
func (h *FolderHandler) UpdateFolder(w http.ResponseWriter, r *http.Request) {
	path, ok := folderPath(w, r)
	if !ok {
		return
	}

	var req updateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	update, err := h.folderService.UpdateFolder(r.Context(), path, &services.UpdateFolderRequest{
		Name:        req.Name,
		Description: req.description(),
	})
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, update)
}

// DeleteFolder removes a folder with its lists and items
// DELETE /api/folders/{folderID}
func (h *FolderHandler) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	path, ok := folderPath(w, r)
	if !ok {
		return
	}

	if err := h.folderService.DeleteFolder(r.Context(), path); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
