package handler

import (
	"log/slog"
	"net/http"

	"docit/internal/domain/services"
	"docit/internal/httputil"
	"docit/internal/service/content"
)

type contentRequest struct {
	Content string `json:"content"`
}

type markdownResponse struct {
	ItemID    string `json:"item_id"`
	Markdown  string `json:"markdown"`
	WordCount int    `json:"word_count"`
}

// ContentHandler serves the rich-text editor panel
type ContentHandler struct {
	contentService services.ContentService
	logger         *slog.Logger
}

// NewContentHandler creates a new content handler
func NewContentHandler(contentService services.ContentService, logger *slog.Logger) *ContentHandler {
	return &ContentHandler{
		contentService: contentService,
		logger:         logger,
	}
}

// GetContent loads the editor content, preferring a pending draft
// GET .../items/{itemID}/content
func (h *ContentHandler) GetContent(w http.ResponseWriter, r *http.Request) {
	path, ok := itemPath(w, r)
	if !ok {
		return
	}

	loaded, err := h.contentService.LoadContent(r.Context(), path)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, loaded)
}

// SaveContent is the manual save button
// PUT .../items/{itemID}/content
func (h *ContentHandler) SaveContent(w http.ResponseWriter, r *http.Request) {
	path, ok := itemPath(w, r)
	if !ok {
		return
	}

	var req contentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	saved, err := h.contentService.SaveContent(r.Context(), path, req.Content)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, saved)
}

// SaveDraft records an unsaved edit for the auto-saver
// PUT .../items/{itemID}/draft
func (h *ContentHandler) SaveDraft(w http.ResponseWriter, r *http.Request) {
	path, ok := itemPath(w, r)
	if !ok {
		return
	}

	var req contentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	draft, err := h.contentService.SaveDraft(r.Context(), path, req.Content)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusAccepted, draft)
}

// ExportMarkdown renders the stored content as Markdown.
// ?format=raw returns text/markdown instead of JSON.
// GET .../items/{itemID}/markdown
func (h *ContentHandler) ExportMarkdown(w http.ResponseWriter, r *http.Request) {
	path, ok := itemPath(w, r)
	if !ok {
		return
	}

	md, err := h.contentService.ExportMarkdown(r.Context(), path)
	if err != nil {
		handleError(w, err)
		return
	}

	if r.URL.Query().Get("format") == "raw" {
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(md))
		return
	}

	httputil.RespondJSON(w, http.StatusOK, markdownResponse{
		ItemID:    path.ItemID,
		Markdown:  md,
		WordCount: content.CountWords(md),
	})
}
