package services

import (
	"context"
	"time"

	"docit/internal/domain/models"
)

// ItemContent is what the editor panel loads for the selected item.
// Dirty is true when a draft newer than the stored content is pending.
type ItemContent struct {
	ItemID  string     `json:"item_id"`
	Content string     `json:"content"`
	SavedAt *time.Time `json:"saved_at,omitempty"`
	Dirty   bool       `json:"dirty"`
}

// ContentService backs the rich-text editor panel
type ContentService interface {
	LoadContent(ctx context.Context, path models.ItemPath) (*ItemContent, error)

	// SaveContent is the manual save button; it also discards any draft
	SaveContent(ctx context.Context, path models.ItemPath, html string) (*ItemContent, error)

	// SaveDraft marks the item dirty; the auto-saver persists it later
	SaveDraft(ctx context.Context, path models.ItemPath, html string) (*ItemContent, error)

	// ExportMarkdown renders the stored content as Markdown
	ExportMarkdown(ctx context.Context, path models.ItemPath) (string, error)

	// FlushDrafts persists every dirty draft and returns how many were saved
	FlushDrafts(ctx context.Context) (int, error)
}
