// Package content backs the rich-text editor panel: load, manual save,
// drafts with periodic auto-save, and Markdown export.
package content

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"docit/internal/config"
	"docit/internal/domain"
	"docit/internal/domain/models"
	"docit/internal/domain/repositories"
	"docit/internal/domain/services"
)

type contentService struct {
	itemRepo   repositories.ItemRepository
	authorizer services.ResourceAuthorizer
	sanitizer  *HTMLSanitizer
	markdown   *MarkdownConverter
	drafts     *draftStore
	events     services.EventPublisher
	logger     *slog.Logger
}

// NewContentService creates a new content service
func NewContentService(
	itemRepo repositories.ItemRepository,
	authorizer services.ResourceAuthorizer,
	sanitizer *HTMLSanitizer,
	markdown *MarkdownConverter,
	events services.EventPublisher,
	logger *slog.Logger,
) services.ContentService {
	return &contentService{
		itemRepo:   itemRepo,
		authorizer: authorizer,
		sanitizer:  sanitizer,
		markdown:   markdown,
		drafts:     newDraftStore(),
		events:     events,
		logger:     logger,
	}
}

// LoadContent returns the pending draft if there is one, else the stored content
func (s *contentService) LoadContent(ctx context.Context, path models.ItemPath) (*services.ItemContent, error) {
	item, err := s.itemRepo.Get(ctx, path)
	if err != nil {
		return nil, err
	}

	result := &services.ItemContent{
		ItemID:  item.ID,
		Content: item.Content,
		SavedAt: item.ContentSavedAt,
	}
	if d, ok := s.drafts.get(path); ok {
		result.Content = d.html
		result.Dirty = true
	}
	return result, nil
}

// SaveContent sanitizes and stores html, discarding any draft. The item is
// checked before the HTML is sanitized.
func (s *contentService) SaveContent(ctx context.Context, path models.ItemPath, html string) (*services.ItemContent, error) {
	if err := s.authorizer.CanAccessItem(ctx, path); err != nil {
		return nil, err
	}

	clean, err := s.clean(html)
	if err != nil {
		return nil, err
	}

	savedAt := time.Now()
	if err := s.itemRepo.SaveContent(ctx, path, clean, savedAt); err != nil {
		return nil, err
	}
	s.drafts.drop(path)
	s.publish(path, savedAt)

	s.logger.Info("item content saved",
		"item_id", path.ItemID,
		"bytes", len(clean),
	)

	return &services.ItemContent{ItemID: path.ItemID, Content: clean, SavedAt: &savedAt}, nil
}

// SaveDraft records unsaved editor content for the auto-saver
func (s *contentService) SaveDraft(ctx context.Context, path models.ItemPath, html string) (*services.ItemContent, error) {
	clean, err := s.clean(html)
	if err != nil {
		return nil, err
	}

	item, err := s.itemRepo.Get(ctx, path)
	if err != nil {
		return nil, err
	}

	if clean == item.Content {
		// edited back to the stored text
		s.drafts.drop(path)
		return &services.ItemContent{ItemID: item.ID, Content: clean, SavedAt: item.ContentSavedAt}, nil
	}

	s.drafts.put(path, clean, time.Now())
	s.logger.Debug("item draft updated", "item_id", path.ItemID)

	return &services.ItemContent{ItemID: item.ID, Content: clean, SavedAt: item.ContentSavedAt, Dirty: true}, nil
}

// ExportMarkdown renders the stored content as Markdown
func (s *contentService) ExportMarkdown(ctx context.Context, path models.ItemPath) (string, error) {
	item, err := s.itemRepo.Get(ctx, path)
	if err != nil {
		return "", err
	}
	return s.markdown.Convert(item.Content)
}

// FlushDrafts writes every dirty draft. A failed write keeps its draft for
// the next flush; drafts of deleted items are dropped.
func (s *contentService) FlushDrafts(ctx context.Context) (int, error) {
	pending := s.drafts.snapshot()
	if len(pending) == 0 {
		return 0, nil
	}

	saved := 0
	var errs []error
	for path, d := range pending {
		err := s.itemRepo.SaveContent(ctx, path, d.html, d.updatedAt)
		switch {
		case err == nil:
			s.drafts.dropIfVersion(path, d.version)
			s.publish(path, d.updatedAt)
			saved++
		case errors.Is(err, domain.ErrNotFound):
			s.logger.Warn("dropping draft of deleted item", "item_id", path.ItemID)
			s.drafts.dropIfVersion(path, d.version)
		default:
			errs = append(errs, fmt.Errorf("save draft of item %s: %w", path.ItemID, err))
		}
	}

	if saved > 0 {
		s.logger.Info("drafts auto-saved", "saved", saved, "failed", len(errs))
	}
	return saved, errors.Join(errs...)
}

func (s *contentService) clean(html string) (string, error) {
	clean := s.sanitizer.Sanitize(html)
	if len(clean) > config.MaxContentBytes {
		return "", fmt.Errorf("%w: content exceeds %d bytes", domain.ErrValidation, config.MaxContentBytes)
	}
	return clean, nil
}

func (s *contentService) publish(path models.ItemPath, savedAt time.Time) {
	if s.events == nil {
		return
	}
	s.events.Publish(models.ChangeEvent{
		Type:       models.ChangeUpdated,
		Entity:     models.EntityContent,
		UserID:     path.UserID,
		FolderID:   path.FolderID,
		ListID:     path.ListID,
		ItemID:     path.ItemID,
		Payload:    map[string]time.Time{"saved_at": savedAt},
		OccurredAt: savedAt,
	})
}
