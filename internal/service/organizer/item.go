package organizer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"docit/internal/domain/models"
	"docit/internal/domain/repositories"
	"docit/internal/domain/services"
)

type itemService struct {
	itemRepo   repositories.ItemRepository
	authorizer services.ResourceAuthorizer
	events     services.EventPublisher
	floor      models.CountFloor
	logger     *slog.Logger
}

// NewItemService creates a new item service. floor decides whether counts
// may go below zero.
func NewItemService(
	itemRepo repositories.ItemRepository,
	authorizer services.ResourceAuthorizer,
	events services.EventPublisher,
	floor models.CountFloor,
	logger *slog.Logger,
) services.ItemService {
	return &itemService{
		itemRepo:   itemRepo,
		authorizer: authorizer,
		events:     publisherOrNoop(events),
		floor:      floor,
		logger:     logger,
	}
}

// ListItems returns the list's items oldest first, selecting the first
func (s *itemService) ListItems(ctx context.Context, list models.ListPath) (*services.ItemListing, error) {
	if err := s.authorizer.CanAccessList(ctx, list); err != nil {
		return nil, err
	}

	items, err := s.itemRepo.ListByList(ctx, list)
	if err != nil {
		return nil, err
	}

	listing := &services.ItemListing{Items: items}
	if len(items) > 0 {
		listing.SelectedID = items[0].ID
	}
	return listing, nil
}

// CreateItem creates an item in an existing list
func (s *itemService) CreateItem(ctx context.Context, req *services.CreateItemRequest) (*models.Item, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Description = normalizeDescription(req.Description)

	if err := s.validateCreateRequest(req); err != nil {
		return nil, validationError(err)
	}

	if err := s.authorizer.CanAccessList(ctx, req.List); err != nil {
		return nil, err
	}

	item := &models.Item{
		UserID:      req.List.UserID,
		FolderID:    req.List.FolderID,
		ListID:      req.List.ListID,
		Name:        req.Name,
		Description: req.Description,
		DateCreated: time.Now(),
	}
	if req.Count != nil {
		item.Count = *req.Count
	}

	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	s.events.Publish(itemEvent(models.ChangeCreated, item.Path(), item))

	s.logger.Info("item created",
		"id", item.ID,
		"name", item.Name,
		"list_id", item.ListID,
		"count", item.Count,
	)

	return item, nil
}

// GetItem retrieves an item
func (s *itemService) GetItem(ctx context.Context, path models.ItemPath) (*models.Item, error) {
	return s.itemRepo.Get(ctx, path)
}

// UpdateItem writes only the fields that changed, count included
func (s *itemService) UpdateItem(ctx context.Context, path models.ItemPath, req *services.UpdateItemRequest) (*services.ItemUpdate, error) {
	item, err := s.itemRepo.Get(ctx, path)
	if err != nil {
		return nil, err
	}

	cs, err := diffDescribed(item.Name, item.Description, req.Name, req.Description)
	if err != nil {
		return nil, err
	}

	var count *int64
	if req.Count != nil && *req.Count != item.Count {
		if err := s.validateCount(*req.Count); err != nil {
			return nil, err
		}
		count = req.Count
	}

	if cs.empty() && count == nil {
		s.logger.Debug("item update skipped, nothing changed", "id", item.ID)
		return &services.ItemUpdate{Item: item, Changed: false}, nil
	}

	now := time.Now()
	changes := &models.ItemChanges{
		Name:             cs.name,
		Description:      cs.description,
		ClearDescription: cs.clearDescription,
		Count:            count,
		DateModified:     now,
	}
	if err := s.itemRepo.Update(ctx, path, changes); err != nil {
		return nil, err
	}

	if cs.name != nil {
		item.Name = *cs.name
	}
	item.Description = cs.applyDescription(item.Description)
	if count != nil {
		item.Count = *count
	}
	item.DateModified = &now

	s.events.Publish(itemEvent(models.ChangeUpdated, path, item))

	s.logger.Info("item updated",
		"id", item.ID,
		"name", item.Name,
		"count", item.Count,
	)

	return &services.ItemUpdate{Item: item, Changed: true}, nil
}

// DeleteItem deletes an item
func (s *itemService) DeleteItem(ctx context.Context, path models.ItemPath) error {
	if err := s.itemRepo.Delete(ctx, path); err != nil {
		return err
	}

	s.events.Publish(itemEvent(models.ChangeDeleted, path, nil))

	s.logger.Info("item deleted",
		"id", path.ItemID,
		"list_id", path.ListID,
	)

	return nil
}

// IncrementCount adds one to the item's count
func (s *itemService) IncrementCount(ctx context.Context, path models.ItemPath) (int64, error) {
	return s.adjustCount(ctx, path, 1)
}

// DecrementCount subtracts one; under the clamp floor a zero count stays zero
func (s *itemService) DecrementCount(ctx context.Context, path models.ItemPath) (int64, error) {
	return s.adjustCount(ctx, path, -1)
}

func (s *itemService) adjustCount(ctx context.Context, path models.ItemPath, delta int64) (int64, error) {
	count, err := s.itemRepo.AdjustCount(ctx, path, delta, s.floor, time.Now())
	if err != nil {
		return 0, err
	}

	s.events.Publish(itemEvent(models.ChangeUpdated, path, map[string]int64{"count": count}))

	s.logger.Info("item count adjusted",
		"id", path.ItemID,
		"delta", delta,
		"count", count,
	)

	return count, nil
}

// validateCreateRequest validates an item creation request
func (s *itemService) validateCreateRequest(req *services.CreateItemRequest) error {
	err := validation.ValidateStruct(req,
		validation.Field(&req.List, validation.By(requireListPath)),
		validation.Field(&req.Name, nameRules...),
		validation.Field(&req.Description, descriptionRules...),
	)
	if err != nil {
		return err
	}
	if req.Count != nil && s.floor == models.CountFloorClamp && *req.Count < 0 {
		return fmt.Errorf("count: must be no less than 0")
	}
	return nil
}

func (s *itemService) validateCount(count int64) error {
	if s.floor == models.CountFloorClamp && count < 0 {
		return validationError(fmt.Errorf("count: must be no less than 0"))
	}
	return nil
}

func requireListPath(value interface{}) error {
	path, _ := value.(models.ListPath)
	if path.UserID == "" || path.FolderID == "" || path.ListID == "" {
		return fmt.Errorf("list is required")
	}
	return nil
}
