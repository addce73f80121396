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

type listService struct {
	listRepo   repositories.ListRepository
	itemRepo   repositories.ItemRepository
	txManager  repositories.TransactionManager
	authorizer services.ResourceAuthorizer
	events     services.EventPublisher
	logger     *slog.Logger
}

// NewListService creates a new list service
func NewListService(
	listRepo repositories.ListRepository,
	itemRepo repositories.ItemRepository,
	txManager repositories.TransactionManager,
	authorizer services.ResourceAuthorizer,
	events services.EventPublisher,
	logger *slog.Logger,
) services.ListService {
	return &listService{
		listRepo:   listRepo,
		itemRepo:   itemRepo,
		txManager:  txManager,
		authorizer: authorizer,
		events:     publisherOrNoop(events),
		logger:     logger,
	}
}

// ListLists returns the folder's lists oldest first, selecting the first
func (s *listService) ListLists(ctx context.Context, folder models.FolderPath) (*services.ListListing, error) {
	if err := s.authorizer.CanAccessFolder(ctx, folder); err != nil {
		return nil, err
	}

	lists, err := s.listRepo.ListByFolder(ctx, folder)
	if err != nil {
		return nil, err
	}

	listing := &services.ListListing{Lists: lists}
	if len(lists) > 0 {
		listing.SelectedID = lists[0].ID
	}
	return listing, nil
}

// CreateList creates a list in an existing folder
func (s *listService) CreateList(ctx context.Context, req *services.CreateListRequest) (*models.List, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Description = normalizeDescription(req.Description)

	if err := s.validateCreateRequest(req); err != nil {
		return nil, validationError(err)
	}

	if err := s.authorizer.CanAccessFolder(ctx, req.Folder); err != nil {
		return nil, err
	}

	list := &models.List{
		UserID:      req.Folder.UserID,
		FolderID:    req.Folder.FolderID,
		Name:        req.Name,
		Description: req.Description,
		DateCreated: time.Now(),
	}

	if err := s.listRepo.Create(ctx, list); err != nil {
		return nil, err
	}

	s.events.Publish(listEvent(models.ChangeCreated, list.Path(), list))

	s.logger.Info("list created",
		"id", list.ID,
		"name", list.Name,
		"folder_id", list.FolderID,
	)

	return list, nil
}

// GetList retrieves a list
func (s *listService) GetList(ctx context.Context, path models.ListPath) (*models.List, error) {
	return s.listRepo.Get(ctx, path)
}

// UpdateList writes only the fields that changed
func (s *listService) UpdateList(ctx context.Context, path models.ListPath, req *services.UpdateListRequest) (*services.ListUpdate, error) {
	list, err := s.listRepo.Get(ctx, path)
	if err != nil {
		return nil, err
	}

	cs, err := diffDescribed(list.Name, list.Description, req.Name, req.Description)
	if err != nil {
		return nil, err
	}
	if cs.empty() {
		s.logger.Debug("list update skipped, nothing changed", "id", list.ID)
		return &services.ListUpdate{List: list, Changed: false}, nil
	}

	now := time.Now()
	changes := &models.ListChanges{
		Name:             cs.name,
		Description:      cs.description,
		ClearDescription: cs.clearDescription,
		DateModified:     now,
	}
	if err := s.listRepo.Update(ctx, path, changes); err != nil {
		return nil, err
	}

	if cs.name != nil {
		list.Name = *cs.name
	}
	list.Description = cs.applyDescription(list.Description)
	list.DateModified = &now

	s.events.Publish(listEvent(models.ChangeUpdated, path, list))

	s.logger.Info("list updated",
		"id", list.ID,
		"name", list.Name,
		"folder_id", list.FolderID,
	)

	return &services.ListUpdate{List: list, Changed: true}, nil
}

// DeleteList deletes a list and its items. Sibling lists are untouched.
func (s *listService) DeleteList(ctx context.Context, path models.ListPath) error {
	if err := s.authorizer.CanAccessList(ctx, path); err != nil {
		return err
	}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.itemRepo.DeleteByList(txCtx, path); err != nil {
			return fmt.Errorf("delete list items: %w", err)
		}
		return s.listRepo.Delete(txCtx, path)
	})
	if err != nil {
		return err
	}

	s.events.Publish(listEvent(models.ChangeDeleted, path, nil))

	s.logger.Info("list deleted",
		"id", path.ListID,
		"folder_id", path.FolderID,
	)

	return nil
}

// validateCreateRequest validates a list creation request
func (s *listService) validateCreateRequest(req *services.CreateListRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Folder, validation.By(requireFolderPath)),
		validation.Field(&req.Name, nameRules...),
		validation.Field(&req.Description, descriptionRules...),
	)
}

func requireFolderPath(value interface{}) error {
	path, _ := value.(models.FolderPath)
	if path.UserID == "" || path.FolderID == "" {
		return fmt.Errorf("folder is required")
	}
	return nil
}
