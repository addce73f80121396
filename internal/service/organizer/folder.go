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

type folderService struct {
	folderRepo repositories.FolderRepository
	listRepo   repositories.ListRepository
	itemRepo   repositories.ItemRepository
	txManager  repositories.TransactionManager
	authorizer services.ResourceAuthorizer
	events     services.EventPublisher
	logger     *slog.Logger
}

// NewFolderService creates a new folder service
func NewFolderService(
	folderRepo repositories.FolderRepository,
	listRepo repositories.ListRepository,
	itemRepo repositories.ItemRepository,
	txManager repositories.TransactionManager,
	authorizer services.ResourceAuthorizer,
	events services.EventPublisher,
	logger *slog.Logger,
) services.FolderService {
	return &folderService{
		folderRepo: folderRepo,
		listRepo:   listRepo,
		itemRepo:   itemRepo,
		txManager:  txManager,
		authorizer: authorizer,
		events:     publisherOrNoop(events),
		logger:     logger,
	}
}

// ListFolders returns the user's folders oldest first, selecting the first
func (s *folderService) ListFolders(ctx context.Context, userID string) (*services.FolderListing, error) {
	folders, err := s.folderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	listing := &services.FolderListing{Folders: folders}
	if len(folders) > 0 {
		listing.SelectedID = folders[0].ID
	}
	return listing, nil
}

// CreateFolder creates a new folder
func (s *folderService) CreateFolder(ctx context.Context, req *services.CreateFolderRequest) (*models.Folder, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Description = normalizeDescription(req.Description)

	if err := s.validateCreateRequest(req); err != nil {
		return nil, validationError(err)
	}

	folder := &models.Folder{
		UserID:      req.UserID,
		Name:        req.Name,
		Description: req.Description,
		DateCreated: time.Now(),
	}

	if err := s.folderRepo.Create(ctx, folder); err != nil {
		return nil, err
	}

	s.events.Publish(folderEvent(models.ChangeCreated, folder.Path(), folder))

	s.logger.Info("folder created",
		"id", folder.ID,
		"name", folder.Name,
		"user_id", folder.UserID,
	)

	return folder, nil
}

// GetFolder retrieves a folder
func (s *folderService) GetFolder(ctx context.Context, path models.FolderPath) (*models.Folder, error) {
	return s.folderRepo.Get(ctx, path)
}

// UpdateFolder writes the edit dialog. Unchanged fields are not written and
// an edit that changes nothing performs no write at all.
func (s *folderService) UpdateFolder(ctx context.Context, path models.FolderPath, req *services.UpdateFolderRequest) (*services.FolderUpdate, error) {
	folder, err := s.folderRepo.Get(ctx, path)
	if err != nil {
		return nil, err
	}

	cs, err := diffDescribed(folder.Name, folder.Description, req.Name, req.Description)
	if err != nil {
		return nil, err
	}
	if cs.empty() {
		s.logger.Debug("folder update skipped, nothing changed", "id", folder.ID)
		return &services.FolderUpdate{Folder: folder, Changed: false}, nil
	}

	now := time.Now()
	changes := &models.FolderChanges{
		Name:             cs.name,
		Description:      cs.description,
		ClearDescription: cs.clearDescription,
		DateModified:     now,
	}
	if err := s.folderRepo.Update(ctx, path, changes); err != nil {
		return nil, err
	}

	if cs.name != nil {
		folder.Name = *cs.name
	}
	folder.Description = cs.applyDescription(folder.Description)
	folder.DateModified = &now

	s.events.Publish(folderEvent(models.ChangeUpdated, path, folder))

	s.logger.Info("folder updated",
		"id", folder.ID,
		"name", folder.Name,
		"renamed", cs.name != nil,
	)

	return &services.FolderUpdate{Folder: folder, Changed: true}, nil
}

// DeleteFolder deletes a folder with all its lists and items
func (s *folderService) DeleteFolder(ctx context.Context, path models.FolderPath) error {
	if err := s.authorizer.CanAccessFolder(ctx, path); err != nil {
		return err
	}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.itemRepo.DeleteByFolder(txCtx, path); err != nil {
			return fmt.Errorf("delete folder items: %w", err)
		}
		if err := s.listRepo.DeleteByFolder(txCtx, path); err != nil {
			return fmt.Errorf("delete folder lists: %w", err)
		}
		return s.folderRepo.Delete(txCtx, path)
	})
	if err != nil {
		return err
	}

	s.events.Publish(folderEvent(models.ChangeDeleted, path, nil))

	s.logger.Info("folder deleted",
		"id", path.FolderID,
		"user_id", path.UserID,
	)

	return nil
}

// validateCreateRequest validates a folder creation request
func (s *folderService) validateCreateRequest(req *services.CreateFolderRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.UserID, validation.Required),
		validation.Field(&req.Name, nameRules...),
		validation.Field(&req.Description, descriptionRules...),
	)
}
