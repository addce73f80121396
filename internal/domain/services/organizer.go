package services

import (
	"context"

	"docit/internal/domain/models"
)

// OptionalDescription tracks tri-state semantics for description updates (RFC 7396 PATCH).
// This is transport-agnostic (no JSON tags) - handler maps from httputil.OptionalString.
//   - Present=false: field absent from request (don't change)
//   - Present=true, Value=nil: field is null (clear)
//   - Present=true, Value=&"text": field has value
type OptionalDescription struct {
	Present bool
	Value   *string
}

// CreateFolderRequest represents a folder creation request
type CreateFolderRequest struct {
	UserID      string
	Name        string
	Description *string
}

// UpdateFolderRequest carries the edit dialog fields
type UpdateFolderRequest struct {
	Name        *string
	Description OptionalDescription
}

// CreateListRequest represents a list creation request
type CreateListRequest struct {
	Folder      models.FolderPath
	Name        string
	Description *string
}

// UpdateListRequest carries the edit dialog fields
type UpdateListRequest struct {
	Name        *string
	Description OptionalDescription
}

// CreateItemRequest represents an item creation request.
// Count defaults to zero.
type CreateItemRequest struct {
	List        models.ListPath
	Name        string
	Description *string
	Count       *int64
}

// UpdateItemRequest carries the edit dialog fields
type UpdateItemRequest struct {
	Name        *string
	Description OptionalDescription
	Count       *int64
}

// FolderListing is the folder browser view: the folders plus the one
// selected by default. SelectedID is empty when there are no folders.
type FolderListing struct {
	Folders    []models.Folder `json:"folders"`
	SelectedID string          `json:"selected_id"`
}

// ListListing is the lists of one folder plus the default selection.
type ListListing struct {
	Lists      []models.List `json:"lists"`
	SelectedID string        `json:"selected_id"`
}

// ItemListing is the items of one list plus the default selection.
type ItemListing struct {
	Items      []models.Item `json:"items"`
	SelectedID string        `json:"selected_id"`
}

// FolderUpdate is the result of an update. Changed is false when the
// request matched the stored values and nothing was written.
type FolderUpdate struct {
	Folder  *models.Folder `json:"folder"`
	Changed bool           `json:"changed"`
}

type ListUpdate struct {
	List    *models.List `json:"list"`
	Changed bool         `json:"changed"`
}

type ItemUpdate struct {
	Item    *models.Item `json:"item"`
	Changed bool         `json:"changed"`
}

// FolderService handles folder business logic
type FolderService interface {
	ListFolders(ctx context.Context, userID string) (*FolderListing, error)
	CreateFolder(ctx context.Context, req *CreateFolderRequest) (*models.Folder, error)
	GetFolder(ctx context.Context, path models.FolderPath) (*models.Folder, error)
	UpdateFolder(ctx context.Context, path models.FolderPath, req *UpdateFolderRequest) (*FolderUpdate, error)

	// DeleteFolder removes the folder with its lists and items
	DeleteFolder(ctx context.Context, path models.FolderPath) error
}

// ListService handles list business logic
type ListService interface {
	ListLists(ctx context.Context, folder models.FolderPath) (*ListListing, error)
	CreateList(ctx context.Context, req *CreateListRequest) (*models.List, error)
	GetList(ctx context.Context, path models.ListPath) (*models.List, error)
	UpdateList(ctx context.Context, path models.ListPath, req *UpdateListRequest) (*ListUpdate, error)

	// DeleteList removes the list with its items
	DeleteList(ctx context.Context, path models.ListPath) error
}

// ItemService handles item business logic
type ItemService interface {
	ListItems(ctx context.Context, list models.ListPath) (*ItemListing, error)
	CreateItem(ctx context.Context, req *CreateItemRequest) (*models.Item, error)
	GetItem(ctx context.Context, path models.ItemPath) (*models.Item, error)
	UpdateItem(ctx context.Context, path models.ItemPath, req *UpdateItemRequest) (*ItemUpdate, error)
	DeleteItem(ctx context.Context, path models.ItemPath) error

	// IncrementCount and DecrementCount adjust the count atomically and
	// return the new value
	IncrementCount(ctx context.Context, path models.ItemPath) (int64, error)
	DecrementCount(ctx context.Context, path models.ItemPath) (int64, error)
}
