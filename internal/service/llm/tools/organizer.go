package tools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"docit/internal/domain/models/llm"
	"docit/internal/domain/repositories"
)

// ErrUserMismatch is returned when a tool call names another user.
var ErrUserMismatch = errors.New("userId does not match the signed-in user")

var userIDSchema = map[string]interface{}{
	"userId": map[string]interface{}{
		"type":        "string",
		"description": "The id of the signed-in user",
	},
}

// sessionScope binds a tool to the caller. The model may echo the user id
// it was told; anything else is rejected.
type sessionScope struct {
	userID string
	config *ToolConfig
	logger *slog.Logger
}

func (s sessionScope) check(tool string, input map[string]interface{}) error {
	raw, ok := input["userId"]
	if !ok || raw == nil {
		return nil
	}
	requested, ok := raw.(string)
	if !ok {
		return errors.New("userId must be a string")
	}
	if requested != s.userID {
		s.logger.Warn("tool call for another user rejected",
			"tool", tool,
			"user_id", s.userID,
			"requested_user_id", requested,
		)
		return ErrUserMismatch
	}
	return nil
}

func (s sessionScope) description(d *string) string {
	if d == nil {
		return ""
	}
	text := []rune(*d)
	if max := s.config.MaxDescriptionLength; max > 0 && len(text) > max {
		return string(text[:max]) + "…"
	}
	return *d
}

func capEntries[T any](entries []T, max int) []T {
	if max > 0 && len(entries) > max {
		return entries[:max]
	}
	return entries
}

type folderEntry struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type listEntry struct {
	ID          string `json:"id"`
	FolderID    string `json:"folderId"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type itemEntry struct {
	ID          string `json:"id"`
	FolderID    string `json:"folderId"`
	ListID      string `json:"listId"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Count       int64  `json:"count"`
}

// FoldersTool implements getAllFolders.
type FoldersTool struct {
	sessionScope
	repo repositories.FolderRepository
}

// NewFoldersTool creates the getAllFolders tool for one user.
func NewFoldersTool(userID string, repo repositories.FolderRepository, config *ToolConfig, logger *slog.Logger) *FoldersTool {
	return &FoldersTool{sessionScope: newScope(userID, config, logger), repo: repo}
}

func (t *FoldersTool) Definition() llm.ToolDefinition {
	return llm.ToolDefinition{
		Name:        "getAllFolders",
		Description: "Returns all of the user's folders with their ids, names and descriptions.",
		Properties:  userIDSchema,
	}
}

func (t *FoldersTool) Execute(ctx context.Context, input map[string]interface{}) (interface{}, error) {
	if err := t.check("getAllFolders", input); err != nil {
		return nil, err
	}
	folders, err := t.repo.ListByUser(ctx, t.userID)
	if err != nil {
		return nil, fmt.Errorf("load folders: %w", err)
	}

	entries := make([]folderEntry, 0, len(folders))
	for _, f := range folders {
		entries = append(entries, folderEntry{ID: f.ID, Name: f.Name, Description: t.description(f.Description)})
	}
	return capEntries(entries, t.config.MaxEntries), nil
}

// ListsTool implements getAllLists.
type ListsTool struct {
	sessionScope
	repo repositories.ListRepository
}

// NewListsTool creates the getAllLists tool for one user.
func NewListsTool(userID string, repo repositories.ListRepository, config *ToolConfig, logger *slog.Logger) *ListsTool {
	return &ListsTool{sessionScope: newScope(userID, config, logger), repo: repo}
}

func (t *ListsTool) Definition() llm.ToolDefinition {
	return llm.ToolDefinition{
		Name:        "getAllLists",
		Description: "Returns all of the user's lists across folders. Each list names the folderId it belongs to.",
		Properties:  userIDSchema,
	}
}

func (t *ListsTool) Execute(ctx context.Context, input map[string]interface{}) (interface{}, error) {
	if err := t.check("getAllLists", input); err != nil {
		return nil, err
	}
	lists, err := t.repo.ListByUser(ctx, t.userID)
	if err != nil {
		return nil, fmt.Errorf("load lists: %w", err)
	}

	entries := make([]listEntry, 0, len(lists))
	for _, l := range lists {
		entries = append(entries, listEntry{ID: l.ID, FolderID: l.FolderID, Name: l.Name, Description: t.description(l.Description)})
	}
	return capEntries(entries, t.config.MaxEntries), nil
}

// ItemsTool implements getAllItems.
type ItemsTool struct {
	sessionScope
	repo repositories.ItemRepository
}

// NewItemsTool creates the getAllItems tool for one user.
func NewItemsTool(userID string, repo repositories.ItemRepository, config *ToolConfig, logger *slog.Logger) *ItemsTool {
	return &ItemsTool{sessionScope: newScope(userID, config, logger), repo: repo}
}

func (t *ItemsTool) Definition() llm.ToolDefinition {
	return llm.ToolDefinition{
		Name:        "getAllItems",
		Description: "Returns all of the user's items with their folderId, listId and count.",
		Properties:  userIDSchema,
	}
}

func (t *ItemsTool) Execute(ctx context.Context, input map[string]interface{}) (interface{}, error) {
	if err := t.check("getAllItems", input); err != nil {
		return nil, err
	}
	items, err := t.repo.ListByUser(ctx, t.userID)
	if err != nil {
		return nil, fmt.Errorf("load items: %w", err)
	}

	entries := make([]itemEntry, 0, len(items))
	for _, i := range items {
		entries = append(entries, itemEntry{
			ID:          i.ID,
			FolderID:    i.FolderID,
			ListID:      i.ListID,
			Name:        i.Name,
			Description: t.description(i.Description),
			Count:       i.Count,
		})
	}
	return capEntries(entries, t.config.MaxEntries), nil
}

func newScope(userID string, config *ToolConfig, logger *slog.Logger) sessionScope {
	if config == nil {
		config = DefaultToolConfig()
	}
	return sessionScope{userID: userID, config: config, logger: logger}
}
