package tools

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"docit/internal/domain/models"
	"docit/internal/repository/sqlite"
)

func newOrganizerRegistry(t *testing.T, config *ToolConfig) *ToolRegistry {
	t.Helper()
	db, err := sqlite.Open(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	folders := sqlite.NewFolderRepository(db)
	lists := sqlite.NewListRepository(db)
	items := sqlite.NewItemRepository(db)

	now := time.Now()
	long := strings.Repeat("x", 20)
	for _, user := range []string{"u1", "u2"} {
		folder := &models.Folder{UserID: user, Name: "Work", Description: &long, DateCreated: now}
		if err := folders.Create(ctx, folder); err != nil {
			t.Fatalf("create folder: %v", err)
		}
		list := &models.List{UserID: user, FolderID: folder.ID, Name: "Tasks", DateCreated: now}
		if err := lists.Create(ctx, list); err != nil {
			t.Fatalf("create list: %v", err)
		}
		for _, name := range []string{"Report", "Slides"} {
			item := &models.Item{UserID: user, FolderID: folder.ID, ListID: list.ID, Name: name, Count: 3, DateCreated: now}
			if err := items.Create(ctx, item); err != nil {
				t.Fatalf("create item: %v", err)
			}
		}
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewToolRegistryBuilder().
		WithConfig(config).
		WithOrganizerTools("u1", folders, lists, items, logger).
		Build()
}

func TestOrganizerToolsScopedToSession(t *testing.T) {
	registry := newOrganizerRegistry(t, nil)
	ctx := context.Background()

	tests := []struct {
		name    string
		tool    string
		input   map[string]interface{}
		want    int
		wantErr error
	}{
		{"folders with own id", "getAllFolders", map[string]interface{}{"userId": "u1"}, 1, nil},
		{"lists without id", "getAllLists", map[string]interface{}{}, 1, nil},
		{"items", "getAllItems", map[string]interface{}{"userId": "u1"}, 2, nil},
		{"another user", "getAllItems", map[string]interface{}{"userId": "u2"}, 0, ErrUserMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := registry.Execute(ctx, ToolCall{ID: "t", Name: tt.tool, Input: tt.input})

			if tt.wantErr != nil {
				if !result.IsError || !errors.Is(result.Error, tt.wantErr) {
					t.Fatalf("result = %+v, want error %v", result, tt.wantErr)
				}
				return
			}
			if result.IsError {
				t.Fatalf("unexpected error: %v", result.Error)
			}

			var n int
			switch entries := result.Result.(type) {
			case []folderEntry:
				n = len(entries)
			case []listEntry:
				n = len(entries)
			case []itemEntry:
				n = len(entries)
				for _, e := range entries {
					if e.Count != 3 || e.ListID == "" {
						t.Errorf("item entry = %+v", e)
					}
				}
			default:
				t.Fatalf("unexpected result type %T", result.Result)
			}
			if n != tt.want {
				t.Errorf("entries = %d, want %d", n, tt.want)
			}
		})
	}
}

func TestOrganizerToolsApplyLimits(t *testing.T) {
	registry := newOrganizerRegistry(t, &ToolConfig{MaxEntries: 1, MaxDescriptionLength: 5})
	ctx := context.Background()

	items := registry.Execute(ctx, ToolCall{ID: "t1", Name: "getAllItems"})
	if got := len(items.Result.([]itemEntry)); got != 1 {
		t.Errorf("items = %d, want 1", got)
	}

	folders := registry.Execute(ctx, ToolCall{ID: "t2", Name: "getAllFolders"})
	entry := folders.Result.([]folderEntry)[0]
	if entry.Description != "xxxxx…" {
		t.Errorf("description = %q", entry.Description)
	}
}

func TestOrganizerToolDefinitions(t *testing.T) {
	registry := newOrganizerRegistry(t, nil)
	defs := registry.Definitions()
	if len(defs) != 3 {
		t.Fatalf("definitions = %d", len(defs))
	}
	for _, def := range defs {
		if _, ok := def.Properties["userId"]; !ok {
			t.Errorf("%s has no userId property", def.Name)
		}
	}
}
