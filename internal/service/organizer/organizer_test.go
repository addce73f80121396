package organizer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"docit/internal/domain"
	"docit/internal/domain/models"
	"docit/internal/domain/repositories"
	"docit/internal/domain/services"
	"docit/internal/repository/sqlite"
	serviceAuth "docit/internal/service/auth"
)

// countingFolderRepo records how many writes reach the store
type countingFolderRepo struct {
	repositories.FolderRepository
	creates, updates int
}

func (r *countingFolderRepo) Create(ctx context.Context, f *models.Folder) error {
	r.creates++
	return r.FolderRepository.Create(ctx, f)
}

func (r *countingFolderRepo) Update(ctx context.Context, p models.FolderPath, c *models.FolderChanges) error {
	r.updates++
	return r.FolderRepository.Update(ctx, p, c)
}

type countingItemRepo struct {
	repositories.ItemRepository
	updates int
}

func (r *countingItemRepo) Update(ctx context.Context, p models.ItemPath, c *models.ItemChanges) error {
	r.updates++
	return r.ItemRepository.Update(ctx, p, c)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []models.ChangeEvent
}

func (p *recordingPublisher) Publish(e models.ChangeEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *recordingPublisher) last() models.ChangeEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.events[len(p.events)-1]
}

type fixture struct {
	folders services.FolderService
	lists   services.ListService
	items   services.ItemService

	folderRepo *countingFolderRepo
	itemRepo   *countingItemRepo
	events     *recordingPublisher
}

func newFixture(t *testing.T, floor models.CountFloor) *fixture {
	t.Helper()
	db, err := sqlite.Open(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	folderRepo := &countingFolderRepo{FolderRepository: sqlite.NewFolderRepository(db)}
	listRepo := sqlite.NewListRepository(db)
	itemRepo := &countingItemRepo{ItemRepository: sqlite.NewItemRepository(db)}
	tx := sqlite.NewTransactionManager(db)
	authorizer := serviceAuth.NewOwnerBasedAuthorizer(folderRepo, listRepo, itemRepo)
	events := &recordingPublisher{}

	return &fixture{
		folders:    NewFolderService(folderRepo, listRepo, itemRepo, tx, authorizer, events, logger),
		lists:      NewListService(listRepo, itemRepo, tx, authorizer, events, logger),
		items:      NewItemService(itemRepo, authorizer, events, floor, logger),
		folderRepo: folderRepo,
		itemRepo:   itemRepo,
		events:     events,
	}
}

func strPtr(s string) *string { return &s }

// seed builds Work → Tasks → Report for user u1
func (f *fixture) seed(t *testing.T) (*models.Folder, *models.List, *models.Item) {
	t.Helper()
	ctx := context.Background()
	folder, err := f.folders.CreateFolder(ctx, &services.CreateFolderRequest{UserID: "u1", Name: "Work"})
	if err != nil {
		t.Fatalf("create folder: %v", err)
	}
	list, err := f.lists.CreateList(ctx, &services.CreateListRequest{Folder: folder.Path(), Name: "Tasks"})
	if err != nil {
		t.Fatalf("create list: %v", err)
	}
	item, err := f.items.CreateItem(ctx, &services.CreateItemRequest{List: list.Path(), Name: "Report"})
	if err != nil {
		t.Fatalf("create item: %v", err)
	}
	return folder, list, item
}

func TestOrganizerScenario(t *testing.T) {
	f := newFixture(t, models.CountFloorClamp)
	ctx := context.Background()

	empty, err := f.folders.ListFolders(ctx, "u1")
	if err != nil {
		t.Fatalf("list folders: %v", err)
	}
	if len(empty.Folders) != 0 || empty.SelectedID != "" {
		t.Fatalf("expected empty listing with no selection, got %+v", empty)
	}

	folder, list, item := f.seed(t)

	folders, _ := f.folders.ListFolders(ctx, "u1")
	if len(folders.Folders) != 1 || folders.SelectedID != folder.ID {
		t.Fatalf("expected Work to be selected, got %+v", folders)
	}
	lists, _ := f.lists.ListLists(ctx, folder.Path())
	if len(lists.Lists) != 1 || lists.SelectedID != list.ID {
		t.Fatalf("expected Tasks to be selected, got %+v", lists)
	}
	items, _ := f.items.ListItems(ctx, list.Path())
	if len(items.Items) != 1 || items.SelectedID != item.ID || items.Items[0].Count != 0 {
		t.Fatalf("expected Report with count 0 selected, got %+v", items)
	}

	for i := 0; i < 2; i++ {
		if _, err := f.items.IncrementCount(ctx, item.Path()); err != nil {
			t.Fatalf("increment: %v", err)
		}
	}
	got, err := f.items.GetItem(ctx, item.Path())
	if err != nil {
		t.Fatalf("get item: %v", err)
	}
	if got.Count != 2 {
		t.Errorf("count = %d, want 2", got.Count)
	}

	last := f.events.last()
	if last.Entity != models.EntityItem || last.Type != models.ChangeUpdated || last.ItemID != item.ID {
		t.Errorf("unexpected last event %+v", last)
	}
}

func TestCreateValidation(t *testing.T) {
	f := newFixture(t, models.CountFloorClamp)
	ctx := context.Background()

	tests := []struct {
		name string
		req  *services.CreateFolderRequest
	}{
		{"empty name", &services.CreateFolderRequest{UserID: "u1", Name: ""}},
		{"blank name", &services.CreateFolderRequest{UserID: "u1", Name: "   "}},
		{"no user", &services.CreateFolderRequest{Name: "Work"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.folders.CreateFolder(ctx, tt.req)
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}

	if f.folderRepo.creates != 0 {
		t.Errorf("validation failures must not reach the store, got %d creates", f.folderRepo.creates)
	}
}

func TestCreateUnderMissingParent(t *testing.T) {
	f := newFixture(t, models.CountFloorClamp)
	ctx := context.Background()
	folder, _, _ := f.seed(t)

	_, err := f.lists.CreateList(ctx, &services.CreateListRequest{
		Folder: models.FolderPath{UserID: "u1", FolderID: "missing"},
		Name:   "Orphan",
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// another user cannot write under u1's folder
	_, err = f.lists.CreateList(ctx, &services.CreateListRequest{
		Folder: models.FolderPath{UserID: "u2", FolderID: folder.ID},
		Name:   "Intruder",
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign folder, got %v", err)
	}
}

func TestUpdateWithoutChangesSkipsWrite(t *testing.T) {
	f := newFixture(t, models.CountFloorClamp)
	ctx := context.Background()
	folder, _, item := f.seed(t)

	res, err := f.folders.UpdateFolder(ctx, folder.Path(), &services.UpdateFolderRequest{Name: strPtr(" Work ")})
	if err != nil {
		t.Fatalf("update folder: %v", err)
	}
	if res.Changed {
		t.Error("expected Changed=false for identical name")
	}
	if f.folderRepo.updates != 0 {
		t.Errorf("expected no write, got %d", f.folderRepo.updates)
	}

	itemRes, err := f.items.UpdateItem(ctx, item.Path(), &services.UpdateItemRequest{
		Name:        strPtr("Report"),
		Description: services.OptionalDescription{Present: true, Value: nil},
	})
	if err != nil {
		t.Fatalf("update item: %v", err)
	}
	if itemRes.Changed || f.itemRepo.updates != 0 {
		t.Errorf("clearing an absent description should not write (changed=%v, writes=%d)", itemRes.Changed, f.itemRepo.updates)
	}
}

func TestUpdateDescriptionTriState(t *testing.T) {
	f := newFixture(t, models.CountFloorClamp)
	ctx := context.Background()
	folder, _, _ := f.seed(t)

	res, err := f.folders.UpdateFolder(ctx, folder.Path(), &services.UpdateFolderRequest{
		Description: services.OptionalDescription{Present: true, Value: strPtr("day job")},
	})
	if err != nil {
		t.Fatalf("set description: %v", err)
	}
	if !res.Changed || res.Folder.Description == nil || *res.Folder.Description != "day job" {
		t.Fatalf("expected description to be set, got %+v", res)
	}
	if res.Folder.DateModified == nil {
		t.Error("expected date_modified to be stamped")
	}

	// absent description keeps it
	res, _ = f.folders.UpdateFolder(ctx, folder.Path(), &services.UpdateFolderRequest{Name: strPtr("Office")})
	stored, _ := f.folders.GetFolder(ctx, folder.Path())
	if stored.Name != "Office" || stored.Description == nil {
		t.Fatalf("rename should keep description, got %+v", stored)
	}

	// null clears it
	res, _ = f.folders.UpdateFolder(ctx, folder.Path(), &services.UpdateFolderRequest{
		Description: services.OptionalDescription{Present: true},
	})
	stored, _ = f.folders.GetFolder(ctx, folder.Path())
	if !res.Changed || stored.Description != nil {
		t.Fatalf("expected description cleared, got %+v", stored)
	}

	_, err = f.folders.UpdateFolder(ctx, folder.Path(), &services.UpdateFolderRequest{Name: strPtr("  ")})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for blank rename, got %v", err)
	}
}

func TestDecrementAtZero(t *testing.T) {
	tests := []struct {
		name  string
		floor models.CountFloor
		want  int64
	}{
		{"clamp keeps zero", models.CountFloorClamp, 0},
		{"none goes negative", models.CountFloorNone, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.floor)
			_, _, item := f.seed(t)

			got, err := f.items.DecrementCount(context.Background(), item.Path())
			if err != nil {
				t.Fatalf("decrement: %v", err)
			}
			if got != tt.want {
				t.Errorf("count = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestUpdateItemCount(t *testing.T) {
	f := newFixture(t, models.CountFloorClamp)
	ctx := context.Background()
	_, _, item := f.seed(t)

	count := int64(7)
	res, err := f.items.UpdateItem(ctx, item.Path(), &services.UpdateItemRequest{Count: &count})
	if err != nil {
		t.Fatalf("update count: %v", err)
	}
	if !res.Changed || res.Item.Count != 7 {
		t.Fatalf("expected count 7, got %+v", res)
	}

	negative := int64(-3)
	if _, err := f.items.UpdateItem(ctx, item.Path(), &services.UpdateItemRequest{Count: &negative}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for negative count under clamp, got %v", err)
	}
}

func TestDeleteListLeavesSiblings(t *testing.T) {
	f := newFixture(t, models.CountFloorClamp)
	ctx := context.Background()
	folder, list, item := f.seed(t)

	sibling, err := f.lists.CreateList(ctx, &services.CreateListRequest{Folder: folder.Path(), Name: "Ideas"})
	if err != nil {
		t.Fatalf("create sibling: %v", err)
	}

	if err := f.lists.DeleteList(ctx, list.Path()); err != nil {
		t.Fatalf("delete list: %v", err)
	}

	lists, _ := f.lists.ListLists(ctx, folder.Path())
	if len(lists.Lists) != 1 || lists.Lists[0].ID != sibling.ID || lists.SelectedID != sibling.ID {
		t.Fatalf("expected only Ideas to remain and be selected, got %+v", lists)
	}
	if _, err := f.items.GetItem(ctx, item.Path()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected the deleted list's item to be gone, got %v", err)
	}

	if err := f.lists.DeleteList(ctx, list.Path()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestDeleteFolderCascades(t *testing.T) {
	f := newFixture(t, models.CountFloorClamp)
	ctx := context.Background()
	folder, list, item := f.seed(t)

	if err := f.folders.DeleteFolder(ctx, folder.Path()); err != nil {
		t.Fatalf("delete folder: %v", err)
	}

	if _, err := f.lists.GetList(ctx, list.Path()); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected list removed, got %v", err)
	}
	if _, err := f.items.GetItem(ctx, item.Path()); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected item removed, got %v", err)
	}

	last := f.events.last()
	if last.Type != models.ChangeDeleted || last.Entity != models.EntityFolder || last.FolderID != folder.ID {
		t.Errorf("unexpected last event %+v", last)
	}
}
