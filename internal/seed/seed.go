// Package seed fills a fresh database with a demo user's organizer tree
// and the subscription product, through the same services the server uses.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"docit/internal/domain/models"
	"docit/internal/domain/repositories"
	"docit/internal/domain/services"
)

// Seeder creates demo data
type Seeder struct {
	folders services.FolderService
	lists   services.ListService
	items   services.ItemService
	content services.ContentService
	billing repositories.BillingRepository
	logger  *slog.Logger
}

// NewSeeder creates a new seeder
func NewSeeder(
	folders services.FolderService,
	lists services.ListService,
	items services.ItemService,
	content services.ContentService,
	billing repositories.BillingRepository,
	logger *slog.Logger,
) *Seeder {
	return &Seeder{
		folders: folders,
		lists:   lists,
		items:   items,
		content: content,
		billing: billing,
		logger:  logger,
	}
}

type seedItem struct {
	name        string
	description string
	count       int64
	content     string
}

type seedList struct {
	name  string
	items []seedItem
}

type seedFolder struct {
	name        string
	description string
	lists       []seedList
}

// demoTree is the first folder's first list's first item chain the
// client selects by default: Work → Tasks → Report
var demoTree = []seedFolder{
	{
		name:        "Work",
		description: "Day job",
		lists: []seedList{
			{
				name: "Tasks",
				items: []seedItem{
					{
						name:        "Report",
						description: "Quarterly report",
						count:       3,
						content:     "<h1>Report</h1><p>Outline due <strong>Friday</strong>.</p><ul><li>draft</li><li>review</li></ul>",
					},
					{name: "Slides", count: 1},
				},
			},
			{name: "Meetings", items: []seedItem{{name: "Standup", count: 5}}},
		},
	},
	{
		name: "Personal",
		lists: []seedList{
			{
				name: "Groceries",
				items: []seedItem{
					{name: "Milk", count: 2},
					{name: "Eggs", description: "Free range", count: 12},
				},
			},
		},
	},
}

// SeedDemoTree creates the demo folders, lists and items for userID and
// returns how many items were created
func (s *Seeder) SeedDemoTree(ctx context.Context, userID string) (int, error) {
	created := 0
	for _, f := range demoTree {
		folder, err := s.folders.CreateFolder(ctx, &services.CreateFolderRequest{
			UserID:      userID,
			Name:        f.name,
			Description: optional(f.description),
		})
		if err != nil {
			return created, fmt.Errorf("seed folder %q: %w", f.name, err)
		}

		for _, l := range f.lists {
			list, err := s.lists.CreateList(ctx, &services.CreateListRequest{
				Folder: folder.Path(),
				Name:   l.name,
			})
			if err != nil {
				return created, fmt.Errorf("seed list %q: %w", l.name, err)
			}

			for _, i := range l.items {
				count := i.count
				item, err := s.items.CreateItem(ctx, &services.CreateItemRequest{
					List:        list.Path(),
					Name:        i.name,
					Description: optional(i.description),
					Count:       &count,
				})
				if err != nil {
					return created, fmt.Errorf("seed item %q: %w", i.name, err)
				}
				if i.content != "" {
					if _, err := s.content.SaveContent(ctx, item.Path(), i.content); err != nil {
						return created, fmt.Errorf("seed content of %q: %w", i.name, err)
					}
				}
				created++
				s.logger.Debug("seeded item", "folder", f.name, "list", l.name, "item", i.name)
			}
		}
	}
	return created, nil
}

// SeedProducts stores the subscription product with monthly and annual prices
func (s *Seeder) SeedProducts(ctx context.Context) error {
	product := &models.Product{
		ID:          "docit_pro",
		Name:        "DocIt Pro",
		Description: "Unlimited folders and the AI assistant",
		Active:      true,
		Role:        "pro",
		Prices: []models.Price{
			{ID: "price_pro_monthly", Active: true, Currency: "usd", UnitAmount: 500, Interval: "month"},
			{ID: "price_pro_annual", Active: true, Currency: "usd", UnitAmount: 5000, Interval: "year"},
		},
	}
	if err := s.billing.UpsertProduct(ctx, product); err != nil {
		return fmt.Errorf("seed product: %w", err)
	}
	s.logger.Info("seeded product", "id", product.ID, "prices", len(product.Prices))
	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
