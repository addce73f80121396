package postgres

import (
	"strings"
	"testing"
	"time"
)

func TestUpdateBuilder(t *testing.T) {
	name := "Renamed"
	desc := "Notes"
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name      string
		apply     func(b *updateBuilder)
		wantSQL   string
		wantCount int
	}{
		{
			name: "name only",
			apply: func(b *updateBuilder) {
				b.describe(&name, nil, false, now)
			},
			wantSQL:   "UPDATE dev_folders SET name = $1, date_modified = $2 WHERE id = $3 AND user_id = $4",
			wantCount: 4,
		},
		{
			name: "clear description wins over value",
			apply: func(b *updateBuilder) {
				b.describe(nil, &desc, true, now)
			},
			wantSQL:   "UPDATE dev_folders SET description = $1, date_modified = $2 WHERE id = $3 AND user_id = $4",
			wantCount: 4,
		},
		{
			name: "all fields",
			apply: func(b *updateBuilder) {
				b.describe(&name, &desc, false, now)
			},
			wantSQL:   "UPDATE dev_folders SET name = $1, description = $2, date_modified = $3 WHERE id = $4 AND user_id = $5",
			wantCount: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b updateBuilder
			tt.apply(&b)
			b.where("id", "f1")
			b.where("user_id", "u1")

			if got := b.sql("dev_folders"); got != tt.wantSQL {
				t.Errorf("sql = %q, want %q", got, tt.wantSQL)
			}
			if len(b.args) != tt.wantCount {
				t.Errorf("expected %d args, got %d", tt.wantCount, len(b.args))
			}
		})
	}
}

func TestNewTableNames(t *testing.T) {
	tables := NewTableNames("test_")
	if tables.Items != "test_items" {
		t.Errorf("expected test_items, got %s", tables.Items)
	}
	for _, table := range tables.All() {
		if !strings.HasPrefix(table, "test_") {
			t.Errorf("table %s missing prefix", table)
		}
	}
	// children must be dropped before their parents
	all := tables.All()
	if all[0] != tables.Items || all[1] != tables.Lists || all[2] != tables.Folders {
		t.Errorf("unexpected drop order: %v", all[:3])
	}
}
