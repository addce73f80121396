package formatting

import (
	"strings"
	"testing"

	"docit/internal/domain/models"
)

func TestTreeRenderer(t *testing.T) {
	got := NewTreeRenderer().Render([]TreeNode{
		{Name: "Work"},
		{Name: "Tasks", Depth: 1},
		{Name: "Report", Depth: 2, IsLast: true, Detail: "(count 3)"},
		{Name: "Notes", Depth: 1, IsLast: true},
		{Name: "Idea", Depth: 2, IsLast: true},
	})
	want := strings.Join([]string{
		"Work",
		"├── Tasks",
		"│   └── Report (count 3)",
		"└── Notes",
		"    └── Idea",
	}, "\n")
	if got != want {
		t.Errorf("render:\n%s\nwant:\n%s", got, want)
	}
}

func TestOutlineRender(t *testing.T) {
	desc := "quarterly\nnumbers"
	outline := &Outline{
		Folders: []models.Folder{{ID: "f1", Name: "Work"}, {ID: "f2", Name: "Home"}},
		Lists:   []models.List{{ID: "l1", FolderID: "f1", Name: "Tasks"}},
		Items: []models.Item{
			{ID: "i1", FolderID: "f1", ListID: "l1", Name: "Report", Count: 3, Description: &desc},
		},
		Notes: map[string]string{"i1": "# Draft\n\nfirst   pass"},
	}

	got := outline.Render()
	want := strings.Join([]string{
		`Folder "Work"`,
		`└── List "Tasks"`,
		`    └── Item "Report" (count 3) - quarterly numbers note: # Draft first pass`,
		`Folder "Home"`,
	}, "\n")
	if got != want {
		t.Errorf("outline:\n%s\nwant:\n%s", got, want)
	}

	if empty := (&Outline{}).Render(); empty != "(no folders)" {
		t.Errorf("empty outline = %q", empty)
	}
}

func TestOutlineTruncatesNotes(t *testing.T) {
	outline := &Outline{
		Folders: []models.Folder{{ID: "f1", Name: "Work"}},
		Lists:   []models.List{{ID: "l1", FolderID: "f1", Name: "Tasks"}},
		Items:   []models.Item{{ID: "i1", FolderID: "f1", ListID: "l1", Name: "Long"}},
		Notes:   map[string]string{"i1": strings.Repeat("a", MaxNoteLength+50)},
	}
	if got := outline.Render(); !strings.HasSuffix(got, strings.Repeat("a", MaxNoteLength)+"…") {
		t.Errorf("note not truncated: %q", got[len(got)-20:])
	}
}
