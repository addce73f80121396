package formatting

import (
	"fmt"
	"strings"

	"docit/internal/domain/models"
)

// Outline is everything one user owns, as loaded for a summary.
type Outline struct {
	Folders []models.Folder
	Lists   []models.List
	Items   []models.Item

	// Notes holds rendered item content by item id; missing means none
	Notes map[string]string
}

// MaxNoteLength caps each item's note in the outline.
const MaxNoteLength = 400

// Render draws folders, their lists and their items as a tree, one root
// per folder. Lists and items whose parent is missing are skipped.
func (o *Outline) Render() string {
	if len(o.Folders) == 0 {
		return "(no folders)"
	}

	listsByFolder := make(map[string][]models.List)
	for _, l := range o.Lists {
		listsByFolder[l.FolderID] = append(listsByFolder[l.FolderID], l)
	}
	itemsByList := make(map[string][]models.Item)
	for _, i := range o.Items {
		itemsByList[i.ListID] = append(itemsByList[i.ListID], i)
	}

	var nodes []TreeNode
	for _, f := range o.Folders {
		nodes = append(nodes, TreeNode{Name: "Folder " + quote(f.Name), Detail: describe(f.Description)})

		lists := listsByFolder[f.ID]
		for li, l := range lists {
			nodes = append(nodes, TreeNode{
				Name:   "List " + quote(l.Name),
				Depth:  1,
				IsLast: li == len(lists)-1,
				Detail: describe(l.Description),
			})

			items := itemsByList[l.ID]
			for ii, item := range items {
				detail := fmt.Sprintf("(count %d)", item.Count)
				if d := describe(item.Description); d != "" {
					detail += " " + d
				}
				if note := o.note(item.ID); note != "" {
					detail += " note: " + note
				}
				nodes = append(nodes, TreeNode{
					Name:   "Item " + quote(item.Name),
					Depth:  2,
					IsLast: ii == len(items)-1,
					Detail: detail,
				})
			}
		}
	}
	return NewTreeRenderer().Render(nodes)
}

func (o *Outline) note(itemID string) string {
	text := strings.Join(strings.Fields(o.Notes[itemID]), " ")
	runes := []rune(text)
	if len(runes) > MaxNoteLength {
		return string(runes[:MaxNoteLength]) + "…"
	}
	return text
}

func quote(name string) string {
	return fmt.Sprintf("%q", name)
}

func describe(d *string) string {
	if d == nil || *d == "" {
		return ""
	}
	return "- " + strings.Join(strings.Fields(*d), " ")
}
