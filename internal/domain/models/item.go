package models

import "time"

// Item is a leaf record with a count and optional rich-text content.
type Item struct {
	ID             string     `json:"id" db:"id"`
	UserID         string     `json:"user_id" db:"user_id"`
	FolderID       string     `json:"folder_id" db:"folder_id"`
	ListID         string     `json:"list_id" db:"list_id"`
	Name           string     `json:"name" db:"name"`
	Description    *string    `json:"description,omitempty" db:"description"`
	Count          int64      `json:"count" db:"count"`
	Content        string     `json:"content,omitempty" db:"content"`
	ContentSavedAt *time.Time `json:"content_saved_at,omitempty" db:"content_saved_at"`
	DateCreated    time.Time  `json:"date_created" db:"date_created"`
	DateModified   *time.Time `json:"date_modified,omitempty" db:"date_modified"`
}

// Path returns the item's address.
func (i *Item) Path() ItemPath {
	return ItemPath{UserID: i.UserID, FolderID: i.FolderID, ListID: i.ListID, ItemID: i.ID}
}

// ItemChanges lists the fields an update writes. Nil means unchanged.
type ItemChanges struct {
	Name             *string
	Description      *string
	ClearDescription bool
	Count            *int64
	DateModified     time.Time
}

// CountFloor selects how decrements behave at zero.
type CountFloor string

const (
	// CountFloorClamp keeps counts at or above zero.
	CountFloorClamp CountFloor = "clamp"
	// CountFloorNone lets counts go negative.
	CountFloorNone CountFloor = "none"
)

// ParseCountFloor maps a config value to a floor policy, defaulting to clamp.
func ParseCountFloor(s string) CountFloor {
	if CountFloor(s) == CountFloorNone {
		return CountFloorNone
	}
	return CountFloorClamp
}

// Apply returns the count after adding delta under the policy.
func (f CountFloor) Apply(count, delta int64) int64 {
	next := count + delta
	if f == CountFloorClamp && next < 0 {
		return 0
	}
	return next
}
