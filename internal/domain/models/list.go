package models

import "time"

// List is a named grouping of items within a folder.
type List struct {
	ID           string     `json:"id" db:"id"`
	UserID       string     `json:"user_id" db:"user_id"`
	FolderID     string     `json:"folder_id" db:"folder_id"`
	Name         string     `json:"name" db:"name"`
	Description  *string    `json:"description,omitempty" db:"description"`
	DateCreated  time.Time  `json:"date_created" db:"date_created"`
	DateModified *time.Time `json:"date_modified,omitempty" db:"date_modified"`
}

// Path returns the list's address.
func (l *List) Path() ListPath {
	return ListPath{UserID: l.UserID, FolderID: l.FolderID, ListID: l.ID}
}

// ListChanges lists the fields an update writes. Nil means unchanged.
type ListChanges struct {
	Name             *string
	Description      *string
	ClearDescription bool
	DateModified     time.Time
}
