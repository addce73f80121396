package models

import "time"

// Folder is the top-level user-owned grouping container.
type Folder struct {
	ID           string     `json:"id" db:"id"`
	UserID       string     `json:"user_id" db:"user_id"`
	Name         string     `json:"name" db:"name"`
	Description  *string    `json:"description,omitempty" db:"description"`
	DateCreated  time.Time  `json:"date_created" db:"date_created"`
	DateModified *time.Time `json:"date_modified,omitempty" db:"date_modified"`
}

// Path returns the folder's address.
func (f *Folder) Path() FolderPath {
	return FolderPath{UserID: f.UserID, FolderID: f.ID}
}

// FolderChanges lists the fields an update writes. Nil means unchanged.
// ClearDescription removes the description entirely.
type FolderChanges struct {
	Name             *string
	Description      *string
	ClearDescription bool
	DateModified     time.Time
}
