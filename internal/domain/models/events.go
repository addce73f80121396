package models

import "time"

// ChangeType is the kind of mutation an event reports.
type ChangeType string

const (
	ChangeCreated ChangeType = "created"
	ChangeUpdated ChangeType = "updated"
	ChangeDeleted ChangeType = "deleted"
)

// EntityType names the entity an event refers to.
type EntityType string

const (
	EntityFolder  EntityType = "folder"
	EntityList    EntityType = "list"
	EntityItem    EntityType = "item"
	EntityContent EntityType = "content"
)

// ChangeEvent tells subscribers exactly which entity changed so clients
// can invalidate by id instead of re-fetching whole collections.
type ChangeEvent struct {
	Type       ChangeType  `json:"type"`
	Entity     EntityType  `json:"entity"`
	UserID     string      `json:"-"`
	FolderID   string      `json:"folder_id,omitempty"`
	ListID     string      `json:"list_id,omitempty"`
	ItemID     string      `json:"item_id,omitempty"`
	Payload    interface{} `json:"payload,omitempty"`
	OccurredAt time.Time   `json:"occurred_at"`
}
