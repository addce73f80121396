package organizer

import (
	"time"

	"docit/internal/domain/models"
	"docit/internal/domain/services"
)

// noopPublisher is used when no event hub is wired (seed CLI)
type noopPublisher struct{}

func (noopPublisher) Publish(models.ChangeEvent) {}

func publisherOrNoop(p services.EventPublisher) services.EventPublisher {
	if p == nil {
		return noopPublisher{}
	}
	return p
}

func folderEvent(t models.ChangeType, path models.FolderPath, payload interface{}) models.ChangeEvent {
	return models.ChangeEvent{
		Type:       t,
		Entity:     models.EntityFolder,
		UserID:     path.UserID,
		FolderID:   path.FolderID,
		Payload:    payload,
		OccurredAt: time.Now(),
	}
}

func listEvent(t models.ChangeType, path models.ListPath, payload interface{}) models.ChangeEvent {
	return models.ChangeEvent{
		Type:       t,
		Entity:     models.EntityList,
		UserID:     path.UserID,
		FolderID:   path.FolderID,
		ListID:     path.ListID,
		Payload:    payload,
		OccurredAt: time.Now(),
	}
}

func itemEvent(t models.ChangeType, path models.ItemPath, payload interface{}) models.ChangeEvent {
	return models.ChangeEvent{
		Type:       t,
		Entity:     models.EntityItem,
		UserID:     path.UserID,
		FolderID:   path.FolderID,
		ListID:     path.ListID,
		ItemID:     path.ItemID,
		Payload:    payload,
		OccurredAt: time.Now(),
	}
}
