package firestore

import (
	"time"

	"cloud.google.com/go/firestore"

	"docit/internal/domain/models"
)

// Field names shared with the web client
const (
	fieldName         = "name"
	fieldDescription  = "description"
	fieldDateCreated  = "dateCreated"
	fieldDateModified = "dateModified"
	fieldCount        = "count"
	fieldContent      = "content"
	fieldContentSaved = "contentSavedAt"
	fieldCreatedBy    = "createdBy"
)

type folderDoc struct {
	Name         string     `firestore:"name"`
	Description  *string    `firestore:"description,omitempty"`
	DateCreated  time.Time  `firestore:"dateCreated"`
	DateModified *time.Time `firestore:"dateModified,omitempty"`
	CreatedBy    string     `firestore:"createdBy"`
}

type listDoc struct {
	Name         string     `firestore:"name"`
	Description  *string    `firestore:"description,omitempty"`
	DateCreated  time.Time  `firestore:"dateCreated"`
	DateModified *time.Time `firestore:"dateModified,omitempty"`
	CreatedBy    string     `firestore:"createdBy"`
}

type itemDoc struct {
	Name           string     `firestore:"name"`
	Description    *string    `firestore:"description,omitempty"`
	Count          int64      `firestore:"count"`
	Content        string     `firestore:"content"`
	ContentSavedAt *time.Time `firestore:"contentSavedAt,omitempty"`
	DateCreated    time.Time  `firestore:"dateCreated"`
	DateModified   *time.Time `firestore:"dateModified,omitempty"`
	CreatedBy      string     `firestore:"createdBy"`
}

func folderFromSnapshot(snap *firestore.DocumentSnapshot) (*models.Folder, error) {
	var d folderDoc
	if err := snap.DataTo(&d); err != nil {
		return nil, err
	}
	return &models.Folder{
		ID:           snap.Ref.ID,
		UserID:       d.CreatedBy,
		Name:         d.Name,
		Description:  d.Description,
		DateCreated:  d.DateCreated,
		DateModified: d.DateModified,
	}, nil
}

// listFromSnapshot reads the folder id from the document path
func listFromSnapshot(snap *firestore.DocumentSnapshot) (*models.List, error) {
	var d listDoc
	if err := snap.DataTo(&d); err != nil {
		return nil, err
	}
	return &models.List{
		ID:           snap.Ref.ID,
		UserID:       d.CreatedBy,
		FolderID:     snap.Ref.Parent.Parent.ID,
		Name:         d.Name,
		Description:  d.Description,
		DateCreated:  d.DateCreated,
		DateModified: d.DateModified,
	}, nil
}

func itemFromSnapshot(snap *firestore.DocumentSnapshot) (*models.Item, error) {
	var d itemDoc
	if err := snap.DataTo(&d); err != nil {
		return nil, err
	}
	listRef := snap.Ref.Parent.Parent
	return &models.Item{
		ID:             snap.Ref.ID,
		UserID:         d.CreatedBy,
		FolderID:       listRef.Parent.Parent.ID,
		ListID:         listRef.ID,
		Name:           d.Name,
		Description:    d.Description,
		Count:          d.Count,
		Content:        d.Content,
		ContentSavedAt: d.ContentSavedAt,
		DateCreated:    d.DateCreated,
		DateModified:   d.DateModified,
	}, nil
}

// describeUpdates turns name/description changes into firestore updates
func describeUpdates(name, description *string, clear bool, modified time.Time) []firestore.Update {
	updates := []firestore.Update{{Path: fieldDateModified, Value: modified}}
	if name != nil {
		updates = append(updates, firestore.Update{Path: fieldName, Value: *name})
	}
	if clear {
		updates = append(updates, firestore.Update{Path: fieldDescription, Value: firestore.Delete})
	} else if description != nil {
		updates = append(updates, firestore.Update{Path: fieldDescription, Value: *description})
	}
	return updates
}
