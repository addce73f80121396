package models

import "fmt"

// FolderPath addresses a folder owned by a user.
// Mirrors users/{uid}/folders/{folderId}.
type FolderPath struct {
	UserID   string `json:"user_id"`
	FolderID string `json:"folder_id"`
}

// ListPath addresses a list inside a folder.
type ListPath struct {
	UserID   string `json:"user_id"`
	FolderID string `json:"folder_id"`
	ListID   string `json:"list_id"`
}

// ItemPath addresses an item inside a list.
type ItemPath struct {
	UserID   string `json:"user_id"`
	FolderID string `json:"folder_id"`
	ListID   string `json:"list_id"`
	ItemID   string `json:"item_id"`
}

// Folder returns the path of the folder containing the list.
func (p ListPath) Folder() FolderPath {
	return FolderPath{UserID: p.UserID, FolderID: p.FolderID}
}

// List returns the path of the list containing the item.
func (p ItemPath) List() ListPath {
	return ListPath{UserID: p.UserID, FolderID: p.FolderID, ListID: p.ListID}
}

func (p FolderPath) String() string {
	return fmt.Sprintf("users/%s/folders/%s", p.UserID, p.FolderID)
}

func (p ListPath) String() string {
	return fmt.Sprintf("%s/lists/%s", p.Folder(), p.ListID)
}

func (p ItemPath) String() string {
	return fmt.Sprintf("%s/items/%s", p.List(), p.ItemID)
}
