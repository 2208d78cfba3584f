package models

import "time"

// Folder is a node of the folder tree. An empty ParentID marks a root folder.
type Folder struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ParentID  string    `json:"parentId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Color     string    `json:"color,omitempty"`
	Icon      string    `json:"icon,omitempty"`
}

// IsRoot reports whether f has no parent.
func (f Folder) IsRoot() bool { return f.ParentID == "" }

type NewFolder struct {
	Name     string
	ParentID string
	Color    string
	Icon     string
}

// FolderPatch changes presentation fields only; reparenting goes through Move.
type FolderPatch struct {
	Name  *string
	Color *string
	Icon  *string
}
