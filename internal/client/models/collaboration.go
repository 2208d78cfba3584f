package models

import (
	"slices"
	"time"
)

// Role is the access level of a collaborator.
type Role string

const (
	RoleViewer Role = "viewer"
	RoleEditor Role = "editor"
	RoleOwner  Role = "owner"
)

func (r Role) Valid() bool {
	return r == RoleViewer || r == RoleEditor || r == RoleOwner
}

type Collaborator struct {
	UserID  string    `json:"userId"`
	Role    Role      `json:"role"`
	AddedAt time.Time `json:"addedAt"`
}

// CollaboratorInput names a user to share with.
type CollaboratorInput struct {
	UserID string
	Role   Role
}

// SharedRecording is the sharing state of one recording. Collaborator user
// ids are unique and the list is never empty.
type SharedRecording struct {
	RecordingID   string         `json:"recordingId"`
	SharedBy      string         `json:"sharedBy"`
	SharedAt      time.Time      `json:"sharedAt"`
	Collaborators []Collaborator `json:"collaborators"`
}

func (s SharedRecording) Clone() SharedRecording {
	s.Collaborators = slices.Clone(s.Collaborators)
	return s
}

// HasCollaborator reports whether userID is among the collaborators.
func (s SharedRecording) HasCollaborator(userID string) bool {
	return slices.ContainsFunc(s.Collaborators, func(c Collaborator) bool { return c.UserID == userID })
}

// Comment is a note pinned to a position (seconds) of a recording.
type Comment struct {
	ID          string    `json:"id"`
	RecordingID string    `json:"recordingId"`
	UserID      string    `json:"userId"`
	Content     string    `json:"content"`
	Timestamp   float64   `json:"timestamp"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewComment is the caller-supplied part of a comment. An empty UserID means
// the signed-in user.
type NewComment struct {
	RecordingID string
	UserID      string
	Content     string
	Timestamp   float64
}
