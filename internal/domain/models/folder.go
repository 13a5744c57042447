package models

import (
	"time"
)

// Folder is a node in a per-owner folder tree. ParentID forms the
// adjacency relation; nil means the folder sits at the owner's root.
type Folder struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	ParentID  *int64    `json:"parent_folder_id" db:"parent_id"` // NULL = root level
	OwnerID   string    `json:"-" db:"owner_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"last_modified_at" db:"updated_at"`
	Deleted   bool      `json:"-" db:"deleted"`
}

// Visible reports whether the folder should be returned by read paths.
func (f *Folder) Visible() bool {
	return !f.Deleted
}

// Purgeable reports whether the retention sweep may remove the row.
// The comparison is strictly exclusive: a row soft-deleted exactly at
// the cutoff survives until the next sweep.
func (f *Folder) Purgeable(cutoff time.Time) bool {
	return f.Deleted && f.UpdatedAt.Before(cutoff)
}
