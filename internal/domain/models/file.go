package models

import (
	"time"
)

// File is a stored blob plus its metadata. Content lives in a single
// blob column; FolderID nil means the file sits at the owner's root.
type File struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	ContentType string    `json:"content_type" db:"content_type"`
	Content     []byte    `json:"-" db:"content"`
	Size        int64     `json:"size" db:"size"`
	FolderID    *int64    `json:"folder_id" db:"folder_id"` // NULL = root level
	OwnerID     string    `json:"-" db:"owner_id"`
	UploadedAt  time.Time `json:"uploaded_at" db:"uploaded_at"`
	UpdatedAt   time.Time `json:"last_modified_at" db:"updated_at"`
	Deleted     bool      `json:"-" db:"deleted"`
}

// Visible reports whether the file should be returned by read paths.
func (f *File) Visible() bool {
	return !f.Deleted
}

// Purgeable reports whether the retention sweep may remove the row.
// Strictly exclusive, same as Folder.Purgeable.
func (f *File) Purgeable(cutoff time.Time) bool {
	return f.Deleted && f.UpdatedAt.Before(cutoff)
}
