package services

import (
	"context"
	"time"
)

// FolderService handles folder business logic
type FolderService interface {
	// CreateFolder validates the name, checks parent ownership and persists
	CreateFolder(ctx context.Context, req *CreateFolderRequest) (*FolderView, error)

	// GetFolder retrieves a single folder
	GetFolder(ctx context.Context, folderID int64, ownerID string) (*FolderView, error)

	// ListAll lists every folder of the owner (flat)
	ListAll(ctx context.Context, ownerID string) ([]FolderView, error)

	// ListRoot lists the owner's root-level folders
	ListRoot(ctx context.Context, ownerID string) ([]FolderView, error)

	// ListChildren lists immediate children of a folder
	ListChildren(ctx context.Context, folderID int64, ownerID string) ([]FolderView, error)

	// RenameFolder renames a folder after revalidating the new name
	RenameFolder(ctx context.Context, folderID int64, newName, ownerID string) error

	// DeleteFolder soft-deletes the folder, all its descendant folders and
	// every file under any of them, in one transaction
	DeleteFolder(ctx context.Context, folderID int64, ownerID string) error
}

// CreateFolderRequest represents a folder creation request
type CreateFolderRequest struct {
	Name     string `json:"name"`
	ParentID *int64 `json:"parent_folder_id,omitempty"` // nil for root
	OwnerID  string `json:"-"`
}

// FolderView is the shape returned to the transport layer
type FolderView struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	ParentID  *int64    `json:"parent_folder_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"last_modified_at"`
}
