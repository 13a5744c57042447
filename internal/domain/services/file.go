package services

import (
	"context"
	"time"
)

// FileService handles file business logic
type FileService interface {
	// UploadFile validates metadata and size, checks folder ownership and
	// persists the content
	UploadFile(ctx context.Context, req *UploadFileRequest) (*FileView, error)

	// GetFile retrieves file metadata
	GetFile(ctx context.Context, fileID int64, ownerID string) (*FileView, error)

	// DownloadFile retrieves the content together with its name and type
	DownloadFile(ctx context.Context, fileID int64, ownerID string) (*FileDownload, error)

	// ListRootFiles lists the owner's files outside any folder
	ListRootFiles(ctx context.Context, ownerID string) ([]FileView, error)

	// ListFilesInFolder lists files in a folder
	ListFilesInFolder(ctx context.Context, folderID int64, ownerID string) ([]FileView, error)

	// DeleteFile soft-deletes a file
	DeleteFile(ctx context.Context, fileID int64, ownerID string) error
}

// UploadFileRequest represents a file upload request
type UploadFileRequest struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Content     []byte `json:"-"`
	FolderID    *int64 `json:"folder_id,omitempty"` // nil for root
	OwnerID     string `json:"-"`
}

// FileView is the metadata shape returned to the transport layer
type FileView struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	FolderID    *int64    `json:"folder_id"`
	UploadedAt  time.Time `json:"uploaded_at"`
	UpdatedAt   time.Time `json:"last_modified_at"`
}

// FileDownload carries the raw content for a download response
type FileDownload struct {
	Name        string
	ContentType string
	Content     []byte
}
