package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"filecrate/internal/config"
	"filecrate/internal/domain"
	"filecrate/internal/domain/models"
	"filecrate/internal/domain/repositories"
	"filecrate/internal/domain/services"
)

type fileService struct {
	fileRepo   repositories.FileRepository
	folderRepo repositories.FolderRepository
	logger     *slog.Logger
}

// NewFileService creates a new file service
func NewFileService(
	fileRepo repositories.FileRepository,
	folderRepo repositories.FolderRepository,
	logger *slog.Logger,
) services.FileService {
	return &fileService{
		fileRepo:   fileRepo,
		folderRepo: folderRepo,
		logger:     logger,
	}
}

// UploadFile validates metadata and size, checks folder ownership and
// persists the content
func (s *fileService) UploadFile(ctx context.Context, req *services.UploadFileRequest) (*services.FileView, error) {
	if err := s.validateUploadRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := ValidateName(req.Name, config.MaxFileNameLength, "file"); err != nil {
		return nil, err
	}

	if len(req.Content) == 0 {
		return nil, &domain.EmptyFileError{}
	}

	size := int64(len(req.Content))
	if size > config.MaxFileSizeBytes {
		return nil, &domain.FileTooLargeError{Size: size, MaxSize: config.MaxFileSizeBytes}
	}

	if req.FolderID != nil {
		exists, err := s.folderRepo.Exists(ctx, *req.FolderID, req.OwnerID)
		if err != nil {
			return nil, fmt.Errorf("check folder: %w", err)
		}
		if !exists {
			return nil, &domain.FolderNotFoundError{FolderID: *req.FolderID}
		}
	}

	contentType := req.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	now := time.Now().UTC()
	file := &models.File{
		Name:        req.Name,
		ContentType: contentType,
		Content:     req.Content,
		Size:        size,
		FolderID:    req.FolderID,
		OwnerID:     req.OwnerID,
		UploadedAt:  now,
		UpdatedAt:   now,
	}

	if err := s.fileRepo.Create(ctx, file); err != nil {
		return nil, err
	}

	s.logger.Info("file uploaded",
		"id", file.ID,
		"name", file.Name,
		"size", file.Size,
		"folder_id", file.FolderID,
	)

	return fileView(file), nil
}

// GetFile retrieves file metadata
func (s *fileService) GetFile(ctx context.Context, fileID int64, ownerID string) (*services.FileView, error) {
	file, err := s.fileRepo.GetByID(ctx, fileID, ownerID)
	if err != nil {
		return nil, err
	}
	return fileView(file), nil
}

// DownloadFile retrieves the content together with its name and type
func (s *fileService) DownloadFile(ctx context.Context, fileID int64, ownerID string) (*services.FileDownload, error) {
	file, err := s.fileRepo.GetByID(ctx, fileID, ownerID)
	if err != nil {
		return nil, err
	}

	return &services.FileDownload{
		Name:        file.Name,
		ContentType: file.ContentType,
		Content:     file.Content,
	}, nil
}

// ListRootFiles lists the owner's files outside any folder
func (s *fileService) ListRootFiles(ctx context.Context, ownerID string) ([]services.FileView, error) {
	files, err := s.fileRepo.ListRoot(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return fileViews(files), nil
}

// ListFilesInFolder lists files in a folder. Same policy as folder
// listing: a missing folder is FolderNotFound, not an empty list.
func (s *fileService) ListFilesInFolder(ctx context.Context, folderID int64, ownerID string) ([]services.FileView, error) {
	exists, err := s.folderRepo.Exists(ctx, folderID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("check folder: %w", err)
	}
	if !exists {
		return nil, &domain.FolderNotFoundError{FolderID: folderID}
	}

	files, err := s.fileRepo.ListInFolder(ctx, folderID, ownerID)
	if err != nil {
		return nil, err
	}
	return fileViews(files), nil
}

// DeleteFile soft-deletes a file
func (s *fileService) DeleteFile(ctx context.Context, fileID int64, ownerID string) error {
	exists, err := s.fileRepo.Exists(ctx, fileID, ownerID)
	if err != nil {
		return fmt.Errorf("check file: %w", err)
	}
	if !exists {
		return &domain.FileNotFoundError{FileID: fileID}
	}

	if err := s.fileRepo.SoftDelete(ctx, fileID, ownerID); err != nil {
		return err
	}

	s.logger.Info("file deleted", "id", fileID)
	return nil
}

// validateUploadRequest validates a file upload request
func (s *fileService) validateUploadRequest(req *services.UploadFileRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.OwnerID, validation.Required),
	)
}

func fileView(f *models.File) *services.FileView {
	return &services.FileView{
		ID:          f.ID,
		Name:        f.Name,
		ContentType: f.ContentType,
		Size:        f.Size,
		FolderID:    f.FolderID,
		UploadedAt:  f.UploadedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}

func fileViews(files []models.File) []services.FileView {
	views := make([]services.FileView, 0, len(files))
	for i := range files {
		views = append(views, *fileView(&files[i]))
	}
	return views
}
