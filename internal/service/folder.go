package service

import (
	"context"
	"errors"
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

type folderService struct {
	folderRepo repositories.FolderRepository
	fileRepo   repositories.FileRepository
	txManager  repositories.TransactionManager
	logger     *slog.Logger
}

// NewFolderService creates a new folder service
func NewFolderService(
	folderRepo repositories.FolderRepository,
	fileRepo repositories.FileRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.FolderService {
	return &folderService{
		folderRepo: folderRepo,
		fileRepo:   fileRepo,
		txManager:  txManager,
		logger:     logger,
	}
}

// CreateFolder validates the name, checks parent ownership and persists
func (s *folderService) CreateFolder(ctx context.Context, req *services.CreateFolderRequest) (*services.FolderView, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := ValidateName(req.Name, config.MaxFolderNameLength, "folder"); err != nil {
		return nil, err
	}

	if req.ParentID != nil {
		exists, err := s.folderRepo.Exists(ctx, *req.ParentID, req.OwnerID)
		if err != nil {
			return nil, fmt.Errorf("check parent folder: %w", err)
		}
		if !exists {
			return nil, &domain.FolderNotFoundError{FolderID: *req.ParentID}
		}
	}

	now := time.Now().UTC()
	folder := &models.Folder{
		Name:      req.Name,
		ParentID:  req.ParentID,
		OwnerID:   req.OwnerID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.folderRepo.Create(ctx, folder); err != nil {
		return nil, err
	}

	s.logger.Info("folder created",
		"id", folder.ID,
		"name", folder.Name,
		"parent_folder_id", folder.ParentID,
	)

	return folderView(folder), nil
}

// GetFolder retrieves a single folder
func (s *folderService) GetFolder(ctx context.Context, folderID int64, ownerID string) (*services.FolderView, error) {
	folder, err := s.folderRepo.GetByID(ctx, folderID, ownerID)
	if err != nil {
		return nil, err
	}
	return folderView(folder), nil
}

// ListAll lists every folder of the owner (flat)
func (s *folderService) ListAll(ctx context.Context, ownerID string) ([]services.FolderView, error) {
	folders, err := s.folderRepo.ListAll(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return folderViews(folders), nil
}

// ListRoot lists the owner's root-level folders
func (s *folderService) ListRoot(ctx context.Context, ownerID string) ([]services.FolderView, error) {
	folders, err := s.folderRepo.ListRoot(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return folderViews(folders), nil
}

// ListChildren lists immediate children of a folder. A missing parent is
// reported as FolderNotFound rather than an empty list, so callers can
// tell an empty folder from a nonexistent one.
func (s *folderService) ListChildren(ctx context.Context, folderID int64, ownerID string) ([]services.FolderView, error) {
	exists, err := s.folderRepo.Exists(ctx, folderID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("check folder: %w", err)
	}
	if !exists {
		return nil, &domain.FolderNotFoundError{FolderID: folderID}
	}

	folders, err := s.folderRepo.ListChildren(ctx, folderID, ownerID)
	if err != nil {
		return nil, err
	}
	return folderViews(folders), nil
}

// RenameFolder renames a folder after revalidating the new name
func (s *folderService) RenameFolder(ctx context.Context, folderID int64, newName, ownerID string) error {
	exists, err := s.folderRepo.Exists(ctx, folderID, ownerID)
	if err != nil {
		return fmt.Errorf("check folder: %w", err)
	}
	if !exists {
		return &domain.FolderNotFoundError{FolderID: folderID}
	}

	if err := ValidateName(newName, config.MaxFolderNameLength, "folder"); err != nil {
		return err
	}

	if err := s.folderRepo.Rename(ctx, folderID, newName, ownerID); err != nil {
		return err
	}

	s.logger.Info("folder renamed", "id", folderID, "name", newName)
	return nil
}

// DeleteFolder soft-deletes the folder, every descendant folder and every
// file under any of them, in one transaction. Either the whole subtree is
// marked deleted or nothing is.
func (s *folderService) DeleteFolder(ctx context.Context, folderID int64, ownerID string) error {
	exists, err := s.folderRepo.Exists(ctx, folderID, ownerID)
	if err != nil {
		return fmt.Errorf("check folder: %w", err)
	}
	if !exists {
		return &domain.FolderNotFoundError{FolderID: folderID}
	}

	var foldersMarked, filesMarked int64
	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		// Enumerate the subtree inside the transaction so the read set is
		// consistent with the writes below.
		subtree, err := s.folderRepo.ListSubtreeIDs(txCtx, folderID, ownerID)
		if err != nil {
			return fmt.Errorf("enumerate subtree: %w", err)
		}
		if len(subtree) == 0 {
			return &domain.FolderNotFoundError{FolderID: folderID}
		}

		foldersMarked, err = s.folderRepo.SoftDeleteByIDs(txCtx, subtree, ownerID)
		if err != nil {
			return fmt.Errorf("mark folders deleted: %w", err)
		}

		filesMarked, err = s.fileRepo.SoftDeleteInFolders(txCtx, subtree, ownerID)
		if err != nil {
			return fmt.Errorf("mark files deleted: %w", err)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return &domain.TransactionError{Op: "delete folder", Err: err}
	}

	s.logger.Info("folder deleted",
		"id", folderID,
		"folders_marked", foldersMarked,
		"files_marked", filesMarked,
	)

	return nil
}

// validateCreateRequest validates a folder creation request
func (s *folderService) validateCreateRequest(req *services.CreateFolderRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.OwnerID, validation.Required),
	)
}

func folderView(f *models.Folder) *services.FolderView {
	return &services.FolderView{
		ID:        f.ID,
		Name:      f.Name,
		ParentID:  f.ParentID,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

func folderViews(folders []models.Folder) []services.FolderView {
	views := make([]services.FolderView, 0, len(folders))
	for i := range folders {
		views = append(views, *folderView(&folders[i]))
	}
	return views
}
