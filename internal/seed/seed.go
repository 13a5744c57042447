// Package seed loads a YAML fixture of users, folder trees and files
// through the service layer, so seeded data passes the same validation
// as API traffic.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"filecrate/internal/domain/services"
)

// Fixture is the root of a seed file
type Fixture struct {
	Users []UserFixture `yaml:"users"`
}

// UserFixture is an account plus its root-level contents
type UserFixture struct {
	Email    string          `yaml:"email"`
	Password string          `yaml:"password"`
	Folders  []FolderFixture `yaml:"folders"`
	Files    []FileFixture   `yaml:"files"`
}

// FolderFixture is a folder with nested folders and files
type FolderFixture struct {
	Name    string          `yaml:"name"`
	Folders []FolderFixture `yaml:"folders"`
	Files   []FileFixture   `yaml:"files"`
}

// FileFixture is an inline file; content is stored as given
type FileFixture struct {
	Name        string `yaml:"name"`
	ContentType string `yaml:"content_type"`
	Content     string `yaml:"content"`
}

// LoadFixture parses a fixture file
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}

	var fx Fixture
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}

	return &fx, nil
}

// Applier seeds a fixture through the service layer
type Applier struct {
	Auth    services.AuthService
	Folders services.FolderService
	Files   services.FileService
	Logger  *slog.Logger
}

// Apply registers every user and creates their folder trees and files
func (a *Applier) Apply(ctx context.Context, fx *Fixture) error {
	for _, uf := range fx.Users {
		user, err := a.Auth.Register(ctx, &services.RegisterRequest{
			Email:    uf.Email,
			Password: uf.Password,
		})
		if err != nil {
			return fmt.Errorf("register %s: %w", uf.Email, err)
		}
		a.Logger.Info("seeded user", "email", uf.Email, "id", user.ID)

		if err := a.applyFolders(ctx, user.ID, nil, uf.Folders); err != nil {
			return err
		}
		if err := a.applyFiles(ctx, user.ID, nil, uf.Files); err != nil {
			return err
		}
	}
	return nil
}

func (a *Applier) applyFolders(ctx context.Context, ownerID string, parentID *int64, folders []FolderFixture) error {
	for _, ff := range folders {
		folder, err := a.Folders.CreateFolder(ctx, &services.CreateFolderRequest{
			Name:     ff.Name,
			ParentID: parentID,
			OwnerID:  ownerID,
		})
		if err != nil {
			return fmt.Errorf("create folder %q: %w", ff.Name, err)
		}

		if err := a.applyFolders(ctx, ownerID, &folder.ID, ff.Folders); err != nil {
			return err
		}
		if err := a.applyFiles(ctx, ownerID, &folder.ID, ff.Files); err != nil {
			return err
		}
	}
	return nil
}

func (a *Applier) applyFiles(ctx context.Context, ownerID string, folderID *int64, files []FileFixture) error {
	for _, ff := range files {
		_, err := a.Files.UploadFile(ctx, &services.UploadFileRequest{
			Name:        ff.Name,
			ContentType: ff.ContentType,
			Content:     []byte(ff.Content),
			FolderID:    folderID,
			OwnerID:     ownerID,
		})
		if err != nil {
			return fmt.Errorf("upload file %q: %w", ff.Name, err)
		}
	}
	return nil
}
