package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
// The transport layer maps each kind without inspecting messages.
type HTTPError interface {
	error
	StatusCode() int
}

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
)

// Name validation errors (folders and files share the same rules).
type (
	// EmptyNameError indicates a blank or whitespace-only name
	EmptyNameError struct {
		Kind string // "folder" or "file"
	}

	// NameTooLongError indicates a name exceeding the kind-specific limit
	NameTooLongError struct {
		Kind      string
		Length    int
		MaxLength int
	}

	// InvalidCharactersError indicates a name containing a forbidden character
	InvalidCharactersError struct {
		Kind string
		Name string
	}
)

func (e *EmptyNameError) Error() string {
	return fmt.Sprintf("%s name cannot be empty", e.Kind)
}

func (e *NameTooLongError) Error() string {
	return fmt.Sprintf("%s name cannot be longer than %d characters (got %d)", e.Kind, e.MaxLength, e.Length)
}

func (e *InvalidCharactersError) Error() string {
	return fmt.Sprintf("%s name %q contains invalid characters", e.Kind, e.Name)
}

func (e *EmptyNameError) StatusCode() int         { return http.StatusBadRequest }
func (e *NameTooLongError) StatusCode() int       { return http.StatusBadRequest }
func (e *InvalidCharactersError) StatusCode() int { return http.StatusBadRequest }

func (e *EmptyNameError) Is(target error) bool         { return target == ErrValidation }
func (e *NameTooLongError) Is(target error) bool       { return target == ErrValidation }
func (e *InvalidCharactersError) Is(target error) bool { return target == ErrValidation }

// FileTooLargeError indicates an upload exceeding the configured size cap
type FileTooLargeError struct {
	Size    int64
	MaxSize int64
}

func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf("file of %d bytes exceeds the maximum size of %d bytes", e.Size, e.MaxSize)
}

func (e *FileTooLargeError) StatusCode() int      { return http.StatusRequestEntityTooLarge }
func (e *FileTooLargeError) Is(target error) bool { return target == ErrValidation }

// EmptyFileError indicates an upload with no content
type EmptyFileError struct{}

func (e *EmptyFileError) Error() string        { return "file content cannot be empty" }
func (e *EmptyFileError) StatusCode() int      { return http.StatusBadRequest }
func (e *EmptyFileError) Is(target error) bool { return target == ErrValidation }

// FolderNotFoundError indicates a folder absent (or soft-deleted) for the owner
type FolderNotFoundError struct {
	FolderID int64
}

func (e *FolderNotFoundError) Error() string {
	return fmt.Sprintf("folder %d was not found", e.FolderID)
}

func (e *FolderNotFoundError) StatusCode() int      { return http.StatusNotFound }
func (e *FolderNotFoundError) Is(target error) bool { return target == ErrNotFound }

// FileNotFoundError indicates a file absent (or soft-deleted) for the owner
type FileNotFoundError struct {
	FileID int64
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("file %d was not found", e.FileID)
}

func (e *FileNotFoundError) StatusCode() int      { return http.StatusNotFound }
func (e *FileNotFoundError) Is(target error) bool { return target == ErrNotFound }

// UserAlreadyExistsError indicates a registration with a taken email
type UserAlreadyExistsError struct {
	Email string
}

func (e *UserAlreadyExistsError) Error() string {
	return fmt.Sprintf("a user with email %q already exists", e.Email)
}

func (e *UserAlreadyExistsError) StatusCode() int      { return http.StatusConflict }
func (e *UserAlreadyExistsError) Is(target error) bool { return target == ErrConflict }

// UserNotFoundError indicates an unknown user
type UserNotFoundError struct {
	Email string
}

func (e *UserNotFoundError) Error() string {
	return fmt.Sprintf("user %q was not found", e.Email)
}

func (e *UserNotFoundError) StatusCode() int      { return http.StatusNotFound }
func (e *UserNotFoundError) Is(target error) bool { return target == ErrNotFound }

// TransactionError indicates a rolled-back unit of work. The operation left
// no partial state and is always safe to retry.
type TransactionError struct {
	Op  string
	Err error
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("%s: transaction rolled back: %v", e.Op, e.Err)
}

func (e *TransactionError) StatusCode() int { return http.StatusInternalServerError }
func (e *TransactionError) Unwrap() error   { return e.Err }
