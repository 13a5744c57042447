package handler

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"filecrate/internal/config"
	"filecrate/internal/domain/services"
	"filecrate/internal/httputil"
)

// FileHandler handles file HTTP requests
type FileHandler struct {
	fileService services.FileService
	logger      *slog.Logger
}

// NewFileHandler creates a new file handler
func NewFileHandler(fileService services.FileService, logger *slog.Logger) *FileHandler {
	return &FileHandler{
		fileService: fileService,
		logger:      logger,
	}
}

// Upload stores a file from a multipart form. The form carries the file
// under "file" and an optional "folder_id" field.
// POST /api/files
func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	// Cap slightly above the content limit so the service can report
	// an oversized file as FileTooLarge instead of a broken form read.
	r.Body = http.MaxBytesReader(w, r.Body, config.MaxFileSizeBytes+1<<20)

	part, header, err := r.FormFile("file")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer part.Close()

	content, err := io.ReadAll(part)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "unreadable file content")
		return
	}

	req := services.UploadFileRequest{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Content:     content,
		OwnerID:     httputil.GetOwnerID(r),
	}

	if raw := r.FormValue("folder_id"); raw != "" {
		folderID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			httputil.RespondError(w, http.StatusBadRequest, "invalid folder_id")
			return
		}
		req.FolderID = &folderID
	}

	file, err := h.fileService.UploadFile(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, file)
}

// Get retrieves file metadata
// GET /api/files/{id}
func (h *FileHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	file, err := h.fileService.GetFile(r.Context(), id, httputil.GetOwnerID(r))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, file)
}

// Download streams the file content
// GET /api/files/{id}/download
func (h *FileHandler) Download(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	download, err := h.fileService.DownloadFile(r.Context(), id, httputil.GetOwnerID(r))
	if err != nil {
		handleError(w, err)
		return
	}

	w.Header().Set("Content-Type", download.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", download.Name))
	w.Header().Set("Content-Length", strconv.Itoa(len(download.Content)))
	w.Write(download.Content)
}

// ListRoot lists the caller's files outside any folder
// GET /api/files/root
func (h *FileHandler) ListRoot(w http.ResponseWriter, r *http.Request) {
	files, err := h.fileService.ListRootFiles(r.Context(), httputil.GetOwnerID(r))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, files)
}

// Delete soft-deletes a file
// DELETE /api/files/{id}
func (h *FileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.fileService.DeleteFile(r.Context(), id, httputil.GetOwnerID(r)); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
