package handler

import (
	"log/slog"
	"net/http"

	"filecrate/internal/domain/services"
	"filecrate/internal/httputil"
)

// FolderHandler handles folder HTTP requests
type FolderHandler struct {
	folderService services.FolderService
	fileService   services.FileService
	logger        *slog.Logger
}

// NewFolderHandler creates a new folder handler
func NewFolderHandler(folderService services.FolderService, fileService services.FileService, logger *slog.Logger) *FolderHandler {
	return &FolderHandler{
		folderService: folderService,
		fileService:   fileService,
		logger:        logger,
	}
}

// Create creates a new folder
// POST /api/folders
func (h *FolderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req services.CreateFolderRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.OwnerID = httputil.GetOwnerID(r)

	folder, err := h.folderService.CreateFolder(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, folder)
}

// Get retrieves a folder by ID
// GET /api/folders/{id}
func (h *FolderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	folder, err := h.folderService.GetFolder(r.Context(), id, httputil.GetOwnerID(r))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, folder)
}

// ListAll lists every folder of the caller
// GET /api/folders
func (h *FolderHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	folders, err := h.folderService.ListAll(r.Context(), httputil.GetOwnerID(r))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, folders)
}

// ListRoot lists the caller's root-level folders
// GET /api/folders/root
func (h *FolderHandler) ListRoot(w http.ResponseWriter, r *http.Request) {
	folders, err := h.folderService.ListRoot(r.Context(), httputil.GetOwnerID(r))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, folders)
}

// ListChildren lists immediate subfolders
// GET /api/folders/{id}/children
func (h *FolderHandler) ListChildren(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	folders, err := h.folderService.ListChildren(r.Context(), id, httputil.GetOwnerID(r))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, folders)
}

// ListFiles lists the files in a folder
// GET /api/folders/{id}/files
func (h *FolderHandler) ListFiles(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	files, err := h.fileService.ListFilesInFolder(r.Context(), id, httputil.GetOwnerID(r))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, files)
}

// renameRequest is the body for folder renames
type renameRequest struct {
	Name string `json:"name"`
}

// Rename renames a folder
// PATCH /api/folders/{id}
func (h *FolderHandler) Rename(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req renameRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.folderService.RenameFolder(r.Context(), id, req.Name, httputil.GetOwnerID(r)); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Delete soft-deletes a folder subtree
// DELETE /api/folders/{id}
func (h *FolderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.folderService.DeleteFolder(r.Context(), id, httputil.GetOwnerID(r)); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
