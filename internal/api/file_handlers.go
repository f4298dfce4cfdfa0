package api

import (
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"panel-rekordow/internal/database"
	"panel-rekordow/internal/storage"

	"github.com/go-chi/chi/v5"
)

const multipartMemory = 32 << 20

type CreateFileRequest struct {
	Name string `json:"name" example:"report.pdf"`
	Size int64  `json:"size" example:"2048"`
	Type string `json:"type" example:"application/pdf"`
}

// @Summary      Upload a file
// @Description  Multipart upload (field "file") stores the content and its record. A JSON body registers the record only.
// @Tags         files
// @Accept       mpfd
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file               false  "File to upload"
// @Param        meta  body      CreateFileRequest  false  "Metadata-only registration"
// @Success      201   {object}  models.File
// @Failure      400   {string}  string "Bad Request"
// @Failure      413   {string}  string "File too large"
// @Failure      500   {string}  string "Internal Server Error"
// @Router       /files [post]
func (s *Server) CreateFileHandler(w http.ResponseWriter, r *http.Request) {
	if isJSON(r) {
		s.registerFileHandler(w, r)
		return
	}

	if s.config.Upload.MaxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.config.Upload.MaxBytes)
	}

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "File too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "Error parsing multipart form", http.StatusBadRequest)
		return
	}

	file, handler, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "Error retrieving the file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	record, err := s.store.CreateFile(r.Context(), database.CreateFileParams{
		Name: handler.Filename,
		Size: handler.Size,
		Type: handler.Header.Get("Content-Type"),
	})
	if err != nil {
		storeError(w, r, err, "Failed to create file record")
		return
	}

	if err := s.storage.Save(r.Context(), record.ID, file, record.Size, record.Type); err != nil {
		slog.ErrorContext(r.Context(), "failed to save file content", "file_id", record.ID, "error", err)
		if delErr := s.store.DeleteFile(r.Context(), record.ID); delErr != nil {
			slog.WarnContext(r.Context(), "failed to roll back file record", "file_id", record.ID, "error", delErr)
		}
		http.Error(w, "Failed to save file", http.StatusInternalServerError)
		return
	}

	s.publishEvent(r.Context(), EventFileCreated, record)
	writeJSON(w, http.StatusCreated, record)
}

func (s *Server) registerFileHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateFileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	record, err := s.store.CreateFile(r.Context(), database.CreateFileParams{
		Name: req.Name,
		Size: req.Size,
		Type: req.Type,
	})
	if err != nil {
		storeError(w, r, err, "Failed to create file record")
		return
	}

	s.publishEvent(r.Context(), EventFileCreated, record)
	writeJSON(w, http.StatusCreated, record)
}

func isJSON(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/json"
}

// @Summary      List files
// @Tags         files
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   models.File
// @Failure      500  {string}  string "Internal Server Error"
// @Router       /files [get]
func (s *Server) ListFilesHandler(w http.ResponseWriter, r *http.Request) {
	files, err := s.store.ListFiles(r.Context())
	if err != nil {
		storeError(w, r, err, "Failed to list files")
		return
	}

	writeJSON(w, http.StatusOK, files)
}

// @Summary      Get a file record
// @Tags         files
// @Produce      json
// @Security     BearerAuth
// @Param        fileId  path      string  true  "File ID"
// @Success      200     {object}  models.File
// @Failure      404     {string}  string "File not found"
// @Failure      500     {string}  string "Internal Server Error"
// @Router       /files/{fileId} [get]
func (s *Server) GetFileHandler(w http.ResponseWriter, r *http.Request) {
	fileID := chi.URLParam(r, "fileId")

	file, err := s.store.GetFile(r.Context(), fileID)
	if err != nil {
		storeError(w, r, err, "Failed to retrieve file metadata")
		return
	}
	if file == nil {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, file)
}

// @Summary      Download file content
// @Tags         files
// @Produce      octet-stream
// @Security     BearerAuth
// @Param        fileId  path      string  true  "File ID"
// @Success      200     {file}    file
// @Failure      404     {string}  string "File not found"
// @Failure      500     {string}  string "Internal Server Error"
// @Router       /files/{fileId}/content [get]
func (s *Server) DownloadFileHandler(w http.ResponseWriter, r *http.Request) {
	fileID := chi.URLParam(r, "fileId")

	file, err := s.store.GetFile(r.Context(), fileID)
	if err != nil {
		storeError(w, r, err, "Failed to retrieve file metadata")
		return
	}
	if file == nil {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}

	fileStream, err := s.storage.Get(r.Context(), file.ID)
	if err != nil {
		if errors.Is(err, storage.ErrBlobNotFound) {
			http.Error(w, "File content not available", http.StatusNotFound)
			return
		}
		slog.ErrorContext(r.Context(), "failed to open file content", "file_id", file.ID, "error", err)
		http.Error(w, "Failed to read file", http.StatusInternalServerError)
		return
	}
	defer fileStream.Close()

	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": file.Name}))
	if strings.TrimSpace(file.Type) != "" {
		w.Header().Set("Content-Type", file.Type)
	} else {
		w.Header().Set("Content-Type", "application/octet-stream")
	}
	w.Header().Set("Content-Length", strconv.FormatInt(file.Size, 10))

	if _, err := io.Copy(w, fileStream); err != nil {
		slog.WarnContext(r.Context(), "file download interrupted", "file_id", file.ID, "error", err)
	}
}

// @Summary      Delete a file
// @Description  Removes the record and its stored content. Deleting an id that does not exist also succeeds and still broadcasts file_deleted.
// @Tags         files
// @Security     BearerAuth
// @Param        fileId  path      string  true  "File ID"
// @Success      204     {null}    nil "No Content"
// @Failure      500     {string}  string "Internal Server Error"
// @Router       /files/{fileId} [delete]
func (s *Server) DeleteFileHandler(w http.ResponseWriter, r *http.Request) {
	fileID := chi.URLParam(r, "fileId")
	if fileID == "" {
		http.Error(w, "File ID is required", http.StatusBadRequest)
		return
	}

	if err := s.store.DeleteFile(r.Context(), fileID); err != nil {
		storeError(w, r, err, "Failed to delete file")
		return
	}

	if err := s.storage.Delete(r.Context(), fileID); err != nil {
		slog.WarnContext(r.Context(), "failed to delete file content", "file_id", fileID, "error", err)
	}

	s.publishEvent(r.Context(), EventFileDeleted, deletedPayload{ID: fileID})
	w.WriteHeader(http.StatusNoContent)
}
