package files

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"

	"dentalms/internal/pkg/response"
)

// Handler handles HTTP requests for patient files.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Upload godoc
// @Summary Upload a file for a patient
// @Description Stores an x-ray, prescription or receipt for the patient and records its metadata.
// @Tags Files
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param patientId path int true "Patient ID"
// @Param file formData file true "File to upload"
// @Param file_type formData string true "File type (whitelisted)"
// @Success 201 {object} map[string]interface{}
// @Failure 400,401,404,500 {object} map[string]interface{}
// @Router /files/upload/{patientId} [post]
func (h *Handler) Upload(c *gin.Context) {
	patientID, ok := paramID(c, "patientId")
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "File upload failed")
		return
	}
	fileType := c.PostForm("file_type")

	file, err := h.service.Upload(c.Request.Context(), patientID, fileType, fileHeader)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyFile):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "File is empty")
		case errors.Is(err, ErrFileTooLarge):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "File exceeds maximum allowed size")
		case errors.Is(err, ErrInvalidFileType):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid file type")
		case errors.Is(err, ErrPatientNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Patient not found")
		default:
			response.Error(c, http.StatusInternalServerError, "UPLOAD_FAILED", "Server error")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"id":          file.ID,
		"patient_id":  file.PatientID,
		"file_type":   file.FileType,
		"uploaded_at": file.UploadedAt,
	})
}

// List godoc
// @Summary List a patient's files
// @Tags Files
// @Produce json
// @Security BearerAuth
// @Param patientId path int true "Patient ID"
// @Success 200 {object} map[string]interface{}
// @Router /files/list/{patientId} [get]
func (h *Handler) List(c *gin.Context) {
	patientID, ok := paramID(c, "patientId")
	if !ok {
		return
	}

	list, err := h.service.ListByPatient(c.Request.Context(), patientID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "LIST_FAILED", "Server error")
		return
	}

	items := make([]gin.H, 0, len(list))
	for _, f := range list {
		items = append(items, gin.H{
			"id":          f.ID,
			"file_type":   f.FileType,
			"uploaded_at": f.UploadedAt,
		})
	}
	response.Success(c, http.StatusOK, items)
}

// Download godoc
// @Summary Download a file
// @Description Streams the file inline so images and PDFs render in the browser. Pass disposition=attachment to force a download. The token may come from the Authorization header or a token query parameter.
// @Tags Files
// @Produce octet-stream
// @Security BearerAuth
// @Param fileId path int true "File ID"
// @Param disposition query string false "inline (default) or attachment"
// @Success 200 {file} binary
// @Failure 401,403,404 {object} map[string]interface{}
// @Router /files/download/{fileId} [get]
func (h *Handler) Download(c *gin.Context) {
	fileID, ok := paramID(c, "fileId")
	if !ok {
		return
	}

	_, absPath, err := h.service.Resolve(c.Request.Context(), fileID)
	if err != nil {
		switch {
		case errors.Is(err, ErrFileNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "File not found")
		case errors.Is(err, ErrFileMissing):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "File missing from server")
		default:
			response.Error(c, http.StatusInternalServerError, "DOWNLOAD_FAILED", "Server error")
		}
		return
	}

	disposition := "inline"
	if c.Query("disposition") == "attachment" {
		disposition = "attachment"
	}
	c.Header("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, filepath.Base(absPath)))
	c.File(absPath)
}

// Delete godoc
// @Summary Delete a file (blob + record)
// @Tags Files
// @Produce json
// @Security BearerAuth
// @Param fileId path int true "File ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404,500 {object} map[string]interface{}
// @Router /files/delete/{fileId} [delete]
func (h *Handler) Delete(c *gin.Context) {
	fileID, ok := paramID(c, "fileId")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), fileID); err != nil {
		if errors.Is(err, ErrFileNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "File not found")
		} else {
			response.Error(c, http.StatusInternalServerError, "DELETE_FAILED", "Server error")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "File deleted successfully"})
}

// DownloadAll godoc
// @Summary Download all of a patient's files as a zip
// @Tags Files
// @Produce application/zip
// @Security BearerAuth
// @Param patientId path int true "Patient ID"
// @Success 200 {file} binary
// @Failure 404,500 {object} map[string]interface{}
// @Router /files/download-all/{patientId} [get]
func (h *Handler) DownloadAll(c *gin.Context) {
	patientID, ok := paramID(c, "patientId")
	if !ok {
		return
	}

	// Headers are not flushed until the first body write, so they can still
	// be replaced if the export fails before streaming starts.
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=patient_%d_files.zip", patientID))
	c.Header("Content-Type", "application/zip")

	err := h.service.ExportArchive(c.Request.Context(), patientID, c.Writer)
	if err == nil {
		return
	}

	if c.Writer.Written() {
		// Bytes already went out; a success-shaped JSON body would lie.
		// Best effort: log and cut the stream.
		log.Printf("archive export aborted mid-stream patient_id=%d: %v", patientID, err)
		c.Abort()
		return
	}

	c.Writer.Header().Del("Content-Disposition")
	c.Writer.Header().Del("Content-Type")
	if errors.Is(err, ErrNoFiles) {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "No files found for this patient")
		return
	}
	response.Error(c, http.StatusInternalServerError, "EXPORT_FAILED", "Server error")
}

func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid "+name)
		return 0, false
	}
	return id, true
}
