package patients

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"dentalms/internal/pkg/response"
	"dentalms/internal/pkg/validator"
)

// Handler handles HTTP requests for patient records.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create godoc
// @Summary Register a new patient
// @Tags Patients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreatePatientRequest true "payload"
// @Success 201 {object} map[string]interface{}
// @Failure 400,409,500 {object} map[string]interface{}
// @Router /patients [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if fieldErrs := validator.Validate(req); fieldErrs != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid patient fields")
		return
	}

	p, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrDuplicateID) {
			response.Error(c, http.StatusConflict, "DUPLICATE_ID", "This unique id is already registered")
			return
		}
		response.Error(c, http.StatusInternalServerError, "CREATE_FAILED", "Server error")
		return
	}

	response.Success(c, http.StatusCreated, p)
}

// List godoc
// @Summary List all patients with their file counts
// @Tags Patients
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /patients [get]
func (h *Handler) List(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "LIST_FAILED", "Server error")
		return
	}
	response.Success(c, http.StatusOK, list)
}

// GetByID godoc
// @Summary Get a patient by id
// @Tags Patients
// @Produce json
// @Security BearerAuth
// @Param id path int true "Patient ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /patients/{id} [get]
func (h *Handler) GetByID(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrPatientNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Patient not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "GET_FAILED", "Server error")
		return
	}
	response.Success(c, http.StatusOK, p)
}

// Delete godoc
// @Summary Delete a patient record
// @Description Removes the patient record only. Stored files keep their own lifecycle.
// @Tags Patients
// @Produce json
// @Security BearerAuth
// @Param id path int true "Patient ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404,500 {object} map[string]interface{}
// @Router /patients/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrPatientNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Patient not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "DELETE_FAILED", "Server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Patient deleted successfully"})
}

// CheckID godoc
// @Summary Check whether a unique id is already registered
// @Tags Patients
// @Produce json
// @Security BearerAuth
// @Param unique_id query string true "Unique ID to probe"
// @Success 200 {object} map[string]interface{}
// @Router /patients/check-id [get]
func (h *Handler) CheckID(c *gin.Context) {
	uniqueID := c.Query("unique_id")
	if uniqueID == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "unique_id is required")
		return
	}

	exists, err := h.service.UniqueIDExists(c.Request.Context(), uniqueID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "CHECK_FAILED", "Server error")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"exists": exists})
}

func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid patient ID")
		return 0, false
	}
	return id, true
}
