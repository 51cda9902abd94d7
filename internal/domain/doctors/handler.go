package doctors

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"dentalms/internal/pkg/response"
	"dentalms/internal/pkg/validator"
)

// Handler handles HTTP requests for doctor accounts.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register godoc
// @Summary Register a doctor account
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "payload"
// @Success 201 {object} map[string]interface{}
// @Failure 400,500 {object} map[string]interface{}
// @Router /auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if fieldErrs := validator.Validate(req); fieldErrs != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid username or password format")
		return
	}

	d, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrDoctorExists) {
			response.Error(c, http.StatusBadRequest, "DOCTOR_EXISTS", "Doctor already exists")
			return
		}
		response.Error(c, http.StatusInternalServerError, "REGISTRATION_FAILED", "Server error")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"id":       d.ID,
		"username": d.Username,
	})
}

// Login godoc
// @Summary Log in and receive a bearer token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "payload"
// @Success 200 {object} map[string]interface{}
// @Failure 400,500 {object} map[string]interface{}
// @Router /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	token, d, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Error(c, http.StatusBadRequest, "INVALID_CREDENTIALS", "Invalid credentials")
			return
		}
		response.Error(c, http.StatusInternalServerError, "LOGIN_FAILED", "Server error")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"token":    token,
		"username": d.Username,
	})
}
