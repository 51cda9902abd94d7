package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	_ "modernc.org/sqlite"

	"dentalms/internal/domain/doctors"
	"dentalms/internal/domain/files"
	"dentalms/internal/domain/patients"
	"dentalms/internal/middleware"
	jwtsvc "dentalms/internal/pkg/jwt"
)

type TestResponse struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *ErrorDetail           `json:"error,omitempty"`
	Message string                 `json:"message,omitempty"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Reason  string `json:"reason,omitempty"`
}

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:e2e_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{DriverName: "sqlite", DSN: dsn}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	require.NoError(t, err, "Failed to connect to test database")

	require.NoError(t, db.AutoMigrate(&doctors.Doctor{}, &patients.Patient{}, &files.File{}))

	store, err := files.NewDiskStore(t.TempDir())
	require.NoError(t, err)

	j := jwtsvc.New("e2e-secret", time.Hour)

	doctorService := doctors.NewService(doctors.NewRepository(db), j)
	patientService := patients.NewService(patients.NewRepository(db))
	fileService := files.NewService(files.NewRepository(db), store, patientService, []string{"xray", "prescription"}, 1<<20)

	router := gin.New()
	router.Use(middleware.ErrorLogger())

	headerAuth := middleware.JWTAuth(j)
	dualAuth := middleware.JWTAuthWithQueryToken(j, "token")

	v1 := router.Group("/api/v1")
	doctors.RegisterRoutes(v1, doctors.NewHandler(doctorService))

	protected := v1.Group("/")
	protected.Use(headerAuth)
	patients.RegisterRoutes(protected, patients.NewHandler(patientService))

	files.RegisterRoutes(v1, files.NewHandler(fileService), headerAuth, dualAuth)

	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func parse(t *testing.T, w *httptest.ResponseRecorder) TestResponse {
	t.Helper()
	var resp TestResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestFullClinicalFlow(t *testing.T) {
	router := setupRouter(t)

	// Register and log in a doctor.
	w := doJSON(t, router, "POST", "/api/v1/auth/register", "",
		map[string]string{"username": "drsmith", "password": "secret-pass"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, "POST", "/api/v1/auth/login", "",
		map[string]string{"username": "drsmith", "password": "secret-pass"})
	require.Equal(t, http.StatusOK, w.Code)
	token, _ := parse(t, w).Data["token"].(string)
	require.NotEmpty(t, token)

	// Create a patient.
	w = doJSON(t, router, "POST", "/api/v1/patients", token,
		map[string]string{"name": "Alice Morgan", "dob": "1988-04-12", "unique_id": "P-0001"})
	require.Equal(t, http.StatusCreated, w.Code)
	patientID := int64(parse(t, w).Data["id"].(float64))

	// Upload an x-ray for the patient.
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "molar.png")
	require.NoError(t, err)
	_, err = fw.Write([]byte("image bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("file_type", "xray"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", fmt.Sprintf("/api/v1/files/upload/%d", patientID), &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	up := httptest.NewRecorder()
	router.ServeHTTP(up, req)
	require.Equal(t, http.StatusCreated, up.Code)
	fileID := int64(parse(t, up).Data["id"].(float64))

	// The patient list now reports one file.
	w = doJSON(t, router, "GET", "/api/v1/patients", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"file_count":1`)

	// Download it back, byte-identical.
	req = httptest.NewRequest("GET", fmt.Sprintf("/api/v1/files/download/%d", fileID), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	dl := httptest.NewRecorder()
	router.ServeHTTP(dl, req)
	require.Equal(t, http.StatusOK, dl.Code)
	assert.Equal(t, []byte("image bytes"), dl.Body.Bytes())

	// Export the archive.
	req = httptest.NewRequest("GET", fmt.Sprintf("/api/v1/files/download-all/%d", patientID), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	zipw := httptest.NewRecorder()
	router.ServeHTTP(zipw, req)
	require.Equal(t, http.StatusOK, zipw.Code)
	assert.Equal(t, "application/zip", zipw.Header().Get("Content-Type"))

	// Delete, then confirm the second delete 404s.
	w = doJSON(t, router, "DELETE", fmt.Sprintf("/api/v1/files/delete/%d", fileID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, router, "DELETE", fmt.Sprintf("/api/v1/files/delete/%d", fileID), token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestUploadForUnknownPatientFails(t *testing.T) {
	router := setupRouter(t)

	w := doJSON(t, router, "POST", "/api/v1/auth/register", "",
		map[string]string{"username": "drsmith", "password": "secret-pass"})
	require.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(t, router, "POST", "/api/v1/auth/login", "",
		map[string]string{"username": "drsmith", "password": "secret-pass"})
	token, _ := parse(t, w).Data["token"].(string)
	require.NotEmpty(t, token)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "molar.png")
	require.NoError(t, err)
	_, err = fw.Write([]byte("image bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("file_type", "xray"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/api/v1/files/upload/424242", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	up := httptest.NewRecorder()
	router.ServeHTTP(up, req)

	assert.Equal(t, http.StatusNotFound, up.Code)
	assert.Contains(t, up.Body.String(), "Patient not found")
}

func TestProtectedRoutesRejectAnonymous(t *testing.T) {
	router := setupRouter(t)

	w := doJSON(t, router, "GET", "/api/v1/patients", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, "GET", "/api/v1/files/list/1", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, "GET", "/api/v1/files/download/1", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
