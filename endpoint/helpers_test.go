package endpoint

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/carepulse/carepulse-api/middleware"
	"github.com/carepulse/carepulse-api/model"
	"github.com/carepulse/carepulse-api/util"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// apiEnvelope mirrors util.APIResponse with raw data for per-test decoding.
type apiEnvelope struct {
	Success bool            `json:"success"`
	Error   string          `json:"error"`
	Msg     string          `json:"msg"`
	Data    json.RawMessage `json:"data"`
}

// setupTestRouter builds an in-memory database and a router with the same
// route table the server uses, minus rate limiting and request logging.
func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	util.SetJWTSecret("endpoint-test-secret")
	util.InitAccountEmailCache(100)

	dsn := fmt.Sprintf("file:endpoint_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "failed to open test database")
	require.NoError(t, db.AutoMigrate(
		&model.Patient{},
		&model.Doctor{},
		&model.Appointment{},
		&model.Symptom{},
		&model.Prescription{},
	), "failed to migrate test database")

	r := gin.New()
	r.Use(middleware.DatabaseMiddleware(db))

	auth := r.Group("/api/auth")
	auth.POST("/register", RegisterPatient)
	auth.POST("/login", LoginPatient)
	auth.GET("/profile", middleware.RequireAuth(), middleware.RequireRole(util.RolePatient), GetPatientProfile)

	doctor := r.Group("/api/doctor")
	doctor.POST("/register", RegisterDoctor)
	doctor.POST("/login", LoginDoctor)

	appointments := r.Group("/api/appointments")
	appointments.GET("/doctors", ListDoctors)
	patientAppt := appointments.Group("", middleware.RequireAuth(), middleware.RequireRole(util.RolePatient))
	patientAppt.POST("/book", BookAppointment)
	patientAppt.GET("/my", ListMyAppointments)
	doctorAppt := appointments.Group("/doctor", middleware.RequireAuth(), middleware.RequireRole(util.RoleDoctor))
	doctorAppt.GET("/all", ListDoctorAppointments)
	doctorAppt.GET("/patients", ListDoctorPatients)
	doctorAppt.GET("/stats", GetDoctorStats)
	doctorAppt.PUT("/update/:id", UpdateAppointment)

	symptoms := r.Group("/api/symptoms")
	symptoms.GET("/all", middleware.RequireAuth(), middleware.RequireRole(util.RoleDoctor), ListAllSymptoms)
	patientSym := symptoms.Group("", middleware.RequireAuth(), middleware.RequireRole(util.RolePatient))
	patientSym.POST("/add", AddSymptom)
	patientSym.GET("/my", ListMySymptoms)
	patientSym.PUT("/:id", UpdateSymptom)
	patientSym.DELETE("/:id", DeleteSymptom)

	storage := r.Group("/api/storage", middleware.RequireAuth(), middleware.RequireRole(util.RolePatient))
	storage.POST("/upload", UploadPrescription)
	storage.GET("/", ListPrescriptions)

	r.POST("/api/chat", middleware.RequireAuth(), Chat)

	return r, db
}

// doJSON performs a request with an optional JSON body and bearer token.
func doJSON(r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), "response was not a valid envelope: %s", w.Body.String())
	return env
}

// tokenAndUser decodes a {token, user} auth payload from a response envelope.
func tokenAndUser(t *testing.T, w *httptest.ResponseRecorder) (string, map[string]interface{}) {
	t.Helper()
	env := decodeEnvelope(t, w)
	var payload struct {
		Token string                 `json:"token"`
		User  map[string]interface{} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	return payload.Token, payload.User
}

// registerTestPatient creates a patient through the API and returns its token and id.
func registerTestPatient(t *testing.T, r *gin.Engine, name, email string) (string, uint) {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/api/auth/register", gin.H{
		"name":     name,
		"email":    email,
		"password": "password123",
		"age":      30,
		"gender":   "Male",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, "patient registration failed: %s", w.Body.String())
	token, user := tokenAndUser(t, w)
	require.NotEmpty(t, token)
	id, _ := user["id"].(float64)
	return token, uint(id)
}

// registerTestDoctor creates a doctor through the API and returns its token and id.
func registerTestDoctor(t *testing.T, r *gin.Engine, name, email string) (string, uint) {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/api/doctor/register", gin.H{
		"name":           name,
		"email":          email,
		"password":       "password123",
		"specialization": "Cardiology",
		"experience":     12,
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, "doctor registration failed: %s", w.Body.String())
	token, user := tokenAndUser(t, w)
	require.NotEmpty(t, token)
	id, _ := user["id"].(float64)
	return token, uint(id)
}

// bookTestAppointment books an appointment and returns its id.
func bookTestAppointment(t *testing.T, r *gin.Engine, patientToken string, doctorID uint, date, timeOfDay string) uint {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/api/appointments/book", gin.H{
		"doctorId": doctorID,
		"date":     date,
		"time":     timeOfDay,
		"reason":   "Checkup",
	}, patientToken)
	require.Equal(t, http.StatusCreated, w.Code, "booking failed: %s", w.Body.String())
	env := decodeEnvelope(t, w)
	var appt model.Appointment
	require.NoError(t, json.Unmarshal(env.Data, &appt))
	return appt.ID
}
