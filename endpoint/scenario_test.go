package endpoint

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/carepulse/carepulse-api/model"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPatientDoctorFlow walks one booking through its whole life: the patient
// registers, finds a doctor in the public directory, books, the doctor sees
// and confirms the appointment, and the patient sees the new status.
func TestPatientDoctorFlow(t *testing.T) {
	r, _ := setupTestRouter(t)

	doctorToken, doctorID := registerTestDoctor(t, r, "Dr. Rao", "rao@example.com")
	patientToken, _ := registerTestPatient(t, r, "Amit Sharma", "amit@example.com")

	// Patient browses the directory without credentials.
	w := doJSON(r, http.MethodGet, "/api/appointments/doctors", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	var directory []map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &directory))
	require.Len(t, directory, 1)
	assert.Equal(t, "Dr. Rao", directory[0]["name"])

	// Patient books.
	apptID := bookTestAppointment(t, r, patientToken, doctorID, "2025-03-01", "09:30")

	// Doctor sees it pending.
	w = doJSON(r, http.MethodGet, "/api/appointments/doctor/all", nil, doctorToken)
	require.Equal(t, http.StatusOK, w.Code)
	env = decodeEnvelope(t, w)
	var doctorView []map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &doctorView))
	require.Len(t, doctorView, 1)
	assert.Equal(t, "pending", doctorView[0]["status"])
	assert.Equal(t, "Amit Sharma", doctorView[0]["patient_name"])

	// Doctor confirms with a note.
	w = doJSON(r, http.MethodPut, fmt.Sprintf("/api/appointments/doctor/update/%d", apptID), gin.H{
		"status": "confirmed",
		"notes":  "Fasting bloodwork before the visit",
	}, doctorToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Patient sees the confirmed status and the note.
	w = doJSON(r, http.MethodGet, "/api/appointments/my", nil, patientToken)
	require.Equal(t, http.StatusOK, w.Code)
	env = decodeEnvelope(t, w)
	var patientView []map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &patientView))
	require.Len(t, patientView, 1)
	assert.Equal(t, model.AppointmentStatusConfirmed, patientView[0]["status"])
	assert.Equal(t, "Fasting bloodwork before the visit", patientView[0]["notes"])
	assert.Equal(t, "Dr. Rao", patientView[0]["doctor_name"])
}
