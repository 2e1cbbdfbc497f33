package endpoint

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/carepulse/carepulse-api/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadPrescription_MissingFile(t *testing.T) {
	r, _ := setupTestRouter(t)
	token, _ := registerTestPatient(t, r, "Amit Sharma", "amit@example.com")

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	require.NoError(t, mw.WriteField("notfile", "value"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/storage/upload", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, "Missing file in upload", env.Msg)
}

func TestUploadPrescription_StoreNotConfigured(t *testing.T) {
	r, _ := setupTestRouter(t)
	token, _ := registerTestPatient(t, r, "Amit Sharma", "amit@example.com")

	SetDocumentStore(nil)

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	part, err := mw.CreateFormFile("file", "report.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4 test"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/storage/upload", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestListPrescriptions_ScopedToCaller(t *testing.T) {
	r, db := setupTestRouter(t)
	amitToken, amitID := registerTestPatient(t, r, "Amit Sharma", "amit@example.com")
	_, priyaID := registerTestPatient(t, r, "Priya Singh", "priya@example.com")

	require.NoError(t, db.Create(&model.Prescription{
		PatientID: amitID,
		FileName:  "report.pdf",
		ObjectKey: "patient-1/report-abcd.pdf",
		URL:       "http://storage.local/prescriptions/patient-1/report-abcd.pdf",
	}).Error)
	require.NoError(t, db.Create(&model.Prescription{
		PatientID: priyaID,
		FileName:  "scan.pdf",
		ObjectKey: "patient-2/scan-ef01.pdf",
		URL:       "http://storage.local/prescriptions/patient-2/scan-ef01.pdf",
	}).Error)

	w := doJSON(r, http.MethodGet, "/api/storage/", nil, amitToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	env := decodeEnvelope(t, w)
	var docs []model.Prescription
	require.NoError(t, json.Unmarshal(env.Data, &docs))
	require.Len(t, docs, 1)
	assert.Equal(t, "report.pdf", docs[0].FileName)
}

func TestStorage_RequiresAuth(t *testing.T) {
	r, _ := setupTestRouter(t)

	w := doJSON(r, http.MethodGet, "/api/storage/", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
