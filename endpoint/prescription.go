package endpoint

import (
	"fmt"

	"github.com/carepulse/carepulse-api/model"
	"github.com/carepulse/carepulse-api/util"
	"github.com/gin-gonic/gin"
)

// documentStore is the process-wide MinIO-backed store, set during startup.
// Upload requests fail with 500 when object storage was not configured.
var documentStore *util.DocumentStore

// SetDocumentStore wires the MinIO document store into the upload handlers.
func SetDocumentStore(store *util.DocumentStore) {
	documentStore = store
}

// UploadPrescription godoc
// @Summary      Upload a prescription document
// @Description  Stores the multipart "file" part in object storage and records it for the caller
// @Tags         Storage
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file formData file true "Document to upload"
// @Success      201 {object} util.APIResponse{data=model.Prescription} "Document uploaded"
// @Failure      400 {object} util.APIResponse "Missing file part"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      500 {object} util.APIResponse "Storage error"
// @Router       /api/storage/upload [post]
func UploadPrescription(c *gin.Context) {
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	patientID, ok := getAccountIDOrRespond(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		util.CallUserError(c, util.APIErrorParams{Msg: "Missing file in upload", Err: err})
		return
	}

	if documentStore == nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Document storage not available", Err: fmt.Errorf("storage is not configured")})
		return
	}

	key, publicURL, err := documentStore.UploadDocument(c.Request.Context(), fileHeader, patientID)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to upload document", Err: err})
		return
	}

	prescription := model.Prescription{
		PatientID: patientID,
		FileName:  fileHeader.Filename,
		ObjectKey: key,
		URL:       publicURL,
	}
	if err := db.Create(&prescription).Error; err != nil {
		// The object is already in the bucket; remove it so storage does not
		// accumulate records the database knows nothing about.
		_ = documentStore.DeleteDocument(c.Request.Context(), key)
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to record document", Err: err})
		return
	}

	util.LogSecurityEvent(util.SecurityEvent{
		EventType: util.EventDocumentUploaded,
		UserID:    fmt.Sprintf("patient:%d", patientID),
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		Message:   fmt.Sprintf("Uploaded document %s", fileHeader.Filename),
	})

	util.CallSuccessCreated(c, util.APISuccessParams{
		Msg:  "Document uploaded",
		Data: prescription,
	})
}

// ListPrescriptions godoc
// @Summary      List the authenticated patient's uploaded documents
// @Tags         Storage
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} util.APIResponse "Documents retrieved"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /api/storage/ [get]
func ListPrescriptions(c *gin.Context) {
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	patientID, ok := getAccountIDOrRespond(c)
	if !ok {
		return
	}

	var documents []model.Prescription
	if err := db.Where("patient_id = ?", patientID).Order("created_at DESC").Find(&documents).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to retrieve documents", Err: err})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Documents retrieved",
		Data: documents,
	})
}
