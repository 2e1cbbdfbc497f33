package endpoint

import (
	"fmt"
	"time"

	"github.com/carepulse/carepulse-api/model"
	"github.com/carepulse/carepulse-api/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type symptomRequest struct {
	Date     string `json:"date" example:"2025-01-08"`
	Mood     string `json:"mood" example:"tired"`
	Symptoms string `json:"symptoms" binding:"required" example:"headache, mild fever"`
	Notes    string `json:"notes"`
}

// updateSymptomRequest accepts any subset of fields; absent fields keep
// their stored values.
type updateSymptomRequest struct {
	Date     string `json:"date" example:"2025-01-08"`
	Mood     string `json:"mood" example:"better"`
	Symptoms string `json:"symptoms" example:"headache, mild fever"`
	Notes    string `json:"notes"`
}

// symptomWithPatient joins the owner's profile onto an entry for the
// doctor-facing listing.
type symptomWithPatient struct {
	model.Symptom
	PatientName   string `json:"patient_name"`
	PatientEmail  string `json:"patient_email"`
	PatientAge    int    `json:"patient_age"`
	PatientGender string `json:"patient_gender"`
}

// loadOwnedSymptom fetches the entry and enforces that it belongs to the
// caller. Responds 404 when absent and 403 on ownership mismatch.
func loadOwnedSymptom(c *gin.Context, db *gorm.DB, entryID string, patientID uint) (model.Symptom, bool) {
	var entry model.Symptom
	err := db.First(&entry, "id = ?", entryID).Error
	if err == gorm.ErrRecordNotFound {
		util.CallErrorNotFound(c, util.APIErrorParams{Msg: "Symptom entry not found", Err: err})
		return model.Symptom{}, false
	}
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to retrieve symptom entry", Err: err})
		return model.Symptom{}, false
	}
	if entry.PatientID != patientID {
		util.LogUnauthorizedAccess(fmt.Sprintf("patient:%d", patientID), "", c.ClientIP(), c.Request.URL.Path, "symptom entry owned by another patient")
		util.CallErrorForbidden(c, util.APIErrorParams{Msg: "Not authorized", Err: fmt.Errorf("entry belongs to another patient")})
		return model.Symptom{}, false
	}
	return entry, true
}

// AddSymptom godoc
// @Summary      Add a symptom diary entry
// @Description  The entry is always attached to the authenticated patient
// @Tags         Symptom
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body symptomRequest true "Symptom entry"
// @Success      201 {object} util.APIResponse{data=model.Symptom} "Entry created"
// @Failure      400 {object} util.APIResponse "Invalid request payload"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /api/symptoms/add [post]
func AddSymptom(c *gin.Context) {
	var req symptomRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	patientID, ok := getAccountIDOrRespond(c)
	if !ok {
		return
	}

	date := req.Date
	if date == "" {
		date = time.Now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		util.CallUserError(c, util.APIErrorParams{Msg: "date must be an ISO-8601 calendar date (YYYY-MM-DD)", Err: err})
		return
	}

	entry := model.Symptom{
		PatientID: patientID,
		Date:      date,
		Mood:      req.Mood,
		Symptoms:  req.Symptoms,
		Notes:     req.Notes,
	}
	if err := db.Create(&entry).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to create symptom entry", Err: err})
		return
	}

	util.CallSuccessCreated(c, util.APISuccessParams{
		Msg:  "Symptom entry created",
		Data: entry,
	})
}

// ListMySymptoms godoc
// @Summary      List the authenticated patient's symptom entries
// @Tags         Symptom
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} util.APIResponse "Entries retrieved"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /api/symptoms/my [get]
func ListMySymptoms(c *gin.Context) {
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	patientID, ok := getAccountIDOrRespond(c)
	if !ok {
		return
	}

	var entries []model.Symptom
	if err := db.Where("patient_id = ?", patientID).Order("created_at DESC").Find(&entries).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to retrieve symptom entries", Err: err})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Symptom entries retrieved",
		Data: entries,
	})
}

// ListAllSymptoms godoc
// @Summary      List all patients' symptom entries
// @Description  Doctor-facing listing with patient profile joined
// @Tags         Symptom
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} util.APIResponse "Entries retrieved"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      403 {object} util.APIResponse "Forbidden"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /api/symptoms/all [get]
func ListAllSymptoms(c *gin.Context) {
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	var entries []symptomWithPatient
	err := db.Table("symptoms").
		Select("symptoms.*, patients.name AS patient_name, patients.email AS patient_email, patients.age AS patient_age, patients.gender AS patient_gender").
		Joins("LEFT JOIN patients ON patients.id = symptoms.patient_id").
		Where("symptoms.deleted_at IS NULL").
		Order("symptoms.created_at DESC").
		Scan(&entries).Error
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to retrieve symptom entries", Err: err})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Symptom entries retrieved",
		Data: entries,
	})
}

// UpdateSymptom godoc
// @Summary      Update a symptom entry
// @Description  Only the owning patient may update an entry
// @Tags         Symptom
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Symptom entry ID"
// @Param        request body updateSymptomRequest true "Updated fields"
// @Success      200 {object} util.APIResponse{data=model.Symptom} "Entry updated"
// @Failure      400 {object} util.APIResponse "Invalid request payload"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      403 {object} util.APIResponse "Entry owned by another patient"
// @Failure      404 {object} util.APIResponse "Entry not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /api/symptoms/{id} [put]
func UpdateSymptom(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		util.CallUserError(c, util.APIErrorParams{Msg: "Missing symptom entry ID", Err: fmt.Errorf("entry ID is required")})
		return
	}

	var req updateSymptomRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	patientID, ok := getAccountIDOrRespond(c)
	if !ok {
		return
	}

	entry, ok := loadOwnedSymptom(c, db, id, patientID)
	if !ok {
		return
	}

	if req.Date != "" {
		if _, err := time.Parse("2006-01-02", req.Date); err != nil {
			util.CallUserError(c, util.APIErrorParams{Msg: "date must be an ISO-8601 calendar date (YYYY-MM-DD)", Err: err})
			return
		}
		entry.Date = req.Date
	}
	if req.Mood != "" {
		entry.Mood = req.Mood
	}
	if req.Symptoms != "" {
		entry.Symptoms = req.Symptoms
	}
	if req.Notes != "" {
		entry.Notes = req.Notes
	}

	if err := db.Save(&entry).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to update symptom entry", Err: err})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Symptom entry updated",
		Data: entry,
	})
}

// DeleteSymptom godoc
// @Summary      Delete a symptom entry
// @Description  Only the owning patient may delete an entry
// @Tags         Symptom
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Symptom entry ID"
// @Success      200 {object} util.APIResponse "Entry deleted"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      403 {object} util.APIResponse "Entry owned by another patient"
// @Failure      404 {object} util.APIResponse "Entry not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /api/symptoms/{id} [delete]
func DeleteSymptom(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		util.CallUserError(c, util.APIErrorParams{Msg: "Missing symptom entry ID", Err: fmt.Errorf("entry ID is required")})
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	patientID, ok := getAccountIDOrRespond(c)
	if !ok {
		return
	}

	entry, ok := loadOwnedSymptom(c, db, id, patientID)
	if !ok {
		return
	}

	if err := db.Delete(&entry).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to delete symptom entry", Err: err})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg: "Symptom entry deleted",
	})
}
