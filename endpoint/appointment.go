package endpoint

import (
	"fmt"
	"time"

	"github.com/carepulse/carepulse-api/model"
	"github.com/carepulse/carepulse-api/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type bookAppointmentRequest struct {
	DoctorID uint   `json:"doctorId" binding:"required" example:"1"`
	Date     string `json:"date" binding:"required" example:"2025-01-10"`
	Time     string `json:"time" binding:"required" example:"10:00"`
	Reason   string `json:"reason" example:"Chest pain"`
}

type updateAppointmentRequest struct {
	Status string `json:"status" binding:"required" example:"confirmed"`
	Notes  string `json:"notes" example:"Bring previous reports"`
}

// appointmentWithDoctor joins the doctor's public fields onto an appointment
// for the patient-facing listing.
type appointmentWithDoctor struct {
	model.Appointment
	DoctorName           string `json:"doctor_name"`
	DoctorSpecialization string `json:"doctor_specialization"`
	DoctorExperience     int    `json:"doctor_experience"`
}

// appointmentWithPatient joins the patient's profile fields onto an
// appointment for the doctor-facing listing.
type appointmentWithPatient struct {
	model.Appointment
	PatientName   string `json:"patient_name"`
	PatientEmail  string `json:"patient_email"`
	PatientAge    int    `json:"patient_age"`
	PatientGender string `json:"patient_gender"`
}

// doctorPatientSummary is one row of the doctor's de-duplicated patient list,
// annotated with the most recent visit.
type doctorPatientSummary struct {
	PatientID         uint   `json:"id"`
	Name              string `json:"name"`
	Email             string `json:"email"`
	Age               int    `json:"age"`
	Gender            string `json:"gender"`
	LastVisit         string `json:"lastVisit"`
	LastReason        string `json:"lastReason"`
	AppointmentStatus string `json:"appointmentStatus"`
}

type doctorStatsResponse struct {
	Total          int64 `json:"total"`
	TodayCount     int64 `json:"todayCount"`
	Pending        int64 `json:"pending"`
	UniquePatients int64 `json:"uniquePatients"`
}

func validateScheduleFields(date, timeOfDay string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("date must be an ISO-8601 calendar date (YYYY-MM-DD)")
	}
	if _, err := time.Parse("15:04", timeOfDay); err != nil {
		return fmt.Errorf("time must be HH:MM")
	}
	return nil
}

// slotTaken reports whether the doctor already has a non-cancelled
// appointment at the exact date and time.
func slotTaken(tx *gorm.DB, doctorID uint, date, timeOfDay string) (bool, error) {
	var count int64
	err := tx.Model(&model.Appointment{}).
		Where("doctor_id = ? AND date = ? AND time = ? AND status <> ?", doctorID, date, timeOfDay, model.AppointmentStatusCancelled).
		Count(&count).Error
	return count > 0, err
}

var errSlotTaken = fmt.Errorf("time slot already booked")

// BookAppointment godoc
// @Summary      Book an appointment
// @Description  Patient books an appointment with a doctor; the slot must be free
// @Tags         Appointment
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body bookAppointmentRequest true "Booking details"
// @Success      201 {object} util.APIResponse{data=model.Appointment} "Appointment booked"
// @Failure      400 {object} util.APIResponse "Invalid payload or slot already booked"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      404 {object} util.APIResponse "Doctor not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /api/appointments/book [post]
func BookAppointment(c *gin.Context) {
	var req bookAppointmentRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}

	if err := validateScheduleFields(req.Date, req.Time); err != nil {
		util.CallUserError(c, util.APIErrorParams{Msg: err.Error(), Err: fmt.Errorf("invalid payload")})
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

	var doctor model.Doctor
	if err := db.First(&doctor, req.DoctorID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.CallErrorNotFound(c, util.APIErrorParams{Msg: "Doctor not found", Err: err})
			return
		}
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to resolve doctor", Err: err})
		return
	}

	appointment := model.Appointment{
		PatientID: patientID,
		DoctorID:  req.DoctorID,
		Date:      req.Date,
		Time:      req.Time,
		Reason:    req.Reason,
		Status:    model.AppointmentStatusPending,
	}

	// The slot check runs in the same transaction as the insert. A plain
	// COUNT takes no row locks under the default isolation level, so two
	// truly simultaneous bookings of one slot can still both pass; the check
	// closes the window between validation and insert, not the race itself.
	err := db.Transaction(func(tx *gorm.DB) error {
		taken, err := slotTaken(tx, req.DoctorID, req.Date, req.Time)
		if err != nil {
			return err
		}
		if taken {
			return errSlotTaken
		}
		return tx.Create(&appointment).Error
	})
	if err == errSlotTaken {
		util.CallUserError(c, util.APIErrorParams{Msg: "This time slot is already booked", Err: err})
		return
	}
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to book appointment", Err: err})
		return
	}

	util.CallSuccessCreated(c, util.APISuccessParams{
		Msg:  "Appointment booked successfully",
		Data: appointment,
	})
}

// ListMyAppointments godoc
// @Summary      List the authenticated patient's appointments
// @Tags         Appointment
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} util.APIResponse "Appointments retrieved"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /api/appointments/my [get]
func ListMyAppointments(c *gin.Context) {
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	patientID, ok := getAccountIDOrRespond(c)
	if !ok {
		return
	}

	var appointments []appointmentWithDoctor
	err := db.Table("appointments").
		Select("appointments.*, doctors.name AS doctor_name, doctors.specialization AS doctor_specialization, doctors.experience AS doctor_experience").
		Joins("LEFT JOIN doctors ON doctors.id = appointments.doctor_id").
		Where("appointments.patient_id = ? AND appointments.deleted_at IS NULL", patientID).
		Order("appointments.created_at DESC").
		Scan(&appointments).Error
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to retrieve appointments", Err: err})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Appointments retrieved",
		Data: appointments,
	})
}

// ListDoctorAppointments godoc
// @Summary      List the authenticated doctor's appointments
// @Tags         Appointment
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} util.APIResponse "Appointments retrieved"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      403 {object} util.APIResponse "Forbidden"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /api/appointments/doctor/all [get]
func ListDoctorAppointments(c *gin.Context) {
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	doctorID, ok := getAccountIDOrRespond(c)
	if !ok {
		return
	}

	appointments, err := fetchDoctorAppointments(db, doctorID)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to retrieve appointments", Err: err})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Appointments retrieved",
		Data: appointments,
	})
}

func fetchDoctorAppointments(db *gorm.DB, doctorID uint) ([]appointmentWithPatient, error) {
	var appointments []appointmentWithPatient
	err := db.Table("appointments").
		Select("appointments.*, patients.name AS patient_name, patients.email AS patient_email, patients.age AS patient_age, patients.gender AS patient_gender").
		Joins("LEFT JOIN patients ON patients.id = appointments.patient_id").
		Where("appointments.doctor_id = ? AND appointments.deleted_at IS NULL", doctorID).
		Order("appointments.created_at DESC").
		Scan(&appointments).Error
	return appointments, err
}

// UpdateAppointment godoc
// @Summary      Update an appointment's status and notes
// @Description  Only the doctor the appointment belongs to may update it
// @Tags         Appointment
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Appointment ID"
// @Param        request body updateAppointmentRequest true "New status and notes"
// @Success      200 {object} util.APIResponse{data=model.Appointment} "Appointment updated"
// @Failure      400 {object} util.APIResponse "Invalid status value"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      403 {object} util.APIResponse "Forbidden"
// @Failure      404 {object} util.APIResponse "Appointment not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /api/appointments/doctor/update/{id} [put]
func UpdateAppointment(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		util.CallUserError(c, util.APIErrorParams{Msg: "Missing appointment ID", Err: fmt.Errorf("appointment ID is required")})
		return
	}

	var req updateAppointmentRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}

	if !util.Contains(req.Status, model.ValidAppointmentStatuses) {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Status must be one of pending, confirmed, cancelled, completed",
			Err: fmt.Errorf("invalid status %q", req.Status),
		})
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	doctorID, ok := getAccountIDOrRespond(c)
	if !ok {
		return
	}

	// Scoping the lookup by doctor hides other doctors' appointments: an id
	// that exists but belongs to someone else reads as not found.
	var appointment model.Appointment
	err := db.Where("id = ? AND doctor_id = ?", id, doctorID).First(&appointment).Error
	if err == gorm.ErrRecordNotFound {
		util.CallErrorNotFound(c, util.APIErrorParams{Msg: "Appointment not found", Err: err})
		return
	}
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to retrieve appointment", Err: err})
		return
	}

	appointment.Status = req.Status
	appointment.Notes = req.Notes
	if err := db.Save(&appointment).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to update appointment", Err: err})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Appointment updated",
		Data: appointment,
	})
}

// ListDoctorPatients godoc
// @Summary      List the distinct patients of the authenticated doctor
// @Description  De-duplicated from the doctor's appointments, annotated with the most recent visit
// @Tags         Appointment
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} util.APIResponse "Patients retrieved"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /api/appointments/doctor/patients [get]
func ListDoctorPatients(c *gin.Context) {
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	doctorID, ok := getAccountIDOrRespond(c)
	if !ok {
		return
	}

	appointments, err := fetchDoctorAppointments(db, doctorID)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to retrieve appointments", Err: err})
		return
	}

	// Appointments are ordered newest first, so the first occurrence of a
	// patient carries their most recent visit.
	seen := make(map[uint]struct{}, len(appointments))
	patients := make([]doctorPatientSummary, 0, len(appointments))
	for _, appt := range appointments {
		if appt.PatientID == 0 {
			continue
		}
		if _, dup := seen[appt.PatientID]; dup {
			continue
		}
		seen[appt.PatientID] = struct{}{}
		patients = append(patients, doctorPatientSummary{
			PatientID:         appt.PatientID,
			Name:              appt.PatientName,
			Email:             appt.PatientEmail,
			Age:               appt.PatientAge,
			Gender:            appt.PatientGender,
			LastVisit:         appt.Date,
			LastReason:        appt.Reason,
			AppointmentStatus: appt.Status,
		})
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Patients retrieved",
		Data: patients,
	})
}

// GetDoctorStats godoc
// @Summary      Appointment statistics for the authenticated doctor
// @Tags         Appointment
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} util.APIResponse{data=doctorStatsResponse} "Stats retrieved"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /api/appointments/doctor/stats [get]
func GetDoctorStats(c *gin.Context) {
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	doctorID, ok := getAccountIDOrRespond(c)
	if !ok {
		return
	}

	var stats doctorStatsResponse
	base := func() *gorm.DB {
		return db.Model(&model.Appointment{}).Where("doctor_id = ?", doctorID)
	}

	if err := base().Count(&stats.Total).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to compute stats", Err: err})
		return
	}

	today := time.Now().Format("2006-01-02")
	if err := base().Where("date = ?", today).Count(&stats.TodayCount).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to compute stats", Err: err})
		return
	}

	if err := base().Where("status = ?", model.AppointmentStatusPending).Count(&stats.Pending).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to compute stats", Err: err})
		return
	}

	if err := base().Distinct("patient_id").Count(&stats.UniquePatients).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to compute stats", Err: err})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Stats retrieved",
		Data: stats,
	})
}

// ListDoctors godoc
// @Summary      Public doctor directory
// @Description  All doctor profiles with credential fields stripped, served from a short-lived cache when available
// @Tags         Appointment
// @Produce      json
// @Success      200 {object} util.APIResponse "Doctors retrieved"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /api/appointments/doctors [get]
func ListDoctors(c *gin.Context) {
	ctx := c.Request.Context()

	var cached []map[string]interface{}
	if util.GetCachedDoctorDirectory(ctx, &cached) {
		util.CallSuccessOK(c, util.APISuccessParams{
			Msg:  "Doctors retrieved",
			Data: cached,
		})
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	var doctors []model.Doctor
	if err := db.Order("name ASC").Find(&doctors).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to retrieve doctors", Err: err})
		return
	}

	profiles := make([]map[string]interface{}, 0, len(doctors))
	for _, d := range doctors {
		profiles = append(profiles, d.PublicProfile())
	}

	_ = util.CacheDoctorDirectory(ctx, profiles)

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Doctors retrieved",
		Data: profiles,
	})
}
