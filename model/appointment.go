package model

import "gorm.io/gorm"

// Appointment statuses. Transitions are pending -> confirmed/cancelled/completed;
// the owning doctor may overwrite the status with any valid value.
const (
	AppointmentStatusPending   = "pending"
	AppointmentStatusConfirmed = "confirmed"
	AppointmentStatusCancelled = "cancelled"
	AppointmentStatusCompleted = "completed"
)

// ValidAppointmentStatuses lists every accepted status value.
var ValidAppointmentStatuses = []string{
	AppointmentStatusPending,
	AppointmentStatusConfirmed,
	AppointmentStatusCancelled,
	AppointmentStatusCompleted,
}

// Appointment is a booking between one patient and one doctor.
// Date is stored canonically as an ISO-8601 calendar date string (YYYY-MM-DD),
// Time as HH:MM.
type Appointment struct {
	gorm.Model
	PatientID uint   `json:"patient_id" gorm:"column:patient_id;not null;index"`
	DoctorID  uint   `json:"doctor_id" gorm:"column:doctor_id;not null;index"`
	Date      string `json:"date" gorm:"column:date;type:varchar(10);not null;index" example:"2025-01-10"`
	Time      string `json:"time" gorm:"column:time;type:varchar(5);not null" example:"10:00"`
	Reason    string `json:"reason" gorm:"column:reason" example:"Chest pain"`
	Status    string `json:"status" gorm:"column:status;type:varchar(16);default:pending" example:"pending"`
	Notes     string `json:"notes" gorm:"column:notes" example:"Bring previous reports"`
}
