package model

import "gorm.io/gorm"

// Symptom is a patient-owned diary entry. Only the owning patient may update
// or delete it.
type Symptom struct {
	gorm.Model
	PatientID uint   `json:"patient_id" gorm:"column:patient_id;not null;index"`
	Date      string `json:"date" gorm:"column:date;type:varchar(10)" example:"2025-01-08"`
	Mood      string `json:"mood" gorm:"column:mood" example:"tired"`
	Symptoms  string `json:"symptoms" gorm:"column:symptoms;type:text" example:"headache, mild fever"`
	Notes     string `json:"notes" gorm:"column:notes;type:text"`
}
