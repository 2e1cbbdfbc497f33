package model

import "gorm.io/gorm"

// Prescription records an uploaded patient document stored in the object store.
type Prescription struct {
	gorm.Model
	PatientID uint   `json:"patient_id" gorm:"column:patient_id;not null;index"`
	FileName  string `json:"file_name" gorm:"column:file_name"`
	ObjectKey string `json:"object_key" gorm:"column:object_key;type:varchar(255)"`
	URL       string `json:"prescriptionUrl" gorm:"column:url;type:varchar(512)"`
}
