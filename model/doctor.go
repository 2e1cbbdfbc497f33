package model

import "gorm.io/gorm"

// Doctor represents a doctor account
// @Description Doctor account with credentials, specialization and experience
type Doctor struct {
	gorm.Model
	Name           string `json:"name" gorm:"column:name" example:"Dr. Rao"`
	Email          string `json:"email" gorm:"column:email;uniqueIndex;type:varchar(191)" example:"rao@example.com"`
	Password       string `json:"-" gorm:"column:password"`
	PasswordSalt   string `json:"-" gorm:"column:password_salt"`
	Specialization string `json:"specialization" gorm:"column:specialization" example:"Cardiology"`
	Experience     int    `json:"experience" gorm:"column:experience" example:"12"`
}

// PublicProfile strips credential fields for API responses.
func (d Doctor) PublicProfile() map[string]interface{} {
	return map[string]interface{}{
		"id":             d.ID,
		"name":           d.Name,
		"email":          d.Email,
		"specialization": d.Specialization,
		"experience":     d.Experience,
		"role":           "doctor",
	}
}
