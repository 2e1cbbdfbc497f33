package model

import "gorm.io/gorm"

// Patient represents a patient account
// @Description Patient account with credentials and profile fields
type Patient struct {
	gorm.Model
	Name         string `json:"name" gorm:"column:name" example:"Amit Sharma"`
	Email        string `json:"email" gorm:"column:email;uniqueIndex;type:varchar(191)" example:"amit@example.com"`
	Password     string `json:"-" gorm:"column:password"`
	PasswordSalt string `json:"-" gorm:"column:password_salt"`
	Age          int    `json:"age" gorm:"column:age" example:"30"`
	Gender       string `json:"gender" gorm:"column:gender" example:"Male"`
}

// PublicProfile strips credential fields for API responses.
func (p Patient) PublicProfile() map[string]interface{} {
	return map[string]interface{}{
		"id":     p.ID,
		"name":   p.Name,
		"email":  p.Email,
		"age":    p.Age,
		"gender": p.Gender,
		"role":   "patient",
	}
}
