package endpoint

import (
	"fmt"

	"github.com/carepulse/carepulse-api/model"
	"github.com/carepulse/carepulse-api/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type registerPatientRequest struct {
	Name     string `json:"name" binding:"required" example:"Amit Sharma"`
	Email    string `json:"email" binding:"required,email" example:"amit@example.com"`
	Password string `json:"password" binding:"required,min=6" example:"password123"`
	Age      int    `json:"age" example:"30"`
	Gender   string `json:"gender" example:"Male"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"amit@example.com"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// emailTakenInTable reports whether the email is already registered in the
// given table. Uniqueness is per table: the same address may exist as both a
// patient and a doctor.
func emailTakenInTable(db *gorm.DB, table, email string) (bool, error) {
	var count int64
	if err := db.Table(table).Where("email = ? AND deleted_at IS NULL", email).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// hashNewPassword generates a fresh salt and Argon2id hash for a signup.
func hashNewPassword(c *gin.Context, plain string) (hashed string, salt string, ok bool) {
	salt, err := util.GenerateSalt()
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to generate password salt", Err: err})
		return "", "", false
	}
	hashed, err = util.HashPasswordArgon2(plain, salt)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to hash password", Err: err})
		return "", "", false
	}
	return hashed, salt, true
}

// RegisterPatient godoc
// @Summary      Register a new patient
// @Description  Create a patient account and return a bearer token
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body registerPatientRequest true "Patient registration details"
// @Success      201 {object} util.APIResponse{data=tokenUserResponse} "Patient registered"
// @Failure      400 {object} util.APIResponse "Invalid request or email already in use"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /api/auth/register [post]
func RegisterPatient(c *gin.Context) {
	var req registerPatientRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	taken, err := emailTakenInTable(db, "patients", req.Email)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to check existing patient", Err: err})
		return
	}
	if taken {
		util.CallUserError(c, util.APIErrorParams{Msg: "Email already in use", Err: fmt.Errorf("email already registered")})
		return
	}

	hashed, salt, ok := hashNewPassword(c, req.Password)
	if !ok {
		return
	}

	patient := model.Patient{
		Name:         util.NormalizeName(req.Name),
		Email:        req.Email,
		Password:     hashed,
		PasswordSalt: salt,
		Age:          req.Age,
		Gender:       req.Gender,
	}
	if err := db.Create(&patient).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to create patient", Err: err})
		return
	}

	token, err := util.CreateToken(patient.ID, util.RolePatient)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Could not generate token", Err: err})
		return
	}

	util.LogSignupSuccess(patient.ID, util.RolePatient, patient.Email, c.ClientIP(), c.Request.UserAgent())

	util.CallSuccessCreated(c, util.APISuccessParams{
		Msg:  "Patient registered successfully",
		Data: tokenUserResponse{Token: token, User: patient.PublicProfile()},
	})
}

// LoginPatient godoc
// @Summary      Patient login
// @Description  Authenticate a patient with email and password
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body loginRequest true "Login credentials"
// @Success      200 {object} util.APIResponse{data=tokenUserResponse} "Login successful"
// @Failure      400 {object} util.APIResponse "Invalid email or password"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /api/auth/login [post]
func LoginPatient(c *gin.Context) {
	var req loginRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	var patient model.Patient
	err := db.Where("email = ?", req.Email).First(&patient).Error
	if err == gorm.ErrRecordNotFound {
		util.LogLoginFailure(req.Email, c.ClientIP(), c.Request.UserAgent(), "patient not found")
		util.CallUserError(c, util.APIErrorParams{Msg: "Invalid email or password", Err: fmt.Errorf("invalid credentials")})
		return
	}
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Database error", Err: err})
		return
	}

	match, err := util.VerifyPassword(req.Password, patient.Password, patient.PasswordSalt)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Password verification failed", Err: err})
		return
	}
	if !match {
		util.LogLoginFailure(req.Email, c.ClientIP(), c.Request.UserAgent(), "invalid password")
		util.CallUserError(c, util.APIErrorParams{Msg: "Invalid email or password", Err: fmt.Errorf("invalid credentials")})
		return
	}

	token, err := util.CreateToken(patient.ID, util.RolePatient)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Could not generate token", Err: err})
		return
	}

	util.LogLoginSuccess(patient.ID, util.RolePatient, patient.Email, c.ClientIP(), c.Request.UserAgent())

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Login successful",
		Data: tokenUserResponse{Token: token, User: patient.PublicProfile()},
	})
}

// GetPatientProfile godoc
// @Summary      Get the authenticated patient's profile
// @Tags         Auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} util.APIResponse "Profile retrieved"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      404 {object} util.APIResponse "Patient not found"
// @Router       /api/auth/profile [get]
func GetPatientProfile(c *gin.Context) {
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	accountID, ok := getAccountIDOrRespond(c)
	if !ok {
		return
	}

	var patient model.Patient
	if err := db.First(&patient, accountID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.CallErrorNotFound(c, util.APIErrorParams{Msg: "Patient not found", Err: err})
			return
		}
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to retrieve patient", Err: err})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Profile retrieved",
		Data: patient.PublicProfile(),
	})
}
