package endpoint

import (
	"fmt"

	"github.com/carepulse/carepulse-api/model"
	"github.com/carepulse/carepulse-api/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type registerDoctorRequest struct {
	Name           string `json:"name" binding:"required" example:"Dr. Rao"`
	Email          string `json:"email" binding:"required,email" example:"rao@example.com"`
	Password       string `json:"password" binding:"required,min=6" example:"password123"`
	Specialization string `json:"specialization" binding:"required" example:"Cardiology"`
	Experience     int    `json:"experience" binding:"required" example:"12"`
}

// RegisterDoctor godoc
// @Summary      Register a new doctor
// @Description  Create a doctor account and return a bearer token
// @Tags         Doctor
// @Accept       json
// @Produce      json
// @Param        request body registerDoctorRequest true "Doctor registration details"
// @Success      201 {object} util.APIResponse{data=tokenUserResponse} "Doctor registered"
// @Failure      400 {object} util.APIResponse "Invalid request or email already in use"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /api/doctor/register [post]
func RegisterDoctor(c *gin.Context) {
	var req registerDoctorRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	taken, err := emailTakenInTable(db, "doctors", req.Email)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to check existing doctor", Err: err})
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

	doctor := model.Doctor{
		Name:           util.NormalizeName(req.Name),
		Email:          req.Email,
		Password:       hashed,
		PasswordSalt:   salt,
		Specialization: req.Specialization,
		Experience:     req.Experience,
	}
	if err := db.Create(&doctor).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to create doctor", Err: err})
		return
	}

	token, err := util.CreateToken(doctor.ID, util.RoleDoctor)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Could not generate token", Err: err})
		return
	}

	util.LogSignupSuccess(doctor.ID, util.RoleDoctor, doctor.Email, c.ClientIP(), c.Request.UserAgent())

	// A new doctor should show up in the public directory right away.
	_ = util.InvalidateDoctorDirectory(c.Request.Context())

	util.CallSuccessCreated(c, util.APISuccessParams{
		Msg:  "Doctor registered successfully",
		Data: tokenUserResponse{Token: token, User: doctor.PublicProfile()},
	})
}

// LoginDoctor godoc
// @Summary      Doctor login
// @Description  Authenticate a doctor with email and password
// @Tags         Doctor
// @Accept       json
// @Produce      json
// @Param        request body loginRequest true "Login credentials"
// @Success      200 {object} util.APIResponse{data=tokenUserResponse} "Login successful"
// @Failure      400 {object} util.APIResponse "Invalid email or password"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /api/doctor/login [post]
func LoginDoctor(c *gin.Context) {
	var req loginRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	var doctor model.Doctor
	err := db.Where("email = ?", req.Email).First(&doctor).Error
	if err == gorm.ErrRecordNotFound {
		util.LogLoginFailure(req.Email, c.ClientIP(), c.Request.UserAgent(), "doctor not found")
		util.CallUserError(c, util.APIErrorParams{Msg: "Invalid email or password", Err: fmt.Errorf("invalid credentials")})
		return
	}
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Database error", Err: err})
		return
	}

	match, err := util.VerifyPassword(req.Password, doctor.Password, doctor.PasswordSalt)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Password verification failed", Err: err})
		return
	}
	if !match {
		util.LogLoginFailure(req.Email, c.ClientIP(), c.Request.UserAgent(), "invalid password")
		util.CallUserError(c, util.APIErrorParams{Msg: "Invalid email or password", Err: fmt.Errorf("invalid credentials")})
		return
	}

	token, err := util.CreateToken(doctor.ID, util.RoleDoctor)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Could not generate token", Err: err})
		return
	}

	util.LogLoginSuccess(doctor.ID, util.RoleDoctor, doctor.Email, c.ClientIP(), c.Request.UserAgent())

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Login successful",
		Data: tokenUserResponse{Token: token, User: doctor.PublicProfile()},
	})
}
