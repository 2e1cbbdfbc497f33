// main.go
package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/carepulse/carepulse-api/config"
	_ "github.com/carepulse/carepulse-api/docs"
	"github.com/carepulse/carepulse-api/endpoint"
	"github.com/carepulse/carepulse-api/middleware"
	"github.com/carepulse/carepulse-api/model"
	"github.com/carepulse/carepulse-api/util"
)

func main() {
	// Load the configuration
	cfg := config.LoadConfig()

	db, err := config.ConnectMySQL()
	if err != nil {
		log.Fatalf("Error connecting to MySQL: %v", err)
	}
	if err := db.AutoMigrate(
		&model.Patient{},
		&model.Doctor{},
		&model.Appointment{},
		&model.Symptom{},
		&model.Prescription{},
		&model.SecurityLog{},
	); err != nil {
		log.Fatalf("Error running migrations: %v", err)
	}

	util.SetSecurityLoggerDB(db)
	util.InitAccountEmailCacheFromEnv()
	if err := util.InitGeoIP(""); err != nil {
		log.Printf("GeoIP disabled: %v", err)
	}

	// Redis is optional; rate limiting and the doctor-directory cache degrade
	// gracefully without it.
	if _, err := config.ConnectRedis(); err != nil {
		log.Printf("Redis unavailable: %v", err)
	}

	if cfg.MinioEndpoint != "" {
		store, err := util.NewDocumentStore(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL, cfg.MinioPublicBase)
		if err != nil {
			log.Fatalf("Error connecting to MinIO: %v", err)
		}
		endpoint.SetDocumentStore(store)
	}

	endpoint.SetChatClient(util.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel))

	// Set Gin mode from config
	gin.SetMode(cfg.GinMode)

	router := gin.Default()
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DatabaseMiddleware(db))
	router.Use(middleware.EndpointCallLogger())

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": fmt.Sprintf("Welcome to %s!", cfg.AppName),
		})
	})
	router.GET("/healthz", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.Ping()
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Credential endpoints carry a tight per-IP rate limit.
	authLimit := middleware.RateLimiter(middleware.RateLimitConfig{Limit: 5, Window: 15 * time.Minute})

	auth := router.Group("/api/auth")
	{
		auth.POST("/register", authLimit, endpoint.RegisterPatient)
		auth.POST("/login", authLimit, endpoint.LoginPatient)
		auth.GET("/profile", middleware.RequireAuth(), middleware.RequireRole(util.RolePatient), endpoint.GetPatientProfile)
	}

	doctor := router.Group("/api/doctor")
	{
		doctor.POST("/register", authLimit, endpoint.RegisterDoctor)
		doctor.POST("/login", authLimit, endpoint.LoginDoctor)
	}

	appointments := router.Group("/api/appointments")
	{
		appointments.GET("/doctors", endpoint.ListDoctors)

		patientOnly := appointments.Group("", middleware.RequireAuth(), middleware.RequireRole(util.RolePatient))
		patientOnly.POST("/book", endpoint.BookAppointment)
		patientOnly.GET("/my", endpoint.ListMyAppointments)

		doctorOnly := appointments.Group("/doctor", middleware.RequireAuth(), middleware.RequireRole(util.RoleDoctor))
		doctorOnly.GET("/all", endpoint.ListDoctorAppointments)
		doctorOnly.GET("/patients", endpoint.ListDoctorPatients)
		doctorOnly.GET("/stats", endpoint.GetDoctorStats)
		doctorOnly.PUT("/update/:id", endpoint.UpdateAppointment)
	}

	symptoms := router.Group("/api/symptoms")
	{
		symptoms.GET("/all", middleware.RequireAuth(), middleware.RequireRole(util.RoleDoctor), endpoint.ListAllSymptoms)

		patientOnly := symptoms.Group("", middleware.RequireAuth(), middleware.RequireRole(util.RolePatient))
		patientOnly.POST("/add", endpoint.AddSymptom)
		patientOnly.GET("/my", endpoint.ListMySymptoms)
		patientOnly.PUT("/:id", endpoint.UpdateSymptom)
		patientOnly.DELETE("/:id", endpoint.DeleteSymptom)
	}

	storage := router.Group("/api/storage", middleware.RequireAuth(), middleware.RequireRole(util.RolePatient))
	{
		storage.POST("/upload", endpoint.UploadPrescription)
		storage.GET("/", endpoint.ListPrescriptions)
	}

	router.POST("/api/chat", middleware.RequireAuth(), endpoint.Chat)

	// Start server on specified port
	address := fmt.Sprintf(":%d", cfg.AppPort)
	if err := router.Run(address); err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
