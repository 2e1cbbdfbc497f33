package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Config holds the application's configuration values.
type Config struct {
	AppName string `json:"appname"`
	AppEnv  string `json:"appenv"`
	AppPort uint16 `json:"appport"`
	GinMode string `json:"ginmode"`

	DBHost string `json:"dbhost"`
	DBPort uint16 `json:"dbport"`
	DBName string `json:"dbname"`
	DBUser string `json:"dbuser"`
	DBPass string `json:"dbpass"`

	MinioEndpoint   string `json:"minioendpoint"`
	MinioAccessKey  string `json:"minioaccesskey"`
	MinioSecretKey  string `json:"miniosecretkey"`
	MinioBucket     string `json:"miniobucket"`
	MinioUseSSL     bool   `json:"miniousessl"`
	MinioPublicBase string `json:"miniopublicbase"`

	GeminiAPIKey string `json:"geminiapikey"`
	GeminiModel  string `json:"geminimodel"`
}

var config *Config
var once sync.Once

// LoadConfig loads the environment variables from a .env file, and returns a singleton Config instance.
func LoadConfig() *Config {
	once.Do(func() {
		// A missing .env file is fine; variables may come from the environment.
		if err := godotenv.Load(); err != nil {
			log.Printf("No .env file loaded: %v", err)
		}

		appPort, _ := strconv.ParseUint(os.Getenv("APPPORT"), 10, 16)
		if appPort == 0 {
			appPort = 5000
		}
		dbPort, _ := strconv.ParseUint(os.Getenv("DBPORT"), 10, 16)

		geminiModel := os.Getenv("GEMINI_MODEL")
		if geminiModel == "" {
			geminiModel = "gemini-1.5-flash-latest"
		}

		config = &Config{
			AppName: os.Getenv("APPNAME"),
			AppEnv:  os.Getenv("APPENV"),
			AppPort: uint16(appPort),
			GinMode: os.Getenv("GINMODE"),

			DBHost: os.Getenv("DBHOST"),
			DBPort: uint16(dbPort),
			DBName: os.Getenv("DBNAME"),
			DBUser: os.Getenv("DBUSER"),
			DBPass: os.Getenv("DBPASS"),

			MinioEndpoint:   os.Getenv("MINIO_ENDPOINT"),
			MinioAccessKey:  os.Getenv("MINIO_ACCESS_KEY"),
			MinioSecretKey:  os.Getenv("MINIO_SECRET_KEY"),
			MinioBucket:     os.Getenv("MINIO_BUCKET"),
			MinioUseSSL:     os.Getenv("MINIO_USE_SSL") == "true",
			MinioPublicBase: os.Getenv("MINIO_PUBLIC_BASE"),

			GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
			GeminiModel:  geminiModel,
		}
	})
	return config
}

// ResetConfigForTest clears the config singleton so tests can reload it with
// different environment variables.
func ResetConfigForTest() {
	config = nil
	once = sync.Once{}
}

// ConnectMySQL establishes a connection to the MySQL database using the
// configuration values. In the test environment (APPENV=test) an in-memory
// sqlite database is returned instead so tests never need a running MySQL.
func ConnectMySQL() (*gorm.DB, error) {
	cfg := LoadConfig()

	if cfg.AppEnv == "test" || os.Getenv("APPENV") == "test" {
		return gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true", cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	return db, nil
}
