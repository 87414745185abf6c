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

// Storage backend names accepted in STORAGE_BACKEND.
const (
	BackendRedis  = "redis"
	BackendMySQL  = "mysql"
	BackendMemory = "memory"
)

// Config holds the application's configuration values.
type Config struct {
	AppName        string `json:"appname"`
	AppEnv         string `json:"appenv"`
	AppPort        uint16 `json:"appport"`
	GinMode        string `json:"ginmode"`
	StorageBackend string `json:"storagebackend"`
	JWTSecret      string `json:"-"`
	DBHost         string `json:"dbhost"`
	DBPort         uint16 `json:"dbport"`
	DBName         string `json:"dbname"`
	DBUser         string `json:"dbuser"`
	DBPass         string `json:"dbpass"`
}

var config *Config
var once sync.Once

// LoadConfig loads environment variables from a .env file when present and
// returns a singleton Config instance.
func LoadConfig() *Config {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			log.Printf("no .env file loaded: %v", err)
		}

		appPort, _ := strconv.ParseUint(os.Getenv("APPPORT"), 10, 16)
		dbPort, _ := strconv.ParseUint(os.Getenv("DBPORT"), 10, 16)

		backend := os.Getenv("STORAGE_BACKEND")
		if backend == "" {
			backend = BackendMemory
		}

		config = &Config{
			AppName:        os.Getenv("APPNAME"),
			AppEnv:         os.Getenv("APPENV"),
			AppPort:        uint16(appPort),
			GinMode:        os.Getenv("GINMODE"),
			StorageBackend: backend,
			JWTSecret:      os.Getenv("JWTSECRET"),
			DBHost:         os.Getenv("DBHOST"),
			DBPort:         uint16(dbPort),
			DBName:         os.Getenv("DBNAME"),
			DBUser:         os.Getenv("DBUSER"),
			DBPass:         os.Getenv("DBPASS"),
		}
	})
	return config
}

// ConnectDB opens the relational connection backing the mysql storage
// backend. In the test environment an in-memory SQLite database is used so
// tests need no external server.
func ConnectDB() (*gorm.DB, error) {
	cfg := LoadConfig()
	if cfg.AppEnv == "test" {
		return gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true", cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	return db, nil
}
