// main.go
package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dentalops/clinic-api/config"
	"github.com/dentalops/clinic-api/endpoint"
	"github.com/dentalops/clinic-api/jobs"
	"github.com/dentalops/clinic-api/middleware"
	"github.com/dentalops/clinic-api/repository"
	"github.com/dentalops/clinic-api/store"
	"github.com/dentalops/clinic-api/util"
)

func openStore(cfg *config.Config) (store.Store, error) {
	switch cfg.StorageBackend {
	case config.BackendRedis:
		client, err := config.ConnectRedis()
		if err != nil {
			return nil, err
		}
		if client == nil {
			return nil, fmt.Errorf("redis backend selected but no client available")
		}
		return store.NewRedisStore(client, "clinic:"), nil
	case config.BackendMySQL:
		db, err := config.ConnectDB()
		if err != nil {
			return nil, err
		}
		return store.NewGormStore(db)
	default:
		log.Println("no storage backend configured, using in-memory store")
		return store.NewMemoryStore(), nil
	}
}

func main() {
	// Load the configuration
	cfg := config.LoadConfig()
	util.SetJWTSecret(cfg.JWTSecret)

	st, err := openStore(cfg)
	if err != nil {
		log.Fatalf("Error opening %s store: %v", cfg.StorageBackend, err)
	}
	repo := repository.New(st)

	// The login rate limiter reuses the same Redis instance when present.
	if cfg.StorageBackend != config.BackendRedis {
		if _, err := config.ConnectRedis(); err != nil {
			log.Printf("rate limiting disabled: %v", err)
		}
	}

	jobs.StartReconcileScheduler(repo)

	// Set Gin mode from config
	gin.SetMode(cfg.GinMode)

	// Create a Gin router with default middleware
	router := gin.Default()
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RepositoryMiddleware(repo))
	router.Use(middleware.EndpointCallLogger())

	// Basic HTTP handler for root path
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": fmt.Sprintf("Welcome to %s!", cfg.AppName),
		})
	})

	router.POST("/login", middleware.RateLimiter(middleware.RateLimitConfig{}), endpoint.Login)

	authed := router.Group("/", middleware.AuthMiddleware())
	authed.GET("/dashboard", endpoint.Dashboard)
	authed.GET("/appointment/mine", endpoint.MyAppointments)
	authed.GET("/appointment/slots", endpoint.ListSlots)
	authed.POST("/appointment/book", endpoint.BookAppointment)

	admin := authed.Group("/", middleware.RequireAdmin())
	admin.GET("/patient", endpoint.ListPatients)
	admin.POST("/patient", endpoint.CreatePatient)
	admin.PATCH("/patient/:id", endpoint.UpdatePatient)
	admin.DELETE("/patient/:id", endpoint.DeletePatient)
	admin.GET("/appointment", endpoint.ListAppointments)
	admin.POST("/appointment", endpoint.CreateAppointment)
	admin.PATCH("/appointment/:id/field", endpoint.UpdateAppointmentField)
	admin.PATCH("/appointment/:id/status", endpoint.UpdateAppointmentStatus)
	admin.DELETE("/appointment/:id", endpoint.DeleteAppointment)
	admin.GET("/treatment", endpoint.ListTreatments)
	admin.GET("/treatment/candidates", endpoint.ListTreatmentCandidates)
	admin.POST("/treatment", endpoint.CreateTreatment)
	admin.GET("/calendar", endpoint.CalendarEvents)

	// Start server on specified port
	address := fmt.Sprintf(":%d", cfg.AppPort)
	if err := router.Run(address); err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
