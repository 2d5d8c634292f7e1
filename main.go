package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/easybar-app/gateway/client"
	"github.com/easybar-app/gateway/config"
	"github.com/easybar-app/gateway/live"
	"github.com/easybar-app/gateway/models"
	"github.com/easybar-app/gateway/router"
	"github.com/easybar-app/gateway/services"
	"github.com/easybar-app/gateway/utils"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}
	utils.InitLogger()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to open session store: %v", err)
	}
	autoMigrate(db)

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	api := client.New(cfg.APIBaseURL, cfg.APISessionKey)
	hub := live.NewHub()

	// Poll the backend for order changes and push them to mounted views.
	monitor := services.NewOrderMonitor(api, hub)
	monitor.Interval = cfg.PollInterval
	monitor.Start()
	defer monitor.Stop()

	r := router.SetupRouter(api, db, hub, cfg.AllowedOrigin)
	r.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	utils.InfoLogger.Printf("easyBar gateway listening on port %s (backend %s)", cfg.Port, cfg.APIBaseURL)
	if err := r.Run(":" + cfg.Port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.TableBinding{},
		&models.ClosingRequest{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
}
