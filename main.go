package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/arjunmehra/delivery-analytics/config"
	"github.com/arjunmehra/delivery-analytics/database"
	"github.com/arjunmehra/delivery-analytics/router"
	"github.com/arjunmehra/delivery-analytics/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	utils.InitLogger()

	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	utils.InitDB(db)

	if err := database.Migrate(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to migrate schema: %v", err)
	}

	if os.Getenv("SEED_DATA") == "true" {
		if err := database.SeedSampleData(db); err != nil {
			utils.ErrorLogger.Fatalf("Failed to seed sample data: %v", err)
		}
	}

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := router.SetupRouter(db)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("Reporting API listening on :%s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatalf("Server stopped: %v", err)
	}
}
