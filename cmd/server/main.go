package main

import (
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"asset_inventory_backend/internal/ai"
	"asset_inventory_backend/internal/database"
	"asset_inventory_backend/internal/repositories"
	router_pkg "asset_inventory_backend/internal/router"
	"asset_inventory_backend/internal/services"
	"asset_inventory_backend/pkg/utils"
)

func main() {
	// Initialize Logger
	utils.InitLogger()

	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err == nil {
		utils.LogInfo("Loaded configuration from .env file")
	}

	utils.SetJWTSecret(os.Getenv("JWT_SECRET"))

	// Load database configuration from environment variables
	dbCfg := database.Config{
		Host:       utils.Getenv("DB_HOST", "localhost"),
		Port:       utils.Getenv("DB_PORT", "5432"),
		User:       utils.Getenv("DB_USER", "inventory_user"),
		Password:   utils.Getenv("DB_PASSWORD", "inventory_password"),
		Name:       utils.Getenv("DB_NAME", "asset_inventory_db"),
		SSLMode:    utils.Getenv("DB_SSLMODE", "disable"),
		SchemaPath: utils.Getenv("DB_SCHEMA_PATH", ""),
	}

	db, err := database.InitDB(dbCfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()
	utils.LogInfo("Database initialized", map[string]interface{}{"configured_from_env": true})

	// Seed the default team on first boot so the app is usable immediately.
	userService := services.NewUserService(repositories.NewUserRepository(db), db)
	if err := userService.SeedDefaultUsers(); err != nil {
		log.Fatalf("Failed to seed default users: %v", err)
	}

	// The AI client is optional; without a key every scan endpoint uses the
	// deterministic fallback.
	var aiClient *ai.Client
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		aiClient = ai.NewClient(apiKey, utils.Getenv("OPENAI_MODEL", ""))
		utils.LogInfo("AI client configured")
	} else {
		utils.LogInfo("OPENAI_API_KEY not set, scan endpoints will use fallback data")
	}

	router := gin.Default()

	// Add GinLogger middleware for request logging
	router.Use(utils.GinLogger())

	// CORS configuration
	corsAllowedOriginsEnv := os.Getenv("CORS_ALLOWED_ORIGINS")
	var allowedOrigins []string
	if corsAllowedOriginsEnv != "" {
		allowedOrigins = strings.Split(corsAllowedOriginsEnv, ",")
	} else {
		allowedOrigins = []string{"http://localhost:3000", "http://localhost:3001"} // Default origins
	}

	config := cors.DefaultConfig()
	config.AllowOrigins = allowedOrigins
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.AllowCredentials = true
	router.Use(cors.New(config))

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Setup all application routes
	router_pkg.Setup(router, db, aiClient)

	// Server port configuration
	port := utils.Getenv("PORT", "8080")
	utils.LogInfo("Server starting", map[string]interface{}{"port": port, "configured_from_env": true})

	if err := router.Run(":" + port); err != nil {
		utils.LogError(err, "Failed to start server")
		log.Fatalf("Failed to start server: %v", err)
	}
}
