package main

import (
	"log"
	"os"
	"time"

	"sheet2bill/config"
	"sheet2bill/database"
	routes "sheet2bill/internal/app/http"
	"sheet2bill/internal/domain/entitlement"
	"sheet2bill/internal/domain/plans"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// gin.SetMode(gin.ReleaseMode) uncomment only in production
	config.LoadEnv()
	database.InitDB()

	table := plans.DefaultTable()
	if err := table.Validate(); err != nil {
		log.Fatal("❌ Invalid plan limits: ", err)
	}
	entitlement.Init(database.DB, table)

	r := gin.Default()

	// ✅ Add CORS middleware BEFORE registering routes
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{os.Getenv("CORS_ORIGIN")},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r)

	r.Run(":" + config.PORT)
}
