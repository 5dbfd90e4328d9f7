package main

import (
	"os"
	"time"

	"assessment-app/config"
	"assessment-app/database"
	routes "assessment-app/internal/app/http"
	"assessment-app/internal/infra/aiprocessor"
	"assessment-app/internal/infra/notify"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func main() {
	// gin.SetMode(gin.ReleaseMode) uncomment only in production
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetOutput(os.Stdout)

	config.LoadEnv()
	database.InitDB()

	notify.Init(
		config.Outbound.SMTPHost,
		config.Outbound.SMTPPort,
		config.Outbound.SMTPFrom,
		config.Outbound.SMTPPassword,
	)
	aiprocessor.Init(
		config.Outbound.AIProcessorURL,
		config.Outbound.AIProcessorTimeout,
		database.DB,
	)

	r := gin.Default()

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
