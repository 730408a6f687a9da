package server

import (
	"fmt"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/amoryapp/amory-backend/internal/config"
)

// Registrar is the common interface all HTTP route registrars implement.
type Registrar interface {
	Register(rg *gin.RouterGroup)
}

// NewRouter builds the gin engine: CORS, health check, a public group and
// an authenticated group, each populated by the provided registrars.
func NewRouter(cfg *config.Config, requireAuth gin.HandlerFunc, public, protected []Registrar) *gin.Engine {
	if cfg.App.ENV != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	publicGroup := router.Group("/")
	for _, r := range public {
		r.Register(publicGroup)
	}

	protectedGroup := router.Group("/")
	protectedGroup.Use(requireAuth)
	for _, r := range protected {
		r.Register(protectedGroup)
	}

	return router
}

// Start runs the HTTP server until it fails.
func Start(cfg *config.Config, router *gin.Engine) error {
	addr := fmt.Sprintf("%s:%s", cfg.HTTP.Host, cfg.HTTP.Port)
	if err := router.Run(addr); err != nil {
		return fmt.Errorf("http server stopped: %w", err)
	}
	return nil
}
