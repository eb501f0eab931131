package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/handler"
	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/middleware"
)

// SetupRouter wires every route under prefix (e.g. "/api").
func SetupRouter(
	prefix string,
	userHandler *handler.UserHandler,
	authHandler *handler.AuthHandler,
	authMiddleware *middleware.AuthMiddleware,
	logger *slog.Logger,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger))
	r.SetTrustedProxies(nil)

	base := r.Group(prefix)

	base.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// User routes (public)
	users := base.Group("/usuarios")
	{
		users.POST("/create", userHandler.Create)
		users.GET("/list", userHandler.List)
		users.GET("/get/:id", userHandler.Get)
		users.PUT("/update/:id", userHandler.Update)
		users.DELETE("/delete/:id", userHandler.Delete)
		users.GET("/schema", userHandler.Schema)
	}

	// Auth routes
	base.POST("/auth/login", authHandler.Login)
	base.GET("/user", authMiddleware.RequireAuth(), authHandler.Me)

	return r
}
