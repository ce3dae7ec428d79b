package server

import (
  "github.com/gin-contrib/cors"
  "github.com/gin-gonic/gin"
  "github.com/yungbote/gadgetvault-backend/internal/handlers"
  "github.com/yungbote/gadgetvault-backend/internal/middleware"
)

type RouterConfig struct {
  AuthHandler       *handlers.AuthHandler
  AuthMiddleware    *middleware.AuthMiddleware
  GadgetHandler     *handlers.GadgetHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()

  // Cors
  router.Use(cors.New(cors.Config{
    AllowOrigins: []string{
      "http://localhost:80",
      "http://localhost:3000",
      "http://localhost:5174",
    },
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
    AllowCredentials: true,
  }))

// ===============
// || Public    ||
// ===============
  router.GET("/healthcheck", handlers.HealthCheck)
  api := router.Group("/api")
  {
    api.POST("/register", cfg.AuthHandler.Register)
    api.POST("/login", cfg.AuthHandler.Login)

    // Reads are public; a present token still attributes the caller.
    reads := api.Group("/")
    reads.Use(cfg.AuthMiddleware.OptionalAuth())
    reads.GET("/gadgets", cfg.GadgetHandler.List)
    reads.GET("/gadgets/:id", cfg.GadgetHandler.Get)
  }

// ===============
// || Protected ||
// ===============
  protected := router.Group("/api")
  protected.Use(cfg.AuthMiddleware.RequireAuth())
  // Auth
  protected.POST("/refresh", cfg.AuthHandler.Refresh)
  protected.POST("/logout", cfg.AuthHandler.Logout)
  // Gadgets
  protected.POST("/gadgets", cfg.GadgetHandler.Create)
  protected.PATCH("/gadgets/:id", cfg.GadgetHandler.Update)
  protected.DELETE("/gadgets/:id", cfg.GadgetHandler.Decommission)
  protected.POST("/gadgets/:id/self-destruct", cfg.GadgetHandler.SelfDestruct)

  return router
}
