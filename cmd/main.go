package main

import (
  "fmt"
  "os"
  "github.com/yungbote/gadgetvault-backend/internal/cache"
  "github.com/yungbote/gadgetvault-backend/internal/db"
  "github.com/yungbote/gadgetvault-backend/internal/handlers"
  "github.com/yungbote/gadgetvault-backend/internal/logger"
  "github.com/yungbote/gadgetvault-backend/internal/middleware"
  "github.com/yungbote/gadgetvault-backend/internal/repos"
  "github.com/yungbote/gadgetvault-backend/internal/server"
  "github.com/yungbote/gadgetvault-backend/internal/services"
  "github.com/yungbote/gadgetvault-backend/internal/utils"
)

func main() {
  // Logger
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Env
  log.Info("Loading environment variables from main...")
  jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
  accessTokenTTL := utils.GetEnvAsSeconds("ACCESS_TOKEN_TTL", 3600, log)
  refreshTokenTTL := utils.GetEnvAsSeconds("REFRESH_TOKEN_TTL", 86400, log)
  cacheTTL := utils.GetEnvAsSeconds("CACHE_TTL_SECONDS", 3600, log)
  port := utils.GetEnv("PORT", "8080", log)

  // Postgres
  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Error("Postgres init failed", "error", err)
    os.Exit(1)
  }
  if err = postgresService.AutoMigrateAll(); err != nil {
    log.Error("Postgres auto migration failed", "error", err)
    os.Exit(1)
  }
  thePG := postgresService.DB()

  // Cache
  log.Info("Setting up cache from main...")
  cacheService, err := cache.NewRedisCache(log)
  if err != nil {
    log.Warn("Redis unavailable, using in-process cache", "error", err)
    cacheService = cache.NewMemoryCache(log, cacheTTL)
  }

  // Repos
  log.Info("Setting up Repos from main...")
  userRepo := repos.NewUserRepo(thePG, log)
  userTokenRepo := repos.NewUserTokenRepo(thePG, log)
  gadgetRepo := repos.NewGadgetRepo(thePG, log)

  // Services
  log.Info("Setting up Services from main...")
  authService := services.NewAuthService(thePG, log, userRepo, userTokenRepo, jwtSecretKey, accessTokenTTL, refreshTokenTTL)
  gadgetService := services.NewGadgetService(thePG, log, gadgetRepo, cacheService, cacheTTL)

  // Handlers
  log.Info("Setting up Handlers from main...")
  authHandler := handlers.NewAuthHandler(authService)
  gadgetHandler := handlers.NewGadgetHandler(gadgetService)

  // Middleware
  authMiddleware := middleware.NewAuthMiddleware(log, authService)

  // Router
  router := server.NewRouter(server.RouterConfig{
    AuthHandler:    authHandler,
    AuthMiddleware: authMiddleware,
    GadgetHandler:  gadgetHandler,
  })

  log.Info("Starting server...", "port", port)
  if err := router.Run(":" + port); err != nil {
    log.Fatal("Server exited", "error", err)
  }
}
