package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/roomgate/backend/internal/config"
	"github.com/roomgate/backend/internal/db"
	"github.com/roomgate/backend/internal/handler"
	"github.com/roomgate/backend/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	ctx := context.Background()

	pool, err := db.NewPostgresPool(ctx, cfg.Postgres)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	repo := &db.Postgres{Pool: pool}
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatalf("schema: %v", err)
	}

	authService, err := service.NewAuthService(repo, cfg.Auth)
	if err != nil {
		log.Fatalf("auth service: %v", err)
	}
	userService := service.NewUserService(repo, authService.Hasher())
	meetingService := service.NewMeetingService(repo)
	doorService := service.NewDoorService(repo, repo, repo)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	meetingHandler := handler.NewMeetingHandler(meetingService)
	doorHandler := handler.NewDoorHandler(doorService)

	router := gin.Default()
	router.Use(handler.CORSMiddleware([]string{cfg.Server.CORSOrigin}, true))

	router.GET("/", handler.Root)
	router.GET("/ping", handler.Ping)
	router.GET("/openapi.json", handler.OpenAPIDoc)

	auth := router.Group("/api/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", handler.LoginRateLimiter(cfg.Auth.LoginRateLimit, cfg.Auth.LoginRateWindow), authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/logout", authHandler.Logout)
		auth.GET("/me", handler.AuthMiddleware(authService), authHandler.Me)
	}

	signup := router.Group("/api/signup", handler.AuthMiddleware(authService))
	{
		signup.POST("/create", handler.RequireRole("Admin", "Owner"), userHandler.Create)
		signup.GET("", userHandler.List)
		signup.PUT("/:id", userHandler.Update)
		signup.DELETE("/:id", handler.RequireRole("Admin", "Owner"), userHandler.Delete)
		signup.PUT("/:id/reset-password", handler.RequireRole("Admin", "Owner"), userHandler.ResetPassword)
	}

	meetings := router.Group("/api/meetings", handler.AuthMiddleware(authService))
	{
		meetings.POST("", meetingHandler.Create)
		meetings.GET("", meetingHandler.List)
		meetings.GET("/analytics/hours/:year/:month", meetingHandler.MonthlyHours)
		meetings.GET("/:id", meetingHandler.Get)
		meetings.PUT("/:id", meetingHandler.Update)
		meetings.DELETE("/:id", meetingHandler.Delete)
	}

	router.GET("/api/scans", handler.AuthMiddleware(authService), handler.RequireRole("Admin", "Owner"), doorHandler.RecentScans)

	// Badge readers authenticate with the card itself; no bearer token here.
	door := router.Group("/door")
	{
		door.POST("/validate", doorHandler.ValidateLabel)
		door.POST("/validate/:cardID/:roomId", doorHandler.ValidateCode)
	}

	log.Printf("listening on :%s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
