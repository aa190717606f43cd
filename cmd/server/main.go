package main

import (
	"log"

	"platformone/config"
	"platformone/internal/assistant"
	"platformone/internal/cache"
	"platformone/internal/database"
	"platformone/internal/handler"
	"platformone/internal/repository"
	"platformone/internal/service"
	"platformone/pkg/logger"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.LoadConfig()

	pool, err := database.InitDatabase(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer pool.Close()

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to initialize redis: %v", err)
	}
	defer rdb.Close()

	eventRepo := repository.NewEventRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	questionRepo := repository.NewQuestionRepository(pool)

	sessions := cache.NewRedisSessionStore(rdb, cfg.Auth.SessionTTL)
	planner := assistant.NewGeminiPlanner(cfg.Gemini)

	assistantService := service.NewAssistantService(planner, eventRepo, userRepo)
	eventService := service.NewEventService(eventRepo, userRepo, bookingRepo, questionRepo)
	userService := service.NewUserService(userRepo, sessions, cfg.Auth)

	router := gin.Default()
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	handler.NewAssistantHandler(assistantService).RegisterRoutes(router)
	handler.NewEventHandler(eventService).RegisterRoutes(router)
	handler.NewUserHandler(userService).RegisterRoutes(router)
	handler.NewAuthHandler(userService).RegisterRoutes(router)

	logger.WithComponent("server").Info("starting server on :" + cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Server exited: %v", err)
	}
}
