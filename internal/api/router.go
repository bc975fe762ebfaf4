package api

import (
	"promptvault-backend/config"
	_ "promptvault-backend/docs"
	"promptvault-backend/internal/api/v1/auth"
	"promptvault-backend/internal/api/v1/feedback"
	"promptvault-backend/internal/api/v1/prompt"
	userRoutes "promptvault-backend/internal/api/v1/user"
	"promptvault-backend/internal/database"
	"promptvault-backend/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func NewRouter() (*gin.Engine, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	_, err = database.Connect(cfg.DSN())
	if err != nil {
		return nil, err
	}

	err = database.ConnectRedis(cfg)
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(middleware.Logger(), gin.Recovery())

	// Configure CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:8080"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1
	v1 := router.Group("/api/v1")
	{
		auth.RegisterRoutes(v1)

		authorized := v1.Group("/")
		authorized.Use(middleware.AuthMiddleware())
		{
			userRoutes.RegisterRoutes(authorized)
			prompt.RegisterRoutes(authorized)
			feedback.RegisterRoutes(authorized)
		}

		// Moderation routes
		staff := v1.Group("/")
		staff.Use(middleware.StaffAuthMiddleware())
		{
			prompt.RegisterStaffRoutes(staff)
		}
	}

	return router, nil
}
