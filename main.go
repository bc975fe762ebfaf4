package main

import (
	"log"
	"promptvault-backend/config"
	"promptvault-backend/internal/api"
	"promptvault-backend/internal/database"
	"promptvault-backend/internal/models"
	"promptvault-backend/pkg/logger"

	"golang.org/x/crypto/bcrypt"
)

// @title promptvault-backend API
// @version 1.0
// @description Shared prompt library: submit, browse, vote on, bookmark and copy reusable prompts, with staff moderation and versioned edits.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	err = logger.InitLogger(&logger.Config{
		Level:      cfg.LogLevel,
		Filename:   cfg.LogFilename,
		MaxSize:    cfg.LogMaxSize,
		MaxBackups: cfg.LogMaxBackups,
		MaxAge:     cfg.LogMaxAge,
		Compress:   cfg.LogCompress,
	})
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	router, err := api.NewRouter()
	if err != nil {
		log.Fatalf("failed to create router: %v", err)
	}

	// Migrate the schema
	err = database.DB.AutoMigrate(
		&models.User{},
		&models.Prompt{},
		&models.PromptVersion{},
		&models.Vote{},
		&models.Bookmark{},
		&models.CopiedPromptFeedback{},
	)
	if err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	initStaffUser(cfg)

	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}

// initStaffUser ensures the configured staff account exists so a fresh
// deployment can moderate without manual database edits.
func initStaffUser(cfg *config.Config) {
	if cfg.StaffPassword == "" {
		log.Println("STAFF_PASSWORD not set, skipping staff bootstrap")
		return
	}

	var staffUser models.User
	result := database.DB.Where("username = ?", cfg.StaffUsername).First(&staffUser)

	if result.Error != nil {
		if result.Error.Error() == "record not found" {
			hashedPassword, err := bcrypt.GenerateFromPassword([]byte(cfg.StaffPassword), bcrypt.DefaultCost)
			if err != nil {
				log.Fatalf("failed to hash staff password: %v", err)
			}

			staffUser = models.User{
				Username: cfg.StaffUsername,
				Password: string(hashedPassword),
				Role:     models.RoleStaff,
			}

			if err := database.DB.Create(&staffUser).Error; err != nil {
				log.Fatalf("failed to create staff user: %v", err)
			}
			log.Println("Staff user created successfully!")
		} else {
			log.Fatalf("failed to check for staff user: %v", result.Error)
		}
	} else {
		log.Println("Staff user already exists.")
	}
}
