package app

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/appadook/appadook-portfolio-next/app/controller"
	"github.com/appadook/appadook-portfolio-next/app/router"
	"github.com/appadook/appadook-portfolio-next/db"
	"github.com/appadook/appadook-portfolio-next/repository"
	"github.com/appadook/appadook-portfolio-next/service"
)

// Initialize initializes the application
func Initialize() error {
	// Initialize database connection
	if err := db.InitDB(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	// Redis is optional: with REDIS_ADDR set, change events fan out across
	// instances; without it the hub broadcasts in-process only
	var rdb *redis.Client
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: addr})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			return fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
		}
		log.Printf("✓ Redis change-event bridge enabled (%s)", addr)
	}
	hub := service.NewWatchHub(rdb)

	// Initialize repositories
	profileRepo := repository.NewProfileRepository()
	experienceRepo := repository.NewExperienceRepository()
	projectRepo := repository.NewProjectRepository()
	technologyRepo := repository.NewTechnologyRepository()
	authRepo := repository.NewAuthRepository()

	// Initialize services
	authService := service.NewAuthService(authRepo)
	draftService := service.NewDraftService(hub, experienceRepo, projectRepo, technologyRepo)

	// Create controllers
	controllers := &router.Controllers{
		Profile:    controller.NewProfileController(profileRepo, hub),
		Experience: controller.NewExperienceController(experienceRepo, hub),
		Project:    controller.NewProjectController(projectRepo, hub),
		Technology: controller.NewTechnologyController(technologyRepo, hub),
		Draft:      controller.NewDraftController(draftService),
		Auth:       controller.NewAuthController(authService),
		Subscribe:  controller.NewSubscribeController(hub),
	}

	// Setup routes using standard http router
	router.SetupRoutes(controllers, authService)

	return nil
}
