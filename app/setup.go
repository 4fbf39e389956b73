package app

import (
	"fmt"
	"log"
	"os"

	"github.com/AradGolbaghi/new-hw-planner/api"
	"github.com/AradGolbaghi/new-hw-planner/config"
	"github.com/AradGolbaghi/new-hw-planner/database"
	"github.com/AradGolbaghi/new-hw-planner/router"
	"github.com/AradGolbaghi/new-hw-planner/services"
	"github.com/AradGolbaghi/new-hw-planner/services/cron"
)

// SetupAndRunServer loads configuration, opens the storage backend,
// starts the scheduled jobs and serves the API until it exits.
func SetupAndRunServer() error {
	if err := config.LoadENV(); err != nil {
		log.Printf("Warning: No .env file loaded: %v", err)
	}

	env, err := config.Get()
	if err != nil {
		return err
	}

	store, err := database.Open(env)
	if err != nil {
		return fmt.Errorf("failed to open storage backend %q: %w", env.STORE_DRIVER, err)
	}

	if err := store.Init(); err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Scheduled jobs: due-date reminder emails and storage health probes
	var cronManager *cron.CronManager
	if os.Getenv("CRON_ENABLED") != "false" {
		reminderService := services.NewReminderService(store)
		emailService := services.NewEmailService(env)

		cronManager = cron.NewCronManager(store, reminderService, emailService)
		if err := cronManager.Start(); err != nil {
			log.Printf("Warning: Failed to start cron jobs: %v", err)
			cronManager = nil
		}
	}

	defer func() {
		if cronManager != nil {
			cronManager.Stop()
		}
		if err := store.Close(); err != nil {
			log.Printf("Warning: Failed to close storage: %v", err)
		}
	}()

	server := api.NewAPIServer(fmt.Sprintf(":%d", env.PORT))
	router.SetupRoutes(server.GetEngine(), store, env)

	return server.Run()
}
