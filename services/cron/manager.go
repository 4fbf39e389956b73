package cron

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/AradGolbaghi/new-hw-planner/database"
	"github.com/AradGolbaghi/new-hw-planner/services"
)

// CronManager manages all scheduled jobs of the planner
type CronManager struct {
	cron      *cron.Cron
	store     database.Storage
	reminders *services.ReminderService
	email     *services.EmailService
}

// NewCronManager creates a new cron manager
func NewCronManager(store database.Storage, reminders *services.ReminderService, email *services.EmailService) *CronManager {
	// Seconds precision keeps the schedule syntax explicit
	c := cron.New(cron.WithSeconds())

	return &CronManager{
		cron:      c,
		store:     store,
		reminders: reminders,
		email:     email,
	}
}

// Start registers and starts all cron jobs
func (m *CronManager) Start() error {
	log.Println("Starting cron jobs...")

	if err := m.registerJobs(); err != nil {
		return err
	}

	m.cron.Start()

	log.Println("Cron jobs started successfully")
	return nil
}

// Stop stops all cron jobs
func (m *CronManager) Stop() {
	log.Println("Stopping cron jobs...")
	ctx := m.cron.Stop()
	<-ctx.Done()
	log.Println("Cron jobs stopped")
}

// registerJobs registers all cron jobs with their schedules
func (m *CronManager) registerJobs() error {
	// 1. Daily at 7 AM: email teachers about assignments due soon
	_, err := m.cron.AddFunc("0 0 7 * * *", func() {
		m.logJobStart("send_due_reminders")
		m.SendDueReminders()
	})
	if err != nil {
		return err
	}

	// 2. Every hour: verify the storage backend is reachable
	_, err = m.cron.AddFunc("0 0 * * * *", func() {
		m.logJobStart("storage_health_check")
		m.CheckStorageHealth()
	})
	if err != nil {
		return err
	}

	log.Println("All cron jobs registered successfully")
	return nil
}

// logJobStart logs the start of a cron job
func (m *CronManager) logJobStart(jobName string) {
	log.Printf("[CRON] Starting job: %s at %s", jobName, time.Now().Format(time.RFC3339))
}

// logJobComplete logs successful completion of a cron job
func (m *CronManager) logJobComplete(jobName string, message string) {
	log.Printf("[CRON] Completed job: %s - %s", jobName, message)
}

// logJobError logs a cron job error
func (m *CronManager) logJobError(jobName string, err error) {
	log.Printf("[CRON] Error in job: %s - %v", jobName, err)
}
