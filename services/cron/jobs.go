package cron

import (
	"fmt"
	"time"
)

// Reminders cover assignments due within the next two days
const reminderWindow = 48 * time.Hour

// SendDueReminders selects the assignments due soon, grouped per
// teacher, and hands each group to the email service
func (m *CronManager) SendDueReminders() {
	groups, err := m.reminders.Upcoming(reminderWindow)
	if err != nil {
		m.logJobError("send_due_reminders", err)
		return
	}

	sent := 0
	for teacherEmail, assignments := range groups {
		if err := m.email.SendAssignmentReminder(teacherEmail, assignments); err != nil {
			m.logJobError("send_due_reminders", err)
			continue
		}
		sent++
	}

	m.logJobComplete("send_due_reminders", fmt.Sprintf("notified %d teacher(s)", sent))
}

// CheckStorageHealth pings the storage backend so an unreachable store
// shows up in the logs before a teacher hits it
func (m *CronManager) CheckStorageHealth() {
	if err := m.store.HealthCheck(); err != nil {
		m.logJobError("storage_health_check", err)
		return
	}
	m.logJobComplete("storage_health_check", "storage reachable")
}
