package services

import (
	"crypto/tls"
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"github.com/AradGolbaghi/new-hw-planner/config"
	"github.com/AradGolbaghi/new-hw-planner/model"
)

// EmailService delivers assignment reminder emails via SMTP. The engine
// only decides which assignments qualify (see ReminderService); this is
// the delivery glue.
type EmailService struct {
	host     string
	port     string
	username string
	password string
	from     string
}

// NewEmailService creates a new email service instance
func NewEmailService(env *config.EnvironmentVariable) *EmailService {
	host := env.SMTP_HOST
	if host == "" {
		host = "smtp.gmail.com"
	}
	port := env.SMTP_PORT
	if port == "" {
		port = "587"
	}
	from := env.SMTP_FROM
	if from == "" {
		from = "noreply@hw-planner.local"
	}

	return &EmailService{
		host:     host,
		port:     port,
		username: env.SMTP_USERNAME,
		password: env.SMTP_PASSWORD,
		from:     from,
	}
}

// IsConfigured checks if SMTP is properly configured
func (e *EmailService) IsConfigured() bool {
	return e.username != "" && e.password != ""
}

// SendAssignmentReminder emails a teacher the list of their assignments
// due soon. When SMTP is not configured the reminder is logged instead
// of sent, so the cron job stays harmless in development.
func (e *EmailService) SendAssignmentReminder(toEmail string, assignments []model.Assignment) error {
	if len(assignments) == 0 {
		return nil
	}
	if !e.IsConfigured() {
		log.Printf("SMTP not configured. Would remind %s about %d assignment(s)", toEmail, len(assignments))
		return nil
	}

	subject := fmt.Sprintf("%d assignment(s) due soon", len(assignments))
	body := buildReminderBody(assignments)

	return e.sendEmail(toEmail, subject, body)
}

// buildReminderBody creates the plain-text reminder listing
func buildReminderBody(assignments []model.Assignment) string {
	var b strings.Builder
	b.WriteString("The following assignments are due soon:\r\n\r\n")
	for _, a := range assignments {
		fmt.Fprintf(&b, "- %s (%s), due %s\r\n", a.Title, a.Subject, a.DueDate.Format("Mon 02 Jan 2006 15:04"))
	}
	b.WriteString("\r\nThis is an automated reminder from your homework planner.\r\n")
	return b.String()
}

func (e *EmailService) sendEmail(to, subject, body string) error {
	headers := make(map[string]string)
	headers["From"] = fmt.Sprintf("Homework Planner <%s>", e.from)
	headers["To"] = to
	headers["Subject"] = subject
	headers["MIME-Version"] = "1.0"
	headers["Content-Type"] = "text/plain; charset=UTF-8"

	var message strings.Builder
	for k, v := range headers {
		message.WriteString(fmt.Sprintf("%s: %s\r\n", k, v))
	}
	message.WriteString("\r\n")
	message.WriteString(body)

	addr := fmt.Sprintf("%s:%s", e.host, e.port)
	auth := smtp.PlainAuth("", e.username, e.password, e.host)

	tlsConfig := &tls.Config{
		ServerName: e.host,
	}

	conn, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer conn.Close()

	if err := conn.StartTLS(tlsConfig); err != nil {
		return fmt.Errorf("failed to start TLS: %w", err)
	}
	if err := conn.Auth(auth); err != nil {
		return fmt.Errorf("SMTP authentication failed: %w", err)
	}
	if err := conn.Mail(e.from); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err := conn.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := conn.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}
	if _, err := w.Write([]byte(message.String())); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	return conn.Quit()
}
