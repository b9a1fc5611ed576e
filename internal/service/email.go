package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

type EmailService struct {
	client    *resend.Client
	fromEmail string
	isDev     bool
	appURL    string
	appName   string
}

func NewEmailService(apiKey, fromEmail, appURL, appName string, isDev bool) *EmailService {
	var client *resend.Client
	if apiKey != "" && !isDev {
		client = resend.NewClient(apiKey)
	}

	return &EmailService{
		client:    client,
		fromEmail: fromEmail,
		isDev:     isDev,
		appURL:    appURL,
		appName:   appName,
	}
}

func (s *EmailService) send(emailType, to, subject, body string) error {
	if s.isDev {
		slog.Info("email sent (dev mode)", "type", emailType, "to", to, "subject", subject)
		return nil
	}

	if s.client == nil {
		return fmt.Errorf("email service not configured (missing RESEND_API_KEY)")
	}

	params := &resend.SendEmailRequest{
		From:    s.fromEmail,
		To:      []string{to},
		Subject: subject,
		Text:    body,
	}

	_, err := s.client.Emails.SendWithContext(context.Background(), params)
	if err == nil {
		slog.Info("email sent", "type", emailType, "to", to)
	}
	return err
}

func (s *EmailService) SendWelcomeEmail(email, name string) error {
	subject, body := welcomeEmailTemplate(name, s.appName)
	return s.send("welcome", email, subject, body)
}

func (s *EmailService) SendPasswordResetEmail(email, token, name string) error {
	resetURL := fmt.Sprintf("%s/reset-password/%s", s.appURL, token)
	subject, body := passwordResetEmailTemplate(name, resetURL, s.appName)
	return s.send("password_reset", email, subject, body)
}

func (s *EmailService) SendMilestoneEmail(email, name, goalName string, progressPct float64) error {
	subject, body := milestoneEmailTemplate(name, goalName, progressPct, s.appName)
	return s.send("milestone", email, subject, body)
}

func (s *EmailService) SendDeadlineEmail(email, name, goalName string, daysLeft int) error {
	subject, body := deadlineEmailTemplate(name, goalName, daysLeft, s.appName)
	return s.send("deadline", email, subject, body)
}

func (s *EmailService) SendWeeklyUpdateEmail(email, name, summary string) error {
	subject, body := weeklyUpdateEmailTemplate(name, summary, s.appName)
	return s.send("weekly_update", email, subject, body)
}
