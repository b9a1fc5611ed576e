package service

import "fmt"

func welcomeEmailTemplate(name, appName string) (string, string) {
	subject := fmt.Sprintf("Welcome to %s", appName)
	body := fmt.Sprintf(`Hi %s,

Welcome to %s! Your account is ready.

Start by taking the risk assessment so we can tailor recommendations to
you, then create your first savings goal.

Happy saving!
The %s Team`, name, appName, appName)
	return subject, body
}

func passwordResetEmailTemplate(name, resetURL, appName string) (string, string) {
	subject := fmt.Sprintf("Reset your %s password", appName)
	body := fmt.Sprintf(`Hi %s,

We received a request to reset your password. Click the link below to
choose a new one:

%s

This link expires in 1 hour. If you did not request a reset, you can
safely ignore this email.

The %s Team`, name, resetURL, appName)
	return subject, body
}

func milestoneEmailTemplate(name, goalName string, progressPct float64, appName string) (string, string) {
	subject := fmt.Sprintf("Milestone reached on %s", goalName)
	body := fmt.Sprintf(`Hi %s,

Great news! Your goal "%s" just hit %.0f%% of its target.

Keep it up!
The %s Team`, name, goalName, progressPct, appName)
	return subject, body
}

func deadlineEmailTemplate(name, goalName string, daysLeft int, appName string) (string, string) {
	subject := fmt.Sprintf("%s is due soon", goalName)
	body := fmt.Sprintf(`Hi %s,

Your goal "%s" reaches its target date in %d days. Check your progress
and adjust your savings plan if needed.

The %s Team`, name, goalName, daysLeft, appName)
	return subject, body
}

func weeklyUpdateEmailTemplate(name, summary, appName string) (string, string) {
	subject := "Your weekly savings update"
	body := fmt.Sprintf(`Hi %s,

Here is how your goals are tracking this week:

%s

The %s Team`, name, summary, appName)
	return subject, body
}
