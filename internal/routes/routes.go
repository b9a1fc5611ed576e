package routes

import (
	"net/http"

	"github.com/hadikasem/AI-Financial-Advisor/internal/app"
	"github.com/hadikasem/AI-Financial-Advisor/internal/handler"
	"github.com/hadikasem/AI-Financial-Advisor/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	health := handler.NewHealthHandler(app.DB, app.Cfg.AppName)
	auth := handler.NewAuthHandler(app.AuthService)
	profile := handler.NewProfileHandler(app.UserRepository)
	assessment := handler.NewAssessmentHandler(app.AssessmentService)
	goal := handler.NewGoalHandler(app.GoalService, app.AdvisorService)
	account := handler.NewAccountHandler(app.LedgerService, app.SimulationService)
	progress := handler.NewProgressHandler(app.ProgressService, app.GoalService, app.GamificationService, app.NotificationService, app.GoalRepository)
	recommendation := handler.NewRecommendationHandler(app.AdvisorService, app.NotificationService)
	notification := handler.NewNotificationHandler(app.NotificationService)
	gamification := handler.NewGamificationHandler(app.GamificationService)

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	mux.HandleFunc("GET /api/health", health.Health)

	// Auth (rate limited)
	rateLimiter := middleware.RateLimitAuth()

	mux.HandleFunc("POST /api/auth/register", rateLimiter(auth.Register))
	mux.HandleFunc("POST /api/auth/login", rateLimiter(auth.Login))
	mux.HandleFunc("POST /api/auth/forgot-password", rateLimiter(auth.ForgotPassword))
	mux.HandleFunc("POST /api/auth/reset-password", rateLimiter(auth.ResetPassword))

	// ============================================================================
	// PROTECTED ROUTES
	// ============================================================================

	// Profile
	mux.HandleFunc("GET /api/profile", middleware.RequireAuth(profile.Me))
	mux.HandleFunc("PATCH /api/profile", middleware.RequireAuth(profile.Update))
	mux.HandleFunc("POST /api/auth/change-password", middleware.RequireAuth(auth.ChangePassword))

	// Risk assessment
	mux.HandleFunc("GET /api/assessment/questions", middleware.RequireAuth(assessment.Questions))
	mux.HandleFunc("POST /api/assessment", middleware.RequireAuth(assessment.Start))
	mux.HandleFunc("POST /api/assessment/{id}/answers", middleware.RequireAuth(assessment.Answer))
	mux.HandleFunc("POST /api/assessment/{id}/complete", middleware.RequireAuth(assessment.Complete))
	mux.HandleFunc("GET /api/assessment/latest", middleware.RequireAuth(assessment.Latest))
	mux.HandleFunc("GET /api/assessment/history", middleware.RequireAuth(assessment.History))

	// Goals
	mux.HandleFunc("GET /api/goals", middleware.RequireAuth(goal.List))
	mux.HandleFunc("POST /api/goals", middleware.RequireAuth(goal.Create))
	mux.HandleFunc("GET /api/goals/categories", middleware.RequireAuth(goal.Categories))
	mux.HandleFunc("GET /api/goals/suggestions", middleware.RequireAuth(goal.Suggestions))
	mux.HandleFunc("GET /api/goals/{id}", middleware.RequireAuth(goal.Get))
	mux.HandleFunc("PUT /api/goals/{id}", middleware.RequireAuth(goal.Update))
	mux.HandleFunc("DELETE /api/goals/{id}", middleware.RequireAuth(goal.Delete))

	// Accounts and ledger
	mux.HandleFunc("GET /api/accounts", middleware.RequireAuth(account.Accounts))
	mux.HandleFunc("GET /api/transactions", middleware.RequireAuth(account.Transactions))
	mux.HandleFunc("POST /api/transactions", middleware.RequireAuth(account.CreateTransaction))
	mux.HandleFunc("POST /api/simulation/advance", middleware.RequireAuth(account.Simulate))

	// Progress
	mux.HandleFunc("POST /api/progress/update", middleware.RequireAuth(progress.Update))
	mux.HandleFunc("GET /api/goals/{id}/progress", middleware.RequireAuth(progress.Get))
	mux.HandleFunc("GET /api/goals/{id}/progress/history", middleware.RequireAuth(progress.History))

	// Recommendations
	mux.HandleFunc("GET /api/recommendations", middleware.RequireAuth(recommendation.Recommendations))
	mux.HandleFunc("POST /api/recommendations/explain", middleware.RequireAuth(recommendation.Explain))
	mux.HandleFunc("POST /api/advisor/help", middleware.RequireAuth(recommendation.Help))
	mux.HandleFunc("GET /api/advisor/status", middleware.RequireAuth(recommendation.ProviderStatus))

	// Notifications
	mux.HandleFunc("GET /api/notifications", middleware.RequireAuth(notification.List))
	mux.HandleFunc("GET /api/notifications/unread-count", middleware.RequireAuth(notification.UnreadCount))
	mux.HandleFunc("POST /api/notifications/{id}/read", middleware.RequireAuth(notification.MarkRead))
	mux.HandleFunc("POST /api/notifications/read-all", middleware.RequireAuth(notification.MarkAllRead))

	// Gamification
	mux.HandleFunc("GET /api/gamification", middleware.RequireAuth(gamification.Data))
	mux.HandleFunc("POST /api/gamification/check-in", middleware.RequireAuth(gamification.CheckIn))
	mux.HandleFunc("GET /api/gamification/leaderboard", middleware.RequireAuth(gamification.Leaderboard))

	// Global middleware - executed in order (top to bottom)
	h := middleware.Chain(
		mux,
		middleware.CORS,
		middleware.RequestLogging,
		middleware.AuthMiddleware(app.AuthService, app.UserRepository),
	)

	return h
}
