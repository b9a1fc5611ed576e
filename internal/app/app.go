package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/hadikasem/AI-Financial-Advisor/internal/config"
	"github.com/hadikasem/AI-Financial-Advisor/internal/db"
	"github.com/hadikasem/AI-Financial-Advisor/internal/repository"
	"github.com/hadikasem/AI-Financial-Advisor/internal/scheduler"
	"github.com/hadikasem/AI-Financial-Advisor/internal/service"
	"github.com/hadikasem/AI-Financial-Advisor/internal/service/advisor"
)

type App struct {
	Cfg                 *config.Config
	DB                  *sqlx.DB
	UserRepository      repository.UserRepository
	GoalRepository      repository.GoalRepository
	AuthService         *service.AuthService
	EmailService        *service.EmailService
	AssessmentService   *service.AssessmentService
	GoalService         *service.GoalService
	LedgerService       *service.LedgerService
	SimulationService   *service.SimulationService
	ProgressService     *service.ProgressService
	GamificationService *service.GamificationService
	NotificationService *service.NotificationService
	AdvisorService      *advisor.Service
	Scheduler           *scheduler.Scheduler
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	tokenRepository := repository.NewTokenRepository(database)
	assessmentRepository := repository.NewAssessmentRepository(database)
	goalRepository := repository.NewGoalRepository(database)
	accountRepository := repository.NewAccountRepository(database)
	transactionRepository := repository.NewTransactionRepository(database)
	snapshotRepository := repository.NewSnapshotRepository(database)
	notificationRepository := repository.NewNotificationRepository(database)

	// Services
	emailService := service.NewEmailService(
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.AppURL,
		cfg.AppName,
		cfg.IsDevelopment(),
	)
	authService := service.NewAuthService(
		userRepository,
		tokenRepository,
		emailService,
		cfg.JWTSecret,
		cfg.JWTExpiry,
		cfg.TokenPasswordResetExpiry,
	)
	assessmentService, err := service.NewAssessmentService(assessmentRepository)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize assessment service: %v", err)
	}

	goalService := service.NewGoalService(goalRepository, accountRepository)
	ledgerService := service.NewLedgerService(accountRepository, transactionRepository)
	simulationService := service.NewSimulationService(userRepository, accountRepository, transactionRepository, nil)
	progressService := service.NewProgressService(
		goalRepository,
		accountRepository,
		transactionRepository,
		snapshotRepository,
		simulationService,
		cfg.PacingThreshold,
	)
	gamificationService := service.NewGamificationService(userRepository, goalRepository)
	notificationService := service.NewNotificationService(notificationRepository, userRepository, emailService)

	// LLM provider chain: configured primary, the other backend as secondary,
	// static fallback inside the service
	llmProviders, err := advisor.NewProviders(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize llm providers: %v", err)
	}
	advisorService := advisor.NewService(
		llmProviders,
		assessmentRepository,
		goalRepository,
		snapshotRepository,
	)

	sched := scheduler.New(
		cfg,
		userRepository,
		goalRepository,
		progressService,
		goalService,
		gamificationService,
		notificationService,
	)

	return &App{
		Cfg:                 cfg,
		DB:                  database,
		UserRepository:      userRepository,
		GoalRepository:      goalRepository,
		AuthService:         authService,
		EmailService:        emailService,
		AssessmentService:   assessmentService,
		GoalService:         goalService,
		LedgerService:       ledgerService,
		SimulationService:   simulationService,
		ProgressService:     progressService,
		GamificationService: gamificationService,
		NotificationService: notificationService,
		AdvisorService:      advisorService,
		Scheduler:           sched,
	}, nil
}

func (a *App) Close() error {
	if a.Scheduler != nil {
		a.Scheduler.Stop()
	}
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
