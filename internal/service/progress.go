package service

import (
	"errors"
	"fmt"
	"hash/fnv"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hadikasem/AI-Financial-Advisor/internal/model"
	"github.com/hadikasem/AI-Financial-Advisor/internal/repository"
)

var (
	ErrNoActiveGoals = errors.New("no active goals found")
)

// ComputeInput carries everything the pacing calculator needs. It is pure
// data so the calculation can be tested without a database.
type ComputeInput struct {
	StartAmount   decimal.Decimal
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	StartDate     time.Time
	TargetDate    time.Time
	AsOf          time.Time
	// Threshold is the band in percentage points around the expected
	// trajectory that still counts as on track.
	Threshold float64
}

type ComputeResult struct {
	ProgressPct   float64
	PacingStatus  string
	PacingDetail  string
	DaysRemaining int
}

// Compute derives progress percentage and pacing against the linear
// trajectory from start date to target date.
func Compute(in ComputeInput) (ComputeResult, error) {
	if in.Threshold <= 0 {
		return ComputeResult{}, errors.New("pacing threshold must be positive")
	}

	var progressPct float64
	totalNeeded := in.TargetAmount.Sub(in.StartAmount)
	if totalNeeded.Sign() <= 0 {
		progressPct = 100
	} else {
		gained := in.CurrentAmount.Sub(in.StartAmount)
		pct, _ := gained.Div(totalNeeded).Mul(decimal.NewFromInt(100)).Float64()
		progressPct = math.Max(0, math.Min(100, pct))
	}

	totalDays := int(in.TargetDate.Sub(in.StartDate).Hours() / 24)
	elapsedDays := int(in.AsOf.Sub(in.StartDate).Hours() / 24)
	daysRemaining := int(in.TargetDate.Sub(in.AsOf).Hours() / 24)
	if daysRemaining < 0 {
		daysRemaining = 0
	}

	result := ComputeResult{
		ProgressPct:   progressPct,
		DaysRemaining: daysRemaining,
	}

	if totalDays <= 0 {
		if progressPct >= 100 {
			result.PacingStatus = model.PacingCompleted
		} else {
			result.PacingStatus = model.PacingOverdue
		}
		result.PacingDetail = "Goal date has passed"
		return result, nil
	}

	expected := float64(elapsedDays) / float64(totalDays) * 100
	diff := progressPct - expected

	switch {
	case math.Abs(diff) < in.Threshold:
		result.PacingStatus = model.PacingOnTrack
		result.PacingDetail = "On track with target pace"
	case diff > 0:
		weeks := int(diff * float64(totalDays) / 700)
		result.PacingStatus = model.PacingAhead
		result.PacingDetail = fmt.Sprintf("~%d weeks ahead of target pace", weeks)
	default:
		weeks := int(math.Abs(diff) * float64(totalDays) / 700)
		result.PacingStatus = model.PacingBehind
		result.PacingDetail = fmt.Sprintf("~%d weeks behind target pace", weeks)
	}

	return result, nil
}

type ProgressService struct {
	goalRepository        repository.GoalRepository
	accountRepository     repository.AccountRepository
	transactionRepository repository.TransactionRepository
	snapshotRepository    repository.SnapshotRepository
	simulationService     *SimulationService
	threshold             float64
}

func NewProgressService(
	goalRepository repository.GoalRepository,
	accountRepository repository.AccountRepository,
	transactionRepository repository.TransactionRepository,
	snapshotRepository repository.SnapshotRepository,
	simulationService *SimulationService,
	threshold float64,
) *ProgressService {
	return &ProgressService{
		goalRepository:        goalRepository,
		accountRepository:     accountRepository,
		transactionRepository: transactionRepository,
		snapshotRepository:    snapshotRepository,
		simulationService:     simulationService,
		threshold:             threshold,
	}
}

// GoalProgress is the API shape for one goal's progress metrics.
type GoalProgress struct {
	GoalID           string          `json:"goal_id"`
	GoalName         string          `json:"goal_name"`
	CurrentAmount    decimal.Decimal `json:"current_amount"`
	ProgressPct      float64         `json:"progress_pct"`
	PacingStatus     string          `json:"pacing_status"`
	PacingDetail     string          `json:"pacing_detail"`
	WeeklyNetSavings decimal.Decimal `json:"weekly_net_savings"`
	SavingsRate30d   decimal.Decimal `json:"savings_rate_30d"`
	TargetAmount     decimal.Decimal `json:"target_amount"`
	TargetDate       time.Time       `json:"target_date"`
	StartAmount      decimal.Decimal `json:"start_amount"`
	DaysRemaining    int             `json:"days_remaining"`
}

// UpdateResult summarizes one progress sweep for a user.
type UpdateResult struct {
	TimeElapsedDays int            `json:"time_elapsed_days"`
	Goals           []GoalProgress `json:"goals_progress"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// UpdateProgress advances the ledger simulation, recomputes every active
// goal and persists a snapshot per goal.
func (s *ProgressService) UpdateProgress(userID string) (*UpdateResult, error) {
	goals, err := s.goalRepository.ActiveGoals(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load goals: %w", err)
	}
	if len(goals) == 0 {
		return nil, ErrNoActiveGoals
	}

	elapsed, err := s.simulationService.AdvanceToNow(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to advance simulation: %w", err)
	}

	now := time.Now()
	result := &UpdateResult{
		TimeElapsedDays: elapsed,
		UpdatedAt:       now,
	}

	for _, goal := range goals {
		progress, err := s.computeForGoal(goal, now)
		if err != nil {
			return nil, err
		}
		result.Goals = append(result.Goals, *progress)

		err = s.snapshot(userID, goal, progress, now)
		if err != nil {
			slog.Warn("failed to persist progress snapshot", "error", err, "goal_id", goal.ID)
		}
	}

	return result, nil
}

// Progress returns the latest snapshot for a goal, computing fresh metrics
// when no snapshot exists yet.
func (s *ProgressService) Progress(userID, goalID string) (*GoalProgress, error) {
	goal, err := s.goalRepository.ByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.snapshotRepository.LatestByGoal(userID, goalID)
	if err == nil {
		return &GoalProgress{
			GoalID:           goal.ID,
			GoalName:         goal.Name,
			CurrentAmount:    snapshot.CurrentAmount,
			ProgressPct:      snapshot.ProgressPct,
			PacingStatus:     snapshot.PacingStatus,
			PacingDetail:     snapshot.PacingDetail,
			WeeklyNetSavings: snapshot.WeeklyNetSavings.Decimal,
			SavingsRate30d:   snapshot.SavingsRate30d.Decimal,
			TargetAmount:     snapshot.TargetAmount,
			TargetDate:       snapshot.TargetDate,
			StartAmount:      snapshot.StartAmount,
			DaysRemaining:    snapshot.DaysRemaining,
		}, nil
	}
	if !errors.Is(err, repository.ErrSnapshotNotFound) {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	return s.computeForGoal(goal, time.Now())
}

func (s *ProgressService) History(userID, goalID string, limit int) ([]*model.ProgressSnapshot, error) {
	return s.snapshotRepository.HistoryByGoal(userID, goalID, limit)
}

func (s *ProgressService) computeForGoal(goal *model.Goal, now time.Time) (*GoalProgress, error) {
	// Current amount is the sum across the user's active accounts
	accounts, err := s.accountRepository.Accounts(goal.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}

	current := decimal.Zero
	for _, a := range accounts {
		current = current.Add(a.Balance)
	}

	err = s.goalRepository.UpdateCurrentAmount(goal.UserID, goal.ID, current)
	if err != nil {
		slog.Warn("failed to update goal current amount", "error", err, "goal_id", goal.ID)
	}

	computed, err := Compute(ComputeInput{
		StartAmount:   goal.StartAmount,
		TargetAmount:  goal.TargetAmount,
		CurrentAmount: current,
		StartDate:     goal.StartDate,
		TargetDate:    goal.TargetDate,
		AsOf:          now,
		Threshold:     s.threshold,
	})
	if err != nil {
		return nil, err
	}

	weekly, err := s.transactionRepository.NetAmountSince(goal.UserID, now.AddDate(0, 0, -7))
	if err != nil {
		return nil, fmt.Errorf("failed to compute weekly net: %w", err)
	}
	monthly, err := s.transactionRepository.NetAmountSince(goal.UserID, now.AddDate(0, 0, -30))
	if err != nil {
		return nil, fmt.Errorf("failed to compute 30d net: %w", err)
	}

	return &GoalProgress{
		GoalID:           goal.ID,
		GoalName:         goal.Name,
		CurrentAmount:    current,
		ProgressPct:      computed.ProgressPct,
		PacingStatus:     computed.PacingStatus,
		PacingDetail:     computed.PacingDetail,
		WeeklyNetSavings: weekly,
		SavingsRate30d:   monthly,
		TargetAmount:     goal.TargetAmount,
		TargetDate:       goal.TargetDate,
		StartAmount:      goal.StartAmount,
		DaysRemaining:    computed.DaysRemaining,
	}, nil
}

func (s *ProgressService) snapshot(userID string, goal *model.Goal, progress *GoalProgress, now time.Time) error {
	return s.snapshotRepository.Create(&model.ProgressSnapshot{
		ID:            uuid.New().String(),
		UserID:        userID,
		GoalID:        goal.ID,
		AsOf:          now,
		CurrentAmount: progress.CurrentAmount,
		ProgressPct:   progress.ProgressPct,
		PacingStatus:  progress.PacingStatus,
		PacingDetail:  progress.PacingDetail,
		WeeklyNetSavings: decimal.NullDecimal{
			Decimal: progress.WeeklyNetSavings, Valid: true,
		},
		SavingsRate30d: decimal.NullDecimal{
			Decimal: progress.SavingsRate30d, Valid: true,
		},
		TargetAmount:  goal.TargetAmount,
		TargetDate:    goal.TargetDate,
		StartAmount:   goal.StartAmount,
		DaysRemaining: progress.DaysRemaining,
		SourceHash:    sourceHash(userID, goal.ID, progress.CurrentAmount.String(), now),
		CreatedAt:     now,
	})
}

// sourceHash is a short fingerprint of the snapshot inputs.
func sourceHash(userID, goalID, amount string, at time.Time) string {
	h := fnv.New32a()
	fmt.Fprintf(h, "%s_%s_%s_%s", userID, goalID, amount, at.Format(time.RFC3339Nano))
	return fmt.Sprintf("%08x", h.Sum32())
}
