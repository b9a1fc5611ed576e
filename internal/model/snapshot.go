package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Pacing classifications relative to the linear time trajectory.
const (
	PacingAhead     = "ahead"
	PacingOnTrack   = "on_track"
	PacingBehind    = "behind"
	PacingOverdue   = "overdue"
	PacingCompleted = "completed"
)

// ProgressSnapshot is a persisted memo of one progress computation. It is a
// derived cache, never the source of truth; the ledger is.
type ProgressSnapshot struct {
	ID               string              `db:"id" json:"id"`
	UserID           string              `db:"user_id" json:"user_id"`
	GoalID           string              `db:"goal_id" json:"goal_id"`
	AsOf             time.Time           `db:"as_of" json:"as_of"`
	CurrentAmount    decimal.Decimal     `db:"current_amount" json:"current_amount"`
	ProgressPct      float64             `db:"progress_pct" json:"progress_pct"`
	PacingStatus     string              `db:"pacing_status" json:"pacing_status"`
	PacingDetail     string              `db:"pacing_detail" json:"pacing_detail"`
	WeeklyNetSavings decimal.NullDecimal `db:"weekly_net_savings" json:"weekly_net_savings"`
	SavingsRate30d   decimal.NullDecimal `db:"savings_rate_30d" json:"savings_rate_30d"`
	TargetAmount     decimal.Decimal     `db:"target_amount" json:"target_amount"`
	TargetDate       time.Time           `db:"target_date" json:"target_date"`
	StartAmount      decimal.Decimal     `db:"start_amount" json:"start_amount"`
	DaysRemaining    int                 `db:"days_remaining" json:"days_remaining"`
	SourceHash       string              `db:"source_hash" json:"-"`
	CreatedAt        time.Time           `db:"created_at" json:"created_at"`
}
