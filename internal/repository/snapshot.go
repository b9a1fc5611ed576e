package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/hadikasem/AI-Financial-Advisor/internal/model"
)

var (
	ErrSnapshotNotFound = errors.New("progress snapshot not found")
)

type SnapshotRepository interface {
	Create(snapshot *model.ProgressSnapshot) error
	LatestByGoal(userID, goalID string) (*model.ProgressSnapshot, error)
	HistoryByGoal(userID, goalID string, limit int) ([]*model.ProgressSnapshot, error)
}

type snapshotRepository struct {
	db *sqlx.DB
}

func NewSnapshotRepository(db *sqlx.DB) SnapshotRepository {
	return &snapshotRepository{db: db}
}

func (r *snapshotRepository) Create(snapshot *model.ProgressSnapshot) error {
	query := `INSERT INTO progress_snapshots (id, user_id, goal_id, as_of, current_amount,
	              progress_pct, pacing_status, pacing_detail, weekly_net_savings, savings_rate_30d,
	              target_amount, target_date, start_amount, days_remaining, source_hash, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	_, err := r.db.Exec(query,
		snapshot.ID,
		snapshot.UserID,
		snapshot.GoalID,
		snapshot.AsOf,
		snapshot.CurrentAmount,
		snapshot.ProgressPct,
		snapshot.PacingStatus,
		snapshot.PacingDetail,
		snapshot.WeeklyNetSavings,
		snapshot.SavingsRate30d,
		snapshot.TargetAmount,
		snapshot.TargetDate,
		snapshot.StartAmount,
		snapshot.DaysRemaining,
		snapshot.SourceHash,
		snapshot.CreatedAt,
	)

	return err
}

func (r *snapshotRepository) LatestByGoal(userID, goalID string) (*model.ProgressSnapshot, error) {
	snapshot := &model.ProgressSnapshot{}
	query := `SELECT * FROM progress_snapshots
	          WHERE user_id = $1 AND goal_id = $2
	          ORDER BY as_of DESC LIMIT 1`

	err := r.db.Get(snapshot, query, userID, goalID)
	if err == sql.ErrNoRows {
		return nil, ErrSnapshotNotFound
	}

	return snapshot, err
}

func (r *snapshotRepository) HistoryByGoal(userID, goalID string, limit int) ([]*model.ProgressSnapshot, error) {
	if limit <= 0 {
		limit = 30
	}

	var snapshots []*model.ProgressSnapshot
	query := `SELECT * FROM progress_snapshots
	          WHERE user_id = $1 AND goal_id = $2
	          ORDER BY as_of DESC LIMIT $3`

	err := r.db.Select(&snapshots, query, userID, goalID, limit)
	if err != nil {
		return nil, err
	}

	return snapshots, nil
}
