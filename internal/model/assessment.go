package model

import (
	"time"
)

const (
	AssessmentStatusInProgress = "in_progress"
	AssessmentStatusCompleted  = "completed"
)

// Risk profile labels produced by the scoring buckets.
const (
	RiskConservative           = "Conservative"
	RiskModeratelyConservative = "Moderately Conservative"
	RiskBalanced               = "Balanced"
	RiskModeratelyAggressive   = "Moderately Aggressive"
	RiskAggressive             = "Aggressive"
)

// Assessment is a user's questionnaire run. Answers accumulate while the
// status is in_progress; once completed the record is immutable and a retake
// creates a fresh one.
type Assessment struct {
	ID               string     `db:"id" json:"id"`
	UserID           string     `db:"user_id" json:"user_id"`
	Answers          AnswerMap  `db:"answers" json:"answers"`
	RiskScore        *float64   `db:"risk_score" json:"risk_score,omitempty"`
	RiskLabel        *string    `db:"risk_label" json:"risk_label,omitempty"`
	RiskDescription  *string    `db:"risk_description" json:"risk_description,omitempty"`
	IndividualScores ScoreMap   `db:"individual_scores" json:"individual_scores,omitempty"`
	QuestionWeights  ScoreMap   `db:"question_weights" json:"question_weights,omitempty"`
	Status           string     `db:"status" json:"status"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
	CompletedAt      *time.Time `db:"completed_at" json:"completed_at,omitempty"`
}

func (a *Assessment) IsCompleted() bool {
	return a.Status == AssessmentStatusCompleted
}
