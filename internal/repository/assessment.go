package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/hadikasem/AI-Financial-Advisor/internal/model"
)

var (
	ErrAssessmentNotFound = errors.New("assessment not found")
)

type AssessmentRepository interface {
	Create(assessment *model.Assessment) error
	ByID(userID, assessmentID string) (*model.Assessment, error)
	LatestCompleted(userID string) (*model.Assessment, error)
	InProgress(userID string) (*model.Assessment, error)
	Update(assessment *model.Assessment) error
	History(userID string) ([]*model.Assessment, error)
}

type assessmentRepository struct {
	db *sqlx.DB
}

func NewAssessmentRepository(db *sqlx.DB) AssessmentRepository {
	return &assessmentRepository{db: db}
}

func (r *assessmentRepository) Create(assessment *model.Assessment) error {
	query := `INSERT INTO assessments (id, user_id, answers, individual_scores, question_weights, status, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(query,
		assessment.ID,
		assessment.UserID,
		assessment.Answers,
		assessment.IndividualScores,
		assessment.QuestionWeights,
		assessment.Status,
		assessment.CreatedAt,
	)

	return err
}

func (r *assessmentRepository) ByID(userID, assessmentID string) (*model.Assessment, error) {
	assessment := &model.Assessment{}
	query := `SELECT * FROM assessments WHERE id = $1 AND user_id = $2`

	err := r.db.Get(assessment, query, assessmentID, userID)
	if err == sql.ErrNoRows {
		return nil, ErrAssessmentNotFound
	}

	return assessment, err
}

func (r *assessmentRepository) LatestCompleted(userID string) (*model.Assessment, error) {
	assessment := &model.Assessment{}
	query := `SELECT * FROM assessments
	          WHERE user_id = $1 AND status = $2
	          ORDER BY completed_at DESC LIMIT 1`

	err := r.db.Get(assessment, query, userID, model.AssessmentStatusCompleted)
	if err == sql.ErrNoRows {
		return nil, ErrAssessmentNotFound
	}

	return assessment, err
}

func (r *assessmentRepository) InProgress(userID string) (*model.Assessment, error) {
	assessment := &model.Assessment{}
	query := `SELECT * FROM assessments
	          WHERE user_id = $1 AND status = $2
	          ORDER BY created_at DESC LIMIT 1`

	err := r.db.Get(assessment, query, userID, model.AssessmentStatusInProgress)
	if err == sql.ErrNoRows {
		return nil, ErrAssessmentNotFound
	}

	return assessment, err
}

func (r *assessmentRepository) Update(assessment *model.Assessment) error {
	query := `UPDATE assessments
	          SET answers = $1, risk_score = $2, risk_label = $3, risk_description = $4,
	              individual_scores = $5, question_weights = $6, status = $7, completed_at = $8
	          WHERE id = $9 AND user_id = $10`

	result, err := r.db.Exec(query,
		assessment.Answers,
		assessment.RiskScore,
		assessment.RiskLabel,
		assessment.RiskDescription,
		assessment.IndividualScores,
		assessment.QuestionWeights,
		assessment.Status,
		assessment.CompletedAt,
		assessment.ID,
		assessment.UserID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrAssessmentNotFound
	}

	return nil
}

func (r *assessmentRepository) History(userID string) ([]*model.Assessment, error) {
	var assessments []*model.Assessment
	query := `SELECT * FROM assessments WHERE user_id = $1 ORDER BY created_at DESC`

	err := r.db.Select(&assessments, query, userID)
	if err != nil {
		return nil, err
	}

	return assessments, nil
}
