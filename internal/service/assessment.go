package service

import (
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/hadikasem/AI-Financial-Advisor/internal/model"
	"github.com/hadikasem/AI-Financial-Advisor/internal/repository"
)

//go:embed questions.yaml
var questionsYAML []byte

var (
	ErrUnknownQuestion      = errors.New("unknown question")
	ErrInvalidAnswer        = errors.New("invalid answer")
	ErrAssessmentIncomplete = errors.New("assessment has unanswered questions")
	ErrAssessmentDone       = errors.New("assessment already completed")
)

// Question is one entry of the fixed risk questionnaire.
type Question struct {
	ID      string   `yaml:"id" json:"id"`
	Prompt  string   `yaml:"prompt" json:"prompt"`
	Type    string   `yaml:"type" json:"type"` // numeric or choice
	Weight  float64  `yaml:"weight" json:"weight"`
	Min     float64  `yaml:"min" json:"min,omitempty"`
	Max     float64  `yaml:"max" json:"max,omitempty"`
	Bands   []Band   `yaml:"bands" json:"-"`
	Choices []Choice `yaml:"choices" json:"choices,omitempty"`
}

// Band scores a numeric answer. Bands are listed with descending Min; the
// first band the value reaches wins.
type Band struct {
	Min   float64 `yaml:"min" json:"min"`
	Score float64 `yaml:"score" json:"score"`
}

type Choice struct {
	Label string  `yaml:"label" json:"label"`
	Score float64 `yaml:"score" json:"-"`
}

type questionnaire struct {
	RiskDescriptions map[string]string `yaml:"risk_descriptions"`
	Questions        []Question        `yaml:"questions"`
}

type AssessmentService struct {
	assessmentRepository repository.AssessmentRepository
	questions            []Question
	questionIndex        map[string]*Question
	riskDescriptions     map[string]string
	weightsSum           float64
}

func NewAssessmentService(assessmentRepository repository.AssessmentRepository) (*AssessmentService, error) {
	var q questionnaire
	err := yaml.Unmarshal(questionsYAML, &q)
	if err != nil {
		return nil, fmt.Errorf("failed to parse questionnaire: %w", err)
	}

	s := &AssessmentService{
		assessmentRepository: assessmentRepository,
		questions:            q.Questions,
		questionIndex:        make(map[string]*Question, len(q.Questions)),
		riskDescriptions:     q.RiskDescriptions,
	}
	for i := range s.questions {
		s.questionIndex[s.questions[i].ID] = &s.questions[i]
		s.weightsSum += s.questions[i].Weight
	}
	if s.weightsSum == 0 {
		s.weightsSum = 1
	}

	return s, nil
}

// Questions returns the questionnaire in presentation order.
func (s *AssessmentService) Questions() []Question {
	return s.questions
}

// Start returns the user's open assessment or creates a fresh one. A retake
// after completion always creates a new record.
func (s *AssessmentService) Start(userID string) (*model.Assessment, error) {
	existing, err := s.assessmentRepository.InProgress(userID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrAssessmentNotFound) {
		return nil, fmt.Errorf("failed to check open assessment: %w", err)
	}

	assessment := &model.Assessment{
		ID:               uuid.New().String(),
		UserID:           userID,
		Answers:          model.AnswerMap{},
		IndividualScores: model.ScoreMap{},
		QuestionWeights:  model.ScoreMap{},
		Status:           model.AssessmentStatusInProgress,
		CreatedAt:        time.Now(),
	}

	err = s.assessmentRepository.Create(assessment)
	if err != nil {
		return nil, fmt.Errorf("failed to create assessment: %w", err)
	}

	slog.Info("assessment started", "user_id", userID, "assessment_id", assessment.ID)
	return assessment, nil
}

// Answer validates and records one answer on an open assessment.
func (s *AssessmentService) Answer(userID, assessmentID, questionID, answer string) (*model.Assessment, error) {
	assessment, err := s.assessmentRepository.ByID(userID, assessmentID)
	if err != nil {
		return nil, err
	}
	if assessment.IsCompleted() {
		return nil, ErrAssessmentDone
	}

	question, ok := s.questionIndex[questionID]
	if !ok {
		return nil, ErrUnknownQuestion
	}

	normalized, err := s.normalizeAnswer(question, answer)
	if err != nil {
		return nil, err
	}

	if assessment.Answers == nil {
		assessment.Answers = model.AnswerMap{}
	}
	assessment.Answers[questionID] = normalized

	err = s.assessmentRepository.Update(assessment)
	if err != nil {
		return nil, fmt.Errorf("failed to save answer: %w", err)
	}

	return assessment, nil
}

// Complete scores the assessment once every question has an answer.
func (s *AssessmentService) Complete(userID, assessmentID string) (*model.Assessment, error) {
	assessment, err := s.assessmentRepository.ByID(userID, assessmentID)
	if err != nil {
		return nil, err
	}
	if assessment.IsCompleted() {
		return nil, ErrAssessmentDone
	}

	for _, q := range s.questions {
		if _, ok := assessment.Answers[q.ID]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrAssessmentIncomplete, q.ID)
		}
	}

	scores := model.ScoreMap{}
	weights := model.ScoreMap{}
	var total float64
	for i := range s.questions {
		q := &s.questions[i]
		pts, err := s.scoreAnswer(q, assessment.Answers[q.ID])
		if err != nil {
			return nil, fmt.Errorf("failed to score %s: %w", q.ID, err)
		}
		scores[q.ID] = pts
		weights[q.ID] = q.Weight
		total += pts * q.Weight
	}

	score := math.Round(total/s.weightsSum*100) / 100
	label := RiskBucket(score)
	description := s.riskDescriptions[label]
	now := time.Now()

	assessment.RiskScore = &score
	assessment.RiskLabel = &label
	assessment.RiskDescription = &description
	assessment.IndividualScores = scores
	assessment.QuestionWeights = weights
	assessment.Status = model.AssessmentStatusCompleted
	assessment.CompletedAt = &now

	err = s.assessmentRepository.Update(assessment)
	if err != nil {
		return nil, fmt.Errorf("failed to complete assessment: %w", err)
	}

	slog.Info("assessment completed", "user_id", userID, "score", score, "label", label)
	return assessment, nil
}

// Latest returns the most recent completed assessment for the user.
func (s *AssessmentService) Latest(userID string) (*model.Assessment, error) {
	return s.assessmentRepository.LatestCompleted(userID)
}

func (s *AssessmentService) History(userID string) ([]*model.Assessment, error) {
	return s.assessmentRepository.History(userID)
}

// normalizeAnswer validates the raw answer and returns its canonical form:
// the numeric value for numeric questions, the 1-based choice index for
// choice questions.
func (s *AssessmentService) normalizeAnswer(q *Question, answer string) (string, error) {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", ErrInvalidAnswer
	}

	switch q.Type {
	case "numeric":
		v, err := strconv.ParseFloat(answer, 64)
		if err != nil {
			return "", fmt.Errorf("%w: expected a number", ErrInvalidAnswer)
		}
		if v < q.Min || v > q.Max {
			return "", fmt.Errorf("%w: value must be between %g and %g", ErrInvalidAnswer, q.Min, q.Max)
		}
		return strconv.FormatFloat(v, 'f', -1, 64), nil

	case "choice":
		// Accept a 1-based index or the exact choice label
		if idx, err := strconv.Atoi(answer); err == nil {
			if idx < 1 || idx > len(q.Choices) {
				return "", fmt.Errorf("%w: choose between 1 and %d", ErrInvalidAnswer, len(q.Choices))
			}
			return strconv.Itoa(idx), nil
		}
		for i, c := range q.Choices {
			if strings.EqualFold(c.Label, answer) {
				return strconv.Itoa(i + 1), nil
			}
		}
		return "", fmt.Errorf("%w: unknown option", ErrInvalidAnswer)

	default:
		return "", fmt.Errorf("question %s has unknown type %q", q.ID, q.Type)
	}
}

func (s *AssessmentService) scoreAnswer(q *Question, normalized string) (float64, error) {
	switch q.Type {
	case "numeric":
		v, err := strconv.ParseFloat(normalized, 64)
		if err != nil {
			return 0, ErrInvalidAnswer
		}
		for _, b := range q.Bands {
			if v >= b.Min {
				return b.Score, nil
			}
		}
		return 0, fmt.Errorf("no scoring band for value %g", v)

	case "choice":
		idx, err := strconv.Atoi(normalized)
		if err != nil || idx < 1 || idx > len(q.Choices) {
			return 0, ErrInvalidAnswer
		}
		return q.Choices[idx-1].Score, nil

	default:
		return 0, fmt.Errorf("question %s has unknown type %q", q.ID, q.Type)
	}
}

// RiskBucket maps a 0-100 weighted score onto a risk profile label.
func RiskBucket(score float64) string {
	switch {
	case score < 35:
		return model.RiskConservative
	case score < 55:
		return model.RiskModeratelyConservative
	case score < 70:
		return model.RiskBalanced
	case score < 85:
		return model.RiskModeratelyAggressive
	default:
		return model.RiskAggressive
	}
}
