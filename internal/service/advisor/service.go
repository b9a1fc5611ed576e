package advisor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hadikasem/AI-Financial-Advisor/internal/model"
	"github.com/hadikasem/AI-Financial-Advisor/internal/repository"
)

// Service wraps the configured providers and guarantees an answer: the
// primary provider is tried first, then the fallbacks in order, then canned
// text. Callers never see a provider error.
type Service struct {
	providers            []Provider
	assessmentRepository repository.AssessmentRepository
	goalRepository       repository.GoalRepository
	snapshotRepository   repository.SnapshotRepository
}

func NewService(
	providers []Provider,
	assessmentRepository repository.AssessmentRepository,
	goalRepository repository.GoalRepository,
	snapshotRepository repository.SnapshotRepository,
) *Service {
	return &Service{
		providers:            providers,
		assessmentRepository: assessmentRepository,
		goalRepository:       goalRepository,
		snapshotRepository:   snapshotRepository,
	}
}

// RecommendationResult carries the advice plus where it came from.
type RecommendationResult struct {
	Recommendations []string `json:"recommendations"`
	Source          string   `json:"source"` // provider name or "static"
}

// Recommendations returns personalized advice for the user, scoped to one
// goal when goalID is non-empty.
func (s *Service) Recommendations(ctx context.Context, userID, goalID string) (*RecommendationResult, error) {
	riskProfile := s.riskProfile(userID)

	var system, user string
	if goalID != "" {
		goal, err := s.goalRepository.ByID(userID, goalID)
		if err != nil {
			return nil, err
		}

		snapshot, err := s.snapshotRepository.LatestByGoal(userID, goalID)
		if err != nil && !errors.Is(err, repository.ErrSnapshotNotFound) {
			return nil, fmt.Errorf("failed to load progress: %w", err)
		}

		system = "You are a financial coach. Based on the goal progress data, provide 3-5 " +
			"specific, actionable recommendations to help the user achieve their goal. " +
			"Be practical and realistic. Each recommendation should be 1-2 sentences."
		user = goalPrompt(goal, snapshot, riskProfile)
	} else {
		system = "You are a financial advisor. Provide 5 general financial recommendations " +
			"based on the user's risk profile. Be practical and actionable."
		user = fmt.Sprintf("Provide general financial recommendations for someone with a %s risk profile.", riskProfile)
	}

	text, source := s.chat(ctx, system, user)
	if source == "" {
		return &RecommendationResult{Recommendations: fallbackRecommendations(), Source: "static"}, nil
	}

	recommendations := parseLines(text, 20, 5)
	if len(recommendations) == 0 {
		return &RecommendationResult{Recommendations: fallbackRecommendations(), Source: "static"}, nil
	}

	return &RecommendationResult{Recommendations: recommendations, Source: source}, nil
}

// GoalSuggestions proposes concrete goal ideas for the user's risk profile.
func (s *Service) GoalSuggestions(ctx context.Context, userID string) (*RecommendationResult, error) {
	riskProfile := s.riskProfile(userID)

	system := "You are a financial planning assistant. Generate exactly 10 specific, " +
		"actionable financial goal suggestions based on the user's risk profile and context. " +
		"Each goal should include a specific amount and timeline. " +
		"Be concrete and realistic. Format each goal as a single line."

	age, stability, savingsRate := s.assessmentContext(userID)
	user := fmt.Sprintf(`Generate 10 financial goal suggestions for a user with:
- Risk Profile: %s
- Age: %s years old
- Income Stability: %s
- Monthly Savings Rate: %s%%

Provide diverse goals across different categories like emergency fund, retirement,
vacation, education, home purchase, etc. Include specific amounts and timelines.`,
		riskProfile, age, stability, savingsRate)

	text, source := s.chat(ctx, system, user)
	if source == "" {
		return &RecommendationResult{Recommendations: fallbackGoalSuggestions(riskProfile), Source: "static"}, nil
	}

	suggestions := parseLines(text, 10, 10)
	if len(suggestions) == 0 {
		return &RecommendationResult{Recommendations: fallbackGoalSuggestions(riskProfile), Source: "static"}, nil
	}

	return &RecommendationResult{Recommendations: suggestions, Source: source}, nil
}

// Help answers a free-form financial question, optionally grounded in extra
// context such as the questionnaire item the user is stuck on.
func (s *Service) Help(ctx context.Context, question, contextNote string) string {
	system := "You are a helpful financial advisor explaining terms clearly. " +
		"Answer the user's question about the financial term or concept. " +
		"Be concise but thorough. After explaining, mention that they can continue with their assessment. " +
		"If they're asking about a specific question from the assessment, reference that context."

	user := question
	if contextNote != "" {
		user = fmt.Sprintf("%s\n\nContext: %s", question, contextNote)
	}

	text, source := s.chat(ctx, system, user)
	if source == "" {
		return "I'm sorry, the AI assistant is currently unavailable. Please try again later."
	}
	return text
}

// ProviderInfo reports one backend's reachability.
type ProviderInfo struct {
	Name      string `json:"name"`
	Available bool   `json:"available"`
	Error     string `json:"error,omitempty"`
}

// ProviderStatus pings every configured provider in chain order. The first
// entry is the active primary.
func (s *Service) ProviderStatus(ctx context.Context) []ProviderInfo {
	status := make([]ProviderInfo, 0, len(s.providers))
	for _, p := range s.providers {
		info := ProviderInfo{Name: p.Name(), Available: true}
		if err := p.Ping(ctx); err != nil {
			info.Available = false
			info.Error = err.Error()
		}
		status = append(status, info)
	}
	return status
}

// ExplainTerm gives a plain-language explanation of a financial term.
func (s *Service) ExplainTerm(ctx context.Context, term string) string {
	system := "You are a helpful financial advisor. Explain financial terms clearly and concisely. " +
		"Provide a brief, easy-to-understand explanation with a simple example if helpful."
	user := fmt.Sprintf("Please explain the financial term: %s", term)

	text, source := s.chat(ctx, system, user)
	if source == "" {
		return fmt.Sprintf("Sorry, I cannot explain %q right now. Please consult a financial advisor or search online.", term)
	}
	return text
}

func (s *Service) riskProfile(userID string) string {
	assessment, err := s.assessmentRepository.LatestCompleted(userID)
	if err != nil || assessment.RiskLabel == nil {
		return model.RiskBalanced
	}
	return *assessment.RiskLabel
}

func (s *Service) assessmentContext(userID string) (age, stability, savingsRate string) {
	age, stability, savingsRate = "30", "Stable", "10"
	assessment, err := s.assessmentRepository.LatestCompleted(userID)
	if err != nil {
		return
	}
	if v, ok := assessment.Answers["age"]; ok {
		age = v
	}
	if v, ok := assessment.Answers["income_stability"]; ok {
		stability = v
	}
	if v, ok := assessment.Answers["savings_rate"]; ok {
		savingsRate = v
	}
	return
}

// chat tries each provider in order. An empty source signals all failed.
func (s *Service) chat(ctx context.Context, system, user string) (string, string) {
	for _, p := range s.providers {
		text, err := p.Chat(ctx, system, user)
		if err != nil {
			slog.Warn("llm provider failed", "provider", p.Name(), "error", err)
			continue
		}
		if strings.TrimSpace(text) == "" {
			slog.Warn("llm provider returned empty completion", "provider", p.Name())
			continue
		}
		return text, p.Name()
	}
	return "", ""
}

func goalPrompt(goal *model.Goal, snapshot *model.ProgressSnapshot, riskProfile string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Goal: %s\n", goal.Name)
	fmt.Fprintf(&b, "Category: %s\n", goal.Category)
	fmt.Fprintf(&b, "Target Amount: $%s\n", goal.TargetAmount.StringFixed(2))
	fmt.Fprintf(&b, "Target Date: %s\n", goal.TargetDate.Format("2006-01-02"))
	if snapshot != nil {
		fmt.Fprintf(&b, "Current Progress: %.1f%%\n", snapshot.ProgressPct)
		fmt.Fprintf(&b, "Pacing Status: %s\n", snapshot.PacingStatus)
		fmt.Fprintf(&b, "Pacing Detail: %s\n", snapshot.PacingDetail)
	}
	fmt.Fprintf(&b, "Risk Profile: %s\n\n", riskProfile)
	b.WriteString("Provide specific recommendations to help achieve this goal.")
	return b.String()
}

// parseLines splits a completion into clean lines, dropping headings and
// lines shorter than minLen.
func parseLines(text string, minLen, max int) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.Trim(line, "-•* \t\r")
		if line == "" || strings.HasPrefix(line, "#") || len(line) <= minLen {
			continue
		}
		lines = append(lines, line)
		if len(lines) == max {
			break
		}
	}
	return lines
}

func fallbackRecommendations() []string {
	return []string{
		"Consider increasing your monthly savings by 5-10% to accelerate goal achievement",
		"Review your spending categories to identify areas for cost reduction",
		"Set up automatic transfers to your savings account on payday",
		"Consider diversifying your investments based on your risk tolerance",
		"Regularly review and adjust your goals based on life changes",
	}
}

func fallbackGoalSuggestions(riskProfile string) []string {
	base := []string{
		"Build emergency fund of $10,000 by December 2025",
		"Save $5,000 for vacation by June 2025",
		"Contribute $6,000 to Roth IRA by April 2025",
		"Save $20,000 for home down payment by December 2026",
		"Pay off $15,000 credit card debt by September 2025",
		"Save $2,000 for car maintenance fund by March 2025",
		"Invest $3,000 in index funds by May 2025",
		"Save $8,000 for children's education by December 2027",
		"Build $25,000 emergency fund by December 2025",
		"Save $12,000 for home renovation by August 2026",
	}

	switch riskProfile {
	case model.RiskConservative:
		return base[:8]
	case model.RiskAggressive:
		return append(base[2:], "Invest $10,000 in growth stocks by June 2025")
	default:
		return base
	}
}
