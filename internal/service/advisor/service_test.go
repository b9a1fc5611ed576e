package advisor

import (
	"context"
	"errors"
	"testing"

	"github.com/hadikasem/AI-Financial-Advisor/internal/model"
	"github.com/hadikasem/AI-Financial-Advisor/internal/repository"
)

type stubProvider struct {
	name string
	text string
	err  error

	lastUser string
}

func (p *stubProvider) Name() string { return p.name }

func (p *stubProvider) Chat(ctx context.Context, system, user string) (string, error) {
	p.lastUser = user
	return p.text, p.err
}

func (p *stubProvider) Ping(ctx context.Context) error { return p.err }

type stubAssessmentRepo struct {
	assessment *model.Assessment
}

func (r *stubAssessmentRepo) Create(assessment *model.Assessment) error { return nil }

func (r *stubAssessmentRepo) ByID(userID, assessmentID string) (*model.Assessment, error) {
	return nil, repository.ErrAssessmentNotFound
}

func (r *stubAssessmentRepo) LatestCompleted(userID string) (*model.Assessment, error) {
	if r.assessment == nil {
		return nil, repository.ErrAssessmentNotFound
	}
	return r.assessment, nil
}

func (r *stubAssessmentRepo) InProgress(userID string) (*model.Assessment, error) {
	return nil, repository.ErrAssessmentNotFound
}

func (r *stubAssessmentRepo) Update(assessment *model.Assessment) error { return nil }

func (r *stubAssessmentRepo) History(userID string) ([]*model.Assessment, error) { return nil, nil }

func newTestService(providers []Provider, assessment *model.Assessment) *Service {
	return NewService(providers, &stubAssessmentRepo{assessment: assessment}, nil, nil)
}

func TestRecommendationsFromProvider(t *testing.T) {
	completion := `Here are some recommendations:
- Increase your automatic savings transfer by fifty dollars each month
- Cut one recurring subscription you no longer use to free up cash
- Move your emergency fund into a high yield savings account today`

	svc := newTestService([]Provider{
		&stubProvider{name: "ollama", text: completion},
	}, nil)

	result, err := svc.Recommendations(context.Background(), "u1", "")
	if err != nil {
		t.Fatalf("Recommendations failed: %v", err)
	}
	if result.Source != "ollama" {
		t.Errorf("Source = %q, want %q", result.Source, "ollama")
	}
	if len(result.Recommendations) != 3 {
		t.Fatalf("got %d recommendations, want 3", len(result.Recommendations))
	}
	if result.Recommendations[0] != "Increase your automatic savings transfer by fifty dollars each month" {
		t.Errorf("unexpected first recommendation: %q", result.Recommendations[0])
	}
}

func TestRecommendationsFallsBackToNextProvider(t *testing.T) {
	completion := `- Set up automatic transfers to your savings account every payday
- Review your three largest spending categories for easy reductions`

	svc := newTestService([]Provider{
		&stubProvider{name: "ollama", err: errors.New("connection refused")},
		&stubProvider{name: "openai", text: completion},
	}, nil)

	result, err := svc.Recommendations(context.Background(), "u1", "")
	if err != nil {
		t.Fatalf("Recommendations failed: %v", err)
	}
	if result.Source != "openai" {
		t.Errorf("Source = %q, want %q", result.Source, "openai")
	}
}

func TestRecommendationsStaticFallback(t *testing.T) {
	svc := newTestService([]Provider{
		&stubProvider{name: "ollama", err: errors.New("connection refused")},
	}, nil)

	result, err := svc.Recommendations(context.Background(), "u1", "")
	if err != nil {
		t.Fatalf("Recommendations failed: %v", err)
	}
	if result.Source != "static" {
		t.Errorf("Source = %q, want %q", result.Source, "static")
	}
	if len(result.Recommendations) != 5 {
		t.Errorf("got %d static recommendations, want 5", len(result.Recommendations))
	}
}

func TestRecommendationsEmptyCompletionFallsBack(t *testing.T) {
	svc := newTestService([]Provider{
		&stubProvider{name: "ollama", text: "   \n  "},
	}, nil)

	result, err := svc.Recommendations(context.Background(), "u1", "")
	if err != nil {
		t.Fatalf("Recommendations failed: %v", err)
	}
	if result.Source != "static" {
		t.Errorf("Source = %q, want %q", result.Source, "static")
	}
}

func TestGoalSuggestionsByRiskProfile(t *testing.T) {
	label := func(s string) *string { return &s }

	tests := []struct {
		name      string
		risk      *string
		wantCount int
		wantLast  string
	}{
		{"conservative trims growth goals", label(model.RiskConservative), 8, "Save $8,000 for children's education by December 2027"},
		{"aggressive adds growth stocks", label(model.RiskAggressive), 9, "Invest $10,000 in growth stocks by June 2025"},
		{"balanced gets full list", label(model.RiskBalanced), 10, "Save $12,000 for home renovation by August 2026"},
		{"no assessment defaults to balanced", nil, 10, "Save $12,000 for home renovation by August 2026"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var assessment *model.Assessment
			if tt.risk != nil {
				assessment = &model.Assessment{
					RiskLabel: tt.risk,
					Status:    model.AssessmentStatusCompleted,
				}
			}
			svc := newTestService([]Provider{
				&stubProvider{name: "ollama", err: errors.New("down")},
			}, assessment)

			result, err := svc.GoalSuggestions(context.Background(), "u1")
			if err != nil {
				t.Fatalf("GoalSuggestions failed: %v", err)
			}
			if result.Source != "static" {
				t.Errorf("Source = %q, want %q", result.Source, "static")
			}
			if len(result.Recommendations) != tt.wantCount {
				t.Fatalf("got %d suggestions, want %d", len(result.Recommendations), tt.wantCount)
			}
			last := result.Recommendations[len(result.Recommendations)-1]
			if last != tt.wantLast {
				t.Errorf("last suggestion = %q, want %q", last, tt.wantLast)
			}
		})
	}
}

func TestHelpAppendsContext(t *testing.T) {
	provider := &stubProvider{name: "ollama", text: "An index fund tracks a market index."}
	svc := newTestService([]Provider{provider}, nil)

	answer := svc.Help(context.Background(), "What is an index fund?", "Question 7 of the questionnaire")
	if answer != "An index fund tracks a market index." {
		t.Errorf("Help = %q", answer)
	}
	want := "What is an index fund?\n\nContext: Question 7 of the questionnaire"
	if provider.lastUser != want {
		t.Errorf("prompt = %q, want %q", provider.lastUser, want)
	}
}

func TestHelpFallbackMessage(t *testing.T) {
	svc := newTestService([]Provider{
		&stubProvider{name: "ollama", err: errors.New("down")},
	}, nil)

	got := svc.Help(context.Background(), "What is an ETF?", "")
	want := "I'm sorry, the AI assistant is currently unavailable. Please try again later."
	if got != want {
		t.Errorf("Help = %q, want %q", got, want)
	}
}

func TestProviderStatus(t *testing.T) {
	svc := newTestService([]Provider{
		&stubProvider{name: "ollama", err: errors.New("connection refused")},
		&stubProvider{name: "openai", text: "ok"},
	}, nil)

	status := svc.ProviderStatus(context.Background())
	if len(status) != 2 {
		t.Fatalf("got %d statuses, want 2", len(status))
	}
	if status[0].Name != "ollama" || status[0].Available {
		t.Errorf("primary status = %+v, want unavailable ollama", status[0])
	}
	if status[0].Error == "" {
		t.Error("unavailable provider reports no error")
	}
	if status[1].Name != "openai" || !status[1].Available {
		t.Errorf("secondary status = %+v, want available openai", status[1])
	}
}

func TestExplainTermFallbackMessage(t *testing.T) {
	svc := newTestService([]Provider{
		&stubProvider{name: "ollama", err: errors.New("down")},
	}, nil)

	got := svc.ExplainTerm(context.Background(), "compound interest")
	want := `Sorry, I cannot explain "compound interest" right now. Please consult a financial advisor or search online.`
	if got != want {
		t.Errorf("ExplainTerm = %q, want %q", got, want)
	}
}

func TestParseLines(t *testing.T) {
	text := `# Recommendations
- First actionable recommendation with plenty of detail
• Second actionable recommendation with plenty of detail
* Third actionable recommendation with plenty of detail
short
- Fourth actionable recommendation with plenty of detail
- Fifth actionable recommendation with plenty of detail
- Sixth actionable recommendation with plenty of detail`

	lines := parseLines(text, 20, 5)
	if len(lines) != 5 {
		t.Fatalf("got %d lines, want 5", len(lines))
	}
	if lines[0] != "First actionable recommendation with plenty of detail" {
		t.Errorf("lines[0] = %q", lines[0])
	}
	for _, line := range lines {
		if len(line) <= 20 {
			t.Errorf("short line passed filter: %q", line)
		}
	}
}
