package service

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hadikasem/AI-Financial-Advisor/internal/model"
	"github.com/hadikasem/AI-Financial-Advisor/internal/repository"
)

// Milestone is a savings threshold that awards points once reached.
type Milestone struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
	Points int             `json:"points"`
}

func milestones() []Milestone {
	return []Milestone{
		{Name: "First Goal", Amount: decimal.NewFromInt(1000), Points: 10},
		{Name: "Goal Crusher", Amount: decimal.NewFromInt(5000), Points: 25},
		{Name: "Savings Master", Amount: decimal.NewFromInt(10000), Points: 50},
		{Name: "Financial Wizard", Amount: decimal.NewFromInt(25000), Points: 100},
		{Name: "Legendary Saver", Amount: decimal.NewFromInt(50000), Points: 200},
	}
}

// levelThresholds in ascending order. The highest threshold the user's
// points reach decides the level.
var levelThresholds = []struct {
	Level  string
	Points int
}{
	{model.LevelBronze, 0},
	{model.LevelSilver, 100},
	{model.LevelGold, 250},
	{model.LevelDiamond, 500},
	{model.LevelLegendary, 1000},
}

// maxStreakBonus caps the daily streak award.
const maxStreakBonus = 20

type GamificationService struct {
	userRepository repository.UserRepository
	goalRepository repository.GoalRepository
}

func NewGamificationService(
	userRepository repository.UserRepository,
	goalRepository repository.GoalRepository,
) *GamificationService {
	return &GamificationService{
		userRepository: userRepository,
		goalRepository: goalRepository,
	}
}

type MilestoneResult struct {
	Achieved    []Milestone `json:"achieved_milestones"`
	New         []Milestone `json:"new_milestones"`
	TotalPoints int         `json:"total_points"`
	Level       string      `json:"level"`
}

// CheckMilestones awards points for any newly crossed savings milestone.
func (s *GamificationService) CheckMilestones(userID string, savedAmount decimal.Decimal) (*MilestoneResult, error) {
	user, err := s.userRepository.ByID(userID)
	if err != nil {
		return nil, err
	}

	result := &MilestoneResult{}
	for _, m := range milestones() {
		if savedAmount.LessThan(m.Amount) {
			continue
		}
		result.Achieved = append(result.Achieved, m)
		if user.TotalPoints < m.Points {
			result.New = append(result.New, m)
			user.TotalPoints += m.Points
		}
	}

	user.Level = LevelForPoints(user.TotalPoints)

	err = s.userRepository.UpdateGamification(user)
	if err != nil {
		return nil, fmt.Errorf("failed to save gamification state: %w", err)
	}

	result.TotalPoints = user.TotalPoints
	result.Level = user.Level
	return result, nil
}

type StreakResult struct {
	CurrentStreak int    `json:"current_streak"`
	StreakBonus   int    `json:"streak_bonus"`
	TotalPoints   int    `json:"total_points"`
	Level         string `json:"level"`
}

// UpdateStreak records a day of activity. Consecutive days grow the streak
// and pay a capped bonus; a gap resets it to one.
func (s *GamificationService) UpdateStreak(userID string, today time.Time) (*StreakResult, error) {
	user, err := s.userRepository.ByID(userID)
	if err != nil {
		return nil, err
	}

	day := truncateToDay(today)
	bonus := 0

	if user.LastActivityDate == nil {
		user.CurrentStreak = 1
	} else {
		gap := int(day.Sub(truncateToDay(*user.LastActivityDate)).Hours() / 24)
		switch {
		case gap == 1:
			user.CurrentStreak++
			bonus = user.CurrentStreak * 2
			if bonus > maxStreakBonus {
				bonus = maxStreakBonus
			}
		case gap == 0:
			// Same day, nothing changes
		default:
			user.CurrentStreak = 1
		}
	}
	user.LastActivityDate = &day

	user.TotalPoints += bonus
	user.Level = LevelForPoints(user.TotalPoints)

	err = s.userRepository.UpdateGamification(user)
	if err != nil {
		return nil, fmt.Errorf("failed to save streak: %w", err)
	}

	return &StreakResult{
		CurrentStreak: user.CurrentStreak,
		StreakBonus:   bonus,
		TotalPoints:   user.TotalPoints,
		Level:         user.Level,
	}, nil
}

type GamificationData struct {
	CurrentStreak int             `json:"current_streak"`
	TotalPoints   int             `json:"total_points"`
	Level         string          `json:"level"`
	TotalSaved    decimal.Decimal `json:"total_saved"`
	NextMilestone *Milestone      `json:"next_milestone"`
	NextLevel     *NextLevel      `json:"next_level"`
	Achieved      []Milestone     `json:"achieved_milestones"`
}

type NextLevel struct {
	Name         string `json:"name"`
	PointsNeeded int    `json:"points_needed"`
}

// Data aggregates the user's gamification state with totals across goals.
func (s *GamificationService) Data(userID string) (*GamificationData, error) {
	user, err := s.userRepository.ByID(userID)
	if err != nil {
		return nil, err
	}

	goals, err := s.goalRepository.Goals(userID, "")
	if err != nil {
		return nil, fmt.Errorf("failed to load goals: %w", err)
	}

	totalSaved := decimal.Zero
	for _, g := range goals {
		totalSaved = totalSaved.Add(g.CurrentAmount)
	}

	data := &GamificationData{
		CurrentStreak: user.CurrentStreak,
		TotalPoints:   user.TotalPoints,
		Level:         user.Level,
		TotalSaved:    totalSaved,
	}

	for _, m := range milestones() {
		if totalSaved.GreaterThanOrEqual(m.Amount) {
			data.Achieved = append(data.Achieved, m)
		} else if data.NextMilestone == nil {
			next := m
			data.NextMilestone = &next
		}
	}

	for _, lt := range levelThresholds {
		if user.TotalPoints < lt.Points {
			data.NextLevel = &NextLevel{Name: lt.Level, PointsNeeded: lt.Points - user.TotalPoints}
			break
		}
	}

	return data, nil
}

type LeaderboardEntry struct {
	Rank          int    `json:"rank"`
	Username      string `json:"username"`
	Level         string `json:"level"`
	TotalPoints   int    `json:"total_points"`
	CurrentStreak int    `json:"current_streak"`
}

func (s *GamificationService) Leaderboard(limit int) ([]LeaderboardEntry, error) {
	users, err := s.userRepository.TopByPoints(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}

	entries := make([]LeaderboardEntry, 0, len(users))
	for i, u := range users {
		entries = append(entries, LeaderboardEntry{
			Rank:          i + 1,
			Username:      u.Username,
			Level:         u.Level,
			TotalPoints:   u.TotalPoints,
			CurrentStreak: u.CurrentStreak,
		})
	}

	return entries, nil
}

// LevelForPoints returns the highest level the points qualify for.
func LevelForPoints(points int) string {
	level := model.LevelBronze
	for _, lt := range levelThresholds {
		if points >= lt.Points {
			level = lt.Level
		}
	}
	return level
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
