package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/hadikasem/AI-Financial-Advisor/internal/model"
	"github.com/hadikasem/AI-Financial-Advisor/internal/repository"
)

// Function-field mocks. Unset getters report not found; unset mutators
// succeed silently.

type mockUserRepository struct {
	CreateFn             func(user *model.User) error
	ByIDFn               func(id string) (*model.User, error)
	ByEmailFn            func(email string) (*model.User, error)
	ByUsernameFn         func(username string) (*model.User, error)
	UpdateFn             func(user *model.User) error
	UpdateGamificationFn func(user *model.User) error
	TouchLastLoginFn     func(id string, at time.Time) error
	ActiveUserIDsFn      func() ([]string, error)
	TopByPointsFn        func(limit int) ([]*model.User, error)
	DeleteFn             func(id string) error
}

func (m *mockUserRepository) Create(user *model.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(user)
	}
	return nil
}

func (m *mockUserRepository) ByID(id string) (*model.User, error) {
	if m.ByIDFn != nil {
		return m.ByIDFn(id)
	}
	return nil, repository.ErrUserNotFound
}

func (m *mockUserRepository) ByEmail(email string) (*model.User, error) {
	if m.ByEmailFn != nil {
		return m.ByEmailFn(email)
	}
	return nil, repository.ErrUserNotFound
}

func (m *mockUserRepository) ByUsername(username string) (*model.User, error) {
	if m.ByUsernameFn != nil {
		return m.ByUsernameFn(username)
	}
	return nil, repository.ErrUserNotFound
}

func (m *mockUserRepository) Update(user *model.User) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(user)
	}
	return nil
}

func (m *mockUserRepository) UpdateGamification(user *model.User) error {
	if m.UpdateGamificationFn != nil {
		return m.UpdateGamificationFn(user)
	}
	return nil
}

func (m *mockUserRepository) TouchLastLogin(id string, at time.Time) error {
	if m.TouchLastLoginFn != nil {
		return m.TouchLastLoginFn(id, at)
	}
	return nil
}

func (m *mockUserRepository) ActiveUserIDs() ([]string, error) {
	if m.ActiveUserIDsFn != nil {
		return m.ActiveUserIDsFn()
	}
	return nil, nil
}

func (m *mockUserRepository) TopByPoints(limit int) ([]*model.User, error) {
	if m.TopByPointsFn != nil {
		return m.TopByPointsFn(limit)
	}
	return nil, nil
}

func (m *mockUserRepository) Delete(id string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(id)
	}
	return nil
}

type mockGoalRepository struct {
	CreateFn              func(goal *model.Goal) error
	ByIDFn                func(userID, goalID string) (*model.Goal, error)
	GoalsFn               func(userID, sortBy string) ([]*model.Goal, error)
	ActiveGoalsFn         func(userID string) ([]*model.Goal, error)
	CountActiveFn         func(userID string) (int, error)
	UpdateFn              func(goal *model.Goal) error
	UpdateCurrentAmountFn func(userID, goalID string, amount decimal.Decimal) error
	DeleteFn              func(userID, goalID string) error
	DueWithinFn           func(userID string, within time.Duration) ([]*model.Goal, error)
}

func (m *mockGoalRepository) Create(goal *model.Goal) error {
	if m.CreateFn != nil {
		return m.CreateFn(goal)
	}
	return nil
}

func (m *mockGoalRepository) ByID(userID, goalID string) (*model.Goal, error) {
	if m.ByIDFn != nil {
		return m.ByIDFn(userID, goalID)
	}
	return nil, repository.ErrGoalNotFound
}

func (m *mockGoalRepository) Goals(userID, sortBy string) ([]*model.Goal, error) {
	if m.GoalsFn != nil {
		return m.GoalsFn(userID, sortBy)
	}
	return nil, nil
}

func (m *mockGoalRepository) ActiveGoals(userID string) ([]*model.Goal, error) {
	if m.ActiveGoalsFn != nil {
		return m.ActiveGoalsFn(userID)
	}
	return nil, nil
}

func (m *mockGoalRepository) CountActive(userID string) (int, error) {
	if m.CountActiveFn != nil {
		return m.CountActiveFn(userID)
	}
	return 0, nil
}

func (m *mockGoalRepository) Update(goal *model.Goal) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(goal)
	}
	return nil
}

func (m *mockGoalRepository) UpdateCurrentAmount(userID, goalID string, amount decimal.Decimal) error {
	if m.UpdateCurrentAmountFn != nil {
		return m.UpdateCurrentAmountFn(userID, goalID, amount)
	}
	return nil
}

func (m *mockGoalRepository) Delete(userID, goalID string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(userID, goalID)
	}
	return nil
}

func (m *mockGoalRepository) DueWithin(userID string, within time.Duration) ([]*model.Goal, error) {
	if m.DueWithinFn != nil {
		return m.DueWithinFn(userID, within)
	}
	return nil, nil
}

type mockAccountRepository struct {
	CreateFn        func(account *model.Account) error
	ByIDFn          func(userID, accountID string) (*model.Account, error)
	AccountsFn      func(userID string) ([]*model.Account, error)
	AdjustBalanceFn func(userID, accountID string, delta decimal.Decimal) error
}

func (m *mockAccountRepository) Create(account *model.Account) error {
	if m.CreateFn != nil {
		return m.CreateFn(account)
	}
	return nil
}

func (m *mockAccountRepository) ByID(userID, accountID string) (*model.Account, error) {
	if m.ByIDFn != nil {
		return m.ByIDFn(userID, accountID)
	}
	return nil, repository.ErrAccountNotFound
}

func (m *mockAccountRepository) Accounts(userID string) ([]*model.Account, error) {
	if m.AccountsFn != nil {
		return m.AccountsFn(userID)
	}
	return nil, nil
}

func (m *mockAccountRepository) AdjustBalance(userID, accountID string, delta decimal.Decimal) error {
	if m.AdjustBalanceFn != nil {
		return m.AdjustBalanceFn(userID, accountID, delta)
	}
	return nil
}

type mockTransactionRepository struct {
	CreateFn         func(tx *model.Transaction) error
	CreateBatchFn    func(txs []*model.Transaction) error
	ByIDFn           func(userID, txID string) (*model.Transaction, error)
	ListFn           func(userID string, filter repository.TransactionFilter) ([]*model.Transaction, error)
	SumByAccountFn   func(userID, accountID string) (decimal.Decimal, error)
	NetAmountSinceFn func(userID string, since time.Time) (decimal.Decimal, error)
	CountSinceFn     func(userID string, since time.Time) (int, error)
}

func (m *mockTransactionRepository) Create(tx *model.Transaction) error {
	if m.CreateFn != nil {
		return m.CreateFn(tx)
	}
	return nil
}

func (m *mockTransactionRepository) CreateBatch(txs []*model.Transaction) error {
	if m.CreateBatchFn != nil {
		return m.CreateBatchFn(txs)
	}
	return nil
}

func (m *mockTransactionRepository) ByID(userID, txID string) (*model.Transaction, error) {
	if m.ByIDFn != nil {
		return m.ByIDFn(userID, txID)
	}
	return nil, repository.ErrTransactionNotFound
}

func (m *mockTransactionRepository) List(userID string, filter repository.TransactionFilter) ([]*model.Transaction, error) {
	if m.ListFn != nil {
		return m.ListFn(userID, filter)
	}
	return nil, nil
}

func (m *mockTransactionRepository) SumByAccount(userID, accountID string) (decimal.Decimal, error) {
	if m.SumByAccountFn != nil {
		return m.SumByAccountFn(userID, accountID)
	}
	return decimal.Zero, nil
}

func (m *mockTransactionRepository) NetAmountSince(userID string, since time.Time) (decimal.Decimal, error) {
	if m.NetAmountSinceFn != nil {
		return m.NetAmountSinceFn(userID, since)
	}
	return decimal.Zero, nil
}

func (m *mockTransactionRepository) CountSince(userID string, since time.Time) (int, error) {
	if m.CountSinceFn != nil {
		return m.CountSinceFn(userID, since)
	}
	return 0, nil
}

type mockAssessmentRepository struct {
	CreateFn          func(assessment *model.Assessment) error
	ByIDFn            func(userID, assessmentID string) (*model.Assessment, error)
	LatestCompletedFn func(userID string) (*model.Assessment, error)
	InProgressFn      func(userID string) (*model.Assessment, error)
	UpdateFn          func(assessment *model.Assessment) error
	HistoryFn         func(userID string) ([]*model.Assessment, error)
}

func (m *mockAssessmentRepository) Create(assessment *model.Assessment) error {
	if m.CreateFn != nil {
		return m.CreateFn(assessment)
	}
	return nil
}

func (m *mockAssessmentRepository) ByID(userID, assessmentID string) (*model.Assessment, error) {
	if m.ByIDFn != nil {
		return m.ByIDFn(userID, assessmentID)
	}
	return nil, repository.ErrAssessmentNotFound
}

func (m *mockAssessmentRepository) LatestCompleted(userID string) (*model.Assessment, error) {
	if m.LatestCompletedFn != nil {
		return m.LatestCompletedFn(userID)
	}
	return nil, repository.ErrAssessmentNotFound
}

func (m *mockAssessmentRepository) InProgress(userID string) (*model.Assessment, error) {
	if m.InProgressFn != nil {
		return m.InProgressFn(userID)
	}
	return nil, repository.ErrAssessmentNotFound
}

func (m *mockAssessmentRepository) Update(assessment *model.Assessment) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(assessment)
	}
	return nil
}

func (m *mockAssessmentRepository) History(userID string) ([]*model.Assessment, error) {
	if m.HistoryFn != nil {
		return m.HistoryFn(userID)
	}
	return nil, nil
}

type mockSnapshotRepository struct {
	CreateFn        func(snapshot *model.ProgressSnapshot) error
	LatestByGoalFn  func(userID, goalID string) (*model.ProgressSnapshot, error)
	HistoryByGoalFn func(userID, goalID string, limit int) ([]*model.ProgressSnapshot, error)
}

func (m *mockSnapshotRepository) Create(snapshot *model.ProgressSnapshot) error {
	if m.CreateFn != nil {
		return m.CreateFn(snapshot)
	}
	return nil
}

func (m *mockSnapshotRepository) LatestByGoal(userID, goalID string) (*model.ProgressSnapshot, error) {
	if m.LatestByGoalFn != nil {
		return m.LatestByGoalFn(userID, goalID)
	}
	return nil, repository.ErrSnapshotNotFound
}

func (m *mockSnapshotRepository) HistoryByGoal(userID, goalID string, limit int) ([]*model.ProgressSnapshot, error) {
	if m.HistoryByGoalFn != nil {
		return m.HistoryByGoalFn(userID, goalID, limit)
	}
	return nil, nil
}

type mockNotificationRepository struct {
	CreateFn        func(notification *model.Notification) error
	ListFn          func(userID string, unreadOnly bool, limit int) ([]*model.Notification, error)
	CountUnreadFn   func(userID string) (int, error)
	MarkReadFn      func(userID, notificationID string) error
	MarkAllReadFn   func(userID string) error
	ExistsByTitleFn func(userID, goalID, notificationType, title string) (bool, error)
	ExistsSinceFn   func(userID, goalID, notificationType string, since time.Time) (bool, error)
}

func (m *mockNotificationRepository) Create(notification *model.Notification) error {
	if m.CreateFn != nil {
		return m.CreateFn(notification)
	}
	return nil
}

func (m *mockNotificationRepository) List(userID string, unreadOnly bool, limit int) ([]*model.Notification, error) {
	if m.ListFn != nil {
		return m.ListFn(userID, unreadOnly, limit)
	}
	return nil, nil
}

func (m *mockNotificationRepository) CountUnread(userID string) (int, error) {
	if m.CountUnreadFn != nil {
		return m.CountUnreadFn(userID)
	}
	return 0, nil
}

func (m *mockNotificationRepository) MarkRead(userID, notificationID string) error {
	if m.MarkReadFn != nil {
		return m.MarkReadFn(userID, notificationID)
	}
	return nil
}

func (m *mockNotificationRepository) MarkAllRead(userID string) error {
	if m.MarkAllReadFn != nil {
		return m.MarkAllReadFn(userID)
	}
	return nil
}

func (m *mockNotificationRepository) ExistsByTitle(userID, goalID, notificationType, title string) (bool, error) {
	if m.ExistsByTitleFn != nil {
		return m.ExistsByTitleFn(userID, goalID, notificationType, title)
	}
	return false, nil
}

func (m *mockNotificationRepository) ExistsSince(userID, goalID, notificationType string, since time.Time) (bool, error) {
	if m.ExistsSinceFn != nil {
		return m.ExistsSinceFn(userID, goalID, notificationType, since)
	}
	return false, nil
}
