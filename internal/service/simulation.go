package service

import (
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hadikasem/AI-Financial-Advisor/internal/model"
	"github.com/hadikasem/AI-Financial-Advisor/internal/repository"
)

// expenseDescriptions feeds the discretionary spending generator.
var expenseDescriptions = map[string][]string{
	"food":           {"Groceries", "Restaurants", "Coffee", "Takeout", "Dining Out"},
	"transportation": {"Gas", "Public Transit", "Car Payment", "Car Insurance", "Maintenance"},
	"entertainment":  {"Movies", "Streaming", "Concerts", "Sports", "Games"},
	"shopping":       {"Clothing", "Electronics", "Home Goods", "Personal Care"},
}

var expenseCategories = []string{"food", "transportation", "entertainment", "shopping"}

// SimulationService generates a plausible transaction history for the days
// elapsed since the user's last simulation point. Salary lands bi-weekly on
// Fridays, rent on the 1st, investments on the 15th, savings transfers on
// Mondays, with randomized amounts.
type SimulationService struct {
	userRepository        repository.UserRepository
	accountRepository     repository.AccountRepository
	transactionRepository repository.TransactionRepository

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSimulationService creates the service. A nil rng gets a time-seeded
// source; tests pass a fixed seed for determinism.
func NewSimulationService(
	userRepository repository.UserRepository,
	accountRepository repository.AccountRepository,
	transactionRepository repository.TransactionRepository,
	rng *rand.Rand,
) *SimulationService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &SimulationService{
		userRepository:        userRepository,
		accountRepository:     accountRepository,
		transactionRepository: transactionRepository,
		rng:                   rng,
	}
}

// AdvanceToNow simulates every day between the user's last recorded activity
// and now, returning the number of days covered.
func (s *SimulationService) AdvanceToNow(userID string) (int, error) {
	last, err := s.lastSimulationPoint(userID)
	if err != nil {
		return 0, err
	}

	now := time.Now()
	days := int(now.Sub(last).Hours() / 24)
	if days <= 0 {
		return 0, nil
	}

	accounts, err := s.ensureAccounts(userID, now)
	if err != nil {
		return 0, err
	}
	trio, err := splitAccounts(accounts)
	if err != nil {
		return 0, err
	}

	var txs []*model.Transaction
	for offset := 0; offset < days; offset++ {
		day := now.AddDate(0, 0, -(days - offset))
		txs = append(txs, s.generateDay(userID, trio, day)...)
	}

	err = s.transactionRepository.CreateBatch(txs)
	if err != nil {
		return 0, fmt.Errorf("failed to store simulated transactions: %w", err)
	}

	err = s.recomputeBalances(userID, accounts)
	if err != nil {
		return 0, err
	}

	slog.Info("simulation advanced", "user_id", userID, "days", days, "transactions", len(txs))
	return days, nil
}

// lastSimulationPoint is the most recent transaction date, falling back to
// the account creation time for fresh users.
func (s *SimulationService) lastSimulationPoint(userID string) (time.Time, error) {
	txs, err := s.transactionRepository.List(userID, repository.TransactionFilter{Limit: 1})
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to find last transaction: %w", err)
	}
	if len(txs) > 0 {
		return txs[0].Date, nil
	}

	user, err := s.userRepository.ByID(userID)
	if err != nil {
		return time.Time{}, err
	}
	return user.CreatedAt, nil
}

// ensureAccounts returns the user's accounts, creating the default trio with
// opening balances on first use.
func (s *SimulationService) ensureAccounts(userID string, now time.Time) ([]*model.Account, error) {
	accounts, err := s.accountRepository.Accounts(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}
	if len(accounts) >= 3 {
		return accounts, nil
	}
	if len(accounts) > 0 {
		return nil, fmt.Errorf("simulation needs checking, savings and investment accounts, found %d", len(accounts))
	}

	defaults := []struct {
		name    string
		typ     string
		balance int64
	}{
		{"Checking Account", model.AccountTypeChecking, 5000},
		{"Savings Account", model.AccountTypeSavings, 10000},
		{"Investment Account", model.AccountTypeInvestment, 15000},
	}

	var created []*model.Account
	var opening []*model.Transaction
	for _, d := range defaults {
		account := &model.Account{
			ID:        uuid.New().String(),
			UserID:    userID,
			Name:      d.name,
			Type:      d.typ,
			Balance:   decimal.NewFromInt(d.balance),
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		}
		err := s.accountRepository.Create(account)
		if err != nil {
			return nil, fmt.Errorf("failed to create default account: %w", err)
		}
		created = append(created, account)

		// An opening balance entry keeps the ledger sum equal to the balance
		opening = append(opening, &model.Transaction{
			ID:          uuid.New().String(),
			UserID:      userID,
			AccountID:   account.ID,
			Date:        now,
			Amount:      decimal.NewFromInt(d.balance),
			Category:    "transfer",
			Description: "Opening Balance",
			Type:        model.TransactionTypeTransfer,
			CreatedAt:   now,
		})
	}

	err = s.transactionRepository.CreateBatch(opening)
	if err != nil {
		return nil, fmt.Errorf("failed to record opening balances: %w", err)
	}

	return created, nil
}

// accountTrio holds the three accounts the generator writes to.
type accountTrio struct {
	checking   *model.Account
	savings    *model.Account
	investment *model.Account
}

// splitAccounts picks the trio by account type. Listing order is not
// guaranteed, the default accounts share a created_at timestamp.
func splitAccounts(accounts []*model.Account) (accountTrio, error) {
	var trio accountTrio
	for _, account := range accounts {
		switch account.Type {
		case model.AccountTypeChecking:
			if trio.checking == nil {
				trio.checking = account
			}
		case model.AccountTypeSavings:
			if trio.savings == nil {
				trio.savings = account
			}
		case model.AccountTypeInvestment:
			if trio.investment == nil {
				trio.investment = account
			}
		}
	}
	if trio.checking == nil || trio.savings == nil || trio.investment == nil {
		return trio, fmt.Errorf("simulation needs checking, savings and investment accounts")
	}
	return trio, nil
}

// generateDay builds the transactions for one calendar day.
func (s *SimulationService) generateDay(userID string, trio accountTrio, day time.Time) []*model.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	checking, savings, investment := trio.checking, trio.savings, trio.investment
	var txs []*model.Transaction

	add := func(accountID string, amount float64, category, description, txType string) {
		txs = append(txs, &model.Transaction{
			ID:          uuid.New().String(),
			UserID:      userID,
			AccountID:   accountID,
			Date:        day,
			Amount:      decimal.NewFromFloat(amount).Round(2),
			Category:    category,
			Description: description,
			Type:        txType,
			CreatedAt:   time.Now(),
		})
	}

	// Salary lands roughly bi-weekly on Fridays
	if day.Weekday() == time.Friday && day.Day()%14 < 2 {
		add(checking.ID, s.uniform(3000, 8000), "income", "Salary Deposit", model.TransactionTypeIncome)
	}

	// Rent on the 1st
	if day.Day() == 1 {
		add(checking.ID, -s.uniform(1200, 3000), "housing", "Rent Payment", model.TransactionTypeExpense)
	}

	// Discretionary spending most days
	if s.rng.Float64() < 0.8 {
		category := expenseCategories[s.rng.Intn(len(expenseCategories))]
		descriptions := expenseDescriptions[category]
		add(checking.ID, -s.uniform(10, 200), category, descriptions[s.rng.Intn(len(descriptions))], model.TransactionTypeExpense)
	}

	// Monthly investment contribution on the 15th
	if day.Day() == 15 && s.rng.Float64() < 0.7 {
		add(investment.ID, s.uniform(500, 2000), "investment", "Monthly Investment Contribution", model.TransactionTypeInvest)
	}

	// Weekly savings transfer on Mondays
	if day.Weekday() == time.Monday && s.rng.Float64() < 0.6 {
		add(savings.ID, s.uniform(200, 1000), "transfer", "Weekly Savings Transfer", model.TransactionTypeTransfer)
	}

	return txs
}

// recomputeBalances resets each balance to the ledger sum, with a small
// random market move on investment accounts.
func (s *SimulationService) recomputeBalances(userID string, accounts []*model.Account) error {
	for _, account := range accounts {
		sum, err := s.transactionRepository.SumByAccount(userID, account.ID)
		if err != nil {
			return fmt.Errorf("failed to sum account %s: %w", account.ID, err)
		}

		if account.Type == model.AccountTypeInvestment {
			s.mu.Lock()
			fluctuation := s.uniform(-0.02, 0.02)
			s.mu.Unlock()
			sum = sum.Mul(decimal.NewFromFloat(1 + fluctuation)).Round(2)
		}

		delta := sum.Sub(account.Balance)
		if delta.IsZero() {
			continue
		}
		err = s.accountRepository.AdjustBalance(userID, account.ID, delta)
		if err != nil {
			return fmt.Errorf("failed to update balance: %w", err)
		}
		account.Balance = sum
	}

	return nil
}

func (s *SimulationService) uniform(lo, hi float64) float64 {
	return lo + s.rng.Float64()*(hi-lo)
}
