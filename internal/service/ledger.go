package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hadikasem/AI-Financial-Advisor/internal/model"
	"github.com/hadikasem/AI-Financial-Advisor/internal/repository"
)

var (
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrZeroAmount             = errors.New("transaction amount must be non-zero")
)

var transactionTypes = map[string]bool{
	model.TransactionTypeIncome:   true,
	model.TransactionTypeExpense:  true,
	model.TransactionTypeSavings:  true,
	model.TransactionTypeTransfer: true,
	model.TransactionTypeInvest:   true,
}

// LedgerService exposes the account ledger: balances, transaction history
// and manual entries. Automated entries come from the simulation.
type LedgerService struct {
	accountRepository     repository.AccountRepository
	transactionRepository repository.TransactionRepository
}

func NewLedgerService(
	accountRepository repository.AccountRepository,
	transactionRepository repository.TransactionRepository,
) *LedgerService {
	return &LedgerService{
		accountRepository:     accountRepository,
		transactionRepository: transactionRepository,
	}
}

func (s *LedgerService) Accounts(userID string) ([]*model.Account, error) {
	return s.accountRepository.Accounts(userID)
}

func (s *LedgerService) Transactions(userID string, filter repository.TransactionFilter) ([]*model.Transaction, error) {
	return s.transactionRepository.List(userID, filter)
}

type TransactionInput struct {
	AccountID   string
	Date        time.Time
	Amount      decimal.Decimal
	Category    string
	Description string
	Type        string
}

// Record inserts a manual ledger entry and moves the account balance by the
// signed amount.
func (s *LedgerService) Record(userID string, in TransactionInput) (*model.Transaction, error) {
	if !transactionTypes[in.Type] {
		return nil, ErrInvalidTransactionType
	}
	if in.Amount.IsZero() {
		return nil, ErrZeroAmount
	}

	// Ownership check before touching the ledger
	_, err := s.accountRepository.ByID(userID, in.AccountID)
	if err != nil {
		return nil, err
	}

	if in.Date.IsZero() {
		in.Date = time.Now()
	}

	tx := &model.Transaction{
		ID:          uuid.New().String(),
		UserID:      userID,
		AccountID:   in.AccountID,
		Date:        in.Date,
		Amount:      in.Amount.Round(2),
		Category:    strings.TrimSpace(in.Category),
		Description: strings.TrimSpace(in.Description),
		Type:        in.Type,
		CreatedAt:   time.Now(),
	}

	err = s.transactionRepository.Create(tx)
	if err != nil {
		return nil, fmt.Errorf("failed to record transaction: %w", err)
	}

	err = s.accountRepository.AdjustBalance(userID, in.AccountID, tx.Amount)
	if err != nil {
		return nil, fmt.Errorf("failed to adjust balance: %w", err)
	}

	return tx, nil
}
