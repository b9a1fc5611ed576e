package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/hadikasem/AI-Financial-Advisor/internal/model"
)

var (
	ErrAccountNotFound = errors.New("account not found")
)

type AccountRepository interface {
	Create(account *model.Account) error
	ByID(userID, accountID string) (*model.Account, error)
	Accounts(userID string) ([]*model.Account, error)
	AdjustBalance(userID, accountID string, delta decimal.Decimal) error
}

type accountRepository struct {
	db *sqlx.DB
}

func NewAccountRepository(db *sqlx.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Create(account *model.Account) error {
	query := `INSERT INTO accounts (id, user_id, name, type, balance, is_active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(query,
		account.ID,
		account.UserID,
		account.Name,
		account.Type,
		account.Balance,
		account.IsActive,
		account.CreatedAt,
		account.UpdatedAt,
	)

	return err
}

func (r *accountRepository) ByID(userID, accountID string) (*model.Account, error) {
	account := &model.Account{}
	query := `SELECT * FROM accounts WHERE id = $1 AND user_id = $2`

	err := r.db.Get(account, query, accountID, userID)
	if err == sql.ErrNoRows {
		return nil, ErrAccountNotFound
	}

	return account, err
}

func (r *accountRepository) Accounts(userID string) ([]*model.Account, error) {
	var accounts []*model.Account
	query := `SELECT * FROM accounts WHERE user_id = $1 AND is_active = TRUE ORDER BY created_at ASC, name ASC`

	err := r.db.Select(&accounts, query, userID)
	if err != nil {
		return nil, err
	}

	return accounts, nil
}

func (r *accountRepository) AdjustBalance(userID, accountID string, delta decimal.Decimal) error {
	query := `UPDATE accounts SET balance = balance + $1, updated_at = CURRENT_TIMESTAMP
	          WHERE id = $2 AND user_id = $3`

	result, err := r.db.Exec(query, delta, accountID, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrAccountNotFound
	}

	return nil
}
