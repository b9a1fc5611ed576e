package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/hadikasem/AI-Financial-Advisor/internal/model"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
)

type TransactionRepository interface {
	Create(tx *model.Transaction) error
	CreateBatch(txs []*model.Transaction) error
	ByID(userID, txID string) (*model.Transaction, error)
	List(userID string, filter TransactionFilter) ([]*model.Transaction, error)
	SumByAccount(userID, accountID string) (decimal.Decimal, error)
	NetAmountSince(userID string, since time.Time) (decimal.Decimal, error)
	CountSince(userID string, since time.Time) (int, error)
}

// TransactionFilter narrows List results. Zero values mean no constraint.
type TransactionFilter struct {
	AccountID string
	Type      string
	From      time.Time
	To        time.Time
	Limit     int
}

type transactionRepository struct {
	db *sqlx.DB
}

func NewTransactionRepository(db *sqlx.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(tx *model.Transaction) error {
	query := `INSERT INTO transactions (id, user_id, account_id, date, amount, category, description, type, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.Exec(query,
		tx.ID,
		tx.UserID,
		tx.AccountID,
		tx.Date,
		tx.Amount,
		tx.Category,
		tx.Description,
		tx.Type,
		tx.CreatedAt,
	)

	return err
}

// CreateBatch inserts the transactions in one database transaction so a
// simulation run is all-or-nothing.
func (r *transactionRepository) CreateBatch(txs []*model.Transaction) error {
	if len(txs) == 0 {
		return nil
	}

	dbtx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer dbtx.Rollback()

	query := `INSERT INTO transactions (id, user_id, account_id, date, amount, category, description, type, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	for _, tx := range txs {
		_, err := dbtx.Exec(query,
			tx.ID,
			tx.UserID,
			tx.AccountID,
			tx.Date,
			tx.Amount,
			tx.Category,
			tx.Description,
			tx.Type,
			tx.CreatedAt,
		)
		if err != nil {
			return err
		}
	}

	return dbtx.Commit()
}

func (r *transactionRepository) ByID(userID, txID string) (*model.Transaction, error) {
	tx := &model.Transaction{}
	query := `SELECT * FROM transactions WHERE id = $1 AND user_id = $2`

	err := r.db.Get(tx, query, txID, userID)
	if err == sql.ErrNoRows {
		return nil, ErrTransactionNotFound
	}

	return tx, err
}

func (r *transactionRepository) List(userID string, filter TransactionFilter) ([]*model.Transaction, error) {
	query := `SELECT * FROM transactions WHERE user_id = ?`
	args := []any{userID}

	if filter.AccountID != "" {
		query += ` AND account_id = ?`
		args = append(args, filter.AccountID)
	}
	if filter.Type != "" {
		query += ` AND type = ?`
		args = append(args, filter.Type)
	}
	if !filter.From.IsZero() {
		query += ` AND date >= ?`
		args = append(args, filter.From)
	}
	if !filter.To.IsZero() {
		query += ` AND date <= ?`
		args = append(args, filter.To)
	}

	query += ` ORDER BY date DESC`

	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	var txs []*model.Transaction
	err := r.db.Select(&txs, r.db.Rebind(query), args...)
	if err != nil {
		return nil, err
	}

	return txs, nil
}

func (r *transactionRepository) SumByAccount(userID, accountID string) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	query := `SELECT SUM(amount) FROM transactions WHERE user_id = $1 AND account_id = $2`

	err := r.db.Get(&sum, query, userID, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}

	return sum.Decimal, nil
}

// NetAmountSince sums all signed transaction amounts since the given time.
func (r *transactionRepository) NetAmountSince(userID string, since time.Time) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	query := `SELECT SUM(amount) FROM transactions
	          WHERE user_id = $1 AND date >= $2`

	err := r.db.Get(&sum, query, userID, since)
	if err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}

	return sum.Decimal, nil
}

func (r *transactionRepository) CountSince(userID string, since time.Time) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM transactions WHERE user_id = $1 AND date >= $2`
	err := r.db.QueryRow(query, userID, since).Scan(&count)
	return count, err
}
