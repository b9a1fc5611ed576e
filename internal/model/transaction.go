package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TransactionTypeIncome   = "income"
	TransactionTypeExpense  = "expense"
	TransactionTypeSavings  = "savings"
	TransactionTypeTransfer = "transfer"
	TransactionTypeInvest   = "investment"
)

// Transaction is one entry of the append-only ledger. Amount is signed:
// positive for inflows, negative for outflows.
type Transaction struct {
	ID          string          `db:"id" json:"id"`
	UserID      string          `db:"user_id" json:"user_id"`
	AccountID   string          `db:"account_id" json:"account_id"`
	Date        time.Time       `db:"date" json:"date"`
	Amount      decimal.Decimal `db:"amount" json:"amount"`
	Category    string          `db:"category" json:"category"`
	Description string          `db:"description" json:"description"`
	Type        string          `db:"type" json:"type"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}
