package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	RoleUser  string = "user"
	RoleAdmin string = "admin"
)

const (
	AccountTypeChecking   string = "CHECKING"
	AccountTypeSavings    string = "SAVINGS"
	AccountTypeCredit     string = "CREDIT"
	AccountTypeInvestment string = "INVESTMENT"
)

const (
	AccountStatusActive  string = "ACTIVE"
	AccountStatusBlocked string = "BLOCKED"
	AccountStatusClosed  string = "CLOSED"
)

const (
	// DirectionCredit increases the account balance.
	DirectionCredit string = "CREDIT"
	// DirectionDebit decreases the account balance.
	DirectionDebit string = "DEBIT"
)

const (
	PaymentStatusPending   string = "PENDING"
	PaymentStatusCompleted string = "COMPLETED"
	PaymentStatusFailed    string = "FAILED"
)

type User struct {
	ID           int       `db:"id"`
	Login        string    `db:"login"`
	PasswordHash string    `db:"password_hash"`
	Role         string    `db:"role"`
	CreatedAt    time.Time `db:"created_at"`
}

type Bank struct {
	ID        int       `db:"id"`
	Name      string    `db:"name"`
	Code      string    `db:"code"`
	CreatedAt time.Time `db:"created_at"`
}

// BankAccount holds a single-currency balance. Balance must stay non-negative
// for every type except CREDIT.
type BankAccount struct {
	ID          int             `db:"id"`
	UserID      int             `db:"user_id"`
	BankID      int             `db:"bank_id"`
	Number      string          `db:"number"`
	AccountType string          `db:"account_type"`
	Balance     decimal.Decimal `db:"balance"`
	Status      string          `db:"status"`
	CreatedAt   time.Time       `db:"created_at"`
}

// AllowsNegativeBalance reports whether the account may be overdrawn.
func (a *BankAccount) AllowsNegativeBalance() bool {
	return a.AccountType == AccountTypeCredit
}

type Payment struct {
	ID                    int             `db:"id"`
	AccountID             int             `db:"account_id"`
	UserID                int             `db:"user_id"`
	Amount                decimal.Decimal `db:"amount"`
	Direction             string          `db:"direction"`
	Status                string          `db:"status"`
	Description           string          `db:"description"`
	ExternalTransactionID uuid.UUID       `db:"external_transaction_id"`
	FailureReason         *string         `db:"failure_reason"`
	CreatedAt             time.Time       `db:"created_at"`
	ProcessedAt           *time.Time      `db:"processed_at"`
}

// Transaction is an append-only ledger record, written exactly once per
// completed payment.
type Transaction struct {
	ID                    int             `db:"id"`
	AccountID             int             `db:"account_id"`
	ExternalTransactionID uuid.UUID       `db:"external_transaction_id"`
	Amount                decimal.Decimal `db:"amount"`
	Direction             string          `db:"direction"`
	BalanceAfter          decimal.Decimal `db:"balance_after"`
	CreatedAt             time.Time       `db:"created_at"`
}
