package transactionrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/GlebRadaev/bankledger/internal/domain"
	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	defer mockDB.Close()

	return repo, mockDB
}

func TestRepository_Create(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()
	externalID := uuid.New()

	tests := []struct {
		name        string
		transaction *domain.Transaction
		mockSetup   func()
		expectErr   bool
	}{
		{
			name: "Successfully creates transaction",
			transaction: &domain.Transaction{
				AccountID:             1,
				ExternalTransactionID: externalID,
				Amount:                decimal.NewFromFloat(125.50),
				Direction:             "DEBIT",
				BalanceAfter:          decimal.NewFromFloat(874.50),
			},
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`
			INSERT INTO transactions (account_id, external_transaction_id, amount, direction, balance_after)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, created_at`)).
					WithArgs(1, externalID, decimal.NewFromFloat(125.50), "DEBIT", decimal.NewFromFloat(874.50)).
					WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(1, now))
			},
			expectErr: false,
		},
		{
			name: "Database error",
			transaction: &domain.Transaction{
				AccountID:             1,
				ExternalTransactionID: externalID,
				Amount:                decimal.NewFromFloat(125.50),
				Direction:             "DEBIT",
				BalanceAfter:          decimal.NewFromFloat(874.50),
			},
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`
			INSERT INTO transactions (account_id, external_transaction_id, amount, direction, balance_after)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, created_at`)).
					WithArgs(1, externalID, decimal.NewFromFloat(125.50), "DEBIT", decimal.NewFromFloat(874.50)).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			result, err := repo.Create(context.Background(), tt.transaction)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, 1, result.ID)
				assert.Equal(t, now, result.CreatedAt)
			}
		})
	}
}

func TestRepository_FindByAccountID(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	tests := []struct {
		name      string
		accountID int
		mockSetup func()
		expectErr bool
		count     int
	}{
		{
			name:      "Returns transactions newest first",
			accountID: 1,
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id", "account_id", "external_transaction_id", "amount", "direction", "balance_after", "created_at"}).
					AddRow(2, 1, uuid.New(), decimal.NewFromInt(50), "CREDIT", decimal.NewFromInt(150), now).
					AddRow(1, 1, uuid.New(), decimal.NewFromInt(100), "CREDIT", decimal.NewFromInt(100), now)
				mock.ExpectQuery(regexp.QuoteMeta(`
			SELECT id, account_id, external_transaction_id, amount, direction, balance_after, created_at
			FROM transactions
			WHERE account_id = $1
			ORDER BY created_at DESC
			LIMIT $2 OFFSET $3`)).
					WithArgs(1, 50, 0).
					WillReturnRows(rows)
			},
			expectErr: false,
			count:     2,
		},
		{
			name:      "No transactions",
			accountID: 2,
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id", "account_id", "external_transaction_id", "amount", "direction", "balance_after", "created_at"})
				mock.ExpectQuery(regexp.QuoteMeta(`
			SELECT id, account_id, external_transaction_id, amount, direction, balance_after, created_at
			FROM transactions
			WHERE account_id = $1
			ORDER BY created_at DESC
			LIMIT $2 OFFSET $3`)).
					WithArgs(2, 50, 0).
					WillReturnRows(rows)
			},
			expectErr: false,
			count:     0,
		},
		{
			name:      "Database error",
			accountID: 1,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`
			SELECT id, account_id, external_transaction_id, amount, direction, balance_after, created_at
			FROM transactions
			WHERE account_id = $1
			ORDER BY created_at DESC
			LIMIT $2 OFFSET $3`)).
					WithArgs(1, 50, 0).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
			count:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.FindByAccountID(context.Background(), tt.accountID, 50, 0)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Len(t, result, tt.count)
			}
		})
	}
}
