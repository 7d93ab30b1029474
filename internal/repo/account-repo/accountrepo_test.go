package accountrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/GlebRadaev/bankledger/internal/domain"
	"github.com/GlebRadaev/bankledger/internal/pg"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface, *pg.MockTXManager) {
	ctrl := gomock.NewController(t)
	mockTxManager := pg.NewMockTXManager(ctrl)

	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB, mockTxManager)
	defer mockDB.Close()
	defer ctrl.Finish()

	return repo, mockDB, mockTxManager
}

func TestRepository_Create(t *testing.T) {
	repo, mock, _ := NewMock(t)
	now := time.Now()

	tests := []struct {
		name      string
		account   *domain.BankAccount
		mockSetup func()
		expectErr bool
	}{
		{
			name: "Successfully creates account",
			account: &domain.BankAccount{
				UserID:      1,
				BankID:      1,
				Number:      "4561261212345467",
				AccountType: "CHECKING",
				Balance:     decimal.Zero,
				Status:      "ACTIVE",
			},
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`
			INSERT INTO bank_accounts (user_id, bank_id, number, account_type, balance, status)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, created_at`)).
					WithArgs(1, 1, "4561261212345467", "CHECKING", decimal.Zero, "ACTIVE").
					WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(1, now))
			},
			expectErr: false,
		},
		{
			name: "Database error",
			account: &domain.BankAccount{
				UserID:      1,
				BankID:      1,
				Number:      "4561261212345467",
				AccountType: "CHECKING",
				Balance:     decimal.Zero,
				Status:      "ACTIVE",
			},
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`
			INSERT INTO bank_accounts (user_id, bank_id, number, account_type, balance, status)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, created_at`)).
					WithArgs(1, 1, "4561261212345467", "CHECKING", decimal.Zero, "ACTIVE").
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			result, err := repo.Create(context.Background(), tt.account)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, 1, result.ID)
			}
		})
	}
}

func TestRepository_FindByID(t *testing.T) {
	repo, mock, _ := NewMock(t)
	now := time.Now()

	tests := []struct {
		name      string
		accountID int
		mockSetup func()
		expectErr bool
		result    *domain.BankAccount
	}{
		{
			name:      "Existing account",
			accountID: 1,
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id", "user_id", "bank_id", "number", "account_type", "balance", "status", "created_at"}).
					AddRow(1, 1, 1, "4561261212345467", "CHECKING", decimal.NewFromFloat(500.50), "ACTIVE", now)
				mock.ExpectQuery(regexp.QuoteMeta(`
			SELECT id, user_id, bank_id, number, account_type, balance, status, created_at
			FROM bank_accounts
			WHERE id = $1`)).
					WithArgs(1).
					WillReturnRows(rows)
			},
			expectErr: false,
			result: &domain.BankAccount{
				ID:          1,
				UserID:      1,
				BankID:      1,
				Number:      "4561261212345467",
				AccountType: "CHECKING",
				Balance:     decimal.NewFromFloat(500.50),
				Status:      "ACTIVE",
				CreatedAt:   now,
			},
		},
		{
			name:      "Non-existing account returns nil",
			accountID: 99,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`
			SELECT id, user_id, bank_id, number, account_type, balance, status, created_at
			FROM bank_accounts
			WHERE id = $1`)).
					WithArgs(99).
					WillReturnError(pgx.ErrNoRows)
			},
			expectErr: false,
			result:    nil,
		},
		{
			name:      "Database error",
			accountID: 1,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`
			SELECT id, user_id, bank_id, number, account_type, balance, status, created_at
			FROM bank_accounts
			WHERE id = $1`)).
					WithArgs(1).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
			result:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.FindByID(context.Background(), tt.accountID)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.result, result)
		})
	}
}

func TestRepository_FindByNumber(t *testing.T) {
	repo, mock, _ := NewMock(t)
	now := time.Now()

	tests := []struct {
		name      string
		number    string
		mockSetup func()
		result    *domain.BankAccount
	}{
		{
			name:   "Existing number",
			number: "4561261212345467",
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id", "user_id", "bank_id", "number", "account_type", "balance", "status", "created_at"}).
					AddRow(1, 1, 1, "4561261212345467", "CHECKING", decimal.Zero, "ACTIVE", now)
				mock.ExpectQuery(regexp.QuoteMeta(`
			SELECT id, user_id, bank_id, number, account_type, balance, status, created_at
			FROM bank_accounts
			WHERE number = $1`)).
					WithArgs("4561261212345467").
					WillReturnRows(rows)
			},
			result: &domain.BankAccount{
				ID:          1,
				UserID:      1,
				BankID:      1,
				Number:      "4561261212345467",
				AccountType: "CHECKING",
				Balance:     decimal.Zero,
				Status:      "ACTIVE",
				CreatedAt:   now,
			},
		},
		{
			name:   "Non-existing number returns nil",
			number: "0000000000000000",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`
			SELECT id, user_id, bank_id, number, account_type, balance, status, created_at
			FROM bank_accounts
			WHERE number = $1`)).
					WithArgs("0000000000000000").
					WillReturnError(pgx.ErrNoRows)
			},
			result: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.FindByNumber(context.Background(), tt.number)

			assert.NoError(t, err)
			assert.Equal(t, tt.result, result)
		})
	}
}

func TestRepository_FindByUserID(t *testing.T) {
	repo, mock, _ := NewMock(t)
	now := time.Now()

	tests := []struct {
		name      string
		userID    int
		mockSetup func()
		expectErr bool
		count     int
	}{
		{
			name:   "Returns user accounts",
			userID: 1,
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id", "user_id", "bank_id", "number", "account_type", "balance", "status", "created_at"}).
					AddRow(1, 1, 1, "4561261212345467", "CHECKING", decimal.Zero, "ACTIVE", now).
					AddRow(2, 1, 1, "4561261212345475", "SAVINGS", decimal.NewFromInt(100), "ACTIVE", now)
				mock.ExpectQuery(regexp.QuoteMeta(`
			SELECT id, user_id, bank_id, number, account_type, balance, status, created_at
			FROM bank_accounts
			WHERE user_id = $1
			ORDER BY created_at DESC`)).
					WithArgs(1).
					WillReturnRows(rows)
			},
			expectErr: false,
			count:     2,
		},
		{
			name:   "Database error",
			userID: 1,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`
			SELECT id, user_id, bank_id, number, account_type, balance, status, created_at
			FROM bank_accounts
			WHERE user_id = $1
			ORDER BY created_at DESC`)).
					WithArgs(1).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
			count:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.FindByUserID(context.Background(), tt.userID)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Len(t, result, tt.count)
			}
		})
	}
}

func TestRepository_FindForUpdate(t *testing.T) {
	repo, mock, tx := NewMock(t)
	now := time.Now()

	tests := []struct {
		name      string
		accountID int
		mockSetup func()
		result    *domain.BankAccount
	}{
		{
			name:      "Locks and returns account",
			accountID: 1,
			mockSetup: func() {
				tx.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error {
					rows := pgxmock.NewRows([]string{"id", "user_id", "bank_id", "number", "account_type", "balance", "status", "created_at"}).
						AddRow(1, 1, 1, "4561261212345467", "CHECKING", decimal.NewFromInt(100), "ACTIVE", now)
					mock.ExpectQuery(regexp.QuoteMeta(`
			SELECT id, user_id, bank_id, number, account_type, balance, status, created_at
			FROM bank_accounts
			WHERE id = $1
			FOR UPDATE`)).
						WithArgs(1).
						WillReturnRows(rows)
					return fn(ctx)
				})
			},
			result: &domain.BankAccount{
				ID:          1,
				UserID:      1,
				BankID:      1,
				Number:      "4561261212345467",
				AccountType: "CHECKING",
				Balance:     decimal.NewFromInt(100),
				Status:      "ACTIVE",
				CreatedAt:   now,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			var result *domain.BankAccount
			err := repo.txManager.Begin(context.Background(), func(ctx context.Context) error {
				var err error
				result, err = repo.FindForUpdate(ctx, tt.accountID)
				return err
			})

			assert.NoError(t, err)
			assert.Equal(t, tt.result, result)
		})
	}
}

func TestRepository_UpdateBalance(t *testing.T) {
	repo, mock, _ := NewMock(t)

	tests := []struct {
		name      string
		accountID int
		balance   decimal.Decimal
		mockSetup func()
		expectErr bool
	}{
		{
			name:      "Successfully updates balance",
			accountID: 1,
			balance:   decimal.NewFromFloat(374.50),
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta(`
			UPDATE bank_accounts
			SET balance = $1
			WHERE id = $2`)).
					WithArgs(decimal.NewFromFloat(374.50), 1).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			},
			expectErr: false,
		},
		{
			name:      "Database error",
			accountID: 1,
			balance:   decimal.NewFromFloat(374.50),
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta(`
			UPDATE bank_accounts
			SET balance = $1
			WHERE id = $2`)).
					WithArgs(decimal.NewFromFloat(374.50), 1).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			err := repo.UpdateBalance(context.Background(), tt.accountID, tt.balance)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRepository_UpdateStatus(t *testing.T) {
	repo, mock, _ := NewMock(t)

	tests := []struct {
		name      string
		accountID int
		status    string
		mockSetup func()
		expectErr bool
	}{
		{
			name:      "Successfully closes account",
			accountID: 1,
			status:    "CLOSED",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta(`
			UPDATE bank_accounts
			SET status = $1
			WHERE id = $2`)).
					WithArgs("CLOSED", 1).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			},
			expectErr: false,
		},
		{
			name:      "Database error",
			accountID: 1,
			status:    "CLOSED",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta(`
			UPDATE bank_accounts
			SET status = $1
			WHERE id = $2`)).
					WithArgs("CLOSED", 1).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			err := repo.UpdateStatus(context.Background(), tt.accountID, tt.status)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
