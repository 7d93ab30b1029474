package bankrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/GlebRadaev/bankledger/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
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

	tests := []struct {
		name      string
		bank      *domain.Bank
		mockSetup func()
		expectErr bool
	}{
		{
			name: "Successfully creates bank",
			bank: &domain.Bank{Name: "First National", Code: "FNB"},
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`
			INSERT INTO banks (name, code)
			VALUES ($1, $2)
			RETURNING id, created_at`)).
					WithArgs("First National", "FNB").
					WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(1, now))
			},
			expectErr: false,
		},
		{
			name: "Database error",
			bank: &domain.Bank{Name: "First National", Code: "FNB"},
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`
			INSERT INTO banks (name, code)
			VALUES ($1, $2)
			RETURNING id, created_at`)).
					WithArgs("First National", "FNB").
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			result, err := repo.Create(context.Background(), tt.bank)

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

func TestRepository_FindByID(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	tests := []struct {
		name      string
		bankID    int
		mockSetup func()
		expectErr bool
		result    *domain.Bank
	}{
		{
			name:   "Existing bank",
			bankID: 1,
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id", "name", "code", "created_at"}).
					AddRow(1, "First National", "FNB", now)
				mock.ExpectQuery(regexp.QuoteMeta(`
			SELECT id, name, code, created_at
			FROM banks
			WHERE id = $1`)).
					WithArgs(1).
					WillReturnRows(rows)
			},
			expectErr: false,
			result:    &domain.Bank{ID: 1, Name: "First National", Code: "FNB", CreatedAt: now},
		},
		{
			name:   "Non-existing bank returns nil",
			bankID: 99,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`
			SELECT id, name, code, created_at
			FROM banks
			WHERE id = $1`)).
					WithArgs(99).
					WillReturnError(pgx.ErrNoRows)
			},
			expectErr: false,
			result:    nil,
		},
		{
			name:   "Database error",
			bankID: 1,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`
			SELECT id, name, code, created_at
			FROM banks
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
			result, err := repo.FindByID(context.Background(), tt.bankID)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.result, result)
		})
	}
}

func TestRepository_FindByCode(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	tests := []struct {
		name      string
		code      string
		mockSetup func()
		result    *domain.Bank
	}{
		{
			name: "Existing code",
			code: "FNB",
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id", "name", "code", "created_at"}).
					AddRow(1, "First National", "FNB", now)
				mock.ExpectQuery(regexp.QuoteMeta(`
			SELECT id, name, code, created_at
			FROM banks
			WHERE code = $1`)).
					WithArgs("FNB").
					WillReturnRows(rows)
			},
			result: &domain.Bank{ID: 1, Name: "First National", Code: "FNB", CreatedAt: now},
		},
		{
			name: "Non-existing code returns nil",
			code: "XXX",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`
			SELECT id, name, code, created_at
			FROM banks
			WHERE code = $1`)).
					WithArgs("XXX").
					WillReturnError(pgx.ErrNoRows)
			},
			result: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.FindByCode(context.Background(), tt.code)

			assert.NoError(t, err)
			assert.Equal(t, tt.result, result)
		})
	}
}

func TestRepository_List(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		count     int
	}{
		{
			name: "Returns banks ordered by name",
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id", "name", "code", "created_at"}).
					AddRow(2, "Alpha Bank", "ALF", now).
					AddRow(1, "First National", "FNB", now)
				mock.ExpectQuery(regexp.QuoteMeta(`
			SELECT id, name, code, created_at
			FROM banks
			ORDER BY name ASC`)).
					WillReturnRows(rows)
			},
			expectErr: false,
			count:     2,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`
			SELECT id, name, code, created_at
			FROM banks
			ORDER BY name ASC`)).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
			count:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.List(context.Background())

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Len(t, result, tt.count)
			}
		})
	}
}

func TestRepository_Update(t *testing.T) {
	repo, mock := NewMock(t)

	tests := []struct {
		name      string
		bank      *domain.Bank
		mockSetup func()
		expectErr bool
	}{
		{
			name: "Successfully updates bank",
			bank: &domain.Bank{ID: 1, Name: "Renamed", Code: "RNB"},
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta(`
			UPDATE banks
			SET name = $1, code = $2
			WHERE id = $3`)).
					WithArgs("Renamed", "RNB", 1).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			},
			expectErr: false,
		},
		{
			name: "Database error",
			bank: &domain.Bank{ID: 1, Name: "Renamed", Code: "RNB"},
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta(`
			UPDATE banks
			SET name = $1, code = $2
			WHERE id = $3`)).
					WithArgs("Renamed", "RNB", 1).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			err := repo.Update(context.Background(), tt.bank)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRepository_Delete(t *testing.T) {
	repo, mock := NewMock(t)

	tests := []struct {
		name      string
		bankID    int
		mockSetup func()
		expectErr bool
	}{
		{
			name:   "Successfully deletes bank",
			bankID: 1,
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta(`
			DELETE FROM banks
			WHERE id = $1`)).
					WithArgs(1).
					WillReturnResult(pgxmock.NewResult("DELETE", 1))
			},
			expectErr: false,
		},
		{
			name:   "Database error",
			bankID: 1,
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta(`
			DELETE FROM banks
			WHERE id = $1`)).
					WithArgs(1).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			err := repo.Delete(context.Background(), tt.bankID)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRepository_CountAccounts(t *testing.T) {
	repo, mock := NewMock(t)

	tests := []struct {
		name      string
		bankID    int
		mockSetup func()
		expectErr bool
		count     int
	}{
		{
			name:   "Bank with accounts",
			bankID: 1,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`
			SELECT count(*)
			FROM bank_accounts
			WHERE bank_id = $1`)).
					WithArgs(1).
					WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(3))
			},
			expectErr: false,
			count:     3,
		},
		{
			name:   "Database error",
			bankID: 1,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`
			SELECT count(*)
			FROM bank_accounts
			WHERE bank_id = $1`)).
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
			count, err := repo.CountAccounts(context.Background(), tt.bankID)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.count, count)
		})
	}
}
