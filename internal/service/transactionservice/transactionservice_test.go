package transactionservice

import (
	"context"
	"errors"
	"testing"

	"github.com/GlebRadaev/bankledger/internal/domain"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*Service, *MockRepo, *MockAccountRepo) {
	ctrl := gomock.NewController(t)
	repo := NewMockRepo(ctrl)
	accountRepo := NewMockAccountRepo(ctrl)

	service := New(repo, accountRepo)
	defer ctrl.Finish()
	return service, repo, accountRepo
}

func TestGetAccountTransactions(t *testing.T) {
	service, transactionRepo, accountRepo := NewMock(t)

	ownAccount := &domain.BankAccount{ID: 1, UserID: 1, Status: domain.AccountStatusActive}

	tests := []struct {
		name          string
		userID        int
		accountID     int
		limit         int
		offset        int
		prepareMock   func()
		expectedCount int
		expectedError error
	}{
		{
			name:      "Returns account transactions",
			userID:    1,
			accountID: 1,
			limit:     50,
			offset:    0,
			prepareMock: func() {
				accountRepo.EXPECT().FindByID(context.Background(), 1).Return(ownAccount, nil)
				transactionRepo.EXPECT().FindByAccountID(context.Background(), 1, 50, 0).Return([]domain.Transaction{
					{ID: 2, AccountID: 1}, {ID: 1, AccountID: 1},
				}, nil)
			},
			expectedCount: 2,
			expectedError: nil,
		},
		{
			name:      "Zero limit falls back to the default",
			userID:    1,
			accountID: 1,
			limit:     0,
			offset:    0,
			prepareMock: func() {
				accountRepo.EXPECT().FindByID(context.Background(), 1).Return(ownAccount, nil)
				transactionRepo.EXPECT().FindByAccountID(context.Background(), 1, 50, 0).Return(nil, nil)
			},
			expectedCount: 0,
			expectedError: nil,
		},
		{
			name:      "Limit is clamped to the maximum",
			userID:    1,
			accountID: 1,
			limit:     500,
			offset:    0,
			prepareMock: func() {
				accountRepo.EXPECT().FindByID(context.Background(), 1).Return(ownAccount, nil)
				transactionRepo.EXPECT().FindByAccountID(context.Background(), 1, 100, 0).Return(nil, nil)
			},
			expectedCount: 0,
			expectedError: nil,
		},
		{
			name:      "Negative offset is reset",
			userID:    1,
			accountID: 1,
			limit:     10,
			offset:    -5,
			prepareMock: func() {
				accountRepo.EXPECT().FindByID(context.Background(), 1).Return(ownAccount, nil)
				transactionRepo.EXPECT().FindByAccountID(context.Background(), 1, 10, 0).Return(nil, nil)
			},
			expectedCount: 0,
			expectedError: nil,
		},
		{
			name:      "Account not found",
			userID:    1,
			accountID: 99,
			limit:     50,
			offset:    0,
			prepareMock: func() {
				accountRepo.EXPECT().FindByID(context.Background(), 99).Return(nil, nil)
			},
			expectedCount: 0,
			expectedError: ErrAccountNotFound,
		},
		{
			name:      "Account owned by another user",
			userID:    1,
			accountID: 2,
			limit:     50,
			offset:    0,
			prepareMock: func() {
				accountRepo.EXPECT().FindByID(context.Background(), 2).Return(&domain.BankAccount{ID: 2, UserID: 7}, nil)
			},
			expectedCount: 0,
			expectedError: ErrAccountNotFound,
		},
		{
			name:      "Error fetching transactions",
			userID:    1,
			accountID: 1,
			limit:     50,
			offset:    0,
			prepareMock: func() {
				accountRepo.EXPECT().FindByID(context.Background(), 1).Return(ownAccount, nil)
				transactionRepo.EXPECT().FindByAccountID(context.Background(), 1, 50, 0).Return(nil, errors.New("database error"))
			},
			expectedCount: 0,
			expectedError: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			transactions, err := service.GetAccountTransactions(context.Background(), tt.userID, tt.accountID, tt.limit, tt.offset)
			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError.Error(), err.Error())
			} else {
				assert.NoError(t, err)
				assert.Len(t, transactions, tt.expectedCount)
			}
		})
	}
}
