package transactionservice

import (
	"context"
	"errors"

	"github.com/GlebRadaev/bankledger/internal/domain"
	"go.uber.org/zap"
)

type Repo interface {
	FindByAccountID(ctx context.Context, accountID int, limit, offset int) ([]domain.Transaction, error)
}

type AccountRepo interface {
	FindByID(ctx context.Context, accountID int) (*domain.BankAccount, error)
}

type Service struct {
	repo        Repo
	accountRepo AccountRepo
}

func New(repo Repo, accountRepo AccountRepo) *Service {
	return &Service{
		repo:        repo,
		accountRepo: accountRepo,
	}
}

const (
	defaultLimit = 50
	maxLimit     = 100
)

var ErrAccountNotFound = errors.New("account not found")

func (s *Service) GetAccountTransactions(ctx context.Context, userID, accountID int, limit, offset int) ([]domain.Transaction, error) {
	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil || account.UserID != userID {
		return nil, ErrAccountNotFound
	}

	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}

	transactions, err := s.repo.FindByAccountID(ctx, accountID, limit, offset)
	if err != nil {
		zap.L().Error("failed to fetch transactions", zap.Error(err))
		return nil, err
	}
	return transactions, nil
}
