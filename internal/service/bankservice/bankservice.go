package bankservice

import (
	"context"
	"errors"

	"github.com/GlebRadaev/bankledger/internal/domain"
	"go.uber.org/zap"
)

type Repo interface {
	Create(ctx context.Context, bank *domain.Bank) (*domain.Bank, error)
	FindByID(ctx context.Context, bankID int) (*domain.Bank, error)
	FindByCode(ctx context.Context, code string) (*domain.Bank, error)
	List(ctx context.Context) ([]domain.Bank, error)
	Update(ctx context.Context, bank *domain.Bank) error
	Delete(ctx context.Context, bankID int) error
	CountAccounts(ctx context.Context, bankID int) (int, error)
}

type Service struct {
	repo Repo
}

func New(repo Repo) *Service {
	return &Service{
		repo: repo,
	}
}

var (
	ErrBankNotFound    = errors.New("bank not found")
	ErrBankCodeTaken   = errors.New("bank code already taken")
	ErrBankHasAccounts = errors.New("bank has accounts")
)

func (s *Service) CreateBank(ctx context.Context, name, code string) (*domain.Bank, error) {
	existing, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		zap.L().Info("bank code already taken", zap.String("code", code))
		return nil, ErrBankCodeTaken
	}

	bank := &domain.Bank{
		Name: name,
		Code: code,
	}
	created, err := s.repo.Create(ctx, bank)
	if err != nil {
		zap.L().Error("can't create bank: ", zap.Error(err))
		return nil, err
	}
	return created, nil
}

func (s *Service) GetBanks(ctx context.Context) ([]domain.Bank, error) {
	banks, err := s.repo.List(ctx)
	if err != nil {
		zap.L().Error("failed to get banks", zap.Error(err))
		return nil, err
	}
	return banks, nil
}

func (s *Service) UpdateBank(ctx context.Context, bankID int, name, code string) (*domain.Bank, error) {
	bank, err := s.repo.FindByID(ctx, bankID)
	if err != nil {
		return nil, err
	}
	if bank == nil {
		return nil, ErrBankNotFound
	}

	if code != bank.Code {
		existing, err := s.repo.FindByCode(ctx, code)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrBankCodeTaken
		}
	}

	bank.Name = name
	bank.Code = code
	if err := s.repo.Update(ctx, bank); err != nil {
		zap.L().Error("can't update bank: ", zap.Error(err))
		return nil, err
	}
	return bank, nil
}

func (s *Service) DeleteBank(ctx context.Context, bankID int) error {
	bank, err := s.repo.FindByID(ctx, bankID)
	if err != nil {
		return err
	}
	if bank == nil {
		return ErrBankNotFound
	}

	count, err := s.repo.CountAccounts(ctx, bankID)
	if err != nil {
		return err
	}
	if count > 0 {
		zap.L().Info("bank still referenced by accounts", zap.Int("bankID", bankID), zap.Int("accounts", count))
		return ErrBankHasAccounts
	}

	if err := s.repo.Delete(ctx, bankID); err != nil {
		zap.L().Error("can't delete bank: ", zap.Error(err))
		return err
	}
	return nil
}
