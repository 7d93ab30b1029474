package accountservice

import (
	"context"
	"errors"

	"github.com/GlebRadaev/bankledger/internal/cache"
	"github.com/GlebRadaev/bankledger/internal/domain"
	"github.com/GlebRadaev/bankledger/internal/pg"
	"github.com/GlebRadaev/bankledger/pkg/validate"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type AccountRepo interface {
	Create(ctx context.Context, account *domain.BankAccount) (*domain.BankAccount, error)
	FindByID(ctx context.Context, accountID int) (*domain.BankAccount, error)
	FindByNumber(ctx context.Context, number string) (*domain.BankAccount, error)
	FindByUserID(ctx context.Context, userID int) ([]domain.BankAccount, error)
	FindForUpdate(ctx context.Context, accountID int) (*domain.BankAccount, error)
	UpdateStatus(ctx context.Context, accountID int, status string) error
}

type BankRepo interface {
	FindByID(ctx context.Context, bankID int) (*domain.Bank, error)
}

// BalanceCache is the read-through cache in front of the balance column.
type BalanceCache interface {
	GetBalance(ctx context.Context, accountID int) (decimal.Decimal, error)
	SetBalance(ctx context.Context, accountID int, balance decimal.Decimal) error
	DeleteBalance(ctx context.Context, accountID int) error
}

type Service struct {
	accountRepo AccountRepo
	bankRepo    BankRepo
	txManager   pg.TXManager
	cache       BalanceCache
}

func New(accountRepo AccountRepo, bankRepo BankRepo, txManager pg.TXManager, cache BalanceCache) *Service {
	return &Service{
		accountRepo: accountRepo,
		bankRepo:    bankRepo,
		txManager:   txManager,
		cache:       cache,
	}
}

var (
	ErrInvalidAccountNumber = errors.New("invalid account number")
	ErrAccountNumberTaken   = errors.New("account number already taken")
	ErrUnknownAccountType   = errors.New("unknown account type")
	ErrBankNotFound         = errors.New("bank not found")
	ErrAccountNotFound      = errors.New("account not found")
	ErrBalanceNotZero       = errors.New("account balance is not zero")
	ErrAccountClosed        = errors.New("account is closed")
)

var accountTypes = map[string]struct{}{
	domain.AccountTypeChecking:   {},
	domain.AccountTypeSavings:    {},
	domain.AccountTypeCredit:     {},
	domain.AccountTypeInvestment: {},
}

func (s *Service) OpenAccount(ctx context.Context, userID, bankID int, number, accountType string) (*domain.BankAccount, error) {
	if !validate.IsLuhn(number) {
		zap.L().Info("account number failed luhn check", zap.String("number", number))
		return nil, ErrInvalidAccountNumber
	}
	if _, ok := accountTypes[accountType]; !ok {
		return nil, ErrUnknownAccountType
	}

	bank, err := s.bankRepo.FindByID(ctx, bankID)
	if err != nil {
		return nil, err
	}
	if bank == nil {
		return nil, ErrBankNotFound
	}

	existing, err := s.accountRepo.FindByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		zap.L().Info("account number already taken", zap.String("number", number))
		return nil, ErrAccountNumberTaken
	}

	account := &domain.BankAccount{
		UserID:      userID,
		BankID:      bankID,
		Number:      number,
		AccountType: accountType,
		Balance:     decimal.Zero,
		Status:      domain.AccountStatusActive,
	}
	created, err := s.accountRepo.Create(ctx, account)
	if err != nil {
		zap.L().Error("can't create account: ", zap.Error(err))
		return nil, err
	}

	zap.L().Info("account opened", zap.Int("userID", userID), zap.Int("accountID", created.ID))
	return created, nil
}

func (s *Service) GetAccounts(ctx context.Context, userID int) ([]domain.BankAccount, error) {
	accounts, err := s.accountRepo.FindByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get accounts", zap.Error(err))
		return nil, err
	}
	return accounts, nil
}

// GetAccount returns the caller's account with the balance served from the
// cache when present; a miss falls back to the database row and repopulates
// the cache.
func (s *Service) GetAccount(ctx context.Context, userID, accountID int) (*domain.BankAccount, error) {
	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil || account.UserID != userID {
		return nil, ErrAccountNotFound
	}

	balance, err := s.cache.GetBalance(ctx, accountID)
	switch {
	case err == nil:
		account.Balance = balance
	case errors.Is(err, cache.ErrBalanceNotFound):
		if setErr := s.cache.SetBalance(ctx, accountID, account.Balance); setErr != nil {
			zap.L().Warn("failed to populate balance cache", zap.Int("accountID", accountID), zap.Error(setErr))
		}
	default:
		zap.L().Warn("balance cache unavailable, serving stored balance",
			zap.Int("accountID", accountID), zap.Error(err))
	}
	return account, nil
}

// CloseAccount runs the balance check and the status update in one
// transaction under a row lock, so a payment completing concurrently cannot
// slip funds into the account between the check and the close.
func (s *Service) CloseAccount(ctx context.Context, userID, accountID int) error {
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		account, err := s.accountRepo.FindForUpdate(ctx, accountID)
		if err != nil {
			return err
		}
		if account == nil || account.UserID != userID {
			return ErrAccountNotFound
		}
		if account.Status == domain.AccountStatusClosed {
			return ErrAccountClosed
		}
		if !account.Balance.IsZero() {
			return ErrBalanceNotZero
		}
		return s.accountRepo.UpdateStatus(ctx, accountID, domain.AccountStatusClosed)
	})
	if err != nil {
		if !errors.Is(err, ErrAccountNotFound) && !errors.Is(err, ErrAccountClosed) && !errors.Is(err, ErrBalanceNotZero) {
			zap.L().Error("can't close account: ", zap.Error(err))
		}
		return err
	}

	if err := s.cache.DeleteBalance(ctx, accountID); err != nil {
		zap.L().Warn("failed to drop balance cache", zap.Int("accountID", accountID), zap.Error(err))
	}

	zap.L().Info("account closed", zap.Int("userID", userID), zap.Int("accountID", accountID))
	return nil
}
