package paymentservice

import (
	"context"
	"errors"
	"time"

	"github.com/GlebRadaev/bankledger/internal/domain"
	"github.com/GlebRadaev/bankledger/internal/pg"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type PaymentRepo interface {
	Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error)
	FindByID(ctx context.Context, paymentID int) (*domain.Payment, error)
	FindByUserID(ctx context.Context, userID int, limit, offset int) ([]domain.Payment, error)
	FindForUpdate(ctx context.Context, paymentID int) (*domain.Payment, error)
	FindForProcessing(ctx context.Context, limit uint32) ([]domain.Payment, error)
	MarkCompleted(ctx context.Context, paymentID int, processedAt time.Time) error
	MarkFailed(ctx context.Context, paymentID int, reason string, processedAt time.Time) error
}

type AccountRepo interface {
	FindByID(ctx context.Context, accountID int) (*domain.BankAccount, error)
	FindForUpdate(ctx context.Context, accountID int) (*domain.BankAccount, error)
	UpdateBalance(ctx context.Context, accountID int, balance decimal.Decimal) error
}

type TransactionRepo interface {
	Create(ctx context.Context, transaction *domain.Transaction) (*domain.Transaction, error)
}

type BalanceCache interface {
	SetBalance(ctx context.Context, accountID int, balance decimal.Decimal) error
}

type Service struct {
	paymentRepo     PaymentRepo
	accountRepo     AccountRepo
	transactionRepo TransactionRepo
	txManager       pg.TXManager
	cache           BalanceCache
}

func New(paymentRepo PaymentRepo, accountRepo AccountRepo, transactionRepo TransactionRepo, txManager pg.TXManager, cache BalanceCache) *Service {
	return &Service{
		paymentRepo:     paymentRepo,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		txManager:       txManager,
		cache:           cache,
	}
}

var (
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInvalidDirection  = errors.New("invalid payment direction")
	ErrAccountNotFound   = errors.New("account not found")
	ErrAccountNotActive  = errors.New("account is not active")
	ErrPaymentNotFound   = errors.New("payment not found")
	ErrAlreadyProcessed  = errors.New("payment already processed")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

func (s *Service) CreatePayment(ctx context.Context, userID, accountID int, amount decimal.Decimal, direction, description string) (*domain.Payment, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if direction != domain.DirectionCredit && direction != domain.DirectionDebit {
		return nil, ErrInvalidDirection
	}

	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil || account.UserID != userID {
		return nil, ErrAccountNotFound
	}
	if account.Status != domain.AccountStatusActive {
		return nil, ErrAccountNotActive
	}

	payment := &domain.Payment{
		AccountID:             accountID,
		UserID:                userID,
		Amount:                amount,
		Direction:             direction,
		Status:                domain.PaymentStatusPending,
		Description:           description,
		ExternalTransactionID: uuid.New(),
	}
	created, err := s.paymentRepo.Create(ctx, payment)
	if err != nil {
		zap.L().Error("can't create payment: ", zap.Error(err))
		return nil, err
	}

	zap.L().Info("payment accepted",
		zap.Int("paymentID", created.ID),
		zap.String("externalTransactionID", created.ExternalTransactionID.String()),
	)
	return created, nil
}

func (s *Service) GetPayments(ctx context.Context, userID int, limit, offset int) ([]domain.Payment, error) {
	payments, err := s.paymentRepo.FindByUserID(ctx, userID, limit, offset)
	if err != nil {
		zap.L().Error("failed to get payments", zap.Error(err))
		return nil, err
	}
	return payments, nil
}

func (s *Service) GetPayment(ctx context.Context, userID, paymentID int) (*domain.Payment, error) {
	payment, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil || payment.UserID != userID {
		return nil, ErrPaymentNotFound
	}
	return payment, nil
}

// FindForProcessing is used by the background processor.
func (s *Service) FindForProcessing(ctx context.Context, limit uint32) ([]domain.Payment, error) {
	return s.paymentRepo.FindForProcessing(ctx, limit)
}

// isRejection reports whether err is a business rejection that should fail
// the payment, as opposed to a transient error that leaves it PENDING.
func isRejection(err error) bool {
	return errors.Is(err, ErrInsufficientFunds) ||
		errors.Is(err, ErrAccountNotActive) ||
		errors.Is(err, ErrAccountNotFound)
}

// ProcessPayment applies a PENDING payment to its account in a single
// database transaction: it re-checks the status under a row lock, moves the
// balance by direction, refuses to take a non-credit account negative,
// appends the ledger transaction and marks the payment COMPLETED. Any error
// rolls the whole transaction back; business rejections then mark the payment
// FAILED in a separate update, transient errors leave it PENDING for retry.
func (s *Service) ProcessPayment(ctx context.Context, paymentID int) error {
	var accountID int
	var newBalance decimal.Decimal

	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		payment, err := s.paymentRepo.FindForUpdate(ctx, paymentID)
		if err != nil {
			return err
		}
		if payment == nil {
			return ErrPaymentNotFound
		}
		if payment.Status != domain.PaymentStatusPending {
			return ErrAlreadyProcessed
		}

		account, err := s.accountRepo.FindForUpdate(ctx, payment.AccountID)
		if err != nil {
			return err
		}
		if account == nil {
			return ErrAccountNotFound
		}
		if account.Status != domain.AccountStatusActive {
			return ErrAccountNotActive
		}

		switch payment.Direction {
		case domain.DirectionCredit:
			newBalance = account.Balance.Add(payment.Amount)
		case domain.DirectionDebit:
			newBalance = account.Balance.Sub(payment.Amount)
		default:
			return ErrInvalidDirection
		}

		if newBalance.IsNegative() && !account.AllowsNegativeBalance() {
			return ErrInsufficientFunds
		}

		transaction := &domain.Transaction{
			AccountID:             account.ID,
			ExternalTransactionID: payment.ExternalTransactionID,
			Amount:                payment.Amount,
			Direction:             payment.Direction,
			BalanceAfter:          newBalance,
		}
		if _, err := s.transactionRepo.Create(ctx, transaction); err != nil {
			return err
		}

		if err := s.paymentRepo.MarkCompleted(ctx, payment.ID, time.Now()); err != nil {
			return err
		}

		if err := s.accountRepo.UpdateBalance(ctx, account.ID, newBalance); err != nil {
			return err
		}

		accountID = account.ID
		return nil
	})

	if err != nil {
		if isRejection(err) {
			if failErr := s.paymentRepo.MarkFailed(ctx, paymentID, err.Error(), time.Now()); failErr != nil {
				zap.L().Error("can't mark payment failed", zap.Int("paymentID", paymentID), zap.Error(failErr))
				return failErr
			}
			zap.L().Info("payment rejected", zap.Int("paymentID", paymentID), zap.String("reason", err.Error()))
		}
		return err
	}

	if cacheErr := s.cache.SetBalance(ctx, accountID, newBalance); cacheErr != nil {
		zap.L().Warn("failed to refresh balance cache", zap.Int("accountID", accountID), zap.Error(cacheErr))
	}

	zap.L().Info("payment processed",
		zap.Int("paymentID", paymentID),
		zap.Int("accountID", accountID),
		zap.String("balance", newBalance.String()),
	)
	return nil
}
