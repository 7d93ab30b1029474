package paymentrepo

import (
	"context"
	"errors"
	"time"

	"github.com/GlebRadaev/bankledger/internal/domain"
	"github.com/GlebRadaev/bankledger/internal/pg"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type Repository struct {
	db        pg.Database
	txManager pg.TXManager
}

func New(db pg.Database, txManager pg.TXManager) *Repository {
	return &Repository{
		db:        db,
		txManager: txManager,
	}
}

func (r *Repository) Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error) {
	query := `
		INSERT INTO payments (account_id, user_id, amount, direction, status, description, external_transaction_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query,
		payment.AccountID, payment.UserID, payment.Amount, payment.Direction,
		payment.Status, payment.Description, payment.ExternalTransactionID,
	).Scan(&payment.ID, &payment.CreatedAt)
	if err != nil {
		zap.L().Error("can't save payment", zap.Error(err))
		return nil, err
	}
	return payment, nil
}

func (r *Repository) FindByID(ctx context.Context, paymentID int) (*domain.Payment, error) {
	query := `
		SELECT id, account_id, user_id, amount, direction, status, description,
		       external_transaction_id, failure_reason, created_at, processed_at
		FROM payments
		WHERE id = $1
	`
	row := r.db.QueryRow(ctx, query, paymentID)

	var payment domain.Payment
	err := row.Scan(&payment.ID, &payment.AccountID, &payment.UserID, &payment.Amount,
		&payment.Direction, &payment.Status, &payment.Description,
		&payment.ExternalTransactionID, &payment.FailureReason, &payment.CreatedAt, &payment.ProcessedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find payment", zap.Error(err))
		return nil, err
	}
	return &payment, nil
}

func (r *Repository) FindByUserID(ctx context.Context, userID int, limit, offset int) ([]domain.Payment, error) {
	query := `
		SELECT id, account_id, user_id, amount, direction, status, description,
		       external_transaction_id, failure_reason, created_at, processed_at
		FROM payments
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		zap.L().Error("can't get payments", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var payment domain.Payment
		err := rows.Scan(&payment.ID, &payment.AccountID, &payment.UserID, &payment.Amount,
			&payment.Direction, &payment.Status, &payment.Description,
			&payment.ExternalTransactionID, &payment.FailureReason, &payment.CreatedAt, &payment.ProcessedAt)
		if err != nil {
			zap.L().Error("can't scan payment row", zap.Error(err))
			return nil, err
		}
		payments = append(payments, payment)
	}
	return payments, nil
}

// FindForUpdate locks the payment row so its status re-check and the balance
// mutation happen under the same transaction.
func (r *Repository) FindForUpdate(ctx context.Context, paymentID int) (*domain.Payment, error) {
	query := `
		SELECT id, account_id, user_id, amount, direction, status, description,
		       external_transaction_id, failure_reason, created_at, processed_at
		FROM payments
		WHERE id = $1
		FOR UPDATE
	`
	row := r.db.QueryRow(ctx, query, paymentID)

	var payment domain.Payment
	err := row.Scan(&payment.ID, &payment.AccountID, &payment.UserID, &payment.Amount,
		&payment.Direction, &payment.Status, &payment.Description,
		&payment.ExternalTransactionID, &payment.FailureReason, &payment.CreatedAt, &payment.ProcessedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't lock payment", zap.Error(err))
		return nil, err
	}
	return &payment, nil
}

func (r *Repository) FindForProcessing(ctx context.Context, limit uint32) ([]domain.Payment, error) {
	query := `
		SELECT id, account_id, user_id, amount, direction, status, description,
		       external_transaction_id, failure_reason, created_at, processed_at
		FROM payments
		WHERE status = 'PENDING'
		ORDER BY created_at ASC
		LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, int(limit))
	if err != nil {
		zap.L().Error("can't get payments for processing", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var payment domain.Payment
		err := rows.Scan(&payment.ID, &payment.AccountID, &payment.UserID, &payment.Amount,
			&payment.Direction, &payment.Status, &payment.Description,
			&payment.ExternalTransactionID, &payment.FailureReason, &payment.CreatedAt, &payment.ProcessedAt)
		if err != nil {
			zap.L().Error("can't scan payment row for processing", zap.Error(err))
			return nil, err
		}
		payments = append(payments, payment)
	}
	return payments, nil
}

func (r *Repository) MarkCompleted(ctx context.Context, paymentID int, processedAt time.Time) error {
	query := `
		UPDATE payments
		SET status = 'COMPLETED', processed_at = $1
		WHERE id = $2
	`
	_, err := r.db.Exec(ctx, query, processedAt, paymentID)
	if err != nil {
		zap.L().Error("failed to mark payment completed", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) MarkFailed(ctx context.Context, paymentID int, reason string, processedAt time.Time) error {
	query := `
		UPDATE payments
		SET status = 'FAILED', failure_reason = $1, processed_at = $2
		WHERE id = $3 AND status = 'PENDING'
	`
	_, err := r.db.Exec(ctx, query, reason, processedAt, paymentID)
	if err != nil {
		zap.L().Error("failed to mark payment failed", zap.Error(err))
		return err
	}
	return nil
}
