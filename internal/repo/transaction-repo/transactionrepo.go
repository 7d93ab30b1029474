package transactionrepo

import (
	"context"

	"github.com/GlebRadaev/bankledger/internal/domain"
	"github.com/GlebRadaev/bankledger/internal/pg"
	"go.uber.org/zap"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

// Create appends a ledger row. The unique index on external_transaction_id
// guarantees at most one row per payment.
func (r *Repository) Create(ctx context.Context, transaction *domain.Transaction) (*domain.Transaction, error) {
	query := `
		INSERT INTO transactions (account_id, external_transaction_id, amount, direction, balance_after)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query,
		transaction.AccountID, transaction.ExternalTransactionID,
		transaction.Amount, transaction.Direction, transaction.BalanceAfter,
	).Scan(&transaction.ID, &transaction.CreatedAt)
	if err != nil {
		zap.L().Error("can't save transaction", zap.Error(err))
		return nil, err
	}
	return transaction, nil
}

func (r *Repository) FindByAccountID(ctx context.Context, accountID int, limit, offset int) ([]domain.Transaction, error) {
	query := `
		SELECT id, account_id, external_transaction_id, amount, direction, balance_after, created_at
		FROM transactions
		WHERE account_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, accountID, limit, offset)
	if err != nil {
		zap.L().Error("failed to fetch transactions", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var transactions []domain.Transaction
	for rows.Next() {
		var tr domain.Transaction
		err := rows.Scan(&tr.ID, &tr.AccountID, &tr.ExternalTransactionID,
			&tr.Amount, &tr.Direction, &tr.BalanceAfter, &tr.CreatedAt)
		if err != nil {
			zap.L().Error("failed to scan transaction row", zap.Error(err))
			return nil, err
		}
		transactions = append(transactions, tr)
	}

	return transactions, nil
}
