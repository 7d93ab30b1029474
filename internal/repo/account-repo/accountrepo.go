package accountrepo

import (
	"context"
	"errors"

	"github.com/GlebRadaev/bankledger/internal/domain"
	"github.com/GlebRadaev/bankledger/internal/pg"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
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

func (r *Repository) Create(ctx context.Context, account *domain.BankAccount) (*domain.BankAccount, error) {
	query := `
		INSERT INTO bank_accounts (user_id, bank_id, number, account_type, balance, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query,
		account.UserID, account.BankID, account.Number, account.AccountType, account.Balance, account.Status,
	).Scan(&account.ID, &account.CreatedAt)
	if err != nil {
		zap.L().Error("can't save account", zap.Error(err))
		return nil, err
	}
	return account, nil
}

func (r *Repository) FindByID(ctx context.Context, accountID int) (*domain.BankAccount, error) {
	query := `
		SELECT id, user_id, bank_id, number, account_type, balance, status, created_at
		FROM bank_accounts
		WHERE id = $1
	`
	row := r.db.QueryRow(ctx, query, accountID)

	var account domain.BankAccount
	err := row.Scan(&account.ID, &account.UserID, &account.BankID, &account.Number,
		&account.AccountType, &account.Balance, &account.Status, &account.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find account", zap.Error(err))
		return nil, err
	}
	return &account, nil
}

func (r *Repository) FindByNumber(ctx context.Context, number string) (*domain.BankAccount, error) {
	query := `
		SELECT id, user_id, bank_id, number, account_type, balance, status, created_at
		FROM bank_accounts
		WHERE number = $1
	`
	row := r.db.QueryRow(ctx, query, number)

	var account domain.BankAccount
	err := row.Scan(&account.ID, &account.UserID, &account.BankID, &account.Number,
		&account.AccountType, &account.Balance, &account.Status, &account.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find account by number", zap.Error(err))
		return nil, err
	}
	return &account, nil
}

func (r *Repository) FindByUserID(ctx context.Context, userID int) ([]domain.BankAccount, error) {
	query := `
		SELECT id, user_id, bank_id, number, account_type, balance, status, created_at
		FROM bank_accounts
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		zap.L().Error("can't get accounts", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var accounts []domain.BankAccount
	for rows.Next() {
		var account domain.BankAccount
		err := rows.Scan(&account.ID, &account.UserID, &account.BankID, &account.Number,
			&account.AccountType, &account.Balance, &account.Status, &account.CreatedAt)
		if err != nil {
			zap.L().Error("can't scan account row", zap.Error(err))
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, nil
}

// FindForUpdate locks the account row for the rest of the surrounding
// transaction. Callers must run inside TXManager.Begin.
func (r *Repository) FindForUpdate(ctx context.Context, accountID int) (*domain.BankAccount, error) {
	query := `
		SELECT id, user_id, bank_id, number, account_type, balance, status, created_at
		FROM bank_accounts
		WHERE id = $1
		FOR UPDATE
	`
	row := r.db.QueryRow(ctx, query, accountID)

	var account domain.BankAccount
	err := row.Scan(&account.ID, &account.UserID, &account.BankID, &account.Number,
		&account.AccountType, &account.Balance, &account.Status, &account.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't lock account", zap.Error(err))
		return nil, err
	}
	return &account, nil
}

func (r *Repository) UpdateBalance(ctx context.Context, accountID int, balance decimal.Decimal) error {
	query := `
		UPDATE bank_accounts
		SET balance = $1
		WHERE id = $2
	`
	_, err := r.db.Exec(ctx, query, balance, accountID)
	if err != nil {
		zap.L().Error("failed to update account balance", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) UpdateStatus(ctx context.Context, accountID int, status string) error {
	query := `
		UPDATE bank_accounts
		SET status = $1
		WHERE id = $2
	`
	_, err := r.db.Exec(ctx, query, status, accountID)
	if err != nil {
		zap.L().Error("failed to update account status", zap.Error(err))
		return err
	}
	return nil
}
