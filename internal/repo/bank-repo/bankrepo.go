package bankrepo

import (
	"context"
	"errors"

	"github.com/GlebRadaev/bankledger/internal/domain"
	"github.com/GlebRadaev/bankledger/internal/pg"
	"github.com/jackc/pgx/v5"
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

func (r *Repository) Create(ctx context.Context, bank *domain.Bank) (*domain.Bank, error) {
	query := `
		INSERT INTO banks (name, code)
		VALUES ($1, $2)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query, bank.Name, bank.Code).Scan(&bank.ID, &bank.CreatedAt)
	if err != nil {
		zap.L().Error("can't save bank", zap.Error(err))
		return nil, err
	}
	return bank, nil
}

func (r *Repository) FindByID(ctx context.Context, bankID int) (*domain.Bank, error) {
	query := `
		SELECT id, name, code, created_at
		FROM banks
		WHERE id = $1
	`
	var bank domain.Bank
	err := r.db.QueryRow(ctx, query, bankID).Scan(&bank.ID, &bank.Name, &bank.Code, &bank.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find bank", zap.Error(err))
		return nil, err
	}
	return &bank, nil
}

func (r *Repository) FindByCode(ctx context.Context, code string) (*domain.Bank, error) {
	query := `
		SELECT id, name, code, created_at
		FROM banks
		WHERE code = $1
	`
	var bank domain.Bank
	err := r.db.QueryRow(ctx, query, code).Scan(&bank.ID, &bank.Name, &bank.Code, &bank.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find bank by code", zap.Error(err))
		return nil, err
	}
	return &bank, nil
}

func (r *Repository) List(ctx context.Context) ([]domain.Bank, error) {
	query := `
		SELECT id, name, code, created_at
		FROM banks
		ORDER BY name ASC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		zap.L().Error("can't get banks", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var banks []domain.Bank
	for rows.Next() {
		var bank domain.Bank
		err := rows.Scan(&bank.ID, &bank.Name, &bank.Code, &bank.CreatedAt)
		if err != nil {
			zap.L().Error("can't scan bank row", zap.Error(err))
			return nil, err
		}
		banks = append(banks, bank)
	}
	return banks, nil
}

func (r *Repository) Update(ctx context.Context, bank *domain.Bank) error {
	query := `
		UPDATE banks
		SET name = $1, code = $2
		WHERE id = $3
	`
	_, err := r.db.Exec(ctx, query, bank.Name, bank.Code, bank.ID)
	if err != nil {
		zap.L().Error("failed to update bank", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, bankID int) error {
	query := `
		DELETE FROM banks
		WHERE id = $1
	`
	_, err := r.db.Exec(ctx, query, bankID)
	if err != nil {
		zap.L().Error("failed to delete bank", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) CountAccounts(ctx context.Context, bankID int) (int, error) {
	query := `
		SELECT count(*)
		FROM bank_accounts
		WHERE bank_id = $1
	`
	var count int
	err := r.db.QueryRow(ctx, query, bankID).Scan(&count)
	if err != nil {
		zap.L().Error("can't count bank accounts", zap.Error(err))
		return 0, err
	}
	return count, nil
}
