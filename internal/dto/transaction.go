package dto

import "time"

type TransactionResponseDTO struct {
	ID                    int       `json:"id" example:"1"`
	AccountID             int       `json:"account_id" example:"1"`
	ExternalTransactionID string    `json:"external_transaction_id" example:"6ba7b810-9dad-11d1-80b4-00c04fd430c8"`
	Amount                string    `json:"amount" example:"125.5000"`
	Direction             string    `json:"direction" example:"DEBIT"`
	BalanceAfter          string    `json:"balance_after" example:"374.5000"`
	CreatedAt             time.Time `json:"created_at" example:"2024-12-09T16:09:57+03:00"`
}
