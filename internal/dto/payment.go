package dto

import "time"

type CreatePaymentRequestDTO struct {
	AccountID   int    `json:"account_id" validate:"required" example:"1"`
	Amount      string `json:"amount" validate:"required" example:"125.50"`
	Direction   string `json:"direction" validate:"required,oneof=CREDIT DEBIT" example:"DEBIT"`
	Description string `json:"description" validate:"max=255" example:"utility bill"`
}

type PaymentResponseDTO struct {
	ID                    int        `json:"id" example:"1"`
	AccountID             int        `json:"account_id" example:"1"`
	Amount                string     `json:"amount" example:"125.5000"`
	Direction             string     `json:"direction" example:"DEBIT"`
	Status                string     `json:"status" example:"PENDING"`
	Description           string     `json:"description,omitempty" example:"utility bill"`
	ExternalTransactionID string     `json:"external_transaction_id" example:"6ba7b810-9dad-11d1-80b4-00c04fd430c8"`
	FailureReason         string     `json:"failure_reason,omitempty"`
	CreatedAt             time.Time  `json:"created_at" example:"2024-12-09T16:09:57+03:00"`
	ProcessedAt           *time.Time `json:"processed_at,omitempty"`
}
