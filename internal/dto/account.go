package dto

import "time"

type OpenAccountRequestDTO struct {
	BankID      int    `json:"bank_id" validate:"required" example:"1"`
	Number      string `json:"number" validate:"required,min=8,max=30" example:"4561261212345467"`
	AccountType string `json:"account_type" validate:"required,oneof=CHECKING SAVINGS CREDIT INVESTMENT" example:"CHECKING"`
}

type AccountResponseDTO struct {
	ID          int       `json:"id" example:"1"`
	BankID      int       `json:"bank_id" example:"1"`
	Number      string    `json:"number" example:"4561261212345467"`
	AccountType string    `json:"account_type" example:"CHECKING"`
	Balance     string    `json:"balance" example:"500.5000"`
	Status      string    `json:"status" example:"ACTIVE"`
	CreatedAt   time.Time `json:"created_at" example:"2024-12-09T16:09:57+03:00"`
}
