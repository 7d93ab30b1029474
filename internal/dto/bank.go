package dto

import "time"

type BankRequestDTO struct {
	Name string `json:"name" validate:"required,min=2,max=100" example:"First National"`
	Code string `json:"code" validate:"required,min=2,max=20" example:"FNB"`
}

type BankResponseDTO struct {
	ID        int       `json:"id" example:"1"`
	Name      string    `json:"name" example:"First National"`
	Code      string    `json:"code" example:"FNB"`
	CreatedAt time.Time `json:"created_at" example:"2024-12-09T16:09:57+03:00"`
}
