package banks

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/GlebRadaev/bankledger/internal/domain"
	"github.com/GlebRadaev/bankledger/internal/dto"
	"github.com/GlebRadaev/bankledger/internal/service/bankservice"
	"github.com/GlebRadaev/bankledger/pkg/utils"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type Service interface {
	CreateBank(ctx context.Context, name, code string) (*domain.Bank, error)
	GetBanks(ctx context.Context) ([]domain.Bank, error)
	UpdateBank(ctx context.Context, bankID int, name, code string) (*domain.Bank, error)
	DeleteBank(ctx context.Context, bankID int) error
}

type BankHandler struct {
	bankService Service
	validate    *validator.Validate
}

func New(bankService Service) *BankHandler {
	return &BankHandler{
		bankService: bankService,
		validate:    validator.New(),
	}
}

func toDTO(bank *domain.Bank) dto.BankResponseDTO {
	return dto.BankResponseDTO{
		ID:        bank.ID,
		Name:      bank.Name,
		Code:      bank.Code,
		CreatedAt: bank.CreatedAt,
	}
}

// GetBanks godoc
//
//	@Summary		List banks
//	@Description	Retrieve the bank directory
//	@Tags			Banks
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.BankResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/banks [get]
func (h *BankHandler) GetBanks(w http.ResponseWriter, r *http.Request) {
	banks, err := h.bankService.GetBanks(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	response := make([]dto.BankResponseDTO, 0, len(banks))
	for _, bank := range banks {
		bank := bank
		response = append(response, toDTO(&bank))
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// CreateBank godoc
//
//	@Summary		Create a bank
//	@Description	Add a bank to the directory (admin only)
//	@Tags			Banks
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.BankRequestDTO	true	"Bank payload"
//	@Success		201		{object}	dto.BankResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		403		{object}	utils.Response	"Admin role required"
//	@Failure		409		{object}	utils.Response	"Bank code already taken"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/banks [post]
func (h *BankHandler) CreateBank(w http.ResponseWriter, r *http.Request) {
	var req dto.BankRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	bank, err := h.bankService.CreateBank(r.Context(), req.Name, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, bankservice.ErrBankCodeTaken):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, toDTO(bank))
}

// UpdateBank godoc
//
//	@Summary		Update a bank
//	@Description	Update a bank's name or code (admin only)
//	@Tags			Banks
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			bankID	path		int					true	"Bank ID"
//	@Param			request	body		dto.BankRequestDTO	true	"Bank payload"
//	@Success		200		{object}	dto.BankResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		403		{object}	utils.Response	"Admin role required"
//	@Failure		404		{object}	utils.Response	"Bank not found"
//	@Failure		409		{object}	utils.Response	"Bank code already taken"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/banks/{bankID} [put]
func (h *BankHandler) UpdateBank(w http.ResponseWriter, r *http.Request) {
	bankID, err := strconv.Atoi(chi.URLParam(r, "bankID"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid bank id")
		return
	}

	var req dto.BankRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	bank, err := h.bankService.UpdateBank(r.Context(), bankID, req.Name, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, bankservice.ErrBankNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, bankservice.ErrBankCodeTaken):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toDTO(bank))
}

// DeleteBank godoc
//
//	@Summary		Delete a bank
//	@Description	Remove a bank that has no accounts (admin only)
//	@Tags			Banks
//	@Security		BearerAuth
//	@Produce		json
//	@Param			bankID	path		int	true	"Bank ID"
//	@Success		200		{object}	utils.Response
//	@Failure		400		{object}	utils.Response	"Invalid bank id"
//	@Failure		403		{object}	utils.Response	"Admin role required"
//	@Failure		404		{object}	utils.Response	"Bank not found"
//	@Failure		409		{object}	utils.Response	"Bank has accounts"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/banks/{bankID} [delete]
func (h *BankHandler) DeleteBank(w http.ResponseWriter, r *http.Request) {
	bankID, err := strconv.Atoi(chi.URLParam(r, "bankID"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid bank id")
		return
	}

	if err := h.bankService.DeleteBank(r.Context(), bankID); err != nil {
		switch {
		case errors.Is(err, bankservice.ErrBankNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, bankservice.ErrBankHasAccounts):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "Bank deleted"})
}
