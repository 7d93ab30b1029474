package accounts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/GlebRadaev/bankledger/internal/domain"
	"github.com/GlebRadaev/bankledger/internal/dto"
	"github.com/GlebRadaev/bankledger/internal/service/accountservice"
	"github.com/GlebRadaev/bankledger/pkg/auth"
	"github.com/GlebRadaev/bankledger/pkg/utils"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type Service interface {
	OpenAccount(ctx context.Context, userID, bankID int, number, accountType string) (*domain.BankAccount, error)
	GetAccounts(ctx context.Context, userID int) ([]domain.BankAccount, error)
	GetAccount(ctx context.Context, userID, accountID int) (*domain.BankAccount, error)
	CloseAccount(ctx context.Context, userID, accountID int) error
}

type AccountHandler struct {
	accountService Service
	validate       *validator.Validate
}

func New(accountService Service) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
		validate:       validator.New(),
	}
}

func toDTO(account *domain.BankAccount) dto.AccountResponseDTO {
	return dto.AccountResponseDTO{
		ID:          account.ID,
		BankID:      account.BankID,
		Number:      account.Number,
		AccountType: account.AccountType,
		Balance:     account.Balance.String(),
		Status:      account.Status,
		CreatedAt:   account.CreatedAt,
	}
}

// OpenAccount godoc
//
//	@Summary		Open a bank account
//	@Description	Open a new account for the authenticated user
//	@Tags			Accounts
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.OpenAccountRequestDTO	true	"Account payload"
//	@Success		201		{object}	dto.AccountResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		404		{object}	utils.Response	"Bank not found"
//	@Failure		409		{object}	utils.Response	"Account number already taken"
//	@Failure		422		{object}	utils.Response	"Invalid account number"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/user/accounts [post]
func (h *AccountHandler) OpenAccount(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.OpenAccountRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	account, err := h.accountService.OpenAccount(r.Context(), userID, req.BankID, req.Number, req.AccountType)
	if err != nil {
		switch {
		case errors.Is(err, accountservice.ErrInvalidAccountNumber):
			utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, accountservice.ErrUnknownAccountType):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, accountservice.ErrBankNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, accountservice.ErrAccountNumberTaken):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, toDTO(account))
}

// GetAccounts godoc
//
//	@Summary		List user accounts
//	@Description	Retrieve all accounts of the authenticated user
//	@Tags			Accounts
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.AccountResponseDTO
//	@Failure		204	{object}	utils.Response	"No data available"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/accounts [get]
func (h *AccountHandler) GetAccounts(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	accounts, err := h.accountService.GetAccounts(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if len(accounts) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "No data available")
		return
	}

	var response []dto.AccountResponseDTO
	for _, account := range accounts {
		account := account
		response = append(response, toDTO(&account))
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// GetAccount godoc
//
//	@Summary		Get an account
//	@Description	Retrieve one account of the authenticated user
//	@Tags			Accounts
//	@Security		BearerAuth
//	@Produce		json
//	@Param			accountID	path		int	true	"Account ID"
//	@Success		200			{object}	dto.AccountResponseDTO
//	@Failure		400			{object}	utils.Response	"Invalid account id"
//	@Failure		401			{object}	utils.Response	"User not authorized"
//	@Failure		404			{object}	utils.Response	"Account not found"
//	@Failure		500			{object}	utils.Response	"Internal server error"
//	@Router			/api/user/accounts/{accountID} [get]
func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	accountID, err := strconv.Atoi(chi.URLParam(r, "accountID"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid account id")
		return
	}

	account, err := h.accountService.GetAccount(r.Context(), userID, accountID)
	if err != nil {
		if errors.Is(err, accountservice.ErrAccountNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toDTO(account))
}

// CloseAccount godoc
//
//	@Summary		Close an account
//	@Description	Close an account with a zero balance
//	@Tags			Accounts
//	@Security		BearerAuth
//	@Produce		json
//	@Param			accountID	path		int	true	"Account ID"
//	@Success		200			{object}	utils.Response
//	@Failure		400			{object}	utils.Response	"Invalid account id"
//	@Failure		401			{object}	utils.Response	"User not authorized"
//	@Failure		404			{object}	utils.Response	"Account not found"
//	@Failure		409			{object}	utils.Response	"Balance is not zero"
//	@Failure		500			{object}	utils.Response	"Internal server error"
//	@Router			/api/user/accounts/{accountID} [delete]
func (h *AccountHandler) CloseAccount(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	accountID, err := strconv.Atoi(chi.URLParam(r, "accountID"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid account id")
		return
	}

	if err := h.accountService.CloseAccount(r.Context(), userID, accountID); err != nil {
		switch {
		case errors.Is(err, accountservice.ErrAccountNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, accountservice.ErrBalanceNotZero), errors.Is(err, accountservice.ErrAccountClosed):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "Account closed"})
}
