package transactions

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/GlebRadaev/bankledger/internal/domain"
	"github.com/GlebRadaev/bankledger/internal/dto"
	"github.com/GlebRadaev/bankledger/internal/service/transactionservice"
	"github.com/GlebRadaev/bankledger/pkg/auth"
	"github.com/GlebRadaev/bankledger/pkg/utils"
	"github.com/go-chi/chi/v5"
)

type Service interface {
	GetAccountTransactions(ctx context.Context, userID, accountID int, limit, offset int) ([]domain.Transaction, error)
}

type TransactionHandler struct {
	transactionService Service
}

func New(transactionService Service) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

// GetAccountTransactions godoc
//
//	@Summary		Get account ledger
//	@Description	Retrieve the transaction ledger of one account, newest first
//	@Tags			Transactions
//	@Security		BearerAuth
//	@Produce		json
//	@Param			accountID	path		int	true	"Account ID"
//	@Param			limit		query		int	false	"Page size (max 100)"
//	@Param			offset		query		int	false	"Page offset"
//	@Success		200			{array}		dto.TransactionResponseDTO
//	@Failure		204			{object}	utils.Response	"No data available"
//	@Failure		400			{object}	utils.Response	"Invalid account id"
//	@Failure		401			{object}	utils.Response	"User not authorized"
//	@Failure		404			{object}	utils.Response	"Account not found"
//	@Failure		500			{object}	utils.Response	"Internal server error"
//	@Router			/api/user/accounts/{accountID}/transactions [get]
func (h *TransactionHandler) GetAccountTransactions(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	accountID, err := strconv.Atoi(chi.URLParam(r, "accountID"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid account id")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	transactions, err := h.transactionService.GetAccountTransactions(r.Context(), userID, accountID, limit, offset)
	if err != nil {
		if errors.Is(err, transactionservice.ErrAccountNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if len(transactions) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "No data available")
		return
	}

	var response []dto.TransactionResponseDTO
	for _, tr := range transactions {
		response = append(response, dto.TransactionResponseDTO{
			ID:                    tr.ID,
			AccountID:             tr.AccountID,
			ExternalTransactionID: tr.ExternalTransactionID.String(),
			Amount:                tr.Amount.String(),
			Direction:             tr.Direction,
			BalanceAfter:          tr.BalanceAfter.String(),
			CreatedAt:             tr.CreatedAt,
		})
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}
