package payments

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/GlebRadaev/bankledger/internal/domain"
	"github.com/GlebRadaev/bankledger/internal/dto"
	"github.com/GlebRadaev/bankledger/internal/service/paymentservice"
	"github.com/GlebRadaev/bankledger/pkg/auth"
	"github.com/GlebRadaev/bankledger/pkg/utils"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type Service interface {
	CreatePayment(ctx context.Context, userID, accountID int, amount decimal.Decimal, direction, description string) (*domain.Payment, error)
	GetPayments(ctx context.Context, userID int, limit, offset int) ([]domain.Payment, error)
	GetPayment(ctx context.Context, userID, paymentID int) (*domain.Payment, error)
}

type PaymentHandler struct {
	paymentService Service
	validate       *validator.Validate
}

func New(paymentService Service) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		validate:       validator.New(),
	}
}

const (
	defaultLimit = 50
	maxLimit     = 100
)

func toDTO(payment *domain.Payment) dto.PaymentResponseDTO {
	resp := dto.PaymentResponseDTO{
		ID:                    payment.ID,
		AccountID:             payment.AccountID,
		Amount:                payment.Amount.String(),
		Direction:             payment.Direction,
		Status:                payment.Status,
		Description:           payment.Description,
		ExternalTransactionID: payment.ExternalTransactionID.String(),
		CreatedAt:             payment.CreatedAt,
		ProcessedAt:           payment.ProcessedAt,
	}
	if payment.FailureReason != nil {
		resp.FailureReason = *payment.FailureReason
	}
	return resp
}

func pagination(r *http.Request) (limit, offset int) {
	limit = defaultLimit
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v > 0 {
		offset = v
	}
	return limit, offset
}

// CreatePayment godoc
//
//	@Summary		Create a payment
//	@Description	Accept a payment for asynchronous processing. The payment is created PENDING and applied to the account by the background processor.
//	@Tags			Payments
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CreatePaymentRequestDTO	true	"Payment payload"
//	@Success		202		{object}	dto.PaymentResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		404		{object}	utils.Response	"Account not found"
//	@Failure		409		{object}	utils.Response	"Account is not active"
//	@Failure		422		{object}	utils.Response	"Invalid amount or direction"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/user/payments [post]
func (h *PaymentHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.CreatePaymentRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, "Invalid amount")
		return
	}

	payment, err := h.paymentService.CreatePayment(r.Context(), userID, req.AccountID, amount, req.Direction, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, paymentservice.ErrInvalidAmount), errors.Is(err, paymentservice.ErrInvalidDirection):
			utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, paymentservice.ErrAccountNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, paymentservice.ErrAccountNotActive):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusAccepted, toDTO(payment))
}

// GetPayments godoc
//
//	@Summary		List payments
//	@Description	Retrieve the authenticated user's payments, newest first
//	@Tags			Payments
//	@Security		BearerAuth
//	@Produce		json
//	@Param			limit	query		int	false	"Page size (max 100)"
//	@Param			offset	query		int	false	"Page offset"
//	@Success		200		{array}		dto.PaymentResponseDTO
//	@Failure		204		{object}	utils.Response	"No data available"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/user/payments [get]
func (h *PaymentHandler) GetPayments(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)
	limit, offset := pagination(r)

	payments, err := h.paymentService.GetPayments(r.Context(), userID, limit, offset)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if len(payments) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "No data available")
		return
	}

	var response []dto.PaymentResponseDTO
	for _, payment := range payments {
		payment := payment
		response = append(response, toDTO(&payment))
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// GetPayment godoc
//
//	@Summary		Get a payment
//	@Description	Retrieve one payment of the authenticated user
//	@Tags			Payments
//	@Security		BearerAuth
//	@Produce		json
//	@Param			paymentID	path		int	true	"Payment ID"
//	@Success		200			{object}	dto.PaymentResponseDTO
//	@Failure		400			{object}	utils.Response	"Invalid payment id"
//	@Failure		401			{object}	utils.Response	"User not authorized"
//	@Failure		404			{object}	utils.Response	"Payment not found"
//	@Failure		500			{object}	utils.Response	"Internal server error"
//	@Router			/api/user/payments/{paymentID} [get]
func (h *PaymentHandler) GetPayment(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	paymentID, err := strconv.Atoi(chi.URLParam(r, "paymentID"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payment id")
		return
	}

	payment, err := h.paymentService.GetPayment(r.Context(), userID, paymentID)
	if err != nil {
		if errors.Is(err, paymentservice.ErrPaymentNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toDTO(payment))
}
