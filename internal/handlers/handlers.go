package handlers

import (
	"net/http"

	_ "github.com/GlebRadaev/bankledger/docs"
	accounthandlers "github.com/GlebRadaev/bankledger/internal/handlers/accounts"
	authhandlers "github.com/GlebRadaev/bankledger/internal/handlers/auth"
	bankhandlers "github.com/GlebRadaev/bankledger/internal/handlers/banks"
	paymenthandlers "github.com/GlebRadaev/bankledger/internal/handlers/payments"
	transactionhandlers "github.com/GlebRadaev/bankledger/internal/handlers/transactions"
	"github.com/GlebRadaev/bankledger/internal/service"
	"github.com/GlebRadaev/bankledger/pkg/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
}

type BankHandler interface {
	GetBanks(w http.ResponseWriter, r *http.Request)
	CreateBank(w http.ResponseWriter, r *http.Request)
	UpdateBank(w http.ResponseWriter, r *http.Request)
	DeleteBank(w http.ResponseWriter, r *http.Request)
}

type AccountHandler interface {
	OpenAccount(w http.ResponseWriter, r *http.Request)
	GetAccounts(w http.ResponseWriter, r *http.Request)
	GetAccount(w http.ResponseWriter, r *http.Request)
	CloseAccount(w http.ResponseWriter, r *http.Request)
}

type PaymentHandler interface {
	CreatePayment(w http.ResponseWriter, r *http.Request)
	GetPayments(w http.ResponseWriter, r *http.Request)
	GetPayment(w http.ResponseWriter, r *http.Request)
}

type TransactionHandler interface {
	GetAccountTransactions(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	AuthHandler        AuthHandler
	BankHandler        BankHandler
	AccountHandler     AccountHandler
	PaymentHandler     PaymentHandler
	TransactionHandler TransactionHandler
}

func New(s *service.Services) *Handlers {
	return &Handlers{
		AuthHandler:        authhandlers.New(s.AuthService),
		BankHandler:        bankhandlers.New(s.BankService),
		AccountHandler:     accounthandlers.New(s.AccountService),
		PaymentHandler:     paymenthandlers.New(s.PaymentService),
		TransactionHandler: transactionhandlers.New(s.TransactionService),
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Route("/api", func(r chi.Router) {
		r.Post("/user/register", h.AuthHandler.Register)
		r.Post("/user/login", h.AuthHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(auth.AuthMiddleware)

			r.Route("/banks", func(r chi.Router) {
				r.Get("/", h.BankHandler.GetBanks)

				r.Group(func(r chi.Router) {
					r.Use(auth.AdminMiddleware)
					r.Post("/", h.BankHandler.CreateBank)
					r.Put("/{bankID}", h.BankHandler.UpdateBank)
					r.Delete("/{bankID}", h.BankHandler.DeleteBank)
				})
			})

			r.Route("/user/accounts", func(r chi.Router) {
				r.Post("/", h.AccountHandler.OpenAccount)
				r.Get("/", h.AccountHandler.GetAccounts)
				r.Get("/{accountID}", h.AccountHandler.GetAccount)
				r.Delete("/{accountID}", h.AccountHandler.CloseAccount)
				r.Get("/{accountID}/transactions", h.TransactionHandler.GetAccountTransactions)
			})

			r.Route("/user/payments", func(r chi.Router) {
				r.Post("/", h.PaymentHandler.CreatePayment)
				r.Get("/", h.PaymentHandler.GetPayments)
				r.Get("/{paymentID}", h.PaymentHandler.GetPayment)
			})
		})
	})

	return r
}
