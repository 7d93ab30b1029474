package service

import (
	"github.com/GlebRadaev/bankledger/internal/cache"
	"github.com/GlebRadaev/bankledger/internal/pg"
	"github.com/GlebRadaev/bankledger/internal/repo"
	"github.com/GlebRadaev/bankledger/internal/service/accountservice"
	"github.com/GlebRadaev/bankledger/internal/service/authservice"
	"github.com/GlebRadaev/bankledger/internal/service/bankservice"
	"github.com/GlebRadaev/bankledger/internal/service/paymentservice"
	"github.com/GlebRadaev/bankledger/internal/service/transactionservice"

	pkgauth "github.com/GlebRadaev/bankledger/pkg/auth"
)

type Services struct {
	AuthService        *authservice.Service
	BankService        *bankservice.Service
	AccountService     *accountservice.Service
	PaymentService     *paymentservice.Service
	TransactionService *transactionservice.Service
}

func New(repo *repo.Repositories, txManager pg.TXManager, balanceCache *cache.BalanceCache) *Services {
	authService := authservice.New(repo.UserRepo, &pkgauth.HashService{}, &pkgauth.JWTService{})
	bankService := bankservice.New(repo.BankRepo)
	accountService := accountservice.New(repo.AccountRepo, repo.BankRepo, txManager, balanceCache)
	paymentService := paymentservice.New(repo.PaymentRepo, repo.AccountRepo, repo.TransactionRepo, txManager, balanceCache)
	transactionService := transactionservice.New(repo.TransactionRepo, repo.AccountRepo)

	return &Services{
		AuthService:        authService,
		BankService:        bankService,
		AccountService:     accountService,
		PaymentService:     paymentService,
		TransactionService: transactionService,
	}
}
