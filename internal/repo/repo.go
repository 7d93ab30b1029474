package repo

import (
	"github.com/GlebRadaev/bankledger/internal/pg"
	accountrepo "github.com/GlebRadaev/bankledger/internal/repo/account-repo"
	bankrepo "github.com/GlebRadaev/bankledger/internal/repo/bank-repo"
	paymentrepo "github.com/GlebRadaev/bankledger/internal/repo/payment-repo"
	transactionrepo "github.com/GlebRadaev/bankledger/internal/repo/transaction-repo"
	userrepo "github.com/GlebRadaev/bankledger/internal/repo/user-repo"
)

type Repositories struct {
	UserRepo        *userrepo.Repository
	BankRepo        *bankrepo.Repository
	AccountRepo     *accountrepo.Repository
	PaymentRepo     *paymentrepo.Repository
	TransactionRepo *transactionrepo.Repository
}

func New(conn pg.Database, txManager pg.TXManager) *Repositories {
	userRepo := userrepo.New(conn)
	bankRepo := bankrepo.New(conn)
	accountRepo := accountrepo.New(conn, txManager)
	paymentRepo := paymentrepo.New(conn, txManager)
	transactionRepo := transactionrepo.New(conn)

	return &Repositories{
		UserRepo:        userRepo,
		BankRepo:        bankRepo,
		AccountRepo:     accountRepo,
		PaymentRepo:     paymentRepo,
		TransactionRepo: transactionRepo,
	}
}
