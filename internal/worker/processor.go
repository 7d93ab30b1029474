package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/GlebRadaev/bankledger/internal/config"
	"github.com/GlebRadaev/bankledger/internal/domain"
	"github.com/GlebRadaev/bankledger/internal/service/paymentservice"
	"github.com/GlebRadaev/bankledger/pkg/clients"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var processingPayments sync.Map

type PaymentService interface {
	FindForProcessing(ctx context.Context, limit uint32) ([]domain.Payment, error)
	ProcessPayment(ctx context.Context, paymentID int) error
}

type NotifierI interface {
	Notify(payment domain.Payment, status string) error
}

// Processor polls PENDING payments and applies them through the payment
// service. Double dispatch is harmless: ProcessPayment re-checks the status
// under a row lock, so the in-flight map only saves wasted work.
type Processor struct {
	payments       PaymentService
	notifier       NotifierI
	limit          uint32
	workerPool     WorkerPoolI
	updateInterval time.Duration
}

func New(cfg *config.Config, payments PaymentService, client clients.HTTPClientI) *Processor {
	var notifier NotifierI
	if cfg.WebhookAddress != "" {
		notifier = NewNotifier(cfg.WebhookAddress, client)
	}
	return &Processor{
		payments:       payments,
		notifier:       notifier,
		limit:          1000,
		workerPool:     NewWorkerPool(10),
		updateInterval: time.Second * 5,
	}
}

func (p *Processor) Start(ctx context.Context) {
	zap.L().Info("Payment processor started")
	go p.run(ctx)
}

func (p *Processor) run(ctx context.Context) {
	ticker := time.NewTicker(p.updateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("Context canceled, stopping payment processor")
			p.workerPool.Close()
			return
		case <-ticker.C:
			p.processPayments(ctx)
		}
	}
}

func (p *Processor) processPayments(ctx context.Context) {
	payments, err := p.payments.FindForProcessing(ctx, atomic.LoadUint32(&p.limit))
	if err != nil {
		zap.L().Error("Failed to fetch payments for processing", zap.Error(err))
		return
	}

	var g errgroup.Group
	for _, payment := range payments {
		payment := payment

		if _, loaded := processingPayments.LoadOrStore(payment.ID, struct{}{}); loaded {
			continue
		}

		g.Go(func() error {
			err := p.workerPool.AddTask(ctx, func() error {
				defer processingPayments.Delete(payment.ID)
				return p.handlePayment(ctx, payment)
			})
			if err != nil {
				processingPayments.Delete(payment.ID)
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		zap.L().Error("Error processing payments", zap.Error(err))
	}
}

func (p *Processor) handlePayment(ctx context.Context, payment domain.Payment) error {
	err := p.payments.ProcessPayment(ctx, payment.ID)

	switch {
	case err == nil:
		p.notify(payment, domain.PaymentStatusCompleted)
		return nil
	case errors.Is(err, paymentservice.ErrAlreadyProcessed):
		zap.L().Debug("Payment picked up twice, skipping", zap.Int("paymentID", payment.ID))
		return nil
	case errors.Is(err, paymentservice.ErrInsufficientFunds),
		errors.Is(err, paymentservice.ErrAccountNotActive),
		errors.Is(err, paymentservice.ErrAccountNotFound):
		p.notify(payment, domain.PaymentStatusFailed)
		return nil
	default:
		// transient error, the payment stays PENDING and is retried next tick
		return err
	}
}

func (p *Processor) notify(payment domain.Payment, status string) {
	if p.notifier == nil {
		return
	}
	if err := p.notifier.Notify(payment, status); err != nil {
		zap.L().Error("Failed to deliver webhook notification",
			zap.Int("paymentID", payment.ID), zap.Error(err))
	}
}
