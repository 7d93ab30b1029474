package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/GlebRadaev/bankledger/internal/domain"
	"github.com/GlebRadaev/bankledger/internal/service/paymentservice"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func NewProcessorMock(t *testing.T) (*Processor, *MockPaymentService, *MockNotifierI, *MockWorkerPoolI) {
	ctrl := gomock.NewController(t)
	payments := NewMockPaymentService(ctrl)
	notifier := NewMockNotifierI(ctrl)
	workerPool := NewMockWorkerPoolI(ctrl)

	processor := &Processor{
		payments:       payments,
		notifier:       notifier,
		limit:          1000,
		workerPool:     workerPool,
		updateInterval: time.Second * 5,
	}
	defer ctrl.Finish()
	return processor, payments, notifier, workerPool
}

func TestProcessPayments(t *testing.T) {
	pendingPayment := domain.Payment{
		ID:        1,
		AccountID: 1,
		UserID:    1,
		Amount:    decimal.NewFromInt(25),
		Direction: domain.DirectionDebit,
		Status:    domain.PaymentStatusPending,
	}

	tests := []struct {
		name        string
		prepareMock func(payments *MockPaymentService, notifier *MockNotifierI, workerPool *MockWorkerPoolI)
	}{
		{
			name: "Dispatches pending payments to the pool",
			prepareMock: func(payments *MockPaymentService, notifier *MockNotifierI, workerPool *MockWorkerPoolI) {
				payments.EXPECT().FindForProcessing(gomock.Any(), uint32(1000)).Return([]domain.Payment{pendingPayment}, nil)
				workerPool.EXPECT().AddTask(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, task Task) error {
					return task()
				})
				payments.EXPECT().ProcessPayment(gomock.Any(), 1).Return(nil)
				notifier.EXPECT().Notify(pendingPayment, domain.PaymentStatusCompleted).Return(nil)
			},
		},
		{
			name: "Fetch failure skips the tick",
			prepareMock: func(payments *MockPaymentService, notifier *MockNotifierI, workerPool *MockWorkerPoolI) {
				payments.EXPECT().FindForProcessing(gomock.Any(), uint32(1000)).Return(nil, errors.New("database error"))
			},
		},
		{
			name: "Pool rejection releases the in-flight slot",
			prepareMock: func(payments *MockPaymentService, notifier *MockNotifierI, workerPool *MockWorkerPoolI) {
				payments.EXPECT().FindForProcessing(gomock.Any(), uint32(1000)).Return([]domain.Payment{pendingPayment}, nil)
				workerPool.EXPECT().AddTask(gomock.Any(), gomock.Any()).Return(context.Canceled)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			processor, payments, notifier, workerPool := NewProcessorMock(t)
			tt.prepareMock(payments, notifier, workerPool)

			processor.processPayments(context.Background())

			_, inFlight := processingPayments.Load(pendingPayment.ID)
			assert.False(t, inFlight, "payment should not stay marked as in flight")
		})
	}
}

func TestProcessPaymentsSkipsInFlight(t *testing.T) {
	processor, payments, _, _ := NewProcessorMock(t)

	payment := domain.Payment{ID: 7, Status: domain.PaymentStatusPending}
	processingPayments.Store(payment.ID, struct{}{})
	defer processingPayments.Delete(payment.ID)

	payments.EXPECT().FindForProcessing(gomock.Any(), uint32(1000)).Return([]domain.Payment{payment}, nil)

	processor.processPayments(context.Background())
}

func TestHandlePayment(t *testing.T) {
	payment := domain.Payment{
		ID:        1,
		AccountID: 1,
		UserID:    1,
		Amount:    decimal.NewFromInt(25),
		Direction: domain.DirectionDebit,
		Status:    domain.PaymentStatusPending,
	}

	tests := []struct {
		name        string
		prepareMock func(payments *MockPaymentService, notifier *MockNotifierI)
		expectErr   bool
	}{
		{
			name: "Completed payment notifies the webhook",
			prepareMock: func(payments *MockPaymentService, notifier *MockNotifierI) {
				payments.EXPECT().ProcessPayment(gomock.Any(), 1).Return(nil)
				notifier.EXPECT().Notify(payment, domain.PaymentStatusCompleted).Return(nil)
			},
			expectErr: false,
		},
		{
			name: "Already processed payment is skipped silently",
			prepareMock: func(payments *MockPaymentService, notifier *MockNotifierI) {
				payments.EXPECT().ProcessPayment(gomock.Any(), 1).Return(paymentservice.ErrAlreadyProcessed)
			},
			expectErr: false,
		},
		{
			name: "Insufficient funds notifies a failure",
			prepareMock: func(payments *MockPaymentService, notifier *MockNotifierI) {
				payments.EXPECT().ProcessPayment(gomock.Any(), 1).Return(paymentservice.ErrInsufficientFunds)
				notifier.EXPECT().Notify(payment, domain.PaymentStatusFailed).Return(nil)
			},
			expectErr: false,
		},
		{
			name: "Inactive account notifies a failure",
			prepareMock: func(payments *MockPaymentService, notifier *MockNotifierI) {
				payments.EXPECT().ProcessPayment(gomock.Any(), 1).Return(paymentservice.ErrAccountNotActive)
				notifier.EXPECT().Notify(payment, domain.PaymentStatusFailed).Return(nil)
			},
			expectErr: false,
		},
		{
			name: "Notification failure does not fail the task",
			prepareMock: func(payments *MockPaymentService, notifier *MockNotifierI) {
				payments.EXPECT().ProcessPayment(gomock.Any(), 1).Return(nil)
				notifier.EXPECT().Notify(payment, domain.PaymentStatusCompleted).Return(errors.New("webhook unreachable"))
			},
			expectErr: false,
		},
		{
			name: "Transient error is returned for retry",
			prepareMock: func(payments *MockPaymentService, notifier *MockNotifierI) {
				payments.EXPECT().ProcessPayment(gomock.Any(), 1).Return(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			processor, payments, notifier, _ := NewProcessorMock(t)
			tt.prepareMock(payments, notifier)

			err := processor.handlePayment(context.Background(), payment)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestHandlePaymentWithoutNotifier(t *testing.T) {
	processor, payments, _, _ := NewProcessorMock(t)
	processor.notifier = nil

	payment := domain.Payment{ID: 1, Status: domain.PaymentStatusPending}
	payments.EXPECT().ProcessPayment(gomock.Any(), 1).Return(nil)

	err := processor.handlePayment(context.Background(), payment)
	assert.NoError(t, err)
}

func TestRunClosesPoolOnShutdown(t *testing.T) {
	processor, _, _, workerPool := NewProcessorMock(t)
	workerPool.EXPECT().Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	processor.run(ctx)
}
