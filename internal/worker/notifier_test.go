package worker

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/GlebRadaev/bankledger/internal/domain"
	"github.com/GlebRadaev/bankledger/pkg/clients"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func NewNotifierMock(t *testing.T) (*Notifier, *clients.MockHTTPClientI) {
	ctrl := gomock.NewController(t)
	client := clients.NewMockHTTPClientI(ctrl)
	notifier := NewNotifier("http://localhost:8081/webhook", client)
	defer ctrl.Finish()
	return notifier, client
}

func TestNotify(t *testing.T) {
	payment := domain.Payment{
		ID:                    1,
		AccountID:             1,
		UserID:                1,
		Amount:                decimal.NewFromInt(25),
		Direction:             domain.DirectionDebit,
		Status:                domain.PaymentStatusCompleted,
		ExternalTransactionID: uuid.New(),
	}

	t.Run("Delivers notification on first attempt", func(t *testing.T) {
		notifier, client := NewNotifierMock(t)

		client.EXPECT().Post("http://localhost:8081/webhook", gomock.Any(), gomock.Any()).
			DoAndReturn(func(url string, headers http.Header, body []byte) (int, []byte, http.Header, error) {
				assert.Equal(t, "application/json", headers.Get("Content-Type"))

				var notification Notification
				assert.NoError(t, json.Unmarshal(body, &notification))
				assert.Equal(t, 1, notification.PaymentID)
				assert.Equal(t, payment.ExternalTransactionID.String(), notification.ExternalTransactionID)
				assert.Equal(t, domain.PaymentStatusCompleted, notification.Status)
				assert.Equal(t, "25", notification.Amount)
				assert.Equal(t, domain.DirectionDebit, notification.Direction)

				return http.StatusOK, nil, http.Header{}, nil
			})

		err := notifier.Notify(payment, domain.PaymentStatusCompleted)
		assert.NoError(t, err)
	})

	t.Run("Retries after rate limit response", func(t *testing.T) {
		notifier, client := NewNotifierMock(t)

		rateLimited := http.Header{}
		rateLimited.Set("Retry-After", "0")

		gomock.InOrder(
			client.EXPECT().Post("http://localhost:8081/webhook", gomock.Any(), gomock.Any()).
				Return(http.StatusTooManyRequests, nil, rateLimited, nil),
			client.EXPECT().Post("http://localhost:8081/webhook", gomock.Any(), gomock.Any()).
				Return(http.StatusOK, nil, http.Header{}, nil),
		)

		err := notifier.Notify(payment, domain.PaymentStatusCompleted)
		assert.NoError(t, err)
	})

	t.Run("Does not wait out the rate limit on the final attempt", func(t *testing.T) {
		notifier, client := NewNotifierMock(t)

		rateLimited := http.Header{}
		rateLimited.Set("Retry-After", "0")
		lastRateLimited := http.Header{}
		lastRateLimited.Set("Retry-After", "60")

		gomock.InOrder(
			client.EXPECT().Post("http://localhost:8081/webhook", gomock.Any(), gomock.Any()).
				Return(http.StatusTooManyRequests, nil, rateLimited, nil),
			client.EXPECT().Post("http://localhost:8081/webhook", gomock.Any(), gomock.Any()).
				Return(http.StatusTooManyRequests, nil, rateLimited, nil),
			client.EXPECT().Post("http://localhost:8081/webhook", gomock.Any(), gomock.Any()).
				Return(http.StatusTooManyRequests, nil, lastRateLimited, nil),
		)

		start := time.Now()
		err := notifier.Notify(payment, domain.PaymentStatusCompleted)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "after 3 retries")
		assert.Less(t, time.Since(start), 10*time.Second)
	})

	t.Run("Gives up after repeated transport errors", func(t *testing.T) {
		notifier, client := NewNotifierMock(t)

		client.EXPECT().Post("http://localhost:8081/webhook", gomock.Any(), gomock.Any()).
			Return(0, nil, nil, errors.New("connection refused")).
			Times(maxRetries)

		err := notifier.Notify(payment, domain.PaymentStatusFailed)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "after 3 retries")
	})

	t.Run("Client errors are not retried", func(t *testing.T) {
		notifier, client := NewNotifierMock(t)

		client.EXPECT().Post("http://localhost:8081/webhook", gomock.Any(), gomock.Any()).
			Return(http.StatusBadRequest, nil, http.Header{}, nil)

		err := notifier.Notify(payment, domain.PaymentStatusCompleted)
		assert.NoError(t, err)
	})
}
