package worker

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/GlebRadaev/bankledger/internal/domain"
	"github.com/GlebRadaev/bankledger/pkg/clients"
	"go.uber.org/zap"
)

const (
	maxRetries    = 3
	retryInterval = time.Second * 1
)

type Notification struct {
	PaymentID             int    `json:"payment_id"`
	ExternalTransactionID string `json:"external_transaction_id"`
	Status                string `json:"status"`
	Amount                string `json:"amount"`
	Direction             string `json:"direction"`
}

// Notifier delivers payment outcomes to the configured webhook.
type Notifier struct {
	url    string
	client clients.HTTPClientI
}

func NewNotifier(url string, client clients.HTTPClientI) *Notifier {
	return &Notifier{
		url:    url,
		client: client,
	}
}

func (n *Notifier) Notify(payment domain.Payment, status string) error {
	notification := Notification{
		PaymentID:             payment.ID,
		ExternalTransactionID: payment.ExternalTransactionID.String(),
		Status:                status,
		Amount:                payment.Amount.String(),
		Direction:             payment.Direction,
	}
	body, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	headers := http.Header{}
	headers.Set("Content-Type", "application/json")

	for attempt := 1; attempt <= maxRetries; attempt++ {
		statusCode, _, respHeaders, err := n.client.Post(n.url, headers, body)
		if err != nil {
			if attempt < maxRetries {
				time.Sleep(retryInterval * time.Duration(attempt))
				continue
			}
			return fmt.Errorf("failed to notify webhook for payment %d after %d retries: %w", payment.ID, maxRetries, err)
		}

		switch {
		case statusCode == http.StatusTooManyRequests:
			if attempt < maxRetries {
				n.waitRateLimit(payment.ID, respHeaders, attempt)
			}
		case statusCode >= http.StatusInternalServerError:
			zap.L().Warn("Webhook returned server error, retrying",
				zap.Int("paymentID", payment.ID), zap.Int("status", statusCode), zap.Int("attempt", attempt))
			if attempt < maxRetries {
				time.Sleep(retryInterval * time.Duration(attempt))
			}
		default:
			return nil
		}
	}
	return fmt.Errorf("failed to notify webhook for payment %d after %d retries", payment.ID, maxRetries)
}

func (n *Notifier) waitRateLimit(paymentID int, respHeaders http.Header, attempt int) {
	retryAfterHeader := respHeaders.Get("Retry-After")
	retryAfter := retryInterval * time.Duration(attempt)

	if retryAfterHeader != "" {
		if seconds, err := strconv.Atoi(retryAfterHeader); err == nil {
			retryAfter = time.Duration(seconds) * time.Second
		}
	}
	zap.L().Warn(
		"Rate limit detected, retrying",
		zap.Int("paymentID", paymentID),
		zap.Int("attempt", attempt),
		zap.Duration("retryAfter", retryAfter),
	)
	time.Sleep(retryAfter)
}
