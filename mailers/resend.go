package mailers

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"resty.dev/v3"
)

// ResendEndpoint define resend api root
const ResendEndpoint = "https://api.resend.com"

type resendResponse struct {
	ID string `json:"id"`
}

// Resend send email by resend http api
type Resend struct {
	client *resty.Client
}

// NewResend create resend mailer
func NewResend(endpoint, apiKey string, timeout time.Duration) *Resend {
	if endpoint == "" {
		endpoint = ResendEndpoint
	}

	client := resty.New().
		SetBaseURL(endpoint).
		SetHeader("Accept", "application/json").
		SetHeader("Authorization", "Bearer "+apiKey).
		SetTimeout(timeout)

	return &Resend{client: client}
}

// Send send email once
func (m Resend) Send(ctx context.Context, email *Email) (string, error) {
	var result resendResponse

	resp, err := m.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(email).
		SetResult(&result).
		Post("/emails")
	if err != nil {
		zap.L().Warn("post email failed", zap.Error(err), zap.String("subject", email.Subject))
		return "", fmt.Errorf("failed to send email: %w", err)
	}

	if !resp.IsSuccess() {
		zap.L().Warn("email api returned error",
			zap.Int("status", resp.StatusCode()),
			zap.String("body", resp.String()))
		return "", fmt.Errorf("email api returned status %d", resp.StatusCode())
	}

	return result.ID, nil
}
