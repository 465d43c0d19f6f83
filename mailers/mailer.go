package mailers

import (
	"context"
	"errors"
)

// APIKeyEnv environment variable holding email api key
const APIKeyEnv = "RESEND_API_KEY"

// ErrCredentialMissing email api key not configured
var ErrCredentialMissing = errors.New(APIKeyEnv + " not set")

// Attachment define email attachment, inline when ContentID is set
type Attachment struct {
	Filename    string `json:"filename"`
	Content     string `json:"content"` // base64
	ContentID   string `json:"content_id,omitempty"`
	ContentType string `json:"content_type,omitempty"`
}

// Email define html email
type Email struct {
	From        string       `json:"from"`
	To          []string     `json:"to"`
	Subject     string       `json:"subject"`
	HTML        string       `json:"html"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// Mailer define email sender
type Mailer interface {
	// Send send email, return provider message id
	Send(context.Context, *Email) (string, error)
}
