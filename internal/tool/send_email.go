package tool

import (
	"context"
	"fmt"

	"github.com/postoffice/email-mcp/internal/registry"
)

// SendEmailRequest is the transport-visible schema for send_email.
type SendEmailRequest struct {
	To      string `json:"to" jsonschema:"recipient email address (or comma-separated list)"`
	Subject string `json:"subject" jsonschema:"email subject line"`
	Body    string `json:"body" jsonschema:"email body (plain text)"`
}

type sendMessageSvc interface {
	SendMessage(ctx context.Context, to, subject, body string) (string, error)
}

// NewSendEmail creates the send_email tool.
func NewSendEmail(svc sendMessageSvc) *SendEmail {
	return &SendEmail{svc: svc}
}

// SendEmail sends a plain-text email to one or more recipients.
type SendEmail struct {
	svc sendMessageSvc
}

// Spec declares the tool's schema and handler.
func (t *SendEmail) Spec() registry.Spec {
	return registry.Spec{
		Name:        toolSendEmail,
		Description: "Send an email to one or more recipients",
		Fields: []registry.Field{
			{Name: "to", Type: registry.String, Required: true, Description: "Recipient email address (or comma-separated list)"},
			{Name: "subject", Type: registry.String, Required: true, Description: "Email subject line"},
			{Name: "body", Type: registry.String, Required: true, Description: "Email body (plain text)"},
		},
		Handler: t.handle,
	}
}

func (t *SendEmail) handle(ctx context.Context, args registry.Args) (string, error) {
	to := args.String("to")
	subject := args.String("subject")

	id, err := t.svc.SendMessage(ctx, to, subject, args.String("body"))
	if err != nil {
		return "", fmt.Errorf("failed to send email: %w", err)
	}

	return fmt.Sprintf("Email sent successfully to %s\nSubject: %s\nMessage ID: %s", to, subject, id), nil
}
