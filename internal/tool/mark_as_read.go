package tool

import (
	"context"
	"fmt"

	"github.com/postoffice/email-mcp/internal/registry"
)

// MarkAsReadRequest is the transport-visible schema for mark_as_read.
type MarkAsReadRequest struct {
	Subject string `json:"subject" jsonschema:"subject line of emails to mark as read"`
	Mailbox string `json:"mailbox,omitempty" jsonschema:"mailbox containing the emails"`
}

type markReadSvc interface {
	MarkRead(ctx context.Context, subject, mailbox string) (int, error)
}

// NewMarkAsRead creates the mark_as_read tool.
func NewMarkAsRead(svc markReadSvc) *MarkAsRead {
	return &MarkAsRead{svc: svc}
}

// MarkAsRead clears the unread marker from messages matching a subject.
type MarkAsRead struct {
	svc markReadSvc
}

// Spec declares the tool's schema and handler.
func (t *MarkAsRead) Spec() registry.Spec {
	return registry.Spec{
		Name:        toolMarkAsRead,
		Description: "Mark specific emails as read by subject",
		Fields: []registry.Field{
			{Name: "subject", Type: registry.String, Required: true, Description: "Subject line of emails to mark as read"},
			{Name: "mailbox", Type: registry.String, Default: defaultMailbox, Description: "Mailbox containing the emails"},
		},
		Handler: t.handle,
	}
}

func (t *MarkAsRead) handle(ctx context.Context, args registry.Args) (string, error) {
	subject := args.String("subject")

	count, err := t.svc.MarkRead(ctx, subject, args.String("mailbox"))
	if err != nil {
		return "", fmt.Errorf("failed to mark as read: %w", err)
	}

	if count == 0 {
		return fmt.Sprintf("No unread emails found with subject '%s'", subject), nil
	}

	return fmt.Sprintf("Marked %d email(s) as read", count), nil
}
