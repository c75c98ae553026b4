package tool

import (
	"context"
	"fmt"

	"github.com/postoffice/email-mcp/internal/format"
	"github.com/postoffice/email-mcp/internal/gservice"
	"github.com/postoffice/email-mcp/internal/registry"
)

// bodyPreviewLen caps the body text shown per inbox entry. Display-only,
// search results carry no body at all.
const bodyPreviewLen = 200

// ReadInboxRequest is the transport-visible schema for read_inbox.
type ReadInboxRequest struct {
	Mailbox    string `json:"mailbox,omitempty" jsonschema:"mailbox to read from (default: INBOX)"`
	Limit      int    `json:"limit,omitempty" jsonschema:"number of emails to retrieve"`
	UnreadOnly bool   `json:"unread_only,omitempty" jsonschema:"only fetch unread emails"`
}

type listMessagesSvc interface {
	ListMessages(ctx context.Context, q gservice.Query) ([]format.Message, error)
}

// NewReadInbox creates the read_inbox tool. maxResults caps the limit field.
func NewReadInbox(svc listMessagesSvc, maxResults int) *ReadInbox {
	return &ReadInbox{svc: svc, maxResults: maxResults}
}

// ReadInbox lists recent messages from a mailbox.
type ReadInbox struct {
	svc        listMessagesSvc
	maxResults int
}

// Spec declares the tool's schema and handler.
func (t *ReadInbox) Spec() registry.Spec {
	return registry.Spec{
		Name:        toolReadInbox,
		Description: "Read recent emails from inbox",
		Fields: []registry.Field{
			{Name: "mailbox", Type: registry.String, Default: defaultMailbox, Description: "Mailbox to read from (default: INBOX)"},
			{Name: "limit", Type: registry.Int, Default: defaultLimit, Cap: t.maxResults, Description: fmt.Sprintf("Number of emails to retrieve (max %d)", t.maxResults)},
			{Name: "unread_only", Type: registry.Bool, Default: false, Description: "Only fetch unread emails"},
		},
		Handler: t.handle,
	}
}

func (t *ReadInbox) handle(ctx context.Context, args registry.Args) (string, error) {
	msgs, err := t.svc.ListMessages(ctx, gservice.Query{
		Mailbox:    args.String("mailbox"),
		UnreadOnly: args.Bool("unread_only"),
		Limit:      args.Int("limit"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to read inbox: %w", err)
	}

	if len(msgs) == 0 {
		return "No emails found", nil
	}

	return renderMessages(msgs, "", bodyPreviewLen), nil
}
