package tool

import (
	"context"
	"fmt"

	"github.com/postoffice/email-mcp/internal/format"
	"github.com/postoffice/email-mcp/internal/gservice"
	"github.com/postoffice/email-mcp/internal/registry"
)

// SearchEmailsRequest is the transport-visible schema for search_emails.
type SearchEmailsRequest struct {
	Query   string `json:"query" jsonschema:"search query matched against subjects"`
	Mailbox string `json:"mailbox,omitempty" jsonschema:"mailbox to search (default: INBOX)"`
	Limit   int    `json:"limit,omitempty" jsonschema:"max results"`
}

type searchMessagesSvc interface {
	SearchMessages(ctx context.Context, q gservice.Query) ([]format.Message, error)
}

// NewSearchEmails creates the search_emails tool.
func NewSearchEmails(svc searchMessagesSvc, maxResults int) *SearchEmails {
	return &SearchEmails{svc: svc, maxResults: maxResults}
}

// SearchEmails searches a mailbox by subject.
type SearchEmails struct {
	svc        searchMessagesSvc
	maxResults int
}

// Spec declares the tool's schema and handler.
func (t *SearchEmails) Spec() registry.Spec {
	return registry.Spec{
		Name:        toolSearchEmails,
		Description: "Search emails by criteria",
		Fields: []registry.Field{
			{Name: "query", Type: registry.String, Required: true, Description: "Search query (matched against subjects)"},
			{Name: "mailbox", Type: registry.String, Default: defaultMailbox, Description: "Mailbox to search (default: INBOX)"},
			{Name: "limit", Type: registry.Int, Default: defaultLimit, Cap: t.maxResults, Description: fmt.Sprintf("Max results (max %d)", t.maxResults)},
		},
		Handler: t.handle,
	}
}

func (t *SearchEmails) handle(ctx context.Context, args registry.Args) (string, error) {
	query := args.String("query")

	msgs, err := t.svc.SearchMessages(ctx, gservice.Query{
		Mailbox: args.String("mailbox"),
		Term:    query,
		Limit:   args.Int("limit"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to search: %w", err)
	}

	if len(msgs) == 0 {
		return fmt.Sprintf("No emails found matching '%s'", query), nil
	}

	return renderMessages(msgs, query, 0), nil
}
