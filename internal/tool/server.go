// Package tool defines the email tools and exposes them over MCP.
package tool

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/postoffice/email-mcp/internal/registry"
)

const (
	toolSendEmail    = "send_email"
	toolReadInbox    = "read_inbox"
	toolSearchEmails = "search_emails"
	toolMarkAsRead   = "mark_as_read"
)

type mailboxSvc interface {
	sendMessageSvc
	listMessagesSvc
	searchMessagesSvc
	markReadSvc
}

// NewRegistry registers the four email tools against svc. maxResults caps
// the limit argument of the listing tools.
func NewRegistry(svc mailboxSvc, maxResults int) (*registry.Registry, error) {
	reg := registry.New()

	specs := []registry.Spec{
		NewSendEmail(svc).Spec(),
		NewReadInbox(svc, maxResults).Spec(),
		NewSearchEmails(svc, maxResults).Spec(),
		NewMarkAsRead(svc).Spec(),
	}

	for _, s := range specs {
		if err := reg.Register(s); err != nil {
			return nil, fmt.Errorf("reg.Register failed: %w", err)
		}
	}

	return reg, nil
}

// NewServer creates an MCP server dispatching tool calls through reg.
func NewServer(reg *registry.Registry) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: "email-mcp", Version: "v1.0.0"}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        toolSendEmail,
		Description: "Send an email to one or more recipients",
	}, dispatchVia[SendEmailRequest](reg, toolSendEmail))

	mcp.AddTool(server, &mcp.Tool{
		Name:        toolReadInbox,
		Description: "Read recent emails from inbox",
	}, dispatchVia[ReadInboxRequest](reg, toolReadInbox))

	mcp.AddTool(server, &mcp.Tool{
		Name:        toolSearchEmails,
		Description: "Search emails by criteria",
	}, dispatchVia[SearchEmailsRequest](reg, toolSearchEmails))

	mcp.AddTool(server, &mcp.Tool{
		Name:        toolMarkAsRead,
		Description: "Mark specific emails as read by subject",
	}, dispatchVia[MarkAsReadRequest](reg, toolMarkAsRead))

	return server
}

// dispatchVia adapts a typed MCP tool call onto the registry's dispatch
// path, rendering the resulting envelope as plain text content.
func dispatchVia[In any](reg *registry.Registry, name string) func(context.Context, *mcp.CallToolRequest, In) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input In) (*mcp.CallToolResult, any, error) {
		args, err := toArgs(input)
		if err != nil {
			return nil, nil, err
		}

		env, err := reg.Dispatch(ctx, name, args)
		if err != nil {
			return nil, nil, err
		}

		return &mcp.CallToolResult{
			IsError: env.IsError,
			Content: []mcp.Content{&mcp.TextContent{Text: env.Text}},
		}, nil, nil
	}
}

// toArgs flattens a typed request into the raw argument map the registry
// validates. omitempty on optional fields keeps absent values absent so
// declared defaults apply.
func toArgs(v any) (map[string]any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("json.Marshal failed: %w", err)
	}

	args := map[string]any{}
	if err := json.Unmarshal(b, &args); err != nil {
		return nil, fmt.Errorf("json.Unmarshal failed: %w", err)
	}

	return args, nil
}
