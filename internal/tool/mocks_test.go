package tool_test

import (
	"context"

	"github.com/postoffice/email-mcp/internal/format"
	"github.com/postoffice/email-mcp/internal/gservice"
)

// mailboxSvcMock satisfies the service surface the tools consume. Tests set
// only the funcs their tool exercises.
type mailboxSvcMock struct {
	SendMessageFunc    func(ctx context.Context, to, subject, body string) (string, error)
	ListMessagesFunc   func(ctx context.Context, q gservice.Query) ([]format.Message, error)
	SearchMessagesFunc func(ctx context.Context, q gservice.Query) ([]format.Message, error)
	MarkReadFunc       func(ctx context.Context, subject, mailbox string) (int, error)
}

func (m *mailboxSvcMock) SendMessage(ctx context.Context, to, subject, body string) (string, error) {
	return m.SendMessageFunc(ctx, to, subject, body)
}

func (m *mailboxSvcMock) ListMessages(ctx context.Context, q gservice.Query) ([]format.Message, error) {
	return m.ListMessagesFunc(ctx, q)
}

func (m *mailboxSvcMock) SearchMessages(ctx context.Context, q gservice.Query) ([]format.Message, error) {
	return m.SearchMessagesFunc(ctx, q)
}

func (m *mailboxSvcMock) MarkRead(ctx context.Context, subject, mailbox string) (int, error) {
	return m.MarkReadFunc(ctx, subject, mailbox)
}
