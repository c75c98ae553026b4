// Package gservice executes normalized mailbox operations against the Gmail API.
package gservice

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/postoffice/email-mcp/internal/auth"
	"github.com/postoffice/email-mcp/internal/format"
)

const gmailUserID = "me"

// RemoteCallError wraps any fault raised while talking to the mailbox API.
type RemoteCallError struct {
	Op  string
	Err error
}

func (e *RemoteCallError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *RemoteCallError) Unwrap() error { return e.Err }

// Query describes one listing or search request.
type Query struct {
	Mailbox    string
	Term       string
	UnreadOnly bool
	Limit      int
}

type sessionSource interface {
	EnsureSession(ctx context.Context) (*auth.Session, error)
}

// NewGMail creates a mailbox client sending as the given identity.
func NewGMail(src sessionSource, from string) *GMail {
	return &GMail{src: src, from: from}
}

// GMail translates normalized requests into Gmail API calls. Safe for
// concurrent use; the HTTP transport serves tool calls on separate goroutines.
type GMail struct {
	src  sessionSource
	from string

	mu      sync.Mutex
	svc     *gmail.Service
	session *auth.Session
}

// ListMessages fetches up to q.Limit messages matching the query, normalized
// in listing order. Zero matches is an empty slice, not an error.
func (m *GMail) ListMessages(ctx context.Context, q Query) ([]format.Message, error) {
	return m.fetch(ctx, buildQuery(q, false), q.Limit)
}

// SearchMessages is ListMessages with the term applied as a subject filter.
func (m *GMail) SearchMessages(ctx context.Context, q Query) ([]format.Message, error) {
	return m.fetch(ctx, buildQuery(q, true), q.Limit)
}

func (m *GMail) fetch(ctx context.Context, query string, limit int) ([]format.Message, error) {
	svc, err := m.newSvc(ctx)
	if err != nil {
		return nil, err
	}

	list, err := svc.Users.Messages.List(gmailUserID).
		Q(query).
		MaxResults(int64(limit)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, &RemoteCallError{Op: "messages.list", Err: err}
	}

	messages := make([]format.Message, 0, len(list.Messages))

	for _, ref := range list.Messages {
		msg, err := svc.Users.Messages.Get(gmailUserID, ref.Id).
			Format("full").
			Context(ctx).
			Do()
		if err != nil {
			return nil, &RemoteCallError{Op: "messages.get " + ref.Id, Err: err}
		}
		messages = append(messages, format.Normalize(msg))
	}

	return messages, nil
}

// SendMessage sends a plain-text email and returns its remote identifier.
func (m *GMail) SendMessage(ctx context.Context, to, subject, body string) (string, error) {
	svc, err := m.newSvc(ctx)
	if err != nil {
		return "", err
	}

	raw, err := composeRaw(m.from, to, subject, body)
	if err != nil {
		return "", fmt.Errorf("compose message: %w", err)
	}

	sent, err := svc.Users.Messages.Send(gmailUserID, &gmail.Message{Raw: raw}).
		Context(ctx).
		Do()
	if err != nil {
		return "", &RemoteCallError{Op: "messages.send", Err: err}
	}

	return sent.Id, nil
}

// MarkRead clears the UNREAD label from every unread message in mailbox with
// the given subject and returns the number modified. Zero matches yields 0.
func (m *GMail) MarkRead(ctx context.Context, subject, mailbox string) (int, error) {
	svc, err := m.newSvc(ctx)
	if err != nil {
		return 0, err
	}

	query := buildQuery(Query{Mailbox: mailbox, Term: subject, UnreadOnly: true}, true)

	list, err := svc.Users.Messages.List(gmailUserID).
		Q(query).
		Context(ctx).
		Do()
	if err != nil {
		return 0, &RemoteCallError{Op: "messages.list", Err: err}
	}

	for _, ref := range list.Messages {
		_, err := svc.Users.Messages.Modify(gmailUserID, ref.Id, &gmail.ModifyMessageRequest{
			RemoveLabelIds: []string{"UNREAD"},
		}).Context(ctx).Do()
		if err != nil {
			return 0, &RemoteCallError{Op: "messages.modify " + ref.Id, Err: err}
		}
	}

	return len(list.Messages), nil
}

// buildQuery conjoins mailbox scope, unread flag and the optional term into
// Gmail search syntax. subjectOnly narrows the term to the subject header.
func buildQuery(q Query, subjectOnly bool) string {
	var b strings.Builder

	b.WriteString("in:")
	b.WriteString(strings.ToLower(q.Mailbox))

	if q.UnreadOnly {
		b.WriteString(" is:unread")
	}

	if q.Term != "" {
		b.WriteString(" ")
		if subjectOnly {
			b.WriteString("subject:")
		}
		b.WriteString(q.Term)
	}

	return b.String()
}

// newSvc returns the API service bound to the current session, rebuilding it
// only when the Authorizer hands out a new session.
func (m *GMail) newSvc(ctx context.Context) (*gmail.Service, error) {
	s, err := m.src.EnsureSession(ctx)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.svc != nil && m.session == s {
		return m.svc, nil
	}

	svc, err := gmail.NewService(ctx, option.WithHTTPClient(s.HTTPClient()))
	if err != nil {
		return nil, fmt.Errorf("gmail.NewService failed: %w", err)
	}

	m.svc = svc
	m.session = s

	return svc, nil
}
