package tool

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/postoffice/email-mcp/internal/format"
)

const (
	defaultMailbox = "INBOX"
	defaultLimit   = 10
)

// renderMessages formats results for the agent host. matching annotates the
// headline with the search term; bodyLimit > 0 appends a truncated body
// preview per entry.
func renderMessages(msgs []format.Message, matching string, bodyLimit int) string {
	var b strings.Builder

	if matching != "" {
		fmt.Fprintf(&b, "Found %d email(s) matching '%s':\n\n", len(msgs), matching)
	} else {
		fmt.Fprintf(&b, "Found %d email(s):\n\n", len(msgs))
	}

	for i, m := range msgs {
		fmt.Fprintf(&b, "--- Email %d ---\n", i+1)
		fmt.Fprintf(&b, "From: %s\n", m.From)
		fmt.Fprintf(&b, "Subject: %s\n", m.Subject)
		fmt.Fprintf(&b, "Date: %s\n", m.Date)
		if bodyLimit > 0 {
			fmt.Fprintf(&b, "Body:\n%s...\n", truncate(m.Body, bodyLimit))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// truncate cuts s to at most n bytes without splitting a UTF-8 rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
