// Package format normalizes raw Gmail API messages into flat records.
package format

import (
	"encoding/base64"
	"strings"

	"google.golang.org/api/gmail/v1"
)

// Message is the flattened view of a Gmail message used by the tools.
type Message struct {
	ID      string
	From    string
	To      string
	Subject string
	Date    string
	Body    string
}

// Normalize flattens a raw API message. Pure, no I/O: missing headers become
// empty strings and a payload without usable body data yields an empty Body.
func Normalize(msg *gmail.Message) Message {
	m := Message{ID: msg.Id}

	if msg.Payload == nil {
		return m
	}

	for _, h := range msg.Payload.Headers {
		switch h.Name {
		case "From":
			m.From = h.Value
		case "To":
			m.To = h.Value
		case "Subject":
			m.Subject = h.Value
		case "Date":
			m.Date = h.Value
		}
	}

	m.Body = strings.TrimSpace(extractBody(msg.Payload))

	return m
}

// extractBody prefers the first text/plain part in a depth-one scan of the
// payload parts, then falls back to the single-part body.
func extractBody(payload *gmail.MessagePart) string {
	for _, part := range payload.Parts {
		if part.MimeType != "text/plain" || part.Body == nil || part.Body.Data == "" {
			continue
		}
		return decodeBase64URL(part.Body.Data)
	}

	if len(payload.Parts) == 0 && payload.Body != nil && payload.Body.Data != "" {
		return decodeBase64URL(payload.Body.Data)
	}

	return ""
}

func decodeBase64URL(data string) string {
	decoded, err := base64.URLEncoding.DecodeString(data)
	if err != nil {
		decoded, err = base64.RawURLEncoding.DecodeString(data)
		if err != nil {
			return data
		}
	}
	return string(decoded)
}
