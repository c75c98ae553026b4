package gservice

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/emersion/go-message/mail"
)

// composeRaw builds an RFC 5322 plain-text message and encodes it with the
// URL-safe base64 convention Gmail expects for raw payloads.
func composeRaw(from, to, subject, body string) (string, error) {
	var buf bytes.Buffer

	var header mail.Header
	header.SetDate(time.Now())
	header.SetSubject(subject)
	if from != "" {
		header.SetAddressList("From", []*mail.Address{{Address: from}})
	}
	header.SetAddressList("To", recipientList(to))
	header.SetContentType("text/plain", map[string]string{"charset": "utf-8"})

	w, err := mail.CreateSingleInlineWriter(&buf, header)
	if err != nil {
		return "", fmt.Errorf("mail.CreateSingleInlineWriter failed: %w", err)
	}

	if _, err := w.Write([]byte(body)); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("body write failed: %w", err)
	}

	if err := w.Close(); err != nil {
		return "", fmt.Errorf("writer close failed: %w", err)
	}

	return base64.URLEncoding.EncodeToString(buf.Bytes()), nil
}

func recipientList(to string) []*mail.Address {
	parts := strings.Split(to, ",")
	addrs := make([]*mail.Address, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			addrs = append(addrs, &mail.Address{Address: trimmed})
		}
	}
	return addrs
}
