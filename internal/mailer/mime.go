package mailer

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"mime"
	"mime/quotedprintable"
	"sort"
	"strings"
	"time"
)

var (
	errNoRecipient = errors.New("mailer: at least one recipient required")
	errNoFrom      = errors.New("mailer: from address required")
	errNoSubject   = errors.New("mailer: subject required")
	errNoBody      = errors.New("mailer: text or html body required")
)

func formatAddress(name, addr string) string {
	if name == "" {
		return addr
	}
	return fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("utf-8", name), addr)
}

func randomToken() string {
	b := make([]byte, 12)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// buildMessage renders e as an RFC 5322 message. Bodies are
// quoted-printable so Vietnamese text survives 7-bit relays.
func buildMessage(e Email, messageIDDomain string, now time.Time) (string, error) {
	switch {
	case len(e.To) == 0:
		return "", errNoRecipient
	case e.From == "":
		return "", errNoFrom
	case e.Subject == "":
		return "", errNoSubject
	case e.TextBody == "" && e.HTMLBody == "":
		return "", errNoBody
	}

	var b strings.Builder
	header := func(k, v string) { fmt.Fprintf(&b, "%s: %s\r\n", k, v) }

	header("Date", now.Format(time.RFC1123Z))
	header("Message-ID", fmt.Sprintf("<%s@%s>", randomToken(), messageIDDomain))
	header("From", formatAddress(e.FromName, e.From))
	header("To", strings.Join(e.To, ", "))
	if len(e.Cc) > 0 {
		header("Cc", strings.Join(e.Cc, ", "))
	}
	header("Subject", mime.QEncoding.Encode("utf-8", e.Subject))
	header("MIME-Version", "1.0")

	keys := make([]string, 0, len(e.Headers))
	for k, v := range e.Headers {
		if k != "" && v != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		header(k, e.Headers[k])
	}

	if e.TextBody != "" && e.HTMLBody != "" {
		boundary := "alt-" + randomToken()
		header("Content-Type", fmt.Sprintf("multipart/alternative; boundary=%q", boundary))
		b.WriteString("\r\n")
		for _, p := range []struct{ ct, body string }{
			{"text/plain", e.TextBody},
			{"text/html", e.HTMLBody},
		} {
			fmt.Fprintf(&b, "--%s\r\n", boundary)
			if err := writePart(&b, p.ct, p.body); err != nil {
				return "", err
			}
		}
		fmt.Fprintf(&b, "--%s--\r\n", boundary)
		return b.String(), nil
	}

	ct, body := "text/plain", e.TextBody
	if e.HTMLBody != "" {
		ct, body = "text/html", e.HTMLBody
	}
	if err := writePart(&b, ct, body); err != nil {
		return "", err
	}
	return b.String(), nil
}

func writePart(b *strings.Builder, contentType, body string) error {
	fmt.Fprintf(b, "Content-Type: %s; charset=UTF-8\r\n", contentType)
	b.WriteString("Content-Transfer-Encoding: quoted-printable\r\n\r\n")
	w := quotedprintable.NewWriter(b)
	if _, err := w.Write([]byte(body)); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	b.WriteString("\r\n")
	return nil
}
