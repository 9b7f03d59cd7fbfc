package alerts

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"applypilot-engine/internal/extract"

	"github.com/emersion/go-imap/v2"
)

// Settings carries the IMAP connection and scan parameters. The password is
// resolved from the secret store by the caller.
type Settings struct {
	Host        string
	Port        int
	Username    string
	Password    string
	Mailbox     string
	MaxMessages int
}

const runTimeout = 120 * time.Second

// RunOnce scans unseen mail for job alert digests, parses them into records
// and marks the scanned messages seen. Non-alert mail is left untouched.
func RunOnce(ctx context.Context, s Settings) ([]extract.Record, error) {
	if s.Host == "" || s.Username == "" {
		return nil, fmt.Errorf("alert ingest needs imap host and username")
	}
	if s.Password == "" {
		return nil, fmt.Errorf("alert ingest needs the email app password")
	}

	addr := s.Host
	if !strings.Contains(addr, ":") {
		port := s.Port
		if port == 0 {
			port = 993
		}
		addr = fmt.Sprintf("%s:%d", addr, port)
	}
	mailbox := s.Mailbox
	if mailbox == "" {
		mailbox = "INBOX"
	}

	ctx, cancel := context.WithTimeout(ctx, runTimeout)
	defer cancel()

	c, err := dialAndLogin(ctx, addr, s.Username, s.Password)
	if err != nil {
		return nil, err
	}
	defer logoutAndClose(c)

	if _, err := c.Select(mailbox, &imap.SelectOptions{ReadOnly: false}).Wait(); err != nil {
		return nil, fmt.Errorf("imap select %q: %w", mailbox, err)
	}

	msgs, err := fetchUnseen(ctx, c, s.MaxMessages)
	if err != nil {
		return nil, err
	}
	if len(msgs) == 0 {
		return nil, nil
	}

	var out []extract.Record
	processed := make([]imap.UID, 0, len(msgs))

	for _, m := range msgs {
		bodyText, htmlBody, subj := parseBody(m.RawMessage, m.Subject)
		if !LooksLikeAlert(m.From, subj, bodyText+htmlBody) {
			continue
		}

		recs, perr := ParseLinkedInAlertHTML(htmlBody, m.Date)
		if perr != nil {
			log.Printf("[alerts] uid=%d parse: %v", m.UID, perr)
			continue
		}
		log.Printf("[alerts] uid=%d subject=%q records=%d", m.UID, subj, len(recs))
		out = append(out, recs...)
		processed = append(processed, m.UID)
	}

	if err := markSeen(c, processed); err != nil {
		log.Printf("[alerts] mark seen: %v", err)
	}
	return out, nil
}
