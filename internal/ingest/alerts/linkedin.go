package alerts

import (
	"strings"
	"time"

	"applypilot-engine/internal/extract"
	"applypilot-engine/internal/textutil"

	"github.com/PuerkitoBio/goquery"
)

// ParseLinkedInAlertHTML extracts job records from a LinkedIn alert digest.
// Multiple anchors point at the same job id (logo, title, card body); rows
// are merged by id so a text-less logo anchor does not shadow the real one.
func ParseLinkedInAlertHTML(htmlBody string, receivedAt time.Time) ([]extract.Record, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlBody))
	if err != nil {
		return nil, err
	}

	byID := map[string]*extract.Record{}
	var order []string

	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		href = strings.TrimSpace(href)
		lh := strings.ToLower(href)
		if href == "" || !strings.Contains(lh, "linkedin.com") {
			return
		}
		if !strings.Contains(lh, "/jobs/view/") && !strings.Contains(lh, "/comm/jobs/view/") {
			return
		}

		link := extract.CanonicalizeURL(href)
		id := extract.JobIDFromURL(link)
		key := id
		if key == "" {
			key = link
		}

		rec, ok := byID[key]
		if !ok {
			rec = &extract.Record{
				ID:         id,
				DetailLink: link,
				CapturedAt: receivedAt,
			}
			byID[key] = rec
			order = append(order, key)
		}

		if t := cleanTitle(a.Text()); betterTitle(t, rec.Title) {
			rec.Title = t
		}

		card := a.Closest("table")
		if card.Length() == 0 {
			card = a.Closest("tr")
		}
		if card.Length() == 0 {
			card = a.Parent()
		}

		// "Company · Location" rows
		card.Find("p").Each(func(_ int, p *goquery.Selection) {
			t := textutil.Clean(p.Text())
			if t == "" {
				return
			}
			if rec.Company == "" && rec.Location == "" && strings.Contains(t, " · ") {
				parts := strings.SplitN(t, " · ", 2)
				rec.Company = strings.TrimSpace(parts[0])
				rec.Location = strings.TrimSpace(parts[1])
				return
			}
			if t2 := cleanTitle(t); !strings.Contains(t2, " · ") && betterTitle(t2, rec.Title) {
				rec.Title = t2
			}
		})
	})

	out := make([]extract.Record, 0, len(byID))
	for _, key := range order {
		rec := byID[key]
		if rec.Title == "" || rec.DetailLink == "" {
			continue
		}
		out = append(out, *rec)
	}
	return out, nil
}

// LooksLikeAlert reports whether a message is plausibly a job alert digest,
// by sender first, then subject plus a body sanity check.
func LooksLikeAlert(from, subject, body string) bool {
	if strings.Contains(strings.ToLower(from), "jobalerts-noreply") {
		return true
	}
	s := strings.ToLower(subject)
	if strings.Contains(s, "job alert") || strings.Contains(s, "linkedin") {
		b := strings.ToLower(body)
		return strings.Contains(b, "linkedin.com/comm/jobs/view") ||
			strings.Contains(b, "linkedin.com/jobs/view")
	}
	return false
}

var titleJunk = []string{"Actively recruiting", "Easy Apply", "Promoted"}

func cleanTitle(s string) string {
	s = textutil.Clean(s)
	for _, j := range titleJunk {
		s = strings.TrimSpace(strings.ReplaceAll(s, j, ""))
	}
	low := strings.ToLower(s)
	for _, bad := range []string{"alumni", "connections", "applicants", "unsubscribe", "http://", "https://"} {
		if strings.Contains(low, bad) {
			return ""
		}
	}
	return textutil.Clean(s)
}

// betterTitle prefers the first plausible candidate and only replaces an
// existing title with a clearly longer one, so repeated card text does not
// flip-flop the result.
func betterTitle(candidate, current string) bool {
	if candidate == "" {
		return false
	}
	n := len([]rune(candidate))
	if n < 4 || n > 140 {
		return false
	}
	if current == "" {
		return true
	}
	return n > len([]rune(current))*2
}
