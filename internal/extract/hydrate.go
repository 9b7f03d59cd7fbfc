package extract

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"applypilot-engine/internal/textutil"

	"github.com/PuerkitoBio/goquery"
)

const (
	hydrateTimeout = 10 * time.Second
	descriptionCap = 4000 // runes kept per description
)

// Hydrator backfills descriptions by fetching each record's detail page.
// Best-effort: a record whose page cannot be fetched or parsed keeps an empty
// description.
type Hydrator struct {
	hc       *http.Client
	limiter  *HostLimiter
	cascades Cascades
	maxFetch int
}

func NewHydrator(limiter *HostLimiter, cascades Cascades, maxFetch int) *Hydrator {
	if maxFetch <= 0 {
		maxFetch = 50
	}
	return &Hydrator{
		hc:       &http.Client{Timeout: 20 * time.Second},
		limiter:  limiter,
		cascades: cascades,
		maxFetch: maxFetch,
	}
}

func (h *Hydrator) Hydrate(ctx context.Context, records []Record) {
	fetched := 0
	for i := range records {
		if records[i].Description != "" || records[i].DetailLink == "" {
			continue
		}
		if fetched >= h.maxFetch {
			log.Printf("[hydrate] fetch cap %d reached, %d records left unhydrated", h.maxFetch, len(records)-i)
			return
		}
		fetched++

		fctx, cancel := context.WithTimeout(ctx, hydrateTimeout)
		desc, err := h.fetchDescription(fctx, records[i].DetailLink)
		cancel()

		if err != nil {
			log.Printf("[hydrate] id=%s err=%v", records[i].ID, err)
			continue
		}
		records[i].Description = desc
	}
}

func (h *Hydrator) fetchDescription(ctx context.Context, link string) (string, error) {
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	req.Header.Set("User-Agent", "ApplyPilot/1.0 (+local)")

	if h.limiter != nil {
		if err := h.limiter.WaitURL(ctx, link); err != nil {
			return "", err
		}
	}

	res, err := h.hc.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return "", fmt.Errorf("detail page status %d", res.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return "", err
	}

	// Detail pages first; the snippet selectors are kept as a fallback for
	// configs that only override Description.
	sels := append(append([]string(nil), h.cascades.DetailDescription...), h.cascades.Description...)
	for _, sel := range sels {
		if t := textutil.Clean(doc.Find(sel).First().Text()); t != "" {
			return textutil.Truncate(t, descriptionCap), nil
		}
	}
	return "", nil
}
