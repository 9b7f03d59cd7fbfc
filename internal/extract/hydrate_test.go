package extract_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"applypilot-engine/internal/extract"

	"github.com/stretchr/testify/assert"
)

const detailPage = `<html><body>
	<h1 class="top-card-layout__title">Backend Engineer</h1>
	<div class="show-more-less-html__markup">
		Build and run Go services for the listings platform.
	</div>
</body></html>`

func TestHydrateUsesDetailPageSelectors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/jobs/view/4111111111":
			w.Write([]byte(detailPage))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	recs := []extract.Record{
		{Title: "Backend Engineer", Company: "Acme", DetailLink: srv.URL + "/jobs/view/4111111111"},
		{Title: "SRE", Company: "Globex", DetailLink: srv.URL + "/gone"},
		{Title: "Prefilled", Company: "Initech", DetailLink: srv.URL + "/jobs/view/4111111111", Description: "kept"},
		{Title: "Linkless", Company: "Umbrella"},
		{CapturedAt: time.Now()},
	}

	h := extract.NewHydrator(extract.NewHostLimiter(100, 10), extract.DefaultCascades(), 10)
	h.Hydrate(context.Background(), recs)

	// The detail-page markup carries none of the card snippet classes; the
	// description must come from the detail cascade.
	assert.Equal(t, "Build and run Go services for the listings platform.", recs[0].Description)

	// Failures and ineligible records are left alone.
	assert.Empty(t, recs[1].Description)
	assert.Equal(t, "kept", recs[2].Description)
	assert.Empty(t, recs[3].Description)
}

func TestHydrateHonorsFetchCap(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(detailPage))
	}))
	defer srv.Close()

	recs := make([]extract.Record, 5)
	for i := range recs {
		recs[i] = extract.Record{Title: "T", Company: "C", DetailLink: srv.URL + "/jobs/view/1"}
	}

	h := extract.NewHydrator(nil, extract.DefaultCascades(), 2)
	h.Hydrate(context.Background(), recs)

	assert.Equal(t, 2, hits)
	assert.NotEmpty(t, recs[0].Description)
	assert.NotEmpty(t, recs[1].Description)
	assert.Empty(t, recs[2].Description)
}
