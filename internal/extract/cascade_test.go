package extract_test

import (
	"testing"
	"time"

	"applypilot-engine/internal/extract"
	"applypilot-engine/internal/page/htmlpage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const resultsPage = `<html><body>
<ul>
	<li class="job-search-card">
		<h3 class="base-search-card__title"><a href="#"><span>Backend Engineer</span></a></h3>
		<h4 class="base-search-card__subtitle"><a href="#">Acme Corp</a></h4>
		<span class="job-search-card__location">Austin, TX (Remote)</span>
		<time datetime="2026-08-28">4 days ago</time>
		<a href="https://www.linkedin.com/jobs/view/4111111111?refId=x&amp;trackingId=y">View</a>
	</li>
	<li class="job-search-card">
		<h3 class="base-search-card__title"><a href="#">Platform Engineer</a></h3>
		<!-- no company anywhere: this card must be dropped -->
		<span class="job-search-card__location">NYC</span>
	</li>
	<li class="job-search-card">
		<h3 class="base-search-card__title"><a href="#">SRE</a></h3>
		<h4 class="base-search-card__subtitle"><a href="#">Globex</a></h4>
		<a href="https://www.linkedin.com/jobs/view/4222222222">View</a>
	</li>
</ul>
</body></html>`

func TestExtractPage(t *testing.T) {
	doc, err := htmlpage.New(resultsPage)
	require.NoError(t, err)

	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	recs := extract.DefaultCascades().ExtractPage(doc, now)
	require.Len(t, recs, 2)

	first := recs[0]
	assert.Equal(t, "4111111111", first.ID)
	assert.Equal(t, "Backend Engineer", first.Title)
	assert.Equal(t, "Acme Corp", first.Company)
	assert.Equal(t, "Austin, TX (Remote)", first.Location)
	assert.Equal(t, "4 days ago", first.Posted)
	// Tracking params are gone from the detail link.
	assert.Equal(t, "https://www.linkedin.com/jobs/view/4111111111", first.DetailLink)
	assert.Equal(t, now, first.CapturedAt)

	second := recs[1]
	assert.Equal(t, "4222222222", second.ID)
	assert.Equal(t, "Globex", second.Company)
	assert.Empty(t, second.Location)
	assert.Empty(t, second.Posted)
}

func TestExtractPageCascadeFallback(t *testing.T) {
	// Older markup: none of the primary selectors match, later entries in
	// each cascade pick up the slack.
	doc, err := htmlpage.New(`<html><body>
		<div class="job-result-card">
			<div class="job-result-card__title">Data Engineer</div>
			<div class="job-result-card__subtitle">Initech</div>
			<div class="job-result-card__location">Berlin</div>
		</div>
	</body></html>`)
	require.NoError(t, err)

	recs := extract.DefaultCascades().ExtractPage(doc, time.Now())
	require.Len(t, recs, 1)
	assert.Equal(t, "Data Engineer", recs[0].Title)
	assert.Equal(t, "Initech", recs[0].Company)
	assert.Equal(t, "Berlin", recs[0].Location)
	assert.Empty(t, recs[0].DetailLink)
}

func TestCascadesMerge(t *testing.T) {
	merged := extract.DefaultCascades().Merge(extract.Cascades{
		Containers: []string{".custom-card"},
	})
	assert.Equal(t, []string{".custom-card"}, merged.Containers)
	// Untouched lists keep their defaults.
	assert.Equal(t, extract.DefaultCascades().Title, merged.Title)
}
