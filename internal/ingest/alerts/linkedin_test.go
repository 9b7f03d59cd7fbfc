package alerts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const alertDigest = `<html><body>
<table>
	<tr>
		<td>
			<a href="https://www.linkedin.com/comm/jobs/view/4111111111?trackingId=abc">
				<img src="logo.png" alt="">
			</a>
		</td>
		<td>
			<a href="https://www.linkedin.com/comm/jobs/view/4111111111?trk=email">Senior Backend Engineer Easy Apply</a>
			<p>Acme Corp · Austin, TX (Remote)</p>
		</td>
	</tr>
</table>
<table>
	<tr>
		<td>
			<a href="https://www.linkedin.com/jobs/view/4222222222">Site Reliability Engineer</a>
			<p>Globex · Berlin</p>
		</td>
	</tr>
</table>
<a href="https://www.linkedin.com/jobs/view/4333333333">See all 12 applicants</a>
<a href="https://www.linkedin.com/psettings/unsubscribe">Unsubscribe</a>
</body></html>`

func TestParseLinkedInAlertHTML(t *testing.T) {
	received := time.Date(2026, 8, 30, 8, 0, 0, 0, time.UTC)
	recs, err := ParseLinkedInAlertHTML(alertDigest, received)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	first := recs[0]
	// Logo anchor and titled anchor merge into one record keyed by job id.
	assert.Equal(t, "4111111111", first.ID)
	assert.Equal(t, "https://www.linkedin.com/comm/jobs/view/4111111111", first.DetailLink)
	// Junk suffixes are stripped from the anchor text.
	assert.Equal(t, "Senior Backend Engineer", first.Title)
	assert.Equal(t, "Acme Corp", first.Company)
	assert.Equal(t, "Austin, TX (Remote)", first.Location)
	assert.Equal(t, received, first.CapturedAt)

	second := recs[1]
	assert.Equal(t, "4222222222", second.ID)
	assert.Equal(t, "Site Reliability Engineer", second.Title)
	assert.Equal(t, "Globex", second.Company)
	assert.Equal(t, "Berlin", second.Location)
}

func TestParseLinkedInAlertHTMLDropsTitlelessRows(t *testing.T) {
	// An anchor whose only text is boilerplate yields no usable title and the
	// row is dropped rather than reported half-empty.
	recs, err := ParseLinkedInAlertHTML(
		`<html><body><a href="https://www.linkedin.com/jobs/view/4444444444">Over 200 applicants</a></body></html>`,
		time.Now())
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestParseLinkedInAlertHTMLIgnoresForeignLinks(t *testing.T) {
	recs, err := ParseLinkedInAlertHTML(
		`<html><body><a href="https://jobs.example.com/view/1">Engineer at Example</a></body></html>`,
		time.Now())
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestLooksLikeAlert(t *testing.T) {
	bodyWithLink := "your alert: https://www.linkedin.com/jobs/view/123"

	assert.True(t, LooksLikeAlert("jobalerts-noreply@linkedin.com", "whatever", ""))
	assert.True(t, LooksLikeAlert("someone@example.com", "Your job alert for Go Developer", bodyWithLink))
	assert.True(t, LooksLikeAlert("someone@example.com", "New jobs on LinkedIn", bodyWithLink))

	// Matching subject without a job link in the body is not enough.
	assert.False(t, LooksLikeAlert("someone@example.com", "Your job alert", "plain text"))
	assert.False(t, LooksLikeAlert("someone@example.com", "Invoice attached", bodyWithLink))
}

func TestCleanTitle(t *testing.T) {
	assert.Equal(t, "Backend Engineer", cleanTitle("  Backend Engineer   Easy Apply "))
	assert.Equal(t, "Data Engineer", cleanTitle("Data Engineer Actively recruiting Promoted"))
	assert.Empty(t, cleanTitle("3 alumni work here"))
	assert.Empty(t, cleanTitle("https://example.com/jobs"))
}
