package extract_test

import (
	"testing"

	"applypilot-engine/internal/extract"

	"github.com/stretchr/testify/assert"
)

func TestJobIDFromURL(t *testing.T) {
	assert.Equal(t, "4123456789",
		extract.JobIDFromURL("https://www.linkedin.com/jobs/view/4123456789?refId=abc"))
	assert.Empty(t, extract.JobIDFromURL("https://www.linkedin.com/jobs/search/?keywords=go"))
	assert.Empty(t, extract.JobIDFromURL(""))
}

func TestCanonicalizeURL(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			"strips tracking params and sorts the rest",
			"https://boards.example.com/jobs?utm_source=email&b=2&a=1&gclid=xyz",
			"https://boards.example.com/jobs?a=1&b=2",
		},
		{
			"drops fragment",
			"https://boards.example.com/jobs/123#apply",
			"https://boards.example.com/jobs/123",
		},
		{
			"lowercases scheme and host only",
			"HTTPS://Boards.Example.COM/Jobs/View",
			"https://boards.example.com/Jobs/View",
		},
		{
			"linkedin keeps only the job id param",
			"https://www.linkedin.com/jobs/search/?currentJobId=4123456789&trackingId=t&position=3&pageNum=0",
			"https://www.linkedin.com/jobs/search/?currentJobId=4123456789",
		},
		{
			"linkedin with no job id drops the whole query",
			"https://www.linkedin.com/jobs/view/4123456789?refId=abc&trk=flagship",
			"https://www.linkedin.com/jobs/view/4123456789",
		},
		{
			"empty input",
			"",
			"",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, extract.CanonicalizeURL(tc.in))
		})
	}
}

func TestCanonicalizeURLUnparsableInputPassesThrough(t *testing.T) {
	const bad = "http://%zz"
	assert.Equal(t, bad, extract.CanonicalizeURL(bad))
}
