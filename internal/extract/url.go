package extract

import (
	"net/url"
	"regexp"
	"sort"
	"strings"
)

var reJobID = regexp.MustCompile(`/jobs/view/(\d+)`)

// JobIDFromURL pulls the numeric listing id out of a detail link. Empty when
// the link does not carry one.
func JobIDFromURL(u string) string {
	if m := reJobID.FindStringSubmatch(u); len(m) == 2 {
		return m[1]
	}
	return ""
}

// CanonicalizeURL lowercases scheme/host, drops fragments and tracking
// params, and sorts the remaining query so the same listing always yields
// the same link text.
func CanonicalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""

	q := u.Query()
	for k := range q {
		lk := strings.ToLower(k)
		if strings.HasPrefix(lk, "utm_") ||
			lk == "gclid" || lk == "fbclid" || lk == "msclkid" ||
			lk == "trk" || lk == "trackingid" || lk == "refid" {
			q.Del(k)
		}
	}

	// LinkedIn listing URLs only need the job id to stay unique.
	if strings.Contains(u.Host, "linkedin.com") {
		keep := url.Values{}
		if v := q.Get("currentJobId"); v != "" {
			keep.Set("currentJobId", v)
		}
		q = keep
	}

	for k := range q {
		vals := q[k]
		sort.Strings(vals)
		q[k] = vals
	}
	u.RawQuery = q.Encode()
	return u.String()
}
