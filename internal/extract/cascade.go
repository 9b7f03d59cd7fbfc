package extract

import (
	"time"

	"applypilot-engine/internal/page"
	"applypilot-engine/internal/textutil"
)

// Cascades are the ordered candidate selectors for each piece of a results
// page. Vendor markup varies by rollout; each list is tried in order and the
// first selector (or first non-empty match) wins. Selectors are not safe to
// union because some match stale or hidden duplicates.
type Cascades struct {
	Containers  []string `yaml:"containers"`
	Title       []string `yaml:"title"`
	Company     []string `yaml:"company"`
	Location    []string `yaml:"location"`
	Link        []string `yaml:"link"`
	Posted      []string `yaml:"posted"`
	Description []string `yaml:"description"`
	// DetailDescription targets full detail pages, which use different markup
	// than the snippet inside a results card.
	DetailDescription []string `yaml:"detail_description"`
	Next              []string `yaml:"next"`
}

// DefaultCascades covers the LinkedIn layouts seen across rollouts.
func DefaultCascades() Cascades {
	return Cascades{
		Containers: []string{
			".job-search-card",
			".jobs-search__results-list li",
			`[data-entity-urn*="job"]`,
			".job-result-card",
			".jobs-search-results__list-item",
		},
		Title: []string{
			".base-search-card__title a",
			".job-search-card__title a",
			"h3 a",
			".job-result-card__title",
			".result-card__title",
		},
		Company: []string{
			".base-search-card__subtitle a",
			".job-search-card__subtitle a",
			"h4 a",
			".job-result-card__subtitle",
			".result-card__subtitle",
		},
		Location: []string{
			".job-search-card__location",
			".job-result-card__location",
			".result-card__location",
		},
		Link: []string{
			`a[href*="/jobs/view/"]`,
			".base-card__full-link",
			".job-search-card__title a",
		},
		Posted: []string{
			"time",
			".job-search-card__listdate",
			".job-result-card__listdate",
		},
		Description: []string{
			".job-search-card__snippet",
			".job-result-card__snippet",
		},
		DetailDescription: []string{
			".show-more-less-html__markup",
			".description__text",
			".jobs-description-content__text",
			"#job-details",
		},
		Next: []string{
			`button[aria-label="View next page"]`,
			`button[aria-label="Next"]`,
			".artdeco-pagination__button--next",
			`[data-test="pagination-next-btn"]`,
		},
	}
}

// Merge overlays non-empty lists from o, so config can replace individual
// cascades without restating the rest.
func (c Cascades) Merge(o Cascades) Cascades {
	if len(o.Containers) > 0 {
		c.Containers = o.Containers
	}
	if len(o.Title) > 0 {
		c.Title = o.Title
	}
	if len(o.Company) > 0 {
		c.Company = o.Company
	}
	if len(o.Location) > 0 {
		c.Location = o.Location
	}
	if len(o.Link) > 0 {
		c.Link = o.Link
	}
	if len(o.Posted) > 0 {
		c.Posted = o.Posted
	}
	if len(o.Description) > 0 {
		c.Description = o.Description
	}
	if len(o.DetailDescription) > 0 {
		c.DetailDescription = o.DetailDescription
	}
	if len(o.Next) > 0 {
		c.Next = o.Next
	}
	return c
}

// containers returns the matches of the first selector that yields any.
func (c Cascades) containers(doc page.Document) []page.Element {
	for _, sel := range c.Containers {
		if els := doc.Find(sel); len(els) > 0 {
			return els
		}
	}
	return nil
}

// ExtractPage pulls records from the current page state. Containers missing
// a title or company are dropped; everything else is best-effort.
func (c Cascades) ExtractPage(doc page.Document, now time.Time) []Record {
	var out []Record
	for _, card := range c.containers(doc) {
		rec, ok := c.extractCard(card, now)
		if ok {
			out = append(out, rec)
		}
	}
	return out
}

func (c Cascades) extractCard(card page.Element, now time.Time) (Record, bool) {
	title := firstText(card, c.Title)
	company := firstText(card, c.Company)
	if title == "" || company == "" {
		return Record{}, false
	}

	link := CanonicalizeURL(firstAttr(card, c.Link, "href"))

	return Record{
		ID:          JobIDFromURL(link),
		Title:       title,
		Company:     company,
		Location:    firstText(card, c.Location),
		Posted:      firstText(card, c.Posted),
		DetailLink:  link,
		Description: firstText(card, c.Description),
		CapturedAt:  now,
	}, true
}

// nextControl returns the first present and enabled advancement control.
func (c Cascades) nextControl(doc page.Document) page.Element {
	for _, sel := range c.Next {
		if el := doc.First(sel); el != nil && !el.Disabled() {
			return el
		}
	}
	return nil
}

func firstText(root page.Element, sels []string) string {
	for _, sel := range sels {
		if el := root.First(sel); el != nil {
			if t := textutil.Clean(el.Text()); t != "" {
				return t
			}
		}
	}
	return ""
}

func firstAttr(root page.Element, sels []string, attr string) string {
	for _, sel := range sels {
		if el := root.First(sel); el != nil {
			if v := el.Attr(attr); v != "" {
				return v
			}
		}
	}
	return ""
}
