// Package browser drives a real Chromium page through playwright and exposes
// it as a page.Document.
package browser

import (
	"fmt"
	"log"

	"applypilot-engine/internal/page"

	"github.com/playwright-community/playwright-go"
)

// Session owns one browser and one page. The engine works against a single
// page context at a time.
type Session struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	pg      playwright.Page
	doc     *document
}

// Open launches Chromium and opens a blank page. Headful by default so the
// operator can watch fills happen.
func Open(headless bool) (*Session, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("start playwright: %w", err)
	}

	br, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(headless),
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("launch chromium: %w", err)
	}

	pg, err := br.NewPage()
	if err != nil {
		br.Close()
		pw.Stop()
		return nil, fmt.Errorf("open page: %w", err)
	}

	s := &Session{pw: pw, browser: br, pg: pg}
	s.doc = &document{pg: pg}
	log.Printf("[browser] chromium up headless=%v", headless)
	return s, nil
}

// Navigate loads url in the session page and waits for the load event.
func (s *Session) Navigate(url string) error {
	_, err := s.pg.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateLoad,
		Timeout:   playwright.Float(30000),
	})
	if err != nil {
		return fmt.Errorf("goto %s: %w", url, err)
	}
	return nil
}

// Document returns the live page as a page.Document. The same value stays
// valid across navigations; locators re-resolve per use.
func (s *Session) Document() page.Document { return s.doc }

func (s *Session) Close() error {
	if err := s.browser.Close(); err != nil {
		s.pw.Stop()
		return err
	}
	return s.pw.Stop()
}
