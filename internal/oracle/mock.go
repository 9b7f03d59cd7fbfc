package oracle

import (
	"context"
	"sync"
)

// Mock is a canned Client for tests. It records every prompt so tests can
// assert exactly how many external calls were made.
type Mock struct {
	Response string
	Err      error

	mu      sync.Mutex
	prompts []string
}

func (m *Mock) Generate(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

func (m *Mock) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}

func (m *Mock) LastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.prompts) == 0 {
		return ""
	}
	return m.prompts[len(m.prompts)-1]
}
