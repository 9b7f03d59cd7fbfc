package httpapi

import (
	"context"
	"sync/atomic"

	"applypilot-engine/internal/config"
	"applypilot-engine/internal/events"
	"applypilot-engine/internal/extract"
	"applypilot-engine/internal/fill"
	"applypilot-engine/internal/page"
)

type Deps struct {
	Hub *events.Hub

	// Atomic stores
	CfgVal       *atomic.Value // stores config.Config
	IngestStatus *atomic.Value // stores httpapi.IngestStatus

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	// Doc returns the live page context. Nil when no browser is attached.
	Doc func() page.Document

	// Navigate points the session page at a URL.
	Navigate func(url string) error

	// NewFiller builds a fill orchestrator against the current config
	// (inject for testability; resolves the API key at call time).
	NewFiller func(cfg config.Config) (*fill.Orchestrator, error)

	// Extraction state machine, shared with main.
	Runner *extract.Runner

	// Alert ingest entrypoint.
	RunAlerts func(ctx context.Context, cfg config.Config) (added int, err error)
}
