package httpapi

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"applypilot-engine/internal/config"
	"applypilot-engine/internal/events"
)

type IngestHandler struct {
	CfgVal       *atomic.Value // config.Config
	IngestStatus *atomic.Value // httpapi.IngestStatus
	Hub          *events.Hub
	RunAlerts    func(ctx context.Context, cfg config.Config) (added int, err error)
}

func (h IngestHandler) Status(w http.ResponseWriter, r *http.Request) {
	st := h.IngestStatus.Load().(IngestStatus)
	writeJSON(w, st)
}

func (h IngestHandler) Run(w http.ResponseWriter, r *http.Request) {
	st := h.IngestStatus.Load().(IngestStatus)
	if st.Running {
		writeJSON(w, map[string]any{"ok": false, "msg": "already running"})
		return
	}

	cfg := h.CfgVal.Load().(config.Config)
	if !cfg.Email.Enabled {
		WriteError(w, r, http.StatusConflict, "email_disabled", "email ingest is disabled in config")
		return
	}

	h.IngestStatus.Store(IngestStatus{
		LastRunAt: time.Now().Format(time.RFC3339),
		Running:   true,
		LastOkAt:  st.LastOkAt,
	})

	go func() {
		added, err := h.RunAlerts(context.Background(), cfg)

		now := time.Now().Format(time.RFC3339)
		next := h.IngestStatus.Load().(IngestStatus)
		next.Running = false
		next.LastRunAt = now
		next.LastAdded = added
		if err != nil {
			next.LastError = err.Error()
		} else {
			next.LastError = ""
			next.LastOkAt = now
			h.Hub.Publish(events.MakeEvent("", events.TypeAlertsIngested, 1, map[string]any{"added": added}))
		}
		h.IngestStatus.Store(next)
	}()

	writeJSON(w, map[string]any{"ok": true})
}
