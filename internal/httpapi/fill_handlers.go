package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"

	"applypilot-engine/internal/config"
	"applypilot-engine/internal/events"
	"applypilot-engine/internal/fill"
	"applypilot-engine/internal/oracle"
	"applypilot-engine/internal/page"
)

type FillHandler struct {
	CfgVal    *atomic.Value // config.Config
	Hub       *events.Hub
	Doc       func() page.Document
	NewFiller func(cfg config.Config) (*fill.Orchestrator, error)

	// last remembers the most recently resolved target so a request without
	// coordinates re-fills the same region.
	mu   sync.Mutex
	last page.Element
}

type fillRunReq struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	WholePage bool    `json:"whole_page"`
}

func (h *FillHandler) Run(w http.ResponseWriter, r *http.Request) {
	doc := h.Doc()
	if doc == nil {
		WriteError(w, r, http.StatusConflict, "no_browser", "no browser page attached")
		return
	}

	req := fillRunReq{X: -1, Y: -1}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, r, http.StatusBadRequest, "bad_json", "invalid JSON: "+err.Error())
			return
		}
	}

	cfg := h.CfgVal.Load().(config.Config)
	filler, err := h.NewFiller(cfg)
	if err != nil {
		WriteError(w, r, http.StatusFailedDependency, "oracle_unavailable", err.Error())
		return
	}

	h.Hub.Publish(events.MakeEvent(RequestIDFrom(r.Context()), events.TypeFillStarted, 1, nil))

	var out fill.Outcome
	if req.WholePage {
		out, err = filler.FillDocument(r.Context(), doc)
	} else {
		h.mu.Lock()
		last := h.last
		h.mu.Unlock()

		var target page.Element
		out, target, err = filler.FillTarget(r.Context(), doc, req.X, req.Y, last)
		if target != nil {
			h.mu.Lock()
			h.last = target
			h.mu.Unlock()
		}
	}

	if err != nil {
		h.Hub.Publish(events.MakeEvent(RequestIDFrom(r.Context()), events.TypeFillFailed, 1, map[string]any{"error": err.Error()}))
		switch {
		case errors.Is(err, fill.ErrNoTarget):
			WriteError(w, r, http.StatusUnprocessableEntity, "no_target", err.Error())
		case errors.Is(err, fill.ErrNoFields):
			WriteError(w, r, http.StatusUnprocessableEntity, "no_fields", err.Error())
		default:
			var oerr *oracle.Error
			if errors.As(err, &oerr) {
				WriteError(w, r, http.StatusBadGateway, "oracle_error", err.Error())
				return
			}
			WriteError(w, r, http.StatusInternalServerError, "fill_failed", err.Error())
		}
		return
	}

	h.Hub.Publish(events.MakeEvent(RequestIDFrom(r.Context()), events.TypeFillComplete, 1, out))
	writeJSON(w, out)
}

func (h *FillHandler) Clear(w http.ResponseWriter, r *http.Request) {
	doc := h.Doc()
	if doc == nil {
		WriteError(w, r, http.StatusConflict, "no_browser", "no browser page attached")
		return
	}
	cleared := fill.ClearFields(doc)
	writeJSON(w, map[string]any{"cleared": cleared})
}

func (h *FillHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	doc := h.Doc()
	if doc == nil {
		WriteError(w, r, http.StatusConflict, "no_browser", "no browser page attached")
		return
	}
	writeJSON(w, fill.Analyze(doc))
}
