package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync/atomic"

	"applypilot-engine/internal/config"
	"applypilot-engine/internal/extract"
	"applypilot-engine/internal/page"
)

type ExtractHandler struct {
	CfgVal *atomic.Value // config.Config
	Doc    func() page.Document
	Runner *extract.Runner
}

type extractRunReq struct {
	PageLimit int    `json:"page_limit"`
	JobTitle  string `json:"job_title"`
	Location  string `json:"location"`
}

func (h ExtractHandler) Run(w http.ResponseWriter, r *http.Request) {
	doc := h.Doc()
	if doc == nil {
		WriteError(w, r, http.StatusConflict, "no_browser", "no browser page attached")
		return
	}

	var req extractRunReq
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, r, http.StatusBadRequest, "bad_json", "invalid JSON: "+err.Error())
			return
		}
	}

	limit := req.PageLimit
	if limit <= 0 {
		cfg := h.CfgVal.Load().(config.Config)
		limit = cfg.Extract.DefaultPageLimit
	}

	q := extract.Query{Title: req.JobTitle, Location: req.Location}
	if err := h.Runner.Start(doc, q, limit); err != nil {
		if errors.Is(err, extract.ErrBusy) {
			WriteError(w, r, http.StatusConflict, "busy", err.Error())
			return
		}
		WriteError(w, r, http.StatusInternalServerError, "extract_failed", err.Error())
		return
	}

	writeJSON(w, h.Runner.Status())
}

func (h ExtractHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Runner.Status())
}

func (h ExtractHandler) Stop(w http.ResponseWriter, r *http.Request) {
	h.Runner.Stop()
	writeJSON(w, h.Runner.Status())
}
