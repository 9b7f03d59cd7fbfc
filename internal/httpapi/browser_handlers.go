package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"
)

type BrowserHandler struct {
	Navigate func(url string) error
}

type browserOpenReq struct {
	URL string `json:"url"`
}

func (h BrowserHandler) Open(w http.ResponseWriter, r *http.Request) {
	if h.Navigate == nil {
		WriteError(w, r, http.StatusConflict, "no_browser", "no browser session")
		return
	}

	var req browserOpenReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_json", "invalid JSON: "+err.Error())
		return
	}
	u := strings.TrimSpace(req.URL)
	if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		WriteError(w, r, http.StatusBadRequest, "bad_url", "url must be http(s)")
		return
	}

	if err := h.Navigate(u); err != nil {
		WriteError(w, r, http.StatusBadGateway, "navigate_failed", err.Error())
		return
	}
	writeJSON(w, map[string]any{"ok": true, "url": u})
}
