package httpapi

import "net/http"

// NewMux returns the raw mux so main() can still attach /shutdown (needs srv+token).
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	// Fill
	fh := &FillHandler{CfgVal: d.CfgVal, Hub: d.Hub, Doc: d.Doc, NewFiller: d.NewFiller}
	mux.HandleFunc("/fill/run", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: fh.Run,
	}))
	mux.HandleFunc("/fill/clear", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: fh.Clear,
	}))
	mux.HandleFunc("/page/analyze", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: fh.Analyze,
	}))

	// Extraction
	xh := ExtractHandler{CfgVal: d.CfgVal, Doc: d.Doc, Runner: d.Runner}
	mux.HandleFunc("/extract/run", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: xh.Run,
	}))
	mux.HandleFunc("/extract/status", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: xh.Status,
	}))
	mux.HandleFunc("/extract/stop", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: xh.Stop,
	}))

	// Browser session
	bh := BrowserHandler{Navigate: d.Navigate}
	mux.HandleFunc("/browser/open", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: bh.Open,
	}))

	// Email alert ingest
	ih := IngestHandler{
		CfgVal:       d.CfgVal,
		IngestStatus: d.IngestStatus,
		Hub:          d.Hub,
		RunAlerts:    d.RunAlerts,
	}
	mux.HandleFunc("/ingest/email", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: ih.Run,
	}))
	mux.HandleFunc("/ingest/status", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ih.Status,
	}))

	// Config
	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))
	mux.HandleFunc("/config/validate", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Validate,
	}))

	// Secrets (use cfgVal, NOT a snapshot cfg)
	sh := SecretsHandler{CfgVal: d.CfgVal}
	mux.HandleFunc("/api/secrets/openai", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sh.SetOpenAIKey,
	}))
	mux.HandleFunc("/api/secrets/imap", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sh.SetIMAPPassword,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	// Health
	hh := HealthHandler{}
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	}))

	return mux
}
