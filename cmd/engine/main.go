package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"applypilot-engine/internal/browser"
	"applypilot-engine/internal/config"
	"applypilot-engine/internal/events"
	"applypilot-engine/internal/extract"
	"applypilot-engine/internal/fill"
	"applypilot-engine/internal/httpapi"
	"applypilot-engine/internal/ingest/alerts"
	"applypilot-engine/internal/oracle"
	"applypilot-engine/internal/report"
	"applypilot-engine/internal/scheduler"
	"applypilot-engine/internal/secrets"

	"github.com/gofrs/flock"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Engine data dir: use env if provided, else local folder.
	dataDir := os.Getenv("APPLYPILOT_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	// One engine per data dir: two instances would fight over the browser
	// session and the report files.
	lock := flock.New(filepath.Join(dataDir, "engine.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		log.Fatalf("instance lock: %v", err)
	}
	if !locked {
		log.Fatalf("another engine instance is already running in %s", dataDir)
	}
	defer lock.Unlock()

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}

	// Load config and keep it reloadable
	var cfgVal atomic.Value // stores config.Config
	loadCfg := func() (config.Config, error) {
		cfg, err := config.Load(userCfgPath)
		if err != nil {
			return cfg, err
		}
		if err := config.OverlaySelectors(&cfg, filepath.Join(dataDir, "selectors.yml")); err != nil {
			return cfg, err
		}
		norm, vr := config.NormalizeAndValidate(cfg)
		for _, warn := range vr.Warnings {
			log.Printf("[config] warn: %s", warn)
		}
		if !vr.OK() {
			return cfg, errors.New("config invalid: " + strings.Join(vr.Errors, "; "))
		}
		return norm, nil
	}
	cfg, err := loadCfg()
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	cfgVal.Store(cfg)

	hub := events.NewHub()

	headless := os.Getenv("APPLYPILOT_HEADLESS") == "1"
	session, err := browser.Open(headless)
	if err != nil {
		log.Fatalf("browser start failed: %v", err)
	}
	defer session.Close()

	cascades := extract.DefaultCascades().Merge(cfg.Extract.Selectors)
	runner := &extract.Runner{
		Cascades:  cascades,
		Settle:    time.Duration(cfg.Extract.SettleMS) * time.Millisecond,
		PageDelay: time.Duration(cfg.Extract.PageDelayMS) * time.Millisecond,
		NavDelay:  time.Duration(cfg.Extract.NavDelayMS) * time.Millisecond,
		Notify:    hub,
		OnComplete: func(run extract.Run) {
			path, err := report.Save(dataDir, run)
			if err != nil {
				log.Printf("[report] save failed: %v", err)
				return
			}
			log.Printf("[report] wrote %s (%d records)", path, len(run.Records))
		},
	}
	if cfg.Extract.HydrateDescriptions {
		runner.Hydrator = extract.NewHydrator(extract.NewHostLimiter(1.0, 2), cascades, cfg.Extract.HydrateMax)
	}

	newFiller := func(cfg config.Config) (*fill.Orchestrator, error) {
		key, err := secrets.GetOpenAIKey()
		if err != nil {
			return nil, err
		}
		client := oracle.NewOpenAI(key, cfg.Oracle.Model, cfg.Oracle.RequestsPerSec)
		return &fill.Orchestrator{
			Values:     &oracle.Generator{Client: client, Profile: cfg.Profile},
			Classifier: fill.NewClassifier(cfg.Fill.Rules...),
			Pace:       time.Duration(cfg.Fill.PaceMS) * time.Millisecond,
		}, nil
	}

	runAlerts := func(ctx context.Context, cfg config.Config) (int, error) {
		pw, err := secrets.GetIMAPPassword(secrets.IMAPKeyringAccount(cfg))
		if err != nil {
			return 0, err
		}
		recs, err := alerts.RunOnce(ctx, alerts.Settings{
			Host:        cfg.Email.IMAPHost,
			Port:        cfg.Email.IMAPPort,
			Username:    cfg.Email.Username,
			Password:    pw,
			Mailbox:     cfg.Email.Mailbox,
			MaxMessages: cfg.Email.MaxMessages,
		})
		if err != nil {
			return 0, err
		}
		if len(recs) == 0 {
			return 0, nil
		}
		run := extract.Run{
			Query:      extract.Query{Title: "email_alerts"},
			Records:    recs,
			FinishedAt: time.Now().UTC(),
		}
		path, err := report.Save(dataDir, run)
		if err != nil {
			return len(recs), err
		}
		log.Printf("[alerts] wrote %s (%d records)", path, len(recs))
		return len(recs), nil
	}

	var ingestStatus atomic.Value
	ingestStatus.Store(httpapi.IngestStatus{})

	mux := httpapi.NewMux(httpapi.Deps{
		Hub:          hub,
		CfgVal:       &cfgVal,
		IngestStatus: &ingestStatus,
		UserCfgPath:  userCfgPath,
		LoadCfg:      loadCfg,
		Doc:          session.Document,
		Navigate:     session.Navigate,
		NewFiller:    newFiller,
		Runner:       runner,
		RunAlerts:    runAlerts,
	})

	addr := net.JoinHostPort("127.0.0.1", strconv.Itoa(cfg.App.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal(err)
	}

	srv := &http.Server{
		Handler: httpapi.Chain(mux,
			httpapi.RequestID,
			httpapi.Recover,
			httpapi.AccessLog,
			httpapi.Cors,
		),
		ReadHeaderTimeout: 5 * time.Second,
	}

	token, err := randomToken(16)
	if err != nil {
		log.Fatal(err)
	}
	mux.HandleFunc("/shutdown", shutdownHandler(&token, srv))
	log.Printf("engine listening on http://%s (data=%s) shutdown_token=%s", addr, dataDir, token)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		sdCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(sdCtx)
	})

	if cfg.Email.Enabled && cfg.Email.PollSeconds > 0 {
		g.Go(func() error {
			scheduler.Every(gctx, time.Duration(cfg.Email.PollSeconds)*time.Second, "alerts", func(tctx context.Context) error {
				cur := cfgVal.Load().(config.Config)
				added, err := runAlerts(tctx, cur)
				if err != nil {
					return err
				}
				if added > 0 {
					hub.Publish(events.MakeEvent("", events.TypeAlertsIngested, 1, map[string]any{"added": added}))
				}
				return nil
			})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}
}
