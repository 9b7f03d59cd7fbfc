package extract

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"applypilot-engine/internal/events"
	"applypilot-engine/internal/page"

	"github.com/google/uuid"
)

// ErrBusy rejects a start request while a run is in flight. One extraction
// per page context.
var ErrBusy = errors.New("extraction already running")

// Notifier receives progress and completion events; events.Hub satisfies it.
type Notifier interface {
	Publish(evt string)
}

const (
	defaultSettle    = 2 * time.Second
	defaultNavDelay  = 3 * time.Second
	defaultPageDelay = 2 * time.Second
	defaultPageLimit = 5
)

// Runner owns the extraction state machine. All mutation happens on the loop
// goroutine; the mutex only guards snapshots taken by Status and the
// cooperative stop flag, which the loop observes at the top of each page
// iteration.
type Runner struct {
	Cascades Cascades
	Hydrator *Hydrator // optional description backfill, best-effort
	Notify   Notifier

	// OnComplete receives the finished run exactly once per run, on every
	// termination path. The wiring layer renders and saves the report there.
	OnComplete func(run Run)

	Settle    time.Duration // after page-ready, lets dynamic content land
	NavDelay  time.Duration // after activating the next control
	PageDelay time.Duration // between pages

	mu      sync.Mutex
	running bool
	stopped bool
	current Run
}

// Start begins a run against doc. Returns ErrBusy while a previous run's
// state is non-terminal.
func (r *Runner) Start(doc page.Document, q Query, pageLimit int) error {
	if pageLimit <= 0 {
		pageLimit = defaultPageLimit
	}

	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return ErrBusy
	}
	r.running = true
	r.stopped = false
	r.current = Run{
		ID:          uuid.NewString(),
		Query:       q,
		PageLimit:   pageLimit,
		CurrentPage: 1,
		StartedAt:   time.Now().UTC(),
	}
	r.mu.Unlock()

	go r.loop(doc)
	return nil
}

// Stop requests cooperative cancellation. An in-flight page wait is not
// interrupted; the loop notices before the next page.
func (r *Runner) Stop() {
	r.mu.Lock()
	r.stopped = true
	r.mu.Unlock()
}

func (r *Runner) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	st := Status{
		Running:     r.running,
		RunID:       r.current.ID,
		CurrentPage: r.current.CurrentPage,
		PageLimit:   r.current.PageLimit,
		Found:       len(r.current.Records),
		Query:       r.current.Query,
		LastError:   r.current.Err,
	}
	if !r.current.StartedAt.IsZero() {
		st.StartedAt = r.current.StartedAt.Format(time.RFC3339)
	}
	if !r.current.FinishedAt.IsZero() {
		st.FinishedAt = r.current.FinishedAt.Format(time.RFC3339)
	}
	return st
}

func (r *Runner) loop(doc page.Document) {
	ctx := context.Background()
	var failure error

	defer func() {
		if rec := recover(); rec != nil {
			failure = fmt.Errorf("extraction panic: %v", rec)
		}
		r.finish(failure)
	}()

	for {
		r.mu.Lock()
		cur := r.current.CurrentPage
		limit := r.current.PageLimit
		found := len(r.current.Records)
		stopped := r.stopped
		r.mu.Unlock()

		if stopped || cur > limit {
			return
		}

		r.publish(events.TypeSearchProgress, map[string]any{
			"current_page": cur,
			"page_limit":   limit,
			"found":        found,
		})

		if err := doc.WaitReady(ctx); err != nil {
			failure = fmt.Errorf("wait for page ready: %w", err)
			return
		}
		time.Sleep(r.settle())

		recs := r.Cascades.ExtractPage(doc, time.Now().UTC())
		r.mu.Lock()
		r.current.Records = append(r.current.Records, recs...)
		r.mu.Unlock()
		log.Printf("[extract] page %d/%d: %d records", cur, limit, len(recs))

		advanced := false
		if cur < limit {
			if next := r.Cascades.nextControl(doc); next != nil {
				if err := next.Click(); err != nil {
					failure = fmt.Errorf("activate next page: %w", err)
					return
				}
				time.Sleep(r.navDelay())
				advanced = true
			} else {
				log.Printf("[extract] no enabled next control after page %d", cur)
			}
		}
		if !advanced {
			return
		}

		r.mu.Lock()
		r.current.CurrentPage++
		r.mu.Unlock()
		time.Sleep(r.pageDelay())
	}
}

// finish closes out the run and emits the single final report, on every
// termination path.
func (r *Runner) finish(failure error) {
	r.mu.Lock()
	run := r.current
	run.Records = append([]Record(nil), r.current.Records...)
	r.mu.Unlock()

	if failure == nil && r.Hydrator != nil {
		r.Hydrator.Hydrate(context.Background(), run.Records)
	}

	run.FinishedAt = time.Now().UTC()
	if failure != nil {
		run.Err = failure.Error()
		log.Printf("[extract] run %s failed: %v", run.ID, failure)
	}

	r.mu.Lock()
	r.current = run
	r.running = false
	r.mu.Unlock()

	if failure != nil {
		r.publish(events.TypeSearchFailed, map[string]any{"error": run.Err, "found": len(run.Records)})
	} else {
		r.publish(events.TypeSearchComplete, map[string]any{"found": len(run.Records)})
	}

	if r.OnComplete != nil {
		r.OnComplete(run)
	}
}

func (r *Runner) publish(typ string, data any) {
	if r.Notify == nil {
		return
	}
	r.Notify.Publish(events.MakeEvent("", typ, 1, data))
}

func (r *Runner) settle() time.Duration {
	if r.Settle > 0 {
		return r.Settle
	}
	return defaultSettle
}

func (r *Runner) navDelay() time.Duration {
	if r.NavDelay > 0 {
		return r.NavDelay
	}
	return defaultNavDelay
}

func (r *Runner) pageDelay() time.Duration {
	if r.PageDelay > 0 {
		return r.PageDelay
	}
	return defaultPageDelay
}
