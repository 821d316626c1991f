package capture

import (
	"log"
	"sync"
	"time"

	"github.com/chronoguard/chronoguard/internal/config"
	"github.com/chronoguard/chronoguard/internal/models"
	"github.com/chronoguard/chronoguard/pkg/capability"
)

// SignalKind distinguishes the OS notifications fed into the engine.
type SignalKind int

const (
	// AppActivated means an application gained focus.
	AppActivated SignalKind = iota
	// AppDeactivated means an application lost focus.
	AppDeactivated
	// AppLaunched means an application started.
	AppLaunched
	// AppTerminated means an application exited.
	AppTerminated
)

// Signal is one OS notification. App may be nil when the notification
// carries no identity; the engine then re-resolves the frontmost app.
type Signal struct {
	Kind SignalKind
	App  *capability.FrontmostApp
}

// SampleWriter is the slice of the store the engine needs.
type SampleWriter interface {
	Insert(sample *models.ActivitySample) (bool, error)
}

// Engine turns OS notifications and periodic polling into deduplicated
// store writes. Both triggers feed one internal channel and a single
// consumer goroutine owns lastObservedApp, so the dedup rule lives in
// exactly one place.
type Engine struct {
	cfg      *config.Config
	store    SampleWriter
	provider capability.Provider

	signals chan Signal
	stopCh  chan struct{}
	done    chan struct{}

	mu         sync.Mutex
	monitoring bool

	// lastObservedApp is touched only by the consumer goroutine.
	lastObservedApp string
}

// NewEngine creates a capture engine. It does not start monitoring.
func NewEngine(cfg *config.Config, store SampleWriter, provider capability.Provider) *Engine {
	return &Engine{
		cfg:      cfg,
		store:    store,
		provider: provider,
		signals:  make(chan Signal, 16),
	}
}

// Start begins monitoring. Idempotent: a second call while running is a
// no-op. An initial sample is taken before the first tick.
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.monitoring {
		return nil
	}

	e.monitoring = true
	e.stopCh = make(chan struct{})
	e.done = make(chan struct{})

	log.Printf("Starting activity capture with %v sample interval", e.cfg.Capture.SampleInterval)
	go e.run()

	return nil
}

// Stop ends monitoring. Idempotent. When it returns, the consumer
// goroutine has exited and no further writes will occur.
func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.monitoring {
		e.mu.Unlock()
		return
	}
	e.monitoring = false
	stopCh := e.stopCh
	done := e.done
	e.mu.Unlock()

	close(stopCh)
	<-done
	log.Println("Activity capture stopped")
}

// IsMonitoring reports whether the engine is running.
func (e *Engine) IsMonitoring() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.monitoring
}

// Notify feeds an OS notification into the engine. Safe to call from
// any goroutine; dropped when the engine is stopped or the queue is
// full (the next poll tick covers a lost notification).
func (e *Engine) Notify(sig Signal) {
	e.mu.Lock()
	if !e.monitoring {
		e.mu.Unlock()
		return
	}
	stopCh := e.stopCh
	e.mu.Unlock()

	select {
	case e.signals <- sig:
	case <-stopCh:
	default:
	}
}

func (e *Engine) run() {
	defer close(e.done)

	ticker := time.NewTicker(e.cfg.Capture.SampleInterval)
	defer ticker.Stop()

	e.sampleFrontmost()

	for {
		select {
		case <-e.stopCh:
			return
		case <-ticker.C:
			e.sampleFrontmost()
		case sig := <-e.signals:
			e.handleSignal(sig)
		}
	}
}

func (e *Engine) handleSignal(sig Signal) {
	switch sig.Kind {
	case AppActivated:
		if sig.App == nil {
			e.sampleFrontmost()
			return
		}
		e.observe(sig.App)

	case AppDeactivated:
		// Record the app that lost focus without disturbing the
		// dedup state; the next activation comparison still runs
		// against the last *active* app.
		if sig.App != nil {
			e.writeSample(sig.App)
		}

	case AppLaunched:
		if sig.App != nil {
			log.Printf("App launched: %s", sig.App.Name)
		}

	case AppTerminated:
		if sig.App != nil {
			log.Printf("App terminated: %s", sig.App.Name)
		}
	}
}

// sampleFrontmost resolves the frontmost app and applies the dedup
// rule. A capability failure is logged and skipped; monitoring
// continues.
func (e *Engine) sampleFrontmost() {
	app, err := e.provider.GetFrontmostApp()
	if err != nil {
		log.Printf("Could not resolve frontmost app: %v", err)
		return
	}
	if app == nil || app.BundleID == "" {
		return
	}

	e.observe(app)
}

// observe writes one sample per contiguous run of the same app.
func (e *Engine) observe(app *capability.FrontmostApp) {
	if app.BundleID == e.lastObservedApp {
		return
	}

	if e.writeSample(app) {
		e.lastObservedApp = app.BundleID
	}
}

// writeSample persists one observation. Returns whether the sample was
// accepted by the store (new row or duplicate both count; only a
// storage fault returns false).
func (e *Engine) writeSample(app *capability.FrontmostApp) bool {
	sample := &models.ActivitySample{
		Timestamp:   time.Now().Unix(),
		AppBundleID: app.BundleID,
		AppName:     app.Name,
		IsAfk:       e.isUserIdle(),
	}
	if app.WindowTitle != "" {
		title := app.WindowTitle
		sample.WindowTitle = &title
	}

	newRow, err := e.store.Insert(sample)
	if err != nil {
		log.Printf("Failed to save sample for %s: %v", app.Name, err)
		return false
	}

	if newRow {
		log.Printf("Logged activity: %s", app.Name)
	}
	return true
}

func (e *Engine) isUserIdle() bool {
	idle, err := e.provider.GetIdleSeconds()
	if err != nil {
		log.Printf("Could not read idle time: %v", err)
		return false
	}
	return idle >= e.cfg.GetIdleThresholdSeconds()
}
