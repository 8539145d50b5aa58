// Package builder orchestrates the full pipeline: discover cameras, resolve
// the broker, generate the document and deliver it.
package builder

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/ojiudezue/frigate-config-builder/internal/camera"
	"github.com/ojiudezue/frigate-config-builder/internal/conf"
	"github.com/ojiudezue/frigate-config-builder/internal/directory"
	"github.com/ojiudezue/frigate-config-builder/internal/discovery"
	"github.com/ojiudezue/frigate-config-builder/internal/generator"
	"github.com/ojiudezue/frigate-config-builder/internal/logging"
	"github.com/ojiudezue/frigate-config-builder/internal/mqtt"
	"github.com/ojiudezue/frigate-config-builder/internal/observability"
	"github.com/ojiudezue/frigate-config-builder/internal/output"
)

var logger = logging.ForService("builder")

// DirectoryService resolves the host directory source for a run: a snapshot
// file when one is configured, otherwise an empty in-memory directory. Manual
// cameras discover either way.
func DirectoryService(settings *conf.Settings) (directory.Service, error) {
	if settings.Directory.Snapshot != "" {
		return directory.LoadSnapshot(settings.Directory.Snapshot)
	}
	return &directory.Static{}, nil
}

// Result captures one completed pipeline run.
type Result struct {
	Catalog     []camera.Camera
	Statuses    []discovery.Status
	Document    []byte
	GeneratedAt time.Time
	Duration    time.Duration
}

// Builder ties discovery, generation and delivery together. It remembers the
// camera ids of the previous run so newly appeared cameras can be flagged.
type Builder struct {
	svc         directory.Service
	settings    *conf.Settings
	coordinator *discovery.Coordinator
	metrics     *observability.Metrics
	log         *slog.Logger
	closeLog    func() error

	mu          sync.Mutex
	previousIDs map[string]struct{}
	lastResult  *Result
	stale       bool
}

// Option configures optional builder collaborators.
type Option func(*Builder)

// WithMetrics attaches discovery and generation metrics collection.
func WithMetrics(m *observability.Metrics) Option {
	return func(b *Builder) { b.metrics = m }
}

// WithCoordinator replaces the default adapter set.
func WithCoordinator(c *discovery.Coordinator) Option {
	return func(b *Builder) { b.coordinator = c }
}

// New creates a builder over the directory service and settings.
func New(svc directory.Service, settings *conf.Settings, opts ...Option) *Builder {
	b := &Builder{
		svc:      svc,
		settings: settings,
		log:      logger,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.coordinator == nil {
		b.coordinator = discovery.NewCoordinator(svc, settings)
	}

	// Pipeline runs additionally land in a rotating file log when configured.
	if settings.Logging.File != "" {
		level := slog.LevelInfo
		if settings.Debug {
			level = slog.LevelDebug
		}
		fileLogger, closeFn, err := logging.NewFileLogger(settings.Logging.File, "builder", level)
		if err != nil {
			logger.Warn("could not open log file, keeping standard logging",
				"path", settings.Logging.File, "error", err)
		} else {
			b.log = fileLogger
			b.closeLog = closeFn
		}
	}
	return b
}

// Close releases the builder's file log when one was opened.
func (b *Builder) Close() error {
	if b.closeLog != nil {
		return b.closeLog()
	}
	return nil
}

// Discover runs one discovery pass, flags cameras not seen in the previous
// pass and applies the configured selection filter.
func (b *Builder) Discover(ctx context.Context) ([]camera.Camera, []discovery.Status, error) {
	cameras, statuses := b.coordinator.Run(ctx)

	if b.metrics != nil {
		for _, st := range statuses {
			b.metrics.ObserveAdapter(st.Source, st.Elapsed, st.Cameras, st.Err != nil)
		}
	}

	b.mu.Lock()
	camera.MarkNew(cameras, b.previousIDs)
	b.previousIDs = camera.IDSet(cameras)
	b.mu.Unlock()

	return b.selectCameras(cameras), statuses, nil
}

// selectCameras applies the configured id allowlist and availability filter.
// An empty allowlist selects everything.
func (b *Builder) selectCameras(cameras []camera.Camera) []camera.Camera {
	selected := make(map[string]struct{}, len(b.settings.Cameras.Selected))
	for _, id := range b.settings.Cameras.Selected {
		selected[id] = struct{}{}
	}

	out := cameras[:0:0]
	for i := range cameras {
		cam := cameras[i]
		if len(selected) > 0 {
			if _, ok := selected[cam.ID]; !ok {
				continue
			}
		}
		if b.settings.Cameras.ExcludeUnavailable && !cam.Available {
			b.log.Debug("excluding unavailable camera", "id", cam.ID)
			continue
		}
		out = append(out, cam)
	}
	return out
}

// Run executes the full pipeline: discover, resolve the broker, generate,
// write the file and optionally push. Generation failures abort the run
// before any output is touched.
func (b *Builder) Run(ctx context.Context) (*Result, error) {
	started := time.Now()

	catalog, statuses, err := b.Discover(ctx)
	if err != nil {
		return nil, err
	}

	broker := mqtt.Resolve(b.svc, b.settings)

	genStart := time.Now()
	doc, err := generator.Generate(catalog, b.settings, broker)
	if b.metrics != nil {
		b.metrics.ObserveGeneration(time.Since(genStart), len(catalog), err)
	}
	if err != nil {
		return nil, err
	}

	if err := output.WriteFile(b.settings.Output.Path, doc); err != nil {
		return nil, err
	}

	if b.settings.Output.AutoPush && b.settings.Output.FrigateURL != "" {
		pusher := output.NewPusher(b.settings.Output.FrigateURL)
		if err := pusher.Push(ctx, doc, b.settings.Output.RestartOnPush); err != nil {
			return nil, err
		}
	}

	result := &Result{
		Catalog:     catalog,
		Statuses:    statuses,
		Document:    doc,
		GeneratedAt: started,
		Duration:    time.Since(started),
	}

	b.mu.Lock()
	b.lastResult = result
	b.stale = false
	b.mu.Unlock()

	b.log.Info("pipeline run completed",
		"cameras", len(catalog), "duration", result.Duration.String())
	return result, nil
}

// MarkStale flags the last result as outdated, e.g. after a settings change.
func (b *Builder) MarkStale() {
	b.mu.Lock()
	b.stale = true
	b.mu.Unlock()
}

// Stale reports whether the last result predates a settings change.
func (b *Builder) Stale() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stale
}

// LastResult returns the most recent successful run, or nil.
func (b *Builder) LastResult() *Result {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastResult
}
