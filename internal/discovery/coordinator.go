package discovery

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ojiudezue/frigate-config-builder/internal/camera"
	"github.com/ojiudezue/frigate-config-builder/internal/conf"
	"github.com/ojiudezue/frigate-config-builder/internal/directory"
)

// Status is the per-adapter diagnostic record of one discovery pass. It is
// informational only and never affects the catalog contents.
type Status struct {
	Source    string        // adapter source tag
	Available bool          // integration configured on the host
	Elapsed   time.Duration // wall-clock discovery time for this adapter
	Cameras   int           // records the adapter contributed before dedup
	Err       error         // whole-adapter failure, nil on success
}

// Coordinator owns the adapter set and runs one discovery pass over all of
// them. It holds no state between passes and is safe to reuse.
type Coordinator struct {
	adapters []Adapter
}

// NewCoordinator builds the default adapter set against the given directory
// service and settings.
func NewCoordinator(svc directory.Service, settings *conf.Settings) *Coordinator {
	return &Coordinator{
		adapters: []Adapter{
			NewProtectAdapter(svc),
			NewDahuaFamilyAdapter(svc, settings),
			NewReolinkAdapter(svc, settings),
			NewGenericAdapter(svc),
			NewManualAdapter(settings),
		},
	}
}

// NewCoordinatorWith builds a coordinator over an explicit adapter set.
func NewCoordinatorWith(adapters ...Adapter) *Coordinator {
	return &Coordinator{adapters: adapters}
}

type adapterResult struct {
	status  Status
	cameras []camera.Camera
}

// Run executes every adapter concurrently and returns the merged catalog plus
// per-adapter diagnostics. Records are merged in adapter-completion order with
// first-seen-wins dedup by id; the final catalog is sorted by case-insensitive
// display name.
func (c *Coordinator) Run(ctx context.Context) ([]camera.Camera, []Status) {
	start := time.Now()

	results := make(chan adapterResult, len(c.adapters))
	var wg sync.WaitGroup

	for _, adapter := range c.adapters {
		wg.Add(1)
		go func(a Adapter) {
			defer wg.Done()
			results <- c.runOne(ctx, a)
		}(adapter)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	var (
		catalog  []camera.Camera
		statuses []Status
		seen     = make(map[string]string) // id -> source that registered it
	)

	// Results arrive in completion order; the merge set is only ever touched
	// from this goroutine.
	for res := range results {
		statuses = append(statuses, res.status)
		for i := range res.cameras {
			cam := res.cameras[i]
			if first, dup := seen[cam.ID]; dup {
				logger.Warn("duplicate camera id, keeping first registration",
					"id", cam.ID, "kept_source", first, "dropped_source", cam.Source)
				continue
			}
			seen[cam.ID] = cam.Source
			catalog = append(catalog, cam)
		}
	}

	camera.SortByFriendlyName(catalog)

	logger.Info("discovery pass complete",
		"cameras", len(catalog),
		"adapters", len(c.adapters),
		"elapsed", time.Since(start))

	return catalog, statuses
}

// runOne invokes a single adapter with timing and fault isolation. A panic or
// error inside one adapter yields an empty contribution and never reaches the
// join point.
func (c *Coordinator) runOne(ctx context.Context, a Adapter) (res adapterResult) {
	res.status = Status{Source: a.Source()}
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			res.status.Elapsed = time.Since(start)
			res.status.Err = fmt.Errorf("adapter panic: %v", r)
			res.cameras = nil
			logger.Error("adapter panicked during discovery",
				"source", res.status.Source, "panic", r)
		}
	}()

	if !a.Available() {
		logger.Debug("integration not configured, skipping adapter", "source", a.Source())
		return res
	}
	res.status.Available = true

	cameras, err := a.Discover(ctx)
	res.status.Elapsed = time.Since(start)
	if err != nil {
		res.status.Err = err
		logger.Error("adapter discovery failed",
			"source", a.Source(), "elapsed", res.status.Elapsed, "error", err)
		return res
	}

	res.status.Cameras = len(cameras)
	res.cameras = cameras
	logger.Info("adapter discovery complete",
		"source", a.Source(), "cameras", len(cameras), "elapsed", res.status.Elapsed)
	return res
}
