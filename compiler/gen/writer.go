package gen

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Writer generates repository units in parallel and writes them below the
// configured target directory.
type Writer struct {
	cfg *Config

	// Metrics for performance monitoring
	mu      sync.Mutex
	metrics *WriterMetrics
}

// WriterMetrics tracks generation performance
type WriterMetrics struct {
	FilesGenerated int
	FilesSkipped   int
	TotalBytes     int64
	Duration       time.Duration
}

// Report is the outcome of a generation pass.
type Report struct {
	// RunID identifies the pass in log records.
	RunID string
	Units []*Unit
	// Failures holds the finders that could not be generated.
	Failures []error
}

// Err joins all finder failures.
func (r *Report) Err() error {
	return errors.Join(r.Failures...)
}

// NewWriter creates a new writer.
func NewWriter(cfg *Config) *Writer {
	return &Writer{
		cfg:     cfg,
		metrics: &WriterMetrics{},
	}
}

// Metrics returns the generation metrics.
func (w *Writer) Metrics() *WriterMetrics {
	return w.metrics
}

// Write generates and writes a unit per repository. Finder failures do not
// stop the pass: they are logged and returned in the report, and the unit is
// written without the failing finders. The returned error reports I/O and
// configuration problems only.
func (w *Writer) Write(ctx context.Context, repos []*Repository) (*Report, error) {
	if w.cfg == nil || w.cfg.Target == "" {
		return nil, NewConfigError("Target", nil, "missing target directory in config")
	}
	start := time.Now()
	report := &Report{RunID: uuid.NewString(), Units: make([]*Unit, len(repos))}
	log := w.cfg.logger().With("run", report.RunID)
	log.Info("generation started", "target", w.cfg.Target, "repositories", len(repos))

	if err := w.cfg.Cleanup(); err != nil {
		return nil, fmt.Errorf("cleanup disabled features: %w", err)
	}
	if err := os.MkdirAll(w.cfg.Target, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	var cache *Cache
	if w.cfg.FeatureEnabled(FeatureIncremental.Name) {
		cache = OpenCache(w.cfg.Target)
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(w.cfg.workers())
	for i, r := range repos {
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			u := GenerateUnit(w.cfg, r)
			report.Units[i] = u
			for _, err := range u.Failures {
				log.Warn("finder skipped", "unit", u.Repository.QualifiedName(), "err", err)
			}
			return w.writeUnit(u, cache)
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	for _, u := range report.Units {
		report.Failures = append(report.Failures, u.Failures...)
	}
	if cache != nil {
		if err := cache.Save(); err != nil {
			return nil, fmt.Errorf("save cache: %w", err)
		}
	}

	w.mu.Lock()
	w.metrics.Duration = time.Since(start)
	m := *w.metrics
	w.mu.Unlock()
	log.Info("generation finished",
		"generated", m.FilesGenerated,
		"skipped", m.FilesSkipped,
		"bytes", m.TotalBytes,
		"failures", len(report.Failures),
		"duration", m.Duration,
	)
	return report, nil
}

// writeUnit writes a single unit unless the cache shows it is unchanged.
func (w *Writer) writeUnit(u *Unit, cache *Cache) error {
	rel := u.Path()
	if cache != nil && cache.Unchanged(rel, u.Source) {
		w.mu.Lock()
		w.metrics.FilesSkipped++
		w.mu.Unlock()
		return nil
	}
	full := filepath.Join(w.cfg.Target, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", rel, err)
	}
	if err := os.WriteFile(full, u.Source, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", rel, err)
	}
	if cache != nil {
		cache.Put(rel, u.Source)
	}

	w.mu.Lock()
	w.metrics.FilesGenerated++
	w.metrics.TotalBytes += int64(len(u.Source))
	w.mu.Unlock()
	return nil
}

// Generate is a convenience function running a single pass with cfg.
func Generate(ctx context.Context, cfg *Config, repos []*Repository) (*Report, error) {
	return NewWriter(cfg).Write(ctx, repos)
}
