package checkpoint

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/knowater521/Neuraxle/pkg/data"
	"github.com/knowater521/Neuraxle/pkg/metrics"
	"github.com/knowater521/Neuraxle/pkg/pipeline"
)

// SaverConfig holds Saver configuration options.
type SaverConfig struct {
	// Name labels this saver in step names, snapshot keys and metrics
	// (defaults to "checkpoint").
	Name string

	// Metrics enables Prometheus instrumentation when non-nil.
	Metrics *metrics.Registry
}

// Saver is a pass-through pipeline step that persists every container it
// transforms. Snapshots are keyed by the saver name, the container's
// summary ID and a per-save sequence number, so repeated passes over the
// same container (one per training epoch, say) each keep their own
// snapshot and two savers in one pipeline never collide. The container
// itself is never altered; store failures are returned to the pipeline.
type Saver struct {
	pipeline.NonFittable

	store  Store
	config SaverConfig

	mu      sync.Mutex
	seq     uint64
	lastKey string
}

// NewSaver creates a saver step writing to the given store. Panics if
// store is nil.
func NewSaver(store Store) *Saver {
	return NewSaverWithConfig(store, SaverConfig{})
}

// NewSaverWithConfig creates a saver with the given configuration.
// Panics if store is nil.
func NewSaverWithConfig(store Store, config SaverConfig) *Saver {
	if store == nil {
		panic("checkpoint saver: store cannot be nil")
	}
	if config.Name == "" {
		config.Name = "checkpoint"
	}
	return &Saver{store: store, config: config}
}

// Name returns the step name.
func (s *Saver) Name() string {
	return s.config.Name
}

// LastKey returns the key of the most recent snapshot, or "" if this
// saver has not saved anything yet.
func (s *Saver) LastKey() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastKey
}

// Transform snapshots the container into the store and returns it
// unchanged. Each save gets a fresh key; use LastKey to find it.
func (s *Saver) Transform(ctx context.Context, dc *data.Container, ec *pipeline.ExecutionContext) (*data.Container, error) {
	encoded, err := Encode(dc)
	if err != nil {
		s.countError()
		return nil, fmt.Errorf("checkpoint %s: %w", s.config.Name, err)
	}

	key := s.nextKey(dc.SummaryID)
	if err := s.store.Save(ctx, key, encoded); err != nil {
		s.countError()
		return nil, fmt.Errorf("checkpoint %s: %w", s.config.Name, err)
	}

	s.mu.Lock()
	s.lastKey = key
	s.mu.Unlock()

	if reg := s.config.Metrics; reg != nil {
		reg.CheckpointSaves.WithLabelValues(s.config.Name).Inc()
		reg.CheckpointBytes.WithLabelValues(s.config.Name).Add(float64(len(encoded)))
	}
	ec.Logger.Debug().
		Str("checkpoint", s.config.Name).
		Str("key", key).
		Int("bytes", len(encoded)).
		Msg("container snapshot saved")

	return dc, nil
}

// Load fetches a snapshot back by its key.
func (s *Saver) Load(ctx context.Context, key string) (*data.Container, error) {
	encoded, err := s.store.Load(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.countError()
		}
		return nil, err
	}

	dc, err := Decode(encoded)
	if err != nil {
		s.countError()
		return nil, fmt.Errorf("checkpoint %s: %w", s.config.Name, err)
	}

	if reg := s.config.Metrics; reg != nil {
		reg.CheckpointLoads.WithLabelValues(s.config.Name).Inc()
	}
	return dc, nil
}

// nextKey builds the snapshot key for one save.
func (s *Saver) nextKey(summaryID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return fmt.Sprintf("%s:%s:%d", s.config.Name, summaryID, s.seq)
}

func (s *Saver) countError() {
	if reg := s.config.Metrics; reg != nil {
		reg.CheckpointErrors.WithLabelValues(s.config.Name).Inc()
	}
}
