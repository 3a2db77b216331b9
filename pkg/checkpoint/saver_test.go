package checkpoint

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knowater521/Neuraxle/pkg/data"
	"github.com/knowater521/Neuraxle/pkg/pipeline"
)

// failingStore rejects every write.
type failingStore struct {
	MemoryStore
	saveErr error
}

func (s *failingStore) Save(ctx context.Context, key string, value []byte) error {
	return s.saveErr
}

func TestSaverSnapshotsContainer(t *testing.T) {
	store := NewMemoryStore()
	saver := NewSaver(store)
	dc := data.New([]any{1.0, 2.0}, []any{10.0, 20.0})

	assert.Empty(t, saver.LastKey())

	out, err := saver.Transform(context.Background(), dc, pipeline.NewExecutionContext())
	require.NoError(t, err)
	assert.Same(t, dc, out, "saver must pass the container through")

	key := saver.LastKey()
	require.NotEmpty(t, key)
	assert.True(t, strings.HasPrefix(key, "checkpoint:"+dc.SummaryID))

	loaded, err := saver.Load(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, dc.SummaryID, loaded.SummaryID)
	assert.Equal(t, dc.DataInputs, loaded.DataInputs)
	assert.Equal(t, dc.ExpectedOutputs, loaded.ExpectedOutputs)
}

func TestSaverKeepsSnapshotPerPass(t *testing.T) {
	store := NewMemoryStore()
	saver := NewSaver(store)
	dc := data.New([]any{1.0, 2.0}, nil)

	// Container copies share the summary ID, the way each training
	// epoch sees a copy of the same container. Every pass must keep
	// its own snapshot rather than overwrite the previous one.
	for epoch := 1; epoch <= 5; epoch++ {
		_, err := saver.Transform(context.Background(), dc.Copy(), pipeline.NewExecutionContext())
		require.NoError(t, err)
	}

	assert.Equal(t, 5, store.Len())
}

func TestSaversWithDistinctNamesDoNotCollide(t *testing.T) {
	store := NewMemoryStore()
	before := NewSaverWithConfig(store, SaverConfig{Name: "before-model"})
	after := NewSaverWithConfig(store, SaverConfig{Name: "after-model"})
	dc := data.New([]any{1.0}, nil)

	_, err := before.Transform(context.Background(), dc, pipeline.NewExecutionContext())
	require.NoError(t, err)
	_, err = after.Transform(context.Background(), dc, pipeline.NewExecutionContext())
	require.NoError(t, err)

	assert.Equal(t, 2, store.Len())
	assert.NotEqual(t, before.LastKey(), after.LastKey())
}

func TestSaverLoadMissing(t *testing.T) {
	saver := NewSaver(NewMemoryStore())

	_, err := saver.Load(context.Background(), "no-such-key")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaverStoreFailure(t *testing.T) {
	sentinel := errors.New("disk full")
	saver := NewSaver(&failingStore{saveErr: sentinel})
	dc := data.New([]any{1.0}, nil)

	_, err := saver.Transform(context.Background(), dc, pipeline.NewExecutionContext())
	assert.ErrorIs(t, err, sentinel)
	assert.Empty(t, saver.LastKey(), "a failed save must not record a key")
}

func TestSaverEncodeFailure(t *testing.T) {
	saver := NewSaver(NewMemoryStore())
	dc := data.New([]any{make(chan int)}, nil)

	_, err := saver.Transform(context.Background(), dc, pipeline.NewExecutionContext())
	assert.ErrorIs(t, err, ErrUnsupportedValue)
}

func TestSaverCustomName(t *testing.T) {
	saver := NewSaverWithConfig(NewMemoryStore(), SaverConfig{Name: "after-shuffle"})
	assert.Equal(t, "after-shuffle", saver.Name())
	assert.Equal(t, "checkpoint", NewSaver(NewMemoryStore()).Name())
}

func TestSaverPanicsOnNilStore(t *testing.T) {
	assert.Panics(t, func() { NewSaver(nil) })
}

func TestSaverInsidePipeline(t *testing.T) {
	store := NewMemoryStore()
	p := pipeline.New("checkpointed", NewSaver(store))
	dc := data.New([]any{1.0}, nil)

	_, err := p.Transform(context.Background(), dc, pipeline.NewExecutionContext())
	require.NoError(t, err)
	assert.Equal(t, 1, store.Len())
}
