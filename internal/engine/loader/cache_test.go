package loader_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/waypoint/internal/core/domain"
	"go.trai.ch/waypoint/internal/core/ports/mocks"
	"go.trai.ch/waypoint/internal/engine/loader"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

// countingLoad returns a Load that blocks until release is closed and counts its calls.
func countingLoad(calls *atomic.Int32, release <-chan struct{}, value string, err error) loader.Load[string] {
	return func(_ context.Context) (string, error) {
		calls.Add(1)
		<-release
		return value, err
	}
}

func lookupOf(loads map[string]loader.Load[string]) loader.Lookup[string, string] {
	return func(key string) (loader.Load[string], bool) {
		l, ok := loads[key]
		return l, ok
	}
}

func TestCache_GetOrLoad_SharesPendingFuture(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	cache := loader.New(lookupOf(map[string]loader.Load[string]{
		"A": countingLoad(&calls, release, "bundle-A", nil),
	}))

	first := cache.GetOrLoad(context.Background(), "A")
	second := cache.GetOrLoad(context.Background(), "A")

	assert.Same(t, first, second)
	assert.False(t, first.Settled())
	assert.Equal(t, loader.EntryPending, cache.State("A"))

	close(release)
	value, err := first.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "bundle-A", value)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, loader.EntrySettled, cache.State("A"))

	third := cache.GetOrLoad(context.Background(), "A")
	assert.Same(t, first, third)
	assert.Equal(t, int32(1), calls.Load())
}

func TestCache_GetOrLoad_RetriesAfterFailure(t *testing.T) {
	var calls atomic.Int32
	fail := true
	var mu sync.Mutex
	cache := loader.New(lookupOf(map[string]loader.Load[string]{
		"A": func(_ context.Context) (string, error) {
			calls.Add(1)
			mu.Lock()
			defer mu.Unlock()
			if fail {
				return "", errors.New("network down")
			}
			return "bundle-A", nil
		},
	}))

	failed := cache.GetOrLoad(context.Background(), "A")
	_, err := failed.Wait(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "network down")
	assert.Equal(t, err, failed.Err())
	assert.Equal(t, loader.EntryAbsent, cache.State("A"))

	mu.Lock()
	fail = false
	mu.Unlock()

	retried := cache.GetOrLoad(context.Background(), "A")
	assert.NotSame(t, failed, retried)

	value, err := retried.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "bundle-A", value)
	assert.Equal(t, int32(2), calls.Load())
}

func TestCache_GetOrLoad_ConcurrentCallers(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	cache := loader.New(lookupOf(map[string]loader.Load[string]{
		"A": countingLoad(&calls, release, "bundle-A", nil),
	}))

	const callers = 64
	futures := make([]*loader.Future[string], callers)
	var wg sync.WaitGroup
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			futures[i] = cache.GetOrLoad(context.Background(), "A")
		}()
	}
	wg.Wait()
	close(release)

	for _, f := range futures {
		assert.Same(t, futures[0], f)
	}
	_, err := futures[0].Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestCache_GetOrLoad_UnknownKey(t *testing.T) {
	cache := loader.New(lookupOf(map[string]loader.Load[string]{}))

	f := cache.GetOrLoad(context.Background(), "missing")

	require.True(t, f.Settled())
	require.Error(t, f.Err())
	assert.Contains(t, f.Err().Error(), domain.ErrUnknownZone.Error())
	assert.Equal(t, 0, cache.Len())
}

func TestCache_GetOrLoad_PanicSettlesFuture(t *testing.T) {
	cache := loader.New(lookupOf(map[string]loader.Load[string]{
		"A": func(_ context.Context) (string, error) {
			panic("boom")
		},
	}))

	_, err := cache.GetOrLoad(context.Background(), "A").Wait(context.Background())

	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrLoaderPanicked.Error())
	assert.Equal(t, "boom", panicValue(err))
	assert.Equal(t, loader.EntryAbsent, cache.State("A"))
}

// panicValue returns the panic metadata recorded on the loader panic in err's chain.
func panicValue(err error) any {
	for ; err != nil; err = errors.Unwrap(err) {
		var zErr *zerr.Error
		if errors.As(err, &zErr) && zErr.Message() == domain.ErrLoaderPanicked.Error() {
			return zErr.Metadata()["panic"]
		}
	}
	return nil
}

func TestCache_Wait_CallerContextDoesNotCancelLoad(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	var loadCtxErr atomic.Value
	cache := loader.New(lookupOf(map[string]loader.Load[string]{
		"A": func(ctx context.Context) (string, error) {
			calls.Add(1)
			<-release
			if err := ctx.Err(); err != nil {
				loadCtxErr.Store(err)
			}
			return "bundle-A", nil
		},
	}))

	ctx, cancel := context.WithCancel(context.Background())
	f := cache.GetOrLoad(ctx, "A")
	cancel()

	_, err := f.Wait(ctx)
	require.ErrorIs(t, err, context.Canceled)

	close(release)
	value, err := f.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "bundle-A", value)
	assert.Nil(t, loadCtxErr.Load())
}

func TestCache_Prefetch(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	close(release)
	cache := loader.New(lookupOf(map[string]loader.Load[string]{
		"A": countingLoad(&calls, release, "bundle-A", nil),
	}))

	cache.Prefetch(context.Background(), "A")
	cache.Prefetch(context.Background(), "A")

	_, err := cache.GetOrLoad(context.Background(), "A").Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, []string{"A"}, cache.Keys())
}

func TestCache_WaitIdle(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	cache := loader.New(lookupOf(map[string]loader.Load[string]{
		"A": countingLoad(&calls, release, "a", nil),
		"B": countingLoad(&calls, release, "", errors.New("boom")),
	}))

	a := cache.GetOrLoad(context.Background(), "A")
	b := cache.GetOrLoad(context.Background(), "B")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, cache.WaitIdle(ctx), context.Canceled)

	close(release)
	require.NoError(t, cache.WaitIdle(context.Background()))

	assert.True(t, a.Settled())
	assert.True(t, b.Settled())
	assert.Equal(t, []string{"A"}, cache.Keys())
}

func TestCache_EvictAndClear(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	close(release)
	cache := loader.New(lookupOf(map[string]loader.Load[string]{
		"A": countingLoad(&calls, release, "a", nil),
		"B": countingLoad(&calls, release, "b", nil),
	}))

	a := cache.GetOrLoad(context.Background(), "A")
	_ = cache.GetOrLoad(context.Background(), "B")
	assert.Equal(t, 2, cache.Len())

	assert.True(t, cache.Evict("A"))
	assert.False(t, cache.Evict("A"))
	assert.Equal(t, []string{"B"}, cache.Keys())

	reloaded := cache.GetOrLoad(context.Background(), "A")
	assert.NotSame(t, a, reloaded)

	cache.Clear()
	assert.Equal(t, 0, cache.Len())
	assert.Equal(t, loader.EntryAbsent, cache.State("B"))
}

func TestCache_EvictedPendingFailureKeepsNewEntry(t *testing.T) {
	firstRelease := make(chan struct{})
	started := make(chan struct{})
	var attempt atomic.Int32
	cache := loader.New(lookupOf(map[string]loader.Load[string]{
		"A": func(_ context.Context) (string, error) {
			if attempt.Add(1) == 1 {
				close(started)
				<-firstRelease
				return "", errors.New("stale failure")
			}
			return "fresh", nil
		},
	}))

	stale := cache.GetOrLoad(context.Background(), "A")
	<-started
	require.True(t, cache.Evict("A"))

	fresh := cache.GetOrLoad(context.Background(), "A")
	_, err := fresh.Wait(context.Background())
	require.NoError(t, err)

	close(firstRelease)
	_, err = stale.Wait(context.Background())
	require.Error(t, err)

	assert.Same(t, fresh, cache.GetOrLoad(context.Background(), "A"))
}

func TestCache_DevelopmentLogging(t *testing.T) {
	t.Run("development logs failures", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockLogger := mocks.NewMockLogger(ctrl)
		mockLogger.EXPECT().Warn(gomock.Any()).Times(1)

		cache := loader.New(lookupOf(map[string]loader.Load[string]{
			"A": func(_ context.Context) (string, error) { return "", errors.New("boom") },
		}), loader.WithLogger(mockLogger), loader.WithDevelopment(true))

		_, err := cache.GetOrLoad(context.Background(), "A").Wait(context.Background())
		require.Error(t, err)
	})

	t.Run("production stays silent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockLogger := mocks.NewMockLogger(ctrl)

		cache := loader.New(lookupOf(map[string]loader.Load[string]{
			"A": func(_ context.Context) (string, error) { return "", errors.New("boom") },
		}), loader.WithLogger(mockLogger))

		_, err := cache.GetOrLoad(context.Background(), "A").Wait(context.Background())
		require.Error(t, err)
	})
}

type countingRecorder struct {
	hits, misses, failures atomic.Int32
}

func (r *countingRecorder) Hit()     { r.hits.Add(1) }
func (r *countingRecorder) Miss()    { r.misses.Add(1) }
func (r *countingRecorder) Failure() { r.failures.Add(1) }

func TestCache_Recorder(t *testing.T) {
	rec := &countingRecorder{}
	cache := loader.New(lookupOf(map[string]loader.Load[string]{
		"ok":  func(_ context.Context) (string, error) { return "v", nil },
		"bad": func(_ context.Context) (string, error) { return "", errors.New("boom") },
	}), loader.WithRecorder(rec))

	_, _ = cache.GetOrLoad(context.Background(), "ok").Wait(context.Background())
	_, _ = cache.GetOrLoad(context.Background(), "ok").Wait(context.Background())
	_, _ = cache.GetOrLoad(context.Background(), "bad").Wait(context.Background())

	assert.Equal(t, int32(1), rec.hits.Load())
	assert.Equal(t, int32(2), rec.misses.Load())
	assert.Equal(t, int32(1), rec.failures.Load())
}

func TestNewZoneCache(t *testing.T) {
	registry := domain.NewRegistry()
	require.NoError(t, registry.Register("hub", func(_ context.Context) (*domain.Bundle, error) {
		return &domain.Bundle{Key: "hub", Size: 3}, nil
	}))

	cache := loader.NewZoneCache(registry)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	bundle, err := cache.GetOrLoad(ctx, "hub").Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ZoneKey("hub"), bundle.Key)

	_, err = cache.GetOrLoad(ctx, "nowhere").Wait(ctx)
	require.Error(t, err)
}
