package contextcache_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/waypoint/internal/core/domain"
	"go.trai.ch/waypoint/internal/engine/contextcache"
)

func steppingClock(start time.Time) func() time.Time {
	n := 0
	return func() time.Time {
		n++
		return start.Add(time.Duration(n) * time.Minute)
	}
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

type countingRecorder struct {
	evicted int
	calls   int
}

func (r *countingRecorder) Evicted(n int) {
	r.evicted += n
	r.calls++
}

func payload(title string) *domain.ContextPayload {
	return &domain.ContextPayload{
		Progress:   &domain.ProgressData{Step: 1},
		Definition: &domain.DefinitionData{Title: title},
	}
}

func questID(i int) domain.QuestID {
	return domain.QuestID(fmt.Sprintf("quest-%02d", i))
}

func TestCache_SetContext(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	c := contextcache.New(contextcache.WithClock(fixedClock(now)))

	c.SetLoading("q1", true)
	c.SetContext("q1", payload("Lost Sword"))

	qc, ok := c.Context("q1")
	require.True(t, ok)
	require.NotNil(t, qc)
	assert.Equal(t, "Lost Sword", qc.Definition.Title)
	assert.Equal(t, 1, qc.Progress.Step)
	assert.Equal(t, now, qc.LastFetched)
	assert.False(t, c.Loading("q1"))
	assert.Empty(t, c.Error("q1"))
}

func TestCache_SetContext_ClearsError(t *testing.T) {
	c := contextcache.New()

	c.SetError("q1", "boom")
	c.SetContext("q1", payload("x"))

	assert.Empty(t, c.Error("q1"))
	assert.False(t, c.Loading("q1"))
}

func TestCache_SetContext_RefreshesFetchTime(t *testing.T) {
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	c := contextcache.New(contextcache.WithClock(steppingClock(start)))

	c.SetContext("q1", payload("x"))
	first, _ := c.Context("q1")
	c.SetContext("q1", payload("y"))
	second, _ := c.Context("q1")

	assert.True(t, second.LastFetched.After(first.LastFetched))
	assert.Equal(t, "y", second.Definition.Title)
	assert.Equal(t, 1, c.Len())
}

func TestCache_SetContext_NilPayloadStoresNullContext(t *testing.T) {
	c := contextcache.New()

	c.SetContext("q1", nil)

	qc, ok := c.Context("q1")
	assert.True(t, ok)
	assert.Nil(t, qc)
	assert.Equal(t, 1, c.Len())
}

func TestCache_LoadingErrorExclusivity(t *testing.T) {
	c := contextcache.New()

	c.SetLoading("Q", true)
	c.SetError("Q", "boom")
	assert.False(t, c.Loading("Q"))
	assert.Equal(t, "boom", c.Error("Q"))

	c.SetLoading("Q", true)
	assert.Empty(t, c.Error("Q"))
	assert.True(t, c.Loading("Q"))
}

func TestCache_SetLoadingFalseKeepsError(t *testing.T) {
	c := contextcache.New()

	c.SetError("Q", "boom")
	c.SetLoading("Q", false)

	assert.Equal(t, "boom", c.Error("Q"))
}

func TestCache_BoundedEviction(t *testing.T) {
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	rec := &countingRecorder{}
	c := contextcache.New(
		contextcache.WithClock(steppingClock(start)),
		contextcache.WithRecorder(rec),
	)
	require.Equal(t, 30, c.Max())

	for i := range 31 {
		c.SetLoading(questID(i), true)
		c.SetContext(questID(i), payload("q"))
	}

	assert.Equal(t, 30, c.Len())
	_, ok := c.Context(questID(0))
	assert.False(t, ok, "oldest context must be evicted")
	assert.Equal(t, contextcache.Entry{}, c.Lookup(questID(0)))
	for i := 1; i < 31; i++ {
		_, ok := c.Context(questID(i))
		assert.True(t, ok, "quest %d should remain", i)
	}
	assert.Equal(t, 1, rec.evicted)
	assert.Equal(t, 1, rec.calls)
}

func TestCache_EvictionRemovesLoadingAndError(t *testing.T) {
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	c := contextcache.New(contextcache.WithMax(2), contextcache.WithClock(steppingClock(start)))

	c.SetContext("a", payload("a"))
	c.SetContext("b", payload("b"))
	c.SetError("a", "stale")
	c.SetContext("c", payload("c"))

	assert.Equal(t, []domain.QuestID{"b", "c"}, c.IDs())
	assert.Empty(t, c.Error("a"))
	assert.False(t, c.Loading("a"))
}

func TestCache_EvictionOrderFollowsFetchTime(t *testing.T) {
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	c := contextcache.New(contextcache.WithMax(2), contextcache.WithClock(steppingClock(start)))

	c.SetContext("a", payload("a"))
	c.SetContext("b", payload("b"))
	// refreshing a makes b the oldest
	c.SetContext("a", payload("a2"))
	c.SetContext("c", payload("c"))

	assert.Equal(t, []domain.QuestID{"a", "c"}, c.IDs())
}

func TestCache_EvictionTiesRemoveExactlyOverflow(t *testing.T) {
	same := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	c := contextcache.New(contextcache.WithMax(3), contextcache.WithClock(fixedClock(same)))

	for i := range 5 {
		c.SetContext(questID(i), payload("q"))
	}

	assert.Equal(t, 3, c.Len())
}

func TestCache_EvictionSkipsNullContexts(t *testing.T) {
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	c := contextcache.New(contextcache.WithMax(2), contextcache.WithClock(steppingClock(start)))

	c.SetContext("null-1", nil)
	c.SetContext("null-2", nil)
	c.SetContext("a", payload("a"))

	assert.Equal(t, []domain.QuestID{"null-1", "null-2"}, c.IDs())

	c.SetContext("null-3", nil)
	assert.Equal(t, 3, c.Len(), "null contexts are never eviction candidates")
}

func TestCache_WithMax(t *testing.T) {
	tests := []struct {
		name string
		max  int
		want int
	}{
		{name: "custom", max: 5, want: 5},
		{name: "zero falls back", max: 0, want: domain.DefaultContextCacheMax},
		{name: "negative falls back", max: -3, want: domain.DefaultContextCacheMax},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := contextcache.New(contextcache.WithMax(tt.max))
			assert.Equal(t, tt.want, c.Max())
		})
	}
}

func TestCache_Clear(t *testing.T) {
	c := contextcache.New()
	c.SetContext("q1", payload("x"))
	c.SetContext("q2", payload("y"))
	c.SetError("q1", "boom")

	c.Clear("q1")
	c.Clear("unknown")

	_, ok := c.Context("q1")
	assert.False(t, ok)
	assert.Empty(t, c.Error("q1"))
	assert.Equal(t, []domain.QuestID{"q2"}, c.IDs())
}

func TestCache_ResetAll(t *testing.T) {
	c := contextcache.New()
	c.SetContext("q1", payload("x"))
	c.SetLoading("q2", true)
	c.SetError("q3", "boom")

	c.ResetAll()

	assert.Equal(t, 0, c.Len())
	assert.False(t, c.Loading("q2"))
	assert.Empty(t, c.Error("q3"))
}

func TestCache_ContextReturnsCopy(t *testing.T) {
	c := contextcache.New()
	c.SetContext("q1", payload("x"))

	qc, _ := c.Context("q1")
	qc.LastFetched = time.Time{}

	again, _ := c.Context("q1")
	assert.False(t, again.LastFetched.IsZero())
}

func TestCache_Lookup(t *testing.T) {
	c := contextcache.New()
	c.SetLoading("q1", true)

	e := c.Lookup("q1")
	assert.True(t, e.Loading)
	assert.Nil(t, e.Context)
	assert.Empty(t, e.Error)
}
