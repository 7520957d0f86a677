package usecase

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"market_dashboard/internal/feature/dashboard/domain/entity"
)

// mockBriefFetcher はBriefFetcherインターフェースのモック実装です。
type mockBriefFetcher struct {
	mu        sync.Mutex
	FetchFunc func(ctx context.Context) (entity.Brief, error)
	calls     atomic.Int32
}

func (m *mockBriefFetcher) FetchBrief(ctx context.Context) (entity.Brief, error) {
	m.calls.Add(1)
	m.mu.Lock()
	fn := m.FetchFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx)
	}
	return entity.Brief{}, errors.New("FetchFunc is not implemented")
}

func (m *mockBriefFetcher) set(fn func(ctx context.Context) (entity.Brief, error)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FetchFunc = fn
}

func briefWith(symbols ...string) entity.Brief {
	b := entity.EmptyBrief()
	for _, s := range symbols {
		b.Quotes = append(b.Quotes, entity.Quote{Symbol: s, IsUp: true})
	}
	b.News = append(b.News, entity.NewsItem{ID: "news-0", Title: "headline"})
	return b
}

var fixedNow = time.Date(2025, 1, 15, 8, 0, 0, 0, time.UTC)

func newTestController(f BriefFetcher) *RefreshController {
	c := NewRefreshController(f, 0, "")
	c.now = func() time.Time { return fixedNow }
	return c
}

func TestNewRefreshController_Defaults(t *testing.T) {
	t.Parallel()

	c := NewRefreshController(&mockBriefFetcher{}, 0, "")

	assert.Equal(t, DefaultRefreshInterval, c.Interval())
	assert.Equal(t, DefaultFailureMessage, c.failureMessage)

	s := c.Snapshot()
	assert.Equal(t, entity.StatusIdle, s.Status())
	assert.NotNil(t, s.Quotes)
	assert.NotNil(t, s.News)
	assert.NotNil(t, s.Events)
	assert.Nil(t, s.LastUpdated)
}

func TestRefreshController_Refresh_Success(t *testing.T) {
	t.Parallel()

	f := &mockBriefFetcher{FetchFunc: func(ctx context.Context) (entity.Brief, error) {
		return briefWith("000001.SS", "BTC-USD"), nil
	}}
	c := newTestController(f)

	require.NoError(t, c.Refresh(context.Background()))

	s := c.Snapshot()
	assert.Equal(t, entity.StatusIdle, s.Status())
	assert.False(t, s.Loading)
	assert.Empty(t, s.Error)
	assert.Len(t, s.Quotes, 2)
	require.NotNil(t, s.LastUpdated)
	assert.Equal(t, fixedNow, *s.LastUpdated)
	assert.NotNil(t, s.Events)
}

func TestRefreshController_FailureKeepsPreviousCollections(t *testing.T) {
	t.Parallel()

	f := &mockBriefFetcher{FetchFunc: func(ctx context.Context) (entity.Brief, error) {
		return briefWith("^VIX"), nil
	}}
	c := newTestController(f)
	require.NoError(t, c.Refresh(context.Background()))
	before := c.Snapshot()

	tests := []struct {
		name        string
		err         error
		expectedMsg string
	}{
		{
			name:        "transport failure surfaces verbatim",
			err:         errors.New("gemini API request failed: 429 RESOURCE_EXHAUSTED"),
			expectedMsg: "gemini API request failed: 429 RESOURCE_EXHAUSTED",
		},
		{
			name:        "ingestion failure surfaces generic message",
			err:         &IngestionError{Cause: ErrNoPayload},
			expectedMsg: DefaultFailureMessage,
		},
	}

	for _, tt := range tests {
		f.set(func(ctx context.Context) (entity.Brief, error) { return entity.Brief{}, tt.err })

		require.NoError(t, c.Refresh(context.Background()), tt.name)

		s := c.Snapshot()
		assert.Equal(t, entity.StatusError, s.Status(), tt.name)
		assert.Equal(t, tt.expectedMsg, s.Error, tt.name)
		assert.False(t, s.Loading, tt.name)
		assert.Equal(t, before.Brief, s.Brief, tt.name)
		assert.Equal(t, before.LastUpdated, s.LastUpdated, tt.name)
	}
}

func TestRefreshController_SuccessClearsError(t *testing.T) {
	t.Parallel()

	f := &mockBriefFetcher{FetchFunc: func(ctx context.Context) (entity.Brief, error) {
		return entity.Brief{}, errors.New("network unreachable")
	}}
	c := newTestController(f)

	require.NoError(t, c.Refresh(context.Background()))
	s := c.Snapshot()
	assert.Equal(t, "network unreachable", s.Error)
	assert.Empty(t, s.Quotes)
	assert.NotNil(t, s.Quotes)

	f.set(func(ctx context.Context) (entity.Brief, error) { return briefWith("GC=F"), nil })
	require.NoError(t, c.Refresh(context.Background()))

	s = c.Snapshot()
	assert.Empty(t, s.Error)
	assert.Equal(t, entity.StatusIdle, s.Status())
	require.Len(t, s.Quotes, 1)
	assert.Equal(t, "GC=F", s.Quotes[0].Symbol)
}

func TestRefreshController_NilCollectionsFromFetcherBecomeEmpty(t *testing.T) {
	t.Parallel()

	f := &mockBriefFetcher{FetchFunc: func(ctx context.Context) (entity.Brief, error) {
		return entity.Brief{}, nil
	}}
	c := newTestController(f)
	require.NoError(t, c.Refresh(context.Background()))

	s := c.Snapshot()
	assert.NotNil(t, s.Quotes)
	assert.NotNil(t, s.News)
	assert.NotNil(t, s.Events)
}

func TestRefreshController_NoOverlappingCycles(t *testing.T) {
	t.Parallel()

	entered := make(chan struct{})
	release := make(chan struct{})
	f := &mockBriefFetcher{FetchFunc: func(ctx context.Context) (entity.Brief, error) {
		entered <- struct{}{}
		<-release
		return briefWith("CNY=X"), nil
	}}
	c := newTestController(f)

	require.True(t, c.Trigger())
	<-entered

	assert.True(t, c.Snapshot().Loading)
	assert.Equal(t, entity.StatusLoading, c.Snapshot().Status())
	assert.False(t, c.Trigger(), "manual trigger while loading must be a no-op")
	assert.ErrorIs(t, c.Refresh(context.Background()), ErrRefreshInProgress)
	assert.Equal(t, int32(1), f.calls.Load())

	close(release)
	assert.Eventually(t, func() bool { return !c.Snapshot().Loading }, time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(1), f.calls.Load())
	assert.Len(t, c.Snapshot().Quotes, 1)
}

func TestRefreshController_StartAndStop(t *testing.T) {
	t.Parallel()

	f := &mockBriefFetcher{FetchFunc: func(ctx context.Context) (entity.Brief, error) {
		return briefWith("399001.SZ"), nil
	}}
	c := NewRefreshController(f, 20*time.Millisecond, "")

	c.Start(context.Background())
	c.Start(context.Background()) // 二重起動しない

	assert.Eventually(t, func() bool { return f.calls.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)

	c.Stop()
	c.Stop()
	// 停止時点で実行中だったサイクルの完了を待つ
	assert.Eventually(t, func() bool { return !c.Snapshot().Loading }, time.Second, 5*time.Millisecond)

	after := f.calls.Load()
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, after, f.calls.Load(), "no polls after Stop")
}

func TestRefreshController_StopDoesNotCancelInFlightCycle(t *testing.T) {
	t.Parallel()

	entered := make(chan struct{}, 1)
	release := make(chan struct{})
	var ctxErr atomic.Value
	f := &mockBriefFetcher{FetchFunc: func(ctx context.Context) (entity.Brief, error) {
		entered <- struct{}{}
		<-release
		if err := ctx.Err(); err != nil {
			ctxErr.Store(err)
		}
		return briefWith("BTC-USD"), nil
	}}
	c := NewRefreshController(f, time.Hour, "")

	c.Start(context.Background())
	<-entered
	c.Stop()
	close(release)

	assert.Eventually(t, func() bool { return len(c.Snapshot().Quotes) == 1 }, time.Second, 5*time.Millisecond)
	assert.Nil(t, ctxErr.Load())
}

func TestRefreshController_SnapshotIsACopy(t *testing.T) {
	t.Parallel()

	f := &mockBriefFetcher{FetchFunc: func(ctx context.Context) (entity.Brief, error) {
		return briefWith("A"), nil
	}}
	c := newTestController(f)
	require.NoError(t, c.Refresh(context.Background()))

	s := c.Snapshot()
	s.Quotes[0].Symbol = "mutated"
	*s.LastUpdated = time.Time{}

	fresh := c.Snapshot()
	assert.Equal(t, "A", fresh.Quotes[0].Symbol)
	assert.Equal(t, fixedNow, *fresh.LastUpdated)
}
