package menu

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockFetcher struct {
	mu    sync.Mutex
	calls int
	menu  *Menu
	err   error
}

func (m *mockFetcher) FetchMenu(context.Context, string) (*Menu, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.menu, nil
}

type mockCache struct {
	mu     sync.Mutex
	menu   *Menu
	getErr error
	setErr error
}

func (m *mockCache) Get(context.Context, string) (*Menu, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.menu == nil {
		return nil, ErrCacheMiss
	}
	return m.menu, nil
}

func (m *mockCache) Set(_ context.Context, _ string, menu *Menu) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.menu = menu
	return nil
}

func (m *mockCache) Delete(context.Context, string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.menu = nil
	return nil
}

func (m *mockCache) cached() *Menu {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.menu
}

func testMenu() *Menu {
	return &Menu{RestaurantID: "r1", Items: []Item{{ID: "burger"}}}
}

func TestService_CacheHitSkipsFetch(t *testing.T) {
	fetcher := &mockFetcher{menu: testMenu()}
	cache := &mockCache{menu: testMenu()}
	svc := NewService(fetcher, cache)

	m, err := svc.GetMenu(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, "r1", m.RestaurantID)
	assert.Equal(t, 0, fetcher.calls)
}

func TestService_CacheMissFetchesAndBackfills(t *testing.T) {
	fetcher := &mockFetcher{menu: testMenu()}
	cache := &mockCache{}
	svc := NewService(fetcher, cache)

	m, err := svc.GetMenu(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, "r1", m.RestaurantID)
	assert.Equal(t, 1, fetcher.calls)

	// cache set happens asynchronously
	assert.Eventually(t, func() bool {
		return cache.cached() != nil
	}, time.Second, 10*time.Millisecond)
}

func TestService_CacheFailureFallsThroughToSource(t *testing.T) {
	fetcher := &mockFetcher{menu: testMenu()}
	cache := &mockCache{getErr: errors.New("redis down")}
	svc := NewService(fetcher, cache)

	m, err := svc.GetMenu(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, "r1", m.RestaurantID)
	assert.Equal(t, 1, fetcher.calls)
}

func TestService_FetchErrorPropagates(t *testing.T) {
	wantErr := errors.New("backend unavailable")
	fetcher := &mockFetcher{err: wantErr}
	svc := NewService(fetcher, &mockCache{})

	_, err := svc.GetMenu(context.Background(), "r1")
	assert.ErrorIs(t, err, wantErr)
}

func TestService_Invalidate(t *testing.T) {
	cache := &mockCache{menu: testMenu()}
	svc := NewService(&mockFetcher{menu: testMenu()}, cache)

	svc.Invalidate(context.Background(), "r1")
	assert.Nil(t, cache.cached())
}
