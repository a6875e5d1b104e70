package menu

import (
	"context"
	"errors"
	"log"

	"golang.org/x/sync/singleflight"
)

// Service fronts the menu source with a cache. Cache failures are logged
// and fall through to the source; they never fail a request.
type Service struct {
	fetcher Fetcher
	cache   MenuCache
	sfg     singleflight.Group // Prevents cache stampede
}

func NewService(fetcher Fetcher, cache MenuCache) *Service {
	return &Service{
		fetcher: fetcher,
		cache:   cache,
	}
}

func (s *Service) GetMenu(ctx context.Context, restaurantID string) (*Menu, error) {
	// Use singleflight so concurrent misses for the same restaurant hit
	// the backend once.
	v, err, _ := s.sfg.Do(restaurantID, func() (interface{}, error) {
		m, err := s.cache.Get(ctx, restaurantID)
		if err == nil {
			return m, nil
		}

		if !errors.Is(err, ErrCacheMiss) {
			log.Printf("menu cache get error: %v", err)
		}

		m, errFetch := s.fetcher.FetchMenu(ctx, restaurantID)
		if errFetch != nil {
			return nil, errFetch
		}

		go func() {
			if errSet := s.cache.Set(context.Background(), restaurantID, m); errSet != nil {
				log.Printf("menu cache set error: %v", errSet)
			}
		}()

		return m, nil
	})

	if err != nil {
		return nil, err
	}

	return v.(*Menu), nil
}

// Invalidate drops the cached menu, e.g. after the restaurant updates it.
func (s *Service) Invalidate(ctx context.Context, restaurantID string) {
	if err := s.cache.Delete(ctx, restaurantID); err != nil {
		log.Printf("menu cache invalidate error: %v", err)
	}
}
