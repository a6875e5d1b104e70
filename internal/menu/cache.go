package menu

import (
	"context"
	"errors"
)

type MenuCache interface {
	Get(ctx context.Context, restaurantID string) (*Menu, error)
	Set(ctx context.Context, restaurantID string, menu *Menu) error
	Delete(ctx context.Context, restaurantID string) error
}

var ErrCacheMiss = errors.New("cache miss")
