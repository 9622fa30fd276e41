package service

import (
	"context"
	"errors"
)

// ErrNotOwner is returned when an entity exists but belongs to another user.
var ErrNotOwner = errors.New("caller does not own this entity")

// requireOwner loads an entity and verifies the caller owns it before
// handing it back. Load errors (including not-found sentinels) pass through
// unchanged; an ownership mismatch becomes ErrNotOwner. Get, update and
// delete all compose this one guard instead of repeating the three-way
// branch.
func requireOwner[T any](ctx context.Context, load func(context.Context) (T, error), ownerOf func(T) int64, caller int64) (T, error) {
	entity, err := load(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	if ownerOf(entity) != caller {
		var zero T
		return zero, ErrNotOwner
	}

	return entity, nil
}
