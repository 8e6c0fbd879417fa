package store

import (
	"context"
	"encoding/json"
	"errors"
)

var ErrNotFound = errors.New("plan not found")

// PlanStore persists generated trip plans as JSON documents keyed by ID.
type PlanStore interface {
	Save(ctx context.Context, id string, plan json.RawMessage) error
	Get(ctx context.Context, id string) (json.RawMessage, error)
	Close()
}
