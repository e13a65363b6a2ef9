// Package history provides best-effort auditing of completed role asks.
package history

import (
	"context"
	"time"

	"colloquy/dialogue-api/internal/domain/query"
)

// Record is one persisted prompt/response exchange. Response holds the raw
// completion text as returned by the backend, not any parsed structure.
type Record struct {
	ID        string    `json:"id"`
	Username  string    `json:"user"`
	RoleName  string    `json:"role"`
	Prompt    string    `json:"prompt"`
	Response  string    `json:"response"`
	CreatedAt time.Time `json:"created_at"`
}

// Filter contains filter options for querying history records.
type Filter struct {
	Username *string
	RoleName *string
}

// Repository defines storage operations for history records. FindByFilter
// returns records newest-first. DeleteAll reports how many rows it removed.
type Repository interface {
	Create(ctx context.Context, record *Record) error
	FindByFilter(ctx context.Context, filter Filter, p *query.Pagination) ([]*Record, error)
	Count(ctx context.Context, filter Filter) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
}
