package tbo

import (
	"context"
	"fmt"
	"time"
)

// Operation records a mutating CLI command (import, clear, archive restore)
// so `tbo history` can show what replaced the store and when.
type Operation struct {
	ID         int64
	Operation  string
	Parameters string
	Status     string // "running", "success" or "error"
	StartedAt  time.Time
	FinishedAt *time.Time
}

// GetHistory returns the most recent operations, newest first.
func (s *TBOService) GetHistory(ctx context.Context, limit int) ([]*Operation, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	ops, err := s.database.ListOperations(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("listing operations: %w", ensureKind("listing operations", err))
	}
	return ops, nil
}
