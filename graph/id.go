package graph

import (
	"fmt"

	"github.com/google/uuid"
)

// IDGenerator produces candidate IDs for new nodes. The graph keeps asking until
// it gets one that is not in use, so a generator only has to make progress.
type IDGenerator interface {
	// Next returns a candidate ID given the current node count and attempt number.
	Next(count, attempt int) string
}

// Sequential names nodes "<Prefix> N" where N starts at count+1. Later
// attempts move N forward so a gap left by a removal never produces a
// duplicate.
type Sequential struct {
	Prefix string
}

// Next implements IDGenerator.
func (s Sequential) Next(count, attempt int) string {
	prefix := s.Prefix
	if prefix == "" {
		prefix = "Task"
	}
	return fmt.Sprintf("%s %d", prefix, count+1+attempt)
}

// UUIDs names nodes with random UUIDs.
type UUIDs struct{}

// Next implements IDGenerator.
func (UUIDs) Next(int, int) string {
	return uuid.NewString()
}
