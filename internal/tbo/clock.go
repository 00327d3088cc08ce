package tbo

import (
	"time"

	"github.com/google/uuid"
)

// Clock abstracts time retrieval so business logic is deterministic in tests.
type Clock interface {
	Now() time.Time
}

// RealClock returns the actual current time.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// IDGenerator abstracts unique ID generation so tests are deterministic.
type IDGenerator interface {
	New() string
}

// TimeOrderedIDGenerator produces UUIDv7 strings: a millisecond timestamp
// prefix followed by random bits, so ids sort roughly by creation time.
type TimeOrderedIDGenerator struct{}

func (TimeOrderedIDGenerator) New() string {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails when the random source does.
		return uuid.New().String()
	}
	return id.String()
}
