package adapters

import (
	"time"

	"github.com/ledgerkeep/backend/internal/application/adapter"
	"github.com/ledgerkeep/backend/internal/domain/entity"
)

// systemClock implements the adapter.Clock interface on the wall clock.
type systemClock struct{}

// NewSystemClock creates a new system clock instance.
func NewSystemClock() adapter.Clock {
	return systemClock{}
}

// Now returns the current UTC time.
func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

// Today returns the current UTC date truncated to day granularity.
func (systemClock) Today() time.Time {
	return entity.DateOnly(time.Now().UTC())
}
