package sources

import (
	"context"
	"time"

	"github.com/wavelength-fm/kiosk/internal/container"
)

// ClockReading is the clock container's snapshot.
type ClockReading struct {
	Time time.Time
}

// Display formats the reading for the clock window.
func (c ClockReading) Display() string {
	return c.Time.Format("3:04:05 PM")
}

// DateDisplay formats the reading's date line.
func (c ClockReading) DateDisplay() string {
	return c.Time.Format("Monday, January 2")
}

// ClockFetcher builds the local-clock fetch function. now is injectable for
// tests; pass nil for wall-clock time.
func ClockFetcher(now func() time.Time) container.Fetcher[ClockReading] {
	if now == nil {
		now = time.Now
	}
	return func(ctx context.Context) (ClockReading, error) {
		return ClockReading{Time: now()}, nil
	}
}
