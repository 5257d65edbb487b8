package retail

import (
	"errors"
	"fmt"
	"time"
)

// Domain errors
var (
	// ErrInvalidDateRange marks a filter whose From date falls after its To
	// date. Reported, never fatal: the pipeline keeps the given bounds.
	ErrInvalidDateRange = errors.New("from date must not be after to date")

	// ErrUnknownKPI marks a metric selector the dashboard does not offer.
	ErrUnknownKPI = errors.New("unknown KPI")
)

// DateRangeError carries the offending bounds for display
type DateRangeError struct {
	From time.Time
	To   time.Time
}

func (e *DateRangeError) Error() string {
	return fmt.Sprintf("%v: %s > %s", ErrInvalidDateRange,
		e.From.Format("2006-01-02"), e.To.Format("2006-01-02"))
}

func (e *DateRangeError) Unwrap() error {
	return ErrInvalidDateRange
}

// IsDateRangeError checks whether err is the inverted-range validation error
func IsDateRangeError(err error) bool {
	return errors.Is(err, ErrInvalidDateRange)
}
