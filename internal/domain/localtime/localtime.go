package localtime

import (
	"fmt"
	"time"

	"troffee-admin-console/internal/domain/shared"
)

// Layout is the wall-clock format used by datetime-local form inputs.
const Layout = "2006-01-02T15:04"

// Converter translates between wall-clock strings in a fixed display timezone and
// absolute instants. The zero value is not usable, use NewConverter.
type Converter struct {
	loc *time.Location
}

// NewConverter creates a converter for the given display location. A nil location
// falls back to UTC.
func NewConverter(loc *time.Location) *Converter {
	if loc == nil {
		loc = time.UTC
	}
	return &Converter{loc: loc}
}

// Location returns the display location
func (c *Converter) Location() *time.Location {
	return c.loc
}

// ToAbsoluteInstant interprets s as wall-clock time in the converter's location and
// returns the same instant in UTC.
//
// Wall times that do not exist or repeat around a DST transition are resolved the way
// the time package does; no disambiguation is attempted.
func (c *Converter) ToAbsoluteInstant(s string) (time.Time, error) {
	t, err := time.ParseInLocation(Layout, s, c.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", shared.ErrInvalidDateTime, s)
	}
	return t.UTC(), nil
}

// ToLocalDateTimeString renders t in the converter's location, truncated to the minute.
func (c *Converter) ToLocalDateTimeString(t time.Time) string {
	return t.In(c.loc).Format(Layout)
}

// FormatInstant renders t as RFC 3339 in UTC, the format the backend expects.
func FormatInstant(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// LoadLocation resolves a timezone name from configuration. "Local" and the empty
// string map to the process timezone.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" || name == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", name, err)
	}
	return loc, nil
}
