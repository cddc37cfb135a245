// Package displaytz converts stored UTC timestamps into the fixed
// display timezone at the serialization boundary. It must never be used
// for storage, comparisons or sorting; those stay in UTC.
package displaytz

import "time"

// DefaultZone is used when no display timezone is configured.
const DefaultZone = "Asia/Kolkata"

// Load resolves the display timezone by IANA name, falling back to the
// default zone when name is empty.
func Load(name string) (*time.Location, error) {
	if name == "" {
		name = DefaultZone
	}
	return time.LoadLocation(name)
}

// Convert shifts t into the display zone. A timestamp without zone
// information is treated as UTC first.
func Convert(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		return t
	}
	return t.UTC().In(loc)
}

// ConvertPtr is Convert for optional timestamps.
func ConvertPtr(t *time.Time, loc *time.Location) *time.Time {
	if t == nil {
		return nil
	}
	converted := Convert(*t, loc)
	return &converted
}
