package matches

import (
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/mcdev12/scorepool/go/internal/models"
)

// DefaultZone names the zone naive kickoff timestamps are read in.
const DefaultZone = "America/Sao_Paulo"

var naiveLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseKickoff reads an RFC3339 timestamp, or a timestamp without offset
// interpreted in zone, and returns it in UTC.
func ParseKickoff(raw string, zone *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	if zone == nil {
		zone = time.UTC
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, raw, zone); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: kickoff %q is not a timestamp", models.ErrInvalidArgument, raw)
}

// LoadZone resolves a zone name, falling back to DefaultZone when empty.
func LoadZone(name string) (*time.Location, error) {
	if name == "" {
		name = DefaultZone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load zone %q: %w", name, err)
	}
	return loc, nil
}
