package matches

import (
	"testing"
	"time"

	"github.com/mcdev12/scorepool/go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKickoff(t *testing.T) {
	zone, err := LoadZone(DefaultZone)
	require.NoError(t, err)

	tests := []struct {
		raw  string
		want time.Time
	}{
		{"2026-03-08T16:00:00Z", time.Date(2026, 3, 8, 16, 0, 0, 0, time.UTC)},
		{"2026-03-08T16:00:00-03:00", time.Date(2026, 3, 8, 19, 0, 0, 0, time.UTC)},
		{"2026-03-08T16:00:00+01:00", time.Date(2026, 3, 8, 15, 0, 0, 0, time.UTC)},
		{"2026-03-08T16:00:00", time.Date(2026, 3, 8, 19, 0, 0, 0, time.UTC)},
		{"2026-03-08T16:00", time.Date(2026, 3, 8, 19, 0, 0, 0, time.UTC)},
		{"2026-03-08 16:00:00", time.Date(2026, 3, 8, 19, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseKickoff(tt.raw, zone)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}

	for _, raw := range []string{"", "tomorrow", "08/03/2026 16:00"} {
		_, err := ParseKickoff(raw, zone)
		assert.ErrorIs(t, err, models.ErrInvalidArgument, raw)
	}
}

func TestLoadZone(t *testing.T) {
	_, err := LoadZone("Mars/Olympus_Mons")
	assert.Error(t, err)

	loc, err := LoadZone("")
	require.NoError(t, err)
	assert.Equal(t, DefaultZone, loc.String())
}
