package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFixtures = `
timezone: America/Sao_Paulo
competition:
  name: Campeonato Brasileiro Serie A
  country: Brazil
  type: league
season:
  year: 2026
teams:
  - {name: Flamengo, short_code: FLA}
  - {name: Palmeiras, short_code: PAL}
matches:
  - {round: 1, home: FLA, away: PAL, kickoff: "2026-04-12 16:00"}
  - {round: 2, home: PAL, away: FLA, kickoff: "2026-04-19T21:30:00Z"}
`

func TestParseFixtures(t *testing.T) {
	file, fixtures, err := parseFixtures([]byte(sampleFixtures))
	require.NoError(t, err)

	assert.Equal(t, "PLANNED", file.Season.Status)
	assert.Len(t, file.Teams, 2)
	require.Len(t, fixtures, 2)

	assert.Equal(t, time.Date(2026, 4, 12, 19, 0, 0, 0, time.UTC), fixtures[0].KickoffAt)
	assert.Equal(t, time.Date(2026, 4, 19, 21, 30, 0, 0, time.UTC), fixtures[1].KickoffAt)
	assert.Equal(t, "PAL", fixtures[1].Home)
}

func TestParseFixturesRejects(t *testing.T) {
	header := "competition: {name: C}\nseason: {year: 2026}\nteams:\n  - {name: A, short_code: AAA}\n  - {name: B, short_code: BBB}\n"

	tests := []struct {
		name string
		body string
	}{
		{"not yaml", "teams: [oops"},
		{"no competition", "season: {year: 2026}\n"},
		{"no year", "competition: {name: C}\n"},
		{"bad status", "competition: {name: C}\nseason: {year: 2026, status: LIVE}\n"},
		{"duplicate code", header + "  - {name: A2, short_code: AAA}\n"},
		{"unknown team", header + "matches:\n  - {round: 1, home: AAA, away: ZZZ, kickoff: '2026-04-12T16:00:00Z'}\n"},
		{"same team", header + "matches:\n  - {round: 1, home: AAA, away: AAA, kickoff: '2026-04-12T16:00:00Z'}\n"},
		{"round zero", header + "matches:\n  - {round: 0, home: AAA, away: BBB, kickoff: '2026-04-12T16:00:00Z'}\n"},
		{"bad kickoff", header + "matches:\n  - {round: 1, home: AAA, away: BBB, kickoff: tomorrow}\n"},
		{"bad zone", "timezone: Mars/Olympus\n" + header},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := parseFixtures([]byte(tt.body))
			assert.Error(t, err)
		})
	}
}
