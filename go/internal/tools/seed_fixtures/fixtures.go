package main

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mcdev12/scorepool/go/internal/matches"
)

// FixtureFile is one season of one competition
type FixtureFile struct {
	Timezone    string         `yaml:"timezone"`
	Competition Competition    `yaml:"competition"`
	Season      Season         `yaml:"season"`
	Teams       []Team         `yaml:"teams"`
	Matches     []FixtureMatch `yaml:"matches"`
}

type Competition struct {
	Name    string `yaml:"name"`
	Country string `yaml:"country"`
	Type    string `yaml:"type"`
}

type Season struct {
	Year   int    `yaml:"year"`
	Status string `yaml:"status"`
}

type Team struct {
	Name      string `yaml:"name"`
	ShortCode string `yaml:"short_code"`
}

type FixtureMatch struct {
	Round   int    `yaml:"round"`
	Home    string `yaml:"home"`
	Away    string `yaml:"away"`
	Kickoff string `yaml:"kickoff"`
}

// Fixture is a parsed match with its kickoff resolved to UTC
type Fixture struct {
	Round     int
	Home      string
	Away      string
	KickoffAt time.Time
}

var seasonStatuses = map[string]bool{"PLANNED": true, "ACTIVE": true, "FINISHED": true}

// parseFixtures decodes and checks a fixture file. Matches refer to teams by
// short code.
func parseFixtures(data []byte) (*FixtureFile, []Fixture, error) {
	var f FixtureFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, nil, fmt.Errorf("unmarshal YAML: %w", err)
	}

	if f.Competition.Name == "" {
		return nil, nil, fmt.Errorf("competition.name is required")
	}
	if f.Season.Year == 0 {
		return nil, nil, fmt.Errorf("season.year is required")
	}
	if f.Season.Status == "" {
		f.Season.Status = "PLANNED"
	}
	if !seasonStatuses[f.Season.Status] {
		return nil, nil, fmt.Errorf("unknown season status %q", f.Season.Status)
	}

	codes := make(map[string]bool, len(f.Teams))
	for _, t := range f.Teams {
		if t.Name == "" || t.ShortCode == "" {
			return nil, nil, fmt.Errorf("team %q needs a name and a short_code", t.Name)
		}
		if codes[t.ShortCode] {
			return nil, nil, fmt.Errorf("duplicate team short_code %q", t.ShortCode)
		}
		codes[t.ShortCode] = true
	}

	zone, err := matches.LoadZone(f.Timezone)
	if err != nil {
		return nil, nil, err
	}

	fixtures := make([]Fixture, 0, len(f.Matches))
	for i, m := range f.Matches {
		if m.Round < 1 {
			return nil, nil, fmt.Errorf("match %d: round must be at least 1", i+1)
		}
		if !codes[m.Home] || !codes[m.Away] {
			return nil, nil, fmt.Errorf("match %d: unknown team %s or %s", i+1, m.Home, m.Away)
		}
		if m.Home == m.Away {
			return nil, nil, fmt.Errorf("match %d: %s cannot play itself", i+1, m.Home)
		}
		kickoff, err := matches.ParseKickoff(m.Kickoff, zone)
		if err != nil {
			return nil, nil, fmt.Errorf("match %d: %w", i+1, err)
		}
		fixtures = append(fixtures, Fixture{Round: m.Round, Home: m.Home, Away: m.Away, KickoffAt: kickoff})
	}
	return &f, fixtures, nil
}
