package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 12, cfg.League.Teams)
	assert.Equal(t, 15, cfg.League.SlotsPerTeam)
	assert.InDelta(t, 0.30, cfg.League.DepthBuffer, 1e-12)
	assert.InDelta(t, 15, cfg.League.ReplacementPercentile, 1e-12)
	assert.Equal(t, []string{"G", "A", "PPP", "SOG", "SHP", "HITS", "BLKS", "FW"}, cfg.League.Categories)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("LEAGUE_TEAMS", "10")
	t.Setenv("LEAGUE_CATEGORIES", "G, A ,PTS")
	t.Setenv("STATS_CACHE_TTL", "30m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.League.Teams)
	assert.Equal(t, []string{"G", "A", "PTS"}, cfg.League.Categories)
	assert.Equal(t, "30m0s", cfg.Source.CacheTTL.String())
}

func TestLoadRejectsBadPercentile(t *testing.T) {
	t.Setenv("LEAGUE_REPLACEMENT_PERCENTILE", "250")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsNonPositiveTeams(t *testing.T) {
	t.Setenv("LEAGUE_TEAMS", "0")

	_, err := Load()
	assert.Error(t, err)
}
