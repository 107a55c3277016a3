package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapEnv(vars map[string]string) envLookup {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

type envSample struct {
	Name    string        `yaml:"name" env:"NAME"`
	Workers int32         `yaml:"workers" env:"WORKERS"`
	Ratio   float64       `yaml:"ratio" env:"RATIO"`
	Debug   bool          `env:"DEBUG"`
	Timeout time.Duration `yaml:"timeout" env:"TIMEOUT"`
	Hosts   []string      `yaml:"hosts" env:"HOSTS"`
	Nested  struct {
		Level string `yaml:"level,omitempty" env:"NESTED_LEVEL"`
	} `yaml:"nested"`
	Untagged string
	hidden   string `env:"HIDDEN"`
}

func TestApplyEnv(t *testing.T) {
	var s envSample
	applied, err := applyEnv(&s, mapEnv(map[string]string{
		"NAME":         "  api ",
		"WORKERS":      "8",
		"RATIO":        "0.25",
		"DEBUG":        "true",
		"TIMEOUT":      "90s",
		"HOSTS":        "a, b,,c ",
		"NESTED_LEVEL": "debug",
		"HIDDEN":       "x",
	}))
	require.NoError(t, err)

	assert.Equal(t, "api", s.Name)
	assert.Equal(t, int32(8), s.Workers)
	assert.Equal(t, 0.25, s.Ratio)
	assert.True(t, s.Debug)
	assert.Equal(t, 90*time.Second, s.Timeout)
	assert.Equal(t, []string{"a", "b", "c"}, s.Hosts)
	assert.Equal(t, "debug", s.Nested.Level)
	assert.Empty(t, s.hidden)
	assert.Equal(t, []string{"NAME", "WORKERS", "RATIO", "DEBUG", "TIMEOUT", "HOSTS", "NESTED_LEVEL"}, applied)
}

func TestApplyEnv_ErrorNamesPath(t *testing.T) {
	tests := []struct {
		vars map[string]string
		want string
	}{
		{map[string]string{"WORKERS": "many"}, "workers (from WORKERS)"},
		{map[string]string{"WORKERS": "99999999999"}, "workers (from WORKERS)"},
		{map[string]string{"TIMEOUT": "soon"}, "timeout (from TIMEOUT)"},
		{map[string]string{"DEBUG": "maybe"}, "Debug (from DEBUG)"},
	}
	for _, tt := range tests {
		var s envSample
		_, err := applyEnv(&s, mapEnv(tt.vars))
		require.Error(t, err)
		assert.Contains(t, err.Error(), tt.want)
	}
}

func TestApplyEnv_RejectsNonPointer(t *testing.T) {
	_, err := applyEnv(envSample{}, mapEnv(nil))
	assert.Error(t, err)
}

func TestPrefixedEnv(t *testing.T) {
	t.Setenv("SUPERVISION_TEST_KEY", "prefixed")
	t.Setenv("TEST_KEY", "bare")
	t.Setenv("ONLY_BARE", "bare")

	v, ok := prefixedEnv("TEST_KEY")
	assert.True(t, ok)
	assert.Equal(t, "prefixed", v)

	v, ok = prefixedEnv("ONLY_BARE")
	assert.True(t, ok)
	assert.Equal(t, "bare", v)

	_, ok = prefixedEnv("SURELY_NOT_SET_ANYWHERE")
	assert.False(t, ok)
}

func TestLoadConfig_ReportsEnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("SUPERVISION_PRESENCE_MAX_METERS", "120")

	cfg, err := LoadConfig(writeConfig(t, "server:\n  port: \"9000\"\n"))
	require.NoError(t, err)
	assert.Equal(t, 120.0, cfg.Presence.MaxMeters)
	assert.Contains(t, cfg.EnvOverrides(), "JWT_SECRET")
	assert.Contains(t, cfg.EnvOverrides(), "PRESENCE_MAX_METERS")
}
