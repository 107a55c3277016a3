package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigure_JSONWithServiceAndComponent(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: WarnLevel, Output: &buf, Service: "supervision"})
	t.Cleanup(func() { Configure(Config{Level: InfoLevel}) })

	Info().Msg("dropped")
	lgr := Component("assignment")
	lgr.Warn().Int64("zone_id", 7).Msg("zone locked")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "supervision", entry["service"])
	assert.Equal(t, "assignment", entry["component"])
	assert.Equal(t, "zone locked", entry["message"])
	assert.EqualValues(t, 7, entry["zone_id"])
}

func TestConfigure_UnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: "loud", Output: &buf})
	t.Cleanup(func() { Configure(Config{Level: InfoLevel}) })

	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}
