package logging

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLevels(t *testing.T) {
	cases := map[string]zerolog.Level{
		"debug":  zerolog.DebugLevel,
		"WARN":   zerolog.WarnLevel,
		" info ": zerolog.InfoLevel,
		"":       zerolog.InfoLevel,
		"bogus":  zerolog.InfoLevel,
	}
	for in, want := range cases {
		log := New(&bytes.Buffer{}, in)
		assert.Equal(t, want, log.GetLevel(), "level %q", in)
	}
}

func TestNewWritesTimestampedJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "debug")
	log.Debug().Uint64("vehicle", 7).Msg("mounted")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "mounted", line["message"])
	assert.Equal(t, float64(7), line["vehicle"])
	assert.Contains(t, line, "time")
}

func TestNewFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "warn")
	log.Info().Msg("hidden")
	assert.Zero(t, buf.Len())
}

func TestOpenFileCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "sandbox.log")
	f, err := OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	_, err = f.WriteString("ok\n")
	assert.NoError(t, err)
}
