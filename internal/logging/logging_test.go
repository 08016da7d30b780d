package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
)

func TestInitWritesJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "clipper.log")
	done, err := Init(Options{File: path, Level: "debug"})
	require.NoError(t, err)

	log.Debug().Str("file", "a.mp4").Msg("probe")
	done()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `"file":"a.mp4"`)
	require.Contains(t, string(data), `"message":"probe"`)
	require.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestInitRejectsTwoSinks(t *testing.T) {
	_, err := Init(Options{File: "x.log", Stderr: true})
	require.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("")
	require.NoError(t, err)
	require.Equal(t, zerolog.InfoLevel, lvl)

	lvl, err = ParseLevel(" WARN ")
	require.NoError(t, err)
	require.Equal(t, zerolog.WarnLevel, lvl)

	_, err = ParseLevel("loud")
	require.Error(t, err)
}

func TestVerboseLowersLevel(t *testing.T) {
	done, err := Init(Options{Level: "warn", Verbose: true})
	require.NoError(t, err)
	defer done()
	require.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}
