package logging

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New("warn", &buf)

	log.Info().Msg("quiet")
	require.Empty(t, buf.String())

	log.Warn().Msg("loud")
	require.Contains(t, buf.String(), "loud")
	require.Contains(t, buf.String(), "session=")
}

func TestNewUnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := New("chatty", &buf)

	log.Debug().Msg("hidden")
	log.Info().Msg("shown")
	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, "shown")
}

func TestErrorWithStack(t *testing.T) {
	var buf bytes.Buffer
	log := New("info", &buf)

	ErrorWithStack(log, errors.New("disk full"), "save todos")
	out := buf.String()
	require.Contains(t, out, "save todos: disk full")
	// %+v of a pkg/errors stack includes frames
	require.True(t, strings.Count(out, "\n") > 1)

	buf.Reset()
	ErrorWithStack(log, nil, "nothing")
	require.Empty(t, buf.String())
}

func TestOpenFileCreatesDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "errika.log")
	f, err := OpenFile(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	_, err = f.WriteString("hello\n")
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.EqualValues(t, 0o600, info.Mode().Perm())
}
