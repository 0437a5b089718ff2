package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/milden6/boggle/internal/config"
)

func writeWordList(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "words.txt")
	words := "act\ncat\ncoat\ncog\ndog\ngoat\ngod\ntag\n"
	require.NoError(t, os.WriteFile(path, []byte(words), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	// persistent flags keep their values between runs
	rootCmd.SetArgs(append([]string{"--log-level", "error", "--snapshot="}, args...))
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	err := Execute()
	return out.String(), err
}

func TestSolve(t *testing.T) {
	dict := writeWordList(t)

	out, err := run(t, "solve", "--dict", dict, "--paths=false", "catdogxxxxxxxxxx")
	require.NoError(t, err)
	assert.Equal(t, "coat\ncog\ncat\ntag\ngoat\n", out)
}

func TestSolvePaths(t *testing.T) {
	dict := writeWordList(t)

	out, err := run(t, "solve", "--dict", dict, "--paths", "CATDOGXXXXXXXXXX")
	require.NoError(t, err)
	assert.Contains(t, out, "cog\t(0,0) (0,1) (1,1)\n")
}

func TestSolveBadBoard(t *testing.T) {
	dict := writeWordList(t)

	_, err := run(t, "solve", "--dict", dict, "catdog")
	assert.ErrorContains(t, err, "invalid board")
}

func TestCompileDumpAndSnapshot(t *testing.T) {
	dict := writeWordList(t)
	snapshot := filepath.Join(t.TempDir(), "words.trie")

	out, err := run(t, "compile", "--dict", dict, snapshot)
	require.NoError(t, err)
	assert.Contains(t, out, "(8 words,")

	out, err = run(t, "dump", snapshot)
	require.NoError(t, err)
	assert.Contains(t, out, "Version=1")
	assert.Contains(t, out, "WordCount=8")

	out, err = run(t, "solve", "--snapshot", snapshot, "--paths=false", "catdogxxxxxxxxxx")
	require.NoError(t, err)
	assert.Equal(t, "coat\ncog\ncat\ntag\ngoat\n", out)
}

func TestWords(t *testing.T) {
	dict := writeWordList(t)

	out, err := run(t, "words", "--dict", dict, "--prefix", "")
	require.NoError(t, err)
	assert.Equal(t, "act\ncat\ncoat\ncog\ndog\ngoat\ngod\ntag\n", out)

	out, err = run(t, "words", "--dict", dict, "--prefix", "co")
	require.NoError(t, err)
	assert.Equal(t, []string{"coat", "cog"}, strings.Fields(out))

	out, err = run(t, "words", "--dict", dict, "--prefix", "go")
	require.NoError(t, err)
	assert.Equal(t, []string{"goat", "god"}, strings.Fields(out))
}

// observeLogs makes the next runs log into an observer.
func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zap.InfoLevel)
	orig := newLogger
	newLogger = func(config.LogConfig) (*zap.Logger, error) {
		return zap.New(core), nil
	}
	t.Cleanup(func() { newLogger = orig })
	return logs
}

func TestMissingDictionary(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "none.txt")

	for _, args := range [][]string{
		{"words", "--dict", missing},
		{"solve", "--dict", missing, "catdogxxxxxxxxxx"},
		{"compile", "--dict", missing, filepath.Join(t.TempDir(), "out.trie")},
	} {
		t.Run(args[0], func(t *testing.T) {
			logs := observeLogs(t)

			_, err := run(t, args...)
			assert.ErrorContains(t, err, "dictionary read failed")

			entries := logs.FilterMessage("dictionary unavailable").All()
			require.Len(t, entries, 1)
			assert.Equal(t, zap.ErrorLevel, entries[0].Level)
			assert.Equal(t, missing, entries[0].ContextMap()["path"])
		})
	}
}

func TestBadSnapshotIsLogged(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "bad.trie")
	require.NoError(t, os.WriteFile(bad, []byte{0xff, 0xff, 0xff, 0xff, 0x01, 0x08, 0x00}, 0o644))
	logs := observeLogs(t)

	_, err := run(t, "words", "--snapshot", bad)
	assert.ErrorContains(t, err, "bad snapshot")
	assert.Equal(t, 1, logs.FilterMessage("dictionary unavailable").Len())
}

func TestFlagValidation(t *testing.T) {
	_, err := run(t, "serve", "--port", "99999")
	assert.ErrorContains(t, err, "port must be between 0 and 65535")

	_, err = run(t, "serve", "--port", "http")
	assert.ErrorContains(t, err, "invalid port number")

	_, err = run(t, "words", "--log-level", "loud")
	assert.Error(t, err)
}

func TestValidators(t *testing.T) {
	assert.NoError(t, validatePort("0"))
	assert.NoError(t, validatePort("8000"))
	assert.Error(t, validatePort("-1"))
	assert.Error(t, validatePort("65536"))

	assert.NoError(t, validateLevel("debug"))
	assert.Error(t, validateLevel("loud"))
}
