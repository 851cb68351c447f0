package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joncooperworks/textcrypt/config"
	"github.com/joncooperworks/textcrypt/crypto"
)

func TestGenpass(t *testing.T) {
	out := mustRun(t, "", "genpass", "-l", "20")
	assert.Len(t, strings.TrimSuffix(out, "\n"), 20)

	out = mustRun(t, "", "genpass", "--uppercase=false", "--lowercase=false", "--symbol=false")
	for _, c := range strings.TrimSpace(out) {
		assert.Contains(t, "123456789", string(c))
	}

	_, err := runCLI(t, "", "genpass", "-l", "3")
	assert.ErrorIs(t, err, crypto.ErrInvalidPasswordLength)
}

func TestBase64(t *testing.T) {
	out := mustRun(t, "hello,world\n", "base64", "encode")
	assert.Equal(t, "aGVsbG8sd29ybGQK\n", out)

	out = mustRun(t, "aGVsbG8sd29ybGQK\n", "base64", "decode")
	assert.Equal(t, "hello,world\n", out)

	out = mustRun(t, string([]byte{0xfb, 0xff}), "base64", "encode", "-f", "urlsafe", "--no-padding")
	assert.Equal(t, "-_8\n", out)

	_, err := runCLI(t, "%%%", "base64", "decode")
	assert.ErrorIs(t, err, crypto.ErrEncoding)
}

func TestKeyStore(t *testing.T) {
	dir := t.TempDir()
	src := writeTemp(t, dir, "src.key", "0123456789abcdef0123456789abcdef")

	mustRun(t, "", "--keystore-dir", dir, "key", "store", "--id", "stored/copy.key", "-i", src)

	data, err := os.ReadFile(filepath.Join(dir, "stored", "copy.key"))
	require.NoError(t, err)
	assert.Equal(t, "0123456789abcdef0123456789abcdef", string(data))

	out := mustRun(t, "", "--keystore-dir", dir, "key", "list", "--backend", "file")
	assert.Contains(t, out, "src.key")
}

func TestKeyMemoryBackendRejected(t *testing.T) {
	dir := t.TempDir()
	src := writeTemp(t, dir, "src.key", "0123456789abcdef0123456789abcdef")

	t.Run("store", func(t *testing.T) {
		_, err := runCLI(t, "", "key", "store", "--id", "memory:mac", "-i", src)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "only live for one process")
	})

	t.Run("list", func(t *testing.T) {
		_, err := runCLI(t, "", "key", "list", "--backend", "memory")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "only live for one process")
	})

	t.Run("help omits memory", func(t *testing.T) {
		out := mustRun(t, "", "key", "list", "--help")
		assert.Contains(t, out, "backend to list (")
		assert.NotContains(t, out, "memory")
	})
}

func TestConfigShow(t *testing.T) {
	out := mustRun(t, "", "config", "show")
	assert.Contains(t, out, "format: blake3")
	assert.Contains(t, out, "service_name: textcrypt")
	assert.Contains(t, out, "output_dir: fixtures")
}

func TestInitLogger(t *testing.T) {
	t.Run("rejects bad level", func(t *testing.T) {
		_, _, err := InitLogger(config.LogConfig{Level: "loud"}, os.Stderr)
		assert.Error(t, err)
	})

	t.Run("writes to rotated file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "logs", "textcrypt.log")
		var console strings.Builder
		logger, closer, err := InitLogger(config.LogConfig{Level: "info", File: path, MaxSizeMB: 1}, &console)
		require.NoError(t, err)
		require.NotNil(t, closer)

		logger.Info().Msg("hello log")
		require.NoError(t, closer.Close())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "hello log")
		assert.Contains(t, console.String(), "hello log")
	})

	t.Run("no file means no closer", func(t *testing.T) {
		_, closer, err := InitLogger(config.LogConfig{Level: "debug"}, os.Stderr)
		require.NoError(t, err)
		assert.Nil(t, closer)
	})
}

func TestExecuteClosesLogFileOnError(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	logPath := filepath.Join(dir, "textcrypt.log")

	var stdout, stderr bytes.Buffer
	a := &app{flags: &GlobalFlags{}, stdin: strings.NewReader("hi")}
	cmd := newRootCmd(a, BuildInfo{})
	cmd.SetArgs([]string{"--verbose", "--log-file", logPath, "text", "sign", "-k", filepath.Join(dir, "missing.key")})
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := executeApp(context.Background(), a, cmd)
	require.Error(t, err)
	assert.Nil(t, a.closer)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "starting command")
}

func TestFormatVersion(t *testing.T) {
	assert.Equal(t, "dev (commit: none, built: unknown)", formatVersion(BuildInfo{}))
	assert.Equal(t, "1.2.3 (commit: abc, built: today)", formatVersion(BuildInfo{Version: "1.2.3", Commit: "abc", Date: "today"}))
}
