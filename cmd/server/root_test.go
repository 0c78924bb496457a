package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"alcyxob/workouthub/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Help(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"--help"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())
	for _, name := range []string{"serve", "migrate", "token"} {
		assert.Contains(t, buf.String(), name)
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o600))
	return dir
}

func TestMigrateCmd(t *testing.T) {
	dir := writeConfig(t, "")
	dsn := filepath.Join(dir, "migrate.db")
	t.Setenv("DATABASE_DSN", dsn)
	t.Setenv("LOG_LEVEL", "disabled")

	rootCmd.SetArgs([]string{"migrate", "--config", dir})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	require.NoError(t, rootCmd.Execute())

	_, err := os.Stat(dsn)
	assert.NoError(t, err)
}

func TestTokenCmd(t *testing.T) {
	dir := writeConfig(t, "jwt:\n  secret: cli-secret\n  expiration: 2h\nlog:\n  level: disabled\n")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"token", "--config", dir, "--user", "cli-user"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	require.NoError(t, rootCmd.Execute())

	tokens, err := service.NewTokenService("cli-secret", 0)
	require.NoError(t, err)
	claims, err := tokens.ParseToken(strings.TrimSpace(buf.String()))
	require.NoError(t, err)
	assert.Equal(t, "cli-user", claims.UserID)
}
