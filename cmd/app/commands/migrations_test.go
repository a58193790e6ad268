package commands

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunMigrations(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("unsupported-driver", func(t *testing.T) {
		err := RunMigrations(logger, "sqlite", "sqlite://local.db")
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to create migrate instance")
		require.Contains(t, err.Error(), `unsupported driver "sqlite"`)
	})

	t.Run("invalid-connection-string", func(t *testing.T) {
		err := RunMigrations(logger, "postgres", "invalid-connection-string")
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to create migrate instance")
	})
}

func TestParseUserID(t *testing.T) {
	_, err := parseUserID("")
	require.Error(t, err)

	_, err = parseUserID("00000000-0000-0000-0000-000000000000")
	require.Error(t, err)

	id, err := parseUserID("0190b3a4-0000-7000-8000-000000000001")
	require.NoError(t, err)
	require.Equal(t, "0190b3a4-0000-7000-8000-000000000001", id.String())
}

func TestValidateFormat(t *testing.T) {
	require.NoError(t, validateFormat("text"))
	require.NoError(t, validateFormat("json"))
	require.Error(t, validateFormat("yaml"))
}
