package commands_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/veri/cmd/veri/commands"
)

func TestVersion(t *testing.T) {
	cli := commands.New()
	cli.SetArgs([]string{"version"})
	require.NoError(t, cli.Execute(context.Background()))
}

func TestDemo_DefaultsWhenConfigMissing(t *testing.T) {
	cli := commands.New()
	cli.SetArgs([]string{"demo", "-c", filepath.Join(t.TempDir(), "veri.yaml")})
	require.NoError(t, cli.Execute(context.Background()))
}

func TestDemo_ConfigFileOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "veri.yaml")
	cfg := `chainId: 31337
pageSize: 10
demo:
  durationDays: 7
`
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o600))

	cli := commands.New()
	cli.SetArgs([]string{"demo", "-c", path})
	require.NoError(t, cli.Execute(context.Background()))
}

func TestDemo_RejectsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "veri.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pageSize: 0\n"), 0o600))

	cli := commands.New()
	cli.SetArgs([]string{"demo", "-c", path})
	require.Error(t, cli.Execute(context.Background()))
}
