package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/seek/internal/logger"
)

func TestRootCmd_RegistersCommands(t *testing.T) {
	names := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}

	for _, want := range []string{"search", "info", "env", "config", "mcp", "tui", "version"} {
		assert.True(t, names[want], "%s command should be registered", want)
	}
}

func TestRootCmd_ShowsHelpWithoutTerminal(t *testing.T) {
	out, err := execute(t)

	require.NoError(t, err)
	assert.Contains(t, out, "seek searches crates.io")
}

func TestRootCmd_BootstrapReceivesGlobalFlags(t *testing.T) {
	defer logger.SetVerbose(false)

	var got Options
	SetBootstrap(func(_ context.Context, opts Options) (*Services, error) {
		got = opts
		return &Services{Search: &mockSearchService{}}, nil
	})
	defer SetBootstrap(nil)
	defer SetServices(nil)

	_, err := execute(t, "search", "--project", "/work", "--no-config", "--verbose", "serde")

	require.NoError(t, err)
	assert.Equal(t, Options{ProjectDir: "/work", NoConfig: true, Verbose: true}, got)
	assert.True(t, logger.IsVerbose())
}

func TestRootCmd_PositionalProjectDir(t *testing.T) {
	var got Options
	SetBootstrap(func(_ context.Context, opts Options) (*Services, error) {
		got = opts
		return &Services{}, nil
	})
	defer SetBootstrap(nil)
	defer SetServices(nil)

	_, err := execute(t, "/some/crate")

	require.NoError(t, err)
	assert.Equal(t, "/some/crate", got.ProjectDir)
}

func TestRootCmd_BootstrapError(t *testing.T) {
	boom := errors.New("no config dir")
	SetBootstrap(func(context.Context, Options) (*Services, error) {
		return nil, boom
	})
	defer SetBootstrap(nil)

	_, err := execute(t, "env")

	assert.ErrorIs(t, err, boom)
}

func TestRootCmd_MissingServices(t *testing.T) {
	SetServices(nil)

	for _, args := range [][]string{
		{"search", "serde"},
		{"info", "serde"},
		{"env"},
		{"config", "show"},
	} {
		_, err := execute(t, args...)
		assert.ErrorIs(t, err, errNotConfigured, args)
	}
}

func TestExecute_ClosesServices(t *testing.T) {
	closed := false
	SetServices(&Services{Close: func() { closed = true }})
	defer SetServices(nil)

	rootCmd.SetArgs([]string{"version"})
	defer rootCmd.SetArgs(nil)

	require.NoError(t, Execute())
	assert.True(t, closed)
}
