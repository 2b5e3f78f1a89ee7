package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	cmds := rootCmd.Commands()

	names := make(map[string]bool)
	for _, c := range cmds {
		names[c.Name()] = true
	}

	expected := []string{"compute", "batch", "coefficients", "model", "cwv", "runs", "serve"}
	for _, name := range expected {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "lst-cli", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestComputeCommand_Flags(t *testing.T) {
	for _, name := range []string{"t10", "t11", "emissivity-b10", "emissivity-b11", "landcover", "cwv", "save", "label"} {
		require.NotNil(t, computeCmd.Flags().Lookup(name), "compute command should have --%s flag", name)
	}
}

func TestBatchCommand_Flags(t *testing.T) {
	flag := batchCmd.Flags().Lookup("concurrency")
	require.NotNil(t, flag, "batch command should have --concurrency flag")
	assert.Equal(t, "4", flag.DefValue)

	format := batchCmd.Flags().Lookup("format")
	require.NotNil(t, format)
	assert.Equal(t, "csv", format.DefValue)
}

func TestServeCommand_Flags(t *testing.T) {
	flag := serveCmd.Flags().Lookup("port")
	require.NotNil(t, flag, "serve command should have --port flag")
	assert.Equal(t, "0", flag.DefValue)
}
