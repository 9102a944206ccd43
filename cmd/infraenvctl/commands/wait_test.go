package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWait(t *testing.T) {
	cmd := Wait()

	require.NotNil(t, cmd)
	assert.Equal(t, "wait", cmd.Use)
	assert.NotNil(t, cmd.RunE)
}

func TestWait_Flags(t *testing.T) {
	cmd := Wait()

	nodesFlag := cmd.Flags().Lookup("nodes")
	require.NotNil(t, nodesFlag)
	assert.Equal(t, "0", nodesFlag.DefValue, "zero defers to the configured host count")

	insufficientFlag := cmd.Flags().Lookup("allow-insufficient")
	require.NotNil(t, insufficientFlag)
	assert.Equal(t, "false", insufficientFlag.DefValue)
}
