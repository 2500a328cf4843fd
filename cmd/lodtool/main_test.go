package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/hexterrain/internal/engine/terrain/cdlod"
)

func TestParseFloats(t *testing.T) {
	v, err := parseFloats("10, -4.5", 2)
	require.NoError(t, err)
	assert.Equal(t, []float32{10, -4.5}, v)

	_, err = parseFloats("1,2", 3)
	assert.Error(t, err)

	_, err = parseFloats("1,x,3", 3)
	assert.Error(t, err)
}

func TestQuadrantString(t *testing.T) {
	assert.Equal(t, "all", quadrantString(cdlod.AllQuadrants))
	assert.Equal(t, "TL+BR", quadrantString(cdlod.TopLeft|cdlod.BottomRight))
	assert.Equal(t, "TR", quadrantString(cdlod.TopRight))
}

func TestCommandsRun(t *testing.T) {
	require.NoError(t, cmdFan([]string{"--shorter", "3", "--longer", "5"}))
	require.NoError(t, cmdMesh([]string{"--block", "8", "--levels", "2"}))
	require.NoError(t, cmdLayout([]string{"--block", "8", "--levels", "2", "--rings", "2", "-q"}))
	assert.Error(t, cmdLayout([]string{"--cam", "1"}))
}
