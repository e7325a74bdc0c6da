package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rigPath = "../../testdata/rig.gltf"

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestTableOutput(t *testing.T) {

	out, err := execute(t, rigPath)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 7)
	assert.True(t, strings.HasPrefix(lines[0], "INDEX"))
	assert.Contains(t, lines[1], "Root")
	assert.Contains(t, lines[6], "Tail")

}

func TestJSONOutput(t *testing.T) {

	out, err := execute(t, "--input", rigPath, "--format", formatJSON, "--prune", "--root-name", "Scene")
	require.NoError(t, err)

	parsed := skeletonJSON{}
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))

	assert.Equal(t, "Stage", parsed.Scene)
	require.Len(t, parsed.Bones, 5)
	assert.Equal(t, "Scene", parsed.Bones[0].Name)
	assert.Equal(t, -1, parsed.Bones[0].Parent)
	assert.Equal(t, "Head", parsed.Bones[4].Name)
	assert.InDelta(t, 2.5, parsed.Bones[4].WorldPosition[1], 1e-4)
	assert.InDelta(t, 0.5, parsed.Bones[4].Translation[1], 1e-4)
	assert.InDelta(t, 0.5, parsed.Bones[4].Length, 1e-4)
	assert.InDelta(t, 1, parsed.Bones[4].Scale[0], 1e-4)
	// The inverse bind matrix moves the head back to the origin.
	assert.InDelta(t, -2.5, parsed.Bones[4].InverseBind[13], 1e-4)

}

func TestTreeOutput(t *testing.T) {
	out, err := execute(t, rigPath, "-f", formatTree, "--scene", "0")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, " [0] Root"))
	assert.Contains(t, out, "- [4] Head")
}

func TestEnvironment(t *testing.T) {
	t.Setenv("SKELDUMP_FORMAT", formatJSON)
	out, err := execute(t, rigPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "{"))
}

func TestErrors(t *testing.T) {

	_, err := execute(t)
	assert.Error(t, err, "no input")

	_, err = execute(t, rigPath, "--format", "xml")
	assert.ErrorContains(t, err, "unknown output format")

	_, err = execute(t, rigPath, "--log-level", "loud")
	assert.Error(t, err)

	_, err = execute(t, "does-not-exist.gltf")
	assert.Error(t, err)

}
