package cmd

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cottand/ileinfer/frontend/ilerr"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture(name string) string {
	return filepath.Join("..", "frontend", "loader", "testdata", name)
}

func execute(t *testing.T, c *cobra.Command, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	c.SetOut(out)
	c.SetErr(io.Discard)
	c.SetArgs(args)
	t.Cleanup(func() {
		c.SetOut(nil)
		c.SetErr(nil)
		c.SetArgs(nil)
	})
	err := c.Execute()
	return out.String(), err
}

func TestCheck(t *testing.T) {
	for _, strategy := range []string{"constraints", "algorithmic"} {
		t.Run(strategy, func(t *testing.T) {
			out, err := execute(t, CheckCmd, "--strategy", strategy, "--jobs", "2",
				fixture("identity.yaml"), fixture("counter.yaml"), fixture("options.yaml"))
			require.NoError(t, err)

			assert.Equal(t, []string{
				fixture("identity.yaml") + ": Int",
				fixture("counter.yaml") + ": String",
				fixture("options.yaml") + ": (Int, String)",
			}, strings.Split(strings.TrimSpace(out), "\n"))
		})
	}
}

func TestCheckReportsDiagnostics(t *testing.T) {
	out, err := execute(t, CheckCmd, "--strategy", "constraints",
		fixture("identity.yaml"), fixture("unbound.yaml"), fixture("arg_mismatch.yaml"))
	assert.ErrorContains(t, err, "type errors found in 2 of 3 files")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, fixture("identity.yaml")+": Int", lines[0])
	assert.Equal(t, fixture("unbound.yaml")+":1:7: (E004) variable 'foo' is not defined", lines[1])
	assert.Equal(t, fixture("unbound.yaml")+":1:12: (E004) variable 'bar' is not defined", lines[2])
	assert.True(t, strings.HasPrefix(lines[3], fixture("arg_mismatch.yaml")+":2:1: (E005)"), lines[3])
	assert.NotContains(t, out, "\x1b[", "buffers are not coloured")
}

func TestCheckDebug(t *testing.T) {
	t.Cleanup(func() {
		*checkDebug = false
		ilerr.SetDebugPrinting(false)
	})
	out, err := execute(t, CheckCmd, "--strategy", "constraints", "--debug", fixture("unbound.yaml"))
	assert.Error(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], fixture("unbound.yaml")+":1:7: "), lines[0])
	assert.Contains(t, lines[0], ".go:", "includes where the diagnostic was created")
	assert.Contains(t, lines[0], "(E004) variable 'foo' is not defined")
}

func TestCheckFailures(t *testing.T) {
	_, err := execute(t, CheckCmd, "--strategy", "magic", fixture("identity.yaml"))
	assert.ErrorContains(t, err, "unknown strategy 'magic'")

	_, err = execute(t, CheckCmd, "--strategy", "constraints", fixture("missing.yaml"))
	assert.ErrorContains(t, err, "could not load program")

	_, err = execute(t, CheckCmd)
	assert.Error(t, err)
}

func TestConstraints(t *testing.T) {
	out, err := execute(t, ConstraintsCmd, fixture("identity.yaml"))
	require.NoError(t, err)

	assert.Contains(t, out, "   0  ")
	assert.Contains(t, out, "type: Int\n")
	assert.Contains(t, out, "solution: {")
}

func TestConstraintsWithoutSolution(t *testing.T) {
	out, err := execute(t, ConstraintsCmd, fixture("arg_mismatch.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "no solution: ")
	assert.NotContains(t, out, "type: ")
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, isTerminal(&bytes.Buffer{}))
	p := &printer{colour: true}
	assert.Equal(t, colourRed+"x"+colourReset, p.paint(colourRed, "x"))
	p.colour = false
	assert.Equal(t, "x", p.paint(colourRed, "x"))
}
