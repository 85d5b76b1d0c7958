package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GNB-UAM/neungen/internal/testutil"
)

func execValidate(t *testing.T, format string, args ...string) (*bytes.Buffer, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: format}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf, err
}

func TestValidateValidRegistry(t *testing.T) {
	regPath := testutil.WriteRegistry(t, testutil.MinimalYAML)

	buf, err := execValidate(t, "text", regPath)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "✓ Registry valid")
}

func TestValidateValidRegistryJSON(t *testing.T) {
	regPath := testutil.WriteRegistry(t, testutil.FullYAML)

	buf, err := execValidate(t, "json", regPath)
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, true, data["valid"])
}

func TestValidateMissingRegistry(t *testing.T) {
	buf, err := execValidate(t, "text", "/nonexistent/registry.yaml")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "E001")
	assert.Contains(t, buf.String(), "not found")
}

func TestValidateUnparseableRegistry(t *testing.T) {
	regPath := testutil.WriteRegistry(t, "models: [unclosed\n")

	buf, err := execValidate(t, "text", regPath)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "E002")
	assert.Contains(t, buf.String(), "Error [E002]")
}

func TestValidateInvalidRegistry(t *testing.T) {
	src := strings.Replace(testutil.MinimalYAML,
		"    variables:\n      v: Membrane potential\n      m: Sodium activation gate\n",
		"    variables: {}\n", 1)
	require.NotEqual(t, testutil.MinimalYAML, src, "fixture replacement must apply")
	regPath := testutil.WriteRegistry(t, src)

	buf, err := execValidate(t, "text", regPath)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "validation failed")

	output := buf.String()
	assert.Contains(t, output, "✗ Validation failed")
	assert.Contains(t, output, "E112")
	assert.Contains(t, output, "models.HodgkinHuxleyModel.variables")
}

func TestValidateInvalidRegistryJSON(t *testing.T) {
	src := strings.Replace(testutil.MinimalYAML,
		"    variables:\n      v: Membrane potential\n      m: Sodium activation gate\n",
		"    variables: {}\n", 1)
	require.NotEqual(t, testutil.MinimalYAML, src, "fixture replacement must apply")
	regPath := testutil.WriteRegistry(t, src)

	buf, err := execValidate(t, "json", regPath)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E112", resp.Error.Code)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, false, data["valid"])
	verrs, ok := data["errors"].([]interface{})
	require.True(t, ok)
	assert.NotEmpty(t, verrs)
}

func TestValidateDuplicateModelKey(t *testing.T) {
	src := `
models:
  HodgkinHuxleyModel:
    short: HH
    header: HodgkinHuxleyModel.h
    variables: {v: Membrane potential}
    parameters: {cm: Capacitance}
  HodgkinHuxleyModel:
    short: HH
    header: HodgkinHuxleyModel.h
    variables: {v: Membrane potential}
    parameters: {cm: Capacitance}
precisions: [float]
integrators:
  RungeKutta4: {short: RK4, header: RungeKutta4.h}
generation: {}
`
	regPath := testutil.WriteRegistry(t, src)

	buf, err := execValidate(t, "text", regPath)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, buf.String(), "E110")
}
