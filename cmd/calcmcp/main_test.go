package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCallAdd(t *testing.T) {
	out, err := execute(t, "call", "add", "--arg", "a=5", "--arg", "b=3", "--log-level", "error")
	require.NoError(t, err)
	assert.Equal(t, "8\n", out)
}

func TestCallJSONEnvelope(t *testing.T) {
	out, err := execute(t, "call", "lcm", "--args-json", `{"numbers":[12,18]}`, "-o", "json", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, `"success": true`)
	assert.Contains(t, out, `"result": 36`)
	assert.Contains(t, out, `"operation_name": "lcm"`)
}

func TestCallListArgument(t *testing.T) {
	out, err := execute(t, "call", "average", "--arg", "values=1,2,3,4,5", "--log-level", "error")
	require.NoError(t, err)
	assert.Equal(t, "3\n", out)
}

func TestCallFailureExitsWithCodeOne(t *testing.T) {
	out, err := execute(t, "call", "divide", "--arg", "a=10", "--arg", "b=0", "--log-level", "error")
	require.Error(t, err)
	var exitErr exitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 1, exitErr.code)
	assert.True(t, exitErr.silent)
	assert.True(t, strings.HasPrefix(out, "error: "))
	assert.Contains(t, out, "divisor")
}

func TestCallUnknownTool(t *testing.T) {
	_, err := execute(t, "call", "teleport", "--log-level", "error")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "teleport")
}

func TestCallRejectsMalformedArgument(t *testing.T) {
	_, err := execute(t, "call", "add", "--arg", "a", "--log-level", "error")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "key=value")
}

func TestPromptRendersContent(t *testing.T) {
	out, err := execute(t, "prompt", "multiplication_table", "--arg", "size=3", "--arg", "language=en", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "3x3 multiplication table")
}

func TestPromptFailure(t *testing.T) {
	out, err := execute(t, "prompt", "multiplication_table", "--arg", "size=50", "--log-level", "error")
	var exitErr exitError
	require.True(t, errors.As(err, &exitErr))
	assert.Contains(t, out, "size")
}

func TestListYAML(t *testing.T) {
	out, err := execute(t, "list", "tools", "-o", "yaml", "--log-level", "error")
	require.NoError(t, err)

	var payload struct {
		ETag  string `yaml:"etag"`
		Tools []struct {
			Name string `yaml:"name"`
		} `yaml:"tools"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &payload))
	assert.NotEmpty(t, payload.ETag)
	require.Len(t, payload.Tools, 29)
	assert.Equal(t, "add", payload.Tools[0].Name)
}

func TestListTOMLPrompts(t *testing.T) {
	out, err := execute(t, "list", "prompts", "-o", "toml", "--log-level", "error")
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, toml.Unmarshal([]byte(out), &payload))
	prompts, ok := payload["prompts"].([]any)
	require.True(t, ok)
	assert.Len(t, prompts, 3)
	assert.NotContains(t, payload, "tools")
}

func TestListRejectsUnknownKind(t *testing.T) {
	_, err := execute(t, "list", "resources", "--log-level", "error")
	require.Error(t, err)
}

func TestRejectsUnknownOutput(t *testing.T) {
	_, err := execute(t, "list", "-o", "xml", "--log-level", "error")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--output")
}

func TestValidateWithDisabledPlugins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calcmcp.yaml")
	require.NoError(t, os.WriteFile(path, []byte("plugins:\n  disabled: [add, subtract]\n"), 0o600))

	out, err := execute(t, "validate", "--config", path, "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "tools=27")
	assert.Contains(t, out, "prompts=3")
}

func TestValidateRejectsBadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calcmcp.yaml")
	require.NoError(t, os.WriteFile(path, []byte("transport:\n  kind: smoke\n"), 0o600))

	_, err := execute(t, "validate", "--config", path, "--log-level", "error")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transport.kind")
}

func TestTokenRequiresAuthConfig(t *testing.T) {
	_, err := execute(t, "token", "--log-level", "error")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "secretEnv")
}

func TestTokenSignsWithConfiguredSecret(t *testing.T) {
	t.Setenv("CALCMCP_TEST_SECRET", "0123456789abcdef0123456789abcdef")
	path := filepath.Join(t.TempDir(), "calcmcp.yaml")
	cfg := "transport:\n  kind: http\n  http:\n    auth:\n      secretEnv: CALCMCP_TEST_SECRET\n      issuer: calcmcp\n"
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o600))

	out, err := execute(t, "token", "--config", path, "--subject", "alice", "--scope", "calc:read", "--log-level", "error")
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(strings.TrimSpace(out), claims, func(*jwt.Token) (any, error) {
		return []byte("0123456789abcdef0123456789abcdef"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", claims["sub"])
	assert.Equal(t, "calc:read", claims["scope"])
	assert.Equal(t, "calcmcp", claims["iss"])
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "calcmcp")
}

func TestParseArguments(t *testing.T) {
	args, err := parseArguments([]string{"b=3", " a =7"}, `{"a":1,"c":[1,2]}`)
	require.NoError(t, err)
	assert.Equal(t, "7", args["a"])
	assert.Equal(t, "3", args["b"])
	assert.Len(t, args["c"], 2)

	_, err = parseArguments(nil, `[1,2]`)
	require.Error(t, err)
}
