package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platinummonkey/httplint/pkg/diag"
	"github.com/platinummonkey/httplint/pkg/lint"
)

const lintCleanProto = `syntax = "proto3";

package test.v1;

import "google/api/annotations.proto";

message GetThingRequest {
  string name = 1;
}

message Thing {
  string name = 1;
}

service ThingService {
  rpc GetThing(GetThingRequest) returns (Thing) {
    option (google.api.http) = {
      get: "/v1/{name}"
    };
  }
}
`

const lintMapParamProto = `syntax = "proto3";

package test.v1;

import "google/api/annotations.proto";

message ListThingsRequest {
  map<string, string> labels = 1;
}

message Thing {
  string name = 1;
}

service ThingService {
  rpc ListThings(ListThingsRequest) returns (Thing) {
    option (google.api.http) = {
      get: "/v1/things"
    };
  }
}
`

func writeProtoFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return dir
}

func captureStdout(t *testing.T, f func() error) (string, error) {
	t.Helper()

	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	runErr := f()

	w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String(), runErr
}

func TestNewLintCommand(t *testing.T) {
	cmd := newLintCommand()
	assert.NotNil(t, cmd)
	assert.Equal(t, "lint", cmd.Name)
	assert.Equal(t, "Validate google.api.http bindings in proto files", cmd.Description)
	assert.NotNil(t, cmd.Flags)
	assert.NotNil(t, cmd.Run)
}

func TestLintFindProtoFiles(t *testing.T) {
	tests := []struct {
		name          string
		setupFiles    map[string]string
		config        *lint.Config
		expectedFiles []string
	}{
		{
			name: "single proto file",
			setupFiles: map[string]string{
				"test.proto": "syntax = \"proto3\";",
			},
			expectedFiles: []string{"test.proto"},
		},
		{
			name: "multiple proto files",
			setupFiles: map[string]string{
				"test1.proto": "syntax = \"proto3\";",
				"test2.proto": "syntax = \"proto3\";",
			},
			expectedFiles: []string{"test1.proto", "test2.proto"},
		},
		{
			name: "nested proto files",
			setupFiles: map[string]string{
				"test.proto":     "syntax = \"proto3\";",
				"sub/test.proto": "syntax = \"proto3\";",
			},
			expectedFiles: []string{"test.proto", filepath.Join("sub", "test.proto")},
		},
		{
			name: "skip hidden directories",
			setupFiles: map[string]string{
				"test.proto":         "syntax = \"proto3\";",
				".hidden/skip.proto": "syntax = \"proto3\";",
			},
			expectedFiles: []string{"test.proto"},
		},
		{
			name: "skip vendor and third_party",
			setupFiles: map[string]string{
				"test.proto":              "syntax = \"proto3\";",
				"vendor/dep.proto":        "syntax = \"proto3\";",
				"third_party/api.proto":   "syntax = \"proto3\";",
				"nested/vendor/dep.proto": "syntax = \"proto3\";",
			},
			expectedFiles: []string{"test.proto"},
		},
		{
			name: "ignore non-proto files",
			setupFiles: map[string]string{
				"test.proto": "syntax = \"proto3\";",
				"README.md":  "# readme",
				"data.json":  "{}",
			},
			expectedFiles: []string{"test.proto"},
		},
		{
			name: "config ignore globs",
			setupFiles: map[string]string{
				"test.proto":     "syntax = \"proto3\";",
				"gen/out.proto":  "syntax = \"proto3\";",
				"leg.gen.proto":  "syntax = \"proto3\";",
				"keep/api.proto": "syntax = \"proto3\";",
			},
			config: &lint.Config{
				Version: "1",
				Lint: lint.LintRules{
					Ignore: []string{"gen/**", "*.gen.proto"},
				},
			},
			expectedFiles: []string{"test.proto", filepath.Join("keep", "api.proto")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeProtoFiles(t, tt.setupFiles)

			config := tt.config
			if config == nil {
				config = lint.DefaultConfig()
			}

			files, err := lintFindProtoFiles(dir, config)
			require.NoError(t, err)
			assert.ElementsMatch(t, tt.expectedFiles, files)
		})
	}
}

func TestRunLint_CleanDirectory(t *testing.T) {
	dir := writeProtoFiles(t, map[string]string{"thing.proto": lintCleanProto})

	output, err := captureStdout(t, func() error {
		return runLint(lintOptions{dir: dir, format: "text", failOnError: true})
	})

	require.NoError(t, err)
	assert.Contains(t, output, "Summary:")
	assert.Contains(t, output, "Errors:      0")
	assert.Contains(t, output, "✓ All HTTP bindings passed")
}

func TestRunLint_Violation(t *testing.T) {
	dir := writeProtoFiles(t, map[string]string{"thing.proto": lintMapParamProto})

	output, err := captureStdout(t, func() error {
		return runLint(lintOptions{dir: dir, format: "text", failOnError: true})
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "lint failed with 1 errors")
	assert.Contains(t, output, "thing.proto:")
	assert.Contains(t, output, "MAP_PARAM")
	assert.Contains(t, output, "cannot be mapped as an HTTP parameter")
	assert.NotContains(t, output, "✓")
}

func TestRunLint_NoFailOnError(t *testing.T) {
	dir := writeProtoFiles(t, map[string]string{"thing.proto": lintMapParamProto})

	output, err := captureStdout(t, func() error {
		return runLint(lintOptions{dir: dir, format: "text", failOnError: false})
	})

	require.NoError(t, err)
	assert.Contains(t, output, "MAP_PARAM")
}

func TestRunLint_EmptyDirectory(t *testing.T) {
	dir := t.TempDir()

	output, err := captureStdout(t, func() error {
		return runLint(lintOptions{dir: dir, format: "text", failOnError: true})
	})

	require.NoError(t, err)
	assert.Contains(t, output, "No proto files found")
}

func TestRunLint_JSONFormat(t *testing.T) {
	dir := writeProtoFiles(t, map[string]string{"thing.proto": lintMapParamProto})

	output, err := captureStdout(t, func() error {
		return runLint(lintOptions{dir: dir, format: "json", failOnError: true})
	})

	require.NoError(t, err)

	var payload struct {
		Results []lint.Result `json:"results"`
		Summary diag.Summary  `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &payload))

	require.Len(t, payload.Results, 1)
	assert.Equal(t, "thing.proto", payload.Results[0].File)
	require.Len(t, payload.Results[0].Diagnostics, 1)
	assert.Equal(t, diag.KindMapParam, payload.Results[0].Diagnostics[0].Kind)
	assert.Equal(t, 1, payload.Summary.Errors)
}

func TestRunLint_GitHubFormat(t *testing.T) {
	dir := writeProtoFiles(t, map[string]string{"thing.proto": lintMapParamProto})

	output, err := captureStdout(t, func() error {
		return runLint(lintOptions{dir: dir, format: "github", failOnError: true})
	})

	require.NoError(t, err)
	assert.Contains(t, output, "::error file=thing.proto,line=")
	assert.Contains(t, output, "[MAP_PARAM]")
}

func TestRunLint_ConfigDisablesCheck(t *testing.T) {
	dir := writeProtoFiles(t, map[string]string{
		"thing.proto": lintMapParamProto,
		"httplint.yaml": `version: "1"
lint:
  disable:
    - MAP_PARAM
`,
	})

	output, err := captureStdout(t, func() error {
		return runLint(lintOptions{dir: dir, format: "text", failOnError: true})
	})

	require.NoError(t, err)
	assert.NotContains(t, output, "MAP_PARAM")
	assert.Contains(t, output, "✓ All HTTP bindings passed")
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"", nil},
		{"a", []string{"a"}},
		{"a,b", []string{"a", "b"}},
		{" a , b ", []string{"a", "b"}},
		{"a,,b", []string{"a", "b"}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, splitList(tt.input), "input %q", tt.input)
	}
}
