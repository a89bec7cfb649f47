package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/cookiejar/internal/shell"
	"github.com/mesh-intelligence/cookiejar/pkg/types"
)

// execute runs the root command with args against a temporary config
// directory, feeding stdin, and returns stdout, stderr, and the error.
func execute(t *testing.T, configDir, stdin string, args ...string) (string, string, error) {
	t.Helper()
	for _, k := range []string{"CAPACITY", "MARKER", "IDS", "LOG_LEVEL", "COLOR"} {
		t.Setenv("COOKIEJAR_"+k, "")
	}

	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--config-dir", configDir, "--no-color"}, args...))
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func writeConfig(t *testing.T, dir, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileExt), []byte(body), 0o644))
}

func TestVersionCmd(t *testing.T) {
	out, _, err := execute(t, t.TempDir(), "", "version")
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("cookiejar v%s\nmodule: %s\n", Version, modulePath), out)
}

func TestFirstRunWritesDefaultConfig(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "fresh")
	_, _, err := execute(t, dir, "", "config")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, configFileExt))
	require.NoError(t, err)
	assert.Equal(t, defaultConfigYAML, string(data))
}

func TestConfigCmd(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		args     []string
		wantSubs []string
		wantErr  error
	}{
		{
			name:     "defaults",
			wantSubs: []string{"capacity: 12", "ids: sequence", "log_level: warn", "color: false"},
		},
		{
			name:     "file values",
			file:     "capacity: 5\nids: uuid\nlog_level: debug\n",
			wantSubs: []string{"capacity: 5", "ids: uuid", "log_level: debug"},
		},
		{
			name:     "flags override file",
			file:     "capacity: 5\nids: uuid\n",
			args:     []string{"--capacity", "7", "--ids", "sequence", "--marker", "o"},
			wantSubs: []string{"capacity: 7", "ids: sequence", "marker: o"},
		},
		{
			name:    "non-integral capacity in file",
			file:    "capacity: 3.5\n",
			wantErr: types.ErrInvalidCapacity,
		},
		{
			name:    "negative capacity flag",
			args:    []string{"--capacity", "-1"},
			wantErr: types.ErrInvalidCapacity,
		},
		{
			name:    "unknown id scheme",
			args:    []string{"--ids", "snowflake"},
			wantErr: types.ErrUnknownIDScheme,
		},
		{
			name:    "unknown log level",
			file:    "log_level: chatty\n",
			wantErr: types.ErrLogLevelUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if tt.file != "" {
				writeConfig(t, dir, tt.file)
			}
			out, _, err := execute(t, dir, "", append([]string{"config"}, tt.args...)...)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, exitUserError, exitCode(err))
				return
			}
			require.NoError(t, err)
			for _, sub := range tt.wantSubs {
				assert.Contains(t, out, sub)
			}
		})
	}
}

func TestConfigCmdJSON(t *testing.T) {
	out, _, err := execute(t, t.TempDir(), "", "config", "--json")
	require.NoError(t, err)

	var cfg types.Config
	require.NoError(t, json.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, types.DefaultCapacity, cfg.Capacity)
	assert.Equal(t, types.DefaultMarker, cfg.Marker)
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "capacity: 5\n")

	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"--config-dir", dir, "config"})
	t.Setenv("COOKIEJAR_CAPACITY", "9")
	t.Setenv("COOKIEJAR_MARKER", "")
	t.Setenv("COOKIEJAR_IDS", "")
	t.Setenv("COOKIEJAR_LOG_LEVEL", "")
	t.Setenv("COOKIEJAR_COLOR", "")

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "capacity: 9")
}

func TestDotEnvFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, envFileName), []byte("COOKIEJAR_LOG_LEVEL=info\n"), 0o644))

	_, present := os.LookupEnv("COOKIEJAR_LOG_LEVEL")
	require.False(t, present, "COOKIEJAR_LOG_LEVEL must not be set for this test")
	t.Cleanup(func() { os.Unsetenv("COOKIEJAR_LOG_LEVEL") })

	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"--config-dir", dir, "config"})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "log_level: info")
}

func TestShellCmd(t *testing.T) {
	script := "deposit sugar 3\ndeposit sugar\nwithdraw\nshow\nsize\n"
	out, _, err := execute(t, t.TempDir(), script, "shell", "--capacity", "3", "--marker", "o")
	require.NoError(t, err)

	assert.Contains(t, out, "+ Sugar#3\n")
	assert.Contains(t, out, "error: "+types.ErrCapacityExceeded.Error())
	assert.Contains(t, out, "- Sugar#3\n")
	assert.Contains(t, out, "oo\n")
	assert.Contains(t, out, "2/3\n")
	assert.NotContains(t, out, shellPrompt, "no prompt when stdin is not a terminal")
}

func TestRootRunsShell(t *testing.T) {
	out, _, err := execute(t, t.TempDir(), "deposit snickerdoodle\nsize\n")
	require.NoError(t, err)
	assert.Contains(t, out, "1/12\n")
}

func TestShellCmdLogsToStderr(t *testing.T) {
	out, errOut, err := execute(t, t.TempDir(), "deposit sugar\n", "shell", "--log-level", "debug")
	require.NoError(t, err)
	assert.Contains(t, out, "+ Sugar#1")
	assert.Contains(t, errOut, "msg=deposit")
	assert.Contains(t, errOut, `msg="jar ready" capacity=12`)
}

func TestShellCmdUUIDs(t *testing.T) {
	out, _, err := execute(t, t.TempDir(), "deposit sugar\nwithdraw\n", "shell", "--ids", "uuid", "--json")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	var c struct {
		ID   string `json:"id"`
		Type string `json:"type"`
	}
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &c))
	assert.Equal(t, "Sugar", c.Type)
	_, err = uuid.Parse(c.ID)
	assert.NoError(t, err)
}

func TestDemoCmd(t *testing.T) {
	out, _, err := execute(t, t.TempDir(), "", "demo")
	require.NoError(t, err)

	assert.Contains(t, out, "## newest first, then oldest of a type (capacity 10)")
	assert.Contains(t, out, "$ withdraw\n- Chocolate Chip#8\n")
	assert.Contains(t, out, "$ withdraw chocolate chip\n- Chocolate Chip#1\n$ size\n6/10\n")
	assert.Contains(t, out, "$ deposit sugar\nerror: "+types.ErrCapacityExceeded.Error())
	assert.Contains(t, out, "$ size\n3/3\n")
	assert.Contains(t, out, "$ withdraw sugar\nerror: "+types.ErrTypeUnavailable.Error())
	assert.Contains(t, out, "$ size\n2/5\n")
}

func TestTypesCmd(t *testing.T) {
	out, _, err := execute(t, t.TempDir(), "", "types")
	require.NoError(t, err)
	assert.Equal(t, "Chocolate Chip\nSugar\nOatmeal Raisin\nPeanut Butter\nSnickerdoodle\n", out)

	out, _, err = execute(t, t.TempDir(), "", "types", "--json")
	require.NoError(t, err)
	var names []string
	require.NoError(t, json.Unmarshal([]byte(out), &names))
	assert.Len(t, names, 5)
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("config: %w", types.ErrInvalidCapacity), exitUserError},
		{types.ErrUnknownIDScheme, exitUserError},
		{fmt.Errorf("x: %w", shell.ErrUsage), exitUserError},
		{errors.New(`unknown flag: --bogus`), exitUserError},
		{sysErr(errors.New("disk on fire")), exitSysError},
		{fmt.Errorf("run: %w", sysErr(errors.New("stdin closed"))), exitSysError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, exitCode(tt.err), tt.err.Error())
	}
	assert.Nil(t, sysErr(nil))
}

func TestCommandLineMistakesAreUserErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "extra argument", args: []string{"types", "extra"}},
		{name: "unknown flag", args: []string{"config", "--bogus"}},
		{name: "unknown subcommand", args: []string{"bake"}},
		{name: "bad flag value", args: []string{"shell", "--json=maybe"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, t.TempDir(), "", tt.args...)
			require.Error(t, err)
			assert.Equal(t, exitUserError, exitCode(err))
		})
	}
}

func TestUnusableConfigDirIsSystemError(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	_, _, err := execute(t, filepath.Join(file, "cookiejar"), "", "config")
	require.Error(t, err)
	assert.Equal(t, exitSysError, exitCode(err))
}
