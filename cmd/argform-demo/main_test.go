package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-argform/pkg/testsupport"
)

func execute(t *testing.T, env map[string]string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand(func(key string) string { return env[key] })
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

func TestInspect_DefaultForm(t *testing.T) {
	out, err := execute(t, nil, "--inspect")
	require.NoError(t, err)

	var report inspection
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "Argform Demo", report.Title)
	assert.Equal(t, []string{"defaultpositionalvalue"}, report.Argv)
	assert.Equal(t, "argform_demo defaultpositionalvalue", report.Command)
	require.Len(t, report.Controls, 9)

	choices := report.Controls[1]
	assert.Equal(t, "choices", choices.Name)
	assert.Equal(t, "select", choices.Kind)
	assert.Equal(t, []string{"", "a", "b", "c"}, choices.Options)

	dir := report.Controls[2]
	assert.Equal(t, "directory", dir.Path)
	assert.False(t, dir.Required)
	assert.True(t, report.Controls[0].Required)
}

func TestInspect_MatchesGolden(t *testing.T) {
	out, err := execute(t, nil, "--inspect")
	require.NoError(t, err)
	testsupport.AssertGolden(t, filepath.Join("testdata", "inspect_default.golden.json"), []byte(out))
}

func TestInspect_PrefillFromEnvironment(t *testing.T) {
	env := map[string]string{"ARGFORM_PREFILL": `"hello world" --int 3 --storetrue --choices b`}
	out, err := execute(t, env, "--inspect")
	require.NoError(t, err)

	var report inspection
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, []string{"hello world", "--choices", "b", "--storetrue=true", "--int", "3"}, report.Argv)
	assert.Equal(t, `argform_demo 'hello world' --choices b --storetrue=true --int 3`, report.Command)
}

func TestInspect_OverlayFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.yaml")
	data := []byte("form:\n  title: Ipsum streamer\nfields:\n  input_dir:\n    label: Source folder\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	out, err := execute(t, nil, "--inspect", "--overlay", path)
	require.NoError(t, err)

	var report inspection
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "Ipsum streamer", report.Title)
	assert.Equal(t, "Source folder", report.Controls[2].Label)
}

func TestRun_Errors(t *testing.T) {
	_, err := execute(t, nil, "--inspect", "--prefill", `"unterminated`)
	assert.Error(t, err)

	_, err = execute(t, nil, "--inspect", "--overlay", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = execute(t, nil, "--frontend", "gtk")
	assert.Error(t, err)

	_, err = execute(t, nil, "stray")
	assert.Error(t, err)
}
