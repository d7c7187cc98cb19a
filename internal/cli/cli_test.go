package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// isolate points the default config location at an empty home directory
func isolate(t *testing.T) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func newMount(t *testing.T) string {
	t.Helper()
	mount := t.TempDir()
	writeFile(t, filepath.Join(mount, "DCIM", "100CANON", "IMG_0001.JPG"), "jpeg")
	writeFile(t, filepath.Join(mount, "DCIM", "100CANON", "IMG_0001.THM"), "thm")
	writeFile(t, filepath.Join(mount, "DCIM", "101CANON", "MVI_0002.MOV"), "movie")
	return mount
}

func TestDownload(t *testing.T) {
	isolate(t)
	mount := newMount(t)
	dest := filepath.Join(t.TempDir(), "photos")

	out, err := execute(t, "download", "--device", mount, "--source", "/DCIM", "--dest", dest, "--exclude", "*.THM")
	require.NoError(t, err, out)

	assert.Contains(t, out, "[1/2] copied /DCIM/100CANON/IMG_0001.JPG (4 B)")
	assert.Contains(t, out, "[2/2] copied /DCIM/101CANON/MVI_0002.MOV (5 B)")
	assert.Contains(t, out, "Status: success")
	assert.FileExists(t, filepath.Join(dest, "100CANON", "IMG_0001.JPG"))
	assert.NoFileExists(t, filepath.Join(dest, "100CANON", "IMG_0001.THM"))

	// Second run finds everything in place
	out, err = execute(t, "download", "--device", mount, "--source", "/DCIM", "--dest", dest, "--exclude", "*.THM")
	require.NoError(t, err, out)
	assert.Contains(t, out, "[1/2] skipped_exists /DCIM/100CANON/IMG_0001.JPG")

	// Without skip-existing everything is copied again
	out, err = execute(t, "download", "--device", mount, "--source", "/DCIM", "--dest", dest, "--skip-existing=false", "--file-regex", `\.MOV$`)
	require.NoError(t, err, out)
	assert.Contains(t, out, "[1/1] copied /DCIM/101CANON/MVI_0002.MOV")
}

func TestDownload_Move(t *testing.T) {
	isolate(t)
	mount := newMount(t)
	dest := t.TempDir()

	out, err := execute(t, "download", "--device", mount, "--source", "/DCIM/100CANON", "--dest", dest, "--move")
	require.NoError(t, err, out)

	assert.FileExists(t, filepath.Join(dest, "IMG_0001.JPG"))
	assert.NoFileExists(t, filepath.Join(mount, "DCIM", "100CANON", "IMG_0001.JPG"))
	assert.FileExists(t, filepath.Join(mount, "DCIM", "101CANON", "MVI_0002.MOV"))
}

func TestDownload_MissingSource(t *testing.T) {
	isolate(t)
	mount := newMount(t)

	_, err := execute(t, "download", "--device", mount, "--source", "/Pictures", "--dest", t.TempDir())
	assert.Error(t, err)
}

func TestDownload_InvalidRegex(t *testing.T) {
	isolate(t)
	mount := newMount(t)

	_, err := execute(t, "download", "--device", mount, "--source", "/DCIM", "--dest", t.TempDir(), "--file-regex", "(")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "filters.file_regex")
}

func TestDownload_Bandwidth(t *testing.T) {
	isolate(t)
	mount := newMount(t)
	dest := t.TempDir()

	out, err := execute(t, "download", "--device", mount, "--source", "/DCIM/101CANON", "--dest", dest, "--bandwidth", "10MB")
	require.NoError(t, err, out)
	assert.FileExists(t, filepath.Join(dest, "MVI_0002.MOV"))

	_, err = execute(t, "download", "--device", mount, "--source", "/DCIM", "--dest", dest, "--bandwidth", "fast")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transfer.bandwidth_limit")
}

func TestDownload_DryRunJSON(t *testing.T) {
	isolate(t)
	mount := newMount(t)
	dest := t.TempDir()

	out, err := execute(t, "download", "--device", mount, "--source", "/DCIM", "--dest", dest, "--dry-run", "--output", "json")
	require.NoError(t, err, out)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	var last struct {
		Type string `json:"type"`
		Data struct {
			DryRun bool `json:"dry_run"`
			Stats  struct {
				FilesPlanned int `json:"files_planned"`
			} `json:"stats"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &last))
	assert.Equal(t, "complete", last.Type)
	assert.True(t, last.Data.DryRun)
	assert.Equal(t, 3, last.Data.Stats.FilesPlanned)

	entries, err := os.ReadDir(dest)
	require.NoError(t, err)
	assert.Empty(t, entries, "dry run must not copy")
}

func TestUpload(t *testing.T) {
	isolate(t)
	mount := t.TempDir()
	src := t.TempDir()
	writeFile(t, filepath.Join(src, "a.jpg"), "hello")
	writeFile(t, filepath.Join(src, "sub", "b.mp4"), "video")

	out, err := execute(t, "upload", "--device", mount, "--source", src, "--dest", "/DCIM/Camera", "--move", "-o", "human")
	require.NoError(t, err, out)

	data, err := os.ReadFile(filepath.Join(mount, "DCIM", "Camera", "sub", "b.mp4"))
	require.NoError(t, err)
	assert.Equal(t, "video", string(data))
	assert.NoFileExists(t, filepath.Join(src, "a.jpg"))
}

func TestUpload_MissingSource(t *testing.T) {
	isolate(t)
	_, err := execute(t, "upload", "--device", t.TempDir(), "--source", filepath.Join(t.TempDir(), "nope"), "--dest", "/DCIM")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source path does not exist")
}

func TestStrategies(t *testing.T) {
	isolate(t)
	out, err := execute(t, "strategies")
	require.NoError(t, err)

	assert.Contains(t, out, "1. Standard")
	assert.Contains(t, out, "4. MetadataProbe")
	assert.Contains(t, out, "delay 500ms")
}

func TestStrategies_FromConfig(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "strategies:\n  - name: Only\n    delay: 2s\n")

	out, err := execute(t, "--config", path, "strategies")
	require.NoError(t, err)
	assert.Equal(t, "1. Only             delay 2s\n", out)
}

func TestClassify(t *testing.T) {
	out, err := execute(t, "classify", "IMG_0001.JPG", ".mov", "thm", "notes.xyz")
	require.NoError(t, err)

	assert.Contains(t, out, "IMG_0001.JPG\timage")
	assert.Contains(t, out, ".mov\tvideo")
	assert.Contains(t, out, "thm\tmetadata")
	assert.Contains(t, out, "notes.xyz\tunknown")
}

func TestConfigInitAndShow(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "cfg", "config.yaml")

	out, err := execute(t, "--config", path, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, path)
	assert.FileExists(t, path)

	_, err = execute(t, "--config", path, "config", "init")
	assert.Error(t, err, "init must not overwrite without --force")

	_, err = execute(t, "--config", path, "config", "init", "--force")
	assert.NoError(t, err)

	out, err = execute(t, "--config", path, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "skip_existing: true")
	assert.Contains(t, out, "name: StreamRetry")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, Version+"\n", out)
}

func TestExitError(t *testing.T) {
	inner := errors.New("device not connected")
	err := error(&ExitError{Code: 2, Err: inner})
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, "device not connected", err.Error())
	assert.Equal(t, "exit status 1", (&ExitError{Code: 1}).Error())
}

