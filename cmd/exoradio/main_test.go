package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exoradio/internal/infrastructure"
	"exoradio/internal/shared/testutil"
)

func run(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	infrastructure.ResetLoggerForTesting()
	t.Cleanup(infrastructure.ResetLoggerForTesting)

	var stdout, stderr bytes.Buffer
	code := execute(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func writeCatalog(t *testing.T, dir string) string {
	t.Helper()
	return testutil.WriteCatalogFITS(t, dir, "asu.fit", []testutil.CatalogRow{
		{Planet: "A", Fc: "0.5", PhiMag: "5", PhiKin: "0", PhiCME: "0"},
		{Planet: "B", Fc: "2", PhiMag: "0", PhiKin: "1.5", PhiCME: "0"},
		{Planet: "C", Fc: "3", PhiMag: "0", PhiKin: "0", PhiCME: "2"},
	})
}

func TestVersionCommand(t *testing.T) {
	code, stdout, _ := run(t, "version")
	assert.Equal(t, 0, code)
	assert.True(t, strings.HasPrefix(stdout, "exoradio v"))
}

func TestFilteredCommand(t *testing.T) {
	dir := t.TempDir()
	input := writeCatalog(t, dir)
	out := filepath.Join(dir, "reports")

	code, stdout, stderr := run(t, "filtered", "--input", input, "--out", out)
	require.Equal(t, 0, code, stderr)

	assert.Contains(t, stdout, "Planets with fc > 1 MHz: 2\n")
	assert.Contains(t, stdout, "Planets with fc > 1 AND any flux > 1: 2\n")
	assert.Contains(t, stdout, "CSV created: "+filepath.Join(out, "exoplanets_fc_and_flux_over1.csv"))
	assert.FileExists(t, filepath.Join(out, "exoplanets_fc_and_flux_over1.pdf"))
	assert.NoFileExists(t, filepath.Join(out, "exoplanets_fc_and_flux_over1.xlsx"))
}

func TestFullCommandWithConfigFile(t *testing.T) {
	dir := t.TempDir()
	input := writeCatalog(t, dir)
	out := filepath.Join(dir, "all")
	db := filepath.Join(dir, "history.db")
	prom := filepath.Join(dir, "metrics", "exoradio.prom")

	cfgPath := filepath.Join(dir, "exoradio.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(fmt.Sprintf(`
input:
  path: %q
output:
  dir: %q
export:
  xlsx: true
metrics:
  textfile: %q
history:
  db_path: %q
`, input, out, prom, db)), 0644))

	code, stdout, stderr := run(t, "full", "--config", cfgPath)
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "XLSX created: "+filepath.Join(out, "exoplanets_all.xlsx"))
	assert.NotContains(t, stdout, "Planets with fc")
	assert.FileExists(t, filepath.Join(out, "exoplanets_all.csv"))
	assert.FileExists(t, prom)

	code, stdout, stderr = run(t, "history", "--config", cfgPath, "--limit", "5")
	require.Equal(t, 0, code, stderr)
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "RUN ID"))
	assert.Contains(t, lines[1], "full")
	assert.Contains(t, lines[1], "success")
}

func TestXLSXFlagOverridesConfig(t *testing.T) {
	dir := t.TempDir()
	input := writeCatalog(t, dir)

	code, stdout, stderr := run(t, "filtered", "--input", input, "--out", dir, "--xlsx")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "XLSX created:")
}

func TestCommandErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"unknown command", []string{"bogus"}, "unknown command"},
		{"missing input", []string{"filtered", "--input", filepath.Join(dir, "absent.fit"), "--out", dir}, "stage load"},
		{"missing config", []string{"full", "--config", filepath.Join(dir, "absent.yaml")}, "config file not readable"},
		{"history disabled", []string{"history"}, "run history is disabled"},
		{"stray argument", []string{"full", "extra"}, "unknown command"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := run(t, tt.args...)
			assert.Equal(t, 1, code)
			assert.Contains(t, stderr, tt.wantErr)
		})
	}
}
