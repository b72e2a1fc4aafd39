package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "exoradio/internal/errors"
)

// chdir switches into dir for the duration of the test
func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(orig) })
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "asu.fit", cfg.Input.Path)
	assert.Equal(t, 1, cfg.Input.HDU)
	assert.Equal(t, ".", cfg.Output.Dir)
	assert.Equal(t, 1.0, cfg.Filter.FcThreshold)
	assert.Equal(t, 1.0, cfg.Filter.FluxThreshold)
	assert.False(t, cfg.Export.XLSX)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Output)
	assert.False(t, cfg.Tracing.Enabled)
	assert.Empty(t, cfg.Metrics.Textfile)
	assert.Empty(t, cfg.History.DBPath)
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		fileContent string
		wantErr     bool
		validateCfg func(*testing.T, *Config)
	}{
		{
			name: "defaults with no file and no env",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, Default(), cfg)
			},
		},
		{
			name: "file overrides defaults",
			fileContent: `
input:
  path: data/catalog.fits
output:
  dir: reports
filter:
  fc_threshold: 2.5
export:
  xlsx: true
`,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "data/catalog.fits", cfg.Input.Path)
				assert.Equal(t, 1, cfg.Input.HDU, "unset keys keep defaults")
				assert.Equal(t, "reports", cfg.Output.Dir)
				assert.Equal(t, 2.5, cfg.Filter.FcThreshold)
				assert.Equal(t, 1.0, cfg.Filter.FluxThreshold)
				assert.True(t, cfg.Export.XLSX)
			},
		},
		{
			name: "env overrides file",
			fileContent: `
logging:
  level: warn
filter:
  flux_threshold: 3
`,
			env: map[string]string{
				"EXORADIO_LOGGING_LEVEL":         "debug",
				"EXORADIO_FILTER_FLUX_THRESHOLD": "0.5",
				"EXORADIO_HISTORY_DB_PATH":       "runs.db",
			},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, 0.5, cfg.Filter.FluxThreshold)
				assert.Equal(t, "runs.db", cfg.History.DBPath)
			},
		},
		{
			name:    "invalid log level rejected",
			env:     map[string]string{"EXORADIO_LOGGING_LEVEL": "verbose"},
			wantErr: true,
		},
		{
			name:        "invalid yaml rejected",
			fileContent: "input: [unterminated",
			wantErr:     true,
		},
		{
			name:    "unparsable env value rejected",
			env:     map[string]string{"EXORADIO_FILTER_FC_THRESHOLD": "one"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			chdir(t, dir)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			configFile := ""
			if tt.fileContent != "" {
				configFile = filepath.Join(dir, "exoradio.yaml")
				require.NoError(t, os.WriteFile(configFile, []byte(tt.fileContent), 0644))
			}

			cfg, err := Load(configFile)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, apperrors.ErrTypeConfig, apperrors.TypeOf(err))
				return
			}
			require.NoError(t, err)
			tt.validateCfg(t, cfg)
		})
	}
}

func TestLoadDiscoversConfigFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.MkdirAll("configs", 0755))
	require.NoError(t, os.WriteFile(filepath.Join("configs", "config.yaml"), []byte("output:\n  dir: found\n"), 0644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "found", cfg.Output.Dir)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := Load("does-not-exist.yaml")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrTypeConfig, apperrors.TypeOf(err))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"default is valid", func(c *Config) {}, false},
		{"empty input path", func(c *Config) { c.Input.Path = "" }, true},
		{"hdu zero is the primary image", func(c *Config) { c.Input.HDU = 0 }, true},
		{"empty output dir", func(c *Config) { c.Output.Dir = "" }, true},
		{"unknown log output", func(c *Config) { c.Logging.Output = "syslog" }, true},
		{"file output needs a path", func(c *Config) {
			c.Logging.Output = "file"
			c.Logging.FilePath = ""
		}, true},
		{"console output without path", func(c *Config) { c.Logging.FilePath = "" }, false},
		{"metrics textfile must end in .prom", func(c *Config) { c.Metrics.Textfile = "metrics.txt" }, true},
		{"metrics textfile ok", func(c *Config) { c.Metrics.Textfile = "node/exoradio.prom" }, false},
		{"negative thresholds allowed", func(c *Config) { c.Filter.FcThreshold = -1 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfigString(t *testing.T) {
	s := Default().String()
	assert.Contains(t, s, "fc_threshold: 1")
	assert.Contains(t, s, "path: asu.fit")
}
