package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains the resolved file system locations of one run.
// Relative configuration values are resolved against the working directory.
type Paths struct {
	WorkingDir string
	InputFile  string
	OutputDir  string
	LogFile    string
}

// GetPaths resolves the paths named by cfg
func GetPaths(cfg *Config) (*Paths, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	return &Paths{
		WorkingDir: wd,
		InputFile:  resolve(wd, cfg.Input.Path),
		OutputDir:  resolve(wd, cfg.Output.Dir),
		LogFile:    resolve(wd, cfg.Logging.FilePath),
	}, nil
}

func resolve(base, p string) string {
	if p == "" {
		return ""
	}
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(base, p)
}

// OutputPath returns the location of a report file inside the output directory.
// Any directory part of name is discarded.
func (p *Paths) OutputPath(name string) string {
	return filepath.Join(p.OutputDir, filepath.Base(name))
}

// EnsureDirectories creates the output directory if it doesn't exist
func (p *Paths) EnsureDirectories() error {
	if err := os.MkdirAll(p.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", p.OutputDir, err)
	}
	return nil
}

// LogPathResolution logs all resolved paths for debugging
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("Resolved paths",
		slog.String("working_dir", p.WorkingDir),
		slog.String("input_file", p.InputFile),
		slog.String("output_dir", p.OutputDir),
		slog.String("log_file", p.LogFile))
}
