package validation

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	apperrors "exoradio/internal/errors"
)

// fitsSignature opens the first header card of every FITS file
var fitsSignature = []byte("SIMPLE  =")

// ErrNotFITS means a file does not start with a FITS primary header
var ErrNotFITS = errors.New("missing FITS primary header")

// FileValidator checks input files before they are decoded
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{
		logger: logger,
	}
}

// ValidateFile checks that path exists, is a regular file and is readable
func (v *FileValidator) ValidateFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		v.logger.Error("Failed to stat file",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return apperrors.NewIOError("input file not accessible", err).WithContext("path", path)
	}
	if info.IsDir() {
		v.logger.Error("Path is a directory, not a file",
			slog.String("path", path))
		return apperrors.NewIOError("input path is a directory", nil).WithContext("path", path)
	}

	file, err := os.Open(path)
	if err != nil {
		v.logger.Error("File is not readable",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return apperrors.NewIOError("input file not readable", err).WithContext("path", path)
	}
	file.Close()

	v.logger.Debug("File validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}

// ValidateFITSFile checks that path is a readable file starting with a
// FITS primary header
func (v *FileValidator) ValidateFITSFile(path string) error {
	if err := v.ValidateFile(path); err != nil {
		return err
	}

	file, err := os.Open(path)
	if err != nil {
		return apperrors.NewIOError("input file not readable", err).WithContext("path", path)
	}
	defer file.Close()

	head := make([]byte, len(fitsSignature))
	if _, err := io.ReadFull(file, head); err != nil {
		v.logger.Error("File too short for a FITS header",
			slog.String("file", path))
		return apperrors.NewFormatError("input is not a FITS file",
			fmt.Errorf("%w: %v", ErrNotFITS, err)).WithContext("path", path)
	}
	if !bytes.Equal(head, fitsSignature) {
		v.logger.Error("File is not a FITS file",
			slog.String("file", path),
			slog.String("signature", string(head)))
		return apperrors.NewFormatError("input is not a FITS file", ErrNotFITS).WithContext("path", path)
	}
	return nil
}
