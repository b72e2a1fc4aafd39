package dataprocessing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/astrogo/fitsio"

	apperrors "exoradio/internal/errors"
	"exoradio/pkg/contracts/domain"
)

var (
	// ErrNoTableHDU means the file has no HDU at the requested index
	ErrNoTableHDU = errors.New("no extension HDU at requested index")
	// ErrNotTable means the HDU exists but holds an image
	ErrNotTable = errors.New("HDU is not a table")
	// ErrMissingColumn means a required catalog column is absent
	ErrMissingColumn = errors.New("required column missing")
)

// LoadCatalog reads every row of the table at HDU index hdu of the FITS file
// at path. Returned records are keyed by the canonical column names in
// domain.RequiredColumns, whatever their case in the file.
func LoadCatalog(ctx context.Context, path string, hdu int) ([]domain.RawRecord, error) {
	r, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewIOError("open catalog", err).WithContext("path", path)
	}
	defer r.Close()

	f, err := fitsio.Open(r)
	if err != nil {
		return nil, apperrors.NewFormatError("decode FITS file", err).WithContext("path", path)
	}
	defer f.Close()

	if hdu < 0 || hdu >= len(f.HDUs()) {
		return nil, apperrors.NewFormatError("select HDU", ErrNoTableHDU).
			WithContext("hdu", hdu).
			WithContext("hdus", len(f.HDUs()))
	}

	table, ok := f.HDU(hdu).(*fitsio.Table)
	if !ok {
		return nil, apperrors.NewFormatError("select HDU", ErrNotTable).WithContext("hdu", hdu)
	}

	names, err := resolveColumns(table)
	if err != nil {
		return nil, err
	}

	n := table.NumRows()
	slog.DebugContext(ctx, "Reading catalog table",
		slog.String("path", path),
		slog.String("table", table.Name()),
		slog.Int64("rows", n),
		slog.Int("columns", table.NumCols()))

	rows, err := table.Read(0, n)
	if err != nil {
		return nil, apperrors.NewFormatError("read table rows", err)
	}
	defer rows.Close()

	records := make([]domain.RawRecord, 0, n)
	for rows.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		data := map[string]interface{}{}
		if err := rows.Scan(&data); err != nil {
			return nil, apperrors.NewFormatError("scan table row", err).WithContext("row", len(records)+1)
		}

		values := make(map[string]interface{}, len(names))
		for canonical, actual := range names {
			values[canonical] = data[actual]
		}
		records = append(records, domain.RawRecord{Row: len(records) + 1, Values: values})
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewFormatError("iterate table rows", err)
	}

	return records, nil
}

// resolveColumns maps each required column to its name in the table,
// matching exactly first and then ignoring case.
func resolveColumns(table *fitsio.Table) (map[string]string, error) {
	exact := make(map[string]string, table.NumCols())
	folded := make(map[string]string, table.NumCols())
	for _, col := range table.Cols() {
		exact[col.Name] = col.Name
		key := strings.ToLower(col.Name)
		if _, dup := folded[key]; !dup {
			folded[key] = col.Name
		}
	}

	names := make(map[string]string, len(domain.RequiredColumns))
	var missing []string
	for _, want := range domain.RequiredColumns {
		if name, ok := exact[want]; ok {
			names[want] = name
			continue
		}
		if name, ok := folded[strings.ToLower(want)]; ok {
			names[want] = name
			continue
		}
		missing = append(missing, want)
	}

	if len(missing) > 0 {
		return nil, apperrors.NewSchemaError(
			fmt.Sprintf("catalog lacks %s", strings.Join(missing, ", ")),
			ErrMissingColumn,
		).WithContext("table", table.Name())
	}
	return names, nil
}
