package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/astrogo/fitsio"
	"github.com/stretchr/testify/require"
)

// CatalogRow is one row of a synthetic catalog. Every field is written as
// a fixed-width text column, matching the archive the tool consumes.
type CatalogRow struct {
	Planet string
	Fc     string
	PhiMag string
	PhiKin string
	PhiCME string
}

// CatalogColumns are the column names written by WriteCatalogFITS
var CatalogColumns = []string{"Planet", "fc", "Phimag", "Phikin", "PhiCME"}

// WriteCatalogFITS writes rows as a binary table in HDU 1 of a new FITS
// file at dir/name and returns its path.
func WriteCatalogFITS(t *testing.T, dir, name string, rows []CatalogRow) string {
	t.Helper()
	return WriteTableFITS(t, dir, name, CatalogColumns, catalogCells(rows))
}

// WriteTableFITS writes an arbitrary all-text binary table. Each cell row
// must have one value per column.
func WriteTableFITS(t *testing.T, dir, name string, columns []string, cells [][]string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	w, err := os.Create(path)
	require.NoError(t, err)
	defer w.Close()

	f, err := fitsio.Create(w)
	require.NoError(t, err)

	phdu, err := fitsio.NewPrimaryHDU(nil)
	require.NoError(t, err)
	require.NoError(t, f.Write(phdu))

	cols := make([]fitsio.Column, len(columns))
	for i, c := range columns {
		cols[i] = fitsio.Column{Name: c, Format: "24A"}
	}
	table, err := fitsio.NewTable("catalog", cols, fitsio.BINARY_TBL)
	require.NoError(t, err)

	for _, row := range cells {
		require.Len(t, row, len(columns))
		args := make([]interface{}, len(row))
		for i := range row {
			v := row[i]
			args[i] = &v
		}
		require.NoError(t, table.Write(args...))
	}

	require.NoError(t, f.Write(table))
	require.NoError(t, table.Close())
	require.NoError(t, f.Close())
	return path
}

// WritePrimaryOnlyFITS writes a FITS file with no extension HDU
func WritePrimaryOnlyFITS(t *testing.T, dir, name string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	w, err := os.Create(path)
	require.NoError(t, err)
	defer w.Close()

	f, err := fitsio.Create(w)
	require.NoError(t, err)
	phdu, err := fitsio.NewPrimaryHDU(nil)
	require.NoError(t, err)
	require.NoError(t, f.Write(phdu))
	require.NoError(t, f.Close())
	return path
}

func catalogCells(rows []CatalogRow) [][]string {
	cells := make([][]string, len(rows))
	for i, r := range rows {
		cells[i] = []string{r.Planet, r.Fc, r.PhiMag, r.PhiKin, r.PhiCME}
	}
	return cells
}
