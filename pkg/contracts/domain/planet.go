package domain

// Column names of the source table. These are the only fields the loader
// requires; any other columns in the table are ignored.
const (
	ColumnPlanet = "Planet"
	ColumnFc     = "fc"
	ColumnPhiMag = "Phimag"
	ColumnPhiKin = "Phikin"
	ColumnPhiCME = "PhiCME"
)

// RequiredColumns lists the source columns in export order.
var RequiredColumns = []string{ColumnPlanet, ColumnFc, ColumnPhiMag, ColumnPhiKin, ColumnPhiCME}

// NumericColumns lists the columns stored as text that must parse as numbers.
var NumericColumns = []string{ColumnFc, ColumnPhiMag, ColumnPhiKin, ColumnPhiCME}

// RawRecord is one row of the source table before type conversion.
// Values hold whatever the table decoder produced for each column:
// strings for character columns, Go numeric types for numeric columns.
type RawRecord struct {
	Row    int                    `json:"row"` // 1-based position in the source table
	Values map[string]interface{} `json:"values"`
}

// Record is one planet's radio emission prediction.
type Record struct {
	Row    int     `json:"row" db:"row"`
	Planet string  `json:"planet" db:"planet" validate:"required"`
	Fc     float64 `json:"fc" db:"fc"`           // cutoff frequency, MHz
	PhiMag float64 `json:"phi_mag" db:"phi_mag"` // magnetospheric flux density, mJy
	PhiKin float64 `json:"phi_kin" db:"phi_kin"` // kinetic flux density, mJy
	PhiCME float64 `json:"phi_cme" db:"phi_cme"` // CME-driven flux density, mJy
}

// MaxFlux returns the largest of the three flux densities.
func (r Record) MaxFlux() float64 {
	m := r.PhiMag
	if r.PhiKin > m {
		m = r.PhiKin
	}
	if r.PhiCME > m {
		m = r.PhiCME
	}
	return m
}

// RankedRecord is a Record with its 1-based position in the output set.
type RankedRecord struct {
	No int `json:"no" db:"no"`
	Record
}

// Selection is the outcome of filtering a catalog.
type Selection struct {
	Total   int            `json:"total"`    // rows loaded
	AfterFc int            `json:"after_fc"` // rows passing the frequency cut
	Rows    []RankedRecord `json:"rows"`     // rows kept, in source order
}

// Kept returns the number of rows in the selection.
func (s Selection) Kept() int {
	return len(s.Rows)
}
