package dataprocessing

import (
	"fmt"
	"strconv"
	"strings"

	apperrors "exoradio/internal/errors"
	"exoradio/pkg/contracts/domain"
)

// padding is stripped from both ends of fixed-width text cells
const padding = " \t\r\n\x00"

// Normalize converts raw rows into typed records. The first value that is
// not a number aborts with a PARSING error naming its row and column.
func Normalize(raw []domain.RawRecord) ([]domain.Record, error) {
	records := make([]domain.Record, 0, len(raw))
	for _, r := range raw {
		rec := domain.Record{
			Row:    r.Row,
			Planet: asText(r.Values[domain.ColumnPlanet]),
		}

		targets := map[string]*float64{
			domain.ColumnFc:     &rec.Fc,
			domain.ColumnPhiMag: &rec.PhiMag,
			domain.ColumnPhiKin: &rec.PhiKin,
			domain.ColumnPhiCME: &rec.PhiCME,
		}
		for _, col := range domain.NumericColumns {
			v, err := ParseNumber(r.Values[col])
			if err != nil {
				return nil, apperrors.NewParsingError("not a number", err).
					WithContext("row", r.Row).
					WithContext("column", col)
			}
			*targets[col] = v
		}

		records = append(records, rec)
	}
	return records, nil
}

// ParseNumber converts one cell to float64. Text is trimmed of padding
// before parsing; numeric cell types are widened.
func ParseNumber(v interface{}) (float64, error) {
	switch x := v.(type) {
	case string:
		return strconv.ParseFloat(strings.Trim(x, padding), 64)
	case []byte:
		return strconv.ParseFloat(strings.Trim(string(x), padding), 64)
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int8:
		return float64(x), nil
	case int16:
		return float64(x), nil
	case int32:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case uint8:
		return float64(x), nil
	case uint16:
		return float64(x), nil
	case uint32:
		return float64(x), nil
	case uint64:
		return float64(x), nil
	case nil:
		return 0, fmt.Errorf("missing value")
	default:
		return 0, fmt.Errorf("unsupported cell type %T", v)
	}
}

func asText(v interface{}) string {
	switch x := v.(type) {
	case string:
		return strings.Trim(x, padding)
	case []byte:
		return strings.Trim(string(x), padding)
	case nil:
		return ""
	default:
		return fmt.Sprint(x)
	}
}
