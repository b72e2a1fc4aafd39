// Package dataprocessing turns a FITS exoplanet catalog into the ranked
// selection that the exporters and the report writer consume.
//
// # Architecture
//
// The package is organized into three steps:
//
// 1. Loader: reads the binary table in the first extension HDU
// 2. Normalizer: converts the text-encoded numeric columns to float64
// 3. Processor: applies the frequency and flux predicates and ranks survivors
//
// # Usage
//
//	raw, err := dataprocessing.LoadCatalog(ctx, "asu.fit", 1)
//	if err != nil {
//	    return err
//	}
//	records, err := dataprocessing.Normalize(raw)
//	if err != nil {
//	    return err
//	}
//	sel := dataprocessing.Select(records, dataprocessing.DefaultFilterOptions())
//
// # Data Flow
//
//	FITS file → LoadCatalog → RawRecords → Normalize → Records → Select/All → Selection
//
// # Error Handling
//
// Loader failures are IO, FORMAT or SCHEMA AppErrors wrapping one of the
// sentinel errors below. Normalizer failures are PARSING AppErrors carrying
// the row and column of the offending value.
package dataprocessing
