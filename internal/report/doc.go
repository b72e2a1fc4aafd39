// Package report renders a planet selection as a paginated US Letter PDF.
//
// Layout and rendering are separate. Paginate turns a selection into pages
// of positioned text operations using PDF coordinates (points, y measured
// up from the bottom edge). PDFWriter draws those operations with fpdf.
//
//	pages := report.Paginate(report.LayoutFor(domain.ReportModeFiltered), sel)
//	err := report.NewPDFWriter(paths).Write(ctx, pages, "exoplanets_fc_and_flux_over1.pdf")
package report
