package report

import (
	"fmt"
	"strconv"

	"exoradio/pkg/contracts/domain"
)

// Page geometry in PDF points
const (
	PageWidth  = 612.0
	PageHeight = 792.0

	TopY         = 750.0 // baseline of the title on every page
	BottomMargin = 40.0  // a row never starts below this
	RowPitch     = 16.0

	titleGap        = 30.0
	continuationGap = 25.0
	headerGap       = 16.0
)

// Fonts. Only the core Helvetica faces are used.
const (
	FontFamily       = "Helvetica"
	TitleSize        = 14.0
	ContinuationSize = 12.0
	HeaderSize       = 10.0
	RowSize          = 9.0

	fontStyleBold    = "B"
	fontStyleRegular = ""
)

// RowsPerPage is how many rows fit on each page with the constants above
const RowsPerPage = 42

// Font selects a core font face
type Font struct {
	Family string
	Style  string // "" or "B"
	Size   float64
}

var (
	titleFont        = Font{FontFamily, fontStyleBold, TitleSize}
	continuationFont = Font{FontFamily, fontStyleBold, ContinuationSize}
	headerFont       = Font{FontFamily, fontStyleBold, HeaderSize}
	rowFont          = Font{FontFamily, fontStyleRegular, RowSize}
)

// TextOp draws Text with its baseline starting at (X, Y)
type TextOp struct {
	X, Y float64
	Font Font
	Text string
}

// Page is the ordered list of text drawn on one page
type Page struct {
	Number int
	Ops    []TextOp
	Rows   int
}

// Field identifies the value a column shows
type Field int

const (
	FieldNo Field = iota
	FieldPlanet
	FieldFc
	FieldPhiMag
	FieldPhiKin
	FieldPhiCME
)

// Column is one report column
type Column struct {
	Field Field
	Label string
	X     float64
}

// Layout describes the report of one mode
type Layout struct {
	Title             string
	ContinuationTitle string
	Columns           []Column
	PlanetWidth       int // Planet is cut to this many characters
}

// Column header labels
const (
	LabelNo     = "No"
	LabelPlanet = "Planet"
	LabelFc     = "fc [MHz]"
	LabelPhiMag = "Phi_mag [mJy]"
	LabelPhiKin = "Phi_kin [mJy]"
	LabelPhiCME = "Phi_CME [mJy]"
)

// FilteredLayout is the ranked report of planets passing the thresholds
var FilteredLayout = Layout{
	Title:             "Exoplanets with fc > 1 MHz and any flux density > 1",
	ContinuationTitle: "Exoplanets with fc > 1 MHz and any flux > 1 (cont.)",
	Columns: []Column{
		{FieldNo, LabelNo, 40},
		{FieldPlanet, LabelPlanet, 80},
		{FieldFc, LabelFc, 260},
		{FieldPhiMag, LabelPhiMag, 340},
		{FieldPhiKin, LabelPhiKin, 430},
		{FieldPhiCME, LabelPhiCME, 520},
	},
	PlanetWidth: 22,
}

// FullLayout lists every planet without the rank column
var FullLayout = Layout{
	Title:             "Exoplanet radio emission predictions (all planets)",
	ContinuationTitle: "Exoplanet radio emission predictions (cont.)",
	Columns: []Column{
		{FieldPlanet, LabelPlanet, 40},
		{FieldFc, LabelFc, 220},
		{FieldPhiMag, LabelPhiMag, 310},
		{FieldPhiKin, LabelPhiKin, 400},
		{FieldPhiCME, LabelPhiCME, 490},
	},
	PlanetWidth: 25,
}

// LayoutFor returns the layout of mode
func LayoutFor(mode domain.ReportMode) Layout {
	if mode.Filters() {
		return FilteredLayout
	}
	return FullLayout
}

// PageCount returns the number of pages n rows occupy. An empty report
// still has its title page.
func PageCount(n int) int {
	if n <= 0 {
		return 1
	}
	return (n + RowsPerPage - 1) / RowsPerPage
}

// Paginate lays out sel. The first page starts with the title, later pages
// with the continuation title; every page repeats the column header.
func Paginate(layout Layout, sel domain.Selection) []Page {
	var pages []Page
	var cur *Page

	newPage := func(title string, font Font, gap float64) float64 {
		pages = append(pages, Page{Number: len(pages) + 1})
		cur = &pages[len(pages)-1]
		y := TopY
		cur.Ops = append(cur.Ops, TextOp{X: layout.Columns[0].X, Y: y, Font: font, Text: title})
		y -= gap
		for _, col := range layout.Columns {
			cur.Ops = append(cur.Ops, TextOp{X: col.X, Y: y, Font: headerFont, Text: col.Label})
		}
		return y - headerGap
	}

	y := newPage(layout.Title, titleFont, titleGap)
	for _, r := range sel.Rows {
		if y < BottomMargin {
			y = newPage(layout.ContinuationTitle, continuationFont, continuationGap)
		}
		for _, col := range layout.Columns {
			cur.Ops = append(cur.Ops, TextOp{X: col.X, Y: y, Font: rowFont, Text: layout.cell(col.Field, r)})
		}
		cur.Rows++
		y -= RowPitch
	}
	return pages
}

func (l Layout) cell(f Field, r domain.RankedRecord) string {
	switch f {
	case FieldNo:
		return strconv.Itoa(r.No)
	case FieldPlanet:
		return Truncate(r.Planet, l.PlanetWidth)
	case FieldFc:
		return formatNumber(r.Fc)
	case FieldPhiMag:
		return formatNumber(r.PhiMag)
	case FieldPhiKin:
		return formatNumber(r.PhiKin)
	case FieldPhiCME:
		return formatNumber(r.PhiCME)
	default:
		return ""
	}
}

// Truncate cuts s to at most n characters
func Truncate(s string, n int) string {
	if n < 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func formatNumber(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
