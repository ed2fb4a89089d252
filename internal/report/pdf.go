package report

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-pdf/fpdf"
	"github.com/volsreport/volsreport/internal/fonts"
	"github.com/volsreport/volsreport/internal/format"
	"github.com/volsreport/volsreport/internal/model"
)

// Page geometry of the paginated report, in points.
const (
	pageMargin = 72

	titleSize   = 18
	titleLead   = 22
	headingSize = 14
	headingLead = 18
	bodySize    = 12
	bodyLead    = 14

	cellPadding = 3
	gridWidth   = 0.5

	titleGap   = 18
	sectionGap = 12
)

// PDFRenderer renders the paginated report as an A4 landscape PDF.
type PDFRenderer struct {
	opts    Options
	fontDir string
	fontSet *fonts.Set

	// compress deflates page content streams. Tests turn it off to read
	// drawing operators.
	compress bool
}

// PDFOption configures a PDFRenderer.
type PDFOption func(*PDFRenderer)

// WithFontDir sets the directory searched first for the DejaVu fonts.
func WithFontDir(dir string) PDFOption {
	return func(r *PDFRenderer) {
		r.fontDir = dir
	}
}

// WithFontSet uses already loaded fonts instead of searching for them.
func WithFontSet(set *fonts.Set) PDFOption {
	return func(r *PDFRenderer) {
		r.fontSet = set
	}
}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer(opts Options, pdfOpts ...PDFOption) *PDFRenderer {
	r := &PDFRenderer{opts: opts.withDefaults(), compress: true}
	for _, opt := range pdfOpts {
		opt(r)
	}
	return r
}

// Name implements Renderer.
func (r *PDFRenderer) Name() string { return "pdf" }

// Ext implements Renderer.
func (r *PDFRenderer) Ext() string { return ".pdf" }

// Render implements Renderer.
// Fonts are loaded on first use; a missing font returns fonts.ErrFontNotFound.
func (r *PDFRenderer) Render(rec *model.Record) ([]byte, error) {
	doc := NewDocument(rec, r.opts)
	if err := checkDocumentColors(doc); err != nil {
		return nil, err
	}

	if r.fontSet == nil {
		set, err := fonts.Load(r.fontDir)
		if err != nil {
			return nil, err
		}
		r.fontSet = set
	}

	pdf := fpdf.New("L", "pt", "A4", "")
	pdf.SetCreationDate(r.opts.Date)
	pdf.SetModificationDate(r.opts.Date)
	pdf.SetCatalogSort(true)
	pdf.SetCompression(r.compress)
	pdf.SetTitle(bmpOnly(doc.Title), true)
	pdf.SetAuthor(bmpOnly(r.opts.Organization), true)
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, pageMargin)
	pdf.AddUTF8FontFromBytes(fonts.Family, "", r.fontSet.Regular)
	pdf.AddUTF8FontFromBytes(fonts.Family, "B", r.fontSet.Bold)

	w := &pdfWriter{pdf: pdf}
	pdf.AddPage()

	w.paragraph(doc.Title, "B", titleSize, titleLead)
	w.space(titleGap)
	for _, s := range doc.Sections {
		w.paragraph(s.Heading, "B", headingSize, headingLead)
		w.table(s.Table)
		w.space(sectionGap)
	}
	w.paragraph(ConclusionHeading, "B", headingSize, headingLead)
	for _, c := range doc.Conclusions {
		w.paragraph(format.Bullet(c), "", bodySize, bodyLead)
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("failed to build pdf: %w", err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// checkDocumentColors resolves every risk color before drawing starts.
func checkDocumentColors(doc *Document) error {
	for _, s := range doc.Sections {
		for _, row := range s.Table.Rows {
			for _, c := range row {
				if c.Risk == "" {
					continue
				}
				if _, err := DocumentColor(c.Risk); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// bmpOnly replaces runes above U+FFFF, such as emoji, with U+FFFD.
// The UTF-8 font tables of fpdf index 16-bit code points only.
func bmpOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r > 0xFFFF {
			return unicode.ReplacementChar
		}
		return r
	}, s)
}

// pdfWriter lays out flowing content top to bottom and starts a new page
// when the next block does not fit.
type pdfWriter struct {
	pdf *fpdf.Fpdf
}

// contentWidth is the page width between the margins.
func (w *pdfWriter) contentWidth() float64 {
	pageW, _ := w.pdf.GetPageSize()
	left, _, right, _ := w.pdf.GetMargins()
	return pageW - left - right
}

// ensure starts a new page unless h points fit above the bottom margin.
func (w *pdfWriter) ensure(h float64) {
	_, pageH := w.pdf.GetPageSize()
	if w.pdf.GetY()+h > pageH-pageMargin {
		w.pdf.AddPage()
	}
}

func (w *pdfWriter) space(h float64) {
	_, pageH := w.pdf.GetPageSize()
	if w.pdf.GetY()+h > pageH-pageMargin {
		return
	}
	w.pdf.SetY(w.pdf.GetY() + h)
}

// paragraph writes text wrapped to the content width.
func (w *pdfWriter) paragraph(text, style string, size, lead float64) {
	w.pdf.SetFont(fonts.Family, style, size)
	w.pdf.SetTextColor(int(Black.R), int(Black.G), int(Black.B))

	left, _, _, _ := w.pdf.GetMargins()
	for _, line := range w.pdf.SplitText(bmpOnly(text), w.contentWidth()) {
		w.ensure(lead)
		w.pdf.SetX(left)
		w.pdf.CellFormat(w.contentWidth(), lead, line, "", 1, "L", false, 0, "")
	}
}

// table draws t centered on the page. Cells wrap; a row never splits
// across pages.
func (w *pdfWriter) table(t Table) {
	var total float64
	for _, cw := range t.Widths {
		total += cw
	}
	left, _, _, _ := w.pdf.GetMargins()
	x0 := left + (w.contentWidth()-total)/2

	w.pdf.SetFont(fonts.Family, "", bodySize)
	w.pdf.SetLineWidth(gridWidth)
	w.pdf.SetDrawColor(int(Grey.R), int(Grey.G), int(Grey.B))

	header := make([]Cell, len(t.Header))
	for i, h := range t.Header {
		header[i] = Cell{Text: h}
	}
	w.row(t, x0, header, true)
	for _, r := range t.Rows {
		w.row(t, x0, r, false)
	}
}

func (w *pdfWriter) row(t Table, x0 float64, cells []Cell, header bool) {
	lines := make([][]string, len(cells))
	maxLines := 1
	for i, c := range cells {
		lines[i] = w.pdf.SplitText(bmpOnly(c.Text), t.Widths[i])
		if len(lines[i]) > maxLines {
			maxLines = len(lines[i])
		}
	}
	h := float64(maxLines)*bodyLead + 2*cellPadding
	w.ensure(h)

	y := w.pdf.GetY()
	x := x0
	for i, c := range cells {
		cw := t.Widths[i]
		if header {
			w.pdf.SetFillColor(int(LightGrey.R), int(LightGrey.G), int(LightGrey.B))
			w.pdf.Rect(x, y, cw, h, "F")
		}
		w.pdf.Rect(x, y, cw, h, "D")

		color := Black
		if c.Risk != "" {
			// Colors were checked before drawing.
			color, _ = DocumentColor(c.Risk)
		}
		w.pdf.SetTextColor(int(color.R), int(color.G), int(color.B))

		align := "L"
		if !header && i == t.Centered {
			align = "C"
		}
		for j, line := range lines[i] {
			w.pdf.SetXY(x, y+cellPadding+float64(j)*bodyLead)
			w.pdf.CellFormat(cw, bodyLead, line, "", 0, align, false, 0, "")
		}
		x += cw
	}
	w.pdf.SetTextColor(int(Black.R), int(Black.G), int(Black.B))
	w.pdf.SetXY(x0, y+h)
}
