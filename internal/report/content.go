package report

import (
	"time"

	"github.com/volsreport/volsreport/internal/format"
	"github.com/volsreport/volsreport/internal/model"
)

// Report wording. The reports are produced for one audience in one
// language, so the strings live here rather than in a message catalog.
const (
	DocumentTitle     = "Информация по бездоговорному подвесу ВОЛС"
	ConclusionHeading = "Вывод для руководителя"

	// slideConclusionTitle keeps the pin the slide deck has always shown.
	// The PDF heading omits it because DejaVu Sans has no emoji glyphs.
	slideConclusionTitle = "📌 " + ConclusionHeading
)

// Language is the language tag stored in the office documents.
const Language = "ru-RU"

// DefaultOrganization is printed on the title slide when none is configured.
const DefaultOrganization = "АО «Россети Кубань»"

// DefaultDocumentConclusions are the closing bullets of the paginated report.
var DefaultDocumentConclusions = []string{
	"Темпы демонтажа просели (2025 vs 2024).",
	"«Ростелеком» — основной проблемный контрагент.",
	"ЮЗ ЭС, Краснодарские ЭС, Армавирские ЭС формируют львиную долю риска.",
	"Нужны: ускорение подписания, усиление демонтажа, персональная ответственность директоров филиалов.",
}

// DefaultSlideConclusions are the closing bullets of the slide deck.
var DefaultSlideConclusions = []string{
	"Темпы демонтажа просели (2025 vs 2024).",
	"«Ростелеком» — основной проблемный контрагент.",
	"ЮЗ ЭС, Краснодарские ЭС, Армавирские ЭС — основная зона риска.",
	"Нужны: ускорение подписания, усиление демонтажа, персональная ответственность.",
}

// DefaultDate is the creation date embedded in documents when none is
// configured. A fixed date keeps repeated runs byte-identical.
var DefaultDate = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

// Options holds the wording and metadata that are not part of the dataset.
type Options struct {
	// Organization is shown on the title slide and as document author.
	Organization string

	// DocumentConclusions are the closing bullets of paginated outputs.
	DocumentConclusions []string

	// SlideConclusions are the closing bullets of the slide deck.
	SlideConclusions []string

	// Date is embedded as the document creation date.
	Date time.Time
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Organization:        DefaultOrganization,
		DocumentConclusions: DefaultDocumentConclusions,
		SlideConclusions:    DefaultSlideConclusions,
		Date:                DefaultDate,
	}
}

// withDefaults fills zero fields from DefaultOptions.
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Organization == "" {
		o.Organization = d.Organization
	}
	if o.DocumentConclusions == nil {
		o.DocumentConclusions = d.DocumentConclusions
	}
	if o.SlideConclusions == nil {
		o.SlideConclusions = d.SlideConclusions
	}
	if o.Date.IsZero() {
		o.Date = d.Date
	}
	return o
}

// Cell is one table cell. A non-empty Risk colors the cell text.
type Cell struct {
	Text string
	Risk model.Risk
}

// Table is a grid with a header row.
type Table struct {
	Header []string

	// Widths are the column widths in points for the paginated report.
	Widths []float64

	// Centered is the index of a column whose cells are centered, or -1.
	Centered int

	Rows [][]Cell
}

// Section is a numbered heading followed by a table.
type Section struct {
	Heading string

	// Short is an unnumbered name used where headings must be brief,
	// such as workbook sheet names.
	Short string

	Table Table
}

// Document is the content of the paginated report.
type Document struct {
	Title       string
	Sections    []Section
	Conclusions []string
}

// NewDocument builds the paginated report content from rec.
// Totals are copied from the record; nothing is summed.
func NewDocument(rec *model.Record, opts Options) *Document {
	opts = opts.withDefaults()
	t := rec.Totals

	general := Section{
		Heading: "1. Общая ситуация",
		Short:   "Общая ситуация",
		Table: Table{
			Header:   []string{"Показатель", "Значение"},
			Widths:   []float64{300, 300},
			Centered: -1,
			Rows: [][]Cell{
				{{Text: "Выявлено бездоговорных опор"}, {Text: format.Count(t.Found)}},
				{{Text: "Узаконено"}, {Text: format.Count(t.Legalized)}},
				{{Text: "Демонтировано в 2025"}, {Text: format.WithAside(format.Count(t.Removed2025), "в 2024", format.Count(t.Removed2024))}},
				{{Text: "В работе"}, {Text: format.WithAside(format.Count(t.InWork), "ПАО «Ростелеком»", format.Count(t.Rostelecom))}},
			},
		},
	}

	dismantled := Section{
		Heading: "2. Демонтаж 2025",
		Short:   "Демонтаж 2025",
		Table: Table{
			Header:   []string{"Филиал", "Демонтировано / Примечание"},
			Widths:   []float64{300, 300},
			Centered: -1,
		},
	}
	for _, d := range rec.Dismantled2025 {
		dismantled.Table.Rows = append(dismantled.Table.Rows, []Cell{
			{Text: d.Branch},
			{Text: format.WithNote(format.Count(d.Count), d.Notes)},
		})
	}

	key := Section{
		Heading: "3. Ключевые филиалы (зоны риска)",
		Short:   "Ключевые филиалы",
		Table: Table{
			Header:   []string{"Филиал", "Опоры в работе / Примечание", "Риск"},
			Widths:   []float64{250, 290, 60},
			Centered: 2,
		},
	}
	for _, kb := range rec.KeyBranches {
		key.Table.Rows = append(key.Table.Rows, []Cell{
			{Text: kb.Branch},
			{Text: format.WithNote(kb.InWork.String(), kb.Note)},
			{Text: kb.Risk.String(), Risk: kb.Risk},
		})
	}

	rostelecom := Section{
		Heading: "4. ПАО «Ростелеком» (общий объём: " + format.Count(t.Rostelecom) + " опор)",
		Short:   "Ростелеком",
		Table: Table{
			Header:   []string{"Филиал", "Статус"},
			Widths:   []float64{250, 350},
			Centered: -1,
		},
	}
	for _, r := range rec.Rostelecom {
		rostelecom.Table.Rows = append(rostelecom.Table.Rows, []Cell{
			{Text: r.Branch},
			{Text: r.Note},
		})
	}

	return &Document{
		Title:       DocumentTitle + " (на " + rec.AsOf + ")",
		Sections:    []Section{general, dismantled, key, rostelecom},
		Conclusions: opts.DocumentConclusions,
	}
}

// Line is one bullet of a content slide. A non-empty Risk colors the line.
type Line struct {
	Text string
	Risk model.Risk
}

// SlideContent is one title-and-content slide.
type SlideContent struct {
	Title string
	Lines []Line
}

// DeckContent is the content of the slide deck: a title slide followed by
// content slides.
type DeckContent struct {
	Title    string
	Subtitle string
	Slides   []SlideContent
}

// NewDeck builds the slide deck content from rec.
func NewDeck(rec *model.Record, opts Options) *DeckContent {
	opts = opts.withDefaults()
	t := rec.Totals

	general := SlideContent{
		Title: "1. Общая ситуация",
		Lines: []Line{
			{Text: "Выявлено: " + format.Count(t.Found)},
			{Text: "Узаконено: " + format.Count(t.Legalized)},
			{Text: "Демонтировано 2025: " + format.Count(t.Removed2025) + " (2024: " + format.Count(t.Removed2024) + ")"},
			{Text: "В работе: " + format.WithAside(format.Count(t.InWork), "Ростелеком", format.Count(t.Rostelecom))},
		},
	}

	dismantled := SlideContent{Title: "2. Демонтаж 2025"}
	for _, d := range rec.Dismantled2025 {
		dismantled.Lines = append(dismantled.Lines, Line{
			Text: format.Pair(d.Branch, format.WithNote(format.Count(d.Count), d.Notes)),
		})
	}

	key := SlideContent{Title: "3. Ключевые филиалы — зоны риска"}
	for _, kb := range rec.KeyBranches {
		key.Lines = append(key.Lines, Line{
			Text: format.Pair(kb.Branch, format.WithNote(kb.InWork.String(), kb.Note)),
			Risk: kb.Risk,
		})
	}

	rostelecom := SlideContent{
		Title: "4. ПАО «Ростелеком»",
		Lines: []Line{{Text: "Общий объём: " + format.Count(t.Rostelecom) + " опор"}},
	}
	for _, r := range rec.Rostelecom {
		rostelecom.Lines = append(rostelecom.Lines, Line{Text: format.Pair(r.Branch, r.Note)})
	}

	conclusions := SlideContent{Title: slideConclusionTitle}
	for _, c := range opts.SlideConclusions {
		conclusions.Lines = append(conclusions.Lines, Line{Text: c})
	}

	return &DeckContent{
		Title:    DocumentTitle,
		Subtitle: opts.Organization + " • " + rec.AsOf,
		Slides:   []SlideContent{general, dismantled, key, rostelecom, conclusions},
	}
}
