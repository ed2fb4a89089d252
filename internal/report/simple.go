package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/volsreport/volsreport/internal/format"
	"github.com/volsreport/volsreport/internal/model"
)

// ruleWidth is the width of the banner and section rules.
const ruleWidth = 70

// SimpleWriter prints a plain-text preview of the report.
// It shows the same sections and figures as the paginated report so the
// data can be checked in a terminal before documents are generated.
type SimpleWriter struct {
	baseWriter

	opts Options

	// showEmpty controls whether sections without rows are shown.
	showEmpty bool

	// verbose adds the risk distribution and the conclusions.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty configures the writer to show sections without rows.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// WithVerbose enables the risk distribution and the conclusions.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// WithContent sets the wording options used to build the preview.
func WithContent(opts Options) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.opts = opts
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		opts:       DefaultOptions(),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the preview of rec.
func (w *SimpleWriter) Write(rec *model.Record) (int, error) {
	doc := NewDocument(rec, w.opts)

	var sb strings.Builder
	w.writeHeader(&sb, doc)
	for _, s := range doc.Sections {
		w.writeSection(&sb, s)
	}
	if w.verbose {
		w.writeRisks(&sb, rec)
		w.writeConclusions(&sb, doc)
	}
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")

	return w.output.Write([]byte(sb.String()))
}

func (w *SimpleWriter) writeHeader(sb *strings.Builder, doc *Document) {
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
	sb.WriteString(doc.Title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n\n")
}

func (w *SimpleWriter) writeTitle(sb *strings.Builder, title string) {
	sb.WriteString(strings.Repeat("-", ruleWidth))
	sb.WriteString("\n")
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", ruleWidth))
	sb.WriteString("\n\n")
}

// writeSection prints each row as "first column: other columns".
func (w *SimpleWriter) writeSection(sb *strings.Builder, s Section) {
	if len(s.Table.Rows) == 0 && !w.showEmpty {
		return
	}

	w.writeTitle(sb, s.Heading)
	if len(s.Table.Rows) == 0 {
		sb.WriteString("  Нет данных\n\n")
		return
	}

	for _, row := range s.Table.Rows {
		rest := make([]string, 0, len(row)-1)
		for _, c := range row[1:] {
			if c.Risk != "" {
				rest = append(rest, "["+c.Risk.Title()+"]")
				continue
			}
			rest = append(rest, c.Text)
		}
		sb.WriteString(fmt.Sprintf("  %s: %s\n", row[0].Text, strings.Join(rest, " ")))
	}
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeRisks(sb *strings.Builder, rec *model.Record) {
	w.writeTitle(sb, "Распределение риска")

	dist := rec.RiskDistribution()
	for _, r := range model.Risks {
		sb.WriteString(fmt.Sprintf("  %-10s %s\n", r.Title()+":", format.Count(dist[r])))
	}
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeConclusions(sb *strings.Builder, doc *Document) {
	w.writeTitle(sb, ConclusionHeading)

	for _, c := range doc.Conclusions {
		sb.WriteString("  ")
		sb.WriteString(format.Bullet(c))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
}
