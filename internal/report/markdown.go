package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"github.com/volsreport/volsreport/internal/format"
	"github.com/volsreport/volsreport/internal/model"
)

// MarkdownRenderer renders the report as a Markdown summary, suitable for
// wikis and merge request descriptions.
//
// Markdown cannot color text, so risk tiers are marked with emoji, and the
// key branch risks are also shown as a mermaid pie chart.
type MarkdownRenderer struct {
	opts Options
}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer(opts Options) *MarkdownRenderer {
	return &MarkdownRenderer{opts: opts.withDefaults()}
}

// Name implements Renderer.
func (r *MarkdownRenderer) Name() string { return "markdown" }

// Ext implements Renderer.
func (r *MarkdownRenderer) Ext() string { return ".md" }

// Render implements Renderer.
func (r *MarkdownRenderer) Render(rec *model.Record) ([]byte, error) {
	doc := NewDocument(rec, r.opts)

	var buf bytes.Buffer
	md := markdown.NewMarkdown(&buf)

	md.H1(doc.Title)
	md.PlainText("")
	r.writeAlert(md, rec)

	for _, s := range doc.Sections {
		if err := r.writeSection(md, s); err != nil {
			return nil, err
		}
	}

	r.writePieChart(md, rec)

	md.H2(ConclusionHeading)
	md.PlainText("")
	md.BulletList(doc.Conclusions...)
	md.PlainText("")

	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*%s • %s*", r.opts.Organization, rec.AsOf)

	if err := md.Build(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeAlert flags high-risk branches at the top of the summary.
func (r *MarkdownRenderer) writeAlert(md *markdown.Markdown, rec *model.Record) {
	high := rec.HighRiskBranches()
	if len(high) == 0 {
		md.Note("Филиалов с высоким риском нет.")
		md.PlainText("")
		return
	}
	md.Cautionf("Высокий риск: %s.", strings.Join(high, ", "))
	md.PlainText("")
}

func (r *MarkdownRenderer) writeSection(md *markdown.Markdown, s Section) error {
	md.H2(s.Heading)
	md.PlainText("")

	rows := make([][]string, len(s.Table.Rows))
	for i, row := range s.Table.Rows {
		rows[i] = make([]string, len(row))
		for j, c := range row {
			if c.Risk == "" {
				rows[i][j] = escapeCell(c.Text)
				continue
			}
			emoji, ok := riskEmoji[c.Risk]
			if !ok {
				return fmt.Errorf("%w: %q", model.ErrUnknownRisk, string(c.Risk))
			}
			rows[i][j] = emoji + " " + c.Risk.Title()
		}
	}

	md.Table(markdown.TableSet{
		Header: s.Table.Header,
		Rows:   rows,
	})
	md.PlainText("")
	return nil
}

// writePieChart writes a mermaid pie chart of key branches per risk tier.
func (r *MarkdownRenderer) writePieChart(md *markdown.Markdown, rec *model.Record) {
	if len(rec.KeyBranches) == 0 {
		return
	}

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Ключевые филиалы по уровню риска"),
		piechart.WithShowData(true),
	)

	dist := rec.RiskDistribution()
	for _, risk := range model.Risks {
		if dist[risk] > 0 {
			chart.LabelAndIntValue(risk.Title(), uint64(dist[risk]))
		}
	}

	md.H2("Распределение риска")
	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
	md.PlainText(format.Pair("Всего ключевых филиалов", format.Count(len(rec.KeyBranches))))
	md.PlainText("")
}

// escapeCell keeps pipes in free text from splitting table cells.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
