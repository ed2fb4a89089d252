package report

import (
	"fmt"

	"github.com/volsreport/volsreport/internal/model"
	"github.com/xuri/excelize/v2"
)

const (
	defaultSheet = "Sheet1"

	// xlsxPointsPerChar converts table widths in points to column widths
	// in characters.
	xlsxPointsPerChar = 6.5
)

// XLSXRenderer renders the report tables as an Excel workbook with one
// sheet per section and a closing sheet with the conclusions.
type XLSXRenderer struct {
	opts Options
}

// NewXLSXRenderer creates an XLSXRenderer.
func NewXLSXRenderer(opts Options) *XLSXRenderer {
	return &XLSXRenderer{opts: opts.withDefaults()}
}

// Name implements Renderer.
func (r *XLSXRenderer) Name() string { return "xlsx" }

// Ext implements Renderer.
func (r *XLSXRenderer) Ext() string { return ".xlsx" }

// Render implements Renderer.
func (r *XLSXRenderer) Render(rec *model.Record) ([]byte, error) {
	doc := NewDocument(rec, r.opts)

	f := excelize.NewFile()
	defer f.Close()

	created := r.opts.Date.UTC().Format("2006-01-02T15:04:05Z")
	if err := f.SetDocProps(&excelize.DocProperties{
		Title:    doc.Title,
		Creator:  r.opts.Organization,
		Created:  created,
		Modified: created,
		Language: Language,
	}); err != nil {
		return nil, fmt.Errorf("failed to set workbook properties: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#" + LightGrey.Hex()}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	riskStyles := make(map[model.Risk]int, len(model.Risks))
	for _, risk := range model.Risks {
		c, err := DocumentColor(risk)
		if err != nil {
			return nil, err
		}
		id, err := f.NewStyle(&excelize.Style{
			Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
			Fill:      excelize.Fill{Type: "pattern", Color: []string{"#" + c.Hex()}, Pattern: 1},
			Alignment: &excelize.Alignment{Horizontal: "center"},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create risk style: %w", err)
		}
		riskStyles[risk] = id
	}

	for i, s := range doc.Sections {
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, s.Short); err != nil {
				return nil, fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(s.Short); err != nil {
			return nil, fmt.Errorf("failed to add sheet %q: %w", s.Short, err)
		}
		if err := writeSheet(f, s, headerStyle, riskStyles); err != nil {
			return nil, err
		}
	}

	if err := writeConclusionSheet(f, doc.Conclusions, headerStyle); err != nil {
		return nil, err
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, s Section, headerStyle int, riskStyles map[model.Risk]int) error {
	sheet := s.Short

	header := make([]any, len(s.Table.Header))
	for i, h := range s.Table.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header of %q: %w", sheet, err)
	}
	if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("failed to style header of %q: %w", sheet, err)
	}

	for i, row := range s.Table.Rows {
		values := make([]any, len(row))
		for j, c := range row {
			values[j] = c.Text
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d of %q: %w", i+1, sheet, err)
		}
		for j, c := range row {
			if c.Risk == "" {
				continue
			}
			style, ok := riskStyles[c.Risk]
			if !ok {
				return fmt.Errorf("%w: %q", model.ErrUnknownRisk, string(c.Risk))
			}
			name, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellStyle(sheet, name, name, style); err != nil {
				return fmt.Errorf("failed to style %s of %q: %w", name, sheet, err)
			}
		}
	}

	for i, w := range s.Table.Widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, w/xlsxPointsPerChar); err != nil {
			return fmt.Errorf("failed to size column %s of %q: %w", col, sheet, err)
		}
	}
	return nil
}

func writeConclusionSheet(f *excelize.File, conclusions []string, headerStyle int) error {
	const sheet = "Вывод"

	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to add sheet %q: %w", sheet, err)
	}
	if err := f.SetCellValue(sheet, "A1", ConclusionHeading); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", "A1", headerStyle); err != nil {
		return err
	}
	for i, c := range conclusions {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, c); err != nil {
			return fmt.Errorf("failed to write conclusion %d: %w", i+1, err)
		}
	}
	return f.SetColWidth(sheet, "A", "A", 100)
}
