// Package report builds the report content from a dataset record and
// renders it into output documents.
//
// Content is built once into format-neutral models (Document for the
// paginated layouts, DeckContent for slides) so every output carries the
// same figures and wording. Renderers then encode a model:
//   - PDFRenderer: the paginated report (A4 landscape)
//   - PPTXRenderer: the slide deck
//   - XLSXRenderer: a workbook with one sheet per section
//   - MarkdownRenderer: a Markdown summary
//   - SimpleWriter: a plain-text preview for the terminal
//
// Design decision: Renderers return bytes instead of writing files. The
// pipeline renders every document first and writes them afterwards, so a
// rendering failure never leaves a partial set of files behind.
package report
