package report

import (
	"github.com/volsreport/volsreport/internal/model"
	"github.com/volsreport/volsreport/internal/pptx"
)

// SlideTextSize is the font size of slide body text in points.
const SlideTextSize = 20

// PPTXRenderer renders the slide deck as a PowerPoint presentation.
type PPTXRenderer struct {
	opts Options
}

// NewPPTXRenderer creates a PPTXRenderer.
func NewPPTXRenderer(opts Options) *PPTXRenderer {
	return &PPTXRenderer{opts: opts.withDefaults()}
}

// Name implements Renderer.
func (r *PPTXRenderer) Name() string { return "pptx" }

// Ext implements Renderer.
func (r *PPTXRenderer) Ext() string { return ".pptx" }

// Render implements Renderer.
func (r *PPTXRenderer) Render(rec *model.Record) ([]byte, error) {
	content := NewDeck(rec, r.opts)

	deck := pptx.New(
		pptx.WithTitle(content.Title),
		pptx.WithCreator(r.opts.Organization),
		pptx.WithDate(r.opts.Date),
		pptx.WithLanguage(Language),
	)
	deck.AddTitleSlide(content.Title, content.Subtitle)

	for _, s := range content.Slides {
		body := make([]pptx.Paragraph, 0, len(s.Lines))
		for _, l := range s.Lines {
			if l.Risk == "" {
				body = append(body, pptx.Text(l.Text, SlideTextSize))
				continue
			}
			c, err := SlideColor(l.Risk)
			if err != nil {
				return nil, err
			}
			body = append(body, pptx.Colored(l.Text, SlideTextSize, c.Hex()))
		}
		deck.AddContentSlide(s.Title, body...)
	}

	return deck.Bytes()
}
