package pptx

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

// Slide size of the default 4:3 deck in EMU (English Metric Units).
const (
	SlideWidth  = 9144000
	SlideHeight = 6858000
)

// DefaultDate is the document date used when none is configured.
var DefaultDate = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

// ErrInvalidColor is returned when a run color is not a six-digit hex RGB value.
var ErrInvalidColor = errors.New("invalid run color")

var hexColor = regexp.MustCompile(`^[0-9A-F]{6}$`)

// Layout selects the slide layout a slide is based on.
type Layout int

const (
	// LayoutTitle is a centered title with a subtitle.
	LayoutTitle Layout = iota + 1

	// LayoutTitleAndContent is a title with a bulleted body.
	LayoutTitleAndContent
)

// Run is a span of text with uniform formatting.
type Run struct {
	Text string

	// Size is the font size in points; zero inherits from the layout.
	Size float64

	// Color is an upper-case RGB hex value such as "FF0000"; empty inherits.
	Color string

	Bold bool
}

// Paragraph is one line of slide body text.
type Paragraph struct {
	Runs []Run
}

// Text returns a paragraph with a single run.
func Text(text string, size float64) Paragraph {
	return Paragraph{Runs: []Run{{Text: text, Size: size}}}
}

// Colored returns a paragraph with a single colored run.
func Colored(text string, size float64, color string) Paragraph {
	return Paragraph{Runs: []Run{{Text: text, Size: size, Color: color}}}
}

// Slide is one slide of the deck.
type Slide struct {
	Layout   Layout
	Title    string
	Subtitle string
	Body     []Paragraph
}

// Deck is an in-memory slide deck.
type Deck struct {
	title    string
	creator  string
	language string
	date     time.Time
	slides   []Slide
}

// Option configures a Deck.
type Option func(*Deck)

// WithTitle sets the document title stored in the core properties.
func WithTitle(title string) Option {
	return func(d *Deck) {
		d.title = title
	}
}

// WithCreator sets the document author stored in the core properties.
func WithCreator(creator string) Option {
	return func(d *Deck) {
		d.creator = creator
	}
}

// WithLanguage sets the language tag written on every text run (e.g. "ru-RU").
func WithLanguage(lang string) Option {
	return func(d *Deck) {
		d.language = lang
	}
}

// WithDate sets the created/modified date of the document and of the zip entries.
func WithDate(date time.Time) Option {
	return func(d *Deck) {
		d.date = date
	}
}

// New creates an empty deck.
func New(opts ...Option) *Deck {
	d := &Deck{
		language: "ru-RU",
		date:     DefaultDate,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// AddTitleSlide appends a slide with a title and a subtitle.
func (d *Deck) AddTitleSlide(title, subtitle string) {
	d.slides = append(d.slides, Slide{
		Layout:   LayoutTitle,
		Title:    title,
		Subtitle: subtitle,
	})
}

// AddContentSlide appends a slide with a title and body paragraphs.
func (d *Deck) AddContentSlide(title string, body ...Paragraph) {
	d.slides = append(d.slides, Slide{
		Layout: LayoutTitleAndContent,
		Title:  title,
		Body:   body,
	})
}

// SlideCount returns the number of slides.
func (d *Deck) SlideCount() int {
	return len(d.slides)
}

// validate checks run colors before anything is encoded.
func (d *Deck) validate() error {
	for i, s := range d.slides {
		for _, p := range s.Body {
			for _, r := range p.Runs {
				if r.Color != "" && !hexColor.MatchString(r.Color) {
					return fmt.Errorf("%w: slide %d: %q", ErrInvalidColor, i+1, r.Color)
				}
			}
		}
	}
	return nil
}
