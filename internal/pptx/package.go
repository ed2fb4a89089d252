package pptx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"
)

// part is one file inside the OOXML package.
type part struct {
	name string
	data string
}

// relationship is one entry of a .rels part.
type relationship struct {
	id     string
	typ    string
	target string
}

// Bytes encodes the deck as a .pptx package.
func (d *Deck) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := d.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteTo writes the .pptx package to w.
func (d *Deck) WriteTo(w io.Writer) (int64, error) {
	if err := d.validate(); err != nil {
		return 0, err
	}

	cw := &countingWriter{w: w}
	zw := zip.NewWriter(cw)
	modified := d.date.UTC()

	for _, p := range d.parts() {
		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:     p.name,
			Method:   zip.Deflate,
			Modified: modified,
		})
		if err != nil {
			return cw.n, fmt.Errorf("failed to create %s: %w", p.name, err)
		}
		if _, err := io.WriteString(fw, p.data); err != nil {
			return cw.n, fmt.Errorf("failed to write %s: %w", p.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return cw.n, fmt.Errorf("failed to finish package: %w", err)
	}
	return cw.n, nil
}

// parts returns every package part in the order they are zipped.
// [Content_Types].xml comes first as readers expect.
func (d *Deck) parts() []part {
	parts := []part{
		{"[Content_Types].xml", d.contentTypesXML()},
		{"_rels/.rels", relsXML([]relationship{
			{"rId1", relOfficeDocument, "ppt/presentation.xml"},
			{"rId2", relCoreProps, "docProps/core.xml"},
			{"rId3", relExtendedProps, "docProps/app.xml"},
		})},
		{"docProps/core.xml", d.corePropsXML()},
		{"docProps/app.xml", d.appPropsXML()},
		{"ppt/presentation.xml", d.presentationXML()},
		{"ppt/_rels/presentation.xml.rels", d.presentationRelsXML()},
		{"ppt/presProps.xml", presPropsXML},
		{"ppt/tableStyles.xml", tableStylesXML},
		{"ppt/slideMasters/slideMaster1.xml", slideMasterXML},
		{"ppt/slideMasters/_rels/slideMaster1.xml.rels", relsXML([]relationship{
			{"rId1", relSlideLayout, "../slideLayouts/slideLayout1.xml"},
			{"rId2", relSlideLayout, "../slideLayouts/slideLayout2.xml"},
			{"rId3", relTheme, "../theme/theme1.xml"},
		})},
		{"ppt/slideLayouts/slideLayout1.xml", titleLayoutXML},
		{"ppt/slideLayouts/_rels/slideLayout1.xml.rels", layoutRelsXML()},
		{"ppt/slideLayouts/slideLayout2.xml", contentLayoutXML},
		{"ppt/slideLayouts/_rels/slideLayout2.xml.rels", layoutRelsXML()},
		{"ppt/theme/theme1.xml", themeXML},
	}

	for i, s := range d.slides {
		n := strconv.Itoa(i + 1)
		parts = append(parts,
			part{"ppt/slides/slide" + n + ".xml", d.slideXML(s)},
			part{"ppt/slides/_rels/slide" + n + ".xml.rels", relsXML([]relationship{
				{"rId1", relSlideLayout, "../slideLayouts/slideLayout" + strconv.Itoa(int(s.Layout)) + ".xml"},
			})},
		)
	}
	return parts
}

func (d *Deck) contentTypesXML() string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`)
	b.WriteString(`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`)
	b.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)

	override := func(name, contentType string) {
		b.WriteString(`<Override PartName="` + name + `" ContentType="` + contentType + `"/>`)
	}
	override("/ppt/presentation.xml", ctPresentation)
	override("/ppt/presProps.xml", ctPresProps)
	override("/ppt/tableStyles.xml", ctTableStyles)
	override("/ppt/slideMasters/slideMaster1.xml", ctSlideMaster)
	override("/ppt/slideLayouts/slideLayout1.xml", ctSlideLayout)
	override("/ppt/slideLayouts/slideLayout2.xml", ctSlideLayout)
	override("/ppt/theme/theme1.xml", ctTheme)
	for i := range d.slides {
		override("/ppt/slides/slide"+strconv.Itoa(i+1)+".xml", ctSlide)
	}
	override("/docProps/core.xml", ctCoreProps)
	override("/docProps/app.xml", ctExtendedProp)
	b.WriteString(`</Types>`)
	return b.String()
}

func (d *Deck) corePropsXML() string {
	date := d.date.UTC().Format(time.RFC3339)
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" ` +
		`xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/" ` +
		`xmlns:dcmitype="http://purl.org/dc/dcmitype/" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">`)
	b.WriteString(`<dc:title>` + escape(d.title) + `</dc:title>`)
	b.WriteString(`<dc:creator>` + escape(d.creator) + `</dc:creator>`)
	b.WriteString(`<cp:lastModifiedBy>` + escape(d.creator) + `</cp:lastModifiedBy>`)
	b.WriteString(`<cp:revision>1</cp:revision>`)
	b.WriteString(`<dcterms:created xsi:type="dcterms:W3CDTF">` + date + `</dcterms:created>`)
	b.WriteString(`<dcterms:modified xsi:type="dcterms:W3CDTF">` + date + `</dcterms:modified>`)
	b.WriteString(`</cp:coreProperties>`)
	return b.String()
}

func (d *Deck) appPropsXML() string {
	return xmlHeader +
		`<Properties xmlns="http://schemas.openxmlformats.org/officeDocument/2006/extended-properties" ` +
		`xmlns:vt="http://schemas.openxmlformats.org/officeDocument/2006/docPropsVTypes">` +
		`<Application>volsreport</Application>` +
		`<PresentationFormat>On-screen Show (4:3)</PresentationFormat>` +
		`<Slides>` + strconv.Itoa(len(d.slides)) + `</Slides>` +
		`</Properties>`
}

func (d *Deck) presentationXML() string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<p:presentation xmlns:a="` + nsA + `" xmlns:r="` + nsR + `" xmlns:p="` + nsP + `" saveSubsetFonts="1">`)
	b.WriteString(`<p:sldMasterIdLst><p:sldMasterId id="2147483648" r:id="rId1"/></p:sldMasterIdLst>`)
	if len(d.slides) > 0 {
		b.WriteString(`<p:sldIdLst>`)
		for i := range d.slides {
			fmt.Fprintf(&b, `<p:sldId id="%d" r:id="rId%d"/>`, 256+i, i+2)
		}
		b.WriteString(`</p:sldIdLst>`)
	}
	fmt.Fprintf(&b, `<p:sldSz cx="%d" cy="%d" type="screen4x3"/>`, SlideWidth, SlideHeight)
	fmt.Fprintf(&b, `<p:notesSz cx="%d" cy="%d"/>`, SlideHeight, SlideWidth)
	b.WriteString(`</p:presentation>`)
	return b.String()
}

// presentationRelsXML links the master as rId1 and slides as rId2..rId(n+1),
// matching the ids used in presentation.xml.
func (d *Deck) presentationRelsXML() string {
	rels := []relationship{{"rId1", relSlideMaster, "slideMasters/slideMaster1.xml"}}
	for i := range d.slides {
		rels = append(rels, relationship{
			id:     "rId" + strconv.Itoa(i+2),
			typ:    relSlide,
			target: "slides/slide" + strconv.Itoa(i+1) + ".xml",
		})
	}
	next := len(d.slides) + 2
	rels = append(rels,
		relationship{"rId" + strconv.Itoa(next), relPresProps, "presProps.xml"},
		relationship{"rId" + strconv.Itoa(next+1), relTableStyles, "tableStyles.xml"},
		relationship{"rId" + strconv.Itoa(next+2), relTheme, "theme/theme1.xml"},
	)
	return relsXML(rels)
}

func layoutRelsXML() string {
	return relsXML([]relationship{{"rId1", relSlideMaster, "../slideMasters/slideMaster1.xml"}})
}

func relsXML(rels []relationship) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<Relationships xmlns="` + nsRel + `">`)
	for _, r := range rels {
		b.WriteString(`<Relationship Id="` + r.id + `" Type="` + r.typ + `" Target="` + r.target + `"/>`)
	}
	b.WriteString(`</Relationships>`)
	return b.String()
}

func (d *Deck) slideXML(s Slide) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<p:sld xmlns:a="` + nsA + `" xmlns:r="` + nsR + `" xmlns:p="` + nsP + `">`)
	b.WriteString(`<p:cSld><p:spTree>` + groupShapeProps)

	titleType, bodyPlaceholder := `type="title"`, `idx="1"`
	body := s.Body
	if s.Layout == LayoutTitle {
		titleType, bodyPlaceholder = `type="ctrTitle"`, `type="subTitle" idx="1"`
		body = []Paragraph{{Runs: []Run{{Text: s.Subtitle}}}}
	}

	d.writeShape(&b, 2, "Title 1", titleType, []Paragraph{{Runs: []Run{{Text: s.Title}}}})
	d.writeShape(&b, 3, "Content Placeholder 2", bodyPlaceholder, body)

	b.WriteString(`</p:spTree></p:cSld><p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:sld>`)
	return b.String()
}

// writeShape writes a placeholder shape that inherits its geometry from the layout.
func (d *Deck) writeShape(b *strings.Builder, id int, name, placeholder string, paragraphs []Paragraph) {
	fmt.Fprintf(b, `<p:sp><p:nvSpPr><p:cNvPr id="%d" name="%s"/><p:cNvSpPr><a:spLocks noGrp="1"/></p:cNvSpPr>`, id, escape(name))
	b.WriteString(`<p:nvPr><p:ph ` + placeholder + `/></p:nvPr></p:nvSpPr><p:spPr/>`)
	b.WriteString(`<p:txBody><a:bodyPr><a:normAutofit/></a:bodyPr><a:lstStyle/>`)
	if len(paragraphs) == 0 {
		b.WriteString(`<a:p><a:endParaRPr lang="` + escape(d.language) + `" dirty="0"/></a:p>`)
	}
	for _, p := range paragraphs {
		b.WriteString(`<a:p>`)
		for _, r := range p.Runs {
			d.writeRun(b, r)
		}
		b.WriteString(`</a:p>`)
	}
	b.WriteString(`</p:txBody></p:sp>`)
}

func (d *Deck) writeRun(b *strings.Builder, r Run) {
	b.WriteString(`<a:r><a:rPr lang="` + escape(d.language) + `"`)
	if r.Size > 0 {
		b.WriteString(` sz="` + strconv.Itoa(int(math.Round(r.Size*100))) + `"`)
	}
	if r.Bold {
		b.WriteString(` b="1"`)
	}
	b.WriteString(` dirty="0"`)
	if r.Color != "" {
		b.WriteString(`><a:solidFill><a:srgbClr val="` + r.Color + `"/></a:solidFill></a:rPr>`)
	} else {
		b.WriteString(`/>`)
	}
	b.WriteString(`<a:t>` + escape(r.Text) + `</a:t></a:r>`)
}

// escape returns s with XML special characters replaced by entities.
func escape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s)) //nolint:errcheck // strings.Builder never fails
	return b.String()
}

// countingWriter counts bytes passed through to the underlying writer.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
