package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"html/template"
	"strings"

	"github.com/go-pdf/fpdf"
)

var documentTemplate = template.Must(template.New("document").Parse(
	`<html><body><h1>Translated Text</h1><p>{{range $i, $line := .Lines}}{{if $i}}<br>{{end}}{{$line}}{{end}}</p></body></html>`,
))

const fontFamily = "body"

// ErrUnsupportedText is returned when text needs a glyph the core font lacks.
var ErrUnsupportedText = errors.New("text not representable without a unicode font")

// Renderer turns text into a single-section PDF document.
type Renderer struct {
	fontPath string
}

// NewRenderer uses the TrueType font at fontPath when set, which is needed
// for scripts outside Latin-1. Without it the core Helvetica font is used.
func NewRenderer(fontPath string) *Renderer {
	return &Renderer{fontPath: fontPath}
}

// HTML escapes text into the document template.
func (r *Renderer) HTML(text string) (string, error) {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var buf bytes.Buffer
	if err := documentTemplate.Execute(&buf, struct{ Lines []string }{strings.Split(text, "\n")}); err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}
	return buf.String(), nil
}

func (r *Renderer) Render(text string) ([]byte, error) {
	doc, err := r.HTML(text)
	if err != nil {
		return nil, err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Translated Text", true)
	pdf.SetMargins(20, 20, 20)

	family := "Helvetica"
	translate := func(s string) string { return s }
	if r.fontPath != "" {
		pdf.AddUTF8Font(fontFamily, "", r.fontPath)
		pdf.AddUTF8Font(fontFamily, "B", r.fontPath)
		family = fontFamily
	} else {
		translate = pdf.UnicodeTranslatorFromDescriptor("")
		if c, ok := unsupportedRune(translate, text); ok {
			return nil, fmt.Errorf("rendering %q: %w", c, ErrUnsupportedText)
		}
	}

	pdf.AddPage()
	writeHTML(pdf, family, translate, doc)

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("rendering pdf: %w", err)
	}

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, fmt.Errorf("writing pdf: %w", err)
	}
	return out.Bytes(), nil
}

// unsupportedRune reports the first rune translate maps to the '.' fallback.
func unsupportedRune(translate func(string) string, text string) (rune, bool) {
	for _, r := range text {
		if r >= 0x80 && translate(string(r)) == "." {
			return r, true
		}
	}
	return 0, false
}

type textStyle struct {
	style  string
	size   float64
	lineHt float64
}

var (
	headingStyle = textStyle{style: "B", size: 20, lineHt: 10}
	bodyStyle    = textStyle{style: "", size: 12, lineHt: 6}
)

// writeHTML lays out the small tag set the template produces.
func writeHTML(pdf *fpdf.Fpdf, family string, translate func(string) string, doc string) {
	current := bodyStyle
	pdf.SetFont(family, current.style, current.size)

	for _, seg := range fpdf.HTMLBasicTokenize(doc) {
		switch seg.Cat {
		case 'O':
			switch seg.Str {
			case "h1":
				current = headingStyle
				pdf.SetFont(family, current.style, current.size)
			case "p":
				current = bodyStyle
				pdf.SetFont(family, current.style, current.size)
			case "br":
				pdf.Ln(current.lineHt)
			}
		case 'C':
			switch seg.Str {
			case "h1":
				pdf.Ln(current.lineHt * 1.5)
			case "p":
				pdf.Ln(current.lineHt)
			}
		case 'T':
			pdf.Write(current.lineHt, translate(html.UnescapeString(seg.Str)))
		}
	}
}
