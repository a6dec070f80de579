package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/niklasfasching/go-org/org"

	"github.com/LoboMiguelBR/anrielly-cerimonias-elegancia-sub002/internal/models"
)

// Sections renders a page's sections to HTML in position order. Inactive
// sections are skipped.
func Sections(sections []models.Section) (template.HTML, error) {
	var buf bytes.Buffer
	for _, sec := range sections {
		if !sec.Active {
			continue
		}
		buf.WriteString(fmt.Sprintf(`<section class="section section-%s">`, template.HTMLEscapeString(string(sec.Type))))
		for _, b := range sec.Content {
			html, err := blockHTML(b)
			if err != nil {
				return "", fmt.Errorf("section %d: %w", sec.ID, err)
			}
			buf.WriteString(html)
		}
		buf.WriteString("</section>")
	}
	return template.HTML(buf.String()), nil
}

func blockHTML(b models.Block) (string, error) {
	switch b.Type {
	case models.BlockHeading:
		return fmt.Sprintf("<h%d>%s</h%d>", b.Level, template.HTMLEscapeString(b.Text), b.Level), nil
	case models.BlockText:
		out, err := org.New().Parse(strings.NewReader(b.Markup), "").Write(newHTMLWriterWithChroma())
		if err != nil {
			return "", fmt.Errorf("error rendering text block: %w", err)
		}
		return out, nil
	case models.BlockImage:
		var buf bytes.Buffer
		buf.WriteString(fmt.Sprintf(`<figure><img src="%s" alt="%s">`,
			template.HTMLEscapeString(b.URL), template.HTMLEscapeString(b.Alt)))
		if b.Text != "" {
			buf.WriteString("<figcaption>" + template.HTMLEscapeString(b.Text) + "</figcaption>")
		}
		buf.WriteString("</figure>")
		return buf.String(), nil
	case models.BlockCode:
		return highlight(b.Source, b.Language), nil
	case models.BlockQuote:
		var buf bytes.Buffer
		buf.WriteString("<blockquote><p>" + template.HTMLEscapeString(b.Text) + "</p>")
		if b.Attribution != "" {
			buf.WriteString("<cite>" + template.HTMLEscapeString(b.Attribution) + "</cite>")
		}
		buf.WriteString("</blockquote>")
		return buf.String(), nil
	default:
		return "", fmt.Errorf("unknown block type %q", b.Type)
	}
}

func highlight(source, lang string) string {
	var buf bytes.Buffer
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return "<pre>" + template.HTMLEscapeString(source) + "</pre>"
	}
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.Format(&buf, styles.Get("friendly"), iterator); err != nil {
		return "<pre>" + template.HTMLEscapeString(source) + "</pre>"
	}
	return buf.String()
}

func newHTMLWriterWithChroma() *org.HTMLWriter {
	w := org.NewHTMLWriter()
	w.HighlightCodeBlock = func(source, lang string, inline bool, params map[string]string) string {
		return highlight(source, lang)
	}
	return w
}
