package render

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/LoboMiguelBR/anrielly-cerimonias-elegancia-sub002/internal/models"
)

func TestSections(t *testing.T) {
	html, err := Sections([]models.Section{
		{
			Type:   models.SectionHero,
			Active: true,
			Content: models.Blocks{
				{Type: models.BlockHeading, Level: 1, Text: "Bem-vindos"},
				{Type: models.BlockImage, URL: "/uploads/altar.jpg", Alt: "Altar", Text: "O altar"},
			},
		},
		{
			Type:   models.SectionTestimonials,
			Active: true,
			Content: models.Blocks{
				{Type: models.BlockQuote, Text: "Tudo perfeito.", Attribution: "Mariana"},
			},
		},
	})
	require.NoError(t, err)

	out := string(html)
	require.Contains(t, out, `<section class="section section-hero">`)
	require.Contains(t, out, "<h1>Bem-vindos</h1>")
	require.Contains(t, out, `<img src="/uploads/altar.jpg" alt="Altar">`)
	require.Contains(t, out, "<figcaption>O altar</figcaption>")
	require.Contains(t, out, "<blockquote><p>Tudo perfeito.</p><cite>Mariana</cite></blockquote>")
}

func TestSectionsSkipsInactive(t *testing.T) {
	html, err := Sections([]models.Section{
		{
			Type:    models.SectionText,
			Active:  false,
			Content: models.Blocks{{Type: models.BlockHeading, Level: 2, Text: "Oculto"}},
		},
	})
	require.NoError(t, err)
	require.Empty(t, string(html))
}

func TestSectionsEscapesText(t *testing.T) {
	html, err := Sections([]models.Section{
		{
			Type:    models.SectionText,
			Active:  true,
			Content: models.Blocks{{Type: models.BlockHeading, Level: 2, Text: "<script>"}},
		},
	})
	require.NoError(t, err)
	require.NotContains(t, string(html), "<script>")
	require.Contains(t, string(html), "&lt;script&gt;")
}

func TestSectionsRendersOrgMarkup(t *testing.T) {
	html, err := Sections([]models.Section{
		{
			Type:    models.SectionText,
			Active:  true,
			Content: models.Blocks{{Type: models.BlockText, Markup: "*Cerimônias* com elegância"}},
		},
	})
	require.NoError(t, err)
	require.Contains(t, string(html), "Cerimônias")
}

func TestSectionsHighlightsCode(t *testing.T) {
	html, err := Sections([]models.Section{
		{
			Type:    models.SectionText,
			Active:  true,
			Content: models.Blocks{{Type: models.BlockCode, Language: "go", Source: "package main"}},
		},
	})
	require.NoError(t, err)
	require.Contains(t, string(html), "package")
}

func TestSectionsRejectsUnknownBlock(t *testing.T) {
	_, err := Sections([]models.Section{
		{
			Type:    models.SectionText,
			Active:  true,
			Content: models.Blocks{{Type: "video"}},
		},
	})
	require.Error(t, err)
}
