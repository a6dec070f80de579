package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBlockValidate(t *testing.T) {
	valid := []Block{
		{Type: BlockHeading, Level: 2, Text: "Nossos serviços"},
		{Type: BlockText, Markup: "Condução completa da cerimônia."},
		{Type: BlockImage, URL: "/uploads/altar.jpg", Alt: "Altar decorado"},
		{Type: BlockCode, Language: "html", Source: "<em>voto</em>"},
		{Type: BlockQuote, Text: "Foi tudo perfeito.", Attribution: "Mariana e João"},
	}
	for _, b := range valid {
		require.NoError(t, b.Validate(), string(b.Type))
	}

	invalid := []Block{
		{Type: BlockHeading, Level: 0, Text: "sem nível"},
		{Type: BlockHeading, Level: 7, Text: "nível alto demais"},
		{Type: BlockHeading, Level: 2},
		{Type: BlockText},
		{Type: BlockImage},
		{Type: BlockCode},
		{Type: BlockQuote},
		{Type: "video"},
		{},
	}
	for _, b := range invalid {
		require.ErrorIs(t, b.Validate(), ErrValidation, string(b.Type))
	}
}

func TestParseBlocks(t *testing.T) {
	blocks, err := ParseBlocks([]byte(`[{"type":"heading","level":1,"text":"Bem-vindos"},{"type":"text","markup":"Olá."}]`), SectionText)
	require.NoError(t, err)
	require.Len(t, blocks, 2)
	require.Equal(t, BlockHeading, blocks[0].Type)
	require.Equal(t, "Bem-vindos", blocks[0].Text)

	blocks, err = ParseBlocks(nil, SectionText)
	require.NoError(t, err)
	require.Empty(t, blocks)

	_, err = ParseBlocks([]byte(`{"not":"a list"}`), SectionText)
	require.ErrorIs(t, err, ErrValidation)

	_, err = ParseBlocks([]byte(`[{"type":"heading","level":9,"text":"x"}]`), SectionText)
	require.ErrorIs(t, err, ErrValidation)
}

func TestParseBlocksSectionRestrictions(t *testing.T) {
	// Galleries carry images only.
	_, err := ParseBlocks([]byte(`[{"type":"code","source":"x"}]`), SectionGallery)
	require.ErrorIs(t, err, ErrValidation)

	blocks, err := ParseBlocks([]byte(`[{"type":"image","url":"/uploads/buque.jpg"}]`), SectionGallery)
	require.NoError(t, err)
	require.Len(t, blocks, 1)

	// Testimonials accept quotes and portraits, nothing else.
	_, err = ParseBlocks([]byte(`[{"type":"heading","level":2,"text":"x"}]`), SectionTestimonials)
	require.ErrorIs(t, err, ErrValidation)

	// Unrestricted section types accept every block kind.
	blocks, err = ParseBlocks([]byte(`[{"type":"code","language":"go","source":"package main"}]`), SectionText)
	require.NoError(t, err)
	require.Len(t, blocks, 1)
}

func TestSettingsMerge(t *testing.T) {
	base := Settings{"theme": "classico", "layout": "wide"}
	merged := base.Merge(Settings{"theme": "moderno", "footer": true})

	require.Equal(t, "moderno", merged["theme"])
	require.Equal(t, "wide", merged["layout"])
	require.Equal(t, true, merged["footer"])

	// The receiver is untouched.
	require.Equal(t, "classico", base["theme"])
}

func TestPartialTemplateError(t *testing.T) {
	err := &PartialTemplateError{PageID: 7, Created: 2, Err: ErrValidation}
	require.ErrorIs(t, err, ErrPartialTemplate)
	require.ErrorIs(t, err, ErrValidation)
	require.Contains(t, err.Error(), "page 7")
}
