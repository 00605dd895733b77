package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAllFields(t *testing.T) {
	raw := "Title: Markets rally on chip news\n" +
		"Caption: Big day for semiconductors.\n" +
		"Hashtags: #chips #markets\n" +
		"Source: Example Wire\n" +
		"Image URL: https://cdn.example.com/chips.jpg\n"

	rec := Parse(raw)

	assert.Equal(t, "Markets rally on chip news", rec.NewsTitle)
	assert.Equal(t, "Big day for semiconductors.", rec.Caption)
	assert.Equal(t, "#chips #markets", rec.Hashtags)
	assert.Equal(t, "Example Wire", rec.Source)
	assert.Equal(t, "https://cdn.example.com/chips.jpg", rec.ImageURL)
	assert.Equal(t, raw, rec.FullContent)
}

func TestParseMissingFieldsAreEmpty(t *testing.T) {
	rec := Parse("Caption: only a caption here")

	assert.Equal(t, "only a caption here", rec.Caption)
	assert.Empty(t, rec.Hashtags)
	assert.Empty(t, rec.Source)
	assert.Empty(t, rec.ImageURL)
	assert.Empty(t, rec.NewsTitle)
}

func TestParseLastWriteWins(t *testing.T) {
	rec := Parse("Caption: Hello\nTitle: x\nCaption: World")

	assert.Equal(t, "World", rec.Caption)
}

func TestParseIgnoresUnknownLines(t *testing.T) {
	rec := Parse("generated by model v3\n\nCaption: kept\nFooter: dropped")

	assert.Equal(t, "kept", rec.Caption)
	assert.Empty(t, rec.Source)
}

func TestParseTrimsValues(t *testing.T) {
	rec := Parse("Caption:    padded value   \r\nSource:\tTabbed Wire\r")

	assert.Equal(t, "padded value", rec.Caption)
	assert.Equal(t, "Tabbed Wire", rec.Source)
}

func TestParseIsTotal(t *testing.T) {
	for _, raw := range []string{"", "\n\n\n", "Caption:", "::::", "Image URL", "\x00\xff"} {
		assert.NotPanics(t, func() { Parse(raw) }, "input %q", raw)
	}

	rec := Parse("")
	assert.Empty(t, rec.Caption)
	assert.Equal(t, "", rec.FullContent)
}

func TestParseKeepsSentinelVerbatim(t *testing.T) {
	// "N/A" is a producer convention; the parser must not interpret it.
	rec := Parse("Image URL: N/A")

	assert.Equal(t, "N/A", rec.ImageURL)
}
