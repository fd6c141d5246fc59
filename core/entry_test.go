package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashMarkerRoundTrip(t *testing.T) {
	marker := HashMarker("abc123")
	hash, ok := ExtractHash("# Title\n\n" + marker + "\n\nbody\n")
	require.True(t, ok)
	assert.Equal(t, "abc123", hash)
}

func TestExtractHash_NoMarker(t *testing.T) {
	_, ok := ExtractHash("# Title\n\nno marker here\n")
	assert.False(t, ok)
}

func TestExtractHash_EmptyMarker(t *testing.T) {
	_, ok := ExtractHash(HashMarker(""))
	assert.False(t, ok)
}

func TestStripVolatile(t *testing.T) {
	text := "# Project - 1.0\n\n" +
		"**Release Date**: 2025-06-12\n" +
		"**Scraped**: 2025-06-13 10:00:00\n\n" +
		HashMarker("abc") + "\n\n" +
		"## Changes\n\nStuff.\n\n" +
		"---\n*Scraped from https://example.com on 2025-06-13 10:00:00*\n"

	stripped := StripVolatile(text)
	assert.NotContains(t, stripped, "**Scraped**:")
	assert.NotContains(t, stripped, "*Scraped from ")
	assert.NotContains(t, stripped, "content-hash")
	assert.Contains(t, stripped, "**Release Date**: 2025-06-12")
	assert.Contains(t, stripped, "## Changes")
}

func TestStripVolatile_EqualAcrossScrapeTimes(t *testing.T) {
	early := "# P - 1.0\n\n**Scraped**: 2025-01-01 00:00:00\n\nbody\n"
	late := "# P - 1.0\n\n**Scraped**: 2025-06-01 12:00:00\n\nbody\n"
	assert.Equal(t, StripVolatile(early), StripVolatile(late))
}
