package site

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jsonLDPage = `<html><head>
<script type="application/ld+json">
{"@type":"Event","name":"Finding Awe","description":"A talk","url":"https://nga.gov/finding-awe","startDate":"2026-04-10","location":{"name":"East Building"}}
</script>
</head><body></body></html>`

func TestDiscoverJSONLD_ParsesEventNode(t *testing.T) {
	page, err := parsePage([]byte(jsonLDPage), "https://nga.gov/events")
	require.NoError(t, err)

	blocks := discoverJSONLD(page)
	require.Len(t, blocks, 1)
	assert.Equal(t, "Finding Awe", blocks[0].Title)
	assert.Equal(t, "https://nga.gov/finding-awe", blocks[0].URL)
	assert.Equal(t, "2026-04-10", blocks[0].DateRangeRaw)
	assert.Equal(t, "East Building", blocks[0].LocationRaw)
}

const jsonLDGraphPage = `<html><head>
<script type="application/ld+json">
{"@graph":[{"@type":"WebPage"},{"@type":["Event","MusicEvent"],"name":"Spring Concert","startDate":"2026-05-01","endDate":"2026-05-01"}]}
</script>
</head></html>`

func TestDiscoverJSONLD_HandlesGraphWrapper(t *testing.T) {
	page, err := parsePage([]byte(jsonLDGraphPage), "https://example.org")
	require.NoError(t, err)

	blocks := discoverJSONLD(page)
	require.Len(t, blocks, 1)
	assert.Equal(t, "Spring Concert", blocks[0].Title)
}

func TestDiscoverJSONLD_IgnoresNonEventNodes(t *testing.T) {
	page, err := parsePage([]byte(`<script type="application/ld+json">{"@type":"Organization","name":"NGA"}</script>`), "https://nga.gov")
	require.NoError(t, err)
	assert.Empty(t, discoverJSONLD(page))
}
