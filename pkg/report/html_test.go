package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderHTML_Document(t *testing.T) {
	html, err := RenderHTML("# Daily Report\n\n- **P0**: 60.0%\n", nil)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(html, "<html><head><style>"))
	assert.True(t, strings.HasSuffix(html, "</body></html>"))
	assert.Contains(t, html, "<h1>Daily Report</h1>")
	assert.Contains(t, html, "<strong>P0</strong>")
}

func TestRenderHTML_NeglectedHighlight(t *testing.T) {
	html, err := RenderHTML("- **NEGLECTED**: P2: docs — no activity this period\n", nil)
	require.NoError(t, err)
	assert.Contains(t, html, `<strong class="neglected">NEGLECTED</strong>`)
}

func TestRenderHTML_ChartReferences(t *testing.T) {
	charts := map[string][]byte{
		"timeseries": {1},
		"hourly":     {2},
		"daily":      {3},
	}

	html, err := RenderHTML("body text here", charts)
	require.NoError(t, err)

	assert.Contains(t, html, `<img src="cid:hourly"`)
	assert.Contains(t, html, `<img src="cid:daily"`)
	assert.Contains(t, html, `<img src="cid:timeseries"`)

	// Deterministic order: cids sorted
	assert.Less(t, strings.Index(html, "cid:daily"), strings.Index(html, "cid:hourly"))
	assert.Less(t, strings.Index(html, "cid:hourly"), strings.Index(html, "cid:timeseries"))
}
