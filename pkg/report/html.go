package report

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// style is the inline CSS shared by all report emails.
const style = `<style>
body { font-family: -apple-system, sans-serif; max-width: 700px; margin: 0 auto; padding: 20px; color: #333; }
h1 { font-size: 1.4em; border-bottom: 2px solid #333; padding-bottom: 6px; }
h2 { font-size: 1.1em; margin-top: 1.5em; color: #555; }
h3 { font-size: 1em; margin-top: 1.2em; }
ul { padding-left: 1.5em; }
li { margin-bottom: 4px; }
code { background: #f4f4f4; padding: 1px 4px; border-radius: 3px; font-size: 0.9em; }
hr { border: none; border-top: 1px solid #ddd; margin: 1.5em 0; }
.neglected { color: #dc2626; font-weight: 600; }
</style>`

var md = goldmark.New(goldmark.WithExtensions(extension.Table))

// RenderHTML converts a markdown report body into the styled HTML email
// document. Chart images are appended at the bottom as cid references; the
// keys of charts name the content IDs the email layer must attach.
func RenderHTML(markdown string, charts map[string][]byte) (string, error) {
	var body bytes.Buffer
	if err := md.Convert([]byte(markdown), &body); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}

	html := body.String()
	// Neglected rows get the warning color
	html = strings.ReplaceAll(html, "<strong>NEGLECTED</strong>", `<strong class="neglected">NEGLECTED</strong>`)

	var b strings.Builder
	b.WriteString("<html><head>")
	b.WriteString(style)
	b.WriteString("</head><body>")
	b.WriteString(html)

	for _, cid := range chartOrder(charts) {
		fmt.Fprintf(&b, `<p><img src="cid:%s" alt="%s chart" style="max-width:100%%"></p>`, cid, cid)
	}

	b.WriteString("</body></html>")
	return b.String(), nil
}

func chartOrder(charts map[string][]byte) []string {
	cids := make([]string, 0, len(charts))
	for cid := range charts {
		cids = append(cids, cid)
	}
	sort.Strings(cids)
	return cids
}
