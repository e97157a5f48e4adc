package extract

import (
	"os"
	"strings"

	"golang.org/x/net/html"
)

// htmlText strips markup from an HTML file and returns its visible text
// collapsed to single-space separation. Script and style contents are
// excluded.
func htmlText(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	doc, err := html.Parse(f)
	if err != nil {
		return "", err
	}

	var builder strings.Builder
	collectText(doc, &builder)

	return strings.Join(strings.Fields(builder.String()), " "), nil
}

// collectText walks the node tree appending text node contents.
func collectText(n *html.Node, builder *strings.Builder) {
	if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
		return
	}
	if n.Type == html.TextNode {
		builder.WriteString(n.Data)
		builder.WriteString(" ")
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, builder)
	}
}
