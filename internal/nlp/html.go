package nlp

import (
	"strings"

	"golang.org/x/net/html"
)

// StripHTML extracts the visible text from an HTML document so exported
// or pasted theses can be analyzed as plain text. Returns the input
// unchanged when it does not look like markup.
func StripHTML(input string) string {
	if !strings.Contains(input, "<") {
		return input
	}

	doc, err := html.Parse(strings.NewReader(input))
	if err != nil {
		return input
	}

	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)
	return strings.TrimSpace(buf.String())
}
