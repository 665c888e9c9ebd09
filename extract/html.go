package extract

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// htmlText strips markup and returns the visible text. Script and style
// bodies are dropped. Block elements end with a blank line so the source's
// paragraph structure survives into chunking; <br> is a plain line break.
func htmlText(data []byte) (string, error) {
	root, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	collectText(root, &buf)
	return collapseBlankRuns(buf.String()), nil
}

func collectText(n *html.Node, buf *bytes.Buffer) {
	switch n.Type {
	case html.ElementNode:
		switch n.Data {
		case "script", "style", "noscript":
			return
		}
	case html.TextNode:
		text := strings.TrimSpace(n.Data)
		if text != "" {
			if buf.Len() > 0 && !strings.HasSuffix(buf.String(), "\n") {
				buf.WriteByte(' ')
			}
			buf.WriteString(text)
		}
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		collectText(child, buf)
	}
	if n.Type == html.ElementNode {
		switch {
		case n.Data == "br":
			buf.WriteByte('\n')
		case isBlockElement(n.Data):
			buf.WriteString("\n\n")
		}
	}
}

func isBlockElement(name string) bool {
	switch name {
	case "p", "div", "li", "tr", "section", "article",
		"h1", "h2", "h3", "h4", "h5", "h6", "blockquote", "pre":
		return true
	}
	return false
}

// collapseBlankRuns reduces runs of blank lines to a single paragraph
// break and trims trailing whitespace from each line.
func collapseBlankRuns(text string) string {
	lines := strings.Split(text, "\n")
	var out []string
	blank := true
	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			if !blank {
				out = append(out, "")
			}
			blank = true
			continue
		}
		out = append(out, line)
		blank = false
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
