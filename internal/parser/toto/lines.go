package toto

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/Vodeneev/totobet/internal/pkg/normalize"
)

// ExtractTextLines reduces page markup to the ordered, whitespace-normalized,
// non-empty text lines the heuristics operate on. Script and style content
// is always dropped; noscript content is dropped only when the markup came
// from a rendered DOM, where it duplicates content already present.
func ExtractTextLines(markup string, dropNoscript bool) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parse page markup: %w", err)
	}
	sel := "script,style"
	if dropNoscript {
		sel = "script,style,noscript"
	}
	doc.Find(sel).Remove()

	var lines []string
	for _, root := range doc.Selection.Nodes {
		collectTextLines(root, &lines)
	}
	return lines, nil
}

// collectTextLines walks the node tree in document order, treating every
// text node (and every newline inside one) as a line boundary.
func collectTextLines(n *html.Node, lines *[]string) {
	if n.Type == html.TextNode {
		for _, part := range strings.Split(n.Data, "\n") {
			if t := normalize.Whitespace(part); t != "" {
				*lines = append(*lines, t)
			}
		}
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectTextLines(c, lines)
	}
}
