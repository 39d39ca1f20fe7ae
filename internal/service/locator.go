package service

import (
	"regexp"
	"strings"

	"github.com/kapu/hsr-banner-tracker-go/internal/util"
	"golang.org/x/net/html"
)

// fieldMatch is a located header cell and the data cell that follows it in
// document order.
type fieldMatch struct {
	Header string // collapsed header text
	Cell   *html.Node
}

// findField locates a th whose text equals label exactly, falling back to the
// first th containing label as a substring. The matched data cell is the next
// td in document order after the header, mirroring how the wiki lays out its
// one-row-per-field banner tables. Returns nil when either is missing.
func findField(table *html.Node, label string) *fieldMatch {
	var exact, partial *html.Node
	for _, th := range elementsByTag(table, "th") {
		text := util.CollapseWhitespace(nodeText(th))
		if text == label {
			exact = th
			break
		}
		if partial == nil && strings.Contains(text, label) {
			partial = th
		}
	}

	header := exact
	if header == nil {
		header = partial
	}
	return matchFrom(header)
}

// findFieldRegex is the pattern variant, used for headers whose label varies
// by reward kind, e.g. 5星角色 vs 5星光锥.
func findFieldRegex(table *html.Node, re *regexp.Regexp) *fieldMatch {
	for _, th := range elementsByTag(table, "th") {
		if re.MatchString(util.CollapseWhitespace(nodeText(th))) {
			return matchFrom(th)
		}
	}
	return nil
}

func matchFrom(header *html.Node) *fieldMatch {
	if header == nil {
		return nil
	}
	cell := nextElementByTag(header, "td")
	if cell == nil {
		return nil
	}
	return &fieldMatch{
		Header: util.CollapseWhitespace(nodeText(header)),
		Cell:   cell,
	}
}

// cellItems pulls the distinct textual items out of a multi-item data cell:
// linked names and bare text among the cell's direct children, with <br>
// separators skipped. When the cell has no such children the flattened text
// is split on newlines instead.
func cellItems(cell *html.Node) []string {
	items := make([]string, 0, 4)
	for child := cell.FirstChild; child != nil; child = child.NextSibling {
		switch child.Type {
		case html.ElementNode:
			// Only linked names count; <br> and wrapper markup are layout.
			if child.Data != "a" {
				continue
			}
			if text := strings.TrimSpace(nodeText(child)); text != "" {
				items = append(items, text)
			}
		case html.TextNode:
			if text := strings.TrimSpace(child.Data); text != "" {
				items = append(items, text)
			}
		}
	}

	if len(items) == 0 {
		for _, line := range strings.Split(nodeText(cell), "\n") {
			if trimmed := strings.TrimSpace(line); trimmed != "" {
				items = append(items, trimmed)
			}
		}
	}

	return items
}

// nodeText concatenates every text node under n.
func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(cur *html.Node) {
		if cur.Type == html.TextNode {
			sb.WriteString(cur.Data)
		}
		for child := cur.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return sb.String()
}

func elementsByTag(root *html.Node, tag string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(cur *html.Node) {
		if cur.Type == html.ElementNode && cur.Data == tag {
			out = append(out, cur)
		}
		for child := cur.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(root)
	return out
}

// nextInDocument steps to the following node in document order: first child,
// else next sibling, else the nearest ancestor's next sibling.
func nextInDocument(n *html.Node) *html.Node {
	if n.FirstChild != nil {
		return n.FirstChild
	}
	for ; n != nil; n = n.Parent {
		if n.NextSibling != nil {
			return n.NextSibling
		}
	}
	return nil
}

func nextElementByTag(n *html.Node, tag string) *html.Node {
	for cur := nextInDocument(n); cur != nil; cur = nextInDocument(cur) {
		if cur.Type == html.ElementNode && cur.Data == tag {
			return cur
		}
	}
	return nil
}
