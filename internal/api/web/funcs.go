package web

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/hpusset/ELRI-sub001/internal/pkg/validators"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// PrettyQuotes replaces straight double quotes with alternating typographic
// quotes and straight single quotes with a right single quotation mark.
func PrettyQuotes(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	open := true
	for _, r := range s {
		switch r {
		case '"':
			if open {
				b.WriteRune('“')
			} else {
				b.WriteRune('”')
			}
			open = !open
		case '\'':
			b.WriteRune('’')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// URLValid prefixes s with http:// unless it already carries one of validators.URLSchemes.
// Surrounding whitespace is trimmed and an empty string stays empty.
func URLValid(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || validators.HasURLScheme(s) {
		return s
	}
	return "http://" + s
}

// AddAttribute sets attr on the first element of an HTML fragment
func AddAttribute(fragment, attr, value string) (template.HTML, error) {
	nodes, err := parseFragment(fragment)
	if err != nil {
		return "", err
	}
	for _, n := range nodes {
		if el := firstElement(n); el != nil {
			setAttr(el, attr, value)
			break
		}
	}
	return renderFragment(nodes)
}

// LinksTargetBlank makes every link to an absolute http(s) URL open in a new tab
func LinksTargetBlank(fragment string) (template.HTML, error) {
	nodes, err := parseFragment(fragment)
	if err != nil {
		return "", err
	}
	for _, n := range nodes {
		walk(n, func(el *html.Node) {
			if el.DataAtom != atom.A {
				return
			}
			href := strings.ToLower(strings.TrimSpace(getAttr(el, "href")))
			if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
				setAttr(el, "target", "_blank")
				setAttr(el, "rel", "noopener noreferrer")
			}
		})
	}
	return renderFragment(nodes)
}

func parseFragment(fragment string) ([]*html.Node, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML fragment: %w", err)
	}
	return nodes, nil
}

func renderFragment(nodes []*html.Node) (template.HTML, error) {
	var buf bytes.Buffer
	for _, n := range nodes {
		if err := html.Render(&buf, n); err != nil {
			return "", fmt.Errorf("failed to render HTML fragment: %w", err)
		}
	}
	return template.HTML(buf.String()), nil // #nosec G203
}

func firstElement(n *html.Node) *html.Node {
	if n.Type == html.ElementNode {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if el := firstElement(c); el != nil {
			return el
		}
	}
	return nil
}

func walk(n *html.Node, visit func(*html.Node)) {
	if n.Type == html.ElementNode {
		visit(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

func getAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, key, value string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: value})
}
