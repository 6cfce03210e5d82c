package render

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jorge-barreto/code2tutorial/internal/tutorial"
)

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
)

// toHTML renders a markdown page body to an HTML fragment with mermaid
// blocks unwrapped and relative .md links pointed at .html pages.
func toHTML(src string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(stripAttribution(src)), &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	return rewrite(buf.String())
}

// stripAttribution drops the trailing "---" and attribution line; the page
// template carries its own footer.
func stripAttribution(s string) string {
	trimmed := strings.TrimRight(s, "\n ")
	rest, ok := strings.CutSuffix(trimmed, tutorial.Attribution)
	if !ok {
		return s
	}
	rest = strings.TrimRight(rest, "\n ")
	rest = strings.TrimSuffix(rest, "---")
	return strings.TrimRight(rest, "\n ") + "\n"
}

func rewrite(fragment string) (string, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		return "", fmt.Errorf("parsing rendered html: %w", err)
	}
	for _, n := range nodes {
		body.AppendChild(n)
	}

	var mermaid []*html.Node
	walk(body, func(n *html.Node) {
		if n.Type != html.ElementNode {
			return
		}
		switch n.DataAtom {
		case atom.A:
			for i, a := range n.Attr {
				if a.Key == "href" {
					n.Attr[i].Val = htmlLink(a.Val)
				}
			}
		case atom.Pre:
			if code := n.FirstChild; code != nil && code.DataAtom == atom.Code && hasClass(code, "language-mermaid") {
				mermaid = append(mermaid, n)
			}
		}
	})
	for _, pre := range mermaid {
		div := &html.Node{
			Type:     html.ElementNode,
			Data:     "div",
			DataAtom: atom.Div,
			Attr:     []html.Attribute{{Key: "class", Val: "mermaid"}},
		}
		// Mermaid reads the diagram source verbatim, so it must not be escaped.
		div.AppendChild(&html.Node{Type: html.RawNode, Data: strings.TrimSpace(textContent(pre))})
		pre.Parent.InsertBefore(div, pre)
		pre.Parent.RemoveChild(pre)
	}

	var out bytes.Buffer
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&out, c); err != nil {
			return "", fmt.Errorf("rendering html: %w", err)
		}
	}
	return out.String(), nil
}

// htmlLink maps a relative link to a chapter's markdown file onto its
// HTML page. Absolute URLs are left alone.
func htmlLink(href string) string {
	u, err := url.Parse(href)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return href
	}
	base, ok := strings.CutSuffix(u.Path, ".md")
	if !ok {
		return href
	}
	u.Path = base + ".html"
	return u.String()
}

func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func hasClass(n *html.Node, class string) bool {
	for _, a := range n.Attr {
		if a.Key == "class" {
			for _, c := range strings.Fields(a.Val) {
				if c == class {
					return true
				}
			}
		}
	}
	return false
}

func textContent(n *html.Node) string {
	var b strings.Builder
	walk(n, func(c *html.Node) {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	})
	return b.String()
}

// firstHeading returns the text of the first h1 in an HTML fragment.
func firstHeading(fragment string) string {
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return ""
	}
	var title string
	walk(doc, func(n *html.Node) {
		if title == "" && n.Type == html.ElementNode && n.DataAtom == atom.H1 {
			title = strings.TrimSpace(textContent(n))
		}
	})
	return title
}

var titleCaser = cases.Title(language.English)

// navTitle derives a navigation label from a chapter file name:
// "03_query_engine.md" becomes "Query Engine".
func navTitle(filename string) string {
	name := strings.TrimSuffix(filename, ".md")
	if i := strings.IndexByte(name, '_'); i > 0 && strings.Trim(name[:i], "0123456789") == "" {
		name = name[i+1:]
	}
	return titleCaser.String(strings.ReplaceAll(name, "_", " "))
}

func pageName(filename string) string {
	return strings.TrimSuffix(filename, ".md") + ".html"
}
