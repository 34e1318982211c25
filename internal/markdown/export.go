package markdown

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	spaceRun    = regexp.MustCompile(`\s+`)
	blankLines  = regexp.MustCompile(`(\n\s*){3,}`)
	trailingWSP = regexp.MustCompile(`[ \t]+\n`)
)

// FileName turns a page title into the exported file name.
func FileName(title string) string {
	return spaceRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(title)), "-") + ".md"
}

// Export renders page HTML as a markdown document headed by the title.
func Export(title, content string) (string, []byte, error) {
	body, err := FromHTML(content)
	if err != nil {
		return "", nil, err
	}
	return FileName(title), []byte(fmt.Sprintf("# %s\n\n%s", title, body)), nil
}

// FromHTML converts the block structure of page HTML to markdown.
func FromHTML(content string) (string, error) {
	nodes, err := html.ParseFragment(strings.NewReader(content), &html.Node{
		Type: html.ElementNode, Data: "div", DataAtom: atom.Div,
	})
	if err != nil {
		return "", fmt.Errorf("parsing page content: %w", err)
	}

	var b strings.Builder
	for _, n := range nodes {
		render(&b, n, 0)
	}
	out := trailingWSP.ReplaceAllString(b.String(), "\n")
	out = blankLines.ReplaceAllString(out, "\n\n")
	return strings.TrimSpace(out) + "\n", nil
}

// PlainText strips markup, keeping one line per block.
func PlainText(content string) string {
	nodes, err := html.ParseFragment(strings.NewReader(content), &html.Node{
		Type: html.ElementNode, Data: "div", DataAtom: atom.Div,
	})
	if err != nil {
		return content
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			b.WriteString(n.Data)
		case n.Type == html.ElementNode && n.DataAtom == atom.Br:
			b.WriteByte('\n')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode && isBlock(n.DataAtom) {
			b.WriteByte('\n')
		}
	}
	for _, n := range nodes {
		walk(n)
	}
	return strings.TrimSpace(blankLines.ReplaceAllString(b.String(), "\n\n"))
}

func isBlock(a atom.Atom) bool {
	switch a {
	case atom.P, atom.Div, atom.Li, atom.Ul, atom.Ol, atom.Blockquote, atom.Pre,
		atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		return true
	}
	return false
}

func render(b *strings.Builder, n *html.Node, depth int) {
	switch n.Type {
	case html.TextNode:
		if strings.TrimSpace(n.Data) != "" {
			b.WriteString(spaceRun.ReplaceAllString(n.Data, " "))
		}
		return
	case html.ElementNode:
	default:
		children(b, n, depth)
		return
	}

	switch n.DataAtom {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		level := int(n.Data[1] - '0')
		b.WriteString("\n" + strings.Repeat("#", level) + " ")
		inline(b, n)
		b.WriteString("\n\n")
	case atom.P, atom.Div:
		inline(b, n)
		b.WriteString("\n\n")
	case atom.Ul, atom.Ol:
		i := 1
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.DataAtom != atom.Li {
				continue
			}
			b.WriteString(strings.Repeat("  ", depth))
			if n.DataAtom == atom.Ol {
				fmt.Fprintf(b, "%d. ", i)
				i++
			} else {
				b.WriteString("- ")
			}
			item(b, c, depth)
			b.WriteString("\n")
		}
		if depth == 0 {
			b.WriteString("\n")
		}
	case atom.Br:
		b.WriteString("\n")
	default:
		inline(b, n)
	}
}

func children(b *strings.Builder, n *html.Node, depth int) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		render(b, c, depth)
	}
}

// item renders a list item: its inline text, then any nested lists.
func item(b *strings.Builder, li *html.Node, depth int) {
	for c := li.FirstChild; c != nil; c = c.NextSibling {
		if c.DataAtom == atom.Ul || c.DataAtom == atom.Ol {
			b.WriteString("\n")
			render(b, c, depth+1)
			continue
		}
		inlineNode(b, c)
	}
}

func inline(b *strings.Builder, n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		inlineNode(b, c)
	}
}

func inlineNode(b *strings.Builder, n *html.Node) {
	if n.Type == html.TextNode {
		b.WriteString(spaceRun.ReplaceAllString(n.Data, " "))
		return
	}
	if n.Type != html.ElementNode {
		return
	}
	switch n.DataAtom {
	case atom.Strong, atom.B:
		b.WriteString("**")
		inline(b, n)
		b.WriteString("**")
	case atom.Em, atom.I:
		b.WriteString("*")
		inline(b, n)
		b.WriteString("*")
	case atom.Code:
		b.WriteString("`")
		inline(b, n)
		b.WriteString("`")
	case atom.A:
		href := ""
		for _, a := range n.Attr {
			if a.Key == "href" {
				href = a.Val
			}
		}
		if href == "" {
			inline(b, n)
			return
		}
		b.WriteString("[")
		inline(b, n)
		b.WriteString("](" + href + ")")
	case atom.Br:
		b.WriteString("\n")
	default:
		inline(b, n)
	}
}
