package presence

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DefaultWidth is the editor surface width in cells.
const DefaultWidth = 80

// Box is a layout rectangle in editor-local cells.
type Box struct {
	X, Y, W, H float64
}

// Center returns the midpoint of b.
func (b Box) Center() (float64, float64) {
	return b.X + b.W/2, b.Y + b.H/2
}

// Block is one text element a collaborator can type in.
type Block struct {
	Tag  string
	Text string
	Box  Box
}

// Surface is the laid-out editor a simulation runs over.
type Surface struct {
	Width  float64
	Height float64
	Blocks []Block
}

// typable are the elements collaborators type into.
var typable = map[atom.Atom]bool{atom.P: true, atom.H1: true, atom.H2: true, atom.Li: true}

// BlocksFromHTML lays out the p, h1, h2 and li elements of a page's
// content, top to bottom, wrapping text at width cells. List items are
// indented by two cells and a blank row separates blocks.
func BlocksFromHTML(content string, width int) (Surface, error) {
	if width <= 0 {
		width = DefaultWidth
	}
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return Surface{}, fmt.Errorf("parsing page content: %w", err)
	}

	s := Surface{Width: float64(width)}
	row := 0
	var visit func(n *html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.ElementNode && typable[n.DataAtom] {
			text := strings.Join(strings.Fields(textOf(n)), " ")
			indent := 0
			if n.DataAtom == atom.Li {
				indent = 2
			}
			avail := max(width-indent, 1)
			runes := utf8.RuneCountInString(text)
			lines := 1
			if runes > avail {
				lines = (runes + avail - 1) / avail
			}
			w := runes
			if w > avail {
				w = avail
			}
			s.Blocks = append(s.Blocks, Block{
				Tag:  n.Data,
				Text: text,
				Box:  Box{X: float64(indent), Y: float64(row), W: float64(w), H: float64(lines)},
			})
			row += lines + 1
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(doc)

	s.Height = float64(row)
	return s, nil
}

func textOf(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(textOf(c))
		b.WriteByte(' ')
	}
	return b.String()
}
