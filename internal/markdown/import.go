package markdown

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	emoji "github.com/yuin/goldmark-emoji"
	"github.com/yuin/goldmark/extension"
)

// Raw HTML in imported files is dropped by the renderer.
var converter = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		emoji.New(emoji.WithRenderingMethod(emoji.Unicode)),
	),
)

// Import reads a markdown file and returns the page title, taken from the
// file name, and the rendered HTML content.
func Import(name string, r io.Reader) (string, string, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return "", "", fmt.Errorf("reading %s: %w", name, err)
	}
	content, err := ToHTML(src)
	if err != nil {
		return "", "", fmt.Errorf("converting %s: %w", name, err)
	}
	return Title(name), content, nil
}

// ToHTML renders markdown source as HTML.
func ToHTML(src []byte) (string, error) {
	var buf bytes.Buffer
	if err := converter.Convert(src, &buf); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}

// Title derives a page title from a file name.
func Title(name string) string {
	return strings.TrimSuffix(filepath.Base(name), ".md")
}
