// Package ingest loads a source document into plain text ready for
// recognition. Plain text files pass through with normalized line endings;
// HTML exports are distilled first so navigation chrome never reaches the
// pattern pass.
package ingest

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

// Load reads the source file at path and returns its plain text.
func Load(path string) (string, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("failed to read source: %w", err)
	}

	text := string(data)
	if isHTML(path, text) {
		text, err = fromHTML(text)
		if err != nil {
			return "", fmt.Errorf("failed to extract text from HTML source: %w", err)
		}
	}

	return normalize(text), nil
}

func isHTML(path, text string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm", ".xhtml":
		return true
	}
	head := strings.ToLower(strings.TrimSpace(text))
	if len(head) > 256 {
		head = head[:256]
	}
	return strings.HasPrefix(head, "<!doctype html") || strings.HasPrefix(head, "<html")
}

// fromHTML distills the document with readability, then walks the clean
// content with goquery so paragraph boundaries survive as blank lines.
func fromHTML(html string) (string, error) {
	base, _ := url.Parse("file:///source.html")

	parser := readability.NewParser()
	article, err := parser.Parse(strings.NewReader(html), base)
	if err != nil {
		return "", err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(article.Content))
	if err != nil {
		return "", err
	}

	var b strings.Builder
	doc.Find("h1,h2,h3,h4,p,li,blockquote").Each(func(i int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if text == "" {
			return
		}
		b.WriteString(text)
		b.WriteString("\n\n")
	})

	if b.Len() == 0 {
		// Readability found no block structure; fall back to its text view.
		return article.TextContent, nil
	}
	return b.String(), nil
}

// normalize unifies line endings and strips a UTF-8 BOM if present.
func normalize(text string) string {
	text = strings.TrimPrefix(text, "\uFEFF")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return text
}
