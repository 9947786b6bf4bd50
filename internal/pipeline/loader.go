package pipeline

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// ErrInvalidText marks input that is not valid UTF-8 text. This is the one
// true fault condition: silently treating malformed input as empty text
// would misrepresent confidence scores downstream.
var ErrInvalidText = errors.New("input is not valid UTF-8 text")

// Loader reads draft and transcript files into plain text
type Loader struct {
	maxBytes int64
}

// NewLoader creates a loader with the given size limit
func NewLoader(maxBytes int64) *Loader {
	if maxBytes <= 0 {
		maxBytes = 10_000_000
	}
	return &Loader{maxBytes: maxBytes}
}

// Load reads a file and returns its plain-text content. HTML files are
// reduced to their visible text so exported drafts can be verified directly.
func (l *Loader) Load(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	if info.Size() > l.maxBytes {
		return "", fmt.Errorf("%s: file size %d exceeds limit %d", path, info.Size(), l.maxBytes)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	if !utf8.Valid(data) {
		return "", fmt.Errorf("%s: %w", path, ErrInvalidText)
	}

	text := string(data)
	if looksLikeHTML(path, text) {
		stripped, serr := stripHTML(text)
		if serr != nil {
			return "", fmt.Errorf("parse HTML %s: %w", path, serr)
		}
		text = stripped
	}

	return text, nil
}

// looksLikeHTML checks the filename extension and the leading content
func looksLikeHTML(path, text string) bool {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".html") || strings.HasSuffix(lower, ".htm") {
		return true
	}
	head := strings.ToLower(strings.TrimSpace(text))
	return strings.HasPrefix(head, "<!doctype html") || strings.HasPrefix(head, "<html")
}

// stripHTML extracts visible text nodes, skipping script/style content
func stripHTML(content string) (string, error) {
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return "", err
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
			if text := strings.TrimSpace(n.Data); text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.TrimSpace(buf.String()), nil
}
