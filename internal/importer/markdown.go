package importer

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// ErrEmptyDocument indicates the markdown source contains no usable content
var ErrEmptyDocument = errors.New("markdown document has no content")

// Slide is one parsed project step
type Slide struct {
	Title string
	HTML  string
}

// ProjectDoc is a parsed markdown project document: a title, an optional
// intro block, and one slide per second-level heading.
type ProjectDoc struct {
	Title  string
	Intro  string
	Slides []Slide
}

var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

// ParseProject splits a markdown document into a project row and its
// slides. The first top-level heading becomes the row title; content
// before the first "##" heading becomes the row intro; each "##" heading
// starts a new slide. Bodies are rendered to HTML.
func ParseProject(source []byte) (*ProjectDoc, error) {
	doc := &ProjectDoc{}

	var current *Slide
	var buf bytes.Buffer

	flush := func() error {
		html, err := render(buf.String())
		if err != nil {
			return err
		}
		if current != nil {
			current.HTML = html
			doc.Slides = append(doc.Slides, *current)
		} else {
			doc.Intro = html
		}
		buf.Reset()
		return nil
	}

	scanner := bufio.NewScanner(bytes.NewReader(source))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case strings.HasPrefix(line, "## "):
			if err := flush(); err != nil {
				return nil, err
			}
			current = &Slide{Title: strings.TrimSpace(strings.TrimPrefix(line, "## "))}
		case strings.HasPrefix(line, "# ") && doc.Title == "" && current == nil:
			doc.Title = strings.TrimSpace(strings.TrimPrefix(line, "# "))
		default:
			buf.WriteString(line)
			buf.WriteString("\n")
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read markdown source: %w", err)
	}
	if err := flush(); err != nil {
		return nil, err
	}

	if doc.Title == "" && len(doc.Slides) == 0 && strings.TrimSpace(doc.Intro) == "" {
		return nil, ErrEmptyDocument
	}
	if doc.Title == "" && len(doc.Slides) > 0 {
		// Headless document: promote the first slide to the row itself
		doc.Title = doc.Slides[0].Title
		if strings.TrimSpace(doc.Intro) == "" {
			doc.Intro = doc.Slides[0].HTML
			doc.Slides = doc.Slides[1:]
		}
	}
	if doc.Title == "" {
		return nil, ErrEmptyDocument
	}

	return doc, nil
}

func render(source string) (string, error) {
	if strings.TrimSpace(source) == "" {
		return "", nil
	}
	var out bytes.Buffer
	if err := md.Convert([]byte(source), &out); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return strings.TrimSpace(out.String()), nil
}
