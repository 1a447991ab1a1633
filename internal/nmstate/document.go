package nmstate

import (
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Document is a parsed network-state document. Header is nil when the text
// carries no leading comment lines.
type Document struct {
	Header *Header
	State  State
}

// SplitDocument separates the leading comment lines from the structured body.
func SplitDocument(text string) ([]string, string) {
	lines := strings.Split(text, "\n")
	n := 0
	for n < len(lines) && strings.HasPrefix(strings.TrimSpace(lines[n]), CommentMarker) {
		n++
	}
	return lines[:n], strings.Join(lines[n:], "\n")
}

// Parse decodes the header and body of a document.
func Parse(text string) (*Document, error) {
	headerLines, body := SplitDocument(text)

	doc := &Document{}
	if len(headerLines) > 0 {
		header, err := ParseHeader(headerLines)
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse document header")
		}
		doc.Header = header
	}

	if err := yaml.Unmarshal([]byte(body), &doc.State); err != nil {
		return nil, errors.Wrap(err, "failed to parse document body")
	}
	return doc, nil
}

// Marshal renders the document as header lines followed by the YAML body.
func (d *Document) Marshal() (string, error) {
	body, err := yaml.Marshal(d.State)
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal document body")
	}

	var sb strings.Builder
	if d.Header != nil {
		for _, line := range d.Header.Lines() {
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}
	sb.Write(body)
	return sb.String(), nil
}
