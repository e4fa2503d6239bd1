// Package labelconfig edits Label Studio labeling configurations in place.
//
// A configuration is an XML document. Rename tokenizes it and rewrites only
// the value attribute of label-defining elements, leaving every other byte of
// the document as it was.
package labelconfig

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
)

var (
	ErrMalformedConfig = errors.New("label config is not well-formed XML")
	ErrLabelExists     = errors.New("label already exists in label config")
)

// labelTags are the elements whose value attribute names a label.
var labelTags = map[string]bool{
	"label":  true,
	"choice": true,
}

var attrPattern = regexp.MustCompile(`([^\s=<>/"']+)\s*=\s*("[^"]*"|'[^']*')`)

// span is the byte range of an attribute value in the raw config, without quotes.
type span struct {
	start, end int
}

// labelElement is a label element together with its enclosing control.
// parent is the offset of the control's start tag, -1 at the document root.
type labelElement struct {
	xml.StartElement
	spans  []span
	parent int
}

// Rename replaces oldValue with newValue on every label element whose value
// attribute equals oldValue exactly. It returns the rewritten config and the
// number of replacements. A config without oldValue comes back unchanged
// with a count of zero. ErrLabelExists is returned when a control holding
// oldValue already holds newValue.
func Rename(config, oldValue, newValue string) (string, int, error) {
	if oldValue == newValue {
		return config, 0, nil
	}

	matches, newExists, err := scan(config, oldValue, newValue)
	if err != nil {
		return "", 0, err
	}
	if len(matches) == 0 {
		return config, 0, nil
	}
	if newExists {
		return "", 0, fmt.Errorf("%w: %q", ErrLabelExists, newValue)
	}

	var sb strings.Builder
	sb.Grow(len(config) + len(matches)*len(newValue))
	prev := 0
	for _, m := range matches {
		sb.WriteString(config[prev:m.start])
		sb.WriteString(escapeAttr(newValue))
		prev = m.end
	}
	sb.WriteString(config[prev:])

	return sb.String(), len(matches), nil
}

// Labels returns the values of all label elements in document order.
func Labels(config string) ([]string, error) {
	var labels []string
	err := walk(config, func(el labelElement) error {
		for _, a := range el.Attr {
			if a.Name.Local == "value" {
				labels = append(labels, a.Value)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return labels, nil
}

func scan(config, oldValue, newValue string) ([]span, bool, error) {
	var (
		matches    []span
		oldParents = make(map[int]bool)
		newParents = make(map[int]bool)
	)
	err := walk(config, func(el labelElement) error {
		for i, a := range el.Attr {
			if a.Name.Local != "value" {
				continue
			}
			switch a.Value {
			case oldValue:
				matches = append(matches, el.spans[i])
				oldParents[el.parent] = true
			case newValue:
				newParents[el.parent] = true
			}
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	for parent := range oldParents {
		if newParents[parent] {
			return matches, true, nil
		}
	}
	return matches, false, nil
}

// walk calls fn for every label element with the raw value span of each of
// its attributes, in the same order as el.Attr.
func walk(config string, fn func(el labelElement) error) error {
	d := xml.NewDecoder(strings.NewReader(config))
	d.Entity = xml.HTMLEntity

	// Start offsets of the open elements, innermost last.
	var open []int

	for {
		start := int(d.InputOffset())
		tok, err := d.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedConfig, err)
		}

		switch t := tok.(type) {
		case xml.EndElement:
			open = open[:len(open)-1]
		case xml.StartElement:
			parent := -1
			if len(open) > 0 {
				parent = open[len(open)-1]
			}
			open = append(open, start)

			if !labelTags[strings.ToLower(t.Name.Local)] {
				continue
			}

			end := int(d.InputOffset())
			spans, err := attrSpans(config, start, end)
			if err != nil {
				return err
			}
			if len(spans) != len(t.Attr) {
				return fmt.Errorf("%w: cannot locate attributes of <%s> at offset %d", ErrMalformedConfig, t.Name.Local, start)
			}
			if err := fn(labelElement{StartElement: t, spans: spans, parent: parent}); err != nil {
				return err
			}
		}
	}
}

func attrSpans(config string, start, end int) ([]span, error) {
	if start < 0 || end > len(config) || start >= end {
		return nil, fmt.Errorf("%w: bad tag offsets %d..%d", ErrMalformedConfig, start, end)
	}
	raw := config[start:end]
	idx := attrPattern.FindAllStringSubmatchIndex(raw, -1)

	spans := make([]span, 0, len(idx))
	for _, m := range idx {
		// m[4]:m[5] is the quoted value including its quotes.
		spans = append(spans, span{
			start: start + m[4] + 1,
			end:   start + m[5] - 1,
		})
	}
	return spans, nil
}

func escapeAttr(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
