package splice

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/jsonc"
)

// Locator errors. All of them are fatal for the target being processed.
var (
	ErrKeyNotFound  = errors.New("key not found")
	ErrUnterminated = errors.New("unterminated delimiter")
	ErrWrongShape   = errors.New("unexpected value shape")
)

// Span is a half-open byte range [Start, End) within a document.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int { return s.End - s.Start }

// FindKey scans doc for key at the given object-nesting depth and returns
// the key's byte position and the span of its value. Depth 1 means a key
// directly inside the document's top-level object.
func FindKey(doc string, depth int, key string) (int, Span, error) {
	return findKey(shadow(doc), 0, len(doc), depth, key)
}

// FindKeyWithin is FindKey constrained to a previously located object span.
// Depth is relative to that object: 1 means a key directly inside it.
func FindKeyWithin(doc string, object Span, depth int, key string) (int, Span, error) {
	return findKey(shadow(doc), object.Start, object.End, depth, key)
}

// FindObject is FindKey for keys whose value must be an object. It fails
// with ErrWrongShape when the value is anything else.
func FindObject(doc string, depth int, key string) (int, Span, error) {
	keyPos, value, err := FindKey(doc, depth, key)
	if err != nil {
		return 0, Span{}, err
	}
	if doc[value.Start] != '{' {
		return 0, Span{}, fmt.Errorf("%q: %w: value must be an object", key, ErrWrongShape)
	}
	return keyPos, value, nil
}

// ReplaceSpan splices replacement into doc over span.
func ReplaceSpan(doc string, span Span, replacement string) string {
	return doc[:span.Start] + replacement + doc[span.End:]
}

// LineIndent returns the whitespace between the start of pos's line and pos.
func LineIndent(doc string, pos int) string {
	lineStart := strings.LastIndex(doc[:pos], "\n") + 1
	return doc[lineStart:pos]
}

// Indent prefixes every line after the first with indent, so a multi-line
// value lines up under the key it replaces.
func Indent(value, indent string) string {
	lines := strings.Split(value, "\n")
	for i := 1; i < len(lines); i++ {
		lines[i] = indent + lines[i]
	}
	return strings.Join(lines, "\n")
}

// shadow returns a scan copy of doc with JSONC comments neutralized.
// jsonc.ToJSON keeps the output the same length as the input, so offsets
// found in the shadow map 1:1 onto doc.
func shadow(doc string) string {
	s := string(jsonc.ToJSON([]byte(doc)))
	if len(s) != len(doc) {
		return doc
	}
	return s
}

func findKey(doc string, from, to, depth int, key string) (int, Span, error) {
	level := 0
	for i := from; i < to; i++ {
		switch doc[i] {
		case '"':
			token, end, err := scanString(doc, i)
			if err != nil {
				return 0, Span{}, err
			}
			if level == depth && token == key {
				keyPos := i
				j := skipSpaces(doc, end+1)
				if j >= len(doc) || doc[j] != ':' {
					// A quoted token without a colon is a string value
					// that happens to spell the key. Keep scanning.
					i = end
					continue
				}
				j = skipSpaces(doc, j+1)
				if j >= len(doc) {
					return 0, Span{}, fmt.Errorf("%q: %w: key missing value", key, ErrWrongShape)
				}
				value, err := valueSpan(doc, j)
				if err != nil {
					return 0, Span{}, err
				}
				return keyPos, value, nil
			}
			i = end
		case '{':
			level++
		case '}':
			level--
		}
	}
	return 0, Span{}, fmt.Errorf("%q: %w", key, ErrKeyNotFound)
}

// valueSpan returns the span of the value beginning at start: a balanced
// object or array, a quoted string, or a bare scalar ended by a separator.
func valueSpan(doc string, start int) (Span, error) {
	switch doc[start] {
	case '{':
		end, err := matchDelims(doc, start, '{', '}')
		if err != nil {
			return Span{}, err
		}
		return Span{Start: start, End: end + 1}, nil
	case '[':
		end, err := matchDelims(doc, start, '[', ']')
		if err != nil {
			return Span{}, err
		}
		return Span{Start: start, End: end + 1}, nil
	case '"':
		_, end, err := scanString(doc, start)
		if err != nil {
			return Span{}, err
		}
		return Span{Start: start, End: end + 1}, nil
	default:
		for i := start; i < len(doc); i++ {
			switch doc[i] {
			case ',', '}', ' ', '\t', '\n', '\r':
				return Span{Start: start, End: i}, nil
			}
		}
		return Span{Start: start, End: len(doc)}, nil
	}
}

// matchDelims returns the index of the closing delimiter balancing the
// opening one at start, skipping quoted strings.
func matchDelims(doc string, start int, open, close byte) (int, error) {
	depth := 0
	for i := start; i < len(doc); i++ {
		switch doc[i] {
		case '"':
			_, end, err := scanString(doc, i)
			if err != nil {
				return 0, err
			}
			i = end
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}
	return 0, fmt.Errorf("%w: %q opened at offset %d", ErrUnterminated, string(open), start)
}

// scanString reads the quoted string starting at start and returns its
// contents and the index of the closing quote.
func scanString(doc string, start int) (string, int, error) {
	escaped := false
	for i := start + 1; i < len(doc); i++ {
		if escaped {
			escaped = false
			continue
		}
		switch doc[i] {
		case '\\':
			escaped = true
		case '"':
			return doc[start+1 : i], i, nil
		}
	}
	return "", 0, fmt.Errorf("%w: string opened at offset %d", ErrUnterminated, start)
}

func skipSpaces(doc string, start int) int {
	for i := start; i < len(doc); i++ {
		switch doc[i] {
		case ' ', '\t', '\n', '\r':
		default:
			return i
		}
	}
	return len(doc)
}
