package splice

import (
	"fmt"
	"strings"
)

// Markers is a start/end comment pair delimiting a generator-owned block.
type Markers struct {
	Start string
	End   string
}

// Strategy selects how generated content is placed into a target file.
// It is resolved once per target, before any mutation is computed.
type Strategy int

const (
	// MarkerBlock replaces the lines between a marker pair.
	MarkerBlock Strategy = iota
	// StructuralSplice replaces the byte span of a located JSON value.
	StructuralSplice
)

// String returns the strategy name for logging.
func (s Strategy) String() string {
	switch s {
	case MarkerBlock:
		return "marker-block"
	case StructuralSplice:
		return "structural-splice"
	}
	return fmt.Sprintf("strategy(%d)", int(s))
}

// ResolveStrategy picks the write strategy for doc: MarkerBlock when both
// markers are present with start before end, StructuralSplice otherwise.
func ResolveStrategy(doc string, m Markers) Strategy {
	start := strings.Index(doc, m.Start)
	end := strings.Index(doc, m.End)
	if start == -1 || end == -1 || end < start {
		return StructuralSplice
	}
	return MarkerBlock
}

// ReplaceBlock replaces the block between the markers with lines, keeping
// the marker lines themselves. The start marker must be the only
// non-whitespace content on its line; its leading whitespace is captured
// and prefixed to every inserted line and to the end-marker line.
func ReplaceBlock(doc string, m Markers, lines []string) (string, error) {
	start := strings.Index(doc, m.Start)
	end := strings.Index(doc, m.End)
	if start == -1 || end == -1 || end < start {
		return "", fmt.Errorf("markers %q..%q not found in order", m.Start, m.End)
	}

	indent, err := markerIndent(doc, start)
	if err != nil {
		return "", err
	}

	var block strings.Builder
	block.WriteString(m.Start)
	block.WriteString("\n")
	for _, line := range lines {
		block.WriteString(indent)
		block.WriteString(line)
		block.WriteString("\n")
	}
	block.WriteString(indent)
	block.WriteString(m.End)

	return doc[:start] + block.String() + doc[end+len(m.End):], nil
}

// markerIndent captures the marker line's leading whitespace, failing when
// anything else precedes the marker on its line.
func markerIndent(doc string, markerPos int) (string, error) {
	indent := LineIndent(doc, markerPos)
	if strings.TrimSpace(indent) != "" {
		return "", fmt.Errorf("start marker not alone on its line: %q", indent)
	}
	return indent, nil
}

// InnerLines takes a multi-line JSON object rendering and returns its inner
// lines with one two-space indent level removed, ready for ReplaceBlock.
func InnerLines(objectJSON string) ([]string, error) {
	lines := strings.Split(objectJSON, "\n")
	if len(lines) < 2 || strings.TrimSpace(lines[0]) != "{" || strings.TrimSpace(lines[len(lines)-1]) != "}" {
		return nil, fmt.Errorf("unexpected object rendering: %q", objectJSON)
	}
	inner := lines[1 : len(lines)-1]
	out := make([]string, len(inner))
	for i, line := range inner {
		out[i] = strings.TrimPrefix(line, "  ")
	}
	return out, nil
}
