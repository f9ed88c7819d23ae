// Package doc provides the immutable document model the preview engine
// operates on: a content snapshot with a line index, offset spans, and
// selection ranges. All offsets are byte offsets; spans are half-open
// [From, To) intervals.
package doc

import "sort"

// Snapshot is an immutable view of the document content at a point in time.
// It holds the raw bytes and a line index for offset-to-line lookups.
type Snapshot struct {
	content []byte
	lines   []LineInfo
}

// LineInfo holds byte offsets for a single line.
type LineInfo struct {
	// StartOffset is the byte index of the line start.
	StartOffset int

	// NewlineStart is the byte index where newline characters begin.
	// For lines without a trailing newline (e.g., last line), this equals EndOffset.
	NewlineStart int

	// EndOffset is the byte index just after the newline (or end of document).
	EndOffset int
}

// NewSnapshot creates a Snapshot from content. The content is copied so
// later mutations by the caller cannot be observed through the snapshot.
func NewSnapshot(content []byte) *Snapshot {
	cp := make([]byte, len(content))
	copy(cp, content)
	return &Snapshot{
		content: cp,
		lines:   buildLines(cp),
	}
}

// buildLines constructs line metadata from content.
// It handles both LF (\n) and CRLF (\r\n) line endings.
func buildLines(content []byte) []LineInfo {
	if len(content) == 0 {
		return []LineInfo{}
	}

	var lines []LineInfo
	lineStart := 0

	for idx, char := range content {
		if char == '\n' {
			newlineStart := idx
			if idx > 0 && content[idx-1] == '\r' {
				newlineStart = idx - 1
			}

			lines = append(lines, LineInfo{
				StartOffset:  lineStart,
				NewlineStart: newlineStart,
				EndOffset:    idx + 1,
			})
			lineStart = idx + 1
		}
	}

	// Last line may not have a trailing newline.
	if lineStart <= len(content) {
		lines = append(lines, LineInfo{
			StartOffset:  lineStart,
			NewlineStart: len(content),
			EndOffset:    len(content),
		})
	}

	return lines
}

// Len returns the document length in bytes.
func (s *Snapshot) Len() int {
	return len(s.content)
}

// ByteAt returns the byte at the given offset and true, or 0 and false if
// the offset is out of range.
func (s *Snapshot) ByteAt(offset int) (byte, bool) {
	if offset < 0 || offset >= len(s.content) {
		return 0, false
	}
	return s.content[offset], true
}

// Slice returns the document text covered by the span, clamped to the
// document bounds. Out-of-range spans yield an empty string rather than
// a panic.
func (s *Snapshot) Slice(span Span) string {
	from, to := span.From, span.To
	if from < 0 {
		from = 0
	}
	if to > len(s.content) {
		to = len(s.content)
	}
	if from >= to {
		return ""
	}
	return string(s.content[from:to])
}

// LineCount returns the number of lines in the document.
func (s *Snapshot) LineCount() int {
	return len(s.lines)
}

// Line returns metadata for the 0-based line index.
func (s *Snapshot) Line(idx int) (LineInfo, bool) {
	if idx < 0 || idx >= len(s.lines) {
		return LineInfo{}, false
	}
	return s.lines[idx], true
}

// LineSpanAt returns the span of the line containing the given offset,
// excluding the trailing newline. Offsets past the end of the document
// resolve to the last line; an empty document yields an empty span.
func (s *Snapshot) LineSpanAt(offset int) Span {
	if len(s.lines) == 0 {
		return Span{}
	}
	if offset < 0 {
		offset = 0
	}
	if offset >= len(s.content) {
		last := s.lines[len(s.lines)-1]
		return Span{From: last.StartOffset, To: last.NewlineStart}
	}

	lineIdx := sort.Search(len(s.lines), func(i int) bool {
		return s.lines[i].EndOffset > offset
	})
	if lineIdx >= len(s.lines) {
		lineIdx = len(s.lines) - 1
	}

	line := s.lines[lineIdx]
	return Span{From: line.StartOffset, To: line.NewlineStart}
}
