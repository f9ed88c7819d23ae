package doc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/livemark/pkg/doc"
)

func TestNewSnapshotCopiesContent(t *testing.T) {
	t.Parallel()

	content := []byte("# Title\n")
	snap := doc.NewSnapshot(content)

	content[0] = 'X'

	assert.Equal(t, "# Title\n", snap.Slice(doc.Span{From: 0, To: snap.Len()}))
}

func TestSnapshotLineSpanAt(t *testing.T) {
	t.Parallel()

	// Offsets: "# Title\n" = [0,8), "body\n" = [8,13), "last" = [13,17).
	snap := doc.NewSnapshot([]byte("# Title\nbody\nlast"))

	tests := []struct {
		name     string
		offset   int
		expected doc.Span
	}{
		{
			name:     "start of first line",
			offset:   0,
			expected: doc.Span{From: 0, To: 7},
		},
		{
			name:     "middle of first line",
			offset:   3,
			expected: doc.Span{From: 0, To: 7},
		},
		{
			name:     "on the newline itself",
			offset:   7,
			expected: doc.Span{From: 0, To: 7},
		},
		{
			name:     "second line",
			offset:   9,
			expected: doc.Span{From: 8, To: 12},
		},
		{
			name:     "last line without trailing newline",
			offset:   14,
			expected: doc.Span{From: 13, To: 17},
		},
		{
			name:     "offset at end of document",
			offset:   17,
			expected: doc.Span{From: 13, To: 17},
		},
		{
			name:     "offset past end of document",
			offset:   100,
			expected: doc.Span{From: 13, To: 17},
		},
		{
			name:     "negative offset clamps to first line",
			offset:   -1,
			expected: doc.Span{From: 0, To: 7},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.expected, snap.LineSpanAt(testCase.offset))
		})
	}
}

func TestSnapshotLineSpanAtCRLF(t *testing.T) {
	t.Parallel()

	snap := doc.NewSnapshot([]byte("one\r\ntwo\r\n"))

	// The line span must exclude both CR and LF.
	assert.Equal(t, doc.Span{From: 0, To: 3}, snap.LineSpanAt(1))
	assert.Equal(t, doc.Span{From: 5, To: 8}, snap.LineSpanAt(6))
}

func TestSnapshotLineSpanAtEmpty(t *testing.T) {
	t.Parallel()

	snap := doc.NewSnapshot(nil)

	assert.Equal(t, doc.Span{}, snap.LineSpanAt(0))
	assert.Equal(t, 0, snap.Len())
}

func TestSnapshotByteAt(t *testing.T) {
	t.Parallel()

	snap := doc.NewSnapshot([]byte("ab"))

	b, ok := snap.ByteAt(1)
	require.True(t, ok)
	assert.Equal(t, byte('b'), b)

	_, ok = snap.ByteAt(2)
	assert.False(t, ok)

	_, ok = snap.ByteAt(-1)
	assert.False(t, ok)
}

func TestSnapshotSliceClamps(t *testing.T) {
	t.Parallel()

	snap := doc.NewSnapshot([]byte("hello"))

	assert.Equal(t, "ello", snap.Slice(doc.Span{From: 1, To: 99}))
	assert.Equal(t, "", snap.Slice(doc.Span{From: 4, To: 2}))
	assert.Equal(t, "hel", snap.Slice(doc.Span{From: -3, To: 3}))
}

func TestSnapshotLine(t *testing.T) {
	t.Parallel()

	snap := doc.NewSnapshot([]byte("a\nb"))

	require.Equal(t, 2, snap.LineCount())

	first, ok := snap.Line(0)
	require.True(t, ok)
	assert.Equal(t, doc.LineInfo{StartOffset: 0, NewlineStart: 1, EndOffset: 2}, first)

	_, ok = snap.Line(2)
	assert.False(t, ok)
}
