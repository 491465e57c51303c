package lexer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/gwkit/errors"
)

func TestFields(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{name: "plain", line: "fam DUPONT Jean", want: []string{"fam", "DUPONT", "Jean"}},
		{name: "tabs and runs", line: "  a\t\tb   c ", want: []string{"a", "b", "c"}},
		{name: "underscore is space", line: "#bp Saint_Malo", want: []string{"#bp", "Saint Malo"}},
		{name: "escaped underscore", line: `a\_b`, want: []string{"a_b"}},
		{name: "escaped backslash", line: `a\\b`, want: []string{`a\b`}},
		{name: "trailing backslash kept", line: `abc\`, want: []string{`abc\`}},
		{name: "empty", line: "", want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Fields(tt.line))
		})
	}
}

func TestSplitUnescaped(t *testing.T) {
	assert.Equal(t, []string{"a", `b\:c`, ""}, SplitUnescaped(`a:b\:c:`, ':'))
	assert.Equal(t, []string{"solo"}, SplitUnescaped("solo", ':'))
}

func TestLineStreamSkipsBlankLines(t *testing.T) {
	s := NewLineStream(bytes.NewBufferString("one\n\n   \ntwo  \r\n\tthree\n"))

	line, ok := s.Peek()
	require.True(t, ok)
	assert.Equal(t, "one", line)
	assert.Equal(t, 0, s.Line(), "peek does not advance")

	line, _ = s.Pop()
	assert.Equal(t, "one", line)
	assert.Equal(t, 1, s.Line())

	line, _ = s.Pop()
	assert.Equal(t, "two", line)
	assert.Equal(t, 4, s.Line())

	s.PushBack(line)
	line, _ = s.Pop()
	assert.Equal(t, "two", line)
	assert.Equal(t, 4, s.Line())

	line, _ = s.Pop()
	assert.Equal(t, "\tthree", line)

	_, ok = s.Pop()
	assert.False(t, ok)
	_, ok = s.Peek()
	assert.False(t, ok)
	assert.NoError(t, s.Err())
}

func TestLineStreamSwitchesEncoding(t *testing.T) {
	// "é" is 0xE9 in ISO-8859-1
	src := []byte("encoding: iso-8859-1\nfam B\xe9atrice\n")
	s := NewLineStream(bytes.NewReader(src))

	first, ok := s.Pop()
	require.True(t, ok)
	assert.Equal(t, "encoding: iso-8859-1", first)

	require.NoError(t, s.SetEncoding("iso-8859-1"))
	second, ok := s.Pop()
	require.True(t, ok)
	assert.Equal(t, "fam Béatrice", second)
}

func TestDecoderForUnknown(t *testing.T) {
	_, err := DecoderFor("ebcdic")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidRequest))
}

func TestFromLines(t *testing.T) {
	s := FromLines([]string{"a", "", "b"})
	a, _ := s.Pop()
	b, _ := s.Pop()
	assert.Equal(t, "a", a)
	assert.Equal(t, "b", b)
	assert.Equal(t, 3, s.Line())
}
