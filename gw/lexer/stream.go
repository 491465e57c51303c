package lexer

import (
	"bufio"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/teranos/gwkit/errors"
)

// maxLineSize bounds a single source line; notes blocks can carry long lines.
const maxLineSize = 1 << 20

// LineStream is a peekable, push-back-capable sequence of non-blank lines.
// Lines are pulled lazily from the underlying reader so the text decoding can
// be switched after the first line (the encoding directive).
type LineStream struct {
	scanner *bufio.Scanner
	decoder *encoding.Decoder
	pending []pendingLine // pushed-back or peeked lines, last is next
	line    int           // source line of the most recently popped line
	read    int           // source lines consumed from the scanner
	err     error
}

type pendingLine struct {
	text string
	num  int
}

// NewLineStream creates a UTF-8 stream over r.
func NewLineStream(r io.Reader) *LineStream {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &LineStream{scanner: sc}
}

// FromLines creates a stream over already split lines.
func FromLines(lines []string) *LineStream {
	return NewLineStream(strings.NewReader(strings.Join(lines, "\n")))
}

// SetEncoding selects the text decoding for lines not yet pulled.
func (s *LineStream) SetEncoding(name string) error {
	dec, err := DecoderFor(name)
	if err != nil {
		return err
	}
	s.decoder = dec
	return nil
}

// DecoderFor returns the decoder for an encoding directive value.
// A nil decoder means the bytes are taken as UTF-8 unchanged.
func DecoderFor(name string) (*encoding.Decoder, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "utf-8", "utf8":
		return unicode.UTF8.NewDecoder(), nil
	case "iso-8859-1", "iso8859-1", "latin-1", "latin1":
		return charmap.ISO8859_1.NewDecoder(), nil
	default:
		return nil, errors.NewInvalidRequestError("unsupported encoding %q", name)
	}
}

// Peek returns the next line without consuming it.
func (s *LineStream) Peek() (string, bool) {
	if len(s.pending) == 0 {
		text, num, ok := s.pull()
		if !ok {
			return "", false
		}
		s.pending = append(s.pending, pendingLine{text, num})
	}
	return s.pending[len(s.pending)-1].text, true
}

// Pop consumes and returns the next line.
func (s *LineStream) Pop() (string, bool) {
	if n := len(s.pending); n > 0 {
		p := s.pending[n-1]
		s.pending = s.pending[:n-1]
		s.line = p.num
		return p.text, true
	}
	text, num, ok := s.pull()
	if !ok {
		return "", false
	}
	s.line = num
	return text, true
}

// PushBack returns a line to the front of the stream.
// The line keeps the number of the most recently popped line.
func (s *LineStream) PushBack(line string) {
	s.pending = append(s.pending, pendingLine{line, s.line})
}

// Line returns the 1-based source line of the most recently popped line.
func (s *LineStream) Line() int {
	return s.line
}

// Err returns the first read or decode error, if any.
func (s *LineStream) Err() error {
	return s.err
}

func (s *LineStream) pull() (string, int, bool) {
	if s.err != nil {
		return "", 0, false
	}
	for s.scanner.Scan() {
		s.read++
		raw := s.scanner.Bytes()
		text := string(raw)
		if s.decoder != nil {
			decoded, err := s.decoder.Bytes(raw)
			if err != nil {
				s.err = errors.Wrapf(err, "decode line %d", s.read)
				return "", 0, false
			}
			text = string(decoded)
		}
		text = strings.TrimRight(text, " \t\r\n")
		if strings.TrimSpace(text) == "" {
			continue
		}
		return text, s.read, true
	}
	if err := s.scanner.Err(); err != nil {
		s.err = errors.Wrap(err, "read line")
	}
	return "", 0, false
}
