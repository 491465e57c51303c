// Package parser turns GW source text into an ordered list of blocks.
//
// Each record kind has its own recursive-descent routine over the raw
// tokens of a line. Person fields are recognized in a fixed order: once a
// field's tag is skipped it is never revisited.
package parser

import (
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/teranos/gwkit/errors"
	"github.com/teranos/gwkit/gw/lexer"
	"github.com/teranos/gwkit/gw/types"
	"github.com/teranos/gwkit/logger"
)

// Options control a single parse. They are never shared between parses.
type Options struct {
	// NoFail logs and skips a malformed block instead of aborting.
	NoFail bool
	// GwPlus enables the extended syntax before any "gwplus" line is seen.
	GwPlus bool
	// Encoding is the text encoding assumed until an "encoding:" line
	// overrides it. Empty means utf-8.
	Encoding string
	// Logger receives skipped-block warnings; defaults to the "gw.parser" component logger.
	Logger *zap.SugaredLogger
}

// Result is the outcome of a parse.
type Result struct {
	Blocks   []types.Block
	Errors   []*ParseError // blocks skipped in no-fail mode
	GwPlus   bool
	Encoding string
}

// blockTags are the keywords that open a record at the start of a line.
var blockTags = map[string]bool{
	"fam":         true,
	"notes":       true,
	"notes-db":    true,
	"rel":         true,
	"pevt":        true,
	"wizard-note": true,
	"page-ext":    true,
}

func isBlockHeader(line string) bool {
	toks := lexer.RawFields(line)
	return len(toks) > 0 && blockTags[toks[0]]
}

type parser struct {
	stream *lexer.LineStream
	opts   Options
	gwplus bool
	log    *zap.SugaredLogger
}

// Parse reads GW text from r.
func Parse(r io.Reader, opts Options) (*Result, error) {
	return ParseStream(lexer.NewLineStream(r), opts)
}

// ParseLines parses already split lines.
func ParseLines(lines []string, opts Options) (*Result, error) {
	return ParseStream(lexer.FromLines(lines), opts)
}

// ParseStream parses every block of s in file order.
func ParseStream(s *lexer.LineStream, opts Options) (*Result, error) {
	log := opts.Logger
	if log == nil {
		log = logger.ComponentLogger("gw.parser")
	}
	p := &parser{stream: s, opts: opts, gwplus: opts.GwPlus, log: log}
	res := &Result{Encoding: "utf-8"}
	if opts.Encoding != "" {
		if err := s.SetEncoding(opts.Encoding); err != nil {
			return res, err
		}
		res.Encoding = strings.ToLower(opts.Encoding)
	}

	first := true
	for {
		line, ok := s.Pop()
		if !ok {
			break
		}
		if first {
			first = false
			if enc, found := strings.CutPrefix(line, "encoding:"); found {
				enc = strings.TrimSpace(enc)
				if err := s.SetEncoding(enc); err != nil {
					return res, errors.Wrapf(err, "line %d", s.Line())
				}
				res.Encoding = strings.ToLower(enc)
				continue
			}
		}
		if line == "gwplus" {
			p.gwplus = true
			continue
		}

		toks := lexer.RawFields(line)
		blk, err := p.parseBlock(toks)
		if err == nil {
			res.Blocks = append(res.Blocks, blk)
			continue
		}

		pe := asParseError(err).at(s.Line(), toks[0])
		if !opts.NoFail {
			res.GwPlus = p.gwplus
			return res, pe
		}
		p.log.Warnw("Skipping malformed block",
			logger.FieldLine, pe.Line,
			logger.FieldBlock, pe.Block,
			logger.FieldErrorKind, string(pe.Kind),
			logger.FieldError, pe.Error())
		res.Errors = append(res.Errors, pe)
		p.skipToNextBlock()
	}
	res.GwPlus = p.gwplus

	if err := s.Err(); err != nil {
		return res, errors.Wrap(err, "read gw source")
	}
	p.log.Debugw("Parsed source",
		logger.FieldBlocks, len(res.Blocks),
		logger.FieldCount, len(res.Errors),
		logger.FieldEncoding, res.Encoding)
	return res, nil
}

func (p *parser) parseBlock(toks []string) (types.Block, error) {
	switch toks[0] {
	case "fam":
		return p.parseFamily(toks)
	case "notes":
		return p.parseNotes(toks)
	case "notes-db":
		return p.parseBaseNotes(toks)
	case "rel":
		return p.parseRelations(toks)
	case "pevt":
		return p.parsePersonalEvents(toks)
	case "wizard-note":
		return p.parseWizardNotes(toks)
	case "page-ext":
		return p.parsePageExt(toks)
	}
	return nil, newGrammarError("unknown block tag").
		WithToken(toks[0]).
		WithSuggestion("blocks start with fam, notes, notes-db, rel, pevt, wizard-note or page-ext")
}

// parsePersonalEvents reads "pevt Surname Firstname" and its events up to "end pevt".
func (p *parser) parsePersonalEvents(toks []string) (types.Block, error) {
	blk := &types.PersonalEventsBlock{Pos: types.Pos{Line: p.stream.Line()}}
	c := newCursor(toks[1:])
	who, err := parseSomebody(c)
	if err != nil {
		return nil, err
	}
	if err := c.expectDone(); err != nil {
		return nil, err
	}
	blk.Person = who
	if blk.Events, err = p.parseEvents("end pevt", personalEvents); err != nil {
		return nil, err
	}
	return blk, nil
}

// skipToNextBlock discards lines until the next block header, which is left unread.
func (p *parser) skipToNextBlock() {
	for {
		line, ok := p.stream.Pop()
		if !ok {
			return
		}
		if isBlockHeader(line) {
			p.stream.PushBack(line)
			return
		}
	}
}
