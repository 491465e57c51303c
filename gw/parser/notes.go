package parser

import (
	"strings"

	"github.com/teranos/gwkit/gw/lexer"
	"github.com/teranos/gwkit/gw/types"
)

// parseNotes reads "notes Surname Firstname[.occ]" and its text. The text
// ends at "end notes" or at the next block header, which is left unread.
func (p *parser) parseNotes(toks []string) (types.Block, error) {
	blk := &types.NotesBlock{Pos: types.Pos{Line: p.stream.Line()}}
	c := newCursor(toks[1:])
	k, err := c.key()
	if err != nil {
		return nil, err
	}
	if err := c.expectDone(); err != nil {
		return nil, err
	}
	blk.Key = k

	if line, ok := p.stream.Peek(); ok && line == "beg" {
		p.stream.Pop()
	}
	var lines []string
	for {
		line, ok := p.stream.Pop()
		if !ok || line == "end notes" {
			break
		}
		if isBlockHeader(line) {
			p.stream.PushBack(line)
			break
		}
		lines = append(lines, line)
	}
	blk.Notes = strings.Join(lines, "\n")
	return blk, nil
}

func (p *parser) parseBaseNotes(toks []string) (types.Block, error) {
	blk := &types.BaseNotesBlock{Pos: types.Pos{Line: p.stream.Line()}}
	if len(toks) > 1 {
		return nil, newGrammarError("notes-db takes no argument").WithToken(toks[1])
	}
	text, err := p.verbatim("end notes-db")
	if err != nil {
		return nil, err
	}
	blk.Notes = text
	return blk, nil
}

func (p *parser) parseWizardNotes(toks []string) (types.Block, error) {
	blk := &types.WizardNotesBlock{Pos: types.Pos{Line: p.stream.Line()}}
	if len(toks) != 2 {
		return nil, newGrammarError("wizard-note needs exactly one wizard identifier")
	}
	blk.Wizard = lexer.Decode(toks[1])
	text, err := p.verbatim("end wizard-note")
	if err != nil {
		return nil, err
	}
	blk.Notes = text
	return blk, nil
}

func (p *parser) parsePageExt(toks []string) (types.Block, error) {
	blk := &types.PageExtBlock{Pos: types.Pos{Line: p.stream.Line()}}
	if len(toks) != 2 {
		return nil, newGrammarError("page-ext needs exactly one page name")
	}
	blk.Page = lexer.Decode(toks[1])
	text, err := p.verbatim("end page-ext")
	if err != nil {
		return nil, err
	}
	blk.Content = text
	return blk, nil
}

// verbatim collects lines unchanged up to the terminator line.
func (p *parser) verbatim(terminator string) (string, error) {
	var lines []string
	for {
		line, ok := p.stream.Pop()
		if !ok {
			return "", newGrammarError("missing %q", terminator)
		}
		if line == terminator {
			return strings.Join(lines, "\n"), nil
		}
		lines = append(lines, line)
	}
}
