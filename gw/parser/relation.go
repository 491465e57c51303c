package parser

import (
	"strings"

	"github.com/teranos/gwkit/gw/lexer"
	"github.com/teranos/gwkit/gw/types"
)

var relationCodes = map[string]types.RelationType{
	"adop": types.Adoption,
	"reco": types.Recognition,
	"cand": types.CandidateParent,
	"godp": types.GodParent,
	"fost": types.FosterParent,
}

// parseRelations reads "rel Surname Firstname [#h|#f]" followed by a
// "beg … end" list of relation lines.
func (p *parser) parseRelations(toks []string) (types.Block, error) {
	blk := &types.RelationsBlock{Pos: types.Pos{Line: p.stream.Line()}}
	c := newCursor(toks[1:])
	who, err := parseSomebody(c)
	if err != nil {
		return nil, err
	}
	blk.Person = who
	switch {
	case c.accept("#h"):
		blk.Sex = types.Male
	case c.accept("#f"):
		blk.Sex = types.Female
	}
	if err := c.expectDone(); err != nil {
		return nil, err
	}

	line, ok := p.stream.Pop()
	if !ok || line != "beg" {
		if ok && isBlockHeader(line) {
			p.stream.PushBack(line)
		}
		return nil, newGrammarError("expected \"beg\" after rel header").WithToken(line)
	}
	for {
		line, ok := p.stream.Pop()
		if !ok {
			return nil, newGrammarError("missing \"end\" after relations")
		}
		if line == "end" {
			return blk, nil
		}
		r, err := parseRelationLine(newCursor(lexer.RawFields(line)))
		if err != nil {
			return nil, err
		}
		blk.Relations = append(blk.Relations, r)
	}
}

// parseRelationLine reads "- code: Father + Mother" or
// "- code fath:|moth: Parent [#s source]". Only the single-parent form
// carries a source.
func parseRelationLine(c *cursor) (types.Relation, error) {
	if !c.accept("-") {
		return types.Relation{}, newGrammarError("relation line must start with '-'").WithToken(c.peek())
	}
	code := c.next()
	dual := strings.HasSuffix(code, ":")
	typ, ok := relationCodes[strings.TrimSuffix(code, ":")]
	if !ok {
		return types.Relation{}, newGrammarError("unknown relation type").
			WithToken(code).
			WithSuggestion("use one of adop, reco, cand, godp, fost")
	}
	r := types.Relation{Type: typ}

	var err error
	if dual {
		if r.Father, err = parseSomebody(c); err != nil {
			return types.Relation{}, err
		}
		if !c.accept("+") {
			return types.Relation{}, newGrammarError("expected '+' between father and mother").WithToken(c.peek())
		}
		if r.Mother, err = parseSomebody(c); err != nil {
			return types.Relation{}, err
		}
	} else {
		switch role := c.next(); role {
		case "fath:":
			r.Father, err = parseSomebody(c)
		case "moth:":
			r.Mother, err = parseSomebody(c)
		default:
			return types.Relation{}, newGrammarError("expected fath: or moth:").WithToken(role)
		}
		if err != nil {
			return types.Relation{}, err
		}
		if err := c.field("#s", &r.Sources); err != nil {
			return types.Relation{}, err
		}
	}
	return r, c.expectDone()
}
