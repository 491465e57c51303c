package parser

import (
	"strconv"
	"strings"

	"github.com/teranos/gwkit/gw/date"
	"github.com/teranos/gwkit/gw/lexer"
	"github.com/teranos/gwkit/gw/types"
)

// parsePerson reads the optional person fields that follow a name, in their
// fixed order. A field whose tag is absent is skipped and never revisited.
// It reports whether any token was consumed.
func parsePerson(c *cursor, p *types.Person) (bool, error) {
	start := c.pos

	for {
		alias, ok, err := c.group('{', '}')
		if err != nil {
			return false, err
		}
		if !ok {
			break
		}
		p.FirstNameAliases = append(p.FirstNameAliases, lexer.Decode(alias))
	}
	if err := c.repeated("#salias", &p.SurnameAliases); err != nil {
		return false, err
	}
	if pub, ok, err := c.group('(', ')'); err != nil {
		return false, err
	} else if ok {
		p.PublicName = lexer.Decode(pub)
	}
	if err := c.field("#image", &p.Image); err != nil {
		return false, err
	}
	if err := c.field("#photo", &p.Image); err != nil {
		return false, err
	}
	if err := c.repeated("#nick", &p.Nicknames); err != nil {
		return false, err
	}
	if err := c.repeated("#alias", &p.Aliases); err != nil {
		return false, err
	}
	for {
		raw, ok, err := c.group('[', ']')
		if err != nil {
			return false, err
		}
		if !ok {
			break
		}
		t, err := parseTitle(raw)
		if err != nil {
			return false, err
		}
		p.Titles = append(p.Titles, t)
	}

	switch {
	case c.accept("#apubl"):
		p.Access = types.Public
	case c.accept("#apriv"):
		p.Access = types.Private
	default:
		p.Access = types.IfTitles
	}
	if err := c.field("#occu", &p.Occupation); err != nil {
		return false, err
	}
	if err := c.field("#src", &p.Source); err != nil {
		return false, err
	}

	// birth; a leading '!' marks the baptism date instead
	if tok := c.peek(); date.IsDateText(tok) {
		d, err := parseDate(c.next())
		if err != nil {
			return false, err
		}
		p.Birth.Date = d
	}
	if err := eventFields(c, &p.Birth, "#bp", "#bn", "#bs"); err != nil {
		return false, err
	}

	if tok := c.peek(); strings.HasPrefix(tok, "!") && date.IsDateText(tok[1:]) {
		d, err := parseDate(c.next()[1:])
		if err != nil {
			return false, err
		}
		p.Baptism.Date = d
	}
	if err := eventFields(c, &p.Baptism, "#pp", "#pn", "#ps"); err != nil {
		return false, err
	}

	if err := parseDeath(c, &p.Death); err != nil {
		return false, err
	}
	if err := eventFields(c, &p.Death.EventInfo, "#dp", "#dn", "#ds"); err != nil {
		return false, err
	}

	if err := parseBurial(c, &p.Burial); err != nil {
		return false, err
	}
	if err := eventFields(c, &p.Burial.EventInfo, "#rp", "#rn", "#rs"); err != nil {
		return false, err
	}

	return c.pos > start, nil
}

func eventFields(c *cursor, info *types.EventInfo, placeTag, noteTag, srcTag string) error {
	if err := c.field(placeTag, &info.Place); err != nil {
		return err
	}
	if err := c.field(noteTag, &info.Note); err != nil {
		return err
	}
	return c.field(srcTag, &info.Source)
}

var deathReasons = map[byte]types.DeathReason{
	'k': types.Killed,
	'm': types.Murdered,
	'e': types.Executed,
	's': types.Disappeared,
}

func parseDeath(c *cursor, d *types.Death) error {
	tok := c.peek()
	switch {
	case tok == "mj":
		c.next()
		d.Kind = types.DeadYoung
	case tok == "od":
		c.next()
		d.Kind = types.OfCourseDead
	case tok == "?":
		c.next()
		d.Kind = types.DontKnowIfDead
	case date.IsDateText(tok):
		dt, err := parseDate(c.next())
		if err != nil {
			return err
		}
		setDead(d, types.Unspecified, dt)
	case tok != "":
		reason, ok := deathReasons[tok[0]]
		if !ok || (len(tok) > 1 && !date.IsDateText(tok[1:])) {
			d.Kind = types.DontKnowIfDead
			return nil
		}
		c.next()
		var dt date.Date
		if len(tok) > 1 {
			var err error
			if dt, err = parseDate(tok[1:]); err != nil {
				return err
			}
		}
		setDead(d, reason, dt)
	default:
		d.Kind = types.DontKnowIfDead
	}
	return nil
}

func setDead(d *types.Death, reason types.DeathReason, dt date.Date) {
	d.Reason = reason
	d.Date = dt
	if dt == nil && reason == types.Unspecified {
		d.Kind = types.DeadDontKnowWhen
		return
	}
	d.Kind = types.Dead
}

func parseBurial(c *cursor, b *types.Burial) error {
	switch {
	case c.accept("#buri"):
		b.Kind = types.Buried
	case c.accept("#crem"):
		b.Kind = types.Cremated
	default:
		return nil
	}
	if date.IsDateText(c.peek()) {
		d, err := parseDate(c.next())
		if err != nil {
			return err
		}
		b.Date = d
	}
	return nil
}

// parseTitle reads "name:ident:place:start:end:nth"; missing trailing
// parts keep their defaults. Escaped colons stay inside a part.
func parseTitle(raw string) (types.Title, error) {
	parts := lexer.SplitUnescaped(raw, ':')
	if len(parts) > 6 {
		return types.Title{}, newGrammarError("title has %d parts, at most 6 allowed", len(parts)).WithToken("[" + raw + "]")
	}
	for len(parts) < 6 {
		parts = append(parts, "")
	}
	t := types.Title{
		Name:  lexer.Decode(parts[0]),
		Ident: lexer.Decode(parts[1]),
		Place: lexer.Decode(parts[2]),
	}
	var err error
	if t.Start, err = parseDate(parts[3]); err != nil {
		return types.Title{}, err
	}
	if t.End, err = parseDate(parts[4]); err != nil {
		return types.Title{}, err
	}
	if parts[5] != "" {
		if t.Nth, err = strconv.Atoi(parts[5]); err != nil {
			return types.Title{}, newGrammarError("title ordinal %q is not a number", parts[5]).WithToken(parts[5])
		}
	}
	return t, nil
}

// parseSomebody reads a person reference: a key, optionally followed by a
// full definition.
func parseSomebody(c *cursor) (types.Somebody, error) {
	k, err := c.key()
	if err != nil {
		return nil, err
	}
	p := types.NewPerson(k)
	defined, err := parsePerson(c, &p)
	if err != nil {
		return nil, err
	}
	if defined {
		return types.Defined{Person: p}, nil
	}
	return types.Undefined{Key: k}, nil
}
