package parser

import (
	"strings"

	"github.com/teranos/gwkit/gw/date"
	"github.com/teranos/gwkit/gw/lexer"
	"github.com/teranos/gwkit/gw/types"
)

var maritalTags = map[string]types.MaritalKind{
	"#nm":        types.NotMarried,
	"#eng":       types.Engaged,
	"#noment":    types.NoMention,
	"#nsck":      types.NoSexesCheckNotMarried,
	"#nsckm":     types.NoSexesCheckMarried,
	"#banns":     types.MarriageBann,
	"#contract":  types.MarriageContract,
	"#license":   types.MarriageLicense,
	"#pacs":      types.Pacs,
	"#residence": types.Residence,
}

// sexOverrideTags may be followed by a two-letter parent sex override such as "mm".
var sexOverrideTags = map[types.MaritalKind]bool{
	types.NoSexesCheckNotMarried: true,
	types.NoSexesCheckMarried:    true,
	types.MarriageBann:           true,
	types.MarriageContract:       true,
	types.MarriageLicense:        true,
	types.Pacs:                   true,
	types.Residence:              true,
}

func sexOfLetter(b byte) (types.Sex, bool) {
	switch b {
	case 'm':
		return types.Male, true
	case 'f':
		return types.Female, true
	case '?':
		return types.Neuter, true
	}
	return types.Neuter, false
}

func parseMaritalStatus(c *cursor) types.MaritalStatus {
	kind, ok := maritalTags[c.peek()]
	if !ok {
		return types.MaritalStatus{Kind: types.Married}
	}
	c.next()
	st := types.MaritalStatus{Kind: kind}
	if !sexOverrideTags[kind] {
		return st
	}
	if tok := c.peek(); len(tok) == 2 {
		fs, ok1 := sexOfLetter(tok[0])
		ms, ok2 := sexOfLetter(tok[1])
		if ok1 && ok2 {
			c.next()
			st.FatherSex, st.MotherSex, st.Overridden = fs, ms, true
		}
	}
	return st
}

// parseFamilyHeader reads the "fam" line after its tag.
func parseFamilyHeader(c *cursor, f *types.Family) error {
	var err error
	if f.Father, err = parseSomebody(c); err != nil {
		return err
	}
	f.Relation = parseMaritalStatus(c)

	tok := c.peek()
	if !strings.HasPrefix(tok, "+") {
		return newGrammarError("expected '+' before the marriage details").WithToken(tok)
	}
	c.next()
	if len(tok) > 1 {
		if f.Marriage.Date, err = parseDate(tok[1:]); err != nil {
			return err
		}
	}
	if err := eventFields(c, &f.Marriage, "#mp", "#mn", "#ms"); err != nil {
		return err
	}

	switch tok := c.peek(); {
	case tok == "#sep":
		c.next()
		f.Divorce.Kind = types.Separated
	case strings.HasPrefix(tok, "-"):
		c.next()
		f.Divorce.Kind = types.Divorced
		if len(tok) > 1 {
			if f.Divorce.Date, err = parseDate(tok[1:]); err != nil {
				return err
			}
		}
	default:
		f.Divorce.Kind = types.NotDivorced
	}

	if f.Mother, err = parseSomebody(c); err != nil {
		return err
	}
	return c.expectDone()
}

// parseFamily reads a "fam" record: header line, then the optional witness,
// source, common-child defaults, comment, family events and children lines.
func (p *parser) parseFamily(toks []string) (types.Block, error) {
	blk := &types.FamilyBlock{Pos: types.Pos{Line: p.stream.Line()}}
	f := &blk.Family
	if err := parseFamilyHeader(newCursor(toks[1:]), f); err != nil {
		return nil, err
	}

	var childSource, childBirthPlace string
	stage := stageWitness
	for {
		line, ok := p.stream.Pop()
		if !ok {
			break
		}
		rt := lexer.RawFields(line)
		next, known := followUpStages[rt[0]]
		if !known {
			p.stream.PushBack(line)
			return blk, nil
		}
		if next < stage || (next == stage && next != stageWitness) {
			return nil, newGrammarError("%q line out of order in family", rt[0]).
				WithToken(rt[0]).
				WithSuggestion("order follow-up lines as wit, src, csrc, cbp, comm, fevt, beg")
		}
		stage = next

		switch rt[0] {
		case "wit", "wit:":
			w, err := p.parseWitness(rt[1:], p.gwplus)
			if err != nil {
				return nil, err
			}
			f.Witnesses = append(f.Witnesses, w)
		case "src":
			f.Source = lexer.Decode(restOf(line, "src"))
		case "csrc":
			childSource = lexer.Decode(restOf(line, "csrc"))
		case "cbp":
			childBirthPlace = lexer.Decode(restOf(line, "cbp"))
		case "comm":
			f.Comment = restOf(line, "comm")
		case "fevt":
			evs, err := p.parseEvents("end fevt", familyEvents)
			if err != nil {
				return nil, err
			}
			f.Events = evs
		case "beg":
			children, err := p.parseChildren(f.Father.PersonKey().Surname, childSource, childBirthPlace)
			if err != nil {
				return nil, err
			}
			f.Children = children
			return blk, nil
		}
	}
	return blk, nil
}

// Follow-up lines of a family come in this order; only wit repeats.
const (
	stageWitness = iota
	stageSource
	stageChildSource
	stageChildBirthPlace
	stageComment
	stageEvents
	stageChildren
)

var followUpStages = map[string]int{
	"wit":  stageWitness,
	"wit:": stageWitness,
	"src":  stageSource,
	"csrc": stageChildSource,
	"cbp":  stageChildBirthPlace,
	"comm": stageComment,
	"fevt": stageEvents,
	"beg":  stageChildren,
}

// parseChildren reads "- [h|m|f] Firstname[.occ] [?Surname] fields" lines up to "end".
func (p *parser) parseChildren(surname, source, birthPlace string) ([]types.Person, error) {
	var children []types.Person
	for {
		line, ok := p.stream.Pop()
		if !ok {
			return nil, newGrammarError("missing \"end\" after children list")
		}
		if line == "end" {
			return children, nil
		}
		rt := lexer.RawFields(line)
		if rt[0] != "-" {
			return nil, newGrammarError("child line must start with '-'").WithToken(rt[0])
		}
		child, err := parseChild(newCursor(rt[1:]), surname)
		if err != nil {
			return nil, err
		}
		if child.Birth.Place == "" {
			child.Birth.Place = birthPlace
		}
		if child.Birth.Source == "" {
			child.Birth.Source = source
		}
		children = append(children, child)
	}
}

func parseChild(c *cursor, surname string) (types.Person, error) {
	sex := types.Neuter
	if len(c.toks) > 1 {
		switch c.peek() {
		case "h", "m":
			sex = types.Male
			c.next()
		case "f":
			sex = types.Female
			c.next()
		}
	}
	if c.done() {
		return types.Person{}, newGrammarError("child line needs a first name")
	}
	first, occ := splitOcc(c.next())
	if tok := c.peek(); len(tok) > 1 && tok[0] == '?' && !date.IsDateText(tok) {
		surname = lexer.Decode(tok[1:])
		c.next()
	}
	child := types.NewPerson(types.Key{FirstName: first, Surname: surname, Occ: occ})
	if _, err := parsePerson(c, &child); err != nil {
		return types.Person{}, err
	}
	child.Sex = sex
	return child, c.expectDone()
}

// restOf returns the text of line after its leading tag.
func restOf(line, tag string) string {
	s := strings.TrimLeft(line, " \t")
	return strings.TrimSpace(strings.TrimPrefix(s, tag))
}
