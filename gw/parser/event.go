package parser

import (
	"strings"

	"github.com/teranos/gwkit/gw/date"
	"github.com/teranos/gwkit/gw/lexer"
	"github.com/teranos/gwkit/gw/types"
)

var familyEvents = map[string]string{
	"#marr": "marriage",
	"#nmar": "nomarriage",
	"#nmen": "nomention",
	"#enga": "engage",
	"#div":  "divorce",
	"#sep":  "separated",
	"#anul": "annulation",
	"#marb": "marriagebann",
	"#marc": "marriagecontract",
	"#marl": "marriagelicense",
	"#pacs": "pacs",
	"#resi": "residence",
}

var personalEvents = map[string]string{
	"#birt": "birth",
	"#bapt": "baptism",
	"#deat": "death",
	"#buri": "burial",
	"#crem": "cremation",
	"#acco": "accomplishment",
	"#acqu": "acquisition",
	"#adhe": "adhesion",
	"#awar": "decoration",
	"#bapl": "baptismlds",
	"#barm": "barmitzvah",
	"#basm": "batmitzvah",
	"#bles": "benediction",
	"#cens": "census",
	"#chgn": "changename",
	"#circ": "circumcision",
	"#conf": "confirmation",
	"#conl": "confirmationlds",
	"#degr": "degree",
	"#demm": "demobilisationmilitaire",
	"#dist": "distinction",
	"#dotl": "dotationlds",
	"#educ": "education",
	"#elec": "election",
	"#emig": "emigration",
	"#endl": "dotation",
	"#exco": "excommunication",
	"#fcom": "firstcommunion",
	"#flkl": "familylinklds",
	"#fune": "funeral",
	"#grad": "graduate",
	"#hosp": "hospitalisation",
	"#illn": "illness",
	"#immi": "immigration",
	"#lpas": "listepassenger",
	"#mdis": "militarydistinction",
	"#mobm": "mobilisationmilitaire",
	"#mpro": "militarypromotion",
	"#mser": "militaryservice",
	"#natu": "naturalisation",
	"#occu": "occupation",
	"#ordn": "ordination",
	"#prop": "property",
	"#resi": "residence",
	"#reti": "retired",
	"#slgc": "scellentchildlds",
	"#slgp": "scellentparentlds",
	"#slgs": "scellentspouselds",
	"#vteb": "ventebien",
	"#will": "will",
}

var witnessKinds = map[string]types.WitnessKind{
	"#godp": types.WitnessGodParent,
	"#offi": types.WitnessCivilOfficer,
	"#reli": types.WitnessReligiousOfficer,
	"#info": types.WitnessInformant,
	"#atte": types.WitnessAttending,
	"#ment": types.WitnessMentioned,
	"#othe": types.WitnessOther,
}

// parseEvents reads event lines, each optionally followed by witness and
// note lines, until the terminator line.
func (p *parser) parseEvents(terminator string, known map[string]string) ([]types.Event, error) {
	var events []types.Event
	var cur *types.Event
	for {
		line, ok := p.stream.Pop()
		if !ok {
			return nil, newGrammarError("missing %q", terminator)
		}
		if line == terminator {
			return events, nil
		}
		rt := lexer.RawFields(line)
		switch rt[0] {
		case "wit", "wit:":
			if cur == nil {
				return nil, newGrammarError("witness line before any event").WithToken(rt[0])
			}
			w, err := p.parseWitness(rt[1:], true)
			if err != nil {
				return nil, err
			}
			cur.Witnesses = append(cur.Witnesses, w)
		case "note":
			if cur == nil {
				return nil, newGrammarError("note line before any event").WithToken(rt[0])
			}
			text := restOf(line, "note")
			if cur.Note == "" {
				cur.Note = text
			} else {
				cur.Note += "\n" + text
			}
		default:
			ev, err := parseEventLine(newCursor(rt), known)
			if err != nil {
				return nil, err
			}
			events = append(events, ev)
			cur = &events[len(events)-1]
		}
	}
}

// parseEventLine reads "#tag [date] [#p place] [#c reason] [#s source]".
func parseEventLine(c *cursor, known map[string]string) (types.Event, error) {
	tag := c.next()
	if !strings.HasPrefix(tag, "#") || len(tag) < 2 {
		return types.Event{}, newGrammarError("event line must start with a #tag").WithToken(tag)
	}
	var ev types.Event
	if name, ok := known[tag]; ok {
		ev.Name = name
	} else {
		ev.Name = lexer.Decode(tag[1:])
		ev.Custom = true
	}
	if date.IsDateText(c.peek()) {
		d, err := parseDate(c.next())
		if err != nil {
			return types.Event{}, err
		}
		ev.Date = d
	}
	for _, f := range []struct {
		tag string
		dst *string
	}{{"#p", &ev.Place}, {"#c", &ev.Reason}, {"#s", &ev.Source}} {
		if err := c.field(f.tag, f.dst); err != nil {
			return types.Event{}, err
		}
	}
	return ev, c.expectDone()
}

// parseWitness reads "[m:|f:] [#kind] Surname Firstname [fields]".
// A kind tag is only accepted when withKind is set.
func (p *parser) parseWitness(toks []string, withKind bool) (types.Witness, error) {
	c := newCursor(toks)
	w := types.Witness{Kind: types.WitnessPlain}
	switch {
	case c.accept("m:"):
		w.Sex = types.Male
	case c.accept("f:"):
		w.Sex = types.Female
	}
	if kind, ok := witnessKinds[c.peek()]; ok {
		if !withKind {
			return types.Witness{}, newGrammarError("witness kind not allowed on family witnesses").
				WithToken(c.peek()).
				WithSuggestion("declare the file as gwplus")
		}
		c.next()
		w.Kind = kind
	} else if tok := c.peek(); strings.HasPrefix(tok, "#") {
		return types.Witness{}, newGrammarError("unknown witness kind").WithToken(tok)
	}
	who, err := parseSomebody(c)
	if err != nil {
		return types.Witness{}, err
	}
	w.Person = who
	return w, c.expectDone()
}
