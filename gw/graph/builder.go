package graph

import (
	"go.uber.org/zap"

	"github.com/teranos/gwkit/gw/types"
	"github.com/teranos/gwkit/logger"
)

// Builder accumulates blocks in file order. A Builder is not safe for
// concurrent use; independent files use independent builders.
type Builder struct {
	persons  []Person
	index    map[types.Key]PersonID
	dummies  map[types.Key]bool
	families []Family

	notes     map[types.Key]string
	relations map[types.Key][]Relation
	events    map[types.Key][]Event

	baseNotes   string
	wizardNotes map[string]string
	pageExts    map[string]string

	log *zap.SugaredLogger
}

// NewBuilder returns an empty builder. A nil log uses the "gw.graph" component logger.
func NewBuilder(log *zap.SugaredLogger) *Builder {
	if log == nil {
		log = logger.ComponentLogger("gw.graph")
	}
	return &Builder{
		index:       make(map[types.Key]PersonID),
		dummies:     make(map[types.Key]bool),
		notes:       make(map[types.Key]string),
		relations:   make(map[types.Key][]Relation),
		events:      make(map[types.Key][]Event),
		wizardNotes: make(map[string]string),
		pageExts:    make(map[string]string),
		log:         log,
	}
}

// Build resolves blocks in order into a graph.
func Build(blocks []types.Block) *Graph {
	b := NewBuilder(nil)
	for _, blk := range blocks {
		b.Add(blk)
	}
	return b.Finish()
}

// Resolve returns the identity of s, creating it when the key is new.
// A definition replaces a placeholder in place, keeping its identity.
func (b *Builder) Resolve(s types.Somebody) PersonID {
	switch v := s.(type) {
	case types.Defined:
		return b.define(v.Person)
	case types.Undefined:
		return b.reference(v.Key)
	default:
		return NoPerson
	}
}

func (b *Builder) define(p types.Person) PersonID {
	id, ok := b.index[p.Key]
	if !ok {
		id = b.alloc(p)
		return id
	}
	if b.dummies[p.Key] {
		delete(b.dummies, p.Key)
	} else {
		b.log.Warnw("Person defined twice, keeping the latest definition",
			logger.FieldKey, p.Key.String(),
			logger.FieldPersonID, int(id))
	}
	cur := &b.persons[id]
	if p.Sex == types.Neuter {
		p.Sex = cur.Sex
	}
	cur.Person = p
	cur.Dummy = false
	return id
}

func (b *Builder) reference(k types.Key) PersonID {
	if id, ok := b.index[k]; ok {
		return id
	}
	id := b.alloc(types.NewPerson(k))
	b.persons[id].Dummy = true
	b.dummies[k] = true
	return id
}

func (b *Builder) alloc(p types.Person) PersonID {
	id := PersonID(len(b.persons))
	b.persons = append(b.persons, Person{ID: id, Person: p, Parents: NoFamily})
	b.index[p.Key] = id
	return id
}

// inferSex fills in a sex the person does not have yet.
func (b *Builder) inferSex(id PersonID, sex types.Sex) {
	if id == NoPerson || sex == types.Neuter {
		return
	}
	if p := &b.persons[id]; p.Sex == types.Neuter {
		p.Sex = sex
	}
}

func (b *Builder) resolveWitnesses(ws []types.Witness) []Witness {
	if len(ws) == 0 {
		return nil
	}
	out := make([]Witness, 0, len(ws))
	for _, w := range ws {
		id := b.Resolve(w.Person)
		b.inferSex(id, w.Sex)
		out = append(out, Witness{Person: id, Kind: w.Kind})
	}
	return out
}

func (b *Builder) resolveEvents(evs []types.Event) []Event {
	if len(evs) == 0 {
		return nil
	}
	out := make([]Event, 0, len(evs))
	for _, e := range evs {
		out = append(out, Event{
			Name:      e.Name,
			Custom:    e.Custom,
			Date:      e.Date,
			Place:     e.Place,
			Reason:    e.Reason,
			Source:    e.Source,
			Note:      e.Note,
			Witnesses: b.resolveWitnesses(e.Witnesses),
		})
	}
	return out
}

func (b *Builder) resolveOptional(s types.Somebody) PersonID {
	if s == nil {
		return NoPerson
	}
	return b.Resolve(s)
}

// ConvertFamily resolves the parents, children and witnesses of a family
// and stores it under a fresh identity.
func (b *Builder) ConvertFamily(fb *types.FamilyBlock) FamilyID {
	f := &fb.Family
	fid := FamilyID(len(b.families))

	father := b.resolveOptional(f.Father)
	mother := b.resolveOptional(f.Mother)
	fatherSex, motherSex := types.Male, types.Female
	if f.Relation.Overridden {
		fatherSex, motherSex = f.Relation.FatherSex, f.Relation.MotherSex
	}
	b.inferSex(father, fatherSex)
	b.inferSex(mother, motherSex)

	fam := Family{
		ID:        fid,
		Father:    father,
		Mother:    mother,
		Relation:  f.Relation,
		Divorce:   f.Divorce,
		Marriage:  f.Marriage,
		Witnesses: b.resolveWitnesses(f.Witnesses),
		Events:    b.resolveEvents(f.Events),
		Comment:   f.Comment,
		Source:    f.Source,
	}
	for _, child := range f.Children {
		cid := b.define(child)
		b.persons[cid].Parents = fid
		fam.Children = append(fam.Children, cid)
	}
	for _, pid := range []PersonID{father, mother} {
		if pid != NoPerson {
			b.persons[pid].Unions = append(b.persons[pid].Unions, fid)
		}
	}

	b.families = append(b.families, fam)
	return fid
}

// Add consumes one parsed block.
func (b *Builder) Add(blk types.Block) {
	switch v := blk.(type) {
	case *types.FamilyBlock:
		b.ConvertFamily(v)
	case *types.NotesBlock:
		if prev, ok := b.notes[v.Key]; ok && prev != "" {
			b.notes[v.Key] = prev + "\n" + v.Notes
		} else {
			b.notes[v.Key] = v.Notes
		}
	case *types.RelationsBlock:
		id := b.Resolve(v.Person)
		b.inferSex(id, v.Sex)
		k := b.persons[id].Key
		for _, r := range v.Relations {
			b.relations[k] = append(b.relations[k], Relation{
				Type:    r.Type,
				Father:  b.resolveOptional(r.Father),
				Mother:  b.resolveOptional(r.Mother),
				Sources: r.Sources,
			})
		}
	case *types.PersonalEventsBlock:
		id := b.Resolve(v.Person)
		k := b.persons[id].Key
		b.events[k] = append(b.events[k], b.resolveEvents(v.Events)...)
	case *types.BaseNotesBlock:
		b.baseNotes = v.Notes
	case *types.WizardNotesBlock:
		b.wizardNotes[v.Wizard] = v.Notes
	case *types.PageExtBlock:
		b.pageExts[v.Page] = v.Content
	default:
		b.log.Warnw("Ignoring unknown block", logger.FieldBlock, blk.Tag())
	}
}

// Finish overlays the out-of-band notes, relations and personal events onto
// their persons and returns the graph. It never creates persons; notes for
// an unknown key are dropped with a warning.
func (b *Builder) Finish() *Graph {
	g := &Graph{
		Persons:     make([]Person, len(b.persons)),
		Families:    make([]Family, len(b.families)),
		BaseNotes:   b.baseNotes,
		WizardNotes: b.wizardNotes,
		PageExts:    b.pageExts,
		index:       make(map[types.Key]PersonID, len(b.index)),
	}
	copy(g.Persons, b.persons)
	copy(g.Families, b.families)
	for k, id := range b.index {
		g.index[k] = id
	}
	for i := range g.Persons {
		b.enrich(&g.Persons[i])
	}

	for k := range b.notes {
		if _, ok := b.index[k]; !ok {
			b.log.Warnw("Dropping notes for unknown person", logger.FieldKey, k.String())
		}
	}
	b.log.Debugw("Resolved graph",
		logger.FieldPersons, len(g.Persons),
		logger.FieldFamilies, len(g.Families),
		logger.FieldDummies, len(b.dummies))
	return g
}

func (b *Builder) enrich(p *Person) {
	if n, ok := b.notes[p.Key]; ok {
		p.Notes = n
	}
	if rs, ok := b.relations[p.Key]; ok {
		p.Relations = rs
	}
	if evs, ok := b.events[p.Key]; ok {
		p.Events = evs
	}
}

// DummyCount is the number of keys referenced but not yet defined.
func (b *Builder) DummyCount() int {
	return len(b.dummies)
}

// IsDummy reports whether k is currently only referenced.
func (b *Builder) IsDummy(k types.Key) bool {
	return b.dummies[k]
}
