// Package graph resolves parsed GW blocks into a closed set of persons and
// families with stable numeric identities.
//
// Persons live in a dense arena indexed by PersonID; every link between
// persons and families is an identity, never a pointer.
package graph

import (
	"github.com/teranos/gwkit/gw/date"
	"github.com/teranos/gwkit/gw/types"
)

// PersonID is the index of a person in Graph.Persons.
type PersonID int

// FamilyID is the index of a family in Graph.Families.
type FamilyID int

const (
	NoPerson PersonID = -1
	NoFamily FamilyID = -1
)

// Witness is a resolved witness reference.
type Witness struct {
	Person PersonID
	Kind   types.WitnessKind
}

// Event is a family or personal event with resolved witnesses.
type Event struct {
	Name      string
	Custom    bool
	Date      date.Date
	Place     string
	Reason    string
	Source    string
	Note      string
	Witnesses []Witness
}

// Relation is a resolved non-native parentage; a missing parent is NoPerson.
type Relation struct {
	Type    types.RelationType
	Father  PersonID
	Mother  PersonID
	Sources string
}

// Person is a resolved person. Dummy persons were referenced but never
// defined; only their key is meaningful.
type Person struct {
	ID    PersonID
	Dummy bool
	types.Person

	Parents   FamilyID   // family this person is a child of
	Unions    []FamilyID // families this person is a parent in
	Notes     string
	Events    []Event
	Relations []Relation
}

// Family is a resolved family.
type Family struct {
	ID        FamilyID
	Father    PersonID
	Mother    PersonID
	Relation  types.MaritalStatus
	Divorce   types.Divorce
	Marriage  types.EventInfo
	Witnesses []Witness
	Events    []Event
	Children  []PersonID
	Comment   string
	Source    string
}

// Graph is the resolved dataset of one source file.
type Graph struct {
	Persons     []Person
	Families    []Family
	BaseNotes   string
	WizardNotes map[string]string // by wizard identifier
	PageExts    map[string]string // by page name

	index map[types.Key]PersonID
}

// Person returns the person with the given identity.
func (g *Graph) Person(id PersonID) (*Person, bool) {
	if id < 0 || int(id) >= len(g.Persons) {
		return nil, false
	}
	return &g.Persons[id], true
}

// Family returns the family with the given identity.
func (g *Graph) Family(id FamilyID) (*Family, bool) {
	if id < 0 || int(id) >= len(g.Families) {
		return nil, false
	}
	return &g.Families[id], true
}

// Lookup finds a person by key.
func (g *Graph) Lookup(k types.Key) (*Person, bool) {
	id, ok := g.index[k]
	if !ok {
		return nil, false
	}
	return &g.Persons[id], true
}

// Dummies returns the persons that were referenced but never defined.
func (g *Graph) Dummies() []Person {
	var out []Person
	for _, p := range g.Persons {
		if p.Dummy {
			out = append(out, p)
		}
	}
	return out
}
