package types

// RelationType is the kind of non-native parentage.
type RelationType int

const (
	Adoption RelationType = iota
	Recognition
	CandidateParent
	GodParent
	FosterParent
)

var relationNames = [...]string{"adoption", "recognition", "candidateparent", "godparent", "fosterparent"}

func (t RelationType) String() string {
	if t < 0 || int(t) >= len(relationNames) {
		return "unknown"
	}
	return relationNames[t]
}

// Relation is a non-native parentage link; at least one parent is set.
type Relation struct {
	Type    RelationType
	Father  Somebody
	Mother  Somebody
	Sources string
}

// Block is one parsed GW record. Implementations are the *Block types below.
type Block interface {
	// Tag is the record keyword the block was introduced by.
	Tag() string
	// StartLine is the source line of the block header.
	StartLine() int
}

// Pos records where a block started.
type Pos struct {
	Line int
}

func (p Pos) StartLine() int { return p.Line }

// FamilyBlock is a "fam" record.
type FamilyBlock struct {
	Pos
	Family Family
}

// NotesBlock is a "notes" record attached to a person.
type NotesBlock struct {
	Pos
	Key   Key
	Notes string
}

// RelationsBlock is a "rel" record listing non-native parents of a person.
type RelationsBlock struct {
	Pos
	Person    Somebody
	Sex       Sex
	Relations []Relation
}

// PersonalEventsBlock is a "pevt" record listing events of a person.
type PersonalEventsBlock struct {
	Pos
	Person Somebody
	Events []Event
}

// BaseNotesBlock is a "notes-db" record holding database-wide notes.
type BaseNotesBlock struct {
	Pos
	Notes string
}

// WizardNotesBlock is a "wizard-note" record.
type WizardNotesBlock struct {
	Pos
	Wizard string
	Notes  string
}

// PageExtBlock is a "page-ext" record holding an extended page.
type PageExtBlock struct {
	Pos
	Page    string
	Content string
}

func (*FamilyBlock) Tag() string         { return "fam" }
func (*NotesBlock) Tag() string          { return "notes" }
func (*RelationsBlock) Tag() string      { return "rel" }
func (*PersonalEventsBlock) Tag() string { return "pevt" }
func (*BaseNotesBlock) Tag() string      { return "notes-db" }
func (*WizardNotesBlock) Tag() string    { return "wizard-note" }
func (*PageExtBlock) Tag() string        { return "page-ext" }
