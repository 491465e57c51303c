package types

import "github.com/teranos/gwkit/gw/date"

// MaritalKind is the kind of union between the two parents.
type MaritalKind int

const (
	Married MaritalKind = iota
	NotMarried
	Engaged
	NoMention
	NoSexesCheckNotMarried
	NoSexesCheckMarried
	MarriageBann
	MarriageContract
	MarriageLicense
	Pacs
	Residence
)

var maritalNames = [...]string{
	"married", "notmarried", "engaged", "nomention", "nsck", "nsckm",
	"banns", "contract", "license", "pacs", "residence",
}

func (k MaritalKind) String() string {
	if k < 0 || int(k) >= len(maritalNames) {
		return "unknown"
	}
	return maritalNames[k]
}

// MaritalStatus is the union kind plus optional sex overrides for the
// parents; Neuter means "no override".
type MaritalStatus struct {
	Kind       MaritalKind
	FatherSex  Sex
	MotherSex  Sex
	Overridden bool
}

// DivorceKind is the divorce status of a family.
type DivorceKind int

const (
	NotDivorced DivorceKind = iota
	Divorced
	Separated
)

func (k DivorceKind) String() string {
	switch k {
	case Divorced:
		return "divorced"
	case Separated:
		return "separated"
	default:
		return "notdivorced"
	}
}

// Divorce carries the divorce date when Kind is Divorced.
type Divorce struct {
	Kind DivorceKind
	Date date.Date
}

// WitnessKind is the role of a witness at an event.
type WitnessKind int

const (
	WitnessPlain WitnessKind = iota
	WitnessGodParent
	WitnessCivilOfficer
	WitnessReligiousOfficer
	WitnessInformant
	WitnessAttending
	WitnessMentioned
	WitnessOther
)

var witnessKindNames = [...]string{"witness", "godparent", "civilofficer", "religiousofficer", "informant", "attending", "mentioned", "other"}

func (k WitnessKind) String() string {
	if k < 0 || int(k) >= len(witnessKindNames) {
		return "unknown"
	}
	return witnessKindNames[k]
}

// Witness references a person who witnessed a family or an event.
type Witness struct {
	Person Somebody
	Sex    Sex
	Kind   WitnessKind
}

// Event is a family or personal event. Name is one of the known event
// names, or the tag text of a custom event (Custom is then true).
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

// Family is a couple with its union details and children.
type Family struct {
	Father    Somebody
	Mother    Somebody
	Relation  MaritalStatus
	Divorce   Divorce
	Marriage  EventInfo
	Witnesses []Witness
	Events    []Event
	Children  []Person
	Comment   string
	Source    string
}
