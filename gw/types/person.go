// Package types defines the parse-time GW syntax tree: person references,
// person and family records, events, relations and the per-record blocks.
package types

import (
	"strconv"

	"github.com/teranos/gwkit/gw/date"
)

// Key is the natural identity of a person as written in the source.
// Occ disambiguates people sharing a name.
type Key struct {
	FirstName string
	Surname   string
	Occ       int
}

// String renders the key the way GW writes it: "Surname Firstname[.occ]".
func (k Key) String() string {
	s := k.Surname + " " + k.FirstName
	if k.Occ != 0 {
		s += "." + strconv.Itoa(k.Occ)
	}
	return s
}

// Sex of a person.
type Sex int

const (
	Neuter Sex = iota
	Male
	Female
)

func (s Sex) String() string {
	switch s {
	case Male:
		return "male"
	case Female:
		return "female"
	default:
		return "neuter"
	}
}

// Access controls visibility of a person's details.
type Access int

const (
	IfTitles Access = iota
	Public
	Private
)

func (a Access) String() string {
	switch a {
	case Public:
		return "public"
	case Private:
		return "private"
	default:
		return "iftitles"
	}
}

// Title is a nobility or honorific title: [name:ident:place:start:end:nth].
type Title struct {
	Name  string
	Ident string
	Place string
	Start date.Date
	End   date.Date
	Nth   int
}

// EventInfo groups the date, place, note and source of a vital event.
type EventInfo struct {
	Date   date.Date
	Place  string
	Note   string
	Source string
}

// DeathKind is the death status of a person.
type DeathKind int

const (
	DontKnowIfDead DeathKind = iota
	NotDead
	Dead
	DeadYoung
	DeadDontKnowWhen
	OfCourseDead
)

var deathKindNames = [...]string{"dontknowifdead", "notdead", "dead", "deadyoung", "deaddontknowwhen", "ofcoursedead"}

func (k DeathKind) String() string {
	if k < 0 || int(k) >= len(deathKindNames) {
		return "unknown"
	}
	return deathKindNames[k]
}

// DeathReason qualifies a Dead status.
type DeathReason int

const (
	Unspecified DeathReason = iota
	Killed
	Murdered
	Executed
	Disappeared
)

var deathReasonNames = [...]string{"unspecified", "killed", "murdered", "executed", "disappeared"}

func (r DeathReason) String() string {
	if r < 0 || int(r) >= len(deathReasonNames) {
		return "unknown"
	}
	return deathReasonNames[r]
}

// Death is the death status plus its date, place, note and source.
type Death struct {
	Kind   DeathKind
	Reason DeathReason
	EventInfo
}

// BurialKind is the burial status of a person.
type BurialKind int

const (
	UnknownBurial BurialKind = iota
	Buried
	Cremated
)

func (k BurialKind) String() string {
	switch k {
	case Buried:
		return "buried"
	case Cremated:
		return "cremated"
	default:
		return "unknown"
	}
}

// Burial is the burial status plus its date, place, note and source.
type Burial struct {
	Kind BurialKind
	EventInfo
}

// Person is a person definition as written in the source. Personal events
// and notes are declared in their own blocks and attached at resolution.
type Person struct {
	Key
	FirstNameAliases []string
	SurnameAliases   []string
	PublicName       string
	Image            string
	Nicknames        []string
	Aliases          []string
	Titles           []Title
	Sex              Sex
	Access           Access
	Occupation       string
	Source           string
	Birth            EventInfo
	Baptism          EventInfo
	Death            Death
	Burial           Burial
}

// NewPerson returns a person with only its name set; every other field
// keeps its default.
func NewPerson(k Key) Person {
	return Person{Key: k}
}

// Somebody is a reference to a person: either only a key (Undefined) or a
// full definition (Defined).
type Somebody interface {
	PersonKey() Key
	isSomebody()
}

// Undefined references a person by key only.
type Undefined struct {
	Key Key
}

// Defined carries a full person definition.
type Defined struct {
	Person Person
}

func (u Undefined) PersonKey() Key { return u.Key }
func (d Defined) PersonKey() Key   { return d.Person.Key }

func (Undefined) isSomebody() {}
func (Defined) isSomebody()   {}
