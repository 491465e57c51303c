package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyString(t *testing.T) {
	assert.Equal(t, "DUPONT Jean", Key{FirstName: "Jean", Surname: "DUPONT"}.String())
	assert.Equal(t, "DUPONT Jean Paul.2", Key{FirstName: "Jean Paul", Surname: "DUPONT", Occ: 2}.String())
}

func TestSomebodyKey(t *testing.T) {
	k := Key{FirstName: "Anne", Surname: "MARTIN", Occ: 1}
	var refs = []Somebody{Undefined{Key: k}, Defined{Person: NewPerson(k)}}
	for _, r := range refs {
		assert.Equal(t, k, r.PersonKey())
	}
}

func TestNewPersonDefaults(t *testing.T) {
	p := NewPerson(Key{FirstName: "x", Surname: "y"})
	assert.Equal(t, Neuter, p.Sex)
	assert.Equal(t, IfTitles, p.Access)
	assert.Equal(t, DontKnowIfDead, p.Death.Kind)
	assert.Equal(t, UnknownBurial, p.Burial.Kind)
	assert.Nil(t, p.Birth.Date)
}

func TestBlockTags(t *testing.T) {
	blocks := []Block{
		&FamilyBlock{Pos: Pos{Line: 3}},
		&NotesBlock{},
		&RelationsBlock{},
		&PersonalEventsBlock{},
		&BaseNotesBlock{},
		&WizardNotesBlock{},
		&PageExtBlock{},
	}
	var tags []string
	for _, b := range blocks {
		tags = append(tags, b.Tag())
	}
	assert.Equal(t, []string{"fam", "notes", "rel", "pevt", "notes-db", "wizard-note", "page-ext"}, tags)
	assert.Equal(t, 3, blocks[0].StartLine())
}

func TestEnumStrings(t *testing.T) {
	assert.Equal(t, "killed", Killed.String())
	assert.Equal(t, "deadyoung", DeadYoung.String())
	assert.Equal(t, "nsckm", NoSexesCheckMarried.String())
	assert.Equal(t, "godparent", WitnessGodParent.String())
	assert.Equal(t, "fosterparent", FosterParent.String())
	assert.Equal(t, "unknown", DeathKind(99).String())
}
