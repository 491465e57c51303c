package graph

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/teranos/gwkit/gw/parser"
	"github.com/teranos/gwkit/gw/types"
	qtesting "github.com/teranos/gwkit/internal/testing"
)

func key(surname, first string) types.Key {
	return types.Key{FirstName: first, Surname: surname}
}

func defined(t *testing.T, k types.Key, birth string) types.Defined {
	t.Helper()
	p := types.NewPerson(k)
	p.Birth.Date = qtesting.Date(t, birth)
	return types.Defined{Person: p}
}

func buildSource(t *testing.T, src string) *Graph {
	t.Helper()
	res, err := parser.Parse(strings.NewReader(src), parser.Options{Logger: zap.NewNop().Sugar()})
	require.NoError(t, err)
	return Build(res.Blocks)
}

func TestResolve_Idempotence(t *testing.T) {
	b := NewBuilder(zap.NewNop().Sugar())
	k := key("Doe", "John")

	before := b.Resolve(types.Undefined{Key: k})
	first := b.Resolve(defined(t, k, "1900"))
	second := b.Resolve(defined(t, k, "1900"))
	after := b.Resolve(types.Undefined{Key: k})

	assert.Equal(t, before, first)
	assert.Equal(t, first, second)
	assert.Equal(t, second, after)
	assert.Len(t, b.persons, 1)
}

func TestResolve_DummyLifecycle(t *testing.T) {
	b := NewBuilder(zap.NewNop().Sugar())
	k := key("Doe", "John")

	id := b.Resolve(types.Undefined{Key: k})
	assert.True(t, b.IsDummy(k))
	assert.Equal(t, 1, b.DummyCount())

	g := b.Finish()
	require.Len(t, g.Dummies(), 1)
	dummy := g.Dummies()[0]
	assert.Equal(t, id, dummy.ID)
	assert.Equal(t, k, dummy.Key)
	assert.Nil(t, dummy.Birth.Date)
	assert.Equal(t, types.Neuter, dummy.Sex)

	assert.Equal(t, id, b.Resolve(defined(t, k, "1900")))
	assert.False(t, b.IsDummy(k))
	assert.Zero(t, b.DummyCount())

	g = b.Finish()
	assert.Empty(t, g.Dummies())
	p, ok := g.Lookup(k)
	require.True(t, ok)
	assert.False(t, p.Dummy)
	assert.Equal(t, qtesting.Date(t, "1900"), p.Birth.Date)
}

func TestResolve_RedefinitionWarns(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	b := NewBuilder(zap.New(core).Sugar())
	k := key("Doe", "John")

	id := b.Resolve(defined(t, k, "1900"))
	assert.Equal(t, id, b.Resolve(defined(t, k, "1901")))
	assert.Equal(t, qtesting.Date(t, "1901"), b.persons[id].Birth.Date)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "Doe John", logs.All()[0].ContextMap()["key"])
}

func TestResolve_IdentitiesAreDense(t *testing.T) {
	b := NewBuilder(zap.NewNop().Sugar())
	ids := []PersonID{
		b.Resolve(types.Undefined{Key: key("A", "a")}),
		b.Resolve(defined(t, key("B", "b"), "1900")),
		b.Resolve(types.Undefined{Key: types.Key{FirstName: "a", Surname: "A", Occ: 1}}),
	}
	assert.Equal(t, []PersonID{0, 1, 2}, ids)
	assert.Equal(t, NoPerson, b.Resolve(nil))
}

func TestBuild_MinimalFamily(t *testing.T) {
	g := buildSource(t, "fam 0 John + 0 Jane\nbeg\n- Paul\nend\n")

	require.Len(t, g.Families, 1)
	require.Len(t, g.Persons, 3)
	fam := g.Families[0]

	father, ok := g.Person(fam.Father)
	require.True(t, ok)
	assert.Equal(t, types.Key{FirstName: "John", Surname: "0"}, father.Key)
	assert.Equal(t, types.Male, father.Sex)
	assert.Equal(t, []FamilyID{0}, father.Unions)

	mother, ok := g.Person(fam.Mother)
	require.True(t, ok)
	assert.Equal(t, types.Key{FirstName: "Jane", Surname: "0"}, mother.Key)
	assert.Equal(t, types.Female, mother.Sex)

	require.Len(t, fam.Children, 1)
	child, ok := g.Person(fam.Children[0])
	require.True(t, ok)
	assert.Equal(t, "Paul", child.FirstName)
	assert.Equal(t, father.Surname, child.Surname)
	assert.Equal(t, FamilyID(0), child.Parents)
	assert.False(t, child.Dummy)

	// both parents are only referenced in the header
	assert.Len(t, g.Dummies(), 2)
}

func TestBuild_ChildLaterMarried(t *testing.T) {
	src := `fam Doe John + Roy Anne
beg
- h Paul 1920
end
fam Doe Paul + Martin Lucie
beg
- f Marie
end
`
	g := buildSource(t, src)
	require.Len(t, g.Families, 2)

	paul, ok := g.Lookup(key("Doe", "Paul"))
	require.True(t, ok)
	assert.False(t, paul.Dummy)
	assert.Equal(t, FamilyID(0), paul.Parents)
	assert.Equal(t, []FamilyID{1}, paul.Unions)
	assert.Equal(t, qtesting.Date(t, "1920"), paul.Birth.Date)
	assert.Equal(t, paul.ID, g.Families[1].Father)

	marie, ok := g.Lookup(key("Doe", "Marie"))
	require.True(t, ok)
	assert.Equal(t, types.Female, marie.Sex)
}

func TestBuild_MarriedBeforeDefinedAsChild(t *testing.T) {
	src := `fam Dupont Pierre + Martin Anne
beg
- Luc
end
fam Dupont Jean + Durand Marie
beg
- Pierre 1920
end
`
	g := buildSource(t, src)
	require.Len(t, g.Families, 2)

	pierre, ok := g.Lookup(key("Dupont", "Pierre"))
	require.True(t, ok)
	assert.False(t, pierre.Dummy)
	assert.Equal(t, types.Male, pierre.Sex)
	assert.Equal(t, FamilyID(1), pierre.Parents)
	assert.Equal(t, []FamilyID{0}, pierre.Unions)
	assert.Equal(t, qtesting.Date(t, "1920"), pierre.Birth.Date)
	assert.Equal(t, pierre.ID, g.Families[0].Father)
}

func TestBuild_ChildMarkerWinsOverInferredSex(t *testing.T) {
	src := `fam Dupont Pierre + Martin Anne
beg
- Luc
end
fam Dupont Jean + Durand Marie
beg
- f Pierre
end
`
	g := buildSource(t, src)
	pierre, ok := g.Lookup(key("Dupont", "Pierre"))
	require.True(t, ok)
	assert.Equal(t, types.Female, pierre.Sex)
}

func TestBuild_SexOverride(t *testing.T) {
	g := buildSource(t, "fam A B #nsck ff + C D\n")
	father, _ := g.Person(g.Families[0].Father)
	mother, _ := g.Person(g.Families[0].Mother)
	assert.Equal(t, types.Female, father.Sex)
	assert.Equal(t, types.Female, mother.Sex)
}

func TestBuild_EnrichFromDistantBlocks(t *testing.T) {
	src := `notes Doe Paul
Paul's notes
end notes
fam Doe John + Roy Anne
wit: f: Roy Claire
beg
- h Paul
end
rel Doe Paul
beg
- godp fath: Martin Luc
end
pevt Doe Paul
#grad 1940 #p Lyon
wit: #atte Martin Luc
end pevt
notes Nobody Here
orphan
end notes
notes-db
global
end notes-db
wizard-note jdoe
hello
end wizard-note
page-ext history
<p>text</p>
end page-ext
`
	g := buildSource(t, src)

	paul, ok := g.Lookup(key("Doe", "Paul"))
	require.True(t, ok)
	assert.Equal(t, "Paul's notes", paul.Notes)

	luc, ok := g.Lookup(key("Martin", "Luc"))
	require.True(t, ok)
	assert.True(t, luc.Dummy)

	require.Len(t, paul.Relations, 1)
	assert.Equal(t, types.GodParent, paul.Relations[0].Type)
	assert.Equal(t, luc.ID, paul.Relations[0].Father)
	assert.Equal(t, NoPerson, paul.Relations[0].Mother)

	require.Len(t, paul.Events, 1)
	assert.Equal(t, "graduate", paul.Events[0].Name)
	assert.Equal(t, "Lyon", paul.Events[0].Place)
	require.Len(t, paul.Events[0].Witnesses, 1)
	assert.Equal(t, luc.ID, paul.Events[0].Witnesses[0].Person)
	assert.Equal(t, types.WitnessAttending, paul.Events[0].Witnesses[0].Kind)

	claire, ok := g.Lookup(key("Roy", "Claire"))
	require.True(t, ok)
	assert.Equal(t, types.Female, claire.Sex)
	assert.Equal(t, []Witness{{Person: claire.ID, Kind: types.WitnessPlain}}, g.Families[0].Witnesses)

	_, ok = g.Lookup(key("Nobody", "Here"))
	assert.False(t, ok)

	assert.Equal(t, "global", g.BaseNotes)
	assert.Equal(t, "hello", g.WizardNotes["jdoe"])
	assert.Equal(t, "<p>text</p>", g.PageExts["history"])
}

func TestFinish_DoesNotCreatePersons(t *testing.T) {
	b := NewBuilder(zap.NewNop().Sugar())
	b.Add(&types.NotesBlock{Key: key("Ghost", "Casper"), Notes: "boo"})
	b.Add(&types.NotesBlock{Key: key("Ghost", "Casper"), Notes: "again"})
	g := b.Finish()
	assert.Empty(t, g.Persons)

	b.Resolve(types.Undefined{Key: key("Ghost", "Casper")})
	g = b.Finish()
	require.Len(t, g.Persons, 1)
	assert.Equal(t, "boo\nagain", g.Persons[0].Notes)

	// enrich overlays, so finishing twice gives the same result
	again := b.Finish()
	assert.Equal(t, g.Persons, again.Persons)
}

func TestGraph_Accessors(t *testing.T) {
	g := buildSource(t, "fam A B + C D\n")
	_, ok := g.Person(NoPerson)
	assert.False(t, ok)
	_, ok = g.Person(PersonID(len(g.Persons)))
	assert.False(t, ok)
	_, ok = g.Family(0)
	assert.True(t, ok)
	_, ok = g.Family(NoFamily)
	assert.False(t, ok)
}
