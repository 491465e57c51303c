package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapPreservesSentinel(t *testing.T) {
	err := Wrapf(ErrDateParse, "month %d out of range", 13)

	assert.True(t, IsDateParseError(err))
	assert.False(t, IsGrammarError(err))
	assert.Contains(t, err.Error(), "month 13 out of range")
	assert.Contains(t, err.Error(), "date parse error")
}

func TestMarkKeepsMessage(t *testing.T) {
	err := Mark(New("unknown relation code \"xyz\""), ErrGrammar)

	assert.True(t, IsGrammarError(err))
	assert.Equal(t, "unknown relation code \"xyz\"", err.Error())
}

func TestAsThroughWrap(t *testing.T) {
	type lineErr struct{ error }
	original := &lineErr{New("bad")}
	wrapped := Wrap(original, "block at line 4")

	var target *lineErr
	require.True(t, As(wrapped, &target))
	assert.Same(t, original, target)
}

func TestHintsAndDetails(t *testing.T) {
	err := WithHint(ErrNotComparable, "compare only structured dates")
	err = WithDetailf(err, "left=%s", "0(circa_war)")

	assert.True(t, Is(err, ErrNotComparable))
	assert.Equal(t, []string{"compare only structured dates"}, GetAllHints(err))
	assert.Equal(t, []string{"left=0(circa_war)"}, GetAllDetails(err))
}

func TestNotFound(t *testing.T) {
	err := NewNotFoundError("run %s", "abc")
	assert.True(t, IsNotFoundError(err))
	assert.Contains(t, err.Error(), "run abc")
	assert.False(t, IsNotFoundError(nil))
}

func TestNilHandling(t *testing.T) {
	assert.Nil(t, Wrap(nil, "context"))
	assert.Nil(t, Wrapf(nil, "context %d", 1))
	assert.Nil(t, WithHint(nil, "hint"))
	assert.False(t, IsDateParseError(nil))
}

func TestStackTrace(t *testing.T) {
	err := New("with stack")
	assert.Contains(t, fmt.Sprintf("%+v", err), "errors_test.go")
}

func ExampleWrap() {
	err := Wrap(ErrGrammar, "unexpected token \"#zz\"")
	fmt.Println(err)
	// Output: unexpected token "#zz": grammar error
}
