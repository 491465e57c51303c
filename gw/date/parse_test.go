package date

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/gwkit/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		text string
		want DateValue
		cal  Calendar
	}{
		{"15/03/1950", dv(15, 3, 1950, Sure), Gregorian},
		{"~1950", dv(0, 0, 1950, About), Gregorian},
		{"?3/1950", dv(0, 3, 1950, Maybe), Gregorian},
		{"<1/1/1900", dv(1, 1, 1900, Before), Gregorian},
		{">1789", dv(0, 0, 1789, After), Gregorian},
		{"12/5/1700J", dv(12, 5, 1700, Sure), Julian},
		{"1/1/12F", dv(1, 1, 12, Sure), French},
		{"5766H", dv(0, 0, 5766, Sure), Hebrew},
		{"1950G", dv(0, 0, 1950, Sure), Gregorian},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := Parse(tt.text)
			require.NoError(t, err)
			cd, ok := got.(CalendarDate)
			require.True(t, ok)
			assert.Equal(t, tt.want, cd.DateValue)
			assert.Equal(t, tt.cal, cd.Calendar)
		})
	}
}

func TestParseRanges(t *testing.T) {
	got, err := Parse("1700|1701")
	require.NoError(t, err)
	cd := got.(CalendarDate)
	assert.Equal(t, OrYear, cd.Prec.Kind)
	require.NotNil(t, cd.Prec.Bound)
	assert.Equal(t, 1701, cd.Prec.Bound.Year)
	assert.Equal(t, 1700, cd.Year)

	got, err = Parse("3/1850..5/6/1852J")
	require.NoError(t, err)
	cd = got.(CalendarDate)
	assert.Equal(t, YearInt, cd.Prec.Kind)
	assert.Equal(t, DateValue{Day: 5, Month: 6, Year: 1852}, *cd.Prec.Bound)
	assert.Equal(t, 3, cd.Month)
	assert.Equal(t, Julian, cd.Calendar)
}

func TestParseTextAndAbsent(t *testing.T) {
	got, err := Parse("0(during the war)")
	require.NoError(t, err)
	assert.Equal(t, TextDate{Text: "during the war"}, got)

	got, err = Parse("0")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = Parse("")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestParseErrors(t *testing.T) {
	for _, text := range []string{
		"13/1950",
		"0/1950",
		"32/1/1950",
		"0/3/1950",
		"1950x",
		"1950JJ",
		"~",
		"1950/",
		"1700|",
		"0(open",
		"1/2/3/4",
	} {
		t.Run(text, func(t *testing.T) {
			_, err := Parse(text)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrDateParse), "%v", err)
		})
	}
}

func TestStringRoundTrip(t *testing.T) {
	for _, text := range []string{
		"15/3/1950", "~1950", "?3/1950", "<1/1/1900", ">1789",
		"12/5/1700J", "1700|1701", "3/1850..5/6/1852J", "0(in spring)",
	} {
		d, err := Parse(text)
		require.NoError(t, err)
		assert.Equal(t, text, d.String())
	}
}

func TestIsDateText(t *testing.T) {
	for tok, want := range map[string]bool{
		"1950": true, "~1950": true, "?3/1950": true, "<1900": true, ">1900": true,
		"0(text)": true, "?": false, "~": false, "#bp": false, "k1944": false, "": false,
	} {
		assert.Equal(t, want, IsDateText(tok), tok)
	}
}
