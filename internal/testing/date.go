package testing

import (
	"testing"

	"github.com/teranos/gwkit/gw/date"
)

// Date parses a GW date literal, failing the test when it is invalid.
func Date(t testing.TB, text string) date.Date {
	t.Helper()

	d, err := date.Parse(text)
	if err != nil {
		t.Fatalf("Failed to parse date %q: %v", text, err)
	}
	return d
}
