package domain

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// NormalizeLocation maps the ways scanner apps spell one location label
// (surrounding space, letter case, composed or decomposed accents) onto a
// single form. Location stock rows are keyed by this form.
func NormalizeLocation(location string) string {
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(location)))
}
