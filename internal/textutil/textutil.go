// Package textutil holds the text normalisation shared by the play-by-play parsers.
package textutil

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalize lowercases s with Unicode-aware rules and collapses runs of
// whitespace to a single space.
func Normalize(s string) string {
	return strings.Join(strings.Fields(cases.Lower(language.Und).String(s)), " ")
}

// EqualName reports whether two player names match ignoring case and spacing.
func EqualName(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

// Slug turns a display name into the folder form used on disk ("Jane Doe" -> "Jane_Doe").
func Slug(name string) string {
	return strings.Join(strings.Fields(name), "_")
}

// Title renders a category or label for humans ("made_shots" -> "Made Shots").
func Title(s string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(s, "_", " "))
}
