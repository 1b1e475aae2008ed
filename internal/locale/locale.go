// Package locale guesses the user's language from the environment. Nothing is
// translated yet; the result is only reported by the about command.
package locale

import (
	"os"
	"strings"

	"golang.org/x/text/language"
)

// Detect returns the language named by LC_ALL, LC_MESSAGES or LANG, in that order.
// Unset, "C" and "POSIX" locales give language.English.
func Detect() language.Tag {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(key); v != "" {
			return Parse(v)
		}
	}
	return language.English
}

// Parse turns a POSIX locale such as "pl_PL.UTF-8" into a language tag
func Parse(posix string) language.Tag {
	s := posix
	if i := strings.IndexAny(s, ".@"); i >= 0 {
		s = s[:i]
	}
	if s == "" || s == "C" || s == "POSIX" {
		return language.English
	}
	tag, err := language.Parse(strings.ReplaceAll(s, "_", "-"))
	if err != nil {
		return language.English
	}
	return tag
}

// Base returns the two-letter language code of t, e.g. "pl"
func Base(t language.Tag) string {
	b, _ := t.Base()
	return b.String()
}
