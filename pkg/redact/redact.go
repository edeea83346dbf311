// Package redact strips scoring-internals vocabulary from chat text before it
// is persisted or shown. Scoring itself always runs on the raw original.
package redact

import (
	"regexp"
	"strings"
)

// DefaultLexicon is the deny-list of scoring-domain terms, English and Korean.
var DefaultLexicon = []string{
	"favor",
	"affinity",
	"score",
	"호감도",
	"친밀도",
	"점수",
}

// Filter removes every occurrence of its lexicon terms. The lexicon is fixed
// at construction so call sites never need to change when it does.
type Filter struct {
	pattern *regexp.Regexp
	spaces  *regexp.Regexp
}

// New builds a Filter from a term list. Terms are matched case-insensitively
// as plain substrings.
func New(lexicon []string) *Filter {
	quoted := make([]string, 0, len(lexicon))
	for _, term := range lexicon {
		if term == "" {
			continue
		}
		quoted = append(quoted, regexp.QuoteMeta(term))
	}
	return &Filter{
		pattern: regexp.MustCompile("(?i)(" + strings.Join(quoted, "|") + ")"),
		spaces:  regexp.MustCompile(`\s+`),
	}
}

// Default is the filter used across the app.
var Default = New(DefaultLexicon)

// Apply removes every lexicon occurrence, collapses runs of whitespace to a
// single space, and trims. Applying twice gives the same result as once:
// removal repeats until a pass changes nothing, so deletions that splice two
// halves of a term back together ("scscoreore") cannot survive.
func (f *Filter) Apply(text string) string {
	out := text
	for {
		next := f.pattern.ReplaceAllString(out, "")
		if next == out {
			break
		}
		out = next
	}
	out = f.spaces.ReplaceAllString(out, " ")
	return strings.TrimSpace(out)
}

// Apply runs the default filter.
func Apply(text string) string {
	return Default.Apply(text)
}
