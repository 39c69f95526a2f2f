package command

import (
	"strings"

	"github.com/mesh-intelligence/roster/internal/projection"
	"github.com/mesh-intelligence/roster/pkg/types"
)

// ContactKeywordPredicate matches contacts where any keyword equals a word of
// the name, a tag, or the email, ignoring case. No keywords match nothing.
func ContactKeywordPredicate(keywords []string) projection.Predicate[types.Contact] {
	keywords = cleanKeywords(keywords)
	return func(x types.Contact) bool {
		for _, k := range keywords {
			if hasWord(x.Name, k) || x.HasTag(k) || types.NewContactID(k) == x.ID() {
				return true
			}
		}
		return false
	}
}

// EventKeywordPredicate matches events where any keyword equals a word of the
// name or a tag, ignoring case. No keywords match nothing.
func EventKeywordPredicate(keywords []string) projection.Predicate[types.Event] {
	keywords = cleanKeywords(keywords)
	return func(x types.Event) bool {
		for _, k := range keywords {
			if hasWord(x.Name, k) || x.HasTag(k) {
				return true
			}
		}
		return false
	}
}

// ContactTagPredicate matches contacts carrying every tag.
func ContactTagPredicate(tags []string) projection.Predicate[types.Contact] {
	return func(x types.Contact) bool {
		for _, t := range tags {
			if !x.HasTag(t) {
				return false
			}
		}
		return true
	}
}

// EventTagPredicate matches events carrying every tag.
func EventTagPredicate(tags []string) projection.Predicate[types.Event] {
	return func(x types.Event) bool {
		for _, t := range tags {
			if !x.HasTag(t) {
				return false
			}
		}
		return true
	}
}

// both matches elements that satisfy a and b.
func both[T any](a, b projection.Predicate[T]) projection.Predicate[T] {
	return func(x T) bool { return a(x) && b(x) }
}

func hasWord(s, word string) bool {
	for _, w := range strings.Fields(s) {
		if strings.EqualFold(w, word) {
			return true
		}
	}
	return false
}

func cleanKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}
