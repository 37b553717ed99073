package parser

import "strings"

// Matcher decides whether an attribute value (usually a class list) marks an
// element of interest. Statement pages ship hashed class names such as
// "ListSettlement_ListSettlement__list_3xQ1a", so matching is kept behind this
// interface instead of being baked into selectors.
type Matcher interface {
	Match(value string) bool
}

// MatcherFunc adapts a plain function to a Matcher.
type MatcherFunc func(value string) bool

// Match calls f(value).
func (f MatcherFunc) Match(value string) bool {
	return f(value)
}

// Contains matches attribute values containing substr.
func Contains(substr string) Matcher {
	return MatcherFunc(func(value string) bool {
		return strings.Contains(value, substr)
	})
}
