// Package style detects and converts identifier naming conventions
// (snake_case, SCREAMING_SNAKE_CASE, UpperCamelCase), used by typecheck to
// emit STY### warnings without ever rejecting a program outright.
package style

import (
	"strings"
	"unicode"
)

// findCamelCaseWordBoundary returns the byte index of the first rune that
// closes a lowercase-to-uppercase transition, or -1 if there is none.
func findCamelCaseWordBoundary(ident string) int {
	previousWasLower := false
	for i, r := range ident {
		if unicode.IsUpper(r) && previousWasLower {
			return i
		}
		previousWasLower = unicode.IsLower(r)
	}
	return -1
}

// camelCaseSplitWords splits a CamelCase identifier into words.
func camelCaseSplitWords(ident string) []string {
	var words []string
	for len(ident) > 0 {
		idx := findCamelCaseWordBoundary(ident)
		if idx < 0 {
			idx = len(ident)
		}
		words = append(words, ident[:idx])
		ident = ident[idx:]
	}
	return words
}

// splitWords splits an identifier of unknown style into words, first on
// underscores and then on camelCase boundaries within each piece.
func splitWords(ident string) []string {
	var words []string
	for _, part := range strings.Split(ident, "_") {
		words = append(words, camelCaseSplitWords(part)...)
	}
	return words
}

func splitLeadingUnderscores(ident string) (leading, rest string) {
	i := 0
	for i < len(ident) && ident[i] == '_' {
		i++
	}
	return ident[:i], ident[i:]
}

// IsSnakeCase reports whether ident is written in snake_case.
func IsSnakeCase(ident string) bool {
	_, trimmed := splitLeadingUnderscores(ident)
	if strings.Contains(trimmed, "__") {
		return false
	}
	return !strings.ContainsFunc(trimmed, unicode.IsUpper)
}

// IsScreamingSnakeCase reports whether ident is written in
// SCREAMING_SNAKE_CASE.
func IsScreamingSnakeCase(ident string) bool {
	_, trimmed := splitLeadingUnderscores(ident)
	if strings.Contains(trimmed, "__") {
		return false
	}
	return !strings.ContainsFunc(trimmed, unicode.IsLower)
}

// IsUpperCamelCase reports whether ident is written in UpperCamelCase.
func IsUpperCamelCase(ident string) bool {
	_, trimmed := splitLeadingUnderscores(ident)
	if trimmed == "" {
		return false
	}
	if strings.Contains(trimmed, "_") {
		return false
	}
	first := []rune(trimmed)[0]
	return !unicode.IsLower(first)
}

// ToSnakeCase converts ident to a best-guess snake_case rendering.
func ToSnakeCase(ident string) string {
	leading, trimmed := splitLeadingUnderscores(ident)
	words := splitWords(trimmed)
	var b strings.Builder
	b.WriteString(leading)
	for i, w := range words {
		if i > 0 {
			b.WriteByte('_')
		}
		b.WriteString(strings.ToLower(w))
	}
	return b.String()
}

// ToScreamingSnakeCase converts ident to a best-guess SCREAMING_SNAKE_CASE
// rendering.
func ToScreamingSnakeCase(ident string) string {
	leading, trimmed := splitLeadingUnderscores(ident)
	words := splitWords(trimmed)
	var b strings.Builder
	b.WriteString(leading)
	for i, w := range words {
		if i > 0 {
			b.WriteByte('_')
		}
		b.WriteString(strings.ToUpper(w))
	}
	return b.String()
}

// ToUpperCamelCase converts ident to a best-guess UpperCamelCase rendering.
func ToUpperCamelCase(ident string) string {
	leading, trimmed := splitLeadingUnderscores(ident)
	words := splitWords(trimmed)
	var b strings.Builder
	b.WriteString(leading)
	for _, w := range words {
		if w == "" {
			continue
		}
		r := []rune(w)
		b.WriteString(strings.ToUpper(string(r[0])))
		b.WriteString(strings.ToLower(string(r[1:])))
	}
	return b.String()
}
