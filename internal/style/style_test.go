package style

import "testing"

func TestDetectStyles(t *testing.T) {
	snakeCase := []string{"hello", "__hello", "blah32", "some_words_here", "___some_words_here"}
	screamingSnakeCase := []string{"SOME_WORDS_HERE", "___SOME_WORDS_HERE"}
	upperCamelCase := []string{"Hello", "__Hello", "Blah32", "SomeWordsHere", "___SomeWordsHere"}
	screamingOrUpperCamel := []string{"HELLO", "__HELLO", "BLAH32"}
	styleless := []string{"Mix_Of_Things", "__Mix_Of_Things", "FooBar_123"}

	for _, ident := range snakeCase {
		if !IsSnakeCase(ident) {
			t.Errorf("%q: expected snake_case", ident)
		}
		if IsScreamingSnakeCase(ident) {
			t.Errorf("%q: unexpected SCREAMING_SNAKE_CASE", ident)
		}
		if IsUpperCamelCase(ident) {
			t.Errorf("%q: unexpected UpperCamelCase", ident)
		}
	}
	for _, ident := range screamingSnakeCase {
		if IsSnakeCase(ident) {
			t.Errorf("%q: unexpected snake_case", ident)
		}
		if !IsScreamingSnakeCase(ident) {
			t.Errorf("%q: expected SCREAMING_SNAKE_CASE", ident)
		}
	}
	for _, ident := range upperCamelCase {
		if !IsUpperCamelCase(ident) {
			t.Errorf("%q: expected UpperCamelCase", ident)
		}
		if IsSnakeCase(ident) {
			t.Errorf("%q: unexpected snake_case", ident)
		}
	}
	for _, ident := range screamingOrUpperCamel {
		if !IsScreamingSnakeCase(ident) {
			t.Errorf("%q: expected SCREAMING_SNAKE_CASE", ident)
		}
		if !IsUpperCamelCase(ident) {
			t.Errorf("%q: expected UpperCamelCase", ident)
		}
	}
	for _, ident := range styleless {
		if IsSnakeCase(ident) || IsScreamingSnakeCase(ident) || IsUpperCamelCase(ident) {
			t.Errorf("%q: expected no style to match", ident)
		}
	}
}

func TestToSnakeCase(t *testing.T) {
	cases := map[string]string{
		"HELLO":           "hello",
		"___HELLO":        "___hello",
		"SomeWordsHere":   "some_words_here",
		"someWordsHere":   "some_words_here",
		"Mix_Of_Things":   "mix_of_things",
		"__Mix_Of_Things": "__mix_of_things",
		"FooBar_123":      "foo_bar_123",
	}
	for in, want := range cases {
		if got := ToSnakeCase(in); got != want {
			t.Errorf("ToSnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestToScreamingSnakeCase(t *testing.T) {
	cases := map[string]string{
		"hello":         "HELLO",
		"some_words_here": "SOME_WORDS_HERE",
		"SomeWordsHere": "SOME_WORDS_HERE",
		"FooBar_123":    "FOO_BAR_123",
	}
	for in, want := range cases {
		if got := ToScreamingSnakeCase(in); got != want {
			t.Errorf("ToScreamingSnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestToUpperCamelCase(t *testing.T) {
	cases := map[string]string{
		"hello":           "Hello",
		"some_words_here": "SomeWordsHere",
		"SOME_WORDS_HERE": "SomeWordsHere",
		"Mix_Of_Things":   "MixOfThings",
		"FooBar_123":      "FooBar123",
	}
	for in, want := range cases {
		if got := ToUpperCamelCase(in); got != want {
			t.Errorf("ToUpperCamelCase(%q) = %q, want %q", in, got, want)
		}
	}
}
