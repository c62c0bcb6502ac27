package diagnostics

import (
	"fmt"
	"sort"
	"strings"
)

// maxSuggestions caps how many candidates Suggest returns, mirroring the
// original compiler's max_num_of_suggestions cap in
// sway-error/src/formatting.rs's did_you_mean.
const maxSuggestions = 3

// minSimilarity is the lowest normalized similarity a candidate may have to
// be offered at all. The original used a 0.7 Jaro-similarity threshold; no
// Jaro-similarity library is vendored here (go.mod carries none, and no pack
// example imports one), so this package substitutes a normalized Levenshtein
// distance with the same 0.7 cutoff applied to the normalized score instead.
const minSimilarity = 0.7

// candidate pairs a known name with its similarity to the name that failed
// to resolve.
type candidate struct {
	name       string
	similarity float64
}

// Suggest returns the known names most similar to got, closest first,
// capped at maxSuggestions and filtered to minSimilarity, adapting
// sway-error/src/formatting.rs's did_you_mean (Jaro-similarity there,
// normalized Levenshtein here).
func Suggest(got string, known []string) []string {
	var candidates []candidate
	for _, name := range known {
		if name == got {
			continue
		}
		sim := similarity(got, name)
		if sim >= minSimilarity {
			candidates = append(candidates, candidate{name: name, similarity: sim})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].similarity != candidates[j].similarity {
			return candidates[i].similarity > candidates[j].similarity
		}
		return candidates[i].name < candidates[j].name
	})
	if len(candidates) > maxSuggestions {
		candidates = candidates[:maxSuggestions]
	}
	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.name
	}
	return out
}

// SuggestHelp renders Suggest's result as a "did you mean x, y or z?" help
// string, or "" if there are no candidates, adapting
// sway-error/src/formatting.rs's did_you_mean_help and its
// sequence_to_str_or "a, b or c" phrasing.
func SuggestHelp(got string, known []string) string {
	names := Suggest(got, known)
	if len(names) == 0 {
		return ""
	}
	return fmt.Sprintf("did you mean %s?", sequenceToStrOr(names))
}

// sequenceToStrOr joins names as "a", "a or b", or "a, b or c".
func sequenceToStrOr(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = fmt.Sprintf("`%s`", n)
	}
	switch len(quoted) {
	case 0:
		return ""
	case 1:
		return quoted[0]
	default:
		return strings.Join(quoted[:len(quoted)-1], ", ") + " or " + quoted[len(quoted)-1]
	}
}

// similarity normalizes Levenshtein edit distance into a 0..1 score, 1
// meaning identical, matching the scale the original's Jaro similarity used
// for its 0.7 threshold.
func similarity(a, b string) float64 {
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	if maxLen == 0 {
		return 1
	}
	return 1 - float64(levenshtein(a, b))/float64(maxLen)
}

// levenshtein computes the edit distance (insertion, deletion,
// substitution, and a swap of two adjacent characters each cost one edit)
// with a three-row dynamic program, operating on runes so multi-byte
// identifiers are measured by character count rather than byte count.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev2 := make([]int, len(rb)+1)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := curr[j-1] + 1
			sub := prev[j-1] + cost
			curr[j] = min3(del, ins, sub)
			if i > 1 && j > 1 && ra[i-1] == rb[j-2] && ra[i-2] == rb[j-1] && prev2[j-2]+1 < curr[j] {
				curr[j] = prev2[j-2] + 1
			}
		}
		prev2, prev, curr = prev, curr, prev2
	}
	return prev[len(rb)]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
