// ABOUTME: Token utilities shared by keyword scoring and MMR redundancy
// ABOUTME: Lowercase alphanumeric tokenization, overlap fraction, Jaccard similarity
package core

import "strings"

// Tokenize splits text into lowercase alphanumeric tokens.
// It is deliberately stop-word-naive: "the" counts like any other token.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9')
	})
}

// TokenSet returns the distinct tokens of text
func TokenSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range Tokenize(text) {
		set[tok] = struct{}{}
	}
	return set
}

// OverlapFraction returns |query ∩ target| / |query|, the fraction of the
// query's distinct tokens that appear in target. Returns 0 for an empty query.
func OverlapFraction(query map[string]struct{}, target map[string]struct{}) float64 {
	if len(query) == 0 {
		return 0
	}
	matched := 0
	for tok := range query {
		if _, ok := target[tok]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(query))
}

// Jaccard returns |a ∩ b| / |a ∪ b| over two token sets.
// Two empty sets are treated as dissimilar, not identical.
func Jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for tok := range a {
		if _, ok := b[tok]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}
