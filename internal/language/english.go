// Package language holds the coarse script heuristic the transcription
// service uses to decide whether a second translation pass is needed. It is
// not a language detector: it only has to catch the case where the speech
// service returned Gurmukhi (or otherwise non-Latin) text when English was
// requested.
package language

import (
	"strings"
	"unicode"
)

// latinRatioThreshold is the minimum share of Latin letters, whitespace and
// basic punctuation for text to count as English.
const latinRatioThreshold = 0.70

const punctuation = `.,'"?!;:-`

// LikelyNotEnglish reports whether text probably needs translation.
// Empty text is treated as not-English so the caller errs on the side of
// translating.
func LikelyNotEnglish(text string) bool {
	if text == "" {
		return true
	}
	total := 0
	latin := 0
	for _, r := range text {
		total++
		if r >= 0x0A00 && r <= 0x0A7F {
			// Gurmukhi block: definitely Punjabi source text.
			return true
		}
		if isLatinish(r) {
			latin++
		}
	}
	return float64(latin)/float64(total) < latinRatioThreshold
}

func isLatinish(r rune) bool {
	switch {
	case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z':
		return true
	case unicode.IsSpace(r):
		return true
	default:
		return strings.ContainsRune(punctuation, r)
	}
}
