package importlist

import (
	"strings"
	"unicode"

	"github.com/hbollon/go-edlib"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// matchThreshold is the minimum Jaro-Winkler similarity between cleaned
// titles for a candidate to be treated as already in the library. High on
// purpose: a false positive silently drops a list entry.
const matchThreshold = 0.95

// cleanTitle normalizes a title for comparison: lowercase, accents removed,
// leading articles stripped, punctuation collapsed to spaces.
func cleanTitle(title string) string {
	s := strings.ToLower(title)
	s = removeAccents(s)

	s = strings.ReplaceAll(s, "&", " and ")
	s = strings.ReplaceAll(s, "'", "")

	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	s = b.String()

	for _, art := range []string{"the ", "a ", "an "} {
		if strings.HasPrefix(s, art) {
			s = strings.TrimPrefix(s, art)
			break
		}
	}

	return strings.Join(strings.Fields(s), " ")
}

func removeAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}

// titlesMatch reports whether two titles refer to the same work. Uses
// Jaro-Winkler similarity, which favors shared prefixes - a good fit for
// media titles that differ only in subtitle or punctuation.
func titlesMatch(a, b string) bool {
	ca, cb := cleanTitle(a), cleanTitle(b)
	if ca == "" || cb == "" {
		return false
	}
	if ca == cb {
		return true
	}
	return float64(edlib.JaroWinklerSimilarity(ca, cb)) >= matchThreshold
}
