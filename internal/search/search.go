// Package search builds the catalog's slug-based keyword filter and the
// fixed-size pagination window used by the public product listing.
package search

import (
	"math"
	"regexp"
	"strings"
	"unicode"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// PageSize is fixed for the public catalog listing.
const PageSize = 8

var (
	whitespace  = regexp.MustCompile(`\s+`)
	nonWord     = regexp.MustCompile(`[^\w-]+`)
	multiHyphen = regexp.MustCompile(`--+`)
)

// Fold decomposes to NFD and strips combining diacritical marks, so
// "Áo Dài" becomes "Ao Dai". Characters that do not decompose (đ) pass
// through unchanged.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Slugify derives the URL identifier stored on every product:
// ASCII-folded, lowercased, hyphen-separated.
func Slugify(name string) string {
	s := Fold(strings.TrimSpace(name))
	s = strings.ToLower(s)
	s = whitespace.ReplaceAllString(s, "-")
	s = nonWord.ReplaceAllString(s, "")
	s = multiHyphen.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Tokens normalizes a search keyword into lowercase, diacritic-free
// terms. Empty tokens from repeated spaces are discarded.
func Tokens(keyword string) []string {
	folded := strings.ToLower(Fold(strings.TrimSpace(keyword)))
	var tokens []string
	for _, t := range strings.Split(folded, " ") {
		if t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// Normalize joins a keyword's tokens back into one canonical string.
// Two keywords normalize equally only when BuildFilter treats them
// identically: "ao dai" (two tokens) and "ao-dai" (one token) stay
// distinct.
func Normalize(keyword string) string {
	return strings.Join(Tokens(keyword), " ")
}

// BuildFilter returns the document filter for a keyword: every token
// must appear as a case-insensitive substring of the slug. An empty
// keyword matches everything.
func BuildFilter(keyword string) bson.M {
	tokens := Tokens(keyword)
	if len(tokens) == 0 {
		return bson.M{}
	}
	and := make([]bson.M, 0, len(tokens))
	for _, t := range tokens {
		and = append(and, bson.M{"slug": primitive.Regex{Pattern: regexp.QuoteMeta(t), Options: "i"}})
	}
	return bson.M{"$and": and}
}

// ClampPage clamps the requested page to [1, ceil(total/PageSize)].
// Zero matches yield page 1 of 0 pages.
func ClampPage(requested, total int) (page, pages int) {
	pages = int(math.Ceil(float64(total) / float64(PageSize)))
	page = requested
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}
	if page < 1 {
		page = 1
	}
	return page, pages
}

// Skip converts a clamped page number to the listing offset.
func Skip(page int) int64 {
	if page <= 1 {
		return 0
	}
	return int64(PageSize * (page - 1))
}
