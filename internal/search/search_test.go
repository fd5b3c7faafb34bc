package search

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Áo Dài Cách Tân", "ao-dai-cach-tan"},
		{"  Quần   Jean  ", "quan-jean"},
		{"Nón Lá (mới)", "non-la-moi"},
		{"Plain-Name", "plain-name"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Slugify(tc.name), "slug of %q", tc.name)
	}
}

func TestTokens(t *testing.T) {
	assert.Equal(t, []string{"ao", "dai"}, Tokens("Áo Dài"))
	assert.Equal(t, []string{"ao", "dai"}, Tokens("  ao   dai "))
	assert.Nil(t, Tokens("   "))
	assert.Nil(t, Tokens(""))
}

// matches applies a filter produced by BuildFilter to a slug the way the
// document store would: every $and clause must match as a substring.
func matches(t *testing.T, filter bson.M, slug string) bool {
	t.Helper()
	clauses, ok := filter["$and"].([]bson.M)
	if !ok {
		return true // empty filter matches everything
	}
	for _, clause := range clauses {
		rx, ok := clause["slug"].(primitive.Regex)
		require.True(t, ok)
		re, err := regexp.Compile("(?i)" + rx.Pattern)
		require.NoError(t, err)
		if !re.MatchString(slug) {
			return false
		}
	}
	return true
}

func TestBuildFilter(t *testing.T) {
	filter := BuildFilter("Áo Dài")

	assert.True(t, matches(t, filter, "ao-dai-cach-tan"))
	assert.False(t, matches(t, filter, "quan-jean"))

	// Partial token coverage is not enough: every token must match.
	assert.False(t, matches(t, BuildFilter("ao jean"), "ao-dai-cach-tan"))

	// Case-insensitive substring, not whole-word.
	assert.True(t, matches(t, BuildFilter("DAI"), "ao-dai-cach-tan"))
}

func TestNormalizeTracksFilterIdentity(t *testing.T) {
	assert.Equal(t, "ao dai", Normalize("  Áo   Dài "))
	assert.Equal(t, "", Normalize("   "))

	// "ao dai" filters on two tokens while "ao-dai" filters on one, so
	// the canonical forms must differ even though the slugs collapse to
	// the same string.
	assert.NotEqual(t, Normalize("ao dai"), Normalize("ao-dai"))
	assert.True(t, matches(t, BuildFilter("ao dai"), "dai-tiec-ao-lua"))
	assert.False(t, matches(t, BuildFilter("ao-dai"), "dai-tiec-ao-lua"))
}

func TestBuildFilterEmptyKeywordMatchesAll(t *testing.T) {
	assert.Equal(t, bson.M{}, BuildFilter(""))
	assert.Equal(t, bson.M{}, BuildFilter("   "))
}

func TestClampPage(t *testing.T) {
	cases := []struct {
		requested, total, page, pages int
	}{
		{5, 17, 3, 3},  // past the end clamps to the last page
		{1, 17, 1, 3},
		{0, 17, 1, 3},
		{-2, 17, 1, 3},
		{2, 16, 2, 2},
		{1, 0, 1, 0},   // zero matches: page 1 of 0 pages
		{9, 0, 1, 0},
		{1, 8, 1, 1},
		{2, 9, 2, 2},
	}
	for _, tc := range cases {
		page, pages := ClampPage(tc.requested, tc.total)
		assert.Equal(t, tc.page, page, "page for requested=%d total=%d", tc.requested, tc.total)
		assert.Equal(t, tc.pages, pages, "pages for total=%d", tc.total)
	}
}

func TestSkip(t *testing.T) {
	assert.EqualValues(t, 0, Skip(1))
	assert.EqualValues(t, 8, Skip(2))
	assert.EqualValues(t, 16, Skip(3))
	assert.EqualValues(t, 0, Skip(0))
}
