package pagewire_test

import (
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"impractical.co/pagewire"
)

func TestParseIdentifier(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		class string
		want  pagewire.Identifier
		ok    bool
	}{
		"simple":           {class: "site-section site-section--user", want: "user", ok: true},
		"hyphenated":       {class: "site-section site-section--importer-status", want: "importer-status", ok: true},
		"marker-first":     {class: "site-section--post site-section", want: "post", ok: true},
		"upper":            {class: "site-section SITE-SECTION--BANS", want: "BANS", ok: true},
		"first-wins":       {class: "site-section--user site-section--post", want: "user", ok: true},
		"extra-whitespace": {class: "\n\tsite-section   site-section--register\t", want: "register", ok: true},
		"bare":             {class: "site-section", ok: false},
		"empty":            {class: "", ok: false},
		"digits":           {class: "site-section--user2", ok: false},
		"underscore":       {class: "site-section--user_page", ok: false},
		"no-identifier":    {class: "site-section--", ok: false},
		"prefixed":         {class: "old-site-section--user", ok: false},
		"single-hyphen":    {class: "site-section-user", ok: false},
		"long-s-id":        {class: "site-section site-section--u\u017fer", ok: false},
		"long-s-marker":    {class: "site-section \u017fite-section--bans", ok: false},
		"kelvin-id":        {class: "site-section site-section--\u212aey", ok: false},
		"kelvin-only-id":   {class: "site-section--\u212a", ok: false},
		"long-s-then-good": {class: "\u017fite-section--bans site-section--post", want: "post", ok: true},
	}

	for name, test := range tests {
		name, test := name, test
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, ok := pagewire.ParseIdentifier(test.class)
			assert.Equal(t, test.ok, ok)
			assert.Equal(t, test.want, got)
		})
	}
}

func TestParseIdentifierProperties(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		id := rapid.StringMatching(`[a-zA-Z-]{1,24}`).Draw(t, "id")
		// other classes never contain a double hyphen, so they can't
		// be mistaken for a marker
		others := rapid.SliceOfN(rapid.StringMatching(`[a-z][a-z0-9_]{0,12}`), 0, 6).Draw(t, "others")
		pos := rapid.IntRange(0, len(others)).Draw(t, "pos")
		sep := rapid.SampledFrom([]string{" ", "  ", "\t", "\n "}).Draw(t, "sep")

		classes := slices.Insert(slices.Clone(others), pos, "site-section--"+id)
		got, ok := pagewire.ParseIdentifier(strings.Join(classes, sep))
		require.True(t, ok)
		require.Equal(t, pagewire.Identifier(id), got)
	})
}

func TestParseIdentifierRejectsOtherCharacters(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		head := rapid.StringMatching(`[a-z-]{0,8}`).Draw(t, "head")
		bad := rapid.SampledFrom([]string{"0", "9", "_", ".", "é", ":", "\u017f", "\u212a"}).Draw(t, "bad")
		tail := rapid.StringMatching(`[a-z-]{0,8}`).Draw(t, "tail")

		_, ok := pagewire.ParseIdentifier("site-section site-section--" + head + bad + tail)
		require.False(t, ok)
	})
}

func TestParseIdentifierMarkerFoldsOnlyASCII(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		id := rapid.StringMatching(`[a-z-]{1,12}`).Draw(t, "id")
		// swap one "s" or "k" in the marker for the character Unicode
		// folds onto it
		folded := rapid.SampledFrom([]string{
			"\u017fite-section--",
			"site-\u017fection--",
			"site-section--",
		}).Draw(t, "marker")
		_, ok := pagewire.ParseIdentifier("site-section " + folded + id)
		require.Equal(t, folded == "site-section--", ok)
	})
}

func TestIdentifierValidate(t *testing.T) {
	t.Parallel()

	for _, id := range []pagewire.Identifier{
		pagewire.IdentifierUser,
		pagewire.IdentifierRegister,
		pagewire.IdentifierPost,
		pagewire.IdentifierImporter,
		pagewire.IdentifierImporterStatus,
		pagewire.IdentifierBans,
		"a-b-c",
	} {
		assert.NoError(t, id.Validate(), id)
	}
	for _, id := range []pagewire.Identifier{"", "User", "user2", "user page", "user_page"} {
		assert.ErrorIs(t, id.Validate(), pagewire.ErrInvalidIdentifier, id)
	}
}
