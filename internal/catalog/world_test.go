package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func testWorlds() []*World {
	return []*World{
		{ID: "ejecutivo", Keyword: "liderazgo", Title: "Mundo Ejecutivo"},
		{ID: "social", Keyword: "servicio", Title: "Mundo Social"},
	}
}

func TestNew(t *testing.T) {
	cat, err := New(testWorlds())
	require.NoError(t, err)
	assert.Equal(t, 2, cat.Len())
	assert.Equal(t, []string{"ejecutivo", "social"}, cat.IDs())
}

func TestNew_DoesNotAliasInput(t *testing.T) {
	worlds := testWorlds()
	cat, err := New(worlds)
	require.NoError(t, err)

	worlds[0].Title = "changed"
	w, err := cat.Lookup("ejecutivo")
	require.NoError(t, err)
	assert.Equal(t, "Mundo Ejecutivo", w.Title)
}

func TestNew_Invalid(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)

	_, err = New([]*World{{ID: "", Keyword: "x", Title: "X"}})
	assert.Error(t, err)

	_, err = New([]*World{
		{ID: "a", Keyword: "uno", Title: "A"},
		{ID: "a", Keyword: "dos", Title: "A2"},
	})
	assert.ErrorContains(t, err, "duplicate world id")

	_, err = New([]*World{
		{ID: "a", Keyword: "UNO", Title: "A"},
		{ID: "b", Keyword: "uno", Title: "B"},
	})
	assert.ErrorContains(t, err, "already used")
}

func TestLookup_NotFound(t *testing.T) {
	cat, err := New(testWorlds())
	require.NoError(t, err)

	w, err := cat.Lookup("artes")
	assert.Nil(t, w)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMatch(t *testing.T) {
	cat, err := New(testWorlds())
	require.NoError(t, err)

	got := cat.Match("servicio")
	require.Len(t, got, 1)
	assert.Equal(t, "social", got[0].ID)
	assert.Empty(t, cat.Match("SERVICIO"), "input must be normalized first")
	assert.Empty(t, cat.Match("curiosidad"))
}

func TestWorlds_ReturnsCopy(t *testing.T) {
	cat, err := New(testWorlds())
	require.NoError(t, err)

	ws := cat.Worlds()
	ws[0] = nil
	assert.NotNil(t, cat.Worlds()[0])
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Ejecutivo", (&World{ID: "ejecutivo"}).DisplayName())
	assert.Equal(t, "Única", (&World{ID: "única"}).DisplayName())
	assert.Equal(t, "", (&World{}).DisplayName())
}

func TestNormalizeKeyword(t *testing.T) {
	assert.Equal(t, "curiosidad", NormalizeKeyword(" Curiosidad "))
	assert.Equal(t, "liderazgo", NormalizeKeyword("LIDERAZGO"))
	assert.Equal(t, "práctica", NormalizeKeyword("\tPRÁCTICA\n"))
	// "a" followed by a combining acute accent composes to "á".
	assert.Equal(t, "práctica", NormalizeKeyword("PRA\u0301CTICA"))
	assert.Equal(t, "", NormalizeKeyword("   "))
}

func TestSuggest(t *testing.T) {
	cat, err := New(testWorlds())
	require.NoError(t, err)

	id, ok := cat.Suggest("ejecutiv")
	assert.True(t, ok)
	assert.Equal(t, "ejecutivo", id)

	id, ok = cat.Suggest("SOCIAL")
	assert.True(t, ok)
	assert.Equal(t, "social", id)

	_, ok = cat.Suggest("emprendimiento")
	assert.False(t, ok)
}

func TestPropertyNormalizeIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := rapid.StringMatching(`[ A-Za-zÁÉÍÓÚáéíóúÑñ]{0,20}`).Draw(t, "s")
		once := NormalizeKeyword(s)
		if twice := NormalizeKeyword(once); twice != once {
			t.Fatalf("normalize not idempotent: %q -> %q -> %q", s, once, twice)
		}
	})
}

func TestPropertyNormalizeIgnoresCaseAndPadding(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		word := rapid.StringMatching(`[a-záéíóúñ]{1,12}`).Draw(t, "word")
		left := rapid.StringMatching(`[ \t]{0,3}`).Draw(t, "left")
		right := rapid.StringMatching(`[ \t\n]{0,3}`).Draw(t, "right")
		variant := left + strings.ToUpper(word) + right
		if NormalizeKeyword(variant) != NormalizeKeyword(word) {
			t.Fatalf("%q and %q normalize differently", variant, word)
		}
	})
}
