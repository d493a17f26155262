// Package catalog provides the passport content store: the fixed set of worlds,
// their unlock keywords, and their display fields.
package catalog

import (
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// ErrNotFound is returned when a world id is absent from the catalog.
var ErrNotFound = errors.New("world not found")

// ErrLoadFailure is returned when a catalog cannot be fetched, read, or parsed.
var ErrLoadFailure = errors.New("catalog load failure")

// maxSuggestDistance bounds the edit distance accepted by Suggest.
const maxSuggestDistance = 2

// Guest is a person featured on a world page.
type Guest struct {
	Name  string
	Role  string
	Room  string
	Image string
}

// World is a themed passport section unlocked by its keyword.
type World struct {
	// ID uniquely identifies the world within the catalog.
	ID string
	// Keyword is the normalized secret that unlocks this world.
	Keyword string
	// Title is the display name of the world (e.g. "Mundo Ejecutivo").
	Title string
	// Motto is the one-line tagline shown under the title.
	Motto string
	// Description is the long-form world text.
	Description string
	// Areas lists the fields a visitor can work in from this world.
	Areas []string
	// Guests lists featured people; may be empty.
	Guests []Guest
	// BadgeRef names the presentation region holding the large badge.
	BadgeRef string
	// StatusRef names the presentation region holding the status label.
	StatusRef string
}

// DisplayName returns the world id with its first letter upper-cased.
func (w *World) DisplayName() string {
	r, size := utf8.DecodeRuneInString(w.ID)
	if r == utf8.RuneError {
		return w.ID
	}
	return string(unicode.ToUpper(r)) + w.ID[size:]
}

// Catalog is the immutable, ordered set of worlds. It is safe for concurrent
// reads and is never mutated after construction.
type Catalog struct {
	worlds []*World
	byID   map[string]*World
}

// New builds a Catalog from worlds in iteration order. Keywords are normalized.
//
// Precondition: worlds must be non-empty.
// Postcondition: Returns a Catalog, or an error if an id is empty or duplicated,
// a title or keyword is empty, or two worlds share a normalized keyword.
func New(worlds []*World) (*Catalog, error) {
	if len(worlds) == 0 {
		return nil, errors.New("catalog must contain at least one world")
	}

	c := &Catalog{
		worlds: make([]*World, 0, len(worlds)),
		byID:   make(map[string]*World, len(worlds)),
	}
	keywords := make(map[string]string, len(worlds))

	for _, w := range worlds {
		if w.ID == "" {
			return nil, errors.New("world id must not be empty")
		}
		if _, exists := c.byID[w.ID]; exists {
			return nil, fmt.Errorf("duplicate world id %q", w.ID)
		}
		if w.Title == "" {
			return nil, fmt.Errorf("world %q: title must not be empty", w.ID)
		}
		kw := NormalizeKeyword(w.Keyword)
		if kw == "" {
			return nil, fmt.Errorf("world %q: keyword must not be empty", w.ID)
		}
		if other, exists := keywords[kw]; exists {
			return nil, fmt.Errorf("world %q: keyword %q already used by world %q", w.ID, kw, other)
		}
		keywords[kw] = w.ID

		stored := *w
		stored.Keyword = kw
		c.worlds = append(c.worlds, &stored)
		c.byID[w.ID] = &stored
	}

	return c, nil
}

// Lookup returns the world with the given id.
//
// Postcondition: Returns the world, or an error wrapping ErrNotFound.
func (c *Catalog) Lookup(id string) (*World, error) {
	w, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return w, nil
}

// Worlds returns all worlds in catalog order. The returned worlds must be treated as read-only.
func (c *Catalog) Worlds() []*World {
	out := make([]*World, len(c.worlds))
	copy(out, c.worlds)
	return out
}

// IDs returns the world ids in catalog order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.worlds))
	for i, w := range c.worlds {
		ids[i] = w.ID
	}
	return ids
}

// Match returns the worlds whose keyword equals keyword, in catalog order.
//
// Precondition: keyword must already be normalized with NormalizeKeyword.
func (c *Catalog) Match(keyword string) []*World {
	var out []*World
	for _, w := range c.worlds {
		if w.Keyword == keyword {
			out = append(out, w)
		}
	}
	return out
}

// Len returns the number of worlds.
func (c *Catalog) Len() int {
	return len(c.worlds)
}

// Suggest returns the world id closest to id by edit distance, for "did you
// mean" hints.
//
// Postcondition: Returns ("", false) when no id is within two edits.
func (c *Catalog) Suggest(id string) (string, bool) {
	target := NormalizeKeyword(id)
	best, bestDist := "", maxSuggestDistance+1
	for _, w := range c.worlds {
		d := levenshtein.ComputeDistance(target, w.ID)
		if d < bestDist {
			best, bestDist = w.ID, d
		}
	}
	if best == "" {
		return "", false
	}
	return best, true
}
