package passport

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/passport/internal/catalog"
)

// PageKind identifies what a page shows.
type PageKind int

// Page kinds in their default order.
const (
	PageCover PageKind = iota + 1
	PageGuide
	PageWorld
	PageMedals
)

func (k PageKind) String() string {
	switch k {
	case PageCover:
		return "cover"
	case PageGuide:
		return "guide"
	case PageWorld:
		return "world"
	case PageMedals:
		return "medals"
	default:
		return fmt.Sprintf("PageKind(%d)", int(k))
	}
}

// Page is one screen of the passport.
type Page struct {
	Kind PageKind
	// WorldID is set for PageWorld only.
	WorldID string
}

// Layout is the fixed, ordered list of pages for a session.
type Layout struct {
	pages []Page
}

// NewLayout validates and builds a Layout.
//
// Postcondition: Returns an error if pages is empty, the first page is not the
// cover, or a world page has no world id.
func NewLayout(pages []Page) (Layout, error) {
	if len(pages) == 0 {
		return Layout{}, errors.New("layout must contain at least one page")
	}
	if pages[0].Kind != PageCover {
		return Layout{}, fmt.Errorf("first page must be the cover, got %s", pages[0].Kind)
	}
	for i, p := range pages {
		if p.Kind == PageWorld && p.WorldID == "" {
			return Layout{}, fmt.Errorf("page %d: world page without world id", i+1)
		}
	}
	out := make([]Page, len(pages))
	copy(out, pages)
	return Layout{pages: out}, nil
}

// DefaultLayout is the cover, the guide, one page per world in catalog order,
// and the medals page.
func DefaultLayout(cat *catalog.Catalog) Layout {
	pages := []Page{{Kind: PageCover}, {Kind: PageGuide}}
	for _, w := range cat.Worlds() {
		pages = append(pages, Page{Kind: PageWorld, WorldID: w.ID})
	}
	pages = append(pages, Page{Kind: PageMedals})
	l, err := NewLayout(pages)
	if err != nil {
		// Catalog ids are non-empty and the cover comes first.
		panic(err)
	}
	return l
}

// Len returns the number of pages.
func (l Layout) Len() int { return len(l.pages) }

// Page returns the 1-based page n.
func (l Layout) Page(n int) (Page, bool) {
	if n < 1 || n > len(l.pages) {
		return Page{}, false
	}
	return l.pages[n-1], true
}

// PageOf returns the 1-based page number showing worldID.
func (l Layout) PageOf(worldID string) (int, bool) {
	for i, p := range l.pages {
		if p.Kind == PageWorld && p.WorldID == worldID {
			return i + 1, true
		}
	}
	return 0, false
}

// WorldIDs returns the ids of all world pages in page order.
func (l Layout) WorldIDs() []string {
	var ids []string
	for _, p := range l.pages {
		if p.Kind == PageWorld {
			ids = append(ids, p.WorldID)
		}
	}
	return ids
}
