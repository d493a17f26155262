package passport

import (
	"fmt"

	"github.com/cory-johannsen/passport/internal/catalog"
)

// Badge and status presentation for each unlock state.
const (
	IconUnlocked   = "🏅"
	IconLocked     = "🔒"
	StatusUnlocked = "Desbloqueado"
	StatusLocked   = "Bloqueado"
)

// Badge describes one world's badge, status label, and medal.
type Badge struct {
	WorldID   string
	Title     string
	BadgeRef  string
	StatusRef string
	Unlocked  bool
	Icon      string
	Status    string
}

// View is the complete presentation state for one render pass. Adapters apply
// it to their surface without consulting the controller.
type View struct {
	Page       int
	TotalPages int
	Kind       PageKind
	// WorldID is set when Kind is PageWorld.
	WorldID string
	// Indicator is the page-position text, e.g. "3 / 7".
	Indicator   string
	NavVisible  bool
	PrevEnabled bool
	NextEnabled bool
	Badges      []Badge
	Unlocked    int
	Total       int
	// Missing lists layout world ids absent from the catalog; their badges are skipped.
	Missing []string
}

// Badge returns the badge for worldID.
func (v View) Badge(worldID string) (Badge, bool) {
	for _, b := range v.Badges {
		if b.WorldID == worldID {
			return b, true
		}
	}
	return Badge{}, false
}

// Render derives the View from progress, navigation, catalog, and layout.
// It reads its inputs only.
func Render(progress Progress, nav NavState, cat *catalog.Catalog, layout Layout) View {
	v := View{
		Page:        nav.Current,
		TotalPages:  nav.Total,
		Indicator:   fmt.Sprintf("%d / %d", nav.Current, nav.Total),
		NavVisible:  nav.Current != CoverPage,
		PrevEnabled: nav.Current > CoverPage,
		NextEnabled: nav.Current < nav.Total,
		Unlocked:    progress.UnlockedCount(),
		Total:       cat.Len(),
	}

	if page, ok := layout.Page(nav.Current); ok {
		v.Kind = page.Kind
		v.WorldID = page.WorldID
	}

	for _, id := range layout.WorldIDs() {
		w, err := cat.Lookup(id)
		if err != nil {
			v.Missing = append(v.Missing, id)
			continue
		}
		b := Badge{
			WorldID:   w.ID,
			Title:     w.Title,
			BadgeRef:  w.BadgeRef,
			StatusRef: w.StatusRef,
			Unlocked:  progress[w.ID],
			Icon:      IconLocked,
			Status:    StatusLocked,
		}
		if b.Unlocked {
			b.Icon = IconUnlocked
			b.Status = StatusUnlocked
		}
		v.Badges = append(v.Badges, b)
	}

	return v
}
