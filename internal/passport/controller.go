package passport

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/passport/internal/catalog"
)

// ErrUnknownPassport is returned by Resume when no progress is stored for the id.
var ErrUnknownPassport = errors.New("unknown passport")

// UnlockStatus is the outcome of a keyword attempt.
type UnlockStatus int

const (
	// NoMatch covers both a wrong keyword and a keyword whose world is already unlocked.
	NoMatch UnlockStatus = iota
	// Unlocked means a locked world was unlocked by the attempt.
	Unlocked
)

func (s UnlockStatus) String() string {
	if s == Unlocked {
		return "unlocked"
	}
	return "no_match"
}

// UnlockResult reports the outcome of AttemptUnlock.
type UnlockResult struct {
	Status UnlockStatus
	// WorldID is set when Status is Unlocked.
	WorldID string
}

// Controller owns one visitor's progress and navigation. It is driven by a
// single goroutine and is not safe for concurrent use.
type Controller struct {
	id       string
	catalog  *catalog.Catalog
	layout   Layout
	store    Store
	logger   *zap.Logger
	progress Progress
	nav      *Navigator
}

// New loads (or initializes) the progress for passportID and returns a
// controller on the cover page. A first run is persisted immediately with
// every world locked.
//
// Precondition: passportID must be non-empty; cat, store, and logger must be non-nil.
// Postcondition: Progress keys are exactly the catalog ids.
func New(ctx context.Context, passportID string, cat *catalog.Catalog, layout Layout, store Store, logger *zap.Logger) (*Controller, error) {
	return open(ctx, passportID, cat, layout, store, logger, false)
}

// Resume is New for a passport that must already exist.
//
// Postcondition: Returns ErrUnknownPassport if nothing is stored for passportID.
func Resume(ctx context.Context, passportID string, cat *catalog.Catalog, layout Layout, store Store, logger *zap.Logger) (*Controller, error) {
	return open(ctx, passportID, cat, layout, store, logger, true)
}

func open(ctx context.Context, passportID string, cat *catalog.Catalog, layout Layout, store Store, logger *zap.Logger, mustExist bool) (*Controller, error) {
	if passportID == "" {
		return nil, errors.New("passport id must not be empty")
	}

	stored, found, err := store.Load(ctx, passportID)
	if err != nil {
		return nil, fmt.Errorf("loading progress for %s: %w", passportID, err)
	}
	if !found && mustExist {
		return nil, ErrUnknownPassport
	}

	c := &Controller{
		id:      passportID,
		catalog: cat,
		layout:  layout,
		store:   store,
		logger:  logger.With(zap.String("passport_id", passportID)),
		nav:     NewNavigator(layout.Len()),
	}

	if !found {
		c.progress = NewProgress(cat.IDs())
		if err := store.Save(ctx, passportID, c.progress); err != nil {
			return nil, fmt.Errorf("initializing progress for %s: %w", passportID, err)
		}
		c.logger.Info("passport issued", zap.Int("worlds", cat.Len()))
		return c, nil
	}

	progress, dropped := Reconcile(stored, cat.IDs())
	if len(dropped) > 0 {
		c.logger.Warn("dropping progress for worlds not in catalog", zap.Strings("world_ids", dropped))
		if err := store.Save(ctx, passportID, progress); err != nil {
			c.logger.Warn("saving reconciled progress", zap.Error(err))
		}
	}
	c.progress = progress
	c.logger.Info("passport resumed",
		zap.Int("unlocked", progress.UnlockedCount()),
		zap.Int("worlds", cat.Len()),
	)
	return c, nil
}

// ID returns the passport id.
func (c *Controller) ID() string { return c.id }

// Catalog returns the catalog backing this controller.
func (c *Controller) Catalog() *catalog.Catalog { return c.catalog }

// Layout returns the page layout.
func (c *Controller) Layout() Layout { return c.layout }

// AttemptUnlock unlocks the first locked world, in catalog order, whose
// keyword equals the normalized input. The full progress is persisted before
// returning.
//
// Postcondition: Returns Unlocked with the world id, or NoMatch with progress
// unchanged. On a store error the unlock is rolled back and the error returned.
func (c *Controller) AttemptUnlock(ctx context.Context, input string) (UnlockResult, error) {
	kw := catalog.NormalizeKeyword(input)
	if kw == "" {
		return UnlockResult{Status: NoMatch}, nil
	}

	for _, w := range c.catalog.Match(kw) {
		if c.progress[w.ID] {
			continue
		}

		c.progress[w.ID] = true
		if err := c.store.Save(ctx, c.id, c.progress); err != nil {
			c.progress[w.ID] = false
			return UnlockResult{}, fmt.Errorf("saving progress for %s: %w", c.id, err)
		}
		c.logger.Info("world unlocked",
			zap.String("world_id", w.ID),
			zap.Int("unlocked", c.progress.UnlockedCount()),
		)
		return UnlockResult{Status: Unlocked, WorldID: w.ID}, nil
	}

	c.logger.Debug("keyword rejected")
	return UnlockResult{Status: NoMatch}, nil
}

// Restart locks every world, persists, and returns to the cover. Callers must
// obtain the visitor's confirmation first.
//
// Postcondition: On error, progress and page are unchanged.
func (c *Controller) Restart(ctx context.Context) error {
	fresh := NewProgress(c.catalog.IDs())
	if err := c.store.Save(ctx, c.id, fresh); err != nil {
		return fmt.Errorf("saving progress for %s: %w", c.id, err)
	}
	c.progress = fresh
	c.nav.Reset()
	c.logger.Info("passport restarted")
	return nil
}

// IsUnlocked reports whether worldID is unlocked.
func (c *Controller) IsUnlocked(worldID string) bool {
	return c.progress[worldID]
}

// UnlockedCount returns the number of unlocked worlds.
func (c *Controller) UnlockedCount() int {
	return c.progress.UnlockedCount()
}

// Progress returns a copy of the current progress.
func (c *Controller) Progress() Progress {
	return c.progress.Clone()
}

// Page returns the current page number.
func (c *Controller) Page() int { return c.nav.Current() }

// TotalPages returns the page count.
func (c *Controller) TotalPages() int { return c.nav.Total() }

// Next advances one page; no-op on the last page.
func (c *Controller) Next() bool { return c.nav.Next() }

// Previous goes back one page; no-op on the cover.
func (c *Controller) Previous() bool { return c.nav.Previous() }

// GoTo jumps to page; out-of-range targets are ignored.
func (c *Controller) GoTo(page int) bool { return c.nav.GoTo(page) }

// GoToWorld jumps to the page of worldID.
//
// Postcondition: Returns false, without moving, if the layout has no page for worldID.
func (c *Controller) GoToWorld(worldID string) bool {
	n, ok := c.layout.PageOf(worldID)
	if !ok {
		return false
	}
	c.nav.GoTo(n)
	return true
}

// Open leaves the cover for the first inner page.
func (c *Controller) Open() bool { return c.nav.GoTo(CoverPage + 1) }

// View runs the render pass. Layout worlds missing from the catalog are logged
// and left out of the badges.
func (c *Controller) View() View {
	v := Render(c.progress, c.nav.State(), c.catalog, c.layout)
	for _, id := range v.Missing {
		c.logger.Warn("layout references unknown world", zap.String("world_id", id))
	}
	return v
}
