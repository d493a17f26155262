package passport

// CoverPage is the first page. Navigation controls are hidden while on it.
const CoverPage = 1

// NavState is a snapshot of the navigator.
type NavState struct {
	Current int
	Total   int
}

// Navigator tracks the current page within [1, total].
type Navigator struct {
	current int
	total   int
}

// NewNavigator creates a Navigator on the cover page.
//
// Precondition: total must be >= 1; smaller values are raised to 1.
func NewNavigator(total int) *Navigator {
	if total < 1 {
		total = 1
	}
	return &Navigator{current: CoverPage, total: total}
}

// Current returns the current page.
func (n *Navigator) Current() int { return n.current }

// Total returns the page count.
func (n *Navigator) Total() int { return n.total }

// State returns a snapshot for rendering.
func (n *Navigator) State() NavState {
	return NavState{Current: n.current, Total: n.total}
}

// Next advances one page.
//
// Postcondition: Returns false and leaves the page unchanged at the last page.
func (n *Navigator) Next() bool {
	if n.current >= n.total {
		return false
	}
	n.current++
	return true
}

// Previous goes back one page.
//
// Postcondition: Returns false and leaves the page unchanged on the cover.
func (n *Navigator) Previous() bool {
	if n.current <= CoverPage {
		return false
	}
	n.current--
	return true
}

// GoTo jumps to page. Out-of-range targets are ignored.
//
// Postcondition: Returns true only if page is within [1, total] and differs from the current page.
func (n *Navigator) GoTo(page int) bool {
	if page < CoverPage || page > n.total || page == n.current {
		return false
	}
	n.current = page
	return true
}

// Reset returns to the cover.
func (n *Navigator) Reset() {
	n.current = CoverPage
}
