package query

// PageSize is the initial reveal window length.
const PageSize = 24

// Window tracks the "load more" reveal count for a view. The count only
// grows while the rest of the spec stays the same; any other spec change
// snaps it back to PageSize.
type Window struct {
	last Spec
	size int
}

// NewWindow creates a window at the initial page size.
func NewWindow() *Window {
	return &Window{size: PageSize}
}

// Apply stamps the window's reveal count onto spec, resetting the window
// first if any field other than Reveal changed since the last call.
func (w *Window) Apply(spec Spec) Spec {
	if !sameView(w.last, spec) {
		w.size = PageSize
		w.last = spec
	}
	spec.Reveal = w.size
	return spec
}

// Grow extends the window by one page, capped at matched (the filtered
// total from the last View call) but never below the initial page size.
func (w *Window) Grow(matched int) {
	next := w.size + PageSize
	if next > matched {
		next = matched
	}
	if next < PageSize {
		next = PageSize
	}
	if next > w.size {
		w.size = next
	}
}

// Size returns the current reveal count.
func (w *Window) Size() int {
	return w.size
}

func sameView(a, b Spec) bool {
	a.Reveal = 0
	b.Reveal = 0
	return a == b
}
