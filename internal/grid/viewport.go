package grid

// The row windowing contract: given total row count, container height and a
// row height estimate, compute the visible window of row indices and their
// absolute offsets. Rows outside the window (plus overscan) are never
// rendered.

type scrollAlign int

const (
	alignAuto scrollAlign = iota
	alignStart
	alignCenter
	alignEnd
)

type virtualItem struct {
	index int
	start int
	size  int
}

type viewport struct {
	total     int
	height    int
	rowHeight int
	overscan  int
	offset    int // first fully visible row index
}

func newViewport(rowHeight, overscan int) viewport {
	if rowHeight < 1 {
		rowHeight = 1
	}
	if overscan < 0 {
		overscan = 0
	}
	return viewport{rowHeight: rowHeight, overscan: overscan}
}

// rowsPerPage is how many whole rows fit in the container.
func (v viewport) rowsPerPage() int {
	n := v.height / v.rowHeight
	if n < 1 {
		n = 1
	}
	return n
}

func (v viewport) maxOffset() int {
	mo := v.total - v.rowsPerPage()
	if mo < 0 {
		return 0
	}
	return mo
}

func (v *viewport) clamp() {
	if v.offset > v.maxOffset() {
		v.offset = v.maxOffset()
	}
	if v.offset < 0 {
		v.offset = 0
	}
}

func (v *viewport) setHeight(h int) {
	if h < 0 {
		h = 0
	}
	v.height = h
	v.clamp()
}

func (v *viewport) setTotal(n int) {
	if n < 0 {
		n = 0
	}
	v.total = n
	v.clamp()
}

// scrollToIndex brings row i into view. alignAuto scrolls the minimum
// distance; the other alignments place the row at the requested edge.
func (v *viewport) scrollToIndex(i int, al scrollAlign) {
	if i < 0 {
		i = 0
	}
	if v.total > 0 && i > v.total-1 {
		i = v.total - 1
	}
	page := v.rowsPerPage()
	switch al {
	case alignStart:
		v.offset = i
	case alignCenter:
		v.offset = i - page/2
	case alignEnd:
		v.offset = i - page + 1
	default:
		if i < v.offset {
			v.offset = i
		} else if i >= v.offset+page {
			v.offset = i - page + 1
		}
	}
	v.clamp()
}

// virtualItems returns the visible window of rows plus overscan on both
// sides, with absolute offsets in terminal lines.
func (v viewport) virtualItems() []virtualItem {
	if v.total == 0 {
		return nil
	}
	start := v.offset - v.overscan
	if start < 0 {
		start = 0
	}
	end := v.offset + v.rowsPerPage() + v.overscan
	if end > v.total {
		end = v.total
	}
	items := make([]virtualItem, 0, end-start)
	for i := start; i < end; i++ {
		items = append(items, virtualItem{index: i, start: i * v.rowHeight, size: v.rowHeight})
	}
	return items
}

// totalSize is the full scrollable height in terminal lines.
func (v viewport) totalSize() int {
	return v.total * v.rowHeight
}
