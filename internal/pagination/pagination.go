// Package pagination computes the sliding window of page links rendered
// around the current page, e.g. 1 ... 3 4 [5] 6 7 ... 9.
package pagination

// Window describes which page numbers to render and where gaps sit.
type Window struct {
	Left         []int `json:"left"`
	Right        []int `json:"right"`
	LeftHasMore  bool  `json:"left_has_more"`
	RightHasMore bool  `json:"right_has_more"`
	ShowFirst    bool  `json:"show_first"`
	ShowLast     bool  `json:"show_last"`
}

// Compute returns the window of up to two pages on each side of currentPage,
// clipped to [1, totalPages]. The second return value is false when no
// pagination controls should be rendered at all (a single page, or input
// outside the valid range).
func Compute(totalPages, currentPage int) (Window, bool) {
	if totalPages < 1 || currentPage < 1 || currentPage > totalPages {
		return Window{}, false
	}

	w := Window{Left: []int{}, Right: []int{}}

	switch {
	case currentPage == 1:
		w.Right = pageSpan(2, min(3, totalPages))
		if len(w.Right) == 0 {
			return Window{}, false
		}
	case currentPage == totalPages:
		w.Left = pageSpan(max(currentPage-2, 1), currentPage-1)
	default:
		w.Left = pageSpan(max(currentPage-2, 1), currentPage-1)
		w.Right = pageSpan(currentPage+1, min(currentPage+2, totalPages))
	}

	if len(w.Right) > 0 {
		rightmost := w.Right[len(w.Right)-1]
		// A gap on the right needs at least one hidden page between the
		// window and the last page
		w.RightHasMore = rightmost < totalPages-1
		w.ShowLast = rightmost < totalPages
	}
	if len(w.Left) > 0 {
		w.LeftHasMore = w.Left[0] > 2
		w.ShowFirst = w.Left[0] > 1
	}

	return w, true
}

// pageSpan lists the pages from lo through hi inclusive.
func pageSpan(lo, hi int) []int {
	if hi < lo {
		return []int{}
	}
	pages := make([]int, 0, hi-lo+1)
	for p := lo; p <= hi; p++ {
		pages = append(pages, p)
	}
	return pages
}
