package ui

// ListState tracks selection and scroll for one scrollable list. The
// invariant is clamp-never-wrap: the selection stays inside [0, len)
// whatever happens to the list underneath it, and moving past either
// end stops there.
type ListState struct {
	Selected     int
	ScrollOffset int
	VisibleCount int
}

// Clamp pulls the selection and scroll window back inside the list
// after any change to list length or selection.
func (l *ListState) Clamp(listLen int) {
	if listLen == 0 {
		l.Selected = 0
		l.ScrollOffset = 0
		return
	}
	if l.Selected > listLen-1 {
		l.Selected = listLen - 1
	}
	if l.Selected < 0 {
		l.Selected = 0
	}
	if l.Selected < l.ScrollOffset {
		l.ScrollOffset = l.Selected
	} else if l.VisibleCount > 0 && l.Selected >= l.ScrollOffset+l.VisibleCount {
		l.ScrollOffset = l.Selected - l.VisibleCount + 1
	}
}

func (l *ListState) MoveUp(listLen int) {
	if l.Selected > 0 {
		l.Selected--
		l.Clamp(listLen)
	}
}

func (l *ListState) MoveDown(listLen int) {
	if listLen > 0 && l.Selected < listLen-1 {
		l.Selected++
		l.Clamp(listLen)
	}
}

func (l *ListState) MoveToTop() {
	l.Selected = 0
	l.ScrollOffset = 0
}

func (l *ListState) MoveToBottom(listLen int) {
	if listLen == 0 {
		return
	}
	l.Selected = listLen - 1
	if l.VisibleCount > 0 {
		l.ScrollOffset = listLen - l.VisibleCount
		if l.ScrollOffset < 0 {
			l.ScrollOffset = 0
		}
	}
}

// SelectVisible selects the entry at the given row of the visible
// window. Rows past the end of the list are ignored.
func (l *ListState) SelectVisible(row, listLen int) {
	target := l.ScrollOffset + row
	if target < 0 || target >= listLen {
		return
	}
	if l.VisibleCount > 0 && row >= l.VisibleCount {
		return
	}
	l.Selected = target
	l.Clamp(listLen)
}

func (l *ListState) PageUp(listLen int) {
	jump := l.VisibleCount / 2
	if jump < 1 {
		jump = 1
	}
	l.Selected -= jump
	l.Clamp(listLen)
}

func (l *ListState) PageDown(listLen int) {
	jump := l.VisibleCount / 2
	if jump < 1 {
		jump = 1
	}
	l.Selected += jump
	l.Clamp(listLen)
}
