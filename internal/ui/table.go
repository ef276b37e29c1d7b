package ui

import (
	"strings"
)

// column describes one table column: a header and a fixed width. A
// width of 0 marks the flexible column that absorbs leftover space.
type column struct {
	title string
	width int
}

// resolveWidths distributes the terminal width across columns, giving
// leftover space to the flexible column. One space separates columns.
func resolveWidths(cols []column, total int) []int {
	widths := make([]int, len(cols))
	fixed := 0
	flex := -1
	for i, c := range cols {
		if c.width == 0 {
			flex = i
			continue
		}
		widths[i] = c.width
		fixed += c.width
	}
	if flex >= 0 {
		remaining := total - fixed - len(cols) + 1
		if remaining < 8 {
			remaining = 8
		}
		widths[flex] = remaining
	}
	return widths
}

// renderHeaderRow renders the column titles with the header style.
func renderHeaderRow(styles Styles, cols []column, widths []int) string {
	cells := make([]string, len(cols))
	for i, c := range cols {
		cells[i] = padTo(c.title, widths[i])
	}
	return styles.TableHeader.Render(strings.Join(cells, " "))
}

// renderRow renders one row of pre-formatted cells, highlighting it
// when selected.
func renderRow(styles Styles, cells []string, widths []int, selected bool) string {
	padded := make([]string, len(cells))
	for i, cell := range cells {
		padded[i] = padTo(cell, widths[i])
	}
	row := strings.Join(padded, " ")
	if selected {
		return styles.Selected.Render(row)
	}
	return row
}

// visibleWindow returns the [start, end) slice bounds for a list of n
// rows scrolled to offset with the given window height.
func visibleWindow(n, offset, height int) (int, int) {
	if height <= 0 || n == 0 {
		return 0, 0
	}
	start := offset
	if start > n {
		start = n
	}
	end := start + height
	if end > n {
		end = n
	}
	return start, end
}
