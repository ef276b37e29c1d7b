package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// View renders the full frame: header, current view body, footer, and
// any modal centered on top.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "loading..."
	}

	now := time.Now()

	var body string
	switch m.view {
	case ViewJobs:
		body = m.renderJobs(now)
	case ViewNodes:
		body = m.renderNodes()
	case ViewPartitions:
		body = m.renderPartitions()
	case ViewPersonal:
		body = m.renderPersonal(now)
	case ViewProblems:
		body = m.renderProblems()
	}

	frame := m.renderHeader(now) + "\n" + body

	// Pad the frame so the footer sits on the last line.
	lines := strings.Count(frame, "\n") + 1
	if pad := m.height - 1 - lines; pad > 0 {
		frame += strings.Repeat("\n", pad)
	}
	frame += "\n" + m.renderFooter(now)

	if overlay := m.renderModal(); overlay != "" {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, overlay)
	}
	return frame
}

func (m Model) renderModal() string {
	switch m.modal {
	case ModalHelp:
		return m.renderHelp()
	case ModalFilter:
		return m.renderFilterModal()
	case ModalSort:
		return m.renderSortModal()
	case ModalConfirm:
		return m.renderConfirmModal()
	case ModalDetail:
		return m.styles.Modal.Render(m.detail.View())
	default:
		return ""
	}
}

func (m Model) renderFilterModal() string {
	var b strings.Builder
	if m.filterType == quickSearch {
		b.WriteString(m.styles.Title.Render("Quick search"))
	} else {
		b.WriteString(m.styles.Title.Render("Filter jobs"))
	}
	b.WriteString("\n\n")
	b.WriteString(m.filterInput.View())
	b.WriteString("\n\n")
	if m.filterType == advancedFilter {
		b.WriteString(m.styles.MutedText.Render("field:value terms, space = AND, ! negates"))
		b.WriteByte('\n')
		b.WriteString(m.styles.MutedText.Render("fields: name user account partition state qos gpu node id reason"))
		b.WriteString("\n\n")
	}
	b.WriteString(m.styles.FaintText.Render("enter: apply  esc: cancel  ctrl+u: clear"))
	return m.styles.Modal.Render(b.String())
}

func (m Model) renderSortModal() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Sort by"))
	b.WriteString("\n\n")
	for i, col := range sortColumns {
		marker := "  "
		if col == m.sortColumn {
			if m.sortAscending {
				marker = "▲ "
			} else {
				marker = "▼ "
			}
		}
		line := marker + col.Label()
		if i == m.sortSelected {
			b.WriteString(m.styles.Selected.Render(line))
		} else {
			b.WriteString(line)
		}
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	b.WriteString(m.styles.FaintText.Render("enter: apply / flip  esc: close"))
	return m.styles.Modal.Render(b.String())
}

func (m Model) renderConfirmModal() string {
	var b strings.Builder
	b.WriteString(m.styles.DangerText.Render(m.confirmAction.Description()))
	b.WriteString("\n\n")
	b.WriteString(m.styles.MutedText.Render("y / enter: yes    n / esc: no"))
	return m.styles.Modal.Render(b.String())
}
