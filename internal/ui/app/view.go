package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	border = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))

	titleStyle  = lipgloss.NewStyle().Bold(true)
	blurStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	focusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	alertStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "loading..."
	}

	sidebar := m.renderSidebar()
	pane := m.renderPane()

	root := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, pane)
	footer := m.renderFooter()

	return lipgloss.JoinVertical(lipgloss.Left, root, footer)
}

func (m Model) renderSidebar() string {
	sec := m.section.String()
	secLabel := blurStyle.Render(sec)
	if m.focus == focusSidebar {
		secLabel = focusStyle.Render(sec)
	}
	header := titleStyle.Render("notefied") + " " + blurStyle.Render("•") + " " + secLabel

	lines := []string{header}
	if m.focus == focusSearch || m.query != "" {
		lines = append(lines, m.searchInput.View())
	}
	lines = append(lines, m.noteList.View())

	box := border.Width(m.noteList.Width()).Height(m.noteList.Height()+2).Padding(0, 1)
	return box.Render(strings.Join(lines, "\n"))
}

func (m Model) renderPane() string {
	w := m.width - m.noteList.Width() - 4
	if w < 20 {
		w = 20
	}
	box := border.Width(w).Height(m.noteList.Height()+2).Padding(0, 1)
	if m.focus == focusEditor || m.focus == focusTitle {
		box = box.BorderForeground(lipgloss.Color("205"))
	}

	if m.section == sectionTrash {
		return box.Render(m.renderTrashPreview())
	}

	header := m.titleInput.View()
	meta := statusStyle.Render(m.saveStateLabel())
	return box.Render(header + "\n" + meta + "\n\n" + m.editor.View())
}

func (m Model) renderTrashPreview() string {
	header := titleStyle.Render("Trash")

	tn, ok := m.cursorTrashed()
	if !ok {
		body := blurStyle.Render("Trash is empty.")
		if m.trashCol.Len() > 0 {
			body = blurStyle.Render("Select a note to preview it.")
		}
		return header + "\n\n" + body
	}

	meta := strings.Join([]string{
		"---",
		"Note title: " + displayTitle(tn.Title),
		"Trashed: " + tn.TrashedAt.Local().Format("2006-01-02 15:04"),
		"Last edited: " + tn.UpdatedAt.Local().Format("2006-01-02 15:04"),
		"---",
	}, "\n")

	content := tn.Content
	maxLines := m.editor.Height()
	if lines := strings.Split(content, "\n"); len(lines) > maxLines {
		content = strings.Join(lines[:maxLines], "\n")
	}

	return header + "\n" + meta + "\n\n" + content
}

func (m Model) saveStateLabel() string {
	if m.createInFlight {
		return "saving..."
	}
	if _, ok := m.undo.Peek(); ok {
		return "cleared, ctrl+u to undo"
	}
	if m.session.NoteID == "" && m.session.Blank() {
		return ""
	}
	if m.session.Dirty() {
		return "unsaved changes"
	}
	return "saved " + "• edited " + m.fmtSessionStamp()
}

func (m Model) fmtSessionStamp() string {
	if n, ok := m.store.Get(m.session.NoteID); ok {
		return n.UpdatedAt.Local().Format("15:04:05")
	}
	return "just now"
}

func (m Model) renderFooter() string {
	if m.confirmPurge != nil {
		prompt := fmt.Sprintf("Delete %d note(s) forever? This cannot be undone. (y/n)", len(m.confirmPurge))
		return lipgloss.NewStyle().Padding(0, 1).Render(alertStyle.Render(prompt))
	}

	var helpView string
	switch {
	case m.focus == focusEditor || m.focus == focusTitle:
		helpView = m.help.View(editKeyMap{KeyMap: m.keys})
	case m.section == sectionTrash:
		helpView = m.help.View(trashKeyMap{KeyMap: m.keys})
	default:
		helpView = m.help.View(m.keys)
	}

	line := helpView
	if m.status != "" {
		line = statusStyle.Render(m.status) + "  " + helpView
	}
	return lipgloss.NewStyle().Padding(0, 1).Render(line)
}
