package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/tempo/internal/constants"
	"github.com/julianstephens/tempo/internal/utils"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.state == stateSettings && m.form != nil {
		view := m.form.View()
		if m.formError != "" {
			view = lipgloss.JoinVertical(lipgloss.Left, view, dangerStyle.Render(m.formError))
		}
		return docStyle.Render(view)
	}

	return docStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewPhase(),
		"",
		m.viewClock(),
		m.viewProgress(),
		"",
		m.viewStats(),
		"",
		m.help.View(m),
	))
}

func (m Model) viewPhase() string {
	label := "Work"
	style := workStyle
	switch m.timer.Phase() {
	case constants.PhaseBreak:
		label = "Break"
		style = breakStyle
	case constants.PhaseLongBreak:
		label = "Long Break"
		style = longBreakStyle
	}

	if !m.timer.Running() {
		return lipgloss.JoinHorizontal(lipgloss.Top, style.Render(label), pausedStyle.Render("  paused"))
	}
	return style.Render(label)
}

func (m Model) viewClock() string {
	return clockStyle.Render(utils.FormatClock(m.timer.Remaining()))
}

func (m Model) viewProgress() string {
	total := m.timer.PhaseDuration()
	if total <= 0 {
		return ""
	}
	done := float64(total-m.timer.Remaining()) / float64(total)
	return m.bar.ViewAs(done)
}

func (m Model) viewStats() string {
	stats := m.timer.Stats()
	return statsStyle.Render(fmt.Sprintf(
		"%d sessions completed · %.1f focus hours",
		stats.CompletedCount, stats.TotalFocusHours,
	))
}
