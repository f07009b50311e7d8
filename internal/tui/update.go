package tui

import (
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/tempo/internal/constants"
	"github.com/julianstephens/tempo/internal/logger"
	"github.com/julianstephens/tempo/internal/pomodoro"
)

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = msg.Width - 8
		if m.bar.Width > 60 {
			m.bar.Width = 60
		}
		return m, nil

	case tickMsg:
		if m.timer.Tick() {
			if err := m.store.SaveStats(m.timer.Stats()); err != nil {
				logger.Warn("Failed to persist pomodoro stats", "error", err)
			}
			return m, tea.Batch(tickCmd(), m.notifyPhaseCmd())
		}
		return m, tickCmd()

	case tea.KeyMsg:
		if m.state == stateTimer {
			return m.handleTimerKeys(msg)
		}
	}

	if m.state == stateSettings && m.form != nil {
		return m.updateSettingsForm(msg)
	}
	return m, nil
}

func (m Model) handleTimerKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Toggle):
		m.timer.Toggle()
	case key.Matches(msg, m.keys.Reset):
		m.timer.Reset()
	case key.Matches(msg, m.keys.Work):
		m.timer.Switch(constants.PhaseWork)
	case key.Matches(msg, m.keys.Break):
		m.timer.Switch(constants.PhaseBreak)
	case key.Matches(msg, m.keys.LongBreak):
		m.timer.Switch(constants.PhaseLongBreak)
	case key.Matches(msg, m.keys.Settings):
		cfg := m.timer.Config()
		m.settingsForm = &SettingsFormModel{
			WorkMin:               strconv.Itoa(cfg.WorkMin),
			BreakMin:              strconv.Itoa(cfg.BreakMin),
			LongBreakMin:          strconv.Itoa(cfg.LongBreakMin),
			CyclesBeforeLongBreak: strconv.Itoa(cfg.CyclesBeforeLongBreak),
		}
		m.form = newSettingsForm(m.settingsForm)
		m.formError = ""
		m.state = stateSettings
		return m, m.form.Init()
	}
	return m, nil
}

func (m Model) updateSettingsForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		cfg, err := m.settingsForm.toConfig()
		if err == nil {
			err = m.timer.SetConfig(cfg)
		}
		if err == nil {
			err = m.store.SaveConfig(cfg)
		}
		if err != nil {
			// Stay in the form so the user can correct and retry
			m.formError = err.Error()
			m.form.State = huh.StateNormal
			return m, cmd
		}
		m.formError = ""
		m.state = stateTimer
	case huh.StateAborted:
		m.formError = ""
		m.state = stateTimer
	}
	return m, cmd
}

func (fm *SettingsFormModel) toConfig() (pomodoro.Config, error) {
	var cfg pomodoro.Config
	var err error
	if cfg.WorkMin, err = strconv.Atoi(fm.WorkMin); err != nil {
		return cfg, err
	}
	if cfg.BreakMin, err = strconv.Atoi(fm.BreakMin); err != nil {
		return cfg, err
	}
	if cfg.LongBreakMin, err = strconv.Atoi(fm.LongBreakMin); err != nil {
		return cfg, err
	}
	if cfg.CyclesBeforeLongBreak, err = strconv.Atoi(fm.CyclesBeforeLongBreak); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// notifyPhaseCmd announces a completed phase through the desktop notifier.
func (m Model) notifyPhaseCmd() tea.Cmd {
	var title, body string
	switch m.timer.Phase() {
	case constants.PhaseBreak:
		title = "Focus session complete"
		body = "Time for a short break."
	case constants.PhaseLongBreak:
		title = "Focus session complete"
		body = "Time for a long break."
	default:
		title = "Break over"
		body = "Back to work."
	}

	return func() tea.Msg {
		if m.display == nil {
			return nil
		}
		if err := m.display.Display(title, body); err != nil {
			logger.Debug("Phase notification not delivered", "error", err)
		}
		return nil
	}
}
