// Package tui renders the pomodoro timer as an interactive terminal view.
package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/tempo/internal/constants"
	"github.com/julianstephens/tempo/internal/notify"
	"github.com/julianstephens/tempo/internal/pomodoro"
)

type sessionState int

const (
	stateTimer sessionState = iota
	stateSettings
)

// SettingsFormModel backs the huh settings form. Numeric fields are kept as
// strings until submit.
type SettingsFormModel struct {
	WorkMin               string
	BreakMin              string
	LongBreakMin          string
	CyclesBeforeLongBreak string
}

type Model struct {
	timer   *pomodoro.Timer
	store   *pomodoro.Store
	display notify.Displayer

	state        sessionState
	keys         KeyMap
	help         help.Model
	bar          progress.Model
	form         *huh.Form
	settingsForm *SettingsFormModel
	formError    string
	quitting     bool
	width        int
	height       int
}

func NewModel(timer *pomodoro.Timer, store *pomodoro.Store, display notify.Displayer) Model {
	return Model{
		timer:   timer,
		store:   store,
		display: display,
		state:   stateTimer,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		bar:     progress.New(progress.WithDefaultGradient()),
	}
}

func (m Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Toggle, m.keys.Reset, m.keys.Settings, m.keys.Quit, m.keys.Help}
}

func (m Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Toggle, m.keys.Reset},
		{m.keys.Work, m.keys.Break, m.keys.LongBreak},
		{m.keys.Settings, m.keys.Quit, m.keys.Help},
	}
}

func (m Model) Init() tea.Cmd {
	return tickCmd()
}

func newSettingsForm(fm *SettingsFormModel) *huh.Form {
	minutesField := func(title string, value *string, max int) *huh.Input {
		return huh.NewInput().
			Title(title).
			Value(value).
			Validate(func(s string) error {
				return validateBoundedInt(s, max)
			})
	}

	return huh.NewForm(
		huh.NewGroup(
			minutesField("Work (min)", &fm.WorkMin, constants.WorkMinMax),
			minutesField("Break (min)", &fm.BreakMin, constants.BreakMinMax),
			minutesField("Long break (min)", &fm.LongBreakMin, constants.LongBreakMinMax),
			minutesField("Cycles before long break", &fm.CyclesBeforeLongBreak, constants.CyclesMax),
		),
	).WithTheme(huh.ThemeDracula())
}

func validateBoundedInt(s string, max int) error {
	i, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	if i < 1 || i > max {
		return &boundsError{max: max}
	}
	return nil
}

type boundsError struct {
	max int
}

func (e *boundsError) Error() string {
	return "must be between 1 and " + strconv.Itoa(e.max)
}
