package cli

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/tempo/internal/logger"
	"github.com/julianstephens/tempo/internal/notify"
	"github.com/julianstephens/tempo/internal/pomodoro"
	"github.com/julianstephens/tempo/internal/tui"
)

type TimerCmd struct{}

func (c *TimerCmd) Run(ctx *Context) error {
	store := pomodoro.NewStore(filepath.Join(ctx.ConfigDir, "pomodoro"))

	cfg, err := store.LoadConfig()
	if err != nil {
		// Fall back to defaults but keep the session usable.
		logger.Warn("Failed to load pomodoro config", "error", err)
	}
	stats, err := store.LoadStats()
	if err != nil {
		logger.Warn("Failed to load pomodoro stats", "error", err)
	}

	timer := pomodoro.New(cfg, stats)
	model := tui.NewModel(timer, store, notify.New())

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run timer: %w", err)
	}
	return nil
}

type StatsCmd struct{}

func (c *StatsCmd) Run(ctx *Context) error {
	store := pomodoro.NewStore(filepath.Join(ctx.ConfigDir, "pomodoro"))
	stats, err := store.LoadStats()
	if err != nil {
		return err
	}
	fmt.Printf("Completed sessions: %d\n", stats.CompletedCount)
	fmt.Printf("Total focus hours:  %.2f\n", stats.TotalFocusHours)
	return nil
}
