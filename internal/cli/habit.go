package cli

import (
	"errors"
	"fmt"

	"github.com/julianstephens/tempo/internal/binder"
	"github.com/julianstephens/tempo/internal/models"
)

type HabitCmd struct {
	Add      HabitAddCmd      `cmd:"" help:"Add a new habit."`
	List     HabitListCmd     `cmd:"" help:"List habits."`
	Progress HabitProgressCmd `cmd:"" help:"Set a habit's progress percentage."`
	Edit     HabitEditCmd     `cmd:"" help:"Edit an existing habit."`
	Delete   HabitDeleteCmd   `cmd:"" help:"Delete a habit."`
}

type HabitAddCmd struct {
	Name      string `arg:"" help:"Habit name."`
	Frequency string `help:"Recurrence: daily, weekly, or monthly." default:"daily"`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	if err := ctx.RequireUser(); err != nil {
		return err
	}
	freq, err := parseFrequency(c.Frequency)
	if err != nil {
		return err
	}

	b := binder.NewHabits(ctx.Gateway, ctx.Session)
	defer b.Close()

	runCtx, cancel := bindContext()
	defer cancel()

	if !b.Create(runCtx, c.Name, freq) {
		return errors.New(b.Err())
	}
	fmt.Printf("Added habit: %s\n", c.Name)
	return nil
}

type HabitListCmd struct {
	Completed bool `help:"Show only completed habits."`
	Active    bool `help:"Show only habits still in progress."`
}

func (c *HabitListCmd) Run(ctx *Context) error {
	if err := ctx.RequireUser(); err != nil {
		return err
	}

	b := binder.NewHabits(ctx.Gateway, ctx.Session)
	defer b.Close()

	runCtx, cancel := bindContext()
	defer cancel()
	if err := awaitSnapshot(runCtx, b); err != nil {
		return err
	}

	var habits []models.Habit
	switch {
	case c.Completed:
		habits = b.Completed()
	case c.Active:
		habits = b.Active()
	default:
		habits = b.All()
	}

	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	for _, h := range habits {
		marker := "○"
		if h.Completed() {
			marker = "✓"
		}
		fmt.Printf("%s %s (%s, %d%%)  %s\n", marker, h.Name, h.Frequency, h.Progress, h.ID)
	}
	return nil
}

type HabitProgressCmd struct {
	ID       string `arg:"" help:"Habit id."`
	Progress int    `arg:"" help:"Progress percentage (0-100)."`
}

func (c *HabitProgressCmd) Run(ctx *Context) error {
	if err := ctx.RequireUser(); err != nil {
		return err
	}

	b := binder.NewHabits(ctx.Gateway, ctx.Session)
	defer b.Close()

	runCtx, cancel := bindContext()
	defer cancel()

	if !b.SetProgress(runCtx, c.ID, c.Progress) {
		return errors.New(b.Err())
	}
	fmt.Printf("Set progress to %d%%\n", c.Progress)
	return nil
}

type HabitEditCmd struct {
	ID        string `arg:"" help:"Habit id."`
	Name      string `help:"New name."`
	Frequency string `help:"New recurrence: daily, weekly, or monthly."`
}

func (c *HabitEditCmd) Run(ctx *Context) error {
	if err := ctx.RequireUser(); err != nil {
		return err
	}

	var patch models.HabitPatch
	if c.Name != "" {
		patch.Name = &c.Name
	}
	if c.Frequency != "" {
		freq, err := parseFrequency(c.Frequency)
		if err != nil {
			return err
		}
		patch.Frequency = &freq
	}

	b := binder.NewHabits(ctx.Gateway, ctx.Session)
	defer b.Close()

	runCtx, cancel := bindContext()
	defer cancel()

	if !b.Edit(runCtx, c.ID, patch) {
		return errors.New(b.Err())
	}
	fmt.Println("Updated habit.")
	return nil
}

type HabitDeleteCmd struct {
	ID string `arg:"" help:"Habit id."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	if err := ctx.RequireUser(); err != nil {
		return err
	}

	b := binder.NewHabits(ctx.Gateway, ctx.Session)
	defer b.Close()

	runCtx, cancel := bindContext()
	defer cancel()

	if !b.Remove(runCtx, c.ID) {
		return errors.New(b.Err())
	}
	fmt.Println("Deleted habit.")
	return nil
}
