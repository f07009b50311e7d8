package cli

import (
	"errors"
	"fmt"

	"github.com/julianstephens/tempo/internal/binder"
	"github.com/julianstephens/tempo/internal/models"
	"github.com/julianstephens/tempo/internal/utils"
)

type RoutineCmd struct {
	Add    RoutineAddCmd    `cmd:"" help:"Add a new routine."`
	List   RoutineListCmd   `cmd:"" help:"List routines."`
	Done   RoutineDoneCmd   `cmd:"" help:"Toggle a routine's completed state."`
	Edit   RoutineEditCmd   `cmd:"" help:"Edit an existing routine."`
	Delete RoutineDeleteCmd `cmd:"" help:"Delete a routine."`
}

type RoutineAddCmd struct {
	Name      string `arg:"" help:"Routine name."`
	Time      string `help:"Time of day in HH:MM format."`
	Frequency string `help:"Recurrence: daily, weekly, or monthly."`
}

func (c *RoutineAddCmd) Run(ctx *Context) error {
	if err := ctx.RequireUser(); err != nil {
		return err
	}
	freq, err := parseFrequency(c.Frequency)
	if err != nil {
		return err
	}
	if c.Time != "" && !utils.ValidateTimeFormat(c.Time) {
		return fmt.Errorf("invalid time %q (expected HH:MM)", c.Time)
	}

	b := binder.NewRoutines(ctx.Gateway, ctx.Session, "")
	defer b.Close()

	runCtx, cancel := bindContext()
	defer cancel()

	if !b.Create(runCtx, c.Name, c.Time, freq) {
		return errors.New(b.Err())
	}
	fmt.Printf("Added routine: %s\n", c.Name)
	return nil
}

type RoutineListCmd struct {
	Frequency string `help:"Show only routines with this recurrence."`
}

func (c *RoutineListCmd) Run(ctx *Context) error {
	if err := ctx.RequireUser(); err != nil {
		return err
	}
	freq, err := parseFrequency(c.Frequency)
	if err != nil {
		return err
	}

	b := binder.NewRoutines(ctx.Gateway, ctx.Session, freq)
	defer b.Close()

	runCtx, cancel := bindContext()
	defer cancel()
	if err := awaitSnapshot(runCtx, b); err != nil {
		return err
	}

	routines := b.All()
	if len(routines) == 0 {
		fmt.Println("No routines found.")
		return nil
	}

	for _, r := range routines {
		marker := "○"
		if r.Completed {
			marker = "✓"
		}
		detail := ""
		if r.Time != "" {
			detail = " at " + r.Time
		}
		fmt.Printf("%s %s%s  %s\n", marker, r.Name, detail, r.ID)
	}
	return nil
}

type RoutineDoneCmd struct {
	ID string `arg:"" help:"Routine id."`
}

func (c *RoutineDoneCmd) Run(ctx *Context) error {
	if err := ctx.RequireUser(); err != nil {
		return err
	}

	b := binder.NewRoutines(ctx.Gateway, ctx.Session, "")
	defer b.Close()

	runCtx, cancel := bindContext()
	defer cancel()
	// Toggle reads the current state from the snapshot.
	if err := awaitSnapshot(runCtx, b); err != nil {
		return err
	}

	if !b.Toggle(runCtx, c.ID) {
		return errors.New(b.Err())
	}
	fmt.Println("Toggled routine.")
	return nil
}

type RoutineEditCmd struct {
	ID        string `help:"Routine id." arg:""`
	Name      string `help:"New name."`
	Time      string `help:"New time of day in HH:MM format."`
	Frequency string `help:"New recurrence: daily, weekly, or monthly."`
}

func (c *RoutineEditCmd) Run(ctx *Context) error {
	if err := ctx.RequireUser(); err != nil {
		return err
	}

	var patch models.RoutinePatch
	if c.Name != "" {
		patch.Name = &c.Name
	}
	if c.Time != "" {
		patch.Time = &c.Time
	}
	if c.Frequency != "" {
		freq, err := parseFrequency(c.Frequency)
		if err != nil {
			return err
		}
		patch.Frequency = &freq
	}

	b := binder.NewRoutines(ctx.Gateway, ctx.Session, "")
	defer b.Close()

	runCtx, cancel := bindContext()
	defer cancel()

	if !b.Edit(runCtx, c.ID, patch) {
		return errors.New(b.Err())
	}
	fmt.Println("Updated routine.")
	return nil
}

type RoutineDeleteCmd struct {
	ID string `arg:"" help:"Routine id."`
}

func (c *RoutineDeleteCmd) Run(ctx *Context) error {
	if err := ctx.RequireUser(); err != nil {
		return err
	}

	b := binder.NewRoutines(ctx.Gateway, ctx.Session, "")
	defer b.Close()

	runCtx, cancel := bindContext()
	defer cancel()

	if !b.Remove(runCtx, c.ID) {
		return errors.New(b.Err())
	}
	fmt.Println("Deleted routine.")
	return nil
}
