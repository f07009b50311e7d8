package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/julianstephens/tempo/internal/binder"
	"github.com/julianstephens/tempo/internal/models"
	"github.com/julianstephens/tempo/internal/notify"
	"github.com/julianstephens/tempo/internal/utils"
)

type ReminderCmd struct {
	Add    ReminderAddCmd    `cmd:"" help:"Add a new reminder."`
	List   ReminderListCmd   `cmd:"" help:"List reminders."`
	Toggle ReminderToggleCmd `cmd:"" help:"Enable or disable a reminder."`
	Edit   ReminderEditCmd   `cmd:"" help:"Edit an existing reminder."`
	Delete ReminderDeleteCmd `cmd:"" help:"Delete a reminder."`
	Watch  ReminderWatchCmd  `cmd:"" help:"Run in the foreground and deliver due reminders."`
}

type ReminderAddCmd struct {
	Name string `arg:"" help:"Reminder name."`
	Time string `arg:"" help:"Time of day in HH:MM format."`
	Days string `help:"Comma-separated weekdays (mon,tue,... or 0-6). Empty means every day."`
}

func (c *ReminderAddCmd) Run(ctx *Context) error {
	if err := ctx.RequireUser(); err != nil {
		return err
	}

	var days []time.Weekday
	if c.Days != "" {
		var err error
		days, err = utils.ParseWeekdays(c.Days)
		if err != nil {
			return err
		}
	}

	sched := notify.NewScheduler(notify.New())
	b := binder.NewReminders(ctx.Gateway, ctx.Session, sched)
	defer b.Close()

	runCtx, cancel := bindContext()
	defer cancel()

	if !b.Create(runCtx, c.Name, c.Time, days) {
		return errors.New(b.Err())
	}
	fmt.Printf("Added reminder: %s at %s\n", c.Name, c.Time)
	return nil
}

type ReminderListCmd struct {
	Today    bool `help:"Show only reminders that apply today."`
	Tomorrow bool `help:"Show only reminders that apply tomorrow."`
}

func (c *ReminderListCmd) Run(ctx *Context) error {
	if err := ctx.RequireUser(); err != nil {
		return err
	}

	sched := notify.NewScheduler(notify.New())
	b := binder.NewReminders(ctx.Gateway, ctx.Session, sched)
	defer b.Close()

	runCtx, cancel := bindContext()
	defer cancel()
	if err := awaitSnapshot(runCtx, b); err != nil {
		return err
	}

	var reminders []models.Reminder
	switch {
	case c.Today:
		reminders = b.Today()
	case c.Tomorrow:
		reminders = b.Tomorrow()
	default:
		reminders = b.All()
	}

	if len(reminders) == 0 {
		fmt.Println("No reminders found.")
		return nil
	}

	for _, r := range reminders {
		state := "on"
		if !r.Enabled {
			state = "off"
		}
		fmt.Printf("%s %s (%s, %s)  %s\n", r.Time, r.Name, utils.FormatWeekdays(r.Days), state, r.ID)
	}
	return nil
}

type ReminderToggleCmd struct {
	ID string `arg:"" help:"Reminder id."`
}

func (c *ReminderToggleCmd) Run(ctx *Context) error {
	if err := ctx.RequireUser(); err != nil {
		return err
	}

	sched := notify.NewScheduler(notify.New())
	b := binder.NewReminders(ctx.Gateway, ctx.Session, sched)
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
	fmt.Println("Toggled reminder.")
	return nil
}

type ReminderEditCmd struct {
	ID   string `arg:"" help:"Reminder id."`
	Name string `help:"New name."`
	Time string `help:"New time of day in HH:MM format."`
	Days string `help:"New comma-separated weekdays. Use 'all' for every day."`
}

func (c *ReminderEditCmd) Run(ctx *Context) error {
	if err := ctx.RequireUser(); err != nil {
		return err
	}

	var patch models.ReminderPatch
	if c.Name != "" {
		patch.Name = &c.Name
	}
	if c.Time != "" {
		patch.Time = &c.Time
	}
	if c.Days != "" {
		var days []time.Weekday
		if c.Days != "all" {
			var err error
			days, err = utils.ParseWeekdays(c.Days)
			if err != nil {
				return err
			}
		}
		patch.Days = &days
	}

	sched := notify.NewScheduler(notify.New())
	b := binder.NewReminders(ctx.Gateway, ctx.Session, sched)
	defer b.Close()

	runCtx, cancel := bindContext()
	defer cancel()

	if !b.Edit(runCtx, c.ID, patch) {
		return errors.New(b.Err())
	}
	fmt.Println("Updated reminder.")
	return nil
}

type ReminderDeleteCmd struct {
	ID string `arg:"" help:"Reminder id."`
}

func (c *ReminderDeleteCmd) Run(ctx *Context) error {
	if err := ctx.RequireUser(); err != nil {
		return err
	}

	sched := notify.NewScheduler(notify.New())
	b := binder.NewReminders(ctx.Gateway, ctx.Session, sched)
	defer b.Close()

	runCtx, cancel := bindContext()
	defer cancel()

	if !b.Remove(runCtx, c.ID) {
		return errors.New(b.Err())
	}
	fmt.Println("Deleted reminder.")
	return nil
}

// ReminderWatchCmd keeps the process alive so scheduled reminders actually
// fire. The binder re-derives the timer set on every snapshot, so edits made
// from another terminal are picked up live.
type ReminderWatchCmd struct{}

func (c *ReminderWatchCmd) Run(ctx *Context) error {
	if err := ctx.RequireUser(); err != nil {
		return err
	}

	sched := notify.NewScheduler(notify.New())
	b := binder.NewReminders(ctx.Gateway, ctx.Session, sched)
	defer b.Close()

	waitCtx, cancel := bindContext()
	defer cancel()
	if err := awaitSnapshot(waitCtx, b); err != nil {
		return err
	}

	fmt.Printf("Watching %d reminder(s). Press Ctrl+C to stop.\n", len(b.All()))

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-sigCtx.Done()

	fmt.Println("\nStopped.")
	return nil
}
