package cli

import (
	"errors"
	"fmt"

	"github.com/julianstephens/tempo/internal/binder"
	"github.com/julianstephens/tempo/internal/models"
)

type TaskCmd struct {
	Add    TaskAddCmd    `cmd:"" help:"Add a new task."`
	List   TaskListCmd   `cmd:"" help:"List tasks."`
	Done   TaskDoneCmd   `cmd:"" help:"Toggle a task's completed state."`
	Edit   TaskEditCmd   `cmd:"" help:"Edit an existing task."`
	Delete TaskDeleteCmd `cmd:"" help:"Delete a task."`
}

type TaskAddCmd struct {
	Name      string `arg:"" help:"Task name."`
	Category  string `help:"Category label."`
	Frequency string `help:"Recurrence: daily, weekly, or monthly."`
}

func (c *TaskAddCmd) Run(ctx *Context) error {
	if err := ctx.RequireUser(); err != nil {
		return err
	}
	freq, err := parseFrequency(c.Frequency)
	if err != nil {
		return err
	}

	b := binder.NewTasks(ctx.Gateway, ctx.Session, "")
	defer b.Close()

	runCtx, cancel := bindContext()
	defer cancel()

	if !b.Create(runCtx, c.Name, c.Category, freq) {
		return errors.New(b.Err())
	}
	fmt.Printf("Added task: %s\n", c.Name)
	return nil
}

type TaskListCmd struct {
	Pending   bool   `help:"Show only pending tasks."`
	Completed bool   `help:"Show only completed tasks."`
	Category  string `help:"Show only tasks in this category."`
	Frequency string `help:"Show only tasks with this recurrence."`
}

func (c *TaskListCmd) Run(ctx *Context) error {
	if err := ctx.RequireUser(); err != nil {
		return err
	}
	freq, err := parseFrequency(c.Frequency)
	if err != nil {
		return err
	}

	b := binder.NewTasks(ctx.Gateway, ctx.Session, freq)
	defer b.Close()

	runCtx, cancel := bindContext()
	defer cancel()
	if err := awaitSnapshot(runCtx, b); err != nil {
		return err
	}

	var tasks []models.Task
	switch {
	case c.Pending:
		tasks = b.Pending()
	case c.Completed:
		tasks = b.Completed()
	case c.Category != "":
		tasks = b.ByCategory(c.Category)
	default:
		tasks = b.All()
	}

	if len(tasks) == 0 {
		fmt.Println("No tasks found.")
		return nil
	}

	for _, t := range tasks {
		marker := "[ ]"
		if t.Completed {
			marker = "[x]"
		}
		detail := ""
		if t.Category != "" {
			detail = " (" + t.Category + ")"
		}
		fmt.Printf("%s %s%s  %s\n", marker, t.Name, detail, t.ID)
	}
	return nil
}

type TaskDoneCmd struct {
	ID string `arg:"" help:"Task id."`
}

func (c *TaskDoneCmd) Run(ctx *Context) error {
	if err := ctx.RequireUser(); err != nil {
		return err
	}

	b := binder.NewTasks(ctx.Gateway, ctx.Session, "")
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
	fmt.Println("Toggled task.")
	return nil
}

type TaskEditCmd struct {
	ID        string `arg:"" help:"Task id."`
	Name      string `help:"New name."`
	Category  string `help:"New category label."`
	Frequency string `help:"New recurrence: daily, weekly, or monthly."`
}

func (c *TaskEditCmd) Run(ctx *Context) error {
	if err := ctx.RequireUser(); err != nil {
		return err
	}

	var patch models.TaskPatch
	if c.Name != "" {
		patch.Name = &c.Name
	}
	if c.Category != "" {
		patch.Category = &c.Category
	}
	if c.Frequency != "" {
		freq, err := parseFrequency(c.Frequency)
		if err != nil {
			return err
		}
		patch.Frequency = &freq
	}

	b := binder.NewTasks(ctx.Gateway, ctx.Session, "")
	defer b.Close()

	runCtx, cancel := bindContext()
	defer cancel()

	if !b.Edit(runCtx, c.ID, patch) {
		return errors.New(b.Err())
	}
	fmt.Println("Updated task.")
	return nil
}

type TaskDeleteCmd struct {
	ID string `arg:"" help:"Task id."`
}

func (c *TaskDeleteCmd) Run(ctx *Context) error {
	if err := ctx.RequireUser(); err != nil {
		return err
	}

	b := binder.NewTasks(ctx.Gateway, ctx.Session, "")
	defer b.Close()

	runCtx, cancel := bindContext()
	defer cancel()

	if !b.Remove(runCtx, c.ID) {
		return errors.New(b.Err())
	}
	fmt.Println("Deleted task.")
	return nil
}
