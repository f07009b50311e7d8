package cli

import (
	"fmt"

	"github.com/julianstephens/tempo/internal/auth"
)

type InitCmd struct{}

func (c *InitCmd) Run(ctx *Context) error {
	if err := ctx.Gateway.Init(); err != nil {
		return err
	}
	fmt.Println("Storage initialized.")
	return nil
}

type ConfigCmd struct {
	Set   ConfigSetCmd   `cmd:"" help:"Store the database connection string in the OS keyring."`
	Clear ConfigClearCmd `cmd:"" help:"Remove the stored connection string from the OS keyring."`
}

type ConfigSetCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string (credentials included; it never touches disk)."`
}

func (c *ConfigSetCmd) Run(ctx *Context) error {
	if !auth.IsAvailable() {
		return fmt.Errorf("OS keyring is not available on this system")
	}
	if err := auth.SetConnectionString(c.ConnectionString); err != nil {
		return err
	}
	fmt.Println("Connection string stored in OS keyring.")
	return nil
}

type ConfigClearCmd struct{}

func (c *ConfigClearCmd) Run(ctx *Context) error {
	if err := auth.DeleteConnectionString(); err != nil {
		if err == auth.ErrNotFound {
			fmt.Println("No connection string stored.")
			return nil
		}
		return err
	}
	fmt.Println("Connection string removed from OS keyring.")
	return nil
}
