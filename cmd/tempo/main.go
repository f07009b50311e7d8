package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/tempo/internal/auth"
	"github.com/julianstephens/tempo/internal/cli"
	"github.com/julianstephens/tempo/internal/constants"
	apperrors "github.com/julianstephens/tempo/internal/errors"
	"github.com/julianstephens/tempo/internal/gateway"
	"github.com/julianstephens/tempo/internal/logger"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"SQLite database path or PostgreSQL connection string. For PostgreSQL, credentials must NOT be embedded in the connection string. Use the OS keyring ('tempo config set') or .pgpass instead." type:"path" default:"~/.config/tempo/tempo.db"`
	Debug   bool   `help:"Enable debug logging to the console."`

	Init     cli.InitCmd     `cmd:"" help:"Initialize tempo storage."`
	Login    cli.LoginCmd    `cmd:"" help:"Sign in with an email address."`
	Logout   cli.LogoutCmd   `cmd:"" help:"Sign out."`
	Whoami   cli.WhoamiCmd   `cmd:"" help:"Show the signed-in user."`
	Habit    cli.HabitCmd    `cmd:"" help:"Manage habits."`
	Routine  cli.RoutineCmd  `cmd:"" help:"Manage routines."`
	Task     cli.TaskCmd     `cmd:"" help:"Manage tasks."`
	Reminder cli.ReminderCmd `cmd:"" help:"Manage reminders and deliver them."`
	Timer    cli.TimerCmd    `cmd:"" help:"Launch the interactive pomodoro timer."`
	Stats    cli.StatsCmd    `cmd:"" help:"Show lifetime pomodoro stats."`
	Creds    cli.ConfigCmd   `cmd:"" name:"config" help:"Manage stored database credentials."`
}

// gatewayNeeded reports whether the selected command talks to the stored
// collections.
func gatewayNeeded(command string) bool {
	switch strings.Fields(command)[0] {
	case "init", "login", "logout", "whoami", "timer", "stats", "config":
		return false
	}
	return true
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("tempo"),
		kong.Description("Personal productivity companion: habits, routines, tasks, reminders, and a pomodoro timer"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	configDir := filepath.Dir(CLI.Config)
	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: configDir}); err != nil {
		apperrors.Fatalf("failed to initialize logging: %v", err)
	}

	store, err := selectStore()
	if err != nil {
		apperrors.Fatal(err)
	}
	defer store.Close()

	session := auth.NewSession()
	if err := session.Restore(); err != nil {
		logger.Warn("Failed to restore saved identity", "error", err)
	}

	appCtx := &cli.Context{
		Gateway:   store,
		Session:   session,
		ConfigDir: configDir,
	}

	if gatewayNeeded(ctx.Command()) {
		if err := store.Load(); err != nil {
			apperrors.Fatal(err)
		}
	}

	if err := ctx.Run(appCtx); err != nil {
		apperrors.Fatal(err)
	}
}

// selectStore picks the gateway backend: an explicit postgres connection
// string wins, then one stored in the OS keyring, then the SQLite path.
func selectStore() (gateway.Provider, error) {
	conn := CLI.Config
	if !isPostgres(conn) {
		if stored, err := auth.GetConnectionString(); err == nil && isPostgres(stored) {
			conn = stored
		}
	}

	if isPostgres(conn) {
		if conn == CLI.Config && gateway.HasEmbeddedCredentials(conn) {
			return nil, fmt.Errorf("connection strings with embedded credentials are not allowed on the command line; store them with 'tempo config set' instead")
		}
		return gateway.NewPostgresStore(conn), nil
	}
	return gateway.NewSQLiteStore(conn), nil
}

func isPostgres(s string) bool {
	return strings.HasPrefix(s, "postgres://") || strings.HasPrefix(s, "postgresql://")
}
