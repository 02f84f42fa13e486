package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/mholecek/worktrack/internal/cli"
	"github.com/mholecek/worktrack/internal/cli/backups"
	"github.com/mholecek/worktrack/internal/cli/budget"
	"github.com/mholecek/worktrack/internal/cli/categories"
	"github.com/mholecek/worktrack/internal/cli/debts"
	"github.com/mholecek/worktrack/internal/cli/finance"
	"github.com/mholecek/worktrack/internal/cli/logs"
	"github.com/mholecek/worktrack/internal/cli/settings"
	"github.com/mholecek/worktrack/internal/cli/system"
	"github.com/mholecek/worktrack/internal/cli/timers"
	"github.com/mholecek/worktrack/internal/config"
	"github.com/mholecek/worktrack/internal/logger"
	"github.com/mholecek/worktrack/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	DB      string `help:"SQLite database file path. Overrides WORKTRACK_DB." type:"string"`
	Debug   bool   `help:"Enable debug logging."`

	Init   system.InitCmd   `cmd:"" help:"Initialize worktrack storage."`
	Doctor system.DoctorCmd `cmd:"" help:"Run health checks and diagnostics."`
	Clear  system.ClearCmd  `cmd:"" help:"Delete all data and reseed defaults."`
	Log    struct {
		Add    logs.AddCmd    `cmd:"" help:"Record a work session."`
		List   logs.ListCmd   `cmd:"" help:"List work logs." default:"1"`
		Edit   logs.EditCmd   `cmd:"" help:"Edit an existing work log."`
		Delete logs.DeleteCmd `cmd:"" help:"Delete a work log."`
	} `cmd:"" help:"Manage work logs."`
	Finance struct {
		Add  finance.AddCmd  `cmd:"" help:"Record an income or expense."`
		List finance.ListCmd `cmd:"" help:"List finance records." default:"1"`
	} `cmd:"" help:"Manage finance records."`
	Debt struct {
		Add      debts.AddCmd      `cmd:"" help:"Record a debt."`
		List     debts.ListCmd     `cmd:"" help:"List debts with amounts paid." default:"1"`
		Pay      debts.PayCmd      `cmd:"" help:"Record a payment against a debt."`
		Payments debts.PaymentsCmd `cmd:"" help:"List payments for a debt."`
	} `cmd:"" help:"Manage debts and payments."`
	Category struct {
		List    categories.ListCmd    `cmd:"" help:"List categories." default:"1"`
		Add     categories.AddCmd     `cmd:"" help:"Add a category."`
		Disable categories.DisableCmd `cmd:"" help:"Deactivate a category."`
	} `cmd:"" help:"Manage task and expense categories."`
	Budget struct {
		Show      budget.ShowCmd      `cmd:"" help:"Show the shared budget balance." default:"1"`
		Reconcile budget.ReconcileCmd `cmd:"" help:"Recompute the balance from records."`
	} `cmd:"" help:"Inspect and repair the shared budget."`
	Backup struct {
		Create  backups.CreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.ListCmd    `cmd:"" help:"List available backups."`
		Restore backups.RestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage data backups."`
	Timer struct {
		Start  timers.StartCmd  `cmd:"" help:"Start a work timer."`
		Stop   timers.StopCmd   `cmd:"" help:"Stop the timer and save a work log."`
		Status timers.StatusCmd `cmd:"" help:"Show the running timer." default:"1"`
		Cancel timers.CancelCmd `cmd:"" help:"Discard the running timer."`
	} `cmd:"" help:"Track work sessions with a timer."`
	Settings struct {
		List  settings.ListCmd  `cmd:"" help:"List all settings." default:"1"`
		Get   settings.GetCmd   `cmd:"" help:"Show a setting."`
		Set   settings.SetCmd   `cmd:"" help:"Store a setting."`
		Unset settings.UnsetCmd `cmd:"" help:"Remove a setting."`
	} `cmd:"" help:"Manage application settings."`
}

func main() {
	// A .env next to the binary or in the working directory is optional.
	_ = godotenv.Load()

	ctx := kong.Parse(&CLI,
		kong.Name("worktrack"),
		kong.Description("Work-hour and shared-budget tracker"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": "v1.0.0"},
	)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if CLI.DB != "" {
		cfg.DBPath = CLI.DB
	}
	if CLI.Debug {
		cfg.Debug = true
	}

	if err := logger.Init(logger.Config{Debug: cfg.Debug, DataDir: filepath.Dir(cfg.DBPath)}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logging: %v\n", err)
		os.Exit(1)
	}

	store := storage.NewStore(cfg.DBPath)
	appCtx := &cli.Context{Store: store}

	// Every command except init expects an initialized database.
	if ctx.Selected() != nil && ctx.Selected().Name != "init" {
		if err := store.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()
	}

	if err := ctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
