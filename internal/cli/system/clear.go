package system

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/mholecek/worktrack/internal/cli"
)

type ClearCmd struct {
	Yes bool `help:"Skip the confirmation prompt."`
}

// Run wipes every collection and re-seeds the first-run defaults. A backup
// is taken first so the wipe is recoverable.
func (c *ClearCmd) Run(ctx *cli.Context) error {
	if !c.Yes {
		var confirmed bool
		prompt := huh.NewConfirm().
			Title("Delete ALL data?").
			Description("Every work log, finance record, debt and setting will be removed. This cannot be undone.").
			Value(&confirmed)
		if err := prompt.Run(); err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()

	if err := ctx.Store.ClearAll(); err != nil {
		return fmt.Errorf("failed to clear data: %w", err)
	}
	if err := ctx.Store.EnsureInitialized(); err != nil {
		return fmt.Errorf("failed to re-seed defaults: %w", err)
	}

	fmt.Println("✓ All data cleared, defaults re-seeded.")
	return nil
}
