package system

import (
	"fmt"

	"github.com/mholecek/worktrack/internal/cli"
)

type DoctorCmd struct{}

// Run performs health checks: the database opens, the budget row reads, and
// the stored balance agrees with the records it aggregates.
func (c *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Printf("Database: %s\n", ctx.Store.Path())

	budget, err := ctx.Store.GetBudget()
	if err != nil {
		return fmt.Errorf("failed to read shared budget: %w", err)
	}
	fmt.Printf("✓ Shared budget readable (balance %s)\n", cli.FormatAmount(budget.Balance))

	recomputed, err := ctx.Store.RecomputeBalance()
	if err != nil {
		return fmt.Errorf("failed to recompute balance: %w", err)
	}

	if recomputed == budget.Balance {
		fmt.Println("✓ Budget balance matches work logs and finance records")
		return nil
	}

	fmt.Printf("✗ Budget balance drifted: stored %d, records sum to %d (difference %d)\n",
		budget.Balance, recomputed, budget.Balance-recomputed)
	fmt.Println("  Run 'worktrack budget reconcile' to repair.")
	return nil
}
