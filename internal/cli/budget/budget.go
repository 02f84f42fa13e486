package budget

import (
	"fmt"
	"time"

	"github.com/mholecek/worktrack/internal/cli"
)

type ShowCmd struct{}

func (c *ShowCmd) Run(ctx *cli.Context) error {
	budget, err := ctx.Store.GetBudget()
	if err != nil {
		return err
	}

	fmt.Println(cli.HeaderStyle.Render("Shared budget"))
	fmt.Printf("  Balance:      %s\n", cli.FormatAmount(budget.Balance))
	if !budget.LastUpdated.IsZero() {
		fmt.Printf("  Last updated: %s\n", budget.LastUpdated.Local().Format(time.RFC1123))
	}
	return nil
}

type ReconcileCmd struct{}

// Run recomputes the balance from work logs and finance records and
// overwrites the stored value. This is the repair for a budget that drifted
// from its records (or a restore of a snapshot captured mid-inconsistency).
func (c *ReconcileCmd) Run(ctx *cli.Context) error {
	res, err := ctx.Store.ReconcileBudget()
	if err != nil {
		return err
	}

	if res.Drift() == 0 {
		fmt.Printf("✓ Budget already consistent at %s\n", cli.FormatAmount(res.Recomputed))
		return nil
	}

	fmt.Printf("✓ Budget reconciled: %s -> %s (drift %d)\n",
		cli.FormatAmount(res.Previous), cli.FormatAmount(res.Recomputed), res.Drift())
	return nil
}
