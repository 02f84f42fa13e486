package debts

import (
	"fmt"
	"sort"

	"github.com/mholecek/worktrack/internal/cli"
	"github.com/mholecek/worktrack/internal/constants"
	"github.com/mholecek/worktrack/internal/models"
)

type AddCmd struct {
	Name     string `arg:"" help:"Debt name."`
	Amount   int64  `short:"a" help:"Amount owed." required:""`
	Creditor string `short:"c" help:"Who the debt is owed to."`
	Note     string `short:"n" help:"Optional note."`
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	debt, err := ctx.Store.CreateDebt(models.Debt{
		Name:     c.Name,
		Amount:   c.Amount,
		Creditor: c.Creditor,
		Note:     c.Note,
	})
	if err != nil {
		return err
	}

	fmt.Printf("✓ Added debt %q (%s)\n", debt.Name, cli.FormatAmount(debt.Amount))
	return nil
}

type ListCmd struct{}

func (c *ListCmd) Run(ctx *cli.Context) error {
	debts, err := ctx.Store.ListDebts()
	if err != nil {
		return err
	}

	payments, err := ctx.Store.ListDebtPayments()
	if err != nil {
		return err
	}

	if len(debts) == 0 {
		fmt.Println("No debts recorded.")
		return nil
	}

	paidByDebt := make(map[string]int64)
	for _, p := range payments {
		paidByDebt[p.DebtID] += p.Amount
	}

	sort.Slice(debts, func(i, j int) bool {
		return debts[i].Created.Before(debts[j].Created)
	})

	fmt.Println(cli.HeaderStyle.Render(fmt.Sprintf("%d debt(s):", len(debts))))
	for _, d := range debts {
		paid := paidByDebt[d.ID]
		fmt.Printf("  %s  %-20s owed %s, paid %s",
			d.ID, d.Name, cli.FormatAmount(d.Amount), cli.FormatAmount(paid))
		if d.Creditor != "" {
			fmt.Printf("  (%s)", cli.MutedStyle.Render(d.Creditor))
		}
		fmt.Println()
	}

	return nil
}

type PayCmd struct {
	Debt   string `short:"d" help:"Debt id the payment belongs to."`
	Amount int64  `short:"a" help:"Payment amount." required:""`
	Note   string `short:"n" help:"Optional note."`
}

func (c *PayCmd) Run(ctx *cli.Context) error {
	payment, err := ctx.Store.CreateDebtPayment(models.DebtPayment{
		DebtID: c.Debt,
		Amount: c.Amount,
		Note:   c.Note,
	})
	if err != nil {
		return err
	}

	fmt.Printf("✓ Recorded payment of %s\n", cli.FormatAmount(payment.Amount))
	return nil
}

type PaymentsCmd struct{}

func (c *PaymentsCmd) Run(ctx *cli.Context) error {
	payments, err := ctx.Store.ListDebtPayments()
	if err != nil {
		return err
	}

	if len(payments) == 0 {
		fmt.Println("No payments recorded.")
		return nil
	}

	sort.Slice(payments, func(i, j int) bool {
		return payments[i].Created.Before(payments[j].Created)
	})

	for _, p := range payments {
		fmt.Printf("  %s  %s  debt=%s  %s\n",
			p.Created.Local().Format(constants.DateTimeFormat),
			cli.FormatAmount(p.Amount), p.DebtID, p.Note)
	}

	return nil
}
