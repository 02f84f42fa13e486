package finance

import (
	"fmt"
	"sort"
	"time"

	"github.com/mholecek/worktrack/internal/cli"
	"github.com/mholecek/worktrack/internal/constants"
	"github.com/mholecek/worktrack/internal/models"
	"github.com/mholecek/worktrack/internal/storage"
)

type AddCmd struct {
	Type     string `short:"t" help:"Record type (income|expense)." required:""`
	Amount   int64  `short:"a" help:"Amount in whole currency units." required:""`
	Category string `short:"c" help:"Category name."`
	Date     string `short:"d" help:"Record date (YYYY-MM-DD), defaults to today."`
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	recType, err := models.ParseRecordType(c.Type)
	if err != nil {
		return err
	}

	rec := models.FinanceRecord{
		Type:     recType,
		Amount:   c.Amount,
		Category: c.Category,
	}

	if c.Date != "" {
		t, err := time.ParseInLocation(constants.DateFormat, c.Date, time.Local)
		if err != nil {
			return fmt.Errorf("invalid date %q: %w", c.Date, err)
		}
		rec.Date = t
	}

	saved, err := ctx.Store.CreateFinanceRecord(rec)
	if err != nil {
		return err
	}

	budget, err := ctx.Store.GetBudget()
	if err != nil {
		return err
	}

	fmt.Printf("✓ Recorded %s of %s, budget now %s\n",
		saved.Type, cli.FormatAmount(saved.Amount), cli.FormatAmount(budget.Balance))
	return nil
}

type ListCmd struct {
	Type     string `short:"t" help:"Filter by type (income|expense)."`
	Category string `short:"c" help:"Filter by category."`
	From     string `help:"Only records dated on or after this date."`
	To       string `help:"Only records dated on or before this date."`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	filter := storage.FinanceFilter{
		Category: c.Category,
	}

	if c.Type != "" {
		recType, err := models.ParseRecordType(c.Type)
		if err != nil {
			return err
		}
		filter.Type = recType
	}

	var err error
	if filter.StartDate, err = cli.ParseDateFlag(c.From, false); err != nil {
		return err
	}
	if filter.EndDate, err = cli.ParseDateFlag(c.To, true); err != nil {
		return err
	}

	recs, err := ctx.Store.ListFinanceRecords(filter)
	if err != nil {
		return err
	}

	if len(recs) == 0 {
		fmt.Println("No finance records found.")
		return nil
	}

	sort.Slice(recs, func(i, j int) bool {
		return recs[i].Date.After(recs[j].Date)
	})

	fmt.Println(cli.HeaderStyle.Render(fmt.Sprintf("%d record(s):", len(recs))))
	var net int64
	for _, rec := range recs {
		fmt.Printf("  %s  %-8s %-14s %s\n",
			rec.Date.Local().Format(constants.DateFormat),
			rec.Type, rec.Category, cli.FormatAmount(rec.BudgetDelta()))
		net += rec.BudgetDelta()
	}
	fmt.Printf("\nNet: %s\n", cli.FormatAmount(net))

	return nil
}
