package logs

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
	Person      string `short:"p" help:"Person (maru|marty)." required:""`
	Activity    string `short:"a" help:"Activity category." required:""`
	Subcategory string `help:"Optional subcategory."`
	Note        string `short:"n" help:"Optional note."`
	Start       string `short:"s" help:"Start time (YYYY-MM-DD HH:MM)." required:""`
	End         string `short:"e" help:"End time (YYYY-MM-DD HH:MM)." required:""`
	Earnings    int64  `help:"Override computed earnings."`
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	person, err := models.ParsePerson(c.Person)
	if err != nil {
		return err
	}

	start, err := time.ParseInLocation(constants.DateTimeFormat, c.Start, time.Local)
	if err != nil {
		return fmt.Errorf("invalid start time %q: %w", c.Start, err)
	}
	end, err := time.ParseInLocation(constants.DateTimeFormat, c.End, time.Local)
	if err != nil {
		return fmt.Errorf("invalid end time %q: %w", c.End, err)
	}

	log, err := ctx.Store.CreateWorkLog(models.WorkLog{
		Person:      person,
		Activity:    c.Activity,
		Subcategory: c.Subcategory,
		Note:        c.Note,
		StartTime:   start,
		EndTime:     end,
		Earnings:    c.Earnings,
	})
	if err != nil {
		return err
	}

	fmt.Printf("✓ Logged %s for %s: %s earned\n",
		log.Duration().Round(time.Minute), log.Person, cli.FormatAmount(log.Earnings))
	return nil
}

type ListCmd struct {
	Person   string `short:"p" help:"Filter by person."`
	Activity string `short:"a" help:"Filter by activity."`
	From     string `help:"Only logs starting on or after this date."`
	To       string `help:"Only logs ending on or before this date."`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	filter := storage.WorkLogFilter{
		Activity: c.Activity,
	}

	if c.Person != "" {
		person, err := models.ParsePerson(c.Person)
		if err != nil {
			return err
		}
		filter.Person = person
	}

	var err error
	if filter.StartDate, err = cli.ParseDateFlag(c.From, false); err != nil {
		return err
	}
	if filter.EndDate, err = cli.ParseDateFlag(c.To, true); err != nil {
		return err
	}

	logs, err := ctx.Store.ListWorkLogs(filter)
	if err != nil {
		return err
	}

	if len(logs) == 0 {
		fmt.Println("No work logs found.")
		return nil
	}

	// Newest sessions first, matching the app's display order.
	sort.Slice(logs, func(i, j int) bool {
		return logs[i].EndTime.After(logs[j].EndTime)
	})

	fmt.Println(cli.HeaderStyle.Render(fmt.Sprintf("%d work log(s):", len(logs))))
	var total int64
	for _, log := range logs {
		fmt.Printf("  %s  %-6s %-14s %8s  gross %s, net %s\n",
			log.EndTime.Local().Format(constants.DateTimeFormat),
			log.Person, log.Activity,
			log.Duration().Round(time.Minute),
			cli.FormatAmount(log.Earnings), cli.FormatAmount(log.Net()))
		if log.Note != "" {
			fmt.Printf("      %s\n", cli.MutedStyle.Render(log.Note))
		}
		total += log.Earnings
	}
	fmt.Printf("\nTotal earnings: %s\n", cli.FormatAmount(total))

	return nil
}

type EditCmd struct {
	ID       string `arg:"" help:"Work log id."`
	Activity string `short:"a" help:"New activity."`
	Note     string `short:"n" help:"New note."`
	Start    string `short:"s" help:"New start time (YYYY-MM-DD HH:MM)."`
	End      string `short:"e" help:"New end time (YYYY-MM-DD HH:MM)."`
	Earnings *int64 `help:"New earnings."`
}

func (c *EditCmd) Run(ctx *cli.Context) error {
	log, err := ctx.Store.GetWorkLog(c.ID)
	if err != nil {
		return err
	}

	timesChanged := false
	if c.Activity != "" {
		log.Activity = c.Activity
	}
	if c.Note != "" {
		log.Note = c.Note
	}
	if c.Start != "" {
		t, err := time.ParseInLocation(constants.DateTimeFormat, c.Start, time.Local)
		if err != nil {
			return fmt.Errorf("invalid start time %q: %w", c.Start, err)
		}
		log.StartTime = t
		timesChanged = true
	}
	if c.End != "" {
		t, err := time.ParseInLocation(constants.DateTimeFormat, c.End, time.Local)
		if err != nil {
			return fmt.Errorf("invalid end time %q: %w", c.End, err)
		}
		log.EndTime = t
		timesChanged = true
	}

	switch {
	case c.Earnings != nil:
		log.Earnings = *c.Earnings
	case timesChanged:
		// Recompute from the rate when the session length changed and no
		// explicit earnings were given.
		log.Earnings = models.EarningsFor(log.Person, log.EndTime.Sub(log.StartTime).Milliseconds())
	}

	updated, err := ctx.Store.UpdateWorkLog(log)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Updated work log %s (earnings %s)\n", updated.ID, cli.FormatAmount(updated.Earnings))
	return nil
}

type DeleteCmd struct {
	ID string `arg:"" help:"Work log id."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.DeleteWorkLog(c.ID); err != nil {
		return err
	}
	fmt.Printf("✓ Deleted work log %s\n", c.ID)
	return nil
}
