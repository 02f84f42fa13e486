package timers

import (
	"fmt"
	"time"

	"github.com/mholecek/worktrack/internal/cli"
	"github.com/mholecek/worktrack/internal/constants"
	"github.com/mholecek/worktrack/internal/models"
	"github.com/mholecek/worktrack/internal/timer"
)

type StartCmd struct {
	Person      string `arg:"" help:"Who is working (maru or marty)."`
	Activity    string `arg:"" help:"Task category for the session."`
	Subcategory string `help:"Optional subcategory."`
	Note        string `short:"n" help:"Optional note."`
}

func (c *StartCmd) Run(ctx *cli.Context) error {
	person, err := models.ParsePerson(c.Person)
	if err != nil {
		return err
	}

	sess := timer.Session{
		Person:      person,
		Activity:    c.Activity,
		Subcategory: c.Subcategory,
		Note:        c.Note,
		StartTime:   time.Now().UTC(),
	}
	if err := timer.Start(ctx.Store, sess); err != nil {
		return err
	}

	fmt.Printf("✓ Timer started for %s (%s) at %s\n",
		person, c.Activity, sess.StartTime.Local().Format(constants.DateTimeFormat))
	return nil
}

type StopCmd struct{}

func (c *StopCmd) Run(ctx *cli.Context) error {
	log, err := timer.Stop(ctx.Store, time.Now().UTC())
	if err != nil {
		return err
	}

	fmt.Printf("✓ Work log saved: %s worked %s on %s, earned %s\n",
		log.Person, formatDuration(log.DurationMS), log.Activity, cli.FormatAmount(log.Earnings))

	budget, err := ctx.Store.GetBudget()
	if err != nil {
		return err
	}
	fmt.Printf("  Shared budget: %s\n", cli.FormatAmount(budget.Balance))
	return nil
}

type StatusCmd struct{}

func (c *StatusCmd) Run(ctx *cli.Context) error {
	sess, running, err := timer.Current(ctx.Store)
	if err != nil {
		return err
	}
	if !running {
		fmt.Println("No timer is running.")
		return nil
	}

	elapsed := sess.Elapsed(time.Now().UTC())
	fmt.Println(cli.HeaderStyle.Render("Timer running"))
	fmt.Printf("  Person:   %s\n", sess.Person)
	fmt.Printf("  Activity: %s\n", sess.Activity)
	if sess.Subcategory != "" {
		fmt.Printf("  Subcategory: %s\n", sess.Subcategory)
	}
	fmt.Printf("  Started:  %s\n", sess.StartTime.Local().Format(constants.DateTimeFormat))
	fmt.Printf("  Elapsed:  %s\n", formatDuration(elapsed.Milliseconds()))
	fmt.Printf("  Earnings so far: %s\n", cli.FormatAmount(models.EarningsFor(sess.Person, elapsed.Milliseconds())))
	return nil
}

type CancelCmd struct{}

func (c *CancelCmd) Run(ctx *cli.Context) error {
	if err := timer.Cancel(ctx.Store); err != nil {
		return err
	}
	fmt.Println("✓ Timer cancelled, no work log written.")
	return nil
}

func formatDuration(ms int64) string {
	d := time.Duration(ms) * time.Millisecond
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}
