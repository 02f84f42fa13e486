package categories

import (
	"fmt"

	"github.com/mholecek/worktrack/internal/cli"
	"github.com/mholecek/worktrack/internal/models"
)

type ListCmd struct {
	Expense bool `help:"List expense categories instead of task categories."`
	All     bool `help:"Include deactivated categories."`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	var (
		cats []models.Category
		err  error
	)
	if c.Expense {
		cats, err = ctx.Store.ExpenseCategories(c.All)
	} else {
		cats, err = ctx.Store.TaskCategories(c.All)
	}
	if err != nil {
		return err
	}

	if len(cats) == 0 {
		fmt.Println("No categories found.")
		return nil
	}

	for _, cat := range cats {
		if cat.Active {
			fmt.Printf("  %s\n", cat.Name)
		} else {
			fmt.Printf("  %s\n", cli.MutedStyle.Render(cat.Name+" (inactive)"))
		}
	}

	return nil
}

type AddCmd struct {
	Name    string `arg:"" help:"Category name."`
	Expense bool   `help:"Add an expense category instead of a task category."`
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	cat := models.Category{Name: c.Name, Active: true}

	var err error
	if c.Expense {
		err = ctx.Store.SaveExpenseCategory(cat)
	} else {
		err = ctx.Store.SaveTaskCategory(cat)
	}
	if err != nil {
		return err
	}

	fmt.Printf("✓ Added category %q\n", c.Name)
	return nil
}

type DisableCmd struct {
	Name    string `arg:"" help:"Category name."`
	Expense bool   `help:"Disable an expense category instead of a task category."`
}

// Run deactivates a category. The row stays so historical records keep
// their label; it just drops out of active listings.
func (c *DisableCmd) Run(ctx *cli.Context) error {
	cat := models.Category{Name: c.Name, Active: false}

	var err error
	if c.Expense {
		err = ctx.Store.SaveExpenseCategory(cat)
	} else {
		err = ctx.Store.SaveTaskCategory(cat)
	}
	if err != nil {
		return err
	}

	fmt.Printf("✓ Disabled category %q\n", c.Name)
	return nil
}
