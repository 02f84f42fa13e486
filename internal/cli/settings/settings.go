package settings

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/mholecek/worktrack/internal/cli"
)

type ListCmd struct{}

func (c *ListCmd) Run(ctx *cli.Context) error {
	all, err := ctx.Store.AllSettings()
	if err != nil {
		return err
	}

	if len(all) == 0 {
		fmt.Println("No settings stored.")
		return nil
	}

	keys := make([]string, 0, len(all))
	for k := range all {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Println(cli.HeaderStyle.Render("Settings"))
	for _, k := range keys {
		fmt.Printf("  %-16s %s\n", k, renderValue(all[k]))
	}
	return nil
}

type GetCmd struct {
	Key string `arg:"" help:"Setting key."`
}

func (c *GetCmd) Run(ctx *cli.Context) error {
	value, ok, err := ctx.Store.GetSetting(c.Key)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("setting %q is not set", c.Key)
	}
	fmt.Println(renderValue(value))
	return nil
}

type SetCmd struct {
	Key   string `arg:"" help:"Setting key."`
	Value string `arg:"" help:"Setting value. Booleans and numbers are stored typed."`
}

func (c *SetCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.SetSetting(c.Key, coerceValue(c.Value)); err != nil {
		return err
	}
	fmt.Printf("✓ %s = %s\n", c.Key, c.Value)
	return nil
}

type UnsetCmd struct {
	Key string `arg:"" help:"Setting key."`
}

func (c *UnsetCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.DeleteSetting(c.Key); err != nil {
		return err
	}
	fmt.Printf("✓ %s removed\n", c.Key)
	return nil
}

// coerceValue keeps booleans and numbers typed so they round-trip through
// backups the same way the value was originally stored.
func coerceValue(s string) any {
	if b, err := strconv.ParseBool(s); err == nil && (s == "true" || s == "false") {
		return b
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return n
	}
	return s
}

func renderValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(raw)
	}
}
