package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/alecthomas/kingpin/v2"

	"tidy/internal/printer"
)

type AddCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	words  []string
	format string
}

// NewAddCommand returns the add command.
func NewAddCommand(rootCmd *RootCommand, app *kingpin.Application) *AddCommand {
	c := &AddCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("add", "Add a task.")
	c.Cmd.Arg("text", "Task text.").Required().StringsVar(&c.words)
	c.Cmd.Flag("format", "Output format (table, json, yaml).").Default(printer.FormatTable).
		EnumVar(&c.format, printer.FormatTable, printer.FormatJSON, printer.FormatYAML)

	return c
}

func (c AddCommand) Name() string { return c.Cmd.FullCommand() }

func (c AddCommand) Run(ctx context.Context) error {
	cfg := c.rootCmd.Config
	mgr, store, err := c.rootCmd.OpenManager(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	p, err := printer.New(c.format, c.rootCmd.Stdout)
	if err != nil {
		return err
	}

	idx, err := mgr.AddTask(ctx, strings.Join(c.words, " "))
	if err != nil {
		return err
	}
	if idx < 0 {
		return fmt.Errorf("task text is empty")
	}
	return p.PrintMessage(fmt.Sprintf("Added %q", mgr.Active()[idx].Text))
}
