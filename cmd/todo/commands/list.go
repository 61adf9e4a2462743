package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"tidy/internal/printer"
	"tidy/internal/tasks"
)

type ListCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	filter string
	format string
}

// NewListCommand returns the list command.
func NewListCommand(rootCmd *RootCommand, app *kingpin.Application) *ListCommand {
	c := &ListCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("list", "Print tasks.")
	c.Cmd.Flag("filter", "Which tasks to print (all, completed, incomplete, deleted).").Default(string(tasks.FilterAll)).
		EnumVar(&c.filter, string(tasks.FilterAll), string(tasks.FilterCompleted), string(tasks.FilterIncomplete), string(tasks.FilterDeleted))
	c.Cmd.Flag("format", "Output format (table, json, yaml).").Default(printer.FormatTable).
		EnumVar(&c.format, printer.FormatTable, printer.FormatJSON, printer.FormatYAML)

	return c
}

func (c ListCommand) Name() string { return c.Cmd.FullCommand() }

func (c ListCommand) Run(ctx context.Context) error {
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

	filter := tasks.ParseFilter(c.filter)
	var rows []tasks.View
	if filter == tasks.FilterDeleted {
		for i, t := range mgr.Deleted() {
			rows = append(rows, tasks.View{Index: i, Task: t})
		}
	} else {
		mgr.SetFilter(filter)
		rows = mgr.FilteredView()
	}

	if err := p.PrintTasks(rows); err != nil {
		return fmt.Errorf("could not print tasks: %w", err)
	}
	return nil
}
