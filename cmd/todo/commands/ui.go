package commands

import (
	"context"

	"github.com/alecthomas/kingpin/v2"

	"tidy/internal/ui"
)

type UICommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand
}

// NewUICommand returns the interactive ui command, the default one.
func NewUICommand(rootCmd *RootCommand, app *kingpin.Application) *UICommand {
	c := &UICommand{rootCmd: rootCmd}
	c.Cmd = app.Command("ui", "Open the interactive task list.").Default()
	return c
}

func (c UICommand) Name() string { return c.Cmd.FullCommand() }

func (c UICommand) Run(ctx context.Context) error {
	cfg := c.rootCmd.Config
	mgr, store, err := c.rootCmd.OpenManager(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	return ui.Run(ctx, mgr, cfg, c.rootCmd.Logger)
}
