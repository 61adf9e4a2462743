package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"github.com/oklog/run"
	"github.com/sirupsen/logrus"

	"tidy/cmd/todo/commands"
	"tidy/internal/log"
	loglogrus "tidy/internal/log/logrus"
)

// Version is the application version (set via ldflags).
var Version = "dev"

// Run runs the main application.
func Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	app := kingpin.New("todo", "Terminal task list.")
	app.Version(Version)
	rootCmd := commands.NewRootCommand(app)

	uiCmd := commands.NewUICommand(rootCmd, app)
	listCmd := commands.NewListCommand(rootCmd, app)
	addCmd := commands.NewAddCommand(rootCmd, app)

	cmds := map[string]commands.Command{
		uiCmd.Name():   uiCmd,
		listCmd.Name(): listCmd,
		addCmd.Name():  addCmd,
	}

	cmdName, err := app.Parse(args[1:])
	if err != nil {
		return fmt.Errorf("invalid command configuration: %w", err)
	}

	rootCmd.Stdin = stdin
	rootCmd.Stdout = stdout
	rootCmd.Stderr = stderr

	if err := rootCmd.LoadConfig(); err != nil {
		return err
	}

	logger, closeLog, err := getLogger(*rootCmd, cmdName == uiCmd.Name())
	if err != nil {
		return err
	}
	defer closeLog()
	rootCmd.Logger = logger

	var g run.Group

	// OS signals.
	{
		signalCtx, signalCancel := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
		defer signalCancel()

		g.Add(
			func() error {
				<-signalCtx.Done()
				rootCmd.Logger.Debugf("Termination signal received")
				return nil
			},
			func(_ error) {
				signalCancel()
			},
		)
	}

	// Execute command.
	{
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()
		ctx = rootCmd.Logger.SetValuesOnCtx(ctx, log.Kv{"cmd": cmdName})

		g.Add(
			func() error {
				if err := cmds[cmdName].Run(ctx); err != nil {
					return fmt.Errorf("%q command failed: %w", cmdName, err)
				}
				return nil
			},
			func(_ error) {
				cancel()
			},
		)
	}

	return g.Run()
}

// getLogger returns the application logger. The ui owns the terminal, so it
// only logs when a log file is configured.
func getLogger(config commands.RootCommand, interactive bool) (log.Logger, func(), error) {
	noClose := func() {}
	if config.NoLog || (interactive && config.LogFile == "") {
		return log.Noop, noClose, nil
	}

	logrusLog := logrus.New()
	logrusLog.Out = config.Stderr
	closeLog := noClose
	if config.LogFile != "" {
		f, err := os.OpenFile(config.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, noClose, fmt.Errorf("could not open log file: %w", err)
		}
		logrusLog.Out = f
		closeLog = func() { _ = f.Close() }
	}
	logrusLogEntry := logrus.NewEntry(logrusLog)

	if config.Debug {
		logrusLogEntry.Logger.SetLevel(logrus.DebugLevel)
	}

	switch config.LoggerType {
	case commands.LoggerTypeJSON:
		logrusLogEntry.Logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		logrusLogEntry.Logger.SetFormatter(&logrus.TextFormatter{DisableColors: config.LogFile != ""})
	}

	logger := loglogrus.NewLogrus(logrusLogEntry).WithValues(log.Kv{
		"version": Version,
	})
	logger.Debugf("Debug level is enabled")

	return logger, closeLog, nil
}

func main() {
	ctx := context.Background()
	if err := Run(ctx, os.Args, os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
