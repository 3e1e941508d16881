// Package cli implements the multitag command line.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"

	"github.com/hashicorp/go-hclog"

	"github.com/llehouerou/multitag/internal/config"
	"github.com/llehouerou/multitag/internal/errmsg"
	"github.com/llehouerou/multitag/internal/style"
	"github.com/llehouerou/multitag/tags"
)

// Exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// errUsage marks errors caused by malformed command lines.
var errUsage = errors.New("usage")

func usageErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errUsage, fmt.Sprintf(format, args...))
}

type command struct {
	usage string
	run   func(a *app, ctx context.Context, args []string) error
}

var commands = map[string]command{
	"show":   {usage: "show <file>...", run: (*app).show},
	"set":    {usage: "set [-title T] [-artist A] [-album A] [-album-artist A] [-date D] [-cover IMG] <file>", run: (*app).set},
	"remove": {usage: "remove [-title] [-artist] [-date] [-album] [-all] <file>", run: (*app).remove},
	"copy":   {usage: "copy [-skip-cover] <source> <destination>", run: (*app).copy},
}

type app struct {
	stdout io.Writer
	stderr io.Writer
	cfg    *config.Config
	log    hclog.Logger
	styles *style.Styles
}

// Run executes the command line args (without the program name) and returns
// the process exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("multitag", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		configFlag   = fs.String("config", "", "Path to config file")
		logLevelFlag = fs.String("log-level", "", "Log level: trace, debug, info, warn or error (overrides config)")
		noColorFlag  = fs.Bool("no-color", false, "Disable styled output")
	)
	fs.Usage = func() { printUsage(stderr, fs) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitOK
		}
		return ExitUsage
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintln(stderr, errmsg.Format(errmsg.OpLoadConfig, err))
		return ExitFailure
	}
	if *logLevelFlag != "" {
		cfg.LogLevel = *logLevelFlag
		if err := cfg.Validate(); err != nil {
			fmt.Fprintln(stderr, errmsg.Format(errmsg.OpParseArgs, err))
			return ExitUsage
		}
	}
	if *noColorFlag {
		cfg.Color = false
	}

	a := newApp(cfg, stdout, stderr)
	tags.SetLogger(a.log)
	defer tags.SetLogger(nil)

	if fs.NArg() == 0 {
		printUsage(stderr, fs)
		return ExitUsage
	}

	name := fs.Arg(0)
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintln(stderr, a.styles.Error.Render(fmt.Sprintf("Unknown command %q", name)))
		printUsage(stderr, fs)
		return ExitUsage
	}

	a.log.Debug("running command", "command", name, "args", fs.Args()[1:])
	if err := cmd.run(a, ctx, fs.Args()[1:]); err != nil {
		switch {
		case errors.Is(err, flag.ErrHelp):
			return ExitOK
		case errors.Is(err, errUsage):
			fmt.Fprintln(stderr, a.styles.Error.Render(err.Error()))
			fmt.Fprintln(stderr, "Usage: multitag "+cmd.usage)
			return ExitUsage
		default:
			fmt.Fprintln(stderr, a.styles.Error.Render(err.Error()))
			return ExitFailure
		}
	}
	return ExitOK
}

func newApp(cfg *config.Config, stdout, stderr io.Writer) *app {
	color := hclog.ColorOff
	if cfg.Color {
		color = hclog.AutoColor
	}
	return &app{
		stdout: stdout,
		stderr: stderr,
		cfg:    cfg,
		log: hclog.New(&hclog.LoggerOptions{
			Name:   "multitag",
			Level:  cfg.Level(),
			Output: stderr,
			Color:  color,
		}),
		styles: style.New(cfg.Color),
	}
}

// newFlagSet returns a subcommand flag set reporting parse errors as usage
// errors.
func (a *app) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return usageErrorf("%v", err)
	}
	return nil
}

func printUsage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "multitag - read and edit audio file tags")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")

	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintln(w, "  multitag [options] "+commands[name].usage)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs.PrintDefaults()
}
