package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/orgtext/internal/config"
	"github.com/calvinalkan/orgtext/pkg/fs"
)

// Run is the main entry point. Returns exit code.
//
// The first signal received on sigCh cancels the context handed to the
// command; sigCh may be nil.
func Run(stdin io.Reader, out io.Writer, errOut io.Writer, args []string, env map[string]string, sigCh <-chan os.Signal) int {
	globals := newGlobalFlags()

	if len(args) > 0 {
		args = args[1:]
	}

	err := globals.set.Parse(args)
	if err != nil {
		fprintln(errOut, "error:", err)
		fprintln(errOut)
		printUsage(errOut, globals.set, nil)

		return 1
	}

	workDir := globals.workDir
	if workDir != "" && !filepath.IsAbs(workDir) {
		workDir, err = filepath.Abs(workDir)
		if err != nil {
			fprintln(errOut, "error: cannot resolve --cwd:", err)

			return 1
		}
	}

	fsys := fs.NewReal()

	a := &app{
		fs:    fsys,
		stdin: stdin,
		log:   zerolog.Nop(),
	}

	// Usage and command lookup need no config, so a broken config file
	// cannot hide the help text.
	commands := a.commands()
	rest := globals.set.Args()

	if globals.help || len(rest) == 0 {
		printUsage(out, globals.set, commands)

		return 0
	}

	var cmd *Command

	for _, c := range commands {
		if c.Name() == rest[0] {
			cmd = c

			break
		}
	}

	if cmd == nil {
		fprintln(errOut, "error: unknown command:", rest[0])
		fprintln(errOut)
		printUsage(errOut, globals.set, commands)

		return 1
	}

	logLevel := ""
	if globals.verbose {
		logLevel = zerolog.DebugLevel.String()
	}

	cfg, err := config.Load(config.Input{
		FS:              fsys,
		WorkDirOverride: workDir,
		ConfigPath:      globals.configPath,
		Format:          globals.format,
		LogLevel:        logLevel,
		Env:             env,
	})
	if err != nil {
		fprintln(errOut, "error:", err)
		fprintln(errOut)
		printUsage(errOut, globals.set, nil)

		return 1
	}

	a.cfg = cfg
	a.log = newLogger(errOut, cfg.Level())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if sigCh != nil {
		go func() {
			select {
			case <-sigCh:
				a.log.Debug().Msg("interrupted")
				cancel()
			case <-ctx.Done():
			}
		}()
	}

	a.log.Debug().
		Str("command", cmd.Name()).
		Str("cwd", cfg.EffectiveCwd).
		Str("format", cfg.Format).
		Msg("run")

	o := NewIO(out, errOut)

	code := cmd.Run(ctx, o, rest[1:])
	if code != 0 {
		return code
	}

	return o.Finish()
}

type globalFlags struct {
	set        *flag.FlagSet
	workDir    string
	configPath string
	format     string
	verbose    bool
	help       bool
}

func newGlobalFlags() *globalFlags {
	g := &globalFlags{set: flag.NewFlagSet("orgtext", flag.ContinueOnError)}

	g.set.SetInterspersed(false)
	g.set.SetOutput(&strings.Builder{}) // discard pflag output
	g.set.StringVarP(&g.workDir, "cwd", "C", "", "Run as if started in `dir`")
	g.set.StringVarP(&g.configPath, "config", "c", "", "Use specified config `file`")
	g.set.StringVar(&g.format, "format", "", "Output format: text, json or yaml")
	g.set.BoolVarP(&g.verbose, "verbose", "v", false, "Log diagnostics to stderr")
	g.set.BoolVarP(&g.help, "help", "h", false, "Show help")

	return g
}

// newLogger returns the diagnostics logger. Command output never goes
// through it; it only reports what the tool is doing.
func newLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	cw := zerolog.ConsoleWriter{
		Out:          w,
		NoColor:      true,
		PartsExclude: []string{zerolog.TimestampFieldName},
	}

	return zerolog.New(cw).Level(level)
}

func fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}

func printUsage(w io.Writer, globals *flag.FlagSet, commands []*Command) {
	fprintln(w, "orgtext - parse, query and rewrite outline documents")
	fprintln(w)
	fprintln(w, "Usage: orgtext [global flags] <command> [args]")
	fprintln(w)
	fprintln(w, "Global flags:")

	var buf strings.Builder
	globals.SetOutput(&buf)
	globals.PrintDefaults()
	_, _ = io.WriteString(w, buf.String())

	if len(commands) == 0 {
		return
	}

	fprintln(w)
	fprintln(w, "Commands:")

	for _, c := range commands {
		fprintln(w, c.HelpLine())
	}

	fprintln(w)
	fprintln(w, `A file argument of "-" reads standard input.`)
}
