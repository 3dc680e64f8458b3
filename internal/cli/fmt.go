package cli

import (
	"context"
	"fmt"
	"runtime"

	flag "github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/calvinalkan/orgtext/internal/orgfile"
	"github.com/calvinalkan/orgtext/pkg/org"
)

func (a *app) fmtCmd() *Command {
	flags := flag.NewFlagSet("fmt", flag.ContinueOnError)
	flags.BoolP("write", "w", false, "Write the result back to each file instead of stdout")
	flags.Bool("check", false, "Only report files that are not in canonical form")

	return &Command{
		Flags: flags,
		Usage: "fmt [flags] <file>...",
		Short: "Rewrite documents in canonical form",
		Long: "Parse each file and serialize it again. Files are processed concurrently;\n" +
			"output keeps the order of the arguments. With --check nothing is printed\n" +
			"for canonical files and each other file is reported as a warning.",
		Exec: func(ctx context.Context, o *IO, args []string) error {
			write, _ := flags.GetBool("write")
			check, _ := flags.GetBool("check")

			return a.execFmt(ctx, o, args, write, check)
		},
	}
}

type fmtResult struct {
	text    string
	changed bool
}

func (a *app) execFmt(ctx context.Context, o *IO, args []string, write, check bool) error {
	if len(args) == 0 {
		return errFileRequired
	}

	stdinArgs := 0

	for _, p := range args {
		if p == orgfile.Stdin {
			stdinArgs++
		}
	}

	if write && stdinArgs > 0 {
		return errStdinReadOnly
	}

	if stdinArgs > 1 {
		return errStdinTwice
	}

	results := make([]fmtResult, len(args))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, path := range args {
		g.Go(func() error {
			res, err := a.formatFile(ctx, path, write && !check)
			if err != nil {
				return err
			}

			results[i] = res

			return nil
		})
	}

	err := g.Wait()
	if err != nil {
		return err
	}

	for i, res := range results {
		a.log.Debug().Str("path", args[i]).Bool("changed", res.changed).Msg("fmt")

		switch {
		case check:
			if res.changed {
				o.Warn(args[i], "not in canonical form", "run orgtext fmt -w")
			}
		case write:
			if res.changed {
				o.Println("formatted", args[i])
			}
		default:
			o.Printf("%s", res.text)
		}
	}

	return nil
}

func (a *app) formatFile(ctx context.Context, path string, write bool) (fmtResult, error) {
	src, err := orgfile.ReadBytes(a.fs, a.resolve(path), a.stdin)
	if err != nil {
		return fmtResult{}, err
	}

	doc, err := org.Parse(src)
	if err != nil {
		return fmtResult{}, fmt.Errorf("%s: %w", path, err)
	}

	text, err := org.Format(doc)
	if err != nil {
		return fmtResult{}, fmt.Errorf("%s: %w", path, err)
	}

	res := fmtResult{text: text, changed: text != string(src)}

	if write && res.changed {
		err = orgfile.WriteText(ctx, a.fs, a.resolve(path), text)
		if err != nil {
			return fmtResult{}, err
		}
	}

	return res, nil
}
