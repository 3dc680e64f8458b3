package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/orgtext/internal/orgfile"
	"github.com/calvinalkan/orgtext/pkg/org"
)

func (a *app) stripDrawersCmd() *Command {
	flags := flag.NewFlagSet("strip-drawers", flag.ContinueOnError)
	flags.BoolP("write", "w", false, "Write the result back to the file instead of stdout")

	return &Command{
		Flags: flags,
		Usage: "strip-drawers [flags] <file>",
		Short: "Remove drawers from every heading",
		Long: "Remove every well-formed drawer from the headings of a document and print\n" +
			"the rest. Unterminated drawers and the text before the first heading are kept.",
		Exec: func(ctx context.Context, o *IO, args []string) error {
			write, _ := flags.GetBool("write")

			return a.execStripDrawers(ctx, o, args, write)
		},
	}
}

func (a *app) execStripDrawers(ctx context.Context, o *IO, args []string, write bool) error {
	path, err := singleFile(args)
	if err != nil {
		return err
	}

	if write && path == orgfile.Stdin {
		return errStdinReadOnly
	}

	doc, err := a.read(path)
	if err != nil {
		return err
	}

	return a.output(ctx, o, path, doc.StripDrawers(), write)
}

// output writes doc back to path, or prints it when write is false.
func (a *app) output(ctx context.Context, o *IO, path string, doc org.Document, write bool) error {
	if write {
		return a.write(ctx, path, doc)
	}

	text, err := org.Format(doc)
	if err != nil {
		return err
	}

	o.Printf("%s", text)

	return nil
}
