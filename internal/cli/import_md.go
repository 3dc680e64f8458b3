package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/orgtext/internal/mdimport"
	"github.com/calvinalkan/orgtext/internal/orgfile"
)

func (a *app) importMDCmd() *Command {
	flags := flag.NewFlagSet("import-md", flag.ContinueOnError)
	flags.StringP("output", "o", "", "Write the outline to this file instead of stdout")
	flags.Int("base-level", 0, "Nest every imported heading this many levels deeper")

	return &Command{
		Flags: flags,
		Usage: "import-md [flags] <file.md>",
		Short: "Convert Markdown to an outline",
		Long: "Turn the top-level headings of a Markdown file into outline headings and keep\n" +
			"the text between them as heading bodies.",
		Exec: func(ctx context.Context, o *IO, args []string) error {
			output, _ := flags.GetString("output")
			base, _ := flags.GetInt("base-level")

			return a.execImportMD(ctx, o, args, output, base)
		},
	}
}

func (a *app) execImportMD(ctx context.Context, o *IO, args []string, output string, base int) error {
	path, err := singleFile(args)
	if err != nil {
		return err
	}

	src, err := orgfile.ReadBytes(a.fs, a.resolve(path), a.stdin)
	if err != nil {
		return err
	}

	doc, err := mdimport.Convert(src, mdimport.WithBaseLevel(base))
	if err != nil {
		return err
	}

	a.log.Debug().Str("path", path).Int("headings", len(doc)).Msg("imported markdown")

	if output == "" {
		return a.output(ctx, o, path, doc, false)
	}

	return a.output(ctx, o, output, doc, true)
}
