package cli

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/orgtext/internal/orgfile"
)

const idProperty = "ID"

func (a *app) idCmd() *Command {
	flags := flag.NewFlagSet("id", flag.ContinueOnError)
	flags.BoolP("write", "w", false, "Write the result back to the file instead of stdout")
	flags.String("property", idProperty, "Property that holds the id")

	return &Command{
		Flags: flags,
		Usage: "id [flags] <file>",
		Short: "Give every heading a unique id",
		Long: "Add a random UUID property to each heading that has none. Existing ids are\n" +
			"kept. Headings with a malformed property drawer are skipped with a warning.",
		Exec: func(ctx context.Context, o *IO, args []string) error {
			write, _ := flags.GetBool("write")
			prop, _ := flags.GetString("property")

			return a.execID(ctx, o, args, prop, write, uuid.NewString)
		},
	}
}

func (a *app) execID(ctx context.Context, o *IO, args []string, prop string, write bool, newID func() string) error {
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

	added := 0

	for _, h := range doc {
		if h.Level == 0 {
			continue
		}

		props, err := h.Properties()
		if err != nil {
			o.Warn(path, fmt.Sprintf("heading %q: %v", h.Title, err), "fix the property drawer")

			continue
		}

		if _, ok := props.Get(prop); ok {
			continue
		}

		err = h.SetProperty(prop, newID())
		if err != nil {
			return err
		}

		added++
	}

	a.log.Debug().Str("path", path).Int("added", added).Msg("ids")

	if write {
		if added == 0 {
			return nil
		}

		err = a.write(ctx, path, doc)
		if err != nil {
			return err
		}

		o.Printf("added %d ids to %s\n", added, path)

		return nil
	}

	return a.output(ctx, o, path, doc, false)
}
