package cli

import (
	"context"
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/orgtext/pkg/org"
)

func (a *app) parseCmd() *Command {
	flags := flag.NewFlagSet("parse", flag.ContinueOnError)
	flags.Bool("no-body", false, "Leave drawers and body lines out of the output")

	return &Command{
		Flags: flags,
		Usage: "parse [flags] <file>",
		Short: "Dump the parsed document",
		Long: "Parse a document and print every heading with its metadata, drawers and body.\n" +
			"Use the global --format flag to get json or yaml.",
		Exec: func(_ context.Context, o *IO, args []string) error {
			noBody, _ := flags.GetBool("no-body")

			return a.execParse(o, args, !noBody)
		},
	}
}

func (a *app) execParse(o *IO, args []string, withBody bool) error {
	path, err := singleFile(args)
	if err != nil {
		return err
	}

	doc, err := a.read(path)
	if err != nil {
		return err
	}

	views := make([]headingView, 0, len(doc))
	for _, h := range doc {
		views = append(views, viewOf(h, withBody))
	}

	return a.emit(o, views, func() {
		for i, h := range doc {
			o.Println(describe(i, h, withBody))
		}
	})
}

// describe renders one heading as a key=value line for text output.
func describe(i int, h *org.Heading, withBody bool) string {
	var b strings.Builder

	fmt.Fprintf(&b, "[%d] level=%d", i, h.Level)

	if h.State != org.StateNone {
		fmt.Fprintf(&b, " state=%s", h.State)
	}

	if h.Priority != org.PriorityNone {
		fmt.Fprintf(&b, " priority=%s", h.Priority)
	}

	if h.Title != "" {
		fmt.Fprintf(&b, " title=%q", h.Title)
	}

	if len(h.Tags) > 0 {
		fmt.Fprintf(&b, " tags=%s", strings.Join(h.Tags, ","))
	}

	if withBody {
		if len(h.Drawers) > 0 {
			fmt.Fprintf(&b, " drawers=%s", strings.Join(h.Drawers.Names(), ","))
		}

		fmt.Fprintf(&b, " body=%d", len(h.Body))
	}

	return b.String()
}
