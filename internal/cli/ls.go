package cli

import (
	"context"
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/orgtext/pkg/org"
)

var (
	errInvalidState    = errors.New("--state must be TODO, NEXT or DONE")
	errInvalidPriority = errors.New("--priority must be A, B or C")
	errInvalidMaxLevel = errors.New("--max-level must be positive")
)

func (a *app) lsCmd() *Command {
	flags := flag.NewFlagSet("ls", flag.ContinueOnError)
	flags.String("state", "", "Filter by workflow keyword (TODO|NEXT|DONE)")
	flags.String("priority", "", "Filter by priority (A|B|C)")
	flags.String("tag", "", "Filter by tag")
	flags.Int("max-level", 0, "Hide headings deeper than this level")

	return &Command{
		Flags: flags,
		Usage: "ls [flags] <file>",
		Short: "List headings",
		Long:  "List the headings of a document in order, indented by level.",
		Exec: func(_ context.Context, o *IO, args []string) error {
			filter, err := filterFromFlags(flags)
			if err != nil {
				return err
			}

			return a.execLs(o, args, filter)
		},
	}
}

func filterFromFlags(flags *flag.FlagSet) (org.Filter, error) {
	var filter org.Filter

	if state, _ := flags.GetString("state"); flags.Changed("state") {
		s, ok := org.ParseState(state)
		if !ok {
			return org.Filter{}, fmt.Errorf("%w, got %q", errInvalidState, state)
		}

		filter.State = s
	}

	if priority, _ := flags.GetString("priority"); flags.Changed("priority") {
		p, ok := org.ParsePriority(priority)
		if !ok {
			return org.Filter{}, fmt.Errorf("%w, got %q", errInvalidPriority, priority)
		}

		filter.Priority = p
	}

	filter.Tag, _ = flags.GetString("tag")

	if maxLevel, _ := flags.GetInt("max-level"); flags.Changed("max-level") {
		if maxLevel < 1 {
			return org.Filter{}, errInvalidMaxLevel
		}

		filter.MaxLevel = maxLevel
	}

	return filter, nil
}

func (a *app) execLs(o *IO, args []string, filter org.Filter) error {
	path, err := singleFile(args)
	if err != nil {
		return err
	}

	doc, err := a.read(path)
	if err != nil {
		return err
	}

	selected := doc.Select(filter)

	views := make([]headingView, 0, len(selected))
	for _, h := range selected {
		views = append(views, viewOf(h, false))
	}

	return a.emit(o, views, func() {
		for _, h := range selected {
			o.Println(a.indent(h.Level) + summary(h))
		}
	})
}
