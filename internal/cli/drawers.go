package cli

import (
	"context"

	flag "github.com/spf13/pflag"
)

type drawersEntry struct {
	Heading string       `json:"heading" yaml:"heading"`
	Level   int          `json:"level"   yaml:"level"`
	Drawers []drawerView `json:"drawers" yaml:"drawers"`
}

func (a *app) drawersCmd() *Command {
	flags := flag.NewFlagSet("drawers", flag.ContinueOnError)
	flags.String("name", "", "Only show drawers with this name")

	return &Command{
		Flags: flags,
		Usage: "drawers [flags] <file>",
		Short: "Show drawer contents",
		Long: "Print the well-formed drawers of every heading. Unterminated drawers are\n" +
			"ordinary body text and are not shown.",
		Exec: func(_ context.Context, o *IO, args []string) error {
			name, _ := flags.GetString("name")

			return a.execDrawers(o, args, name)
		},
	}
}

func (a *app) execDrawers(o *IO, args []string, name string) error {
	path, err := singleFile(args)
	if err != nil {
		return err
	}

	doc, err := a.read(path)
	if err != nil {
		return err
	}

	entries := []drawersEntry{}

	for _, h := range doc {
		if h.Level == 0 {
			continue
		}

		views := drawerViews(h.Drawers)
		if name != "" {
			views = nil

			if lines, ok := h.Drawers.Get(name); ok {
				views = []drawerView{{Name: name, Lines: lines}}
			}
		}

		if len(views) == 0 {
			continue
		}

		entries = append(entries, drawersEntry{Heading: summary(h), Level: h.Level, Drawers: views})
	}

	return a.emit(o, entries, func() {
		for _, e := range entries {
			prefix := a.indent(e.Level)

			o.Println(prefix + e.Heading)

			for _, d := range e.Drawers {
				o.Println(prefix + "  :" + d.Name + ":")

				for _, line := range d.Lines {
					o.Println(prefix + "    " + line)
				}
			}
		}
	})
}
