package cli

import (
	"context"
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/orgtext/pkg/org"
)

type propsEntry struct {
	Heading    string         `json:"heading"    yaml:"heading"`
	Properties []org.Property `json:"properties" yaml:"properties"`
}

func (a *app) propsCmd() *Command {
	flags := flag.NewFlagSet("props", flag.ContinueOnError)
	flags.String("key", "", "Only show this property")

	return &Command{
		Flags: flags,
		Usage: "props [flags] <file>",
		Short: "Show heading properties",
		Long: "Print the PROPERTIES drawer of every heading as KEY=value lines.\n" +
			"Malformed drawers are reported as warnings and skipped.",
		Exec: func(_ context.Context, o *IO, args []string) error {
			key, _ := flags.GetString("key")

			return a.execProps(o, args, key)
		},
	}
}

func (a *app) execProps(o *IO, args []string, key string) error {
	path, err := singleFile(args)
	if err != nil {
		return err
	}

	doc, err := a.read(path)
	if err != nil {
		return err
	}

	entries := []propsEntry{}

	for _, h := range doc {
		if h.Level == 0 {
			continue
		}

		props, err := h.Properties()
		if err != nil {
			o.Warn(path, fmt.Sprintf("heading %q: %v", h.Title, err), "fix the property drawer")

			continue
		}

		if key != "" {
			v, ok := props.Get(key)
			if !ok {
				continue
			}

			props = org.Properties{{Key: key, Value: v}}
		}

		if len(props) == 0 {
			continue
		}

		entries = append(entries, propsEntry{Heading: summary(h), Properties: props})
	}

	return a.emit(o, entries, func() {
		for _, e := range entries {
			o.Println(e.Heading)

			for _, p := range e.Properties {
				o.Println("  " + p.Key + "=" + p.Value)
			}
		}
	})
}
