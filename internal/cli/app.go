package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/calvinalkan/orgtext/internal/config"
	"github.com/calvinalkan/orgtext/internal/orgfile"
	"github.com/calvinalkan/orgtext/pkg/fs"
	"github.com/calvinalkan/orgtext/pkg/org"
)

var (
	errFileRequired  = errors.New("file argument is required")
	errTooManyFiles  = errors.New("exactly one file argument is expected")
	errStdinReadOnly = errors.New(`"-" cannot be combined with --write`)
	errStdinTwice    = errors.New(`"-" can be given only once`)
)

// app carries what every command needs once global flags and config are
// resolved.
type app struct {
	cfg   config.Config
	fs    fs.FS
	stdin io.Reader
	log   zerolog.Logger
}

func (a *app) commands() []*Command {
	return []*Command{
		a.parseCmd(),
		a.fmtCmd(),
		a.lsCmd(),
		a.drawersCmd(),
		a.propsCmd(),
		a.stripDrawersCmd(),
		a.idCmd(),
		a.importMDCmd(),
		a.printConfigCmd(),
	}
}

// resolve makes path relative to the effective working directory.
func (a *app) resolve(path string) string {
	if path == orgfile.Stdin || filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(a.cfg.EffectiveCwd, path)
}

func (a *app) read(path string) (org.Document, error) {
	doc, err := orgfile.Read(a.fs, a.resolve(path), a.stdin)
	if err != nil {
		return nil, err
	}

	a.log.Debug().Str("path", path).Int("headings", len(doc)).Msg("parsed")

	return doc, nil
}

func (a *app) write(ctx context.Context, path string, doc org.Document) error {
	err := orgfile.Write(ctx, a.fs, a.resolve(path), doc)
	if err != nil {
		return err
	}

	a.log.Debug().Str("path", path).Int("headings", len(doc)).Msg("wrote")

	return nil
}

// singleFile returns the one file argument of a command.
func singleFile(args []string) (string, error) {
	switch len(args) {
	case 0:
		return "", errFileRequired
	case 1:
		return args[0], nil
	default:
		return "", fmt.Errorf("%w, got %d", errTooManyFiles, len(args))
	}
}

// emit writes v as JSON or YAML when the configured format asks for it, and
// calls text otherwise.
func (a *app) emit(o *IO, v any, text func()) error {
	switch a.cfg.Format {
	case config.FormatJSON:
		enc := json.NewEncoder(o.Out())
		enc.SetIndent("", "  ")

		return enc.Encode(v)
	case config.FormatYAML:
		enc := yaml.NewEncoder(o.Out())
		enc.SetIndent(2)

		err := enc.Encode(v)
		if err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}

		return enc.Close()
	default:
		text()

		return nil
	}
}
