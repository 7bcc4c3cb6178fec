package cmd

import (
	"bufio"
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/partclean/savefile"
)

// Fmt reads a save file, parses it, and writes it back in the chosen format.
type Fmt struct {
	Native Native `cmd:"" default:"withargs" help:"Format as native save file syntax (default)."`
	JSON   JSON   `cmd:""                    help:"Format as JSON."`
	YAML   YAML   `cmd:""                    help:"Format as YAML."`
	Tree   Tree   `cmd:""                    help:"Format as an indented structural tree."`
}

// openFmtSource opens the source file, or stdin for "-".
func openFmtSource(source string) (*os.File, error) {
	if source == "-" {
		return os.Stdin, nil
	}

	return os.Open(source)
}

// Native formats input as native save file syntax, normalizing indentation.
type Native struct {
	Indent string `help:"Indent string per nesting level (default: tab)" short:"i"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the fmt command.
func (f *Native) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	file, err := openFmtSource(f.Source)
	if err != nil {
		return err
	}

	if file != os.Stdin {
		defer file.Close()
	}

	var opts []savefile.Option
	if f.Indent != "" {
		opts = append(opts, savefile.WithIndent(f.Indent))
	}

	doc, err := savefile.ParseReader(ctx, bufio.NewReader(file), opts...)
	if err != nil {
		return savefile.WrapError(err).
			With(slog.String("format", "native"))
	}

	return doc.Format(ctx, os.Stdout)
}

// JSON formats input as a JSON rendering of the node tree.
type JSON struct {
	Indent int `default:"2" help:"Indent width for JSON output" short:"i"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the json command.
func (j *JSON) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	file, err := openFmtSource(j.Source)
	if err != nil {
		return err
	}

	if file != os.Stdin {
		defer file.Close()
	}

	doc, err := savefile.ParseReader(ctx, bufio.NewReader(file))
	if err != nil {
		return savefile.WrapError(err).
			With(slog.String("format", "json"))
	}

	return doc.FormatJSON(ctx, os.Stdout, j.Indent)
}

// YAML formats input as a YAML rendering of the node tree.
type YAML struct {
	Indent int `default:"2" help:"Indent width for YAML output" short:"i"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the yaml command.
func (y *YAML) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	file, err := openFmtSource(y.Source)
	if err != nil {
		return err
	}

	if file != os.Stdin {
		defer file.Close()
	}

	doc, err := savefile.ParseReader(ctx, bufio.NewReader(file))
	if err != nil {
		return savefile.WrapError(err).
			With(slog.String("format", "yaml"))
	}

	return doc.FormatYAML(ctx, os.Stdout, y.Indent)
}

// Tree formats input as an indented structural dump.
type Tree struct {
	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the tree command.
func (t *Tree) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	file, err := openFmtSource(t.Source)
	if err != nil {
		return err
	}

	if file != os.Stdin {
		defer file.Close()
	}

	doc, err := savefile.ParseReader(ctx, bufio.NewReader(file))
	if err != nil {
		return savefile.WrapError(err).
			With(slog.String("format", "tree"))
	}

	return doc.FormatTree(ctx, os.Stdout)
}
