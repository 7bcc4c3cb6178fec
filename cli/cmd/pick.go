package cmd

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ardnew/partclean/cli/cmd/pick"
	"github.com/ardnew/partclean/log"
)

// Pick interactively selects parts to remove from a save file, then scrubs
// them the same way the scrub command does.
type Pick struct {
	Force  bool   `help:"Overwrite existing output file"                     short:"f"`
	Output string `help:"Output file path (default: <source>.cleaned.<ext>)" placeholder:"PATH" short:"o" type:"path"`

	Source string `arg:"" help:"Save file to scrub" type:"existingfile"`
}

// Run executes the pick command.
func (p *Pick) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	doc, err := parseSave(ctx, p.Source)
	if err != nil {
		return err
	}

	names := doc.PartNames()
	if len(names) == 0 {
		log.WarnContext(ctx, "no parts found",
			slog.String("source", p.Source),
		)

		return nil
	}

	parts, err := pick.Run(names)
	if err != nil {
		if errors.Is(err, pick.ErrCanceled) {
			log.InfoContext(ctx, "selection canceled")

			return nil
		}

		return err
	}

	if len(parts) == 0 {
		log.InfoContext(ctx, "no parts selected")

		return nil
	}

	removed, err := doc.ScrubParts(ctx, parts)
	if err != nil {
		return err
	}

	output := p.Output
	if output == "" {
		output = cleanedPath(p.Source)
	}

	return writeCleaned(ctx, doc, output, p.Force, removed)
}
