package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ardnew/partclean/log"
	"github.com/ardnew/partclean/savefile"
)

// cleanedSuffix is inserted before the extension of the default output file
// name, so "persistent.sfs" produces "persistent.cleaned.sfs".
const cleanedSuffix = ".cleaned"

// Scrub removes named parts from a save file and writes the result to a new
// file, leaving the original untouched. With no part names given, it lists
// the distinct part names found instead.
type Scrub struct {
	Force  bool   `help:"Overwrite existing output file"                   short:"f"`
	Output string `help:"Output file path (default: <source>.cleaned.<ext>)" placeholder:"PATH" short:"o" type:"path"`

	Source string   `arg:"" help:"Save file to scrub"                          type:"existingfile"`
	Parts  []string `arg:"" help:"Part names to remove (omit to list names)"   optional:""`
}

// Run executes the scrub command.
func (s *Scrub) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	doc, err := parseSave(ctx, s.Source)
	if err != nil {
		return err
	}

	if len(s.Parts) == 0 {
		return listParts(doc, os.Stdout)
	}

	removed, err := doc.ScrubParts(ctx, s.Parts)
	if err != nil {
		return err
	}

	if removed == 0 {
		log.WarnContext(ctx, "no matching parts found",
			slog.String("source", s.Source),
			slog.Any("parts", s.Parts),
		)
	}

	output := s.Output
	if output == "" {
		output = cleanedPath(s.Source)
	}

	return writeCleaned(ctx, doc, output, s.Force, removed)
}

// parseSave opens and parses a save file.
func parseSave(ctx context.Context, path string) (*savefile.Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, ErrReadSave.
			Wrap(err).
			With(slog.String("file", path))
	}
	defer file.Close()

	doc, err := savefile.ParseReader(ctx, bufio.NewReader(file),
		savefile.WithLogger(log.Default()))
	if err != nil {
		return nil, savefile.WrapError(err).
			With(slog.String("file", path))
	}

	return doc, nil
}

// listParts writes the document's distinct part names, one per line.
func listParts(doc *savefile.Document, w io.Writer) error {
	for _, name := range doc.PartNames() {
		_, err := fmt.Fprintln(w, name)
		if err != nil {
			return err
		}
	}

	return nil
}

// cleanedPath derives the default output file name from the source path.
func cleanedPath(source string) string {
	ext := filepath.Ext(source)

	return strings.TrimSuffix(source, ext) + cleanedSuffix + ext
}

// writeCleaned serializes the document to path. An existing file is never
// overwritten unless force is set.
func writeCleaned(
	ctx context.Context,
	doc *savefile.Document,
	path string,
	force bool,
	removed int,
) error {
	if !force {
		_, err := os.Stat(path)
		if err == nil {
			return ErrWriteOutput.
				With(slog.String("file", path)).
				Wrap(ErrFileExists)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return ErrWriteOutput.
			Wrap(err).
			With(slog.String("file", path))
	}
	defer file.Close()

	w := bufio.NewWriter(file)

	err = doc.Format(ctx, w)
	if err == nil {
		err = w.Flush()
	}

	if err != nil {
		return ErrWriteOutput.
			Wrap(err).
			With(slog.String("file", path))
	}

	log.InfoContext(ctx, "wrote cleaned save",
		slog.String("file", path),
		slog.Int("removed", removed),
	)

	return nil
}
