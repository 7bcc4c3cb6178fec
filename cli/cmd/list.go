package cmd

import (
	"context"
	"os"
)

// List prints the distinct part names found in a save file, one per line,
// sorted lexicographically.
type List struct {
	Source string `arg:"" help:"Save file to inspect" type:"existingfile"`
}

// Run executes the list command.
func (l *List) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	doc, err := parseSave(ctx, l.Source)
	if err != nil {
		return err
	}

	return listParts(doc, os.Stdout)
}
