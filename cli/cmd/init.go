package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/partclean/log"
	"github.com/ardnew/partclean/profile"
	"github.com/ardnew/partclean/savefile"
)

// Init generates a default configuration file with current flag values.
type Init struct {
	Force bool `help:"Overwrite existing configuration file" short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)

	confPath, ok := ktx.Model.Vars()[ConfigIdentifier]
	if !ok {
		panic("internal error: config path undefined")
	}

	// Check if file exists and force not set
	_, err = os.Stat(confPath)
	if err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			With(slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	file, err := os.Create(confPath)
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}
	defer file.Close()

	doc := i.buildSettings(ctx)

	err = doc.Format(ctx, file)
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	log.DebugContext(
		ctx,
		"initialized configuration file",
		slog.String("path", confPath),
	)

	return nil
}

// buildSettings constructs the config document from current flag values.
func (i *Init) buildSettings(ctx context.Context) *savefile.Document {
	ktx := kongContextFrom(ctx)

	block := savefile.NewBlock(SettingsIdentifier)

	prefixIgnore := []string{"help", "version", "force", profile.Tag}

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || slices.ContainsFunc(prefixIgnore, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		val := flagValue(ktx, flag.Name)
		if val == "" {
			continue
		}

		// Config identifiers use underscores for hyphenated flag names.
		key := strings.ReplaceAll(flag.Name, "-", "_")
		block.SetParam(key, val)
	}

	doc := savefile.NewDocument()
	doc.Nodes = append(doc.Nodes, block)

	return doc
}

// flagValue returns the string form of a CLI flag value, or "" if unset.
func flagValue(ktx *kong.Context, name string) string {
	idx := slices.IndexFunc(ktx.Model.Flags, func(flag *kong.Flag) bool {
		return flag.Name == name
	})
	if idx == -1 {
		return ""
	}

	val := ktx.FlagValue(ktx.Model.Flags[idx])
	if val == nil {
		return ""
	}

	switch v := val.(type) {
	case bool:
		return strconv.FormatBool(v)

	case string:
		return v

	case []string:
		return strings.Join(v, ", ")

	default:
		return fmt.Sprint(v)
	}
}
