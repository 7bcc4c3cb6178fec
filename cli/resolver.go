package cli

import (
	"context"
	"io"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/partclean/savefile"
)

// resolve returns a [kong.ConfigurationLoader] that reads flag defaults from
// a configuration file written in native save file syntax.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve(ctx, "SETTINGS"), "/path/to/config.sfs")
//
// The loader looks for a top-level block with the given key and treats its
// parameters as flag values. Flag names with hyphens (e.g., "log-level") may
// use underscores in the config file (e.g., "log_level"):
//
//	SETTINGS
//	{
//		log_level = debug
//		log_format = text
//		log_pretty = true
//	}
//
// Command-line flags override config file values. A missing or malformed
// config file yields an empty configuration rather than an error.
func resolve(ctx context.Context, block string) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		doc, err := savefile.ParseReader(ctx, r)
		if err != nil {
			// Parse error - return empty config
			return settings{}, nil
		}

		for _, n := range doc.Nodes {
			if n.Kind == savefile.KindBlock && n.Key == block {
				return settingsFromBlock(n), nil
			}
		}

		// Block not found - return empty config
		return settings{}, nil
	}
}

// settings implements [kong.Resolver] for native-syntax config files.
type settings map[string]string

// settingsFromBlock flattens a block's parameters into a settings map.
// Nested blocks and raw lines are ignored.
func settingsFromBlock(n *savefile.Node) settings {
	s := make(settings, len(n.Children))

	for _, c := range n.Children {
		if c.Kind == savefile.KindParam {
			s[c.Key] = c.Value
		}
	}

	return s
}

// Validate implements [kong.Resolver].
func (s settings) Validate(*kong.Application) error {
	// No validation needed - the config was already parsed successfully
	return nil
}

// Resolve implements [kong.Resolver].
func (s settings) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	// Kong flags use hyphens (e.g., "log-level") but config identifiers
	// may use underscores. Try both forms.
	if value, ok := s[flag.Name]; ok {
		return value, nil
	}

	if value, ok := s[strings.ReplaceAll(flag.Name, "-", "_")]; ok {
		return value, nil
	}

	// Not found - return nil to let Kong use defaults
	return nil, nil
}
