// Package cmd provides the partclean subcommands for scrubbing, listing,
// reformatting, and interactively selecting parts in save files.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the default configuration file.
	ConfigIdentifier = "config"

	// SettingsIdentifier is the block key holding flag defaults in the
	// configuration file.
	SettingsIdentifier = "SETTINGS"
)
