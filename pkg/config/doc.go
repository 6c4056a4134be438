// Package config handles configuration management for dotsetup.
// It layers an embedded defaults file, the user's config.toml, the
// repository's .dotsetup.toml, DOTSETUP_* environment variables and
// command-line overrides, in that order.
package config
