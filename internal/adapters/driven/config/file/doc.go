// Package file loads the daemon configuration from a TOML file, with
// environment variable overrides for secrets so tokens stay out of
// files checked into dotfile repos.
package file
