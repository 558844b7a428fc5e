// Package cli constructs the git-bulk-push command-line interface, wiring the
// Cobra command hierarchy, the Viper configuration loader, and zap logging.
// The sync subcommand commits and pushes every repository under the
// configured roots.
package cli
