// Package utils exposes the CLI plumbing shared by git-bulk-push commands.
//
// ConfigurationLoader layers embedded defaults, configuration files and
// environment variables through Viper. LoggerFactory builds zap loggers in
// structured or console form, and FlushingWriter keeps report output visible
// as it is produced.
package utils
