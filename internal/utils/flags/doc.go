// Package flags registers the yes/no toggle and fixed-choice flags used by the CLI.
package flags
