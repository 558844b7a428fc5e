// Package execshell provides structured helpers for invoking external tools.
//
// It wraps os/exec with lifecycle logging via ShellExecutor, exposes
// OSCommandRunner for default process execution, and defines the abstractions
// git-bulk-push uses to run git in an explicit working directory in a testable
// manner.
package execshell
