package gitoutput

import "strings"

const (
	// CleanWorkingTreeSentinel terminates `git status` output when nothing is pending.
	CleanWorkingTreeSentinel = "nothing to commit, working tree clean\n"
	// PushUpToDateSentinel is the line `git push` prints for a remote that needed no update.
	PushUpToDateSentinel = "Everything up-to-date"

	carriageReturnConstant = "\r"
	lineFeedConstant       = "\n"
)

// IsCleanWorkingTree reports whether `git status` output ends with the clean sentinel.
// The comparison is an exact suffix match, including the trailing newline.
func IsCleanWorkingTree(statusOutput string) bool {
	return strings.HasSuffix(statusOutput, CleanWorkingTreeSentinel)
}

// DidPush reports whether `git push` diagnostic output shows at least one remote
// receiving objects or references. Blank lines and up-to-date lines do not count.
func DidPush(pushStandardError string) bool {
	normalizedOutput := strings.ReplaceAll(pushStandardError, carriageReturnConstant, "")
	for _, outputLine := range strings.Split(normalizedOutput, lineFeedConstant) {
		if len(outputLine) == 0 || outputLine == PushUpToDateSentinel {
			continue
		}
		return true
	}
	return false
}
