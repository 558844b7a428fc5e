package pathutils

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const homeShortcutConstant = "~"

// HomeDirectoryProvider resolves the current user's home directory path.
type HomeDirectoryProvider func() (string, error)

// HomeExpander replaces a leading "~" in root paths with the user's home directory.
// The home directory is looked up once, on first use.
type HomeExpander struct {
	lookupHomeDirectory func() (string, error)
}

// NewHomeExpander constructs a HomeExpander using the operating system lookup.
func NewHomeExpander() *HomeExpander {
	return NewHomeExpanderWithProvider(os.UserHomeDir)
}

// NewHomeExpanderWithProvider constructs a HomeExpander with a custom provider.
func NewHomeExpanderWithProvider(provider HomeDirectoryProvider) *HomeExpander {
	if provider == nil {
		provider = os.UserHomeDir
	}
	return &HomeExpander{lookupHomeDirectory: sync.OnceValues[string, error](provider)}
}

// Expand resolves "~", "~/rest" and, on Windows, "~\rest". Other paths, including
// "~user" forms, are returned unchanged, as is every path when the home
// directory cannot be determined.
func (expander *HomeExpander) Expand(candidatePath string) string {
	if expander == nil || !strings.HasPrefix(candidatePath, homeShortcutConstant) {
		return candidatePath
	}

	remainder := strings.TrimPrefix(candidatePath, homeShortcutConstant)
	if len(remainder) > 0 && !isShortcutSeparator(remainder[0]) {
		return candidatePath
	}

	homeDirectory, lookupError := expander.lookupHomeDirectory()
	if lookupError != nil || len(homeDirectory) == 0 {
		return candidatePath
	}
	if len(remainder) == 0 {
		return homeDirectory
	}
	return filepath.Join(homeDirectory, remainder[1:])
}

func isShortcutSeparator(candidate byte) bool {
	return candidate == '/' || candidate == os.PathSeparator
}
