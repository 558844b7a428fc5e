package shared

import (
	"context"
	"time"

	"github.com/temirov/gitbulkpush/internal/execshell"
)

// Clock abstracts time acquisition for deterministic testing.
type Clock interface {
	Now() time.Time
}

// SystemClock implements Clock using the system time source.
type SystemClock struct{}

// Now returns the current system time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// GitExecutor exposes the subset of shell execution used by repository services.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// RepositoryDiscoverer locates Git repositories for bulk operations.
type RepositoryDiscoverer interface {
	// DiscoverRepositories walks the roots recursively and returns every directory containing a .git entry.
	DiscoverRepositories(roots []string) ([]string, error)
	// ListCandidateDirectories returns the immediate child directories of root.
	ListCandidateDirectories(root string) ([]string, error)
	// IsGitRepository reports whether directory has a direct .git child entry.
	IsGitRepository(directory string) bool
}
