package bulkpush

import (
	"errors"
	"path/filepath"
	"strings"
)

const (
	repositoryPathRequiredMessageConstant = "repository path must be provided"
)

// ErrRepositoryPathRequired indicates an empty repository path.
var ErrRepositoryPathRequired = errors.New(repositoryPathRequiredMessageConstant)

// Repository identifies one working directory that contains a .git entry.
type Repository struct {
	path string
}

// NewRepository resolves repositoryPath to an absolute path.
// Callers confirm the directory is a git repository before constructing one.
func NewRepository(repositoryPath string) (Repository, error) {
	trimmedPath := strings.TrimSpace(repositoryPath)
	if len(trimmedPath) == 0 {
		return Repository{}, ErrRepositoryPathRequired
	}

	absolutePath, absoluteError := filepath.Abs(trimmedPath)
	if absoluteError != nil {
		return Repository{}, absoluteError
	}

	return Repository{path: absolutePath}, nil
}

// Path returns the absolute repository path.
func (repository Repository) Path() string {
	return repository.path
}

// Name returns the final path segment, used for display.
func (repository Repository) Name() string {
	return filepath.Base(repository.path)
}
