package discovery

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

const gitMetadataDirectoryNameConstant = ".git"

// FilesystemRepositoryDiscoverer locates git repositories on disk.
type FilesystemRepositoryDiscoverer struct{}

// NewFilesystemRepositoryDiscoverer constructs a repository discoverer backed by the os and filepath packages.
func NewFilesystemRepositoryDiscoverer() *FilesystemRepositoryDiscoverer {
	return &FilesystemRepositoryDiscoverer{}
}

// ListCandidateDirectories returns the immediate child directories of root in lexical order.
// Symbolic links are not followed.
func (discoverer *FilesystemRepositoryDiscoverer) ListCandidateDirectories(root string) ([]string, error) {
	directoryEntries, readError := os.ReadDir(root)
	if readError != nil {
		return nil, readError
	}

	candidates := make([]string, 0, len(directoryEntries))
	for _, directoryEntry := range directoryEntries {
		if !directoryEntry.IsDir() {
			continue
		}
		candidates = append(candidates, filepath.Join(root, directoryEntry.Name()))
	}

	return candidates, nil
}

// IsGitRepository reports whether directory contains a direct child entry named .git.
// Files count as well as directories so that worktrees and submodules qualify.
func (discoverer *FilesystemRepositoryDiscoverer) IsGitRepository(directory string) bool {
	_, statError := os.Lstat(filepath.Join(directory, gitMetadataDirectoryNameConstant))
	return statError == nil
}

// DiscoverRepositories walks the provided roots and returns directories containing a .git entry.
// Unreadable nested directories are skipped; an unreadable root is an error.
func (discoverer *FilesystemRepositoryDiscoverer) DiscoverRepositories(roots []string) ([]string, error) {
	seen := make(map[string]struct{})
	var repositories []string

	for _, root := range roots {
		walkError := filepath.WalkDir(root, func(path string, directoryEntry fs.DirEntry, walkError error) error {
			if walkError != nil {
				if path == root {
					return walkError
				}
				return nil
			}

			if directoryEntry.Name() != gitMetadataDirectoryNameConstant {
				return nil
			}

			repositoryPath := filepath.Dir(path)
			if _, alreadySeen := seen[repositoryPath]; !alreadySeen {
				seen[repositoryPath] = struct{}{}
				repositories = append(repositories, repositoryPath)
			}

			if directoryEntry.IsDir() {
				return fs.SkipDir
			}
			return nil
		})
		if walkError != nil {
			return nil, walkError
		}
	}

	sort.Strings(repositories)
	return repositories, nil
}
