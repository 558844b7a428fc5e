package discovery_test

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gitbulkpush/internal/repos/discovery"
)

const (
	developerDirectoryName             = "Dev"
	engineeringGroupDirectoryName      = "Group1"
	applicationRepositoryDirectoryName = "Repo1"
	serviceRepositoryDirectoryName     = "Repo2"
	toolsRepositoryDirectoryName       = "Repo3"
	notesDirectoryName                 = "notes"
	gitMetadataDirectoryName           = ".git"
	singleRootSubtestTitle             = "discoversRepositoriesFromSingleRoot"
	combinedRootsSubtestTitle          = "discoversRepositoriesFromParentAndNestedRoots"
	repositoryDirectoryPermissions     = 0o755
	repositoryFilePermissions          = 0o644
)

type repositoryDefinition struct {
	directorySegments []string
}

func (definition repositoryDefinition) repositoryPath(rootDirectory string) string {
	segments := append([]string{rootDirectory}, definition.directorySegments...)
	return filepath.Join(segments...)
}

func (definition repositoryDefinition) gitMetadataPath(rootDirectory string) string {
	segments := append([]string{rootDirectory}, definition.directorySegments...)
	segments = append(segments, gitMetadataDirectoryName)
	return filepath.Join(segments...)
}

type filesystemDiscoveryTestScenario struct {
	title                      string
	rootDirectoriesConstructor func(string) []string
}

func (scenario filesystemDiscoveryTestScenario) execute(
	testFramework *testing.T,
	repositoryDefinitions []repositoryDefinition,
) {
	testFramework.Helper()

	temporaryRootDirectory := testFramework.TempDir()
	for _, repositoryDefinition := range repositoryDefinitions {
		gitMetadataDirectoryPath := repositoryDefinition.gitMetadataPath(temporaryRootDirectory)
		creationError := os.MkdirAll(gitMetadataDirectoryPath, repositoryDirectoryPermissions)
		require.NoError(testFramework, creationError)
	}

	repositoryDiscoverer := discovery.NewFilesystemRepositoryDiscoverer()
	discoveredRepositories, discoveryError := repositoryDiscoverer.DiscoverRepositories(
		scenario.rootDirectoriesConstructor(temporaryRootDirectory),
	)
	require.NoError(testFramework, discoveryError)

	expectedRepositories := make([]string, 0, len(repositoryDefinitions))
	for _, repositoryDefinition := range repositoryDefinitions {
		expectedRepositories = append(expectedRepositories, repositoryDefinition.repositoryPath(temporaryRootDirectory))
	}

	sort.Strings(expectedRepositories)
	require.Equal(testFramework, expectedRepositories, discoveredRepositories)
}

func TestFilesystemRepositoryDiscovererDiscoversNestedLayouts(testFramework *testing.T) {
	repositoryDefinitions := []repositoryDefinition{
		{directorySegments: []string{developerDirectoryName, engineeringGroupDirectoryName, applicationRepositoryDirectoryName}},
		{directorySegments: []string{developerDirectoryName, engineeringGroupDirectoryName, serviceRepositoryDirectoryName}},
		{directorySegments: []string{developerDirectoryName, toolsRepositoryDirectoryName}},
	}

	testScenarios := []filesystemDiscoveryTestScenario{
		{
			title: singleRootSubtestTitle,
			rootDirectoriesConstructor: func(rootDirectory string) []string {
				return []string{rootDirectory}
			},
		},
		{
			title: combinedRootsSubtestTitle,
			rootDirectoriesConstructor: func(rootDirectory string) []string {
				developerDirectoryPath := filepath.Join(rootDirectory, developerDirectoryName)
				engineeringGroupDirectoryPath := filepath.Join(developerDirectoryPath, engineeringGroupDirectoryName)
				return []string{rootDirectory, developerDirectoryPath, engineeringGroupDirectoryPath}
			},
		},
	}

	for _, testScenario := range testScenarios {
		testFramework.Run(testScenario.title, func(testFramework *testing.T) {
			testScenario.execute(testFramework, repositoryDefinitions)
		})
	}
}

func TestFilesystemRepositoryDiscovererListsImmediateChildDirectories(testFramework *testing.T) {
	rootDirectory := testFramework.TempDir()
	for _, directoryName := range []string{toolsRepositoryDirectoryName, applicationRepositoryDirectoryName, notesDirectoryName} {
		require.NoError(testFramework, os.MkdirAll(filepath.Join(rootDirectory, directoryName, engineeringGroupDirectoryName), repositoryDirectoryPermissions))
	}
	require.NoError(testFramework, os.WriteFile(filepath.Join(rootDirectory, "README.md"), []byte("readme"), repositoryFilePermissions))

	repositoryDiscoverer := discovery.NewFilesystemRepositoryDiscoverer()
	candidates, listError := repositoryDiscoverer.ListCandidateDirectories(rootDirectory)
	require.NoError(testFramework, listError)

	require.Equal(testFramework, []string{
		filepath.Join(rootDirectory, applicationRepositoryDirectoryName),
		filepath.Join(rootDirectory, toolsRepositoryDirectoryName),
		filepath.Join(rootDirectory, notesDirectoryName),
	}, candidates)
}

func TestFilesystemRepositoryDiscovererListFailsForMissingRoot(testFramework *testing.T) {
	repositoryDiscoverer := discovery.NewFilesystemRepositoryDiscoverer()
	_, listError := repositoryDiscoverer.ListCandidateDirectories(filepath.Join(testFramework.TempDir(), "missing"))
	require.Error(testFramework, listError)
}

func TestFilesystemRepositoryDiscovererWalkFailsForMissingRoot(testFramework *testing.T) {
	repositoryDiscoverer := discovery.NewFilesystemRepositoryDiscoverer()
	_, walkError := repositoryDiscoverer.DiscoverRepositories([]string{filepath.Join(testFramework.TempDir(), "missing")})
	require.Error(testFramework, walkError)
}

func TestFilesystemRepositoryDiscovererIsGitRepository(testFramework *testing.T) {
	rootDirectory := testFramework.TempDir()

	directoryRepository := filepath.Join(rootDirectory, applicationRepositoryDirectoryName)
	require.NoError(testFramework, os.MkdirAll(filepath.Join(directoryRepository, gitMetadataDirectoryName), repositoryDirectoryPermissions))

	worktreeRepository := filepath.Join(rootDirectory, serviceRepositoryDirectoryName)
	require.NoError(testFramework, os.MkdirAll(worktreeRepository, repositoryDirectoryPermissions))
	require.NoError(testFramework, os.WriteFile(filepath.Join(worktreeRepository, gitMetadataDirectoryName), []byte("gitdir: ../main/.git/worktrees/service\n"), repositoryFilePermissions))

	nestedOnly := filepath.Join(rootDirectory, developerDirectoryName)
	require.NoError(testFramework, os.MkdirAll(filepath.Join(nestedOnly, toolsRepositoryDirectoryName, gitMetadataDirectoryName), repositoryDirectoryPermissions))

	repositoryDiscoverer := discovery.NewFilesystemRepositoryDiscoverer()
	require.True(testFramework, repositoryDiscoverer.IsGitRepository(directoryRepository))
	require.True(testFramework, repositoryDiscoverer.IsGitRepository(worktreeRepository))
	require.False(testFramework, repositoryDiscoverer.IsGitRepository(nestedOnly))
	require.False(testFramework, repositoryDiscoverer.IsGitRepository(filepath.Join(rootDirectory, notesDirectoryName)))
}
