package bulkpush

import "fmt"

const (
	synchronizationErrorTemplateConstant = "synchronizing %s failed during %s: %v"
)

// SynchronizationStage names a step of the synchronization cycle.
type SynchronizationStage string

// Synchronization stages in execution order. StageResolve covers turning a
// discovered path into a Repository, before any git command runs.
const (
	StageResolve SynchronizationStage = "resolve"
	StageStatus  SynchronizationStage = "status"
	StageAdd     SynchronizationStage = "add"
	StageCommit  SynchronizationStage = "commit"
	StagePush    SynchronizationStage = "push"
)

// SyncOutcome records what a completed synchronization cycle did to one repository.
type SyncOutcome struct {
	Repository Repository
	// Committed is true when the working tree was dirty and a commit was created.
	Committed bool
	// Pushed is true when at least one remote reference was updated.
	Pushed bool
}

// SynchronizationError reports the stage at which a repository's cycle aborted.
type SynchronizationError struct {
	RepositoryPath string
	Stage          SynchronizationStage
	Cause          error
}

func (synchronizationError *SynchronizationError) Error() string {
	return fmt.Sprintf(synchronizationErrorTemplateConstant, synchronizationError.RepositoryPath, synchronizationError.Stage, synchronizationError.Cause)
}

// Unwrap exposes the underlying command failure.
func (synchronizationError *SynchronizationError) Unwrap() error {
	return synchronizationError.Cause
}

// RepositoryFailure captures a repository whose cycle aborted.
type RepositoryFailure struct {
	RepositoryPath string
	Stage          SynchronizationStage
	Error          error
}

// RootFailure captures a root directory that could not be scanned.
type RootFailure struct {
	RootPath string
	Error    error
}

// RunReport aggregates the results of one bulk run in processing order.
type RunReport struct {
	Outcomes           []SyncOutcome
	Failures           []RepositoryFailure
	RootFailures       []RootFailure
	SkippedDirectories []string
}

// CommittedCount returns the number of repositories that received a commit.
func (report RunReport) CommittedCount() int {
	count := 0
	for _, outcome := range report.Outcomes {
		if outcome.Committed {
			count++
		}
	}
	return count
}

// PushedCount returns the number of repositories whose push updated a remote.
func (report RunReport) PushedCount() int {
	count := 0
	for _, outcome := range report.Outcomes {
		if outcome.Pushed {
			count++
		}
	}
	return count
}
