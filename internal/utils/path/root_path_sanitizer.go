package pathutils

import (
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
)

const (
	booleanLiteralTrueValueConstant  = "true"
	booleanLiteralFalseValueConstant = "false"
	windowsOperatingSystemConstant   = "windows"
)

// RootPathSanitizerConfiguration controls how root directory arguments are normalized.
type RootPathSanitizerConfiguration struct {
	// ExcludeBooleanLiteralCandidates drops "true"/"false" values left behind by toggle flags.
	ExcludeBooleanLiteralCandidates bool
	// PruneNestedPaths drops roots contained in another provided root.
	PruneNestedPaths bool
}

// RootPathSanitizer turns raw root arguments into cleaned, de-duplicated directory paths.
type RootPathSanitizer struct {
	homeExpander  *HomeExpander
	configuration RootPathSanitizerConfiguration
}

// NewRootPathSanitizer constructs a RootPathSanitizer with the provided configuration.
// A nil expander falls back to the operating system home directory lookup.
func NewRootPathSanitizer(homeExpander *HomeExpander, configuration RootPathSanitizerConfiguration) *RootPathSanitizer {
	if homeExpander == nil {
		homeExpander = NewHomeExpander()
	}
	return &RootPathSanitizer{homeExpander: homeExpander, configuration: configuration}
}

// Sanitize trims whitespace, expands "~", cleans each path and removes repeats while
// keeping the first occurrence order. It returns nil when nothing remains.
func (sanitizer *RootPathSanitizer) Sanitize(candidatePaths []string) []string {
	if sanitizer == nil {
		return NewRootPathSanitizer(nil, RootPathSanitizerConfiguration{}).Sanitize(candidatePaths)
	}

	sanitizedPaths := make([]string, 0, len(candidatePaths))
	seenComparisons := make(map[string]struct{}, len(candidatePaths))
	for _, candidatePath := range candidatePaths {
		trimmedCandidate := strings.TrimSpace(candidatePath)
		if len(trimmedCandidate) == 0 {
			continue
		}
		if sanitizer.configuration.ExcludeBooleanLiteralCandidates && isBooleanLiteral(trimmedCandidate) {
			continue
		}

		cleanedPath := filepath.Clean(sanitizer.homeExpander.Expand(trimmedCandidate))
		comparison := comparisonPath(canonicalizePath(cleanedPath))
		if _, seen := seenComparisons[comparison]; seen {
			continue
		}
		seenComparisons[comparison] = struct{}{}
		sanitizedPaths = append(sanitizedPaths, cleanedPath)
	}

	if len(sanitizedPaths) == 0 {
		return nil
	}

	if sanitizer.configuration.PruneNestedPaths {
		return pruneNestedPaths(sanitizedPaths)
	}

	return sanitizedPaths
}

func isBooleanLiteral(candidate string) bool {
	loweredCandidate := strings.ToLower(candidate)
	return loweredCandidate == booleanLiteralTrueValueConstant || loweredCandidate == booleanLiteralFalseValueConstant
}

// pruneNestedPaths keeps a path only when no other candidate contains it.
func pruneNestedPaths(candidatePaths []string) []string {
	canonicalPaths := make([]string, len(candidatePaths))
	for index, candidatePath := range candidatePaths {
		canonicalPaths[index] = canonicalizePath(candidatePath)
	}

	pruned := make([]string, 0, len(candidatePaths))
	for candidateIndex, candidatePath := range candidatePaths {
		nested := slices.ContainsFunc(canonicalPaths, func(parent string) bool {
			return parent != canonicalPaths[candidateIndex] && isNestedPath(parent, canonicalPaths[candidateIndex])
		})
		if nested {
			continue
		}
		pruned = append(pruned, candidatePath)
	}
	return pruned
}

func canonicalizePath(path string) string {
	absolutePath, absoluteError := filepath.Abs(path)
	if absoluteError != nil {
		return filepath.Clean(path)
	}
	return absolutePath
}

func comparisonPath(path string) string {
	comparison := filepath.Clean(path)
	if runtime.GOOS == windowsOperatingSystemConstant {
		comparison = strings.ToLower(comparison)
	}
	return comparison
}

func isNestedPath(parent string, candidate string) bool {
	parentClean := comparisonPath(parent)
	candidateClean := comparisonPath(candidate)

	if len(candidateClean) <= len(parentClean) || !strings.HasPrefix(candidateClean, parentClean) {
		return false
	}
	if parentClean[len(parentClean)-1] == os.PathSeparator {
		return true
	}
	return candidateClean[len(parentClean)] == os.PathSeparator
}
