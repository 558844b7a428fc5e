// Package bulkpush commits and pushes outstanding work across many local git
// repositories.
//
// Service drives one repository through status, add, commit and push and
// interprets git's output to decide what happened. Runner walks the configured
// roots in order, synchronizing one repository at a time, and folds the results
// into a RunReport that ReportRenderer prints. A failing repository is recorded
// and never stops the run.
package bulkpush
