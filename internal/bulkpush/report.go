package bulkpush

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/temirov/gitbulkpush/internal/repos/shared"
	"github.com/temirov/gitbulkpush/internal/utils"
)

// ReportFormat selects how a RunReport is rendered.
type ReportFormat string

// Supported report formats.
const (
	ReportFormatText ReportFormat = "text"
	ReportFormatYAML ReportFormat = "yaml"
)

const (
	unsupportedReportFormatMessageConstant = "unsupported report format"
	unsupportedReportFormatTemplate        = "%w: %q"
	reportWriterMissingMessageConstant     = "report writer not configured"
	committedStatusLabelConstant           = "COMMITTED"
	cleanStatusLabelConstant               = "CLEAN"
	pushedStatusLabelConstant              = "PUSHED"
	upToDateStatusLabelConstant            = "UP-TO-DATE"
	failedStatusLabelConstant              = "FAILED"
	rootFailedStatusLabelConstant          = "ROOT FAILED"
	outcomeLineTemplate                    = "%s: %s, %s"
	failureLineTemplate                    = "%s: %s (%s): %v"
	rootFailureLineTemplate                = "%s: %s: %v"
	totalsLineTemplate                     = "Total: %d synchronized, %d committed, %d pushed, %d failed, %d skipped"
	yamlIndentationConstant                = 2
	encodeReportErrorTemplate              = "failed to encode report: %w"
	writeReportErrorTemplate               = "failed to write report: %w"
)

// ErrUnsupportedReportFormat indicates an unknown report format name.
var ErrUnsupportedReportFormat = errors.New(unsupportedReportFormatMessageConstant)

// ErrReportWriterNotConfigured indicates Render was called without a destination.
var ErrReportWriterNotConfigured = errors.New(reportWriterMissingMessageConstant)

// SupportedReportFormats lists every format name ParseReportFormat accepts.
func SupportedReportFormats() []string {
	return []string{string(ReportFormatText), string(ReportFormatYAML)}
}

// ParseReportFormat normalizes a user supplied format name.
func ParseReportFormat(rawFormat string) (ReportFormat, error) {
	normalized := ReportFormat(strings.ToLower(strings.TrimSpace(rawFormat)))
	switch normalized {
	case ReportFormatText, ReportFormatYAML:
		return normalized, nil
	case "":
		return ReportFormatText, nil
	default:
		return "", fmt.Errorf(unsupportedReportFormatTemplate, ErrUnsupportedReportFormat, rawFormat)
	}
}

// ReportRenderer writes a RunReport in the selected format.
type ReportRenderer struct {
	format       ReportFormat
	colorEnabled bool
}

// NewReportRenderer constructs a renderer; colorEnabled only affects the text format.
func NewReportRenderer(format ReportFormat, colorEnabled bool) ReportRenderer {
	if len(format) == 0 {
		format = ReportFormatText
	}
	return ReportRenderer{format: format, colorEnabled: colorEnabled}
}

// Render writes the report to writer.
func (renderer ReportRenderer) Render(writer io.Writer, report RunReport) error {
	if writer == nil {
		return ErrReportWriterNotConfigured
	}

	switch renderer.format {
	case ReportFormatText:
		flushingWriter := utils.NewFlushingWriter(writer)
		renderer.renderText(shared.NewWriterReporter(flushingWriter), report)
		if writeError := flushingWriter.Err(); writeError != nil {
			return fmt.Errorf(writeReportErrorTemplate, writeError)
		}
		return nil
	case ReportFormatYAML:
		return renderYAML(writer, report)
	default:
		return fmt.Errorf(unsupportedReportFormatTemplate, ErrUnsupportedReportFormat, string(renderer.format))
	}
}

func (renderer ReportRenderer) renderText(reporter shared.Reporter, report RunReport) {
	committedLabel := renderer.paint(color.FgGreen)
	neutralLabel := renderer.paint(color.Faint)
	pushedLabel := renderer.paint(color.FgCyan)
	failedLabel := renderer.paint(color.FgRed, color.Bold)

	for _, outcome := range report.Outcomes {
		commitStatus := neutralLabel(cleanStatusLabelConstant)
		if outcome.Committed {
			commitStatus = committedLabel(committedStatusLabelConstant)
		}
		pushStatus := neutralLabel(upToDateStatusLabelConstant)
		if outcome.Pushed {
			pushStatus = pushedLabel(pushedStatusLabelConstant)
		}
		reporter.Linef(outcomeLineTemplate, outcome.Repository.Name(), commitStatus, pushStatus)
	}

	for _, failure := range report.Failures {
		reporter.Linef(failureLineTemplate, failedLabel(failedStatusLabelConstant), failure.RepositoryPath, failure.Stage, failure.Error)
	}

	for _, rootFailure := range report.RootFailures {
		reporter.Linef(rootFailureLineTemplate, failedLabel(rootFailedStatusLabelConstant), rootFailure.RootPath, rootFailure.Error)
	}

	reporter.Linef(
		totalsLineTemplate,
		len(report.Outcomes),
		report.CommittedCount(),
		report.PushedCount(),
		len(report.Failures)+len(report.RootFailures),
		len(report.SkippedDirectories),
	)
}

func (renderer ReportRenderer) paint(attributes ...color.Attribute) func(a ...any) string {
	if !renderer.colorEnabled {
		return fmt.Sprint
	}
	painter := color.New(attributes...)
	painter.EnableColor()
	return painter.SprintFunc()
}

type reportDocument struct {
	Repositories       []outcomeDocument     `yaml:"repositories"`
	Failures           []failureDocument     `yaml:"failures,omitempty"`
	RootFailures       []rootFailureDocument `yaml:"root_failures,omitempty"`
	SkippedDirectories []string              `yaml:"skipped_directories,omitempty"`
	Totals             totalsDocument        `yaml:"totals"`
}

type outcomeDocument struct {
	Name      string `yaml:"name"`
	Path      string `yaml:"path"`
	Committed bool   `yaml:"committed"`
	Pushed    bool   `yaml:"pushed"`
}

type failureDocument struct {
	Path  string `yaml:"path"`
	Stage string `yaml:"stage"`
	Error string `yaml:"error"`
}

type rootFailureDocument struct {
	Root  string `yaml:"root"`
	Error string `yaml:"error"`
}

type totalsDocument struct {
	Synchronized int `yaml:"synchronized"`
	Committed    int `yaml:"committed"`
	Pushed       int `yaml:"pushed"`
	Failed       int `yaml:"failed"`
	Skipped      int `yaml:"skipped"`
}

func renderYAML(writer io.Writer, report RunReport) error {
	document := reportDocument{
		Repositories: make([]outcomeDocument, 0, len(report.Outcomes)),
		Totals: totalsDocument{
			Synchronized: len(report.Outcomes),
			Committed:    report.CommittedCount(),
			Pushed:       report.PushedCount(),
			Failed:       len(report.Failures) + len(report.RootFailures),
			Skipped:      len(report.SkippedDirectories),
		},
		SkippedDirectories: report.SkippedDirectories,
	}

	for _, outcome := range report.Outcomes {
		document.Repositories = append(document.Repositories, outcomeDocument{
			Name:      outcome.Repository.Name(),
			Path:      outcome.Repository.Path(),
			Committed: outcome.Committed,
			Pushed:    outcome.Pushed,
		})
	}
	for _, failure := range report.Failures {
		document.Failures = append(document.Failures, failureDocument{Path: failure.RepositoryPath, Stage: string(failure.Stage), Error: errorText(failure.Error)})
	}
	for _, rootFailure := range report.RootFailures {
		document.RootFailures = append(document.RootFailures, rootFailureDocument{Root: rootFailure.RootPath, Error: errorText(rootFailure.Error)})
	}

	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(yamlIndentationConstant)
	if encodeError := encoder.Encode(document); encodeError != nil {
		return fmt.Errorf(encodeReportErrorTemplate, encodeError)
	}
	if closeError := encoder.Close(); closeError != nil {
		return fmt.Errorf(encodeReportErrorTemplate, closeError)
	}
	return nil
}

func errorText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
