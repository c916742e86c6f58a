package shared

import (
	"fmt"
	"io"
	"os"
	"strings"
)

const repositoryProblemTemplateConstant = "warning: %s: %s\n"

// ProblemReporter announces repositories that could not be inspected.
type ProblemReporter interface {
	ReportRepositoryProblem(repositoryName string, problem error)
}

type writerProblemReporter struct {
	writer io.Writer
}

// NewWriterProblemReporter writes one warning line per problem to writer.
// A nil writer falls back to standard error so warnings never mix with report output.
func NewWriterProblemReporter(writer io.Writer) ProblemReporter {
	if writer == nil {
		writer = os.Stderr
	}
	return writerProblemReporter{writer: writer}
}

// ReportRepositoryProblem flattens multi-line git diagnostics onto the warning line.
func (reporter writerProblemReporter) ReportRepositoryProblem(repositoryName string, problem error) {
	description := "unknown problem"
	if problem != nil {
		description = strings.Join(strings.Fields(problem.Error()), " ")
	}
	fmt.Fprintf(reporter.writer, repositoryProblemTemplateConstant, repositoryName, description)
}
