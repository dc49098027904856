package service

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	jmespath "github.com/jmespath-community/go-jmespath"

	"github.com/edutools/mark-register/internal/domain/model"
)

// JMESPathEvaluator abstracts JMESPath operations for testability.
type JMESPathEvaluator interface {
	Validate(expr string) error
	Evaluate(expr string, data any) (any, error)
}

// jmespathLibEvaluator implements JMESPathEvaluator using go-jmespath.
type jmespathLibEvaluator struct{}

func (j jmespathLibEvaluator) Validate(expr string) error {
	if strings.TrimSpace(expr) == "" {
		return nil
	}
	_, err := jmespath.Compile(expr)
	return err
}

func (j jmespathLibEvaluator) Evaluate(expr string, data any) (any, error) {
	return jmespath.Search(expr, data)
}

// MarkReportProvider yields aggregated report rows for a pattern.
type MarkReportProvider interface {
	Report(ctx context.Context, patternID string) ([]model.MarkReportRow, error)
}

// ExportColumn appends one derived column to the CSV: Header names it,
// Expression is a JMESPath query evaluated against each report row.
type ExportColumn struct {
	Header     string
	Expression string
}

// ExportServiceOptions groups dependencies for ExportService.
type ExportServiceOptions struct {
	Reports   MarkReportProvider
	Columns   []ExportColumn
	Evaluator JMESPathEvaluator
}

// ExportService renders mark reports as CSV downloads.
type ExportService struct {
	reports MarkReportProvider
	columns []ExportColumn
	jems    JMESPathEvaluator
}

// NewExportService constructs a new ExportService. Extra column expressions
// are validated up front so a bad config fails at startup, not per download.
func NewExportService(opts ExportServiceOptions) (*ExportService, error) {
	if opts.Reports == nil {
		panic("MarkReportProvider is required")
	}
	jems := opts.Evaluator
	if jems == nil {
		jems = jmespathLibEvaluator{}
	}
	for _, col := range opts.Columns {
		if strings.TrimSpace(col.Header) == "" {
			return nil, fmt.Errorf("export column with expression %q has no header", col.Expression)
		}
		if err := jems.Validate(col.Expression); err != nil {
			return nil, fmt.Errorf("export column %q: %w", col.Header, err)
		}
	}
	return &ExportService{reports: opts.Reports, columns: opts.Columns, jems: jems}, nil
}

// WriteCSV streams the pattern's report to w. The fixed columns are the
// student's random ID, one column per course outcome, and the total; any
// configured extra columns follow.
func (s *ExportService) WriteCSV(ctx context.Context, patternID string, w io.Writer) error {
	rows, err := s.reports.Report(ctx, patternID)
	if err != nil {
		return fmt.Errorf("build report: %w", err)
	}

	cw := csv.NewWriter(w)

	header := make([]string, 0, 2+model.MaxCourseOutcome+len(s.columns))
	header = append(header, "Random ID")
	for co := model.MinCourseOutcome; co <= model.MaxCourseOutcome; co++ {
		header = append(header, fmt.Sprintf("CO %d", co))
	}
	header = append(header, "Total")
	for _, col := range s.columns {
		header = append(header, col.Header)
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, row := range rows {
		record := make([]string, 0, len(header))
		record = append(record, row.StudentID)
		for co := model.MinCourseOutcome; co <= model.MaxCourseOutcome; co++ {
			record = append(record, strconv.Itoa(row.OutcomeTotals[co]))
		}
		record = append(record, strconv.Itoa(row.Total))

		for _, col := range s.columns {
			value, evalErr := s.evaluateColumn(col, row)
			if evalErr != nil {
				return fmt.Errorf("column %q for student %s: %w", col.Header, row.StudentID, evalErr)
			}
			record = append(record, value)
		}

		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// evaluateColumn runs the column expression against the row's JSON shape.
func (s *ExportService) evaluateColumn(col ExportColumn, row model.MarkReportRow) (string, error) {
	raw, err := json.Marshal(row)
	if err != nil {
		return "", fmt.Errorf("encode row: %w", err)
	}
	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return "", fmt.Errorf("decode row: %w", err)
	}

	result, err := s.jems.Evaluate(col.Expression, data)
	if err != nil {
		return "", err
	}
	return formatCSVValue(result), nil
}

func formatCSVValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		// JSON numbers decode as float64; render integers without the decimal.
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		raw, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprintf("%v", t)
		}
		return string(raw)
	}
}
