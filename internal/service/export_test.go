package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edutools/mark-register/internal/domain/model"
)

type staticReportProvider struct {
	rows []model.MarkReportRow
	err  error
}

func (p staticReportProvider) Report(context.Context, string) ([]model.MarkReportRow, error) {
	return p.rows, p.err
}

func sampleReportRows() []model.MarkReportRow {
	return []model.MarkReportRow{
		{
			StudentID:     "R-001",
			OutcomeTotals: map[int]int{1: 13, 2: 0, 3: 0, 4: 0, 5: 0, 6: 0},
			Total:         13,
		},
		{
			StudentID:     "R-002",
			OutcomeTotals: map[int]int{1: 7, 2: 0, 3: 10, 4: 0, 5: 0, 6: 0},
			Total:         17,
		},
	}
}

func TestExportService_WriteCSV(t *testing.T) {
	svc, err := NewExportService(ExportServiceOptions{
		Reports: staticReportProvider{rows: sampleReportRows()},
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.WriteCSV(context.Background(), "pattern-1", &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"Random ID", "CO 1", "CO 2", "CO 3", "CO 4", "CO 5", "CO 6", "Total"}, records[0])
	assert.Equal(t, []string{"R-001", "13", "0", "0", "0", "0", "0", "13"}, records[1])
	assert.Equal(t, []string{"R-002", "7", "0", "10", "0", "0", "0", "17"}, records[2])
}

func TestExportService_WriteCSV_ExtraColumns(t *testing.T) {
	svc, err := NewExportService(ExportServiceOptions{
		Reports: staticReportProvider{rows: sampleReportRows()},
		Columns: []ExportColumn{
			{Header: "Outcome One", Expression: `outcome_totals."1"`},
			{Header: "Half Total", Expression: "total"},
		},
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.WriteCSV(context.Background(), "pattern-1", &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	header := records[0]
	assert.Equal(t, "Outcome One", header[len(header)-2])
	assert.Equal(t, "Half Total", header[len(header)-1])

	row := records[1]
	assert.Equal(t, "13", row[len(row)-2])
	assert.Equal(t, "13", row[len(row)-1])
}

func TestNewExportService_RejectsBadExpression(t *testing.T) {
	_, err := NewExportService(ExportServiceOptions{
		Reports: staticReportProvider{},
		Columns: []ExportColumn{{Header: "Broken", Expression: "total["}},
	})
	require.Error(t, err)
}

func TestNewExportService_RejectsMissingHeader(t *testing.T) {
	_, err := NewExportService(ExportServiceOptions{
		Reports: staticReportProvider{},
		Columns: []ExportColumn{{Expression: "total"}},
	})
	require.Error(t, err)
}

func TestExportService_WriteCSV_EmptyReport(t *testing.T) {
	svc, err := NewExportService(ExportServiceOptions{
		Reports: staticReportProvider{},
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.WriteCSV(context.Background(), "pattern-1", &buf))

	records, readErr := csv.NewReader(&buf).ReadAll()
	require.NoError(t, readErr)
	require.Len(t, records, 1) // header only
}
