package config

import (
	"fmt"
	"strings"
)

// ExportConfig controls the CSV export of mark reports.
type ExportConfig struct {
	// ExtraColumns appends derived columns to every export. Each entry is
	// "Header=jmespath-expression"; entries are separated by semicolons, e.g.
	// EXPORT_EXTRA_COLUMNS="CO1+CO2=outcome_totals."1" + outcome_totals."2"".
	ExtraColumns []string `env:"EXPORT_EXTRA_COLUMNS" envSeparator:";"`
}

// ExportColumn is one parsed extra column definition.
type ExportColumn struct {
	Header     string
	Expression string
}

// ParseExtraColumns splits the configured entries into header/expression
// pairs. Malformed entries fail loudly so a bad deployment config is caught
// at startup.
func (e *ExportConfig) ParseExtraColumns() ([]ExportColumn, error) {
	columns := make([]ExportColumn, 0, len(e.ExtraColumns))
	for _, entry := range e.ExtraColumns {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		header, expr, ok := strings.Cut(entry, "=")
		if !ok || strings.TrimSpace(header) == "" {
			return nil, fmt.Errorf("export column %q: want \"Header=expression\"", entry)
		}
		columns = append(columns, ExportColumn{
			Header:     strings.TrimSpace(header),
			Expression: strings.TrimSpace(expr),
		})
	}
	return columns, nil
}
