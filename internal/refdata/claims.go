package refdata

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"

	"github.com/sells-group/insurance-advisor/internal/model"
)

// Claims dataset column names.
const (
	colCompany  = "Company"
	colCSR      = "Claims_Paid_Ratio_Death"
	colSolvency = "Solvency_2025"
)

// LoadInsurerStats reads the insurer claims dataset. CSV and XLSX sources
// are supported, chosen by file extension.
func LoadInsurerStats(ctx context.Context, path string) ([]model.InsurerStat, error) {
	var rows [][]string
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		rows, err = readXLSXRows(path)
	default:
		rows, err = readCSVRows(ctx, path)
	}
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, eris.Errorf("refdata: claims dataset %s is empty", path)
	}

	header := rows[0]
	companyIdx := columnIndex(header, colCompany)
	csrIdx := columnIndex(header, colCSR)
	solvencyIdx := columnIndex(header, colSolvency)
	if companyIdx < 0 {
		return nil, eris.Errorf("refdata: claims dataset %s has no %q column", path, colCompany)
	}

	stats := make([]model.InsurerStat, 0, len(rows)-1)
	for _, row := range rows[1:] {
		name := cell(row, companyIdx)
		if name == "" {
			zap.L().Warn("refdata: skipping claims row with empty company name")
			continue
		}
		stats = append(stats, model.InsurerStat{
			Name:     name,
			CSR:      parseRatio(cell(row, csrIdx)),
			Solvency: parseRatio(cell(row, solvencyIdx)),
		})
	}

	return stats, nil
}

// parseRatio parses a numeric cell, tolerating a trailing percent sign.
// Unparseable values coerce to 0 rather than failing the whole load.
func parseRatio(s string) float64 {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func readCSVRows(ctx context.Context, path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "refdata: open %s", path)
	}
	defer f.Close() //nolint:errcheck

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // allow variable fields

	var rows [][]string
	for {
		if ctx.Err() != nil {
			return nil, eris.Wrap(ctx.Err(), "refdata: csv read cancelled")
		}
		record, err := reader.Read()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, eris.Wrapf(err, "refdata: read csv %s", path)
		}
		rows = append(rows, record)
	}
}

func readXLSXRows(path string) ([][]string, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "refdata: open xlsx %s", path)
	}
	if len(f.Sheets) == 0 {
		return nil, eris.Errorf("refdata: xlsx %s has no sheets", path)
	}

	var rows [][]string
	for _, row := range f.Sheets[0].Rows {
		cells := make([]string, len(row.Cells))
		for i, c := range row.Cells {
			cells[i] = c.String()
		}
		rows = append(rows, cells)
	}
	return rows, nil
}
