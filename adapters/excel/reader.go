package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	apperrors "storekpi/internal/errors"

	"storekpi/domain/retail"
	"storekpi/ports"
)

// Required export columns, in the order records are assembled.
var requiredColumns = []string{
	"Order Date",
	"Region",
	"State",
	"Category",
	"Sub-Category",
	"Segment",
	"Product Name",
	"Sales",
	"Profit",
	"Quantity",
}

// Positions into the resolved column index.
const (
	colOrderDate = iota
	colRegion
	colState
	colCategory
	colSubCategory
	colSegment
	colProductName
	colSales
	colProfit
	colQuantity
)

// FileSource reads the superstore export from an .xlsx workbook or a CSV
// file. It implements ports.DatasetSource and is meant to be loaded exactly
// once at startup.
type FileSource struct {
	filePath string
	fileType string // "xlsx" or "csv"
	sheet    string // xlsx only; empty means the workbook's first sheet
}

// NewFileSource creates a file source, picking the reader from the file
// extension. Anything that is not .csv is treated as a workbook.
func NewFileSource(filePath, sheet string) *FileSource {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &FileSource{filePath: filePath, fileType: fileType, sheet: sheet}
}

// Load reads every row of the export into an immutable dataset. Rows whose
// date or numeric cells do not parse are dropped and counted rather than
// poisoning the sums; a missing required column fails the whole load.
func (s *FileSource) Load(ctx context.Context) (*ports.LoadResult, error) {
	log.Printf("[FileSource] Starting to read %s file: %s", s.fileType, s.filePath)

	if _, err := os.Stat(s.filePath); os.IsNotExist(err) {
		return nil, apperrors.LoadFailed(fmt.Sprintf("%s file not found: %s", strings.ToUpper(s.fileType), s.filePath), err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var rows [][]string
	var err error
	switch s.fileType {
	case "csv":
		rows, err = s.readCSVRows()
	default:
		rows, err = s.readExcelRows()
	}
	if err != nil {
		return nil, err
	}

	if len(rows) < 2 {
		return nil, apperrors.LoadFailed("export must have a header row and at least one data row", nil)
	}

	return s.processRows(rows)
}

// readExcelRows pulls all rows from the configured sheet, defaulting to the
// workbook's first sheet.
func (s *FileSource) readExcelRows() ([][]string, error) {
	startTime := time.Now()
	f, err := excelize.OpenFile(s.filePath)
	if err != nil {
		return nil, apperrors.LoadFailed("failed to open workbook", err)
	}
	defer f.Close()
	log.Printf("[FileSource] Workbook opened in %.2fms", float64(time.Since(startTime).Nanoseconds())/1e6)

	sheet := s.sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	readStart := time.Now()
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, apperrors.LoadFailed(fmt.Sprintf("failed to read sheet %q", sheet), err)
	}
	log.Printf("[FileSource] Sheet %q read in %.2fms (%d rows)", sheet, float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))

	return rows, nil
}

func (s *FileSource) readCSVRows() ([][]string, error) {
	file, err := os.Open(s.filePath)
	if err != nil {
		return nil, apperrors.LoadFailed("failed to open CSV file", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	readStart := time.Now()
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.LoadFailed("failed to read CSV file", err)
	}
	log.Printf("[FileSource] CSV file read in %.2fms (%d rows)", float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))

	return rows, nil
}

// processRows resolves the required columns against the header row, then
// converts each data row into a Record.
func (s *FileSource) processRows(rows [][]string) (*ports.LoadResult, error) {
	cols, err := mapColumns(rows[0])
	if err != nil {
		return nil, err
	}

	records := make([]retail.Record, 0, len(rows)-1)
	dropped := 0
	for i := 1; i < len(rows); i++ {
		rec, ok := buildRecord(rows[i], cols)
		if !ok {
			dropped++
			continue
		}
		records = append(records, rec)
	}

	if dropped > 0 {
		log.Printf("[FileSource] WARN dropped %d of %d rows with unparseable date or numeric cells", dropped, len(rows)-1)
	}
	log.Printf("[FileSource] %s file processed (%d records)", strings.ToUpper(s.fileType), len(records))

	return &ports.LoadResult{
		Dataset:     retail.NewDataset(records),
		Source:      s.filePath,
		RowsRead:    len(rows) - 1,
		RowsDropped: dropped,
		LoadedAt:    time.Now(),
	}, nil
}

// mapColumns locates every required column in the header row. Header cells
// are trimmed and matched case-insensitively; any required column left
// unresolved fails the load.
func mapColumns(header []string) ([]int, error) {
	byName := make(map[string]int, len(header))
	for i, cell := range header {
		byName[strings.ToLower(strings.TrimSpace(cell))] = i
	}

	cols := make([]int, len(requiredColumns))
	missing := make([]string, 0)
	for i, name := range requiredColumns {
		idx, ok := byName[strings.ToLower(name)]
		if !ok {
			missing = append(missing, name)
			continue
		}
		cols[i] = idx
	}
	if len(missing) > 0 {
		return nil, apperrors.LoadFailed(fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", ")), nil)
	}
	return cols, nil
}

// buildRecord converts one raw row. A false return means the row had an
// unparseable date or numeric cell and should be dropped.
func buildRecord(row []string, cols []int) (retail.Record, bool) {
	cell := func(pos int) string {
		idx := cols[pos]
		if idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	orderDate, ok := parseDate(cell(colOrderDate))
	if !ok {
		return retail.Record{}, false
	}
	sales, ok := parseAmount(cell(colSales))
	if !ok {
		return retail.Record{}, false
	}
	profit, ok := parseAmount(cell(colProfit))
	if !ok {
		return retail.Record{}, false
	}
	quantity, ok := parseCount(cell(colQuantity))
	if !ok {
		return retail.Record{}, false
	}

	return retail.Record{
		OrderDate:   orderDate,
		Year:        orderDate.Year(),
		Quarter:     retail.QuarterLabel(orderDate),
		Region:      cell(colRegion),
		State:       cell(colState),
		Category:    cell(colCategory),
		SubCategory: cell(colSubCategory),
		Segment:     cell(colSegment),
		ProductName: cell(colProductName),
		Sales:       sales,
		Profit:      profit,
		Quantity:    quantity,
	}, true
}
