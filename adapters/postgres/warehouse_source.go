package postgres

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"time"

	"github.com/jmoiron/sqlx"

	apperrors "storekpi/internal/errors"

	"storekpi/domain/retail"
	"storekpi/ports"
)

// orderRow mirrors one warehouse row. Column names follow the snake_case
// warehouse schema, not the export's spreadsheet headers.
type orderRow struct {
	OrderDate   time.Time `db:"order_date"`
	Region      string    `db:"region"`
	State       string    `db:"state"`
	Category    string    `db:"category"`
	SubCategory string    `db:"sub_category"`
	Segment     string    `db:"segment"`
	ProductName string    `db:"product_name"`
	Sales       float64   `db:"sales"`
	Profit      float64   `db:"profit"`
	Quantity    int       `db:"quantity"`
}

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)

// WarehouseSource loads the order dataset from a relational warehouse table.
// Read-only: it issues one SELECT at startup and never writes. It implements
// ports.DatasetSource.
type WarehouseSource struct {
	db    *sqlx.DB
	table string
}

// NewWarehouseSource creates a warehouse source over an open connection.
// The caller owns the connection's lifecycle.
func NewWarehouseSource(db *sqlx.DB, table string) *WarehouseSource {
	return &WarehouseSource{db: db, table: table}
}

// Load reads the whole table into an immutable dataset. Rows with a NULL
// date or NULL measures are excluded the same way the file source drops
// unparseable rows, and surface in the dropped count.
func (s *WarehouseSource) Load(ctx context.Context) (*ports.LoadResult, error) {
	if !identPattern.MatchString(s.table) {
		return nil, apperrors.SourceError("warehouse", fmt.Errorf("invalid table name %q", s.table))
	}
	log.Printf("[WarehouseSource] Loading orders from table %s", s.table)

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, s.table)
	if err := s.db.GetContext(ctx, &total, countQuery); err != nil {
		return nil, apperrors.SourceError("warehouse", err)
	}

	query := fmt.Sprintf(`SELECT
		order_date,
		COALESCE(region, '') AS region,
		COALESCE(state, '') AS state,
		COALESCE(category, '') AS category,
		COALESCE(sub_category, '') AS sub_category,
		COALESCE(segment, '') AS segment,
		COALESCE(product_name, '') AS product_name,
		sales, profit, quantity
	FROM %s
	WHERE order_date IS NOT NULL
	  AND sales IS NOT NULL AND profit IS NOT NULL AND quantity IS NOT NULL
	ORDER BY order_date`, s.table)

	start := time.Now()
	var rows []orderRow
	if err := s.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, apperrors.SourceError("warehouse", err)
	}
	log.Printf("[WarehouseSource] Table read in %.2fms (%d rows)", float64(time.Since(start).Nanoseconds())/1e6, len(rows))

	records := make([]retail.Record, 0, len(rows))
	for _, row := range rows {
		// Timestamp columns are normalized to midnight UTC so the
		// inclusive date-range filter treats every order on a day alike.
		d := time.Date(row.OrderDate.Year(), row.OrderDate.Month(), row.OrderDate.Day(), 0, 0, 0, 0, time.UTC)
		records = append(records, retail.Record{
			OrderDate:   d,
			Year:        d.Year(),
			Quarter:     retail.QuarterLabel(d),
			Region:      row.Region,
			State:       row.State,
			Category:    row.Category,
			SubCategory: row.SubCategory,
			Segment:     row.Segment,
			ProductName: row.ProductName,
			Sales:       row.Sales,
			Profit:      row.Profit,
			Quantity:    row.Quantity,
		})
	}

	dropped := total - len(records)
	if dropped > 0 {
		log.Printf("[WarehouseSource] WARN excluded %d of %d rows with NULL date or measures", dropped, total)
	}

	return &ports.LoadResult{
		Dataset:     retail.NewDataset(records),
		Source:      fmt.Sprintf("postgres:%s", s.table),
		RowsRead:    total,
		RowsDropped: dropped,
		LoadedAt:    time.Now(),
	}, nil
}
