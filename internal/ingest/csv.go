// Package ingest reads historical order exports and normalizes them
// into ledger rows for the bulk migration.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// Record is one raw row of an order export, untyped. Field values are
// kept as strings; Normalize is responsible for parsing and for
// discarding rows that do not parse.
type Record struct {
	OrderID      string
	CustomerID   string
	City         string
	Product      string
	OrderDate    string
	LeadTimeDays string
	Status       string
	Quantity     string
	UnitPrice    string
	StockBefore  string
	StockAfter   string
}

// column names expected in the export header, in any order.
var requiredColumns = []string{
	"order_id", "customer_id", "city", "product", "order_date",
	"lead_time_days", "status", "quantity", "unit_price",
	"stock_before", "stock_after",
}

// ReadFile opens a CSV export and decodes every data row into a Record.
// The first row must be a header naming all required columns; extra
// columns are ignored.
func ReadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// Read decodes CSV order records from r. See ReadFile.
func Read(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(strings.ToLower(name))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("missing column %q in header", col)
		}
	}

	field := func(row []string, col string) string {
		i := index[col]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	records := make([]Record, 0)
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		records = append(records, Record{
			OrderID:      field(row, "order_id"),
			CustomerID:   field(row, "customer_id"),
			City:         field(row, "city"),
			Product:      field(row, "product"),
			OrderDate:    field(row, "order_date"),
			LeadTimeDays: field(row, "lead_time_days"),
			Status:       field(row, "status"),
			Quantity:     field(row, "quantity"),
			UnitPrice:    field(row, "unit_price"),
			StockBefore:  field(row, "stock_before"),
			StockAfter:   field(row, "stock_after"),
		})
	}
	return records, nil
}
