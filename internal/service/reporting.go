package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/freshmarket/inventory-service/internal/repository"
)

// Reporter runs the descriptive aggregations over the ledger and can
// persist each one as a CSV artifact. Chart rendering is deliberately
// out of scope; the artifacts are plain tables.
type Reporter struct {
	repo *repository.ReportRepo
}

// NewReporter constructs a Reporter over the given report repository.
func NewReporter(repo *repository.ReportRepo) *Reporter {
	return &Reporter{repo: repo}
}

// TopProductByCity returns each city's best-selling product by units.
func (r *Reporter) TopProductByCity(ctx context.Context) ([]repository.CityTopProduct, error) {
	return r.repo.TopProductByCity(ctx)
}

// DeliveryIssuesByProduct returns products ranked by delayed or
// cancelled order count.
func (r *Reporter) DeliveryIssuesByProduct(ctx context.Context) ([]repository.ProductIssueCount, error) {
	return r.repo.DeliveryIssuesByProduct(ctx)
}

// DeliverySuccessByCity returns per-city delivery success percentages.
func (r *Reporter) DeliverySuccessByCity(ctx context.Context) ([]repository.CityDeliverySuccess, error) {
	return r.repo.DeliverySuccessByCity(ctx)
}

// WriteAll runs all three aggregations and writes one CSV file each
// into dir, creating it when missing. Returns the paths written.
func (r *Reporter) WriteAll(ctx context.Context, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create report dir: %w", err)
	}

	top, err := r.repo.TopProductByCity(ctx)
	if err != nil {
		return nil, err
	}
	issues, err := r.repo.DeliveryIssuesByProduct(ctx)
	if err != nil {
		return nil, err
	}
	success, err := r.repo.DeliverySuccessByCity(ctx)
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, 3)

	p := filepath.Join(dir, "top_product_by_city.csv")
	rows := [][]string{{"city", "product", "quantity"}}
	for _, t := range top {
		rows = append(rows, []string{t.City, t.Product, strconv.FormatInt(t.Quantity, 10)})
	}
	if err := writeCSV(p, rows); err != nil {
		return nil, err
	}
	paths = append(paths, p)

	p = filepath.Join(dir, "delivery_issues_by_product.csv")
	rows = [][]string{{"product", "orders"}}
	for _, i := range issues {
		rows = append(rows, []string{i.Product, strconv.FormatInt(i.Orders, 10)})
	}
	if err := writeCSV(p, rows); err != nil {
		return nil, err
	}
	paths = append(paths, p)

	p = filepath.Join(dir, "delivery_success_by_city.csv")
	rows = [][]string{{"city", "total_orders", "delivered_orders", "success_pct"}}
	for _, s := range success {
		rows = append(rows, []string{
			s.City,
			strconv.FormatInt(s.Total, 10),
			strconv.FormatInt(s.Delivered, 10),
			strconv.FormatFloat(s.SuccessPct, 'f', 2, 64),
		})
	}
	if err := writeCSV(p, rows); err != nil {
		return nil, err
	}
	paths = append(paths, p)

	return paths, nil
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	w.Flush()
	return w.Error()
}
