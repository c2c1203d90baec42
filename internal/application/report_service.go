package application

import (
	"context"

	"github.com/mes-platform/production-tracker/internal/domain"
)

// StageCounts splits units into completed and pending for one stage.
type StageCounts struct {
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
}

// SizeReport holds completion counters for one size bucket of an order.
type SizeReport struct {
	Quantity int                    `json:"quantity"`
	Charge   StageCounts            `json:"charge"`
	Stages   map[string]StageCounts `json:"stages"`
}

// TotalSummary aggregates the size buckets.
type TotalSummary struct {
	Quantity int                    `json:"quantity"`
	Charge   StageCounts            `json:"charge"`
	Stages   map[string]StageCounts `json:"stages"`
}

// OrderReport is the per-order completion projection.
type OrderReport struct {
	OrderNumber string                 `json:"order_number"`
	Sizes       map[string]*SizeReport `json:"sizes"`
	Totals      TotalSummary           `json:"total_summary"`
}

// ReportService computes read-only completion reports over the stage record
// log.
type ReportService struct {
	orders  domain.OrderRepository
	records domain.StageRecordRepository
}

// NewReportService creates a ReportService.
func NewReportService(orders domain.OrderRepository, records domain.StageRecordRepository) *ReportService {
	return &ReportService{orders: orders, records: records}
}

// Report builds the completion report for an order. A unit counts as
// completed for stage N when records exist for both N and N+1; a unit with a
// record for N but none for N+1 is pending there. Terminal stage counters
// are reported but stay zero, since nothing can move past the last stage.
func (s *ReportService) Report(ctx context.Context, orderNumber string) (*OrderReport, error) {
	normalized, err := domain.NormalizeOrderNumber(orderNumber)
	if err != nil {
		return nil, err
	}

	order, err := s.orders.FindByNumber(ctx, normalized)
	if err != nil {
		return nil, err
	}

	records, err := s.records.FindByOrder(ctx, normalized)
	if err != nil {
		return nil, err
	}

	// Index the record log: stage -> set of barcodes seen there, plus the
	// size of every charged unit.
	seen := make(map[domain.Stage]map[string]struct{})
	sizeOf := make(map[string]string)
	for _, r := range records {
		if seen[r.Stage] == nil {
			seen[r.Stage] = make(map[string]struct{})
		}
		seen[r.Stage][r.BarcodeNumber] = struct{}{}
		if r.Stage == domain.StageCharge {
			sizeOf[r.BarcodeNumber] = r.ShoeSize
		}
	}

	report := &OrderReport{
		OrderNumber: normalized,
		Sizes:       make(map[string]*SizeReport, len(order.Sizes)),
		Totals:      TotalSummary{Stages: zeroStageCounts()},
	}
	for _, sq := range order.Sizes {
		report.Sizes[sq.Size] = &SizeReport{Quantity: sq.Quantity, Stages: zeroStageCounts()}
		report.Totals.Quantity += sq.Quantity
	}

	for barcode := range seen[domain.StageCharge] {
		size := report.Sizes[sizeOf[barcode]]
		if size == nil {
			continue
		}

		if _, moved := seen[domain.Stage1][barcode]; moved {
			size.Charge.Completed++
		} else {
			size.Charge.Pending++
		}

		for stage := domain.Stage1; stage <= domain.Stage5; stage++ {
			if _, here := seen[stage][barcode]; !here {
				continue
			}
			counts := size.Stages[stage.String()]
			if _, moved := seen[stage+1][barcode]; moved {
				counts.Completed++
			} else {
				counts.Pending++
			}
			size.Stages[stage.String()] = counts
		}
	}

	for _, size := range report.Sizes {
		report.Totals.Charge.Completed += size.Charge.Completed
		report.Totals.Charge.Pending += size.Charge.Pending
		for name, counts := range size.Stages {
			total := report.Totals.Stages[name]
			total.Completed += counts.Completed
			total.Pending += counts.Pending
			report.Totals.Stages[name] = total
		}
	}

	return report, nil
}

func zeroStageCounts() map[string]StageCounts {
	counts := make(map[string]StageCounts, 6)
	for stage := domain.Stage1; stage <= domain.Stage6; stage++ {
		counts[stage.String()] = StageCounts{}
	}
	return counts
}
