package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/ecommerce-admin/backend/internal/errors"
	"github.com/ecommerce-admin/backend/internal/models"
	repository "github.com/ecommerce-admin/backend/internal/repositories"
)

const reportDateLayout = "02/01/2006"

// ReportService backs the standalone sales-report job. It recomputes the
// order statistics directly against the store so the job stays a single
// read-aggregate-log cycle with no dependency on the API process.
type ReportService interface {
	DailyReport(ctx context.Context) (*models.SalesReport, error)
	MonthlyReport(ctx context.Context) (*models.SalesReport, error)
	OnDemandReport(ctx context.Context, start, end *time.Time) (*models.SalesReport, error)
}

type reportService struct {
	orderRepo     repository.OrderRepository
	logger        *slog.Logger
	defaultWindow time.Duration
	now           func() time.Time
}

func NewReportService(orderRepo repository.OrderRepository, logger *slog.Logger, defaultWindow time.Duration) ReportService {
	return &reportService{
		orderRepo:     orderRepo,
		logger:        logger,
		defaultWindow: defaultWindow,
		now:           time.Now,
	}
}

func aggregateOrders(orders []models.Order) models.OrderStatistics {

	stats := models.OrderStatistics{}

	for i, o := range orders {
		stats.TotalOrders++
		stats.TotalRevenue += o.Total

		if i == 0 || o.Total > stats.MaxOrderValue {
			stats.MaxOrderValue = o.Total
		}
		if i == 0 || o.Total < stats.MinOrderValue {
			stats.MinOrderValue = o.Total
		}
	}

	if stats.TotalOrders > 0 {
		stats.AverageOrderValue = stats.TotalRevenue / float64(stats.TotalOrders)
	}

	return stats
}

func (s *reportService) buildReport(ctx context.Context, start, end time.Time) (*models.SalesReport, []models.Order, error) {

	orders, err := s.orderRepo.FindByDateRange(ctx, &start, &end)
	if err != nil {
		return nil, nil, errors.DatabaseError("Failed to fetch orders for report").WithError(err)
	}

	report := &models.SalesReport{
		Period: models.ReportPeriod{
			StartDate: start.Format(reportDateLayout),
			EndDate:   end.Format(reportDateLayout),
		},
		Statistics:  aggregateOrders(orders),
		GeneratedAt: s.now().UTC(),
	}

	return report, orders, nil
}

// DailyReport covers the previous calendar day.
func (s *reportService) DailyReport(ctx context.Context) (*models.SalesReport, error) {

	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	yesterday := today.AddDate(0, 0, -1)

	// The range is inclusive, so stop just short of midnight.
	report, _, err := s.buildReport(ctx, yesterday, today.Add(-time.Nanosecond))
	if err != nil {
		return nil, err
	}

	s.logger.Info("Daily sales report",
		slog.String("date", yesterday.Format(reportDateLayout)),
		slog.Int("total_orders", report.Statistics.TotalOrders),
		slog.Float64("total_revenue", report.Statistics.TotalRevenue),
		slog.Float64("average_order_value", report.Statistics.AverageOrderValue),
	)

	return report, nil
}

// MonthlyReport covers the previous calendar month and logs a per-day trend
// breakdown alongside the headline numbers.
func (s *reportService) MonthlyReport(ctx context.Context) (*models.SalesReport, error) {

	now := s.now().UTC()
	startOfThisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	startOfLastMonth := startOfThisMonth.AddDate(0, -1, 0)
	endOfLastMonth := startOfThisMonth.Add(-time.Nanosecond)

	report, orders, err := s.buildReport(ctx, startOfLastMonth, endOfLastMonth)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Monthly sales report",
		slog.String("month", startOfLastMonth.Format("01/2006")),
		slog.Int("total_orders", report.Statistics.TotalOrders),
		slog.Float64("total_revenue", report.Statistics.TotalRevenue),
		slog.Float64("average_order_value", report.Statistics.AverageOrderValue),
	)

	type trend struct {
		count   int
		revenue float64
	}

	byDay := map[string]*trend{}
	var days []string

	for _, o := range orders {
		day := o.Date.UTC().Format(reportDateLayout)
		t, ok := byDay[day]
		if !ok {
			t = &trend{}
			byDay[day] = t
			days = append(days, day)
		}
		t.count++
		t.revenue += o.Total
	}

	for _, day := range days {
		s.logger.Info("Daily trend",
			slog.String("day", day),
			slog.Int("orders", byDay[day].count),
			slog.Float64("revenue", byDay[day].revenue),
		)
	}

	return report, nil
}

// OnDemandReport defaults to the trailing window (30 days unless configured
// otherwise) when a bound is omitted.
func (s *reportService) OnDemandReport(ctx context.Context, start, end *time.Time) (*models.SalesReport, error) {

	now := s.now().UTC()

	endDate := now
	if end != nil {
		endDate = *end
	}

	startDate := now.Add(-s.defaultWindow)
	if start != nil {
		startDate = *start
	}

	report, _, err := s.buildReport(ctx, startDate, endDate)
	if err != nil {
		return nil, err
	}

	s.logger.Info("On-demand sales report",
		slog.String("start", report.Period.StartDate),
		slog.String("end", report.Period.EndDate),
		slog.Int("total_orders", report.Statistics.TotalOrders),
		slog.Float64("total_revenue", report.Statistics.TotalRevenue),
	)

	return report, nil
}
