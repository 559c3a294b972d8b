package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ecommerce-admin/backend/internal/api/middleware"
	"github.com/ecommerce-admin/backend/internal/config"
	"github.com/ecommerce-admin/backend/internal/errors"
	"github.com/ecommerce-admin/backend/internal/models"
	repository "github.com/ecommerce-admin/backend/internal/repositories"
	service "github.com/ecommerce-admin/backend/internal/services"
	"github.com/ecommerce-admin/backend/internal/utils"
	"github.com/ecommerce-admin/backend/internal/utils/response"
)

type onDemandRequest struct {
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
}

func main() {

	mode := flag.String("mode", "daily", "report mode: daily, monthly or serve")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.MustLoad()

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer startupCancel()

	repos, err := repository.New(startupCtx, cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", "error", err.Error())
		os.Exit(1)
	}

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := repos.Close(shutdownCtx); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		}
	}()

	reportService := service.NewReportService(repos.Order, logger, cfg.Report.DefaultWindow)

	switch *mode {
	case "daily":
		runOnce(reportService.DailyReport)
	case "monthly":
		runOnce(reportService.MonthlyReport)
	case "serve":
		serve(cfg, reportService)
	default:
		slog.Error("❌ Unknown mode", slog.String("mode", *mode))
		os.Exit(1)
	}
}

// runOnce executes a single report cycle, the way the scheduled job invokes
// this binary.
func runOnce(report func(ctx context.Context) (*models.SalesReport, error)) {

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := report(ctx); err != nil {
		slog.Error("❌ Report generation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func serve(cfg *config.Config, reportService service.ReportService) {

	routerMux := http.NewServeMux()
	routerMux.HandleFunc("POST /reports/on-demand", func(w http.ResponseWriter, r *http.Request) {

		var req onDemandRequest

		if r.Body != nil && r.ContentLength != 0 {
			if err := utils.DecodeJSONBody(r, &req); err != nil {
				response.Error(w, errors.BadRequestError("Invalid request body"))

				return
			}
		}

		report, err := reportService.OnDemandReport(r.Context(), req.StartDate, req.EndDate)
		if err != nil {
			writeReportError(w, err)

			return
		}

		response.WriteJson(w, http.StatusOK, report)
	})

	server := http.Server{
		Addr:    cfg.Report.Addr,
		Handler: middleware.Logging(routerMux),
	}

	slog.Info("🚀 Report server is starting...", slog.String("address", cfg.Report.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Failed to start server", slog.Any("error", err.Error()))
		}
	}()

	<-done

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	}
}

// writeReportError keeps the on-demand endpoint's error contract: any failure
// is a 500 with a bare error field.
func writeReportError(w http.ResponseWriter, err error) {
	response.WriteJson(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
}
