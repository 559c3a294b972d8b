package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/ecommerce-admin/backend/internal/api/middleware"
	"github.com/ecommerce-admin/backend/internal/errors"
	service "github.com/ecommerce-admin/backend/internal/services"
	"github.com/ecommerce-admin/backend/internal/utils/response"
)

type DashboardHandler struct {
	dashboardService service.DashboardService
}

func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// OrderStatistics serves both /dashboard/statistics and /orders/stats/by-date.
func (h *DashboardHandler) OrderStatistics() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		query := r.URL.Query()

		filter, err := service.ParseStatsFilter(query.Get("startDate"), query.Get("endDate"), query.Get("categoryId"), query.Get("productId"))
		if err != nil {
			response.Error(w, err)
			return
		}

		stats, err := h.dashboardService.GetOrderStatistics(r.Context(), filter)
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to compute order statistics", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, stats)
	}
}

func (h *DashboardHandler) OrdersByPeriod() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		query := r.URL.Query()

		filter, err := service.ParseStatsFilter(query.Get("startDate"), query.Get("endDate"), "", "")
		if err != nil {
			response.Error(w, err)
			return
		}

		if filter.StartDate == nil || filter.EndDate == nil {
			response.Error(w, errors.ValidationError("startDate and endDate are required"))
			return
		}

		buckets, err := h.dashboardService.GetOrdersByPeriod(r.Context(), *filter.StartDate, *filter.EndDate)
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to compute orders by period", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, buckets)
	}
}

func (h *DashboardHandler) OrdersByCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sales, err := h.dashboardService.GetOrdersByCategory(r.Context())
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to compute orders by category", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, sales)
	}
}

func (h *DashboardHandler) TopSellingProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		limit := service.DefaultTopProductsLimit

		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				response.Error(w, errors.ValidationError("Invalid limit: "+raw))
				return
			}
			limit = parsed
		}

		products, err := h.dashboardService.GetTopSellingProducts(r.Context(), limit)
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to compute top selling products", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, products)
	}
}
