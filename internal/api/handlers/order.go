package handlers

import (
	"log/slog"
	"net/http"

	"github.com/ecommerce-admin/backend/internal/api/middleware"
	"github.com/ecommerce-admin/backend/internal/models"
	service "github.com/ecommerce-admin/backend/internal/services"
	"github.com/ecommerce-admin/backend/internal/utils"
	"github.com/ecommerce-admin/backend/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type OrderHandler struct {
	orderService service.OrderService
	validator    *validator.Validate
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService, validator: validator.New()}
}

func (h *OrderHandler) CreateOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.CreateOrderRequest
		if !utils.ParseAndValidate(w, r, &req, h.validator) {
			return
		}

		order, err := h.orderService.CreateOrder(r.Context(), &req)
		if err != nil {
			logger.Error("Error during order creation", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Order created successfully", slog.String("orderId", order.ID.Hex()))
		response.Success(w, http.StatusCreated, order)
	}
}

func (h *OrderHandler) ListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		orders, err := h.orderService.ListOrders(r.Context())
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to fetch orders", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, orders)
	}
}

func (h *OrderHandler) GetOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		order, err := h.orderService.GetOrderByID(r.Context(), r.PathValue("id"))
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, order)
	}
}

func (h *OrderHandler) UpdateOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())
		id := r.PathValue("id")

		var req models.UpdateOrderRequest
		if !utils.ParseAndValidate(w, r, &req, h.validator) {
			return
		}

		order, err := h.orderService.UpdateOrder(r.Context(), id, &req)
		if err != nil {
			logger.Error("Error during order update", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Order updated successfully", slog.String("orderId", order.ID.Hex()))
		response.Success(w, http.StatusOK, order)
	}
}

func (h *OrderHandler) DeleteOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())
		id := r.PathValue("id")

		if _, err := h.orderService.DeleteOrder(r.Context(), id); err != nil {
			logger.Error("Error during order deletion", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Order deleted successfully", slog.String("orderId", id))
		response.NoContent(w)
	}
}
