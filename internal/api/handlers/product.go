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

type ProductHandler struct {
	productService service.ProductService
	validator      *validator.Validate
}

func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService, validator: validator.New()}
}

func (h *ProductHandler) CreateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.CreateProductRequest
		if !utils.ParseAndValidate(w, r, &req, h.validator) {
			return
		}

		product, err := h.productService.CreateProduct(r.Context(), &req)
		if err != nil {
			logger.Error("Error during product creation", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Product created successfully", slog.String("productId", product.ID.Hex()))
		response.Success(w, http.StatusCreated, product)
	}
}

func (h *ProductHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		products, err := h.productService.ListProducts(r.Context())
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to fetch products", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, products)
	}
}

func (h *ProductHandler) GetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		product, err := h.productService.GetProductByID(r.Context(), r.PathValue("id"))
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, product)
	}
}

func (h *ProductHandler) UpdateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())
		id := r.PathValue("id")

		var req models.UpdateProductRequest
		if !utils.ParseAndValidate(w, r, &req, h.validator) {
			return
		}

		product, err := h.productService.UpdateProduct(r.Context(), id, &req)
		if err != nil {
			logger.Error("Error during product update", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Product updated successfully", slog.String("productId", product.ID.Hex()))
		response.Success(w, http.StatusOK, product)
	}
}

func (h *ProductHandler) DeleteProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())
		id := r.PathValue("id")

		if _, err := h.productService.DeleteProduct(r.Context(), id); err != nil {
			logger.Error("Error during product deletion", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Product deleted successfully", slog.String("productId", id))
		response.NoContent(w)
	}
}
