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

type CategoryHandler struct {
	categoryService service.CategoryService
	validator       *validator.Validate
}

func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService, validator: validator.New()}
}

func (h *CategoryHandler) CreateCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.CreateCategoryRequest
		if !utils.ParseAndValidate(w, r, &req, h.validator) {
			return
		}

		category, err := h.categoryService.CreateCategory(r.Context(), &req)
		if err != nil {
			logger.Error("Error during category creation", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Category created successfully", slog.String("categoryId", category.ID.Hex()))
		response.Success(w, http.StatusCreated, category)
	}
}

func (h *CategoryHandler) ListCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		categories, err := h.categoryService.ListCategories(r.Context())
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to fetch categories", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, categories)
	}
}

func (h *CategoryHandler) GetCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		category, err := h.categoryService.GetCategoryByID(r.Context(), r.PathValue("id"))
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, category)
	}
}

func (h *CategoryHandler) UpdateCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())
		id := r.PathValue("id")

		var req models.UpdateCategoryRequest
		if !utils.ParseAndValidate(w, r, &req, h.validator) {
			return
		}

		category, err := h.categoryService.UpdateCategory(r.Context(), id, &req)
		if err != nil {
			logger.Error("Error during category update", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Category updated successfully", slog.String("categoryId", category.ID.Hex()))
		response.Success(w, http.StatusOK, category)
	}
}

func (h *CategoryHandler) DeleteCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())
		id := r.PathValue("id")

		if _, err := h.categoryService.DeleteCategory(r.Context(), id); err != nil {
			logger.Error("Error during category deletion", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Category deleted successfully", slog.String("categoryId", id))
		response.NoContent(w)
	}
}
