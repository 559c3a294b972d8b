package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ecommerce-admin/backend/internal/api/handlers"
	appErrors "github.com/ecommerce-admin/backend/internal/errors"
	"github.com/ecommerce-admin/backend/internal/models"
	service "github.com/ecommerce-admin/backend/internal/services"
	"github.com/ecommerce-admin/backend/internal/services/mocks"
	"github.com/ecommerce-admin/backend/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestOrderStatisticsHandler(t *testing.T) {
	mockService := new(mocks.DashboardService)
	dashboardHandler := handlers.NewDashboardHandler(mockService)

	t.Run("Success - No Filter", func(t *testing.T) {
		// Arrange
		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequest(http.MethodGet, "/dashboard/statistics", nil, nil)

		expected := &models.OrderStatistics{TotalOrders: 5, TotalRevenue: 500, AverageOrderValue: 100}

		mockService.On("GetOrderStatistics", mock.Anything, models.StatsFilter{}).Return(expected, nil).Once()

		// Act
		dashboardHandler.OrderStatistics().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)

		var stats models.OrderStatistics
		decodeResponse(t, rr.Body, &stats)
		assert.Equal(t, 5, stats.TotalOrders)

		mockService.AssertExpectations(t)
	})

	t.Run("Success - Date And Category Filter", func(t *testing.T) {
		// Arrange
		categoryID := primitive.NewObjectID()

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequest(http.MethodGet,
			"/orders/stats/by-date?startDate=2025-01-01&endDate=2025-01-31&categoryId="+categoryID.Hex(), nil, nil)

		expected := &models.OrderStatistics{TotalOrders: 2}

		mockService.On("GetOrderStatistics", mock.Anything, mock.MatchedBy(func(f models.StatsFilter) bool {
			return f.StartDate != nil && f.StartDate.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)) &&
				f.EndDate != nil && f.EndDate.Equal(time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)) &&
				f.CategoryID != nil && *f.CategoryID == categoryID
		})).Return(expected, nil).Once()

		// Act
		dashboardHandler.OrderStatistics().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)

		mockService.AssertExpectations(t)
	})

	t.Run("Failure - Malformed Date", func(t *testing.T) {
		// Arrange
		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequest(http.MethodGet, "/dashboard/statistics?startDate=31-01-2025", nil, nil)

		// Act
		dashboardHandler.OrderStatistics().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockService.AssertNotCalled(t, "GetOrderStatistics")
	})
}

func TestOrdersByPeriodHandler(t *testing.T) {
	mockService := new(mocks.DashboardService)
	dashboardHandler := handlers.NewDashboardHandler(mockService)

	t.Run("Success - Buckets Returned", func(t *testing.T) {
		// Arrange
		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequest(http.MethodGet,
			"/dashboard/orders-by-period?startDate=2025-01-01&endDate=2025-02-01", nil, nil)

		expected := []models.PeriodBucket{
			{Year: 2025, Month: 1, Day: 5, Count: 2, Total: 30},
		}

		mockService.On("GetOrdersByPeriod", mock.Anything,
			time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)).Return(expected, nil).Once()

		// Act
		dashboardHandler.OrdersByPeriod().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)

		var buckets []models.PeriodBucket
		decodeResponse(t, rr.Body, &buckets)
		assert.Len(t, buckets, 1)

		mockService.AssertExpectations(t)
	})

	t.Run("Failure - Missing Bounds", func(t *testing.T) {
		// Arrange
		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequest(http.MethodGet, "/dashboard/orders-by-period?startDate=2025-01-01", nil, nil)

		// Act
		dashboardHandler.OrdersByPeriod().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)

		envelope := decodeResponse(t, rr.Body, nil)
		assert.Equal(t, appErrors.ErrCodeValidation, envelope.Error.Code)
		assert.Equal(t, "startDate and endDate are required", envelope.Error.Message)

		mockService.AssertNotCalled(t, "GetOrdersByPeriod")
	})
}

func TestOrdersByCategoryHandler(t *testing.T) {
	mockService := new(mocks.DashboardService)
	dashboardHandler := handlers.NewDashboardHandler(mockService)

	t.Run("Success - Sales Returned", func(t *testing.T) {
		// Arrange
		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequest(http.MethodGet, "/dashboard/orders-by-category", nil, nil)

		expected := []models.CategorySales{
			{CategoryID: primitive.NewObjectID().Hex(), CategoryName: "Electronics", Count: 3, Total: 300},
		}

		mockService.On("GetOrdersByCategory", mock.Anything).Return(expected, nil).Once()

		// Act
		dashboardHandler.OrdersByCategory().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)

		var sales []models.CategorySales
		decodeResponse(t, rr.Body, &sales)
		assert.Len(t, sales, 1)
		assert.Equal(t, "Electronics", sales[0].CategoryName)

		mockService.AssertExpectations(t)
	})

	t.Run("Failure - Service Error", func(t *testing.T) {
		// Arrange
		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequest(http.MethodGet, "/dashboard/orders-by-category", nil, nil)

		mockService.On("GetOrdersByCategory", mock.Anything).
			Return(nil, appErrors.DatabaseError("Failed to fetch orders")).Once()

		// Act
		dashboardHandler.OrdersByCategory().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusInternalServerError, rr.Code)

		mockService.AssertExpectations(t)
	})
}

func TestTopSellingProductsHandler(t *testing.T) {
	mockService := new(mocks.DashboardService)
	dashboardHandler := handlers.NewDashboardHandler(mockService)

	t.Run("Success - Default Limit", func(t *testing.T) {
		// Arrange
		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequest(http.MethodGet, "/dashboard/top-selling-products", nil, nil)

		expected := []models.TopSellingProduct{
			{ProductID: primitive.NewObjectID().Hex(), ProductName: "USB Cable", Count: 3, Total: 150},
		}

		mockService.On("GetTopSellingProducts", mock.Anything, service.DefaultTopProductsLimit).
			Return(expected, nil).Once()

		// Act
		dashboardHandler.TopSellingProducts().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)

		mockService.AssertExpectations(t)
	})

	t.Run("Success - Explicit Limit", func(t *testing.T) {
		// Arrange
		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequest(http.MethodGet, "/dashboard/top-selling-products?limit=3", nil, nil)

		mockService.On("GetTopSellingProducts", mock.Anything, 3).
			Return([]models.TopSellingProduct{}, nil).Once()

		// Act
		dashboardHandler.TopSellingProducts().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)

		mockService.AssertExpectations(t)
	})

	t.Run("Failure - Non-Numeric Limit", func(t *testing.T) {
		// Arrange
		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequest(http.MethodGet, "/dashboard/top-selling-products?limit=ten", nil, nil)

		// Act
		dashboardHandler.TopSellingProducts().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockService.AssertNotCalled(t, "GetTopSellingProducts")
	})
}
