package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ecommerce-admin/backend/internal/api/handlers"
	appErrors "github.com/ecommerce-admin/backend/internal/errors"
	"github.com/ecommerce-admin/backend/internal/models"
	"github.com/ecommerce-admin/backend/internal/services/mocks"
	"github.com/ecommerce-admin/backend/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreateOrderHandler(t *testing.T) {
	mockService := new(mocks.OrderService)
	orderHandler := handlers.NewOrderHandler(mockService)
	productID := primitive.NewObjectID()

	t.Run("Success - Order Created", func(t *testing.T) {
		// Arrange
		reqBody := models.CreateOrderRequest{
			ProductIDs: []string{productID.Hex()},
			Total:      249.50,
		}
		reqBodyBytes, _ := json.Marshal(reqBody)

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequest(http.MethodPost, "/orders", bytes.NewReader(reqBodyBytes), nil)
		req.Header.Set("Content-Type", "application/json")

		expected := &models.Order{
			ID:         primitive.NewObjectID(),
			ProductIDs: []primitive.ObjectID{productID},
			Total:      reqBody.Total,
		}

		mockService.On("CreateOrder", mock.Anything, &reqBody).Return(expected, nil).Once()

		// Act
		orderHandler.CreateOrder().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusCreated, rr.Code)

		var order models.Order
		envelope := decodeResponse(t, rr.Body, &order)
		assert.True(t, envelope.Success)
		assert.Equal(t, expected.Total, order.Total)

		mockService.AssertExpectations(t)
	})

	t.Run("Failure - Empty Product List", func(t *testing.T) {
		// Arrange
		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequest(http.MethodPost, "/orders", bytes.NewReader([]byte(`{"productIds": [], "total": 10}`)), nil)
		req.Header.Set("Content-Type", "application/json")

		// Act
		orderHandler.CreateOrder().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockService.AssertNotCalled(t, "CreateOrder")
	})

	t.Run("Failure - Negative Total", func(t *testing.T) {
		// Arrange
		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequest(http.MethodPost, "/orders",
			bytes.NewReader([]byte(`{"productIds": ["`+productID.Hex()+`"], "total": -5}`)), nil)
		req.Header.Set("Content-Type", "application/json")

		// Act
		orderHandler.CreateOrder().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockService.AssertNotCalled(t, "CreateOrder")
	})

	t.Run("Failure - Unknown Product", func(t *testing.T) {
		// Arrange
		reqBody := models.CreateOrderRequest{
			ProductIDs: []string{productID.Hex()},
			Total:      10,
		}
		reqBodyBytes, _ := json.Marshal(reqBody)

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequest(http.MethodPost, "/orders", bytes.NewReader(reqBodyBytes), nil)
		req.Header.Set("Content-Type", "application/json")

		mockService.On("CreateOrder", mock.Anything, &reqBody).
			Return(nil, appErrors.ValidationError("Product with ID "+productID.Hex()+" not found")).Once()

		// Act
		orderHandler.CreateOrder().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)

		envelope := decodeResponse(t, rr.Body, nil)
		assert.Equal(t, appErrors.ErrCodeValidation, envelope.Error.Code)

		mockService.AssertExpectations(t)
	})
}

func TestGetOrderHandler(t *testing.T) {
	mockService := new(mocks.OrderService)
	orderHandler := handlers.NewOrderHandler(mockService)
	testID := primitive.NewObjectID()

	t.Run("Success - Order With Populated Products", func(t *testing.T) {
		// Arrange
		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequest(http.MethodGet, "/orders/"+testID.Hex(), nil, map[string]string{"id": testID.Hex()})

		expected := &models.Order{
			ID:    testID,
			Total: 42,
			Products: []models.Product{
				{ID: primitive.NewObjectID(), Name: "Desk Lamp"},
			},
		}

		mockService.On("GetOrderByID", mock.Anything, testID.Hex()).Return(expected, nil).Once()

		// Act
		orderHandler.GetOrder().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)

		var order models.Order
		decodeResponse(t, rr.Body, &order)
		assert.Len(t, order.Products, 1)

		mockService.AssertExpectations(t)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		// Arrange
		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequest(http.MethodGet, "/orders/"+testID.Hex(), nil, map[string]string{"id": testID.Hex()})

		mockService.On("GetOrderByID", mock.Anything, testID.Hex()).
			Return(nil, appErrors.EntityNotFoundError("Order", testID.Hex())).Once()

		// Act
		orderHandler.GetOrder().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusNotFound, rr.Code)

		mockService.AssertExpectations(t)
	})
}

func TestUpdateOrderHandler(t *testing.T) {
	mockService := new(mocks.OrderService)
	orderHandler := handlers.NewOrderHandler(mockService)
	testID := primitive.NewObjectID()

	t.Run("Success - Order Updated", func(t *testing.T) {
		// Arrange
		newTotal := 99.0
		reqBody := models.UpdateOrderRequest{Total: &newTotal}
		reqBodyBytes, _ := json.Marshal(reqBody)

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequest(http.MethodPut, "/orders/"+testID.Hex(), bytes.NewReader(reqBodyBytes), map[string]string{"id": testID.Hex()})
		req.Header.Set("Content-Type", "application/json")

		expected := &models.Order{ID: testID, Total: newTotal}

		mockService.On("UpdateOrder", mock.Anything, testID.Hex(), &reqBody).Return(expected, nil).Once()

		// Act
		orderHandler.UpdateOrder().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)

		var order models.Order
		decodeResponse(t, rr.Body, &order)
		assert.Equal(t, newTotal, order.Total)

		mockService.AssertExpectations(t)
	})
}

func TestDeleteOrderHandler(t *testing.T) {
	mockService := new(mocks.OrderService)
	orderHandler := handlers.NewOrderHandler(mockService)
	testID := primitive.NewObjectID()

	t.Run("Success - Order Deleted", func(t *testing.T) {
		// Arrange
		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequest(http.MethodDelete, "/orders/"+testID.Hex(), nil, map[string]string{"id": testID.Hex()})

		deleted := &models.Order{ID: testID, Total: 42}

		mockService.On("DeleteOrder", mock.Anything, testID.Hex()).Return(deleted, nil).Once()

		// Act
		orderHandler.DeleteOrder().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusNoContent, rr.Code)

		mockService.AssertExpectations(t)
	})
}

func TestListOrdersHandler(t *testing.T) {
	mockService := new(mocks.OrderService)
	orderHandler := handlers.NewOrderHandler(mockService)

	t.Run("Success - Orders Listed", func(t *testing.T) {
		// Arrange
		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequest(http.MethodGet, "/orders", nil, nil)

		expected := []models.Order{
			{ID: primitive.NewObjectID(), Total: 10},
			{ID: primitive.NewObjectID(), Total: 20},
		}

		mockService.On("ListOrders", mock.Anything).Return(expected, nil).Once()

		// Act
		orderHandler.ListOrders().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)

		var orders []models.Order
		decodeResponse(t, rr.Body, &orders)
		assert.Len(t, orders, 2)

		mockService.AssertExpectations(t)
	})
}
