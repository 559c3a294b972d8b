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

func TestCreateProductHandler(t *testing.T) {
	mockService := new(mocks.ProductService)
	productHandler := handlers.NewProductHandler(mockService)
	categoryID := primitive.NewObjectID()

	t.Run("Success - Product Created", func(t *testing.T) {
		// Arrange
		reqBody := models.CreateProductRequest{
			Name:        "Mechanical Keyboard",
			Price:       129.99,
			CategoryIDs: []string{categoryID.Hex()},
		}
		reqBodyBytes, _ := json.Marshal(reqBody)

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequest(http.MethodPost, "/products", bytes.NewReader(reqBodyBytes), nil)
		req.Header.Set("Content-Type", "application/json")

		expected := &models.Product{
			ID:          primitive.NewObjectID(),
			Name:        reqBody.Name,
			Price:       reqBody.Price,
			CategoryIDs: []primitive.ObjectID{categoryID},
		}

		mockService.On("CreateProduct", mock.Anything, &reqBody).Return(expected, nil).Once()

		// Act
		productHandler.CreateProduct().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusCreated, rr.Code)

		var product models.Product
		envelope := decodeResponse(t, rr.Body, &product)
		assert.True(t, envelope.Success)
		assert.Equal(t, expected.Name, product.Name)

		mockService.AssertExpectations(t)
	})

	t.Run("Failure - Missing Name", func(t *testing.T) {
		// Arrange
		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequest(http.MethodPost, "/products", bytes.NewReader([]byte(`{"price": 10}`)), nil)
		req.Header.Set("Content-Type", "application/json")

		// Act
		productHandler.CreateProduct().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockService.AssertNotCalled(t, "CreateProduct")
	})

	t.Run("Failure - Unknown Category", func(t *testing.T) {
		// Arrange
		reqBody := models.CreateProductRequest{
			Name:        "Mechanical Keyboard",
			Price:       129.99,
			CategoryIDs: []string{categoryID.Hex()},
		}
		reqBodyBytes, _ := json.Marshal(reqBody)

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequest(http.MethodPost, "/products", bytes.NewReader(reqBodyBytes), nil)
		req.Header.Set("Content-Type", "application/json")

		mockService.On("CreateProduct", mock.Anything, &reqBody).
			Return(nil, appErrors.ValidationError("Category with ID "+categoryID.Hex()+" not found")).Once()

		// Act
		productHandler.CreateProduct().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)

		envelope := decodeResponse(t, rr.Body, nil)
		assert.False(t, envelope.Success)
		assert.Equal(t, appErrors.ErrCodeValidation, envelope.Error.Code)

		mockService.AssertExpectations(t)
	})
}

func TestGetProductHandler(t *testing.T) {
	mockService := new(mocks.ProductService)
	productHandler := handlers.NewProductHandler(mockService)
	testID := primitive.NewObjectID()

	t.Run("Success - Product With Populated Categories", func(t *testing.T) {
		// Arrange
		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequest(http.MethodGet, "/products/"+testID.Hex(), nil, map[string]string{"id": testID.Hex()})

		expected := &models.Product{
			ID:   testID,
			Name: "Monitor",
			Categories: []models.Category{
				{ID: primitive.NewObjectID(), Name: "Electronics"},
			},
		}

		mockService.On("GetProductByID", mock.Anything, testID.Hex()).Return(expected, nil).Once()

		// Act
		productHandler.GetProduct().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)

		var product models.Product
		decodeResponse(t, rr.Body, &product)
		assert.Len(t, product.Categories, 1)
		assert.Equal(t, "Electronics", product.Categories[0].Name)

		mockService.AssertExpectations(t)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		// Arrange
		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequest(http.MethodGet, "/products/"+testID.Hex(), nil, map[string]string{"id": testID.Hex()})

		mockService.On("GetProductByID", mock.Anything, testID.Hex()).
			Return(nil, appErrors.EntityNotFoundError("Product", testID.Hex())).Once()

		// Act
		productHandler.GetProduct().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusNotFound, rr.Code)

		mockService.AssertExpectations(t)
	})
}

func TestUpdateProductHandler(t *testing.T) {
	mockService := new(mocks.ProductService)
	productHandler := handlers.NewProductHandler(mockService)
	testID := primitive.NewObjectID()

	t.Run("Success - Partial Update", func(t *testing.T) {
		// Arrange
		newPrice := 89.99
		reqBody := models.UpdateProductRequest{Price: &newPrice}
		reqBodyBytes, _ := json.Marshal(reqBody)

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequest(http.MethodPut, "/products/"+testID.Hex(), bytes.NewReader(reqBodyBytes), map[string]string{"id": testID.Hex()})
		req.Header.Set("Content-Type", "application/json")

		expected := &models.Product{ID: testID, Name: "Monitor", Price: newPrice}

		mockService.On("UpdateProduct", mock.Anything, testID.Hex(), &reqBody).Return(expected, nil).Once()

		// Act
		productHandler.UpdateProduct().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)

		var product models.Product
		decodeResponse(t, rr.Body, &product)
		assert.Equal(t, newPrice, product.Price)

		mockService.AssertExpectations(t)
	})

	t.Run("Failure - Invalid Image URL", func(t *testing.T) {
		// Arrange
		badURL := "not a url"
		reqBody := models.UpdateProductRequest{ImageURL: &badURL}
		reqBodyBytes, _ := json.Marshal(reqBody)

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequest(http.MethodPut, "/products/"+testID.Hex(), bytes.NewReader(reqBodyBytes), map[string]string{"id": testID.Hex()})
		req.Header.Set("Content-Type", "application/json")

		// Act
		productHandler.UpdateProduct().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockService.AssertNotCalled(t, "UpdateProduct")
	})
}

func TestDeleteProductHandler(t *testing.T) {
	mockService := new(mocks.ProductService)
	productHandler := handlers.NewProductHandler(mockService)
	testID := primitive.NewObjectID()

	t.Run("Success - Product Deleted", func(t *testing.T) {
		// Arrange
		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequest(http.MethodDelete, "/products/"+testID.Hex(), nil, map[string]string{"id": testID.Hex()})

		deleted := &models.Product{ID: testID, Name: "Monitor"}

		mockService.On("DeleteProduct", mock.Anything, testID.Hex()).Return(deleted, nil).Once()

		// Act
		productHandler.DeleteProduct().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusNoContent, rr.Code)

		mockService.AssertExpectations(t)
	})
}

func TestListProductsHandler(t *testing.T) {
	mockService := new(mocks.ProductService)
	productHandler := handlers.NewProductHandler(mockService)

	t.Run("Success - Products Listed", func(t *testing.T) {
		// Arrange
		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequest(http.MethodGet, "/products", nil, nil)

		expected := []models.Product{
			{ID: primitive.NewObjectID(), Name: "Monitor"},
		}

		mockService.On("ListProducts", mock.Anything).Return(expected, nil).Once()

		// Act
		productHandler.ListProducts().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)

		mockService.AssertExpectations(t)
	})
}
