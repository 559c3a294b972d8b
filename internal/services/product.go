package service

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/ecommerce-admin/backend/internal/errors"
	"github.com/ecommerce-admin/backend/internal/models"
	repository "github.com/ecommerce-admin/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ProductService interface {
	CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProductByID(ctx context.Context, id string) (*models.Product, error)
	UpdateProduct(ctx context.Context, id string, req *models.UpdateProductRequest) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) (*models.Product, error)
}

type productService struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

func NewProductService(repo repository.ProductRepository, categoryRepo repository.CategoryRepository) ProductService {
	return &productService{repo: repo, categoryRepo: categoryRepo}
}

// checkCategoriesExist verifies every referenced category id one by one and
// fails with the first missing id. Not transactional: a concurrent delete
// between this check and the write is accepted.
func (s *productService) checkCategoriesExist(ctx context.Context, ids []string) ([]primitive.ObjectID, error) {

	oids := make([]primitive.ObjectID, 0, len(ids))

	for _, id := range ids {

		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return nil, errors.ValidationError(fmt.Sprintf("Category with ID %s not found", id)).WithError(err)
		}

		exists, err := s.categoryRepo.Exists(ctx, oid)
		if err != nil {
			return nil, errors.DatabaseError("Failed to check category existence").WithError(err)
		}

		if !exists {
			return nil, errors.ValidationError(fmt.Sprintf("Category with ID %s not found", id))
		}

		oids = append(oids, oid)
	}

	return oids, nil
}

// populateCategories expands category references in place. Dangling ids are
// dropped from the populated slice, never an error.
func (s *productService) populateCategories(ctx context.Context, products []models.Product) error {

	idSet := map[primitive.ObjectID]struct{}{}
	for _, p := range products {
		for _, id := range p.CategoryIDs {
			idSet[id] = struct{}{}
		}
	}

	if len(idSet) == 0 {
		return nil
	}

	ids := make([]primitive.ObjectID, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	categories, err := s.categoryRepo.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}

	byID := make(map[primitive.ObjectID]models.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}

	for i := range products {
		populated := make([]models.Category, 0, len(products[i].CategoryIDs))
		for _, id := range products[i].CategoryIDs {
			if c, ok := byID[id]; ok {
				populated = append(populated, c)
			}
		}
		products[i].Categories = populated
	}

	return nil
}

func (s *productService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {

	categoryIDs, err := s.checkCategoriesExist(ctx, req.CategoryIDs)
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		CategoryIDs: categoryIDs,
		ImageURL:    req.ImageURL,
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, errors.DatabaseError("Failed to create product").WithError(err)
	}

	return product, nil
}

func (s *productService) ListProducts(ctx context.Context) ([]models.Product, error) {

	products, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch products").WithError(err)
	}

	if err := s.populateCategories(ctx, products); err != nil {
		return nil, errors.DatabaseError("Failed to populate categories").WithError(err)
	}

	return products, nil
}

func (s *productService) GetProductByID(ctx context.Context, id string) (*models.Product, error) {

	oid, appErr := parseEntityID("Product", id)
	if appErr != nil {
		return nil, appErr
	}

	product, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		if stderrors.Is(err, mongo.ErrNoDocuments) {
			return nil, errors.EntityNotFoundError("Product", id).WithError(err)
		}

		return nil, errors.DatabaseError("Failed to fetch product").WithError(err)
	}

	single := []models.Product{*product}
	if err := s.populateCategories(ctx, single); err != nil {
		return nil, errors.DatabaseError("Failed to populate categories").WithError(err)
	}

	return &single[0], nil
}

func (s *productService) UpdateProduct(ctx context.Context, id string, req *models.UpdateProductRequest) (*models.Product, error) {

	oid, appErr := parseEntityID("Product", id)
	if appErr != nil {
		return nil, appErr
	}

	product, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		if stderrors.Is(err, mongo.ErrNoDocuments) {
			return nil, errors.EntityNotFoundError("Product", id).WithError(err)
		}

		return nil, errors.DatabaseError("Failed to fetch product").WithError(err)
	}

	if req.CategoryIDs != nil {
		categoryIDs, err := s.checkCategoriesExist(ctx, *req.CategoryIDs)
		if err != nil {
			return nil, err
		}
		product.CategoryIDs = categoryIDs
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.ImageURL != nil {
		product.ImageURL = *req.ImageURL
	}

	updated, err := s.repo.Update(ctx, product)
	if err != nil {
		if stderrors.Is(err, mongo.ErrNoDocuments) {
			return nil, errors.EntityNotFoundError("Product", id).WithError(err)
		}

		return nil, errors.DatabaseError("Failed to update product").WithError(err)
	}

	single := []models.Product{*updated}
	if err := s.populateCategories(ctx, single); err != nil {
		return nil, errors.DatabaseError("Failed to populate categories").WithError(err)
	}

	return &single[0], nil
}

func (s *productService) DeleteProduct(ctx context.Context, id string) (*models.Product, error) {

	oid, appErr := parseEntityID("Product", id)
	if appErr != nil {
		return nil, appErr
	}

	deleted, err := s.repo.Delete(ctx, oid)
	if err != nil {
		if stderrors.Is(err, mongo.ErrNoDocuments) {
			return nil, errors.EntityNotFoundError("Product", id).WithError(err)
		}

		return nil, errors.DatabaseError("Failed to delete product").WithError(err)
	}

	return deleted, nil
}
