package service

import (
	"context"
	stderrors "errors"

	"github.com/ecommerce-admin/backend/internal/errors"
	"github.com/ecommerce-admin/backend/internal/models"
	repository "github.com/ecommerce-admin/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type CategoryService interface {
	CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategoryByID(ctx context.Context, id string) (*models.Category, error)
	UpdateCategory(ctx context.Context, id string, req *models.UpdateCategoryRequest) (*models.Category, error)
	DeleteCategory(ctx context.Context, id string) (*models.Category, error)
}

type categoryService struct {
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

// parseEntityID maps an unparseable id to the same not-found shape the
// existence checks produce, since a malformed id cannot reference anything.
func parseEntityID(entity, id string) (primitive.ObjectID, *errors.AppError) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, errors.EntityNotFoundError(entity, id).WithError(err)
	}

	return oid, nil
}

func (s *categoryService) CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error) {

	category := &models.Category{
		Name: req.Name,
	}

	if err := s.repo.Create(ctx, category); err != nil {
		return nil, errors.DatabaseError("Failed to create category").WithError(err)
	}

	return category, nil
}

func (s *categoryService) ListCategories(ctx context.Context) ([]models.Category, error) {

	categories, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch categories").WithError(err)
	}

	return categories, nil
}

func (s *categoryService) GetCategoryByID(ctx context.Context, id string) (*models.Category, error) {

	oid, appErr := parseEntityID("Category", id)
	if appErr != nil {
		return nil, appErr
	}

	category, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		if stderrors.Is(err, mongo.ErrNoDocuments) {
			return nil, errors.EntityNotFoundError("Category", id).WithError(err)
		}

		return nil, errors.DatabaseError("Failed to fetch category").WithError(err)
	}

	return category, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, id string, req *models.UpdateCategoryRequest) (*models.Category, error) {

	oid, appErr := parseEntityID("Category", id)
	if appErr != nil {
		return nil, appErr
	}

	category, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		if stderrors.Is(err, mongo.ErrNoDocuments) {
			return nil, errors.EntityNotFoundError("Category", id).WithError(err)
		}

		return nil, errors.DatabaseError("Failed to fetch category").WithError(err)
	}

	if req.Name != nil {
		category.Name = *req.Name
	}

	updated, err := s.repo.Update(ctx, category)
	if err != nil {
		if stderrors.Is(err, mongo.ErrNoDocuments) {
			return nil, errors.EntityNotFoundError("Category", id).WithError(err)
		}

		return nil, errors.DatabaseError("Failed to update category").WithError(err)
	}

	return updated, nil
}

// DeleteCategory does not cascade: products keep their reference and reads
// tolerate the dangling id.
func (s *categoryService) DeleteCategory(ctx context.Context, id string) (*models.Category, error) {

	oid, appErr := parseEntityID("Category", id)
	if appErr != nil {
		return nil, appErr
	}

	deleted, err := s.repo.Delete(ctx, oid)
	if err != nil {
		if stderrors.Is(err, mongo.ErrNoDocuments) {
			return nil, errors.EntityNotFoundError("Category", id).WithError(err)
		}

		return nil, errors.DatabaseError("Failed to delete category").WithError(err)
	}

	return deleted, nil
}
