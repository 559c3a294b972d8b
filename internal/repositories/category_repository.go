package repository

import (
	"context"
	"time"

	"github.com/ecommerce-admin/backend/internal/models"
	"github.com/ecommerce-admin/backend/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	FindAll(ctx context.Context) ([]models.Category, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error)
	Update(ctx context.Context, category *models.Category) (*models.Category, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*models.Category, error)
	Exists(ctx context.Context, id primitive.ObjectID) (bool, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Category, error)
}

type categoryRepository struct {
	coll *mongo.Collection
}

func NewCategoryRepo(coll *mongo.Collection) CategoryRepository {
	return &categoryRepository{coll: coll}
}

func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	now := time.Now().UTC()
	category.CreatedAt = now
	category.UpdatedAt = now

	res, err := r.coll.InsertOne(dbCtx, category)
	if err != nil {
		return err
	}

	category.ID = res.InsertedID.(primitive.ObjectID)

	return nil
}

func (r *categoryRepository) FindAll(ctx context.Context) ([]models.Category, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	cursor, err := r.coll.Find(dbCtx, bson.M{})
	if err != nil {
		return nil, err
	}

	var categories []models.Category
	if err := cursor.All(dbCtx, &categories); err != nil {
		return nil, err
	}

	return categories, nil
}

func (r *categoryRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	category := &models.Category{}

	if err := r.coll.FindOne(dbCtx, bson.M{"_id": id}).Decode(category); err != nil {
		return nil, err
	}

	return category, nil
}

func (r *categoryRepository) Update(ctx context.Context, category *models.Category) (*models.Category, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"name":      category.Name,
		"updatedAt": time.Now().UTC(),
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	updated := &models.Category{}
	if err := r.coll.FindOneAndUpdate(dbCtx, bson.M{"_id": category.ID}, update, opts).Decode(updated); err != nil {
		return nil, err
	}

	return updated, nil
}

func (r *categoryRepository) Delete(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	deleted := &models.Category{}
	if err := r.coll.FindOneAndDelete(dbCtx, bson.M{"_id": id}).Decode(deleted); err != nil {
		return nil, err
	}

	return deleted, nil
}

// Exists is a count query, the referential-integrity primitive used by the
// product service before a write.
func (r *categoryRepository) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	count, err := r.coll.CountDocuments(dbCtx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *categoryRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	cursor, err := r.coll.Find(dbCtx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}

	var categories []models.Category
	if err := cursor.All(dbCtx, &categories); err != nil {
		return nil, err
	}

	return categories, nil
}
