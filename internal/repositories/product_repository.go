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

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	FindAll(ctx context.Context) ([]models.Product, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Product, error)
	Update(ctx context.Context, product *models.Product) (*models.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	Exists(ctx context.Context, id primitive.ObjectID) (bool, error)
}

type productRepository struct {
	coll *mongo.Collection
}

func NewProductRepo(coll *mongo.Collection) ProductRepository {
	return &productRepository{coll: coll}
}

func (r *productRepository) Create(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now

	if product.CategoryIDs == nil {
		product.CategoryIDs = []primitive.ObjectID{}
	}

	res, err := r.coll.InsertOne(dbCtx, product)
	if err != nil {
		return err
	}

	product.ID = res.InsertedID.(primitive.ObjectID)

	return nil
}

func (r *productRepository) FindAll(ctx context.Context) ([]models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	cursor, err := r.coll.Find(dbCtx, bson.M{})
	if err != nil {
		return nil, err
	}

	var products []models.Product
	if err := cursor.All(dbCtx, &products); err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	product := &models.Product{}

	if err := r.coll.FindOne(dbCtx, bson.M{"_id": id}).Decode(product); err != nil {
		return nil, err
	}

	return product, nil
}

// FindByIDs is the populate primitive: ids with no matching document are
// simply absent from the result.
func (r *productRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	cursor, err := r.coll.Find(dbCtx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}

	var products []models.Product
	if err := cursor.All(dbCtx, &products); err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepository) Update(ctx context.Context, product *models.Product) (*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"name":        product.Name,
		"description": product.Description,
		"price":       product.Price,
		"categoryIds": product.CategoryIDs,
		"imageUrl":    product.ImageURL,
		"updatedAt":   time.Now().UTC(),
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	updated := &models.Product{}
	if err := r.coll.FindOneAndUpdate(dbCtx, bson.M{"_id": product.ID}, update, opts).Decode(updated); err != nil {
		return nil, err
	}

	return updated, nil
}

func (r *productRepository) Delete(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	deleted := &models.Product{}
	if err := r.coll.FindOneAndDelete(dbCtx, bson.M{"_id": id}).Decode(deleted); err != nil {
		return nil, err
	}

	return deleted, nil
}

func (r *productRepository) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	count, err := r.coll.CountDocuments(dbCtx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
