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

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	FindAll(ctx context.Context) ([]models.Order, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	// FindByDateRange filters on the order date, both bounds inclusive and
	// either bound optional. Nil bounds return every order.
	FindByDateRange(ctx context.Context, start, end *time.Time) ([]models.Order, error)
	Update(ctx context.Context, order *models.Order) (*models.Order, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
}

type orderRepository struct {
	coll *mongo.Collection
}

func NewOrderRepo(coll *mongo.Collection) OrderRepository {
	return &orderRepository{coll: coll}
}

func (r *orderRepository) Create(ctx context.Context, order *models.Order) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	now := time.Now().UTC()
	order.CreatedAt = now
	order.UpdatedAt = now

	if order.Date.IsZero() {
		order.Date = now
	}

	res, err := r.coll.InsertOne(dbCtx, order)
	if err != nil {
		return err
	}

	order.ID = res.InsertedID.(primitive.ObjectID)

	return nil
}

func (r *orderRepository) FindAll(ctx context.Context) ([]models.Order, error) {
	return r.FindByDateRange(ctx, nil, nil)
}

func (r *orderRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	order := &models.Order{}

	if err := r.coll.FindOne(dbCtx, bson.M{"_id": id}).Decode(order); err != nil {
		return nil, err
	}

	return order, nil
}

func (r *orderRepository) FindByDateRange(ctx context.Context, start, end *time.Time) ([]models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	filter := bson.M{}

	if start != nil || end != nil {
		dateFilter := bson.M{}
		if start != nil {
			dateFilter["$gte"] = *start
		}
		if end != nil {
			dateFilter["$lte"] = *end
		}
		filter["date"] = dateFilter
	}

	cursor, err := r.coll.Find(dbCtx, filter)
	if err != nil {
		return nil, err
	}

	var orders []models.Order
	if err := cursor.All(dbCtx, &orders); err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *orderRepository) Update(ctx context.Context, order *models.Order) (*models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"date":       order.Date,
		"productIds": order.ProductIDs,
		"total":      order.Total,
		"updatedAt":  time.Now().UTC(),
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	updated := &models.Order{}
	if err := r.coll.FindOneAndUpdate(dbCtx, bson.M{"_id": order.ID}, update, opts).Decode(updated); err != nil {
		return nil, err
	}

	return updated, nil
}

func (r *orderRepository) Delete(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	deleted := &models.Order{}
	if err := r.coll.FindOneAndDelete(dbCtx, bson.M{"_id": id}).Decode(deleted); err != nil {
		return nil, err
	}

	return deleted, nil
}
