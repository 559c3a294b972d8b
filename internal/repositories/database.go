package repository

import (
	"context"
	"fmt"

	"github.com/ecommerce-admin/backend/internal/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	categoriesCollection = "categories"
	productsCollection   = "products"
	ordersCollection     = "orders"
)

type Repository struct {
	client *mongo.Client

	Category CategoryRepository
	Product  ProductRepository
	Order    OrderRepository
}

// New opens a single client for the life of the process. Cancellation and
// timeouts beyond server selection are left to the driver configuration.
func New(ctx context.Context, cfg *config.Config) (*Repository, error) {

	opts := options.Client().
		ApplyURI(cfg.Mongo.URI).
		SetServerSelectionTimeout(cfg.Mongo.Timeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	db := client.Database(cfg.Mongo.Database)

	return &Repository{
		client:   client,
		Category: NewCategoryRepo(db.Collection(categoriesCollection)),
		Product:  NewProductRepo(db.Collection(productsCollection)),
		Order:    NewOrderRepo(db.Collection(ordersCollection)),
	}, nil
}

func (r *Repository) Client() *mongo.Client {
	return r.client
}

func (r *Repository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
