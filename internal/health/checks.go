package health

import (
	"context"
	"fmt"
	"time"

	"github.com/ecommerce-admin/backend/internal/config"
	"github.com/hellofresh/health-go/v5"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Endpoints collects the live dependencies the health checks probe.
type Endpoints struct {
	MongoClient *mongo.Client
	ObjectStore interface {
		Ping(ctx context.Context) error
	}
}

func NewHealthHandler(cfg *config.Config, endpoints *Endpoints) (*health.Health, error) {

	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    "ecommerce-backoffice",
			Version: "1.0.0",
		}),
		health.WithSystemInfo(),
		health.WithChecks(
			health.Config{
				Name:      "mongodb",
				Timeout:   3 * time.Second,
				SkipOnErr: false,
				Check: func(ctx context.Context) error {
					if endpoints.MongoClient == nil {
						return fmt.Errorf("mongo client is not initialized")
					}

					return endpoints.MongoClient.Ping(ctx, readpref.Primary())
				},
			},
			health.Config{
				Name:      "redis",
				Timeout:   2 * time.Second,
				SkipOnErr: true,
				Check: healthRedis.New(
					healthRedis.Config{
						DSN: cfg.RedisConnect.GetDSN(),
					},
				),
			},
			health.Config{
				Name:      "object-storage",
				Timeout:   3 * time.Second,
				SkipOnErr: true,
				Check: func(ctx context.Context) error {
					if endpoints.ObjectStore == nil {
						return fmt.Errorf("object storage client is not initialized")
					}

					return endpoints.ObjectStore.Ping(ctx)
				},
			},
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize health checks: %w", err)
	}

	return h, nil
}
