package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"

	"github.com/ecommerce-admin/backend/internal/api/middleware"
	"github.com/ecommerce-admin/backend/internal/cache"
	"github.com/ecommerce-admin/backend/internal/errors"
	"github.com/ecommerce-admin/backend/internal/models"
	repository "github.com/ecommerce-admin/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type OrderService interface {
	CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error)
	ListOrders(ctx context.Context) ([]models.Order, error)
	GetOrderByID(ctx context.Context, id string) (*models.Order, error)
	UpdateOrder(ctx context.Context, id string, req *models.UpdateOrderRequest) (*models.Order, error)
	DeleteOrder(ctx context.Context, id string) (*models.Order, error)
}

type orderService struct {
	repo        repository.OrderRepository
	productRepo repository.ProductRepository
	reportCache cache.Cache
}

// NewOrderService wires the product repository for referential checks and the
// report cache for purging stale dashboard aggregates on writes. reportCache
// may be nil when caching is disabled.
func NewOrderService(repo repository.OrderRepository, productRepo repository.ProductRepository, reportCache cache.Cache) OrderService {
	return &orderService{repo: repo, productRepo: productRepo, reportCache: reportCache}
}

// checkProductsExist runs one existence count per referenced product id and
// fails with the first missing id. The check is not atomic with the write; a
// concurrent product delete can still slip through.
func (s *orderService) checkProductsExist(ctx context.Context, ids []string) ([]primitive.ObjectID, error) {

	oids := make([]primitive.ObjectID, 0, len(ids))

	for _, id := range ids {

		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return nil, errors.ValidationError(fmt.Sprintf("Product with ID %s not found", id)).WithError(err)
		}

		exists, err := s.productRepo.Exists(ctx, oid)
		if err != nil {
			return nil, errors.DatabaseError("Failed to check product existence").WithError(err)
		}

		if !exists {
			return nil, errors.ValidationError(fmt.Sprintf("Product with ID %s not found", id))
		}

		oids = append(oids, oid)
	}

	return oids, nil
}

// populateProducts expands product references in place, keeping the stored
// productIds order and dropping ids that no longer resolve.
func (s *orderService) populateProducts(ctx context.Context, orders []models.Order) error {

	idSet := map[primitive.ObjectID]struct{}{}
	for _, o := range orders {
		for _, id := range o.ProductIDs {
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

	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}

	byID := make(map[primitive.ObjectID]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	for i := range orders {
		populated := make([]models.Product, 0, len(orders[i].ProductIDs))
		for _, id := range orders[i].ProductIDs {
			if p, ok := byID[id]; ok {
				populated = append(populated, p)
			}
		}
		orders[i].Products = populated
	}

	return nil
}

func (s *orderService) purgeReportCache(ctx context.Context) {
	if s.reportCache == nil {
		return
	}

	if err := s.reportCache.DeleteByPrefix(ctx, cache.DashboardKeyPrefix); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Failed to purge dashboard cache",
			slog.String("error", err.Error()))
	}
}

func (s *orderService) CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error) {

	if len(req.ProductIDs) == 0 {
		return nil, errors.ValidationError("Order must have at least one product")
	}

	productIDs, err := s.checkProductsExist(ctx, req.ProductIDs)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		ProductIDs: productIDs,
		Total:      req.Total,
	}

	if req.Date != nil {
		order.Date = *req.Date
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, errors.DatabaseError("Failed to create order").WithError(err)
	}

	s.purgeReportCache(ctx)

	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context) ([]models.Order, error) {

	orders, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch orders").WithError(err)
	}

	if err := s.populateProducts(ctx, orders); err != nil {
		return nil, errors.DatabaseError("Failed to populate products").WithError(err)
	}

	return orders, nil
}

func (s *orderService) GetOrderByID(ctx context.Context, id string) (*models.Order, error) {

	oid, appErr := parseEntityID("Order", id)
	if appErr != nil {
		return nil, appErr
	}

	order, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		if stderrors.Is(err, mongo.ErrNoDocuments) {
			return nil, errors.EntityNotFoundError("Order", id).WithError(err)
		}

		return nil, errors.DatabaseError("Failed to fetch order").WithError(err)
	}

	single := []models.Order{*order}
	if err := s.populateProducts(ctx, single); err != nil {
		return nil, errors.DatabaseError("Failed to populate products").WithError(err)
	}

	return &single[0], nil
}

func (s *orderService) UpdateOrder(ctx context.Context, id string, req *models.UpdateOrderRequest) (*models.Order, error) {

	oid, appErr := parseEntityID("Order", id)
	if appErr != nil {
		return nil, appErr
	}

	order, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		if stderrors.Is(err, mongo.ErrNoDocuments) {
			return nil, errors.EntityNotFoundError("Order", id).WithError(err)
		}

		return nil, errors.DatabaseError("Failed to fetch order").WithError(err)
	}

	// Product references are only re-validated when the update supplies a
	// non-empty list.
	if req.ProductIDs != nil && len(*req.ProductIDs) > 0 {
		productIDs, err := s.checkProductsExist(ctx, *req.ProductIDs)
		if err != nil {
			return nil, err
		}
		order.ProductIDs = productIDs
	}

	if req.Date != nil {
		order.Date = *req.Date
	}
	if req.Total != nil {
		order.Total = *req.Total
	}

	updated, err := s.repo.Update(ctx, order)
	if err != nil {
		if stderrors.Is(err, mongo.ErrNoDocuments) {
			return nil, errors.EntityNotFoundError("Order", id).WithError(err)
		}

		return nil, errors.DatabaseError("Failed to update order").WithError(err)
	}

	s.purgeReportCache(ctx)

	single := []models.Order{*updated}
	if err := s.populateProducts(ctx, single); err != nil {
		return nil, errors.DatabaseError("Failed to populate products").WithError(err)
	}

	return &single[0], nil
}

func (s *orderService) DeleteOrder(ctx context.Context, id string) (*models.Order, error) {

	oid, appErr := parseEntityID("Order", id)
	if appErr != nil {
		return nil, appErr
	}

	deleted, err := s.repo.Delete(ctx, oid)
	if err != nil {
		if stderrors.Is(err, mongo.ErrNoDocuments) {
			return nil, errors.EntityNotFoundError("Order", id).WithError(err)
		}

		return nil, errors.DatabaseError("Failed to delete order").WithError(err)
	}

	s.purgeReportCache(ctx)

	return deleted, nil
}
