package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"github.com/ecommerce-admin/backend/internal/api/middleware"
	"github.com/ecommerce-admin/backend/internal/cache"
	"github.com/ecommerce-admin/backend/internal/errors"
	"github.com/ecommerce-admin/backend/internal/models"
	repository "github.com/ecommerce-admin/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const DefaultTopProductsLimit = 10

// DashboardService computes the order reports as explicit expand-group-sort
// transforms over repository reads, so the join semantics stay in one place
// instead of inside store pipeline stages.
type DashboardService interface {
	GetOrderStatistics(ctx context.Context, filter models.StatsFilter) (*models.OrderStatistics, error)
	GetOrdersByPeriod(ctx context.Context, start, end time.Time) ([]models.PeriodBucket, error)
	GetOrdersByCategory(ctx context.Context) ([]models.CategorySales, error)
	GetTopSellingProducts(ctx context.Context, limit int) ([]models.TopSellingProduct, error)
}

type dashboardService struct {
	orderRepo    repository.OrderRepository
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	reportCache  cache.Cache
	cacheTTL     time.Duration
}

// NewDashboardService accepts a nil cache, in which case every call recomputes
// from the store.
func NewDashboardService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository, reportCache cache.Cache, cacheTTL time.Duration) DashboardService {
	return &dashboardService{
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		reportCache:  reportCache,
		cacheTTL:     cacheTTL,
	}
}

func (s *dashboardService) fromCache(ctx context.Context, key string, dest any) bool {
	if s.reportCache == nil {
		return false
	}

	found, err := s.reportCache.Get(ctx, key, dest)
	if err != nil {
		middleware.LoggerFromContext(ctx).Warn("Dashboard cache read failed",
			slog.String("key", key), slog.String("error", err.Error()))
		return false
	}

	return found
}

func (s *dashboardService) toCache(ctx context.Context, key string, value any) {
	if s.reportCache == nil {
		return
	}

	if err := s.reportCache.Set(ctx, key, value, s.cacheTTL); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Dashboard cache write failed",
			slog.String("key", key), slog.String("error", err.Error()))
	}
}

func statsCacheKey(filter models.StatsFilter) string {
	part := func(t *time.Time) string {
		if t == nil {
			return "-"
		}
		return t.UTC().Format(time.RFC3339)
	}

	oid := func(id *primitive.ObjectID) string {
		if id == nil {
			return "-"
		}
		return id.Hex()
	}

	return cache.Key(cache.DashboardKeyPrefix, "stats",
		part(filter.StartDate), part(filter.EndDate), oid(filter.CategoryID), oid(filter.ProductID))
}

// productsByID loads every product referenced by the given orders and indexes
// them by id. Dangling references simply have no entry.
func (s *dashboardService) productsByID(ctx context.Context, orders []models.Order) (map[primitive.ObjectID]models.Product, error) {

	idSet := map[primitive.ObjectID]struct{}{}
	for _, o := range orders {
		for _, id := range o.ProductIDs {
			idSet[id] = struct{}{}
		}
	}

	if len(idSet) == 0 {
		return map[primitive.ObjectID]models.Product{}, nil
	}

	ids := make([]primitive.ObjectID, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[primitive.ObjectID]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	return byID, nil
}

// GetOrderStatistics aggregates count, sum, avg, max and min of order totals
// over the filtered set. An empty set yields all zeroes.
func (s *dashboardService) GetOrderStatistics(ctx context.Context, filter models.StatsFilter) (*models.OrderStatistics, error) {

	key := statsCacheKey(filter)

	cached := &models.OrderStatistics{}
	if s.fromCache(ctx, key, cached) {
		return cached, nil
	}

	orders, err := s.orderRepo.FindByDateRange(ctx, filter.StartDate, filter.EndDate)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch orders").WithError(err)
	}

	if filter.CategoryID != nil {
		orders, err = s.filterByCategory(ctx, orders, *filter.CategoryID)
		if err != nil {
			return nil, err
		}
	}

	if filter.ProductID != nil {
		orders = filterByProduct(orders, *filter.ProductID)
	}

	stats := &models.OrderStatistics{}

	for i, o := range orders {
		stats.TotalOrders++
		stats.TotalRevenue += o.Total

		if i == 0 || o.Total > stats.MaxOrderValue {
			stats.MaxOrderValue = o.Total
		}
		if i == 0 || o.Total < stats.MinOrderValue {
			stats.MinOrderValue = o.Total
		}
	}

	if stats.TotalOrders > 0 {
		stats.AverageOrderValue = stats.TotalRevenue / float64(stats.TotalOrders)
	}

	s.toCache(ctx, key, stats)

	return stats, nil
}

// filterByCategory keeps orders with at least one referenced product tagged
// with the category. Dangling product references never match.
func (s *dashboardService) filterByCategory(ctx context.Context, orders []models.Order, categoryID primitive.ObjectID) ([]models.Order, error) {

	products, err := s.productsByID(ctx, orders)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch products").WithError(err)
	}

	inCategory := map[primitive.ObjectID]bool{}
	for id, p := range products {
		for _, c := range p.CategoryIDs {
			if c == categoryID {
				inCategory[id] = true
				break
			}
		}
	}

	filtered := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		for _, pid := range o.ProductIDs {
			if inCategory[pid] {
				filtered = append(filtered, o)
				break
			}
		}
	}

	return filtered, nil
}

// filterByProduct keeps orders referencing the product, dangling or not; a
// reference to a since-deleted product still counts as a reference.
func filterByProduct(orders []models.Order, productID primitive.ObjectID) []models.Order {

	filtered := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		for _, pid := range o.ProductIDs {
			if pid == productID {
				filtered = append(filtered, o)
				break
			}
		}
	}

	return filtered
}

// GetOrdersByPeriod groups orders by calendar day, ascending. Days without
// orders are omitted; an inverted range simply yields no buckets.
func (s *dashboardService) GetOrdersByPeriod(ctx context.Context, start, end time.Time) ([]models.PeriodBucket, error) {

	key := cache.Key(cache.DashboardKeyPrefix, "period",
		start.UTC().Format(time.RFC3339), end.UTC().Format(time.RFC3339))

	var cached []models.PeriodBucket
	if s.fromCache(ctx, key, &cached) {
		return cached, nil
	}

	orders, err := s.orderRepo.FindByDateRange(ctx, &start, &end)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch orders").WithError(err)
	}

	type dayKey struct{ year, month, day int }

	grouped := map[dayKey]*models.PeriodBucket{}

	for _, o := range orders {
		date := o.Date.UTC()
		k := dayKey{date.Year(), int(date.Month()), date.Day()}

		bucket, ok := grouped[k]
		if !ok {
			bucket = &models.PeriodBucket{Year: k.year, Month: k.month, Day: k.day}
			grouped[k] = bucket
		}

		bucket.Count++
		bucket.Total += o.Total
	}

	buckets := make([]models.PeriodBucket, 0, len(grouped))
	for _, b := range grouped {
		buckets = append(buckets, *b)
	}

	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Year != buckets[j].Year {
			return buckets[i].Year < buckets[j].Year
		}
		if buckets[i].Month != buckets[j].Month {
			return buckets[i].Month < buckets[j].Month
		}
		return buckets[i].Day < buckets[j].Day
	})

	s.toCache(ctx, key, buckets)

	return buckets, nil
}

// GetOrdersByCategory fans every order out into one row per
// (product-in-order, category-on-product) pair, then groups by category.
// An order's total is added once per row, so an order with two products in
// the same category contributes its total twice. That double count mirrors
// the report the admin dashboard has always shown; see DESIGN.md before
// changing it.
func (s *dashboardService) GetOrdersByCategory(ctx context.Context) ([]models.CategorySales, error) {

	key := cache.Key(cache.DashboardKeyPrefix, "orders-by-category")

	var cached []models.CategorySales
	if s.fromCache(ctx, key, &cached) {
		return cached, nil
	}

	orders, err := s.orderRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch orders").WithError(err)
	}

	products, err := s.productsByID(ctx, orders)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch products").WithError(err)
	}

	categoryIDSet := map[primitive.ObjectID]struct{}{}
	for _, p := range products {
		for _, id := range p.CategoryIDs {
			categoryIDSet[id] = struct{}{}
		}
	}

	categoryIDs := make([]primitive.ObjectID, 0, len(categoryIDSet))
	for id := range categoryIDSet {
		categoryIDs = append(categoryIDs, id)
	}

	categories, err := s.categoryRepo.FindByIDs(ctx, categoryIDs)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch categories").WithError(err)
	}

	categoryByID := make(map[primitive.ObjectID]models.Category, len(categories))
	for _, c := range categories {
		categoryByID[c.ID] = c
	}

	grouped := map[primitive.ObjectID]*models.CategorySales{}
	var seen []primitive.ObjectID

	for _, o := range orders {
		for _, pid := range o.ProductIDs {
			product, ok := products[pid]
			if !ok {
				continue // dangling product reference
			}

			for _, cid := range product.CategoryIDs {
				category, ok := categoryByID[cid]
				if !ok {
					continue // dangling category reference
				}

				row, ok := grouped[cid]
				if !ok {
					row = &models.CategorySales{
						CategoryID:   cid.Hex(),
						CategoryName: category.Name,
					}
					grouped[cid] = row
					seen = append(seen, cid)
				}

				row.Count++
				row.Total += o.Total
			}
		}
	}

	sales := make([]models.CategorySales, 0, len(seen))
	for _, cid := range seen {
		sales = append(sales, *grouped[cid])
	}

	sort.SliceStable(sales, func(i, j int) bool {
		return sales[i].Total > sales[j].Total
	})

	s.toCache(ctx, key, sales)

	return sales, nil
}

// GetTopSellingProducts ranks products by how many orders include them. The
// total is the sum of the product's unit price per appearance, not the order
// total; the category report deliberately uses the other semantics.
func (s *dashboardService) GetTopSellingProducts(ctx context.Context, limit int) ([]models.TopSellingProduct, error) {

	key := cache.Key(cache.DashboardKeyPrefix, "top-products", strconv.Itoa(limit))

	var cached []models.TopSellingProduct
	if s.fromCache(ctx, key, &cached) {
		return cached, nil
	}

	orders, err := s.orderRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch orders").WithError(err)
	}

	products, err := s.productsByID(ctx, orders)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch products").WithError(err)
	}

	grouped := map[primitive.ObjectID]*models.TopSellingProduct{}
	var seen []primitive.ObjectID

	for _, o := range orders {
		for _, pid := range o.ProductIDs {
			product, ok := products[pid]
			if !ok {
				continue // dangling product reference
			}

			row, ok := grouped[pid]
			if !ok {
				row = &models.TopSellingProduct{
					ProductID:   pid.Hex(),
					ProductName: product.Name,
				}
				grouped[pid] = row
				seen = append(seen, pid)
			}

			row.Count++
			row.Total += product.Price
		}
	}

	ranked := make([]models.TopSellingProduct, 0, len(seen))
	for _, pid := range seen {
		ranked = append(ranked, *grouped[pid])
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	if limit < 0 {
		limit = 0
	}
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	s.toCache(ctx, key, ranked)

	return ranked, nil
}

// ParseStatsFilter builds a StatsFilter from raw query values, rejecting
// malformed inputs before any query is constructed.
func ParseStatsFilter(startDate, endDate, categoryID, productID string) (models.StatsFilter, error) {

	filter := models.StatsFilter{}

	if startDate != "" {
		t, err := parseDateParam(startDate)
		if err != nil {
			return filter, errors.ValidationError(fmt.Sprintf("Invalid startDate: %s", startDate)).WithError(err)
		}
		filter.StartDate = &t
	}

	if endDate != "" {
		t, err := parseDateParam(endDate)
		if err != nil {
			return filter, errors.ValidationError(fmt.Sprintf("Invalid endDate: %s", endDate)).WithError(err)
		}
		filter.EndDate = &t
	}

	if categoryID != "" {
		oid, err := primitive.ObjectIDFromHex(categoryID)
		if err != nil {
			return filter, errors.ValidationError(fmt.Sprintf("Invalid categoryId: %s", categoryID)).WithError(err)
		}
		filter.CategoryID = &oid
	}

	if productID != "" {
		oid, err := primitive.ObjectIDFromHex(productID)
		if err != nil {
			return filter, errors.ValidationError(fmt.Sprintf("Invalid productId: %s", productID)).WithError(err)
		}
		filter.ProductID = &oid
	}

	return filter, nil
}

// parseDateParam accepts both date-only and RFC 3339 timestamps, the two
// formats the admin frontend sends.
func parseDateParam(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}

	return time.Parse(time.RFC3339, value)
}
