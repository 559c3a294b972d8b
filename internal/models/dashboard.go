package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatistics is computed over a filtered order subset. An empty subset
// yields the zero value, never nulls.
type OrderStatistics struct {
	TotalOrders       int     `json:"totalOrders"`
	TotalRevenue      float64 `json:"totalRevenue"`
	AverageOrderValue float64 `json:"averageOrderValue"`
	MaxOrderValue     float64 `json:"maxOrderValue"`
	MinOrderValue     float64 `json:"minOrderValue"`
}

// PeriodBucket is one calendar day with at least one order in range.
type PeriodBucket struct {
	Year  int     `json:"year"`
	Month int     `json:"month"`
	Day   int     `json:"day"`
	Count int     `json:"count"`
	Total float64 `json:"total"`
}

type CategorySales struct {
	CategoryID   string  `json:"categoryId"`
	CategoryName string  `json:"categoryName"`
	Count        int     `json:"count"`
	Total        float64 `json:"total"`
}

type TopSellingProduct struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Count       int     `json:"count"`
	Total       float64 `json:"total"`
}

// StatsFilter narrows the order set for statistics queries. Nil fields mean
// "no bound". Validated at the handler layer before a query is built.
type StatsFilter struct {
	StartDate  *time.Time
	EndDate    *time.Time
	CategoryID *primitive.ObjectID
	ProductID  *primitive.ObjectID
}

type ReportPeriod struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// SalesReport is the payload produced by the reporting job.
type SalesReport struct {
	Period      ReportPeriod    `json:"period"`
	Statistics  OrderStatistics `json:"statistics"`
	GeneratedAt time.Time       `json:"generatedAt"`
}
