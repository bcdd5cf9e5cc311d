package trade

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SaleFilter narrows sale listings
type SaleFilter struct {
	Status    *SaleStatus
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
	Offset    int
}

// SaleStats aggregates sales counts and revenue for a period
type SaleStats struct {
	TotalSales       int64           `json:"totalSales"`
	CompletedSales   int64           `json:"completedSales"`
	TotalRevenue     decimal.Decimal `json:"totalRevenue"`
	CompletedRevenue decimal.Decimal `json:"completedRevenue"`
}

// SaleRepository is the persistence port for sales
type SaleRepository interface {
	FindByID(ctx context.Context, id int64) (*Sale, error)
	// FindByOrderNumber resolves a sale from its public order number,
	// also used when attaching chat conversations to orders
	FindByOrderNumber(ctx context.Context, orderNumber string) (*Sale, error)
	FindAll(ctx context.Context, filter SaleFilter) ([]Sale, int64, error)
	// Create inserts the sale, reporting an order number collision as
	// shared.ErrAlreadyExists so callers can regenerate and retry
	Create(ctx context.Context, sale *Sale) error
	Update(ctx context.Context, sale *Sale) error
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context, startDate, endDate *time.Time) (*SaleStats, error)
}
