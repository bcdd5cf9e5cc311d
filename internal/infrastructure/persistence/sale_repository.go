package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/gomu/backend/internal/domain/shared"
	"github.com/gomu/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormSaleRepository implements trade.SaleRepository using GORM
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// FindByID finds a sale by ID
func (r *GormSaleRepository) FindByID(ctx context.Context, id int64) (*trade.Sale, error) {
	var sale trade.Sale
	if err := r.db.WithContext(ctx).First(&sale, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sale, nil
}

// FindByOrderNumber finds a sale by its public order number
func (r *GormSaleRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*trade.Sale, error) {
	var sale trade.Sale
	if err := r.db.WithContext(ctx).
		Where("order_number = ?", orderNumber).
		First(&sale).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sale, nil
}

// FindAll returns sales matching the filter, newest first, plus the total
// count for pagination
func (r *GormSaleRepository) FindAll(ctx context.Context, filter trade.SaleFilter) ([]trade.Sale, int64, error) {
	query := r.db.WithContext(ctx).Model(&trade.Sale{})
	query = applySaleFilter(query, filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var sales []trade.Sale
	if err := query.Find(&sales).Error; err != nil {
		return nil, 0, err
	}
	return sales, total, nil
}

// Create inserts a sale, reporting order number collisions as already
// existing so the caller can regenerate and retry
func (r *GormSaleRepository) Create(ctx context.Context, sale *trade.Sale) error {
	if err := r.db.WithContext(ctx).Create(sale).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Update saves changes to an existing sale
func (r *GormSaleRepository) Update(ctx context.Context, sale *trade.Sale) error {
	return r.db.WithContext(ctx).Save(sale).Error
}

// Delete removes a sale
func (r *GormSaleRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&trade.Sale{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Stats aggregates counts and revenue, overall and for delivered sales
func (r *GormSaleRepository) Stats(ctx context.Context, startDate, endDate *time.Time) (*trade.SaleStats, error) {
	base := r.db.WithContext(ctx).Model(&trade.Sale{})
	if startDate != nil {
		base = base.Where("created_at >= ?", *startDate)
	}
	if endDate != nil {
		base = base.Where("created_at <= ?", *endDate)
	}

	type row struct {
		TotalSales       int64
		CompletedSales   int64
		TotalRevenue     decimal.Decimal
		CompletedRevenue decimal.Decimal
	}
	var result row
	if err := base.
		Select("COUNT(*) AS total_sales, " +
			"COUNT(*) FILTER (WHERE status = 'delivered') AS completed_sales, " +
			"COALESCE(SUM(total), 0) AS total_revenue, " +
			"COALESCE(SUM(total) FILTER (WHERE status = 'delivered'), 0) AS completed_revenue").
		Scan(&result).Error; err != nil {
		return nil, err
	}

	return &trade.SaleStats{
		TotalSales:       result.TotalSales,
		CompletedSales:   result.CompletedSales,
		TotalRevenue:     result.TotalRevenue,
		CompletedRevenue: result.CompletedRevenue,
	}, nil
}

func applySaleFilter(query *gorm.DB, filter trade.SaleFilter) *gorm.DB {
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.StartDate != nil {
		query = query.Where("created_at >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("created_at <= ?", *filter.EndDate)
	}
	return query
}

var _ trade.SaleRepository = (*GormSaleRepository)(nil)
