package trade

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/gomu/backend/internal/domain/shared"
	"github.com/gomu/backend/internal/domain/trade"
)

// maxOrderNumberRetries bounds regeneration attempts when a generated
// order number collides
const maxOrderNumberRetries = 5

// SaleService handles checkout recording and order management
type SaleService struct {
	sales  trade.SaleRepository
	logger *zap.Logger
}

// NewSaleService creates a new sale service
func NewSaleService(sales trade.SaleRepository, logger *zap.Logger) *SaleService {
	return &SaleService{
		sales:  sales,
		logger: logger,
	}
}

// Create records a sale. Order numbers are random, so a collision is
// handled by regenerating and retrying the insert.
func (s *SaleService) Create(ctx context.Context, params trade.NewSaleParams) (*trade.Sale, error) {
	sale, err := trade.NewSale(params)
	if err != nil {
		return nil, err
	}

	for attempt := 0; ; attempt++ {
		err := s.sales.Create(ctx, sale)
		if err == nil {
			break
		}
		if !errors.Is(err, shared.ErrAlreadyExists) || attempt >= maxOrderNumberRetries {
			return nil, err
		}
		s.logger.Warn("Order number collision, regenerating",
			zap.String("order_number", sale.OrderNumber))
		sale.RegenerateOrderNumber()
	}

	s.logger.Info("Recorded sale",
		zap.Int64("sale_id", sale.ID),
		zap.String("order_number", sale.OrderNumber),
		zap.String("total", sale.Total.String()))
	return sale, nil
}

// List returns sales matching the filter with the total count
func (s *SaleService) List(ctx context.Context, filter trade.SaleFilter) ([]trade.Sale, int64, error) {
	return s.sales.FindAll(ctx, filter)
}

// Get returns a single sale by id
func (s *SaleService) Get(ctx context.Context, id int64) (*trade.Sale, error) {
	return s.sales.FindByID(ctx, id)
}

// GetByOrderNumber returns a sale by its public order number, used by
// customers tracking an order
func (s *SaleService) GetByOrderNumber(ctx context.Context, orderNumber string) (*trade.Sale, error) {
	return s.sales.FindByOrderNumber(ctx, orderNumber)
}

// ChangeStatus moves a sale through its fulfillment states. Delivered and
// cancelled sales are frozen.
func (s *SaleService) ChangeStatus(ctx context.Context, id int64, status string) (*trade.Sale, error) {
	sale, err := s.sales.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := sale.ChangeStatus(trade.SaleStatus(status)); err != nil {
		return nil, err
	}
	if err := s.sales.Update(ctx, sale); err != nil {
		return nil, err
	}
	s.logger.Info("Changed sale status",
		zap.Int64("sale_id", sale.ID),
		zap.String("status", string(sale.Status)))
	return sale, nil
}

// SetNotes replaces the administrative notes on a sale
func (s *SaleService) SetNotes(ctx context.Context, id int64, notes string) (*trade.Sale, error) {
	sale, err := s.sales.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	sale.SetNotes(notes)
	if err := s.sales.Update(ctx, sale); err != nil {
		return nil, err
	}
	return sale, nil
}

// Delete removes a sale record
func (s *SaleService) Delete(ctx context.Context, id int64) error {
	if _, err := s.sales.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.sales.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Deleted sale", zap.Int64("sale_id", id))
	return nil
}

// Stats aggregates sales counts and revenue over an optional date window
func (s *SaleService) Stats(ctx context.Context, startDate, endDate *time.Time) (*trade.SaleStats, error) {
	return s.sales.Stats(ctx, startDate, endDate)
}
