package quote

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/baogia/backend/internal/domain/costing"
	"github.com/baogia/backend/internal/domain/quote"
	"github.com/baogia/backend/internal/domain/shared"
)

// ProfitService matches quote items against costing sheets to estimate
// the margin of a quote before it is sent.
type ProfitService struct {
	quotes quote.Repository
	sheets costing.SheetRepository
	logger *zap.Logger
}

// NewProfitService creates a new ProfitService
func NewProfitService(quotes quote.Repository, sheets costing.SheetRepository, logger *zap.Logger) *ProfitService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfitService{quotes: quotes, sheets: sheets, logger: logger}
}

// Analyze matches each line item against a costing sheet by folded
// product name. Items without a matching sheet count as zero cost and
// are reported as unmatched.
func (s *ProfitService) Analyze(ctx context.Context, ownerID, quoteID uuid.UUID) (*ProfitAnalysisResponse, error) {
	q, err := s.quotes.FindByIDForOwner(ctx, ownerID, quoteID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Quote not found")
		}
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}

	totals := q.CalculateTotals()
	revenue := totals.SubTotal.Sub(totals.DiscountAmount)

	lines := make([]ProfitLineResponse, 0, len(q.Items))
	totalCost := decimal.Zero
	unmatched := 0

	for idx := range q.Items {
		item := &q.Items[idx]
		line := ProfitLineResponse{
			ItemName: item.Name,
			Quantity: item.Quantity,
			Revenue:  item.LineTotal(),
		}

		sheet, err := s.sheets.FindByFoldedName(ctx, ownerID, shared.Fold(item.Name))
		switch {
		case err == nil:
			unitCost := sheet.Calculate().UnitCost
			line.Matched = true
			line.UnitCost = unitCost
			line.TotalCost = unitCost.Mul(item.Quantity)
			totalCost = totalCost.Add(line.TotalCost)
		case errors.Is(err, shared.ErrNotFound):
			unmatched++
		default:
			return nil, fmt.Errorf("failed to match costing sheet: %w", err)
		}
		lines = append(lines, line)
	}

	grossProfit := revenue.Sub(totalCost)
	margin := decimal.Zero
	if revenue.IsPositive() {
		margin = grossProfit.Mul(decimal.NewFromInt(100)).Div(revenue)
	}

	return &ProfitAnalysisResponse{
		QuoteID:        q.ID.String(),
		Number:         q.Number,
		Lines:          lines,
		Revenue:        revenue,
		TotalCost:      totalCost,
		GrossProfit:    grossProfit,
		MarginPercent:  margin,
		UnmatchedItems: unmatched,
	}, nil
}
