package quote

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/baogia/backend/internal/domain/catalog"
	"github.com/baogia/backend/internal/domain/quote"
	"github.com/baogia/backend/internal/domain/settings"
	"github.com/baogia/backend/internal/domain/shared"
)

// Service handles quote lifecycle operations
type Service struct {
	quotes    quote.Repository
	templates quote.TemplateRepository
	entries   catalog.EntryRepository
	profiles  settings.Repository
	logger    *zap.Logger
}

// NewService creates a new quote Service
func NewService(
	quotes quote.Repository,
	templates quote.TemplateRepository,
	entries catalog.EntryRepository,
	profiles settings.Repository,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		quotes:    quotes,
		templates: templates,
		entries:   entries,
		profiles:  profiles,
		logger:    logger,
	}
}

// Create opens a new draft quote, seeding notes and VAT from the
// company profile defaults when one exists.
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, req CreateQuoteRequest) (*QuoteResponse, error) {
	quoteDate := time.Now()
	if req.QuoteDate != nil {
		quoteDate = *req.QuoteDate
	}

	q, err := quote.NewQuote(ownerID, req.CustomerName, quoteDate)
	if err != nil {
		return nil, err
	}
	q.CustomerAddress = req.CustomerAddress
	q.CustomerPhone = req.CustomerPhone
	q.Notes = req.Notes

	if profile, err := s.profiles.FindByOwner(ctx, ownerID); err == nil {
		if q.Notes == "" {
			q.Notes = profile.DefaultNotes
		}
		if profile.DefaultTaxPercent.IsPositive() {
			if err := q.SetTaxPercent(profile.DefaultTaxPercent); err != nil {
				return nil, err
			}
		}
	}

	if err := s.quotes.Save(ctx, q); err != nil {
		return nil, fmt.Errorf("failed to save quote: %w", err)
	}

	s.logger.Info("quote created",
		zap.String("id", q.ID.String()),
		zap.String("number", q.Number))

	return toQuoteResponse(q), nil
}

// Get retrieves a full quote by ID
func (s *Service) Get(ctx context.Context, ownerID, quoteID uuid.UUID) (*QuoteResponse, error) {
	q, err := s.findQuote(ctx, ownerID, quoteID)
	if err != nil {
		return nil, err
	}
	return toQuoteResponse(q), nil
}

// List retrieves a paginated list of quotes, searchable by number and
// customer name and filterable by status.
func (s *Service) List(ctx context.Context, ownerID uuid.UUID, req ListQuotesRequest) (*ListQuotesResponse, error) {
	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	filter.Search = req.Search
	filter.OrderBy = "quote_date"
	if req.Status != "" {
		status := quote.Status(req.Status)
		if !status.IsValid() {
			return nil, shared.NewDomainError("INVALID_INPUT", "Unknown quote status")
		}
		filter.Filters["status"] = string(status)
	}

	quotes, err := s.quotes.FindAllForOwner(ctx, ownerID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list quotes: %w", err)
	}
	total, err := s.quotes.CountForOwner(ctx, ownerID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count quotes: %w", err)
	}

	items := make([]QuoteSummaryResponse, len(quotes))
	for i := range quotes {
		items[i] = toQuoteSummary(&quotes[i])
	}
	return &ListQuotesResponse{
		Items: items,
		Total: total,
		Page:  filter.Page,
		Size:  filter.PageSize,
	}, nil
}

// Update replaces the header fields of a draft quote
func (s *Service) Update(ctx context.Context, ownerID, quoteID uuid.UUID, req UpdateQuoteRequest) (*QuoteResponse, error) {
	q, err := s.findQuote(ctx, ownerID, quoteID)
	if err != nil {
		return nil, err
	}
	if !q.IsDraft() {
		return nil, shared.NewDomainError("INVALID_STATE", "Only draft quotes can be modified")
	}
	if req.CustomerName == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Customer name is required")
	}

	q.CustomerName = req.CustomerName
	q.CustomerAddress = req.CustomerAddress
	q.CustomerPhone = req.CustomerPhone
	if req.QuoteDate != nil {
		q.QuoteDate = *req.QuoteDate
	}
	q.Notes = req.Notes
	q.Touch()
	q.IncrementVersion()

	if err := s.quotes.Save(ctx, q); err != nil {
		return nil, fmt.Errorf("failed to save quote: %w", err)
	}
	return toQuoteResponse(q), nil
}

// Delete removes a quote and its lines
func (s *Service) Delete(ctx context.Context, ownerID, quoteID uuid.UUID) error {
	if _, err := s.findQuote(ctx, ownerID, quoteID); err != nil {
		return err
	}
	if err := s.quotes.Delete(ctx, quoteID); err != nil {
		return fmt.Errorf("failed to delete quote: %w", err)
	}
	s.logger.Info("quote deleted", zap.String("id", quoteID.String()))
	return nil
}

// AddItem appends a line item to a draft quote
func (s *Service) AddItem(ctx context.Context, ownerID, quoteID uuid.UUID, req LineItemRequest) (*QuoteResponse, error) {
	q, err := s.findQuote(ctx, ownerID, quoteID)
	if err != nil {
		return nil, err
	}
	item, err := itemFromRequest(req)
	if err != nil {
		return nil, err
	}
	if err := q.AddItem(*item); err != nil {
		return nil, err
	}
	if err := s.quotes.Save(ctx, q); err != nil {
		return nil, fmt.Errorf("failed to save quote: %w", err)
	}
	return toQuoteResponse(q), nil
}

// AddItemFromCatalog copies a catalog entry onto the quote with the
// given quantity and dimensions.
func (s *Service) AddItemFromCatalog(ctx context.Context, ownerID, quoteID uuid.UUID, req AddItemFromCatalogRequest) (*QuoteResponse, error) {
	q, err := s.findQuote(ctx, ownerID, quoteID)
	if err != nil {
		return nil, err
	}
	entry, err := s.entries.FindByIDForOwner(ctx, ownerID, req.EntryID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Catalog entry not found")
		}
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}

	item := entry.ToLineItem(req.Quantity, req.LengthMM, req.HeightMM, req.DepthMM)
	if err := q.AddItem(item); err != nil {
		return nil, err
	}
	if err := s.quotes.Save(ctx, q); err != nil {
		return nil, fmt.Errorf("failed to save quote: %w", err)
	}
	return toQuoteResponse(q), nil
}

// UpdateItem replaces a line item, keeping its position
func (s *Service) UpdateItem(ctx context.Context, ownerID, quoteID, itemID uuid.UUID, req LineItemRequest) (*QuoteResponse, error) {
	q, err := s.findQuote(ctx, ownerID, quoteID)
	if err != nil {
		return nil, err
	}
	item, err := itemFromRequest(req)
	if err != nil {
		return nil, err
	}
	if err := q.UpdateItem(itemID, *item); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Line item not found")
		}
		return nil, err
	}
	if err := s.quotes.Save(ctx, q); err != nil {
		return nil, fmt.Errorf("failed to save quote: %w", err)
	}
	return toQuoteResponse(q), nil
}

// RemoveItem deletes a line item
func (s *Service) RemoveItem(ctx context.Context, ownerID, quoteID, itemID uuid.UUID) (*QuoteResponse, error) {
	q, err := s.findQuote(ctx, ownerID, quoteID)
	if err != nil {
		return nil, err
	}
	if err := q.RemoveItem(itemID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Line item not found")
		}
		return nil, err
	}
	if err := s.quotes.Save(ctx, q); err != nil {
		return nil, fmt.Errorf("failed to save quote: %w", err)
	}
	return toQuoteResponse(q), nil
}

// SetDiscount sets the order-level discount
func (s *Service) SetDiscount(ctx context.Context, ownerID, quoteID uuid.UUID, req SetDiscountRequest) (*QuoteResponse, error) {
	q, err := s.findQuote(ctx, ownerID, quoteID)
	if err != nil {
		return nil, err
	}
	discountType, err := quote.ParseDiscountType(req.Type)
	if err != nil {
		return nil, err
	}
	if err := q.SetOrderDiscount(discountType, req.Value); err != nil {
		return nil, err
	}
	if err := s.quotes.Save(ctx, q); err != nil {
		return nil, fmt.Errorf("failed to save quote: %w", err)
	}
	return toQuoteResponse(q), nil
}

// SetTax sets the VAT percentage
func (s *Service) SetTax(ctx context.Context, ownerID, quoteID uuid.UUID, req SetTaxRequest) (*QuoteResponse, error) {
	q, err := s.findQuote(ctx, ownerID, quoteID)
	if err != nil {
		return nil, err
	}
	if err := q.SetTaxPercent(req.Percent); err != nil {
		return nil, err
	}
	if err := s.quotes.Save(ctx, q); err != nil {
		return nil, fmt.Errorf("failed to save quote: %w", err)
	}
	return toQuoteResponse(q), nil
}

// AddInstallment appends a payment tranche
func (s *Service) AddInstallment(ctx context.Context, ownerID, quoteID uuid.UUID, req InstallmentRequest) (*QuoteResponse, error) {
	q, err := s.findQuote(ctx, ownerID, quoteID)
	if err != nil {
		return nil, err
	}
	insType, err := quote.ParseDiscountType(req.Type)
	if err != nil {
		return nil, err
	}
	ins, err := quote.NewInstallment(req.Name, insType, req.Value)
	if err != nil {
		return nil, err
	}
	if err := q.AddInstallment(*ins); err != nil {
		return nil, err
	}
	if err := s.quotes.Save(ctx, q); err != nil {
		return nil, fmt.Errorf("failed to save quote: %w", err)
	}
	return toQuoteResponse(q), nil
}

// RemoveInstallment deletes a payment tranche
func (s *Service) RemoveInstallment(ctx context.Context, ownerID, quoteID, installmentID uuid.UUID) (*QuoteResponse, error) {
	q, err := s.findQuote(ctx, ownerID, quoteID)
	if err != nil {
		return nil, err
	}
	if err := q.RemoveInstallment(installmentID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Installment not found")
		}
		return nil, err
	}
	if err := s.quotes.Save(ctx, q); err != nil {
		return nil, fmt.Errorf("failed to save quote: %w", err)
	}
	return toQuoteResponse(q), nil
}

// GetTotals computes the money summary without returning the whole quote
func (s *Service) GetTotals(ctx context.Context, ownerID, quoteID uuid.UUID) (*TotalsResponse, error) {
	q, err := s.findQuote(ctx, ownerID, quoteID)
	if err != nil {
		return nil, err
	}
	totals := toTotalsResponse(q)
	return &totals, nil
}

// ChangeStatus moves the quote through its lifecycle
func (s *Service) ChangeStatus(ctx context.Context, ownerID, quoteID uuid.UUID, req ChangeStatusRequest) (*QuoteResponse, error) {
	q, err := s.findQuote(ctx, ownerID, quoteID)
	if err != nil {
		return nil, err
	}
	if err := q.TransitionTo(quote.Status(req.Status)); err != nil {
		return nil, err
	}
	if err := s.quotes.Save(ctx, q); err != nil {
		return nil, fmt.Errorf("failed to save quote: %w", err)
	}
	s.logger.Info("quote status changed",
		zap.String("id", q.ID.String()),
		zap.String("status", string(q.Status)))
	return toQuoteResponse(q), nil
}

// Duplicate creates a fresh draft copy with a new number
func (s *Service) Duplicate(ctx context.Context, ownerID, quoteID uuid.UUID) (*QuoteResponse, error) {
	q, err := s.findQuote(ctx, ownerID, quoteID)
	if err != nil {
		return nil, err
	}
	dup := q.Duplicate()
	if err := s.quotes.Save(ctx, dup); err != nil {
		return nil, fmt.Errorf("failed to save quote: %w", err)
	}
	s.logger.Info("quote duplicated",
		zap.String("sourceId", q.ID.String()),
		zap.String("id", dup.ID.String()))
	return toQuoteResponse(dup), nil
}

func (s *Service) findQuote(ctx context.Context, ownerID, quoteID uuid.UUID) (*quote.Quote, error) {
	q, err := s.quotes.FindByIDForOwner(ctx, ownerID, quoteID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Quote not found")
		}
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}
	return q, nil
}

func itemFromRequest(req LineItemRequest) (*quote.LineItem, error) {
	calcType, err := quote.ParseCalcType(req.CalcType)
	if err != nil {
		return nil, err
	}
	discountType := quote.DiscountTypePercent
	if req.DiscountType != "" {
		discountType, err = quote.ParseDiscountType(req.DiscountType)
		if err != nil {
			return nil, err
		}
	}
	item := &quote.LineItem{
		ID:             uuid.New(),
		Name:           req.Name,
		Spec:           req.Spec,
		Unit:           req.Unit,
		Quantity:       req.Quantity,
		Price:          req.Price,
		LengthMM:       req.LengthMM,
		HeightMM:       req.HeightMM,
		DepthMM:        req.DepthMM,
		CalcType:       calcType,
		DiscountType:   discountType,
		DiscountValue:  req.DiscountValue,
		MainCategoryID: req.MainCategoryID,
		ImageURL:       req.ImageURL,
		Notes:          req.Notes,
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}
	return item, nil
}

func toQuoteResponse(q *quote.Quote) *QuoteResponse {
	grandTotal := q.CalculateTotals().GrandTotal

	items := make([]LineItemResponse, len(q.Items))
	for i := range q.Items {
		items[i] = toItemResponse(&q.Items[i])
	}
	installments := make([]InstallmentResponse, len(q.Installments))
	for i := range q.Installments {
		ins := &q.Installments[i]
		installments[i] = InstallmentResponse{
			ID:        ins.ID.String(),
			Name:      ins.Name,
			Type:      string(ins.Type),
			Value:     ins.Value,
			Amount:    ins.Amount(grandTotal),
			SortOrder: ins.SortOrder,
		}
	}

	return &QuoteResponse{
		ID:                q.ID.String(),
		Number:            q.Number,
		CustomerName:      q.CustomerName,
		CustomerAddress:   q.CustomerAddress,
		CustomerPhone:     q.CustomerPhone,
		QuoteDate:         q.QuoteDate,
		Items:             items,
		Installments:      installments,
		OrderDiscountType: string(q.OrderDiscountType),
		OrderDiscount:     q.OrderDiscount,
		TaxPercent:        q.TaxPercent,
		Notes:             q.Notes,
		Status:            string(q.Status),
		Totals:            toTotalsResponse(q),
		CreatedAt:         q.CreatedAt,
		UpdatedAt:         q.UpdatedAt,
	}
}

func toItemResponse(item *quote.LineItem) LineItemResponse {
	return LineItemResponse{
		ID:             item.ID.String(),
		Name:           item.Name,
		Spec:           item.Spec,
		Unit:           item.Unit,
		Quantity:       item.Quantity,
		Price:          item.Price,
		LengthMM:       item.LengthMM,
		HeightMM:       item.HeightMM,
		DepthMM:        item.DepthMM,
		CalcType:       string(item.CalcType),
		DiscountType:   string(item.DiscountType),
		DiscountValue:  item.DiscountValue,
		MainCategoryID: item.MainCategoryID,
		ImageURL:       item.ImageURL,
		Notes:          item.Notes,
		SortOrder:      item.SortOrder,
		BaseMeasure:    item.BaseMeasure(),
		EffectivePrice: item.EffectivePrice(),
		LineTotal:      item.LineTotal(),
	}
}

func toTotalsResponse(q *quote.Quote) TotalsResponse {
	totals := q.CalculateTotals()
	plan := q.PaymentPlan()
	return TotalsResponse{
		SubTotal:       totals.SubTotal,
		DiscountAmount: totals.DiscountAmount,
		TaxAmount:      totals.TaxAmount,
		GrandTotal:     totals.GrandTotal,
		TotalAsked:     plan.TotalAsked,
		Remaining:      plan.Remaining,
	}
}

func toQuoteSummary(q *quote.Quote) QuoteSummaryResponse {
	return QuoteSummaryResponse{
		ID:           q.ID.String(),
		Number:       q.Number,
		CustomerName: q.CustomerName,
		QuoteDate:    q.QuoteDate,
		Status:       string(q.Status),
		ItemCount:    len(q.Items),
		GrandTotal:   q.CalculateTotals().GrandTotal,
		UpdatedAt:    q.UpdatedAt,
	}
}
