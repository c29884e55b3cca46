package quote

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/baogia/backend/internal/domain/quote"
	"github.com/baogia/backend/internal/domain/shared"
	"github.com/baogia/backend/internal/infrastructure/session"
)

// DraftService keeps the in-progress quote of each owner in the session
// store so the editing screen survives reloads without writing to the
// quotes table on every keystroke.
type DraftService struct {
	drafts session.DraftStore
	ttl    time.Duration
	logger *zap.Logger
}

// NewDraftService creates a new DraftService
func NewDraftService(drafts session.DraftStore, ttl time.Duration, logger *zap.Logger) *DraftService {
	if ttl <= 0 {
		ttl = session.DefaultDraftTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DraftService{drafts: drafts, ttl: ttl, logger: logger}
}

// SaveDraftRequest carries the full working quote state
type SaveDraftRequest struct {
	Quote QuoteDraft `json:"quote" binding:"required"`
}

// QuoteDraft is the serializable working state of the quote editor
type QuoteDraft struct {
	CustomerName    string                `json:"customer_name"`
	CustomerAddress string                `json:"customer_address"`
	CustomerPhone   string                `json:"customer_phone"`
	QuoteDate       *time.Time            `json:"quote_date"`
	Items           []LineItemRequest     `json:"items"`
	Installments    []InstallmentRequest  `json:"installments"`
	OrderDiscount   *SetDiscountRequest   `json:"order_discount"`
	TaxPercent      *SetTaxRequest        `json:"tax_percent"`
	Notes           string                `json:"notes"`
}

// Save validates and stores the owner's working draft
func (s *DraftService) Save(ctx context.Context, ownerID uuid.UUID, req SaveDraftRequest) (*QuoteResponse, error) {
	q, err := s.buildQuote(ownerID, req.Quote)
	if err != nil {
		return nil, err
	}
	if err := s.drafts.SaveDraft(ctx, ownerID, q, s.ttl); err != nil {
		return nil, fmt.Errorf("failed to save draft: %w", err)
	}
	return toQuoteResponse(q), nil
}

// Load returns the owner's working draft
func (s *DraftService) Load(ctx context.Context, ownerID uuid.UUID) (*QuoteResponse, error) {
	q, err := s.drafts.LoadDraft(ctx, ownerID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "No draft in progress")
		}
		return nil, fmt.Errorf("failed to load draft: %w", err)
	}
	return toQuoteResponse(q), nil
}

// Clear drops the owner's working draft
func (s *DraftService) Clear(ctx context.Context, ownerID uuid.UUID) error {
	if err := s.drafts.ClearDraft(ctx, ownerID); err != nil {
		return fmt.Errorf("failed to clear draft: %w", err)
	}
	return nil
}

// buildQuote assembles a transient quote aggregate from the draft state.
// The same validation as on persisted quotes applies, so the editor
// learns about bad input immediately.
func (s *DraftService) buildQuote(ownerID uuid.UUID, draft QuoteDraft) (*quote.Quote, error) {
	name := draft.CustomerName
	if name == "" {
		name = "Khách hàng"
	}
	quoteDate := time.Now()
	if draft.QuoteDate != nil {
		quoteDate = *draft.QuoteDate
	}

	q, err := quote.NewQuote(ownerID, name, quoteDate)
	if err != nil {
		return nil, err
	}
	q.CustomerAddress = draft.CustomerAddress
	q.CustomerPhone = draft.CustomerPhone
	q.Notes = draft.Notes

	for _, itemReq := range draft.Items {
		item, err := itemFromRequest(itemReq)
		if err != nil {
			return nil, err
		}
		if err := q.AddItem(*item); err != nil {
			return nil, err
		}
	}
	for _, insReq := range draft.Installments {
		insType, err := quote.ParseDiscountType(insReq.Type)
		if err != nil {
			return nil, err
		}
		ins, err := quote.NewInstallment(insReq.Name, insType, insReq.Value)
		if err != nil {
			return nil, err
		}
		if err := q.AddInstallment(*ins); err != nil {
			return nil, err
		}
	}
	if draft.OrderDiscount != nil {
		discountType, err := quote.ParseDiscountType(draft.OrderDiscount.Type)
		if err != nil {
			return nil, err
		}
		if err := q.SetOrderDiscount(discountType, draft.OrderDiscount.Value); err != nil {
			return nil, err
		}
	}
	if draft.TaxPercent != nil {
		if err := q.SetTaxPercent(draft.TaxPercent.Percent); err != nil {
			return nil, err
		}
	}
	return q, nil
}
