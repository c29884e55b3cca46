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
)

// SaveAsTemplate captures a quote's content as a named reusable template
func (s *Service) SaveAsTemplate(ctx context.Context, ownerID, quoteID uuid.UUID, req SaveAsTemplateRequest) (*TemplateResponse, error) {
	q, err := s.findQuote(ctx, ownerID, quoteID)
	if err != nil {
		return nil, err
	}

	exists, err := s.templates.ExistsByName(ctx, ownerID, req.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to check template name: %w", err)
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A template with this name already exists")
	}

	tpl, err := quote.NewTemplateFromQuote(req.Name, q)
	if err != nil {
		return nil, err
	}
	if err := s.templates.Save(ctx, tpl); err != nil {
		return nil, fmt.Errorf("failed to save template: %w", err)
	}

	s.logger.Info("quote template created",
		zap.String("id", tpl.ID.String()),
		zap.String("name", tpl.Name))

	return toTemplateResponse(tpl), nil
}

// ListTemplates returns all templates of an owner
func (s *Service) ListTemplates(ctx context.Context, ownerID uuid.UUID) (*ListTemplatesResponse, error) {
	filter := shared.DefaultFilter()
	filter.PageSize = 200
	templates, err := s.templates.FindAllForOwner(ctx, ownerID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	items := make([]TemplateResponse, len(templates))
	for i := range templates {
		items[i] = *toTemplateResponse(&templates[i])
	}
	return &ListTemplatesResponse{Items: items, Total: int64(len(items))}, nil
}

// GetTemplate retrieves a template by ID
func (s *Service) GetTemplate(ctx context.Context, ownerID, templateID uuid.UUID) (*TemplateResponse, error) {
	tpl, err := s.findTemplate(ctx, ownerID, templateID)
	if err != nil {
		return nil, err
	}
	return toTemplateResponse(tpl), nil
}

// DeleteTemplate removes a template
func (s *Service) DeleteTemplate(ctx context.Context, ownerID, templateID uuid.UUID) error {
	if _, err := s.findTemplate(ctx, ownerID, templateID); err != nil {
		return err
	}
	if err := s.templates.Delete(ctx, templateID); err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}
	s.logger.Info("quote template deleted", zap.String("id", templateID.String()))
	return nil
}

// InstantiateTemplate creates a fresh draft quote from a template. The
// new quote gets its own number and line identities.
func (s *Service) InstantiateTemplate(ctx context.Context, ownerID, templateID uuid.UUID, req InstantiateTemplateRequest) (*QuoteResponse, error) {
	tpl, err := s.findTemplate(ctx, ownerID, templateID)
	if err != nil {
		return nil, err
	}

	quoteDate := time.Now()
	if req.QuoteDate != nil {
		quoteDate = *req.QuoteDate
	}
	q, err := tpl.Instantiate(req.CustomerName, quoteDate)
	if err != nil {
		return nil, err
	}
	if err := s.quotes.Save(ctx, q); err != nil {
		return nil, fmt.Errorf("failed to save quote: %w", err)
	}

	s.logger.Info("quote created from template",
		zap.String("templateId", tpl.ID.String()),
		zap.String("id", q.ID.String()))

	return toQuoteResponse(q), nil
}

func (s *Service) findTemplate(ctx context.Context, ownerID, templateID uuid.UUID) (*quote.Template, error) {
	tpl, err := s.templates.FindByIDForOwner(ctx, ownerID, templateID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Template not found")
		}
		return nil, fmt.Errorf("failed to get template: %w", err)
	}
	return tpl, nil
}

func toTemplateResponse(t *quote.Template) *TemplateResponse {
	items := make([]TemplateItemResponse, len(t.Items))
	for i := range t.Items {
		ti := &t.Items[i]
		items[i] = TemplateItemResponse{
			ID:             ti.ID.String(),
			Name:           ti.Name,
			Spec:           ti.Spec,
			Unit:           ti.Unit,
			Quantity:       ti.Quantity,
			Price:          ti.Price,
			LengthMM:       ti.LengthMM,
			HeightMM:       ti.HeightMM,
			DepthMM:        ti.DepthMM,
			CalcType:       string(ti.CalcType),
			DiscountType:   string(ti.DiscountType),
			DiscountValue:  ti.DiscountValue,
			MainCategoryID: ti.MainCategoryID,
			SortOrder:      ti.SortOrder,
		}
	}
	return &TemplateResponse{
		ID:         t.ID.String(),
		Name:       t.Name,
		Items:      items,
		Notes:      t.Notes,
		TaxPercent: t.TaxPercent,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
}
