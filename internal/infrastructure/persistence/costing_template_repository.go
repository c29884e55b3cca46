package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/baogia/backend/internal/domain/costing"
	"github.com/baogia/backend/internal/domain/shared"
)

// GormCostingTemplateRepository implements costing.TemplateRepository.
// The captured sheet travels as a JSON body column; it is serialized on
// save and hydrated back on every read.
type GormCostingTemplateRepository struct {
	ownedRepository[costing.Template]
}

// NewGormCostingTemplateRepository creates a new GormCostingTemplateRepository
func NewGormCostingTemplateRepository(db *gorm.DB) *GormCostingTemplateRepository {
	return &GormCostingTemplateRepository{
		ownedRepository: ownedRepository[costing.Template]{
			db:            db,
			searchColumns: []string{"name"},
		},
	}
}

// Save serializes the captured sheet and persists the template
func (r *GormCostingTemplateRepository) Save(ctx context.Context, tpl *costing.Template) error {
	body, err := json.Marshal(tpl.Sheet)
	if err != nil {
		return fmt.Errorf("failed to serialize template sheet: %w", err)
	}
	tpl.Body = body
	return r.db.WithContext(ctx).Save(tpl).Error
}

// FindByID loads and hydrates a template
func (r *GormCostingTemplateRepository) FindByID(ctx context.Context, id uuid.UUID) (*costing.Template, error) {
	tpl, err := r.ownedRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := hydrateTemplate(tpl); err != nil {
		return nil, err
	}
	return tpl, nil
}

// FindByIDForOwner loads and hydrates an owner's template
func (r *GormCostingTemplateRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*costing.Template, error) {
	tpl, err := r.ownedRepository.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if err := hydrateTemplate(tpl); err != nil {
		return nil, err
	}
	return tpl, nil
}

// FindAll loads and hydrates templates matching the filter
func (r *GormCostingTemplateRepository) FindAll(ctx context.Context, filter shared.Filter) ([]costing.Template, error) {
	templates, err := r.ownedRepository.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	if err := hydrateTemplates(templates); err != nil {
		return nil, err
	}
	return templates, nil
}

// FindAllForOwner loads and hydrates an owner's templates
func (r *GormCostingTemplateRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]costing.Template, error) {
	templates, err := r.ownedRepository.FindAllForOwner(ctx, ownerID, filter)
	if err != nil {
		return nil, err
	}
	if err := hydrateTemplates(templates); err != nil {
		return nil, err
	}
	return templates, nil
}

func hydrateTemplate(tpl *costing.Template) error {
	if len(tpl.Body) == 0 {
		return nil
	}
	if err := json.Unmarshal(tpl.Body, &tpl.Sheet); err != nil {
		return fmt.Errorf("failed to deserialize template sheet: %w", err)
	}
	return nil
}

func hydrateTemplates(templates []costing.Template) error {
	for idx := range templates {
		if err := hydrateTemplate(&templates[idx]); err != nil {
			return err
		}
	}
	return nil
}

var _ costing.TemplateRepository = (*GormCostingTemplateRepository)(nil)
