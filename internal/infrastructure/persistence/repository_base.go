package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/baogia/backend/internal/domain/shared"
)

// ownedRepository implements the common CRUD surface of
// shared.OwnedRepository for any owner-scoped aggregate. Concrete
// repositories embed it and add their own lookups.
type ownedRepository[T any] struct {
	db *gorm.DB
	// searchColumns are matched case-insensitively against Filter.Search
	searchColumns []string
	// preloads are applied on every read
	preloads []string
}

func (r *ownedRepository[T]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var entity T
	if err := r.withPreloads(r.db.WithContext(ctx)).First(&entity, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

func (r *ownedRepository[T]) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*T, error) {
	var entity T
	if err := r.withPreloads(r.db.WithContext(ctx)).
		Where("owner_id = ? AND id = ?", ownerID, id).
		First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

func (r *ownedRepository[T]) FindAll(ctx context.Context, filter shared.Filter) ([]T, error) {
	var entities []T
	query := r.applyFilter(r.withPreloads(r.db.WithContext(ctx)).Model(new(T)), filter)
	if err := query.Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

func (r *ownedRepository[T]) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]T, error) {
	var entities []T
	query := r.withPreloads(r.db.WithContext(ctx)).Model(new(T)).Where("owner_id = ?", ownerID)
	query = r.applyFilter(query, filter)
	if err := query.Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

func (r *ownedRepository[T]) Save(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Save(entity).Error
}

func (r *ownedRepository[T]) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(new(T), "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *ownedRepository[T]) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applySearch(r.db.WithContext(ctx).Model(new(T)), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ownedRepository[T]) CountForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(new(T)).Where("owner_id = ?", ownerID)
	query = r.applySearch(query, filter)
	for field, value := range filter.Filters {
		query = query.Where(field+" = ?", value)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ownedRepository[T]) withPreloads(query *gorm.DB) *gorm.DB {
	for _, preload := range r.preloads {
		query = query.Preload(preload)
	}
	return query
}

// applyFilter applies search, field filters, pagination and ordering
func (r *ownedRepository[T]) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applySearch(query, filter)
	for field, value := range filter.Filters {
		query = query.Where(field+" = ?", value)
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	}

	return query
}

func (r *ownedRepository[T]) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" && len(r.searchColumns) > 0 {
		pattern := "%" + filter.Search + "%"
		conditions := make([]string, len(r.searchColumns))
		args := make([]interface{}, len(r.searchColumns))
		// LOWER/LIKE instead of ILIKE so sqlite works too
		for i, col := range r.searchColumns {
			conditions[i] = "LOWER(" + col + ") LIKE LOWER(?)"
			args[i] = pattern
		}
		query = query.Where(strings.Join(conditions, " OR "), args...)
	}
	return query
}
