package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/baogia/backend/internal/domain/catalog"
	"github.com/baogia/backend/internal/domain/quote"
	"github.com/baogia/backend/internal/domain/shared"
)

// Service handles the reusable product catalog and its category tree
type Service struct {
	entries    catalog.EntryRepository
	categories catalog.MainCategoryRepository
	logger     *zap.Logger
}

// NewService creates a new catalog Service
func NewService(entries catalog.EntryRepository, categories catalog.MainCategoryRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		entries:    entries,
		categories: categories,
		logger:     logger,
	}
}

// CreateEntry adds a product or service to the catalog
func (s *Service) CreateEntry(ctx context.Context, ownerID uuid.UUID, req CreateEntryRequest) (*EntryResponse, error) {
	calcType, err := quote.ParseCalcType(req.CalcType)
	if err != nil {
		return nil, err
	}

	entry, err := catalog.NewEntry(ownerID, req.Name, req.Price, calcType)
	if err != nil {
		return nil, err
	}
	if err := entry.Update(req.Name, req.Spec, req.Unit, req.Price, calcType, req.MainCategoryID, req.ImageURL); err != nil {
		return nil, err
	}
	if err := s.validateCategory(ctx, ownerID, req.MainCategoryID); err != nil {
		return nil, err
	}

	if err := s.entries.Save(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to save entry: %w", err)
	}

	s.logger.Info("catalog entry created",
		zap.String("id", entry.ID.String()),
		zap.String("name", entry.Name))

	return toEntryResponse(entry), nil
}

// GetEntry retrieves a catalog entry by ID
func (s *Service) GetEntry(ctx context.Context, ownerID, entryID uuid.UUID) (*EntryResponse, error) {
	entry, err := s.entries.FindByIDForOwner(ctx, ownerID, entryID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Catalog entry not found")
		}
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}
	return toEntryResponse(entry), nil
}

// ListEntries retrieves a paginated, searchable list of entries. The
// search term is folded so "tu bep" matches "Tủ bếp".
func (s *Service) ListEntries(ctx context.Context, ownerID uuid.UUID, req ListEntriesRequest) (*ListEntriesResponse, error) {
	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	filter.Search = shared.Fold(req.Search)

	entries, err := s.entries.FindAllForOwner(ctx, ownerID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	total, err := s.entries.CountForOwner(ctx, ownerID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count entries: %w", err)
	}

	items := make([]EntryResponse, len(entries))
	for i := range entries {
		items[i] = *toEntryResponse(&entries[i])
	}
	return &ListEntriesResponse{
		Items: items,
		Total: total,
		Page:  filter.Page,
		Size:  filter.PageSize,
	}, nil
}

// UpdateEntry replaces the mutable fields of an entry
func (s *Service) UpdateEntry(ctx context.Context, ownerID, entryID uuid.UUID, req UpdateEntryRequest) (*EntryResponse, error) {
	entry, err := s.entries.FindByIDForOwner(ctx, ownerID, entryID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Catalog entry not found")
		}
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}

	calcType, err := quote.ParseCalcType(req.CalcType)
	if err != nil {
		return nil, err
	}
	if err := s.validateCategory(ctx, ownerID, req.MainCategoryID); err != nil {
		return nil, err
	}
	if err := entry.Update(req.Name, req.Spec, req.Unit, req.Price, calcType, req.MainCategoryID, req.ImageURL); err != nil {
		return nil, err
	}

	if err := s.entries.Save(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to save entry: %w", err)
	}
	return toEntryResponse(entry), nil
}

// DeleteEntry removes an entry from the catalog. Quotes that already
// carry the entry keep their copied line items.
func (s *Service) DeleteEntry(ctx context.Context, ownerID, entryID uuid.UUID) error {
	if _, err := s.entries.FindByIDForOwner(ctx, ownerID, entryID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("NOT_FOUND", "Catalog entry not found")
		}
		return fmt.Errorf("failed to get entry: %w", err)
	}
	if err := s.entries.Delete(ctx, entryID); err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	s.logger.Info("catalog entry deleted", zap.String("id", entryID.String()))
	return nil
}

// CreateCategory adds a main category. When no sort order is given the
// category goes to the end.
func (s *Service) CreateCategory(ctx context.Context, ownerID uuid.UUID, req CreateCategoryRequest) (*CategoryResponse, error) {
	sortOrder := 0
	if req.SortOrder != nil {
		sortOrder = *req.SortOrder
	} else {
		existing, err := s.categories.FindAllOrdered(ctx, ownerID)
		if err != nil {
			return nil, fmt.Errorf("failed to list categories: %w", err)
		}
		sortOrder = len(existing)
	}

	category, err := catalog.NewMainCategory(ownerID, req.Name, sortOrder)
	if err != nil {
		return nil, err
	}
	if err := s.categories.Save(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to save category: %w", err)
	}

	s.logger.Info("main category created",
		zap.String("id", category.ID.String()),
		zap.String("name", category.Name))

	return toCategoryResponse(category), nil
}

// ListCategories returns all categories in document order
func (s *Service) ListCategories(ctx context.Context, ownerID uuid.UUID) ([]CategoryResponse, error) {
	categories, err := s.categories.FindAllOrdered(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	result := make([]CategoryResponse, len(categories))
	for i := range categories {
		result[i] = *toCategoryResponse(&categories[i])
	}
	return result, nil
}

// UpdateCategory renames and optionally repositions a category
func (s *Service) UpdateCategory(ctx context.Context, ownerID, categoryID uuid.UUID, req UpdateCategoryRequest) (*CategoryResponse, error) {
	category, err := s.categories.FindByIDForOwner(ctx, ownerID, categoryID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Category not found")
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	if err := category.Rename(req.Name); err != nil {
		return nil, err
	}
	if req.SortOrder != nil {
		category.Reorder(*req.SortOrder)
	}

	if err := s.categories.Save(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to save category: %w", err)
	}
	return toCategoryResponse(category), nil
}

// ReorderCategories assigns document positions following the given ID
// order. Every owned category must appear exactly once.
func (s *Service) ReorderCategories(ctx context.Context, ownerID uuid.UUID, req ReorderCategoriesRequest) ([]CategoryResponse, error) {
	categories, err := s.categories.FindAllOrdered(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	if len(req.CategoryIDs) != len(categories) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Reorder must include every category exactly once")
	}

	byID := make(map[uuid.UUID]*catalog.MainCategory, len(categories))
	for i := range categories {
		byID[categories[i].ID] = &categories[i]
	}

	result := make([]CategoryResponse, 0, len(req.CategoryIDs))
	for position, id := range req.CategoryIDs {
		category, ok := byID[id]
		if !ok {
			return nil, shared.NewDomainError("NOT_FOUND", "Category not found: "+id.String())
		}
		category.Reorder(position)
		if err := s.categories.Save(ctx, category); err != nil {
			return nil, fmt.Errorf("failed to save category: %w", err)
		}
		result = append(result, *toCategoryResponse(category))
	}
	return result, nil
}

// DeleteCategory removes a category. Items referencing it fall back to
// the uncategorized section on printed documents.
func (s *Service) DeleteCategory(ctx context.Context, ownerID, categoryID uuid.UUID) error {
	if _, err := s.categories.FindByIDForOwner(ctx, ownerID, categoryID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("NOT_FOUND", "Category not found")
		}
		return fmt.Errorf("failed to get category: %w", err)
	}
	if err := s.categories.Delete(ctx, categoryID); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	s.logger.Info("main category deleted", zap.String("id", categoryID.String()))
	return nil
}

func (s *Service) validateCategory(ctx context.Context, ownerID uuid.UUID, categoryID *uuid.UUID) error {
	if categoryID == nil {
		return nil
	}
	if _, err := s.categories.FindByIDForOwner(ctx, ownerID, *categoryID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("NOT_FOUND", "Category not found")
		}
		return fmt.Errorf("failed to check category: %w", err)
	}
	return nil
}

func toEntryResponse(e *catalog.Entry) *EntryResponse {
	return &EntryResponse{
		ID:             e.ID.String(),
		Name:           e.Name,
		Spec:           e.Spec,
		Unit:           e.Unit,
		Price:          e.Price,
		CalcType:       string(e.CalcType),
		MainCategoryID: e.MainCategoryID,
		ImageURL:       e.ImageURL,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

func toCategoryResponse(c *catalog.MainCategory) *CategoryResponse {
	return &CategoryResponse{
		ID:        c.ID.String(),
		Name:      c.Name,
		SortOrder: c.SortOrder,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
