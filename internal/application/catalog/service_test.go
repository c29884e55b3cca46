package catalog

import (
	"context"
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baogia/backend/internal/domain/catalog"
	"github.com/baogia/backend/internal/domain/shared"
)

type fakeEntryRepo struct {
	entries map[uuid.UUID]*catalog.Entry
}

func newFakeEntryRepo() *fakeEntryRepo {
	return &fakeEntryRepo{entries: make(map[uuid.UUID]*catalog.Entry)}
}

func (r *fakeEntryRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Entry, error) {
	if e, ok := r.entries[id]; ok {
		copied := *e
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeEntryRepo) FindByIDForOwner(_ context.Context, ownerID, id uuid.UUID) (*catalog.Entry, error) {
	if e, ok := r.entries[id]; ok && e.OwnerID == ownerID {
		copied := *e
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeEntryRepo) FindAll(_ context.Context, _ shared.Filter) ([]catalog.Entry, error) {
	out := make([]catalog.Entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, *e)
	}
	return out, nil
}

func (r *fakeEntryRepo) FindAllForOwner(_ context.Context, ownerID uuid.UUID, _ shared.Filter) ([]catalog.Entry, error) {
	out := make([]catalog.Entry, 0)
	for _, e := range r.entries {
		if e.OwnerID == ownerID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *fakeEntryRepo) CountForOwner(_ context.Context, ownerID uuid.UUID, _ shared.Filter) (int64, error) {
	var n int64
	for _, e := range r.entries {
		if e.OwnerID == ownerID {
			n++
		}
	}
	return n, nil
}

func (r *fakeEntryRepo) Save(_ context.Context, entry *catalog.Entry) error {
	copied := *entry
	r.entries[entry.ID] = &copied
	return nil
}

func (r *fakeEntryRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.entries[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.entries, id)
	return nil
}

func (r *fakeEntryRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.entries)), nil
}

func (r *fakeEntryRepo) FindByFoldedName(_ context.Context, ownerID uuid.UUID, foldedName string) (*catalog.Entry, error) {
	for _, e := range r.entries {
		if e.OwnerID == ownerID && e.FoldedName == foldedName {
			copied := *e
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

type fakeCategoryRepo struct {
	categories map[uuid.UUID]*catalog.MainCategory
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[uuid.UUID]*catalog.MainCategory)}
}

func (r *fakeCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.MainCategory, error) {
	if c, ok := r.categories[id]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeCategoryRepo) FindByIDForOwner(_ context.Context, ownerID, id uuid.UUID) (*catalog.MainCategory, error) {
	if c, ok := r.categories[id]; ok && c.OwnerID == ownerID {
		copied := *c
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeCategoryRepo) FindAll(_ context.Context, _ shared.Filter) ([]catalog.MainCategory, error) {
	out := make([]catalog.MainCategory, 0, len(r.categories))
	for _, c := range r.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeCategoryRepo) FindAllForOwner(_ context.Context, ownerID uuid.UUID, _ shared.Filter) ([]catalog.MainCategory, error) {
	return r.FindAllOrdered(context.Background(), ownerID)
}

func (r *fakeCategoryRepo) CountForOwner(_ context.Context, ownerID uuid.UUID, _ shared.Filter) (int64, error) {
	var n int64
	for _, c := range r.categories {
		if c.OwnerID == ownerID {
			n++
		}
	}
	return n, nil
}

func (r *fakeCategoryRepo) FindAllOrdered(_ context.Context, ownerID uuid.UUID) ([]catalog.MainCategory, error) {
	out := make([]catalog.MainCategory, 0)
	for _, c := range r.categories {
		if c.OwnerID == ownerID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *fakeCategoryRepo) Save(_ context.Context, category *catalog.MainCategory) error {
	copied := *category
	r.categories[category.ID] = &copied
	return nil
}

func (r *fakeCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.categories[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.categories, id)
	return nil
}

func (r *fakeCategoryRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.categories)), nil
}

func newTestService() (*Service, *fakeEntryRepo, *fakeCategoryRepo) {
	entries := newFakeEntryRepo()
	categories := newFakeCategoryRepo()
	return NewService(entries, categories, nil), entries, categories
}

func TestService_CreateEntry(t *testing.T) {
	ownerID := uuid.New()

	t.Run("creates a valid entry", func(t *testing.T) {
		svc, entries, _ := newTestService()

		resp, err := svc.CreateEntry(context.Background(), ownerID, CreateEntryRequest{
			Name:     "Tủ bếp trên",
			Unit:     "m²",
			Price:    decimal.NewFromInt(1_000_000),
			CalcType: "area",
		})
		require.NoError(t, err)
		assert.Equal(t, "Tủ bếp trên", resp.Name)
		assert.Len(t, entries.entries, 1)
		for _, e := range entries.entries {
			assert.Equal(t, "tu bep tren", e.FoldedName)
		}
	})

	t.Run("rejects unknown calc type", func(t *testing.T) {
		svc, _, _ := newTestService()

		_, err := svc.CreateEntry(context.Background(), ownerID, CreateEntryRequest{
			Name:     "Tủ bếp",
			Price:    decimal.NewFromInt(1000),
			CalcType: "weight",
		})
		assert.ErrorIs(t, err, shared.ErrInvalidCalcType)
	})

	t.Run("rejects category belonging to someone else", func(t *testing.T) {
		svc, _, categories := newTestService()

		other, err := catalog.NewMainCategory(uuid.New(), "Mặt đá", 0)
		require.NoError(t, err)
		require.NoError(t, categories.Save(context.Background(), other))

		_, err = svc.CreateEntry(context.Background(), ownerID, CreateEntryRequest{
			Name:           "Mặt đá granite",
			Price:          decimal.NewFromInt(2_500_000),
			CalcType:       "area",
			MainCategoryID: &other.ID,
		})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
	})
}

func TestService_ListEntries_FoldsSearch(t *testing.T) {
	ownerID := uuid.New()
	svc, entries, _ := newTestService()

	entry, err := catalog.NewEntry(ownerID, "Tủ bếp trên", decimal.NewFromInt(1000), "unit")
	require.NoError(t, err)
	require.NoError(t, entries.Save(context.Background(), entry))

	resp, err := svc.ListEntries(context.Background(), ownerID, ListEntriesRequest{Search: "Tủ Bếp"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Total)
	assert.Equal(t, 1, resp.Page)
}

func TestService_Categories(t *testing.T) {
	ownerID := uuid.New()

	t.Run("create appends to the end", func(t *testing.T) {
		svc, _, _ := newTestService()

		first, err := svc.CreateCategory(context.Background(), ownerID, CreateCategoryRequest{Name: "Tủ bếp trên"})
		require.NoError(t, err)
		assert.Equal(t, 0, first.SortOrder)

		second, err := svc.CreateCategory(context.Background(), ownerID, CreateCategoryRequest{Name: "Mặt đá"})
		require.NoError(t, err)
		assert.Equal(t, 1, second.SortOrder)
	})

	t.Run("reorder assigns positions by ID order", func(t *testing.T) {
		svc, _, _ := newTestService()

		a, err := svc.CreateCategory(context.Background(), ownerID, CreateCategoryRequest{Name: "A"})
		require.NoError(t, err)
		b, err := svc.CreateCategory(context.Background(), ownerID, CreateCategoryRequest{Name: "B"})
		require.NoError(t, err)

		reordered, err := svc.ReorderCategories(context.Background(), ownerID, ReorderCategoriesRequest{
			CategoryIDs: []uuid.UUID{uuid.MustParse(b.ID), uuid.MustParse(a.ID)},
		})
		require.NoError(t, err)
		require.Len(t, reordered, 2)
		assert.Equal(t, "B", reordered[0].Name)
		assert.Equal(t, 0, reordered[0].SortOrder)
		assert.Equal(t, 1, reordered[1].SortOrder)
	})

	t.Run("reorder rejects incomplete list", func(t *testing.T) {
		svc, _, _ := newTestService()

		_, err := svc.CreateCategory(context.Background(), ownerID, CreateCategoryRequest{Name: "A"})
		require.NoError(t, err)
		_, err = svc.CreateCategory(context.Background(), ownerID, CreateCategoryRequest{Name: "B"})
		require.NoError(t, err)

		_, err = svc.ReorderCategories(context.Background(), ownerID, ReorderCategoriesRequest{
			CategoryIDs: []uuid.UUID{uuid.New()},
		})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_INPUT", domainErr.Code)
	})
}
