package costing

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baogia/backend/internal/domain/costing"
	"github.com/baogia/backend/internal/domain/shared"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type fakeSheetRepo struct {
	sheets map[uuid.UUID]*costing.Sheet
}

func newFakeSheetRepo() *fakeSheetRepo {
	return &fakeSheetRepo{sheets: make(map[uuid.UUID]*costing.Sheet)}
}

func (r *fakeSheetRepo) FindByID(_ context.Context, id uuid.UUID) (*costing.Sheet, error) {
	sheet, ok := r.sheets[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *sheet
	return &copied, nil
}

func (r *fakeSheetRepo) FindByIDForOwner(_ context.Context, ownerID, id uuid.UUID) (*costing.Sheet, error) {
	sheet, ok := r.sheets[id]
	if !ok || sheet.OwnerID != ownerID {
		return nil, shared.ErrNotFound
	}
	copied := *sheet
	return &copied, nil
}

func (r *fakeSheetRepo) FindAll(_ context.Context, _ shared.Filter) ([]costing.Sheet, error) {
	result := make([]costing.Sheet, 0, len(r.sheets))
	for _, sheet := range r.sheets {
		result = append(result, *sheet)
	}
	return result, nil
}

func (r *fakeSheetRepo) FindAllForOwner(_ context.Context, ownerID uuid.UUID, _ shared.Filter) ([]costing.Sheet, error) {
	result := make([]costing.Sheet, 0)
	for _, sheet := range r.sheets {
		if sheet.OwnerID == ownerID {
			result = append(result, *sheet)
		}
	}
	return result, nil
}

func (r *fakeSheetRepo) Save(_ context.Context, sheet *costing.Sheet) error {
	copied := *sheet
	r.sheets[sheet.ID] = &copied
	return nil
}

func (r *fakeSheetRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.sheets, id)
	return nil
}

func (r *fakeSheetRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.sheets)), nil
}

func (r *fakeSheetRepo) CountForOwner(_ context.Context, ownerID uuid.UUID, _ shared.Filter) (int64, error) {
	var count int64
	for _, sheet := range r.sheets {
		if sheet.OwnerID == ownerID {
			count++
		}
	}
	return count, nil
}

func (r *fakeSheetRepo) FindByFoldedName(_ context.Context, ownerID uuid.UUID, foldedName string) (*costing.Sheet, error) {
	for _, sheet := range r.sheets {
		if sheet.OwnerID == ownerID && sheet.FoldedName == foldedName {
			copied := *sheet
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeSheetRepo) FindAllByOwner(_ context.Context, ownerID uuid.UUID) ([]costing.Sheet, error) {
	return r.FindAllForOwner(context.Background(), ownerID, shared.DefaultFilter())
}

type fakeMaterialRepo struct {
	materials map[uuid.UUID]*costing.Material
}

func newFakeMaterialRepo() *fakeMaterialRepo {
	return &fakeMaterialRepo{materials: make(map[uuid.UUID]*costing.Material)}
}

func (r *fakeMaterialRepo) FindByID(_ context.Context, id uuid.UUID) (*costing.Material, error) {
	m, ok := r.materials[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *m
	return &copied, nil
}

func (r *fakeMaterialRepo) FindByIDForOwner(_ context.Context, ownerID, id uuid.UUID) (*costing.Material, error) {
	m, ok := r.materials[id]
	if !ok || m.OwnerID != ownerID {
		return nil, shared.ErrNotFound
	}
	copied := *m
	return &copied, nil
}

func (r *fakeMaterialRepo) FindAll(_ context.Context, _ shared.Filter) ([]costing.Material, error) {
	result := make([]costing.Material, 0, len(r.materials))
	for _, m := range r.materials {
		result = append(result, *m)
	}
	return result, nil
}

func (r *fakeMaterialRepo) FindAllForOwner(_ context.Context, ownerID uuid.UUID, _ shared.Filter) ([]costing.Material, error) {
	result := make([]costing.Material, 0)
	for _, m := range r.materials {
		if m.OwnerID == ownerID {
			result = append(result, *m)
		}
	}
	return result, nil
}

func (r *fakeMaterialRepo) Save(_ context.Context, m *costing.Material) error {
	copied := *m
	r.materials[m.ID] = &copied
	return nil
}

func (r *fakeMaterialRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.materials, id)
	return nil
}

func (r *fakeMaterialRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.materials)), nil
}

func (r *fakeMaterialRepo) CountForOwner(_ context.Context, ownerID uuid.UUID, _ shared.Filter) (int64, error) {
	var count int64
	for _, m := range r.materials {
		if m.OwnerID == ownerID {
			count++
		}
	}
	return count, nil
}

func (r *fakeMaterialRepo) FindByFoldedName(_ context.Context, ownerID uuid.UUID, foldedName string) (*costing.Material, error) {
	for _, m := range r.materials {
		if m.OwnerID == ownerID && m.FoldedName == foldedName {
			copied := *m
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

type fakeTemplateRepo struct {
	templates map[uuid.UUID]*costing.Template
}

func newFakeTemplateRepo() *fakeTemplateRepo {
	return &fakeTemplateRepo{templates: make(map[uuid.UUID]*costing.Template)}
}

func (r *fakeTemplateRepo) FindByID(_ context.Context, id uuid.UUID) (*costing.Template, error) {
	tpl, ok := r.templates[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *tpl
	return &copied, nil
}

func (r *fakeTemplateRepo) FindByIDForOwner(_ context.Context, ownerID, id uuid.UUID) (*costing.Template, error) {
	tpl, ok := r.templates[id]
	if !ok || tpl.OwnerID != ownerID {
		return nil, shared.ErrNotFound
	}
	copied := *tpl
	return &copied, nil
}

func (r *fakeTemplateRepo) FindAll(_ context.Context, _ shared.Filter) ([]costing.Template, error) {
	result := make([]costing.Template, 0, len(r.templates))
	for _, tpl := range r.templates {
		result = append(result, *tpl)
	}
	return result, nil
}

func (r *fakeTemplateRepo) FindAllForOwner(_ context.Context, ownerID uuid.UUID, _ shared.Filter) ([]costing.Template, error) {
	result := make([]costing.Template, 0)
	for _, tpl := range r.templates {
		if tpl.OwnerID == ownerID {
			result = append(result, *tpl)
		}
	}
	return result, nil
}

func (r *fakeTemplateRepo) Save(_ context.Context, tpl *costing.Template) error {
	copied := *tpl
	r.templates[tpl.ID] = &copied
	return nil
}

func (r *fakeTemplateRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.templates, id)
	return nil
}

func (r *fakeTemplateRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.templates)), nil
}

func (r *fakeTemplateRepo) CountForOwner(_ context.Context, ownerID uuid.UUID, _ shared.Filter) (int64, error) {
	var count int64
	for _, tpl := range r.templates {
		if tpl.OwnerID == ownerID {
			count++
		}
	}
	return count, nil
}

type testEnv struct {
	service   *Service
	sheets    *fakeSheetRepo
	materials *fakeMaterialRepo
	templates *fakeTemplateRepo
	ownerID   uuid.UUID
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	sheets := newFakeSheetRepo()
	materials := newFakeMaterialRepo()
	templates := newFakeTemplateRepo()
	return &testEnv{
		service:   NewService(sheets, materials, templates, nil),
		sheets:    sheets,
		materials: materials,
		templates: templates,
		ownerID:   uuid.New(),
	}
}

func (e *testEnv) createSheet(t *testing.T, req CreateSheetRequest) *SheetResponse {
	t.Helper()
	sheet, err := e.service.CreateSheet(context.Background(), e.ownerID, req)
	require.NoError(t, err)
	return sheet
}

func TestService_CreateSheet(t *testing.T) {
	env := newTestEnv(t)

	qty := d("2")
	sheet := env.createSheet(t, CreateSheetRequest{
		ProductName:      "Tủ bếp trên",
		ProductLengthMM:  d("2000"),
		ProductWidthMM:   d("600"),
		ProductHeightMM:  d("700"),
		QuantityProduced: &qty,
	})

	assert.Equal(t, "Tủ bếp trên", sheet.ProductName)
	assert.True(t, d("2").Equal(sheet.QuantityProduced))
	assert.Empty(t, sheet.Materials)

	_, err := env.service.CreateSheet(context.Background(), env.ownerID, CreateSheetRequest{})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_INPUT", domainErr.Code)
}

func TestService_MaterialLinesAndLinkTypes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	sheet := env.createSheet(t, CreateSheetRequest{
		ProductName:     "Tủ bếp trên",
		ProductLengthMM: d("2000"),
		ProductWidthMM:  d("600"),
	})
	sheetID := uuid.MustParse(sheet.ID)

	// linked to L x W: 2m x 0.6m x 1 = 1.2, with 10% waste at 200000/m2
	updated, err := env.service.AddMaterialLine(ctx, env.ownerID, sheetID, MaterialLineRequest{
		Name:         "Ván MDF chống ẩm",
		Unit:         "m2",
		QuantityUsed: d("1"),
		Price:        d("200000"),
		WastePercent: d("10"),
		LinkType:     "PRODUCT_AREA_LW",
	})
	require.NoError(t, err)
	require.Len(t, updated.Materials, 1)
	assert.True(t, d("1.2").Equal(updated.Materials[0].EffectiveQuantity))
	assert.True(t, d("264000").Equal(updated.Materials[0].Total))

	// direct quantity line
	updated, err = env.service.AddMaterialLine(ctx, env.ownerID, sheetID, MaterialLineRequest{
		Name:         "Bản lề",
		Unit:         "cái",
		QuantityUsed: d("4"),
		Price:        d("25000"),
	})
	require.NoError(t, err)
	require.Len(t, updated.Materials, 2)
	assert.True(t, d("100000").Equal(updated.Materials[1].Total))
	assert.True(t, d("364000").Equal(updated.Breakdown.MaterialsCost))

	// unknown link type is rejected
	_, err = env.service.AddMaterialLine(ctx, env.ownerID, sheetID, MaterialLineRequest{
		Name:         "Keo",
		QuantityUsed: d("1"),
		Price:        d("1000"),
		LinkType:     "VOLUME_LWH",
	})
	assert.ErrorIs(t, err, shared.ErrInvalidLinkType)

	// remove a line
	updated, err = env.service.RemoveMaterialLine(ctx, env.ownerID, sheetID, uuid.MustParse(updated.Materials[1].ID))
	require.NoError(t, err)
	require.Len(t, updated.Materials, 1)
	assert.True(t, d("264000").Equal(updated.Breakdown.MaterialsCost))
}

func TestService_CalculateWithOverheads(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	qty := d("2")
	sheet := env.createSheet(t, CreateSheetRequest{
		ProductName:      "Bàn ăn gỗ sồi",
		QuantityProduced: &qty,
	})
	sheetID := uuid.MustParse(sheet.ID)

	_, err := env.service.AddMaterialLine(ctx, env.ownerID, sheetID, MaterialLineRequest{
		Name:         "Gỗ sồi",
		QuantityUsed: d("1"),
		Price:        d("600000"),
	})
	require.NoError(t, err)

	_, err = env.service.AddLaborLine(ctx, env.ownerID, sheetID, LaborLineRequest{
		Name:  "Gia công",
		Hours: d("4"),
		Rate:  d("100000"),
	})
	require.NoError(t, err)

	_, err = env.service.AddOtherCostLine(ctx, env.ownerID, sheetID, OtherCostLineRequest{
		Name:   "Vận chuyển",
		Amount: d("100000"),
	})
	require.NoError(t, err)

	_, err = env.service.SetOverheads(ctx, env.ownerID, sheetID, SetOverheadsRequest{
		Overhead:       d("100000"),
		Management:     d("50000"),
		SalesMarketing: d("50000"),
	})
	require.NoError(t, err)

	breakdown, err := env.service.Calculate(ctx, env.ownerID, sheetID)
	require.NoError(t, err)

	// lines 1000000 + flat overheads 200000 + other 100000 => 1300000 / 2 units
	assert.True(t, d("600000").Equal(breakdown.MaterialsCost))
	assert.True(t, d("400000").Equal(breakdown.LaborCost))
	assert.True(t, d("100000").Equal(breakdown.OverheadAmount))
	assert.True(t, d("50000").Equal(breakdown.ManagementAmount))
	assert.True(t, d("50000").Equal(breakdown.SalesMarketingAmount))
	assert.True(t, d("1300000").Equal(breakdown.TotalCost))
	assert.True(t, d("650000").Equal(breakdown.UnitCost))
}

func TestService_WhatIf(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	sheet := env.createSheet(t, CreateSheetRequest{ProductName: "Kệ sách"})
	sheetID := uuid.MustParse(sheet.ID)

	_, err := env.service.AddMaterialLine(ctx, env.ownerID, sheetID, MaterialLineRequest{
		Name:         "Ván",
		QuantityUsed: d("1"),
		Price:        d("1000000"),
	})
	require.NoError(t, err)
	_, err = env.service.AddOtherCostLine(ctx, env.ownerID, sheetID, OtherCostLineRequest{
		Name:   "Vận chuyển",
		Amount: d("200000"),
	})
	require.NoError(t, err)

	result, err := env.service.WhatIf(ctx, env.ownerID, sheetID, WhatIfRequest{MaterialsPercent: d("10")})
	require.NoError(t, err)

	// materials scale by 10%, flat costs stay put
	assert.True(t, d("1200000").Equal(result.OriginalUnitCost))
	assert.True(t, d("1300000").Equal(result.ScenarioUnitCost))
	assert.True(t, d("100000").Equal(result.Difference))

	// an empty scenario body reproduces the current breakdown
	baseline, err := env.service.WhatIf(ctx, env.ownerID, sheetID, WhatIfRequest{})
	require.NoError(t, err)
	assert.True(t, baseline.ScenarioUnitCost.Equal(baseline.OriginalUnitCost))
	assert.True(t, baseline.Difference.IsZero())
}

func TestService_DuplicateSheet(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	sheet := env.createSheet(t, CreateSheetRequest{ProductName: "Tủ quần áo"})
	sheetID := uuid.MustParse(sheet.ID)

	_, err := env.service.AddLaborLine(ctx, env.ownerID, sheetID, LaborLineRequest{
		Name:  "Lắp ráp",
		Hours: d("2"),
		Rate:  d("100000"),
	})
	require.NoError(t, err)

	dup, err := env.service.DuplicateSheet(ctx, env.ownerID, sheetID)
	require.NoError(t, err)
	assert.Equal(t, "Tủ quần áo (Copy)", dup.ProductName)
	assert.NotEqual(t, sheet.ID, dup.ID)
	require.Len(t, dup.Labor, 1)
	assert.True(t, d("200000").Equal(dup.Breakdown.LaborCost))
}

func TestService_SaveMaterialUpsertsByFoldedName(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.service.SaveMaterial(ctx, env.ownerID, SaveMaterialRequest{
		Name:  "Ván MDF chống ẩm",
		Spec:  "An Cường 17mm",
		Unit:  "m2",
		Price: d("200000"),
	})
	require.NoError(t, err)

	// same folded name overwrites price instead of creating a second entry
	second, err := env.service.SaveMaterial(ctx, env.ownerID, SaveMaterialRequest{
		Name:  "Ván MDF CHỐNG ẨM",
		Spec:  "An Cường 18mm",
		Unit:  "m2",
		Price: d("220000"),
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.True(t, d("220000").Equal(second.Price))
	assert.Equal(t, "An Cường 18mm", second.Spec)

	list, err := env.service.ListMaterials(ctx, env.ownerID, ListMaterialsRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.Total)
}

func TestService_AddMaterialFromLibrary(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	material, err := env.service.SaveMaterial(ctx, env.ownerID, SaveMaterialRequest{
		Name:  "Bản lề giảm chấn",
		Unit:  "cái",
		Price: d("30000"),
	})
	require.NoError(t, err)

	sheet := env.createSheet(t, CreateSheetRequest{ProductName: "Tủ bếp dưới"})
	updated, err := env.service.AddMaterialFromLibrary(ctx, env.ownerID, uuid.MustParse(sheet.ID), AddMaterialFromLibraryRequest{
		MaterialID: uuid.MustParse(material.ID),
		Quantity:   d("6"),
	})
	require.NoError(t, err)
	require.Len(t, updated.Materials, 1)
	assert.Equal(t, "Bản lề giảm chấn", updated.Materials[0].Name)
	assert.True(t, d("180000").Equal(updated.Materials[0].Total))
}

func TestService_Templates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	sheet := env.createSheet(t, CreateSheetRequest{ProductName: "Tủ bếp trên"})
	sheetID := uuid.MustParse(sheet.ID)

	_, err := env.service.AddMaterialLine(ctx, env.ownerID, sheetID, MaterialLineRequest{
		Name:         "Ván MDF",
		QuantityUsed: d("2"),
		Price:        d("200000"),
	})
	require.NoError(t, err)

	tpl, err := env.service.SaveTemplate(ctx, env.ownerID, sheetID, SaveTemplateRequest{Name: "Tủ bếp chuẩn"})
	require.NoError(t, err)
	assert.Equal(t, "Tủ bếp chuẩn", tpl.Name)

	applied, err := env.service.ApplyTemplate(ctx, env.ownerID, uuid.MustParse(tpl.ID), ApplyTemplateRequest{
		ProductName: "Tủ bếp nhà chị Hoa",
	})
	require.NoError(t, err)
	assert.Equal(t, "Tủ bếp nhà chị Hoa", applied.ProductName)
	assert.NotEqual(t, sheet.ID, applied.ID)
	require.Len(t, applied.Materials, 1)
	assert.NotEqual(t, sheet.ID, applied.Materials[0].ID)
	assert.True(t, d("400000").Equal(applied.Breakdown.MaterialsCost))
}

func TestService_CrossOwnerAccessDenied(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	sheet := env.createSheet(t, CreateSheetRequest{ProductName: "Tủ bếp trên"})

	_, err := env.service.GetSheet(ctx, uuid.New(), uuid.MustParse(sheet.ID))
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}
