package costing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestSheet(t *testing.T) *Sheet {
	t.Helper()
	s, err := NewSheet(uuid.New(), "Mặt Bàn Gỗ")
	require.NoError(t, err)
	return s
}

func TestMaterialLine_EffectiveQuantity(t *testing.T) {
	// product 2000 x 500 x 300 mm
	length, width, height := d("2000"), d("500"), d("300")

	tests := []struct {
		linkType LinkType
		entered  string
		want     string
	}{
		{LinkNone, "4", "4"},
		{LinkProductL, "1", "2"},
		{LinkProductW, "1", "0.5"},
		{LinkProductH, "1", "0.3"},
		{LinkAreaLW, "1", "1"},
		{LinkAreaLH, "1", "0.6"},
		{LinkAreaWH, "1", "0.15"},
		{LinkPerimeterLW, "1", "5"},
	}

	for _, tt := range tests {
		t.Run(string(tt.linkType), func(t *testing.T) {
			line := MaterialLine{
				Name:         "Test",
				QuantityUsed: d(tt.entered),
				Price:        d("1"),
				LinkType:     tt.linkType,
			}
			got := line.EffectiveQuantity(length, width, height)
			assert.True(t, got.Equal(d(tt.want)), "got %s, want %s", got, tt.want)
		})
	}
}

func TestMaterialLine_EffectiveQuantity_Multiplier(t *testing.T) {
	// The entered quantity multiplies the derived formula. Two lengths of
	// edging on a 1000mm product consume 2m; at 100/m that is 200.
	length, width, height := d("1000"), d("400"), d("300")

	line := MaterialLine{
		Name:         "Nẹp cạnh",
		QuantityUsed: d("2"),
		Price:        d("100"),
		LinkType:     LinkProductL,
	}
	require.NoError(t, line.Validate())

	qty := line.EffectiveQuantity(length, width, height)
	assert.True(t, qty.Equal(d("2")), "got %s", qty)
	total := line.Total(length, width, height)
	assert.True(t, total.Equal(d("200")), "got %s", total)

	// Area link: 1m x 0.4m x 3 panels = 1.2 m2
	panel := MaterialLine{
		Name:         "Ván phủ",
		QuantityUsed: d("3"),
		Price:        d("50000"),
		LinkType:     LinkAreaLW,
	}
	assert.True(t, panel.EffectiveQuantity(length, width, height).Equal(d("1.2")))
}

func TestSheet_Calculate_LinkedMaterialWithWaste(t *testing.T) {
	// 2000x500mm table top; laminate priced per m2 with 10% waste:
	// 1m2 x 100,000 x 1.1 = 110,000
	s := newTestSheet(t)
	s.ProductLengthMM = d("2000")
	s.ProductWidthMM = d("500")
	require.NoError(t, s.AddMaterial(MaterialLine{
		Name:         "Laminate",
		QuantityUsed: d("1"),
		Price:        d("100000"),
		WastePercent: d("10"),
		LinkType:     LinkAreaLW,
	}))

	breakdown := s.Calculate()
	assert.True(t, breakdown.MaterialsCost.Equal(d("110000")), "got %s", breakdown.MaterialsCost)
	assert.True(t, breakdown.TotalCost.Equal(d("110000")))
	assert.True(t, breakdown.UnitCost.Equal(d("110000")))
}

func TestSheet_Calculate_FullBreakdown(t *testing.T) {
	s := newTestSheet(t)
	require.NoError(t, s.AddMaterial(MaterialLine{
		Name:         "Gỗ MDF",
		QuantityUsed: d("2"),
		Price:        d("300000"),
		LinkType:     LinkNone,
	}))
	require.NoError(t, s.AddLabor(LaborLine{
		Name:  "Cắt và dán cạnh",
		Hours: d("4"),
		Rate:  d("50000"),
	}))
	require.NoError(t, s.AddOtherCost(OtherCostLine{
		Name:   "Vận chuyển",
		Amount: d("100000"),
	}))
	require.NoError(t, s.SetOverheads(d("80000"), d("40000"), d("40000")))
	require.NoError(t, s.SetQuantityProduced(d("2")))

	breakdown := s.Calculate()
	assert.True(t, breakdown.MaterialsCost.Equal(d("600000")))
	assert.True(t, breakdown.LaborCost.Equal(d("200000")))
	assert.True(t, breakdown.OverheadAmount.Equal(d("80000")))
	assert.True(t, breakdown.ManagementAmount.Equal(d("40000")))
	assert.True(t, breakdown.SalesMarketingAmount.Equal(d("40000")))
	assert.True(t, breakdown.OtherCost.Equal(d("100000")))
	// 600,000 + 200,000 + 100,000 + 160,000 flat overheads = 1,060,000
	assert.True(t, breakdown.TotalCost.Equal(d("1060000")), "got %s", breakdown.TotalCost)
	assert.True(t, breakdown.UnitCost.Equal(d("530000")))
}

func TestSheet_SetOverheads_FlatAmounts(t *testing.T) {
	// Overheads are currency amounts, not percentages; values above 100
	// are ordinary inputs.
	s := newTestSheet(t)
	require.NoError(t, s.AddMaterial(MaterialLine{
		Name:         "Gỗ sồi",
		QuantityUsed: d("1"),
		Price:        d("1000000"),
		LinkType:     LinkNone,
	}))
	require.NoError(t, s.SetOverheads(d("150000"), d("0"), d("0")))

	breakdown := s.Calculate()
	assert.True(t, breakdown.OverheadAmount.Equal(d("150000")))
	assert.True(t, breakdown.TotalCost.Equal(d("1150000")), "got %s", breakdown.TotalCost)

	assert.Error(t, s.SetOverheads(d("-1"), d("0"), d("0")))
}

func TestSheet_Calculate_Empty(t *testing.T) {
	s := newTestSheet(t)
	breakdown := s.Calculate()
	assert.True(t, breakdown.TotalCost.IsZero())
	assert.True(t, breakdown.UnitCost.IsZero())
}

func TestSheet_WhatIf_ExcludesOtherCosts(t *testing.T) {
	s := newTestSheet(t)
	require.NoError(t, s.AddMaterial(MaterialLine{
		Name:         "Gỗ sồi",
		QuantityUsed: d("1"),
		Price:        d("1000000"),
		LinkType:     LinkNone,
	}))
	require.NoError(t, s.AddOtherCost(OtherCostLine{
		Name:   "Phí cố định",
		Amount: d("500000"),
	}))

	result := s.WhatIf(WhatIfDeltas{MaterialsPercent: d("10")})
	assert.True(t, result.OriginalUnitCost.Equal(d("1500000")))
	// only the material component scales: 1,100,000 + 500,000
	assert.True(t, result.ScenarioUnitCost.Equal(d("1600000")), "got %s", result.ScenarioUnitCost)
	assert.True(t, result.Difference.Equal(d("100000")))
}

func TestSheet_WhatIf_IndependentComponents(t *testing.T) {
	s := newTestSheet(t)
	require.NoError(t, s.AddMaterial(MaterialLine{
		Name:         "Gỗ MDF",
		QuantityUsed: d("1"),
		Price:        d("1000000"),
		LinkType:     LinkNone,
	}))
	require.NoError(t, s.AddLabor(LaborLine{Name: "Sơn", Hours: d("2"), Rate: d("100000")}))
	require.NoError(t, s.SetOverheads(d("100000"), d("50000"), d("50000")))

	// Materials rise 10%, labor falls 50%, management doubles. Overhead
	// and sales/marketing keep their own zero deltas.
	result := s.WhatIf(WhatIfDeltas{
		MaterialsPercent:  d("10"),
		LaborPercent:      d("-50"),
		ManagementPercent: d("100"),
	})
	// 1,100,000 + 100,000 + 100,000 + 100,000 + 50,000 = 1,450,000
	assert.True(t, result.OriginalTotalCost.Equal(d("1400000")))
	assert.True(t, result.ScenarioTotalCost.Equal(d("1450000")), "got %s", result.ScenarioTotalCost)
	assert.True(t, result.Difference.Equal(d("50000")))
}

func TestSheet_WhatIf_ZeroDeltasMatchBaseline(t *testing.T) {
	s := newTestSheet(t)
	require.NoError(t, s.AddMaterial(MaterialLine{
		Name:         "Kính",
		QuantityUsed: d("2"),
		Price:        d("250000"),
		LinkType:     LinkNone,
	}))
	require.NoError(t, s.SetOverheads(d("30000"), d("20000"), d("10000")))

	result := s.WhatIf(WhatIfDeltas{})
	assert.True(t, result.ScenarioUnitCost.Equal(result.OriginalUnitCost))
	assert.True(t, result.Difference.IsZero())
}

func TestSheet_Duplicate(t *testing.T) {
	s := newTestSheet(t)
	require.NoError(t, s.AddMaterial(MaterialLine{
		Name:         "Kính",
		QuantityUsed: d("1"),
		Price:        d("200000"),
		LinkType:     LinkNone,
	}))
	require.NoError(t, s.SetOverheads(d("50000"), d("0"), d("0")))

	dup := s.Duplicate()
	assert.Equal(t, "Mặt Bàn Gỗ (Copy)", dup.ProductName)
	assert.NotEqual(t, s.ID, dup.ID)
	require.Len(t, dup.Materials, 1)
	assert.NotEqual(t, s.Materials[0].ID, dup.Materials[0].ID)
	assert.Equal(t, dup.ID, dup.Materials[0].SheetID)
	assert.True(t, dup.OverheadCost.Equal(d("50000")))
	assert.True(t, dup.Calculate().TotalCost.Equal(s.Calculate().TotalCost))
}

func TestMaterialLine_Validate(t *testing.T) {
	t.Run("unlinked line needs a quantity", func(t *testing.T) {
		line := MaterialLine{Name: "X", Price: d("1"), LinkType: LinkNone}
		assert.Error(t, line.Validate())
	})

	t.Run("linked line needs a multiplier", func(t *testing.T) {
		line := MaterialLine{Name: "X", Price: d("1"), LinkType: LinkAreaLW}
		assert.Error(t, line.Validate())

		line.QuantityUsed = d("1")
		assert.NoError(t, line.Validate())
	})

	t.Run("waste outside range rejected", func(t *testing.T) {
		line := MaterialLine{Name: "X", QuantityUsed: d("1"), Price: d("1"), LinkType: LinkNone, WastePercent: d("101")}
		assert.Error(t, line.Validate())
	})

	t.Run("unknown link type rejected", func(t *testing.T) {
		line := MaterialLine{Name: "X", QuantityUsed: d("1"), Price: d("1"), LinkType: LinkType("DIAGONAL")}
		assert.Error(t, line.Validate())
	})
}

func TestLaborLine_Validate(t *testing.T) {
	assert.Error(t, (&LaborLine{Name: "X", Hours: decimal.Zero, Rate: d("1")}).Validate())
	assert.Error(t, (&LaborLine{Name: "", Hours: d("1"), Rate: d("1")}).Validate())
	assert.NoError(t, (&LaborLine{Name: "X", Hours: d("1"), Rate: d("1")}).Validate())
}

func TestParseLinkType(t *testing.T) {
	known := []string{
		"NONE", "PRODUCT_L", "PRODUCT_W", "PRODUCT_H",
		"PRODUCT_AREA_LW", "PRODUCT_AREA_LH", "PRODUCT_AREA_WH", "PRODUCT_PERIMETER_LW",
	}
	for _, s := range known {
		lt, err := ParseLinkType(s)
		require.NoError(t, err)
		assert.Equal(t, LinkType(s), lt)
	}
	for _, s := range []string{"DIAGONAL", "AREA_LW", "PERIMETER_LW"} {
		_, err := ParseLinkType(s)
		assert.Error(t, err, s)
	}
}

func TestMaterialLibrary(t *testing.T) {
	m, err := NewMaterial(uuid.New(), "Ván MDF Chống Ẩm", "An Cường 17mm", "1220x2440", "tấm", d("450000"))
	require.NoError(t, err)
	assert.Equal(t, "van mdf chong am", m.FoldedName)
	assert.Equal(t, "An Cường 17mm", m.Spec)

	require.NoError(t, m.UpdatePricing("An Cường 18mm", "1220x2440", "tấm", d("480000")))
	assert.True(t, m.Price.Equal(d("480000")))
	assert.Equal(t, "An Cường 18mm", m.Spec)

	line := m.ToLine(d("3"))
	require.NoError(t, line.Validate())
	assert.Equal(t, "An Cường 18mm", line.Spec)
	assert.Equal(t, "1220x2440", line.Dimensions)
	assert.True(t, line.Total(decimal.Zero, decimal.Zero, decimal.Zero).Equal(d("1440000")))
}
