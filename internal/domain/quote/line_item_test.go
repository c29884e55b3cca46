package quote

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestLineItem_BaseMeasure(t *testing.T) {
	tests := []struct {
		name     string
		calcType CalcType
		length   string
		height   string
		depth    string
		want     string
	}{
		{"unit is always one", CalcTypeUnit, "0", "0", "0", "1"},
		{"length converts mm to m", CalcTypeLength, "2500", "0", "0", "2.5"},
		{"area converts mm2 to m2", CalcTypeArea, "2000", "1500", "0", "3"},
		{"volume converts mm3 to m3", CalcTypeVolume, "1000", "2000", "500", "1"},
		{"small area keeps precision", CalcTypeArea, "600", "400", "0", "0.24"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := LineItem{
				Name:     "Test",
				Quantity: d("1"),
				Price:    d("100"),
				CalcType: tt.calcType,
				LengthMM: d(tt.length),
				HeightMM: d(tt.height),
				DepthMM:  d(tt.depth),
			}
			assert.True(t, item.BaseMeasure().Equal(d(tt.want)),
				"got %s, want %s", item.BaseMeasure(), tt.want)
		})
	}
}

func TestLineItem_LineTotal_AreaWithDiscount(t *testing.T) {
	// 2000x1500mm door panel at 100,000/m2 with 10% off, three pieces:
	// 3m2 x 90,000 x 3 = 810,000
	item := LineItem{
		Name:          "Cửa gỗ",
		Quantity:      d("3"),
		Price:         d("100000"),
		CalcType:      CalcTypeArea,
		LengthMM:      d("2000"),
		HeightMM:      d("1500"),
		DiscountType:  DiscountTypePercent,
		DiscountValue: d("10"),
	}
	require.NoError(t, item.Validate())

	assert.True(t, item.EffectivePrice().Equal(d("90000")))
	assert.True(t, item.LineTotal().Equal(d("810000")),
		"got %s", item.LineTotal())
}

func TestLineItem_EffectivePrice(t *testing.T) {
	tests := []struct {
		name         string
		price        string
		discountType DiscountType
		value        string
		want         string
	}{
		{"no discount", "500000", DiscountTypePercent, "0", "500000"},
		{"percent discount", "200000", DiscountTypePercent, "25", "150000"},
		{"amount discount", "200000", DiscountTypeAmount, "50000", "150000"},
		{"amount exceeding price goes negative", "100000", DiscountTypeAmount, "150000", "-50000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := LineItem{
				Name:          "Test",
				Quantity:      d("1"),
				Price:         d(tt.price),
				CalcType:      CalcTypeUnit,
				DiscountType:  tt.discountType,
				DiscountValue: d(tt.value),
			}
			assert.True(t, item.EffectivePrice().Equal(d(tt.want)),
				"got %s, want %s", item.EffectivePrice(), tt.want)
		})
	}
}

func TestLineItem_Validate(t *testing.T) {
	valid := func() LineItem {
		return LineItem{
			Name:         "Tủ bếp",
			Quantity:     d("1"),
			Price:        d("1000000"),
			CalcType:     CalcTypeUnit,
			DiscountType: DiscountTypePercent,
		}
	}

	t.Run("valid item passes", func(t *testing.T) {
		item := valid()
		assert.NoError(t, item.Validate())
	})

	t.Run("empty name rejected", func(t *testing.T) {
		item := valid()
		item.Name = ""
		assert.Error(t, item.Validate())
	})

	t.Run("zero quantity rejected", func(t *testing.T) {
		item := valid()
		item.Quantity = decimal.Zero
		assert.Error(t, item.Validate())
	})

	t.Run("negative price rejected", func(t *testing.T) {
		item := valid()
		item.Price = d("-1")
		assert.Error(t, item.Validate())
	})

	t.Run("unknown calc type rejected", func(t *testing.T) {
		item := valid()
		item.CalcType = CalcType("weight")
		assert.Error(t, item.Validate())
	})

	t.Run("area without height rejected", func(t *testing.T) {
		item := valid()
		item.CalcType = CalcTypeArea
		item.LengthMM = d("2000")
		assert.Error(t, item.Validate())
	})

	t.Run("percent discount above 100 rejected", func(t *testing.T) {
		item := valid()
		item.DiscountValue = d("101")
		assert.Error(t, item.Validate())
	})
}

func TestParseCalcType(t *testing.T) {
	for _, s := range []string{"unit", "length", "area", "volume"} {
		ct, err := ParseCalcType(s)
		require.NoError(t, err)
		assert.Equal(t, CalcType(s), ct)
	}

	_, err := ParseCalcType("weight")
	assert.Error(t, err)
}

func TestLineItem_Clone(t *testing.T) {
	item, err := NewLineItem("Kệ tivi", d("2"), d("3500000"), CalcTypeUnit)
	require.NoError(t, err)

	clone := item.Clone()
	assert.NotEqual(t, item.ID, clone.ID)
	assert.Equal(t, item.Name, clone.Name)
	assert.True(t, item.Price.Equal(clone.Price))
}
